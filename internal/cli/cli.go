// Package cli implements the fbsim command-line interface.
//
// fbsim builds a scene described in TOML on a simulated panel and shows it:
//   - render: draw the active page and save it as a PNG
//   - watch: re-render whenever the scene file changes
//   - term: show the scene in the terminal
//   - window: show the scene in a desktop window
//   - fontconv: convert a TrueType/OpenType face to the bitmap font format
//
// All commands accept --verbose (-v) for debug logging, which includes the
// engine's per-pass diagnostics.
package cli

import (
	"context"
	"fmt"

	charmlog "github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/gogpu/fbui"
	"github.com/gogpu/fbui/internal/fontcache"
	"github.com/gogpu/fbui/internal/sceneconf"
	"github.com/gogpu/fbui/port/memfb"
)

var (
	version = "dev"
	commit  string
	date    string
)

// SetVersion sets the version information shown by --version.
func SetVersion(v, c, d string) {
	version, commit, date = v, c, d
}

// Execute runs the CLI.
func Execute(ctx context.Context) error {
	return newRootCmd().ExecuteContext(ctx)
}

func newRootCmd() *cobra.Command {
	var verbose bool

	root := &cobra.Command{
		Use:          "fbsim",
		Short:        "fbsim renders fbui scenes on a simulated panel",
		Version:      version,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			level := charmlog.InfoLevel
			if verbose {
				level = charmlog.DebugLevel
			}
			l := newLogger(cmd.ErrOrStderr(), level)
			installLogger(l)
			cmd.SetContext(withLogger(cmd.Context(), l))
		},
	}
	root.SetVersionTemplate(fmt.Sprintf("fbsim %s\ncommit: %s\nbuilt: %s\n", version, commit, date))
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")

	root.AddCommand(newRenderCmd())
	root.AddCommand(newWatchCmd())
	root.AddCommand(newTermCmd())
	root.AddCommand(newWindowCmd())
	root.AddCommand(newFontConvCmd())
	return root
}

// fonts is shared by every build in the process so that watch reloads
// reuse glyphs.
var fonts = fontcache.New(0)

// simulate builds s on an in-memory panel and draws its active page.
func simulate(s *sceneconf.Scene) (*memfb.Framebuffer, *fbui.Engine, error) {
	d, err := sceneconf.ParseDepth(s.Display.Depth)
	if err != nil {
		return nil, nil, err
	}
	fb := memfb.New(s.Display.Width, s.Display.Height, d, s.Display.FramebufferOptions()...)
	e, err := start(fb.Device(), s)
	if err != nil {
		return nil, nil, err
	}
	e.Refresh()
	return fb, e, nil
}

// start creates an engine on dev and builds s on it.
func start(dev fbui.Device, s *sceneconf.Scene) (*fbui.Engine, error) {
	e, err := fbui.New(dev, s.Display.Options()...)
	if err != nil {
		return nil, err
	}
	if _, err := sceneconf.Build(e, s, fonts); err != nil {
		_ = e.Close()
		return nil, err
	}
	return e, nil
}
