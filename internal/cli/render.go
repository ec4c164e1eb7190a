package cli

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/gogpu/fbui/internal/sceneconf"
)

type renderOpts struct {
	output string // PNG path; defaults to the scene name with .png
	page   string // page to show instead of the active one
}

func newRenderCmd() *cobra.Command {
	var opts renderOpts
	cmd := &cobra.Command{
		Use:   "render [scene.toml]",
		Short: "Render a scene to a PNG file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := loggerFromContext(cmd.Context())
			began := time.Now()
			out, err := renderFile(logger, args[0], opts)
			if err != nil {
				return err
			}
			logger.Infof("Rendered %s (%s)", out, time.Since(began).Round(time.Millisecond))
			return nil
		},
	}
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output PNG path")
	cmd.Flags().StringVarP(&opts.page, "page", "p", "", "page to render (default: the active page)")
	return cmd
}

// renderFile renders the scene at path and returns the PNG path written.
func renderFile(logger *log.Logger, path string, opts renderOpts) (string, error) {
	s, err := sceneconf.Load(path)
	if err != nil {
		return "", err
	}
	if err := selectPage(s, opts.page); err != nil {
		return "", err
	}
	fb, e, err := simulate(s)
	if err != nil {
		return "", err
	}
	defer e.Close()

	out := opts.output
	if out == "" {
		out = strings.TrimSuffix(path, filepath.Ext(path)) + ".png"
	}
	if err := fb.SavePNG(out); err != nil {
		return "", err
	}
	st := e.Stats()
	logger.Debug("frame stats", "frames", st.Frames, "slices", st.Slices, "flushes", fb.Flushes())
	return out, nil
}

// selectPage marks the page called name as the only active one. An empty
// name keeps the scene's choice.
func selectPage(s *sceneconf.Scene, name string) error {
	if name == "" {
		return nil
	}
	found := false
	for i := range s.Pages {
		s.Pages[i].Active = s.Pages[i].Name == name
		found = found || s.Pages[i].Active
	}
	if !found {
		return fmt.Errorf("no page named %q", name)
	}
	return nil
}
