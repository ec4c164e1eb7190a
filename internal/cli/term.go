package cli

import (
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/spf13/cobra"

	"github.com/gogpu/fbui"
	"github.com/gogpu/fbui/internal/sceneconf"
	"github.com/gogpu/fbui/port/termfb"
)

func newTermCmd() *cobra.Command {
	var page string
	cmd := &cobra.Command{
		Use:   "term [scene.toml]",
		Short: "Show a scene in the terminal (q or Esc to quit)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := sceneconf.Load(args[0])
			if err != nil {
				return err
			}
			if err := selectPage(s, page); err != nil {
				return err
			}
			d, err := sceneconf.ParseDepth(s.Display.Depth)
			if err != nil {
				return err
			}

			screen, err := tcell.NewScreen()
			if err != nil {
				return err
			}
			if err := screen.Init(); err != nil {
				return err
			}
			defer screen.Fini()
			// Engine logs would scribble over the screen.
			fbui.SetLogger(nil)

			t := termfb.New(screen, s.Display.Width, s.Display.Height, d, s.Display.FramebufferOptions()...)
			e, err := start(t.Device(), s)
			if err != nil {
				return err
			}
			defer e.Close()
			e.Refresh()
			return t.Run(cmd.Context(), e, tickOf(s))
		},
	}
	cmd.Flags().StringVarP(&page, "page", "p", "", "page to show (default: the active page)")
	return cmd
}

func tickOf(s *sceneconf.Scene) time.Duration {
	if s.Display.Tick > 0 {
		return time.Duration(s.Display.Tick) * time.Millisecond
	}
	return 10 * time.Millisecond
}
