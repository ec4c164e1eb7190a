package cli

import (
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/gogpu/fbui/internal/sceneconf"
	"github.com/gogpu/fbui/port/ebitenfb"
)

func newWindowCmd() *cobra.Command {
	var (
		page  string
		scale int
	)
	cmd := &cobra.Command{
		Use:   "window [scene.toml]",
		Short: "Show a scene in a desktop window",
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
			title := "fbsim - " + filepath.Base(args[0])
			w := ebitenfb.New(s.Display.Width, s.Display.Height, d, title, scale, s.Display.FramebufferOptions()...)
			e, err := start(w.Device(), s)
			if err != nil {
				return err
			}
			defer e.Close()
			return w.Run(cmd.Context(), e)
		},
	}
	cmd.Flags().StringVarP(&page, "page", "p", "", "page to show (default: the active page)")
	cmd.Flags().IntVarP(&scale, "scale", "s", 2, "window pixels per panel pixel")
	return cmd
}
