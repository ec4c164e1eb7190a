package cli

import (
	"context"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
)

const defaultDebounce = 200 * time.Millisecond

func newWatchCmd() *cobra.Command {
	var (
		opts     renderOpts
		debounce time.Duration
	)
	cmd := &cobra.Command{
		Use:   "watch [scene.toml]",
		Short: "Re-render a scene to PNG whenever it changes",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := loggerFromContext(cmd.Context())
			render := func() {
				out, err := renderFile(logger, args[0], opts)
				if err != nil {
					logger.Error("render failed", "err", err)
					return
				}
				logger.Info("rendered", "file", out)
			}
			render()
			return watchFile(cmd.Context(), logger, args[0], debounce, render)
		},
	}
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output PNG path")
	cmd.Flags().StringVarP(&opts.page, "page", "p", "", "page to render (default: the active page)")
	cmd.Flags().DurationVar(&debounce, "debounce", defaultDebounce, "quiet period before re-rendering")
	return cmd
}

// watchFile calls fn after path is written, created or renamed over and
// then left alone for debounce. It returns when ctx is done.
//
// The containing directory is watched so that editors which save by
// renaming a temporary file are seen.
func watchFile(ctx context.Context, logger *log.Logger, path string, debounce time.Duration, fn func()) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer w.Close()
	if err := w.Add(filepath.Dir(path)); err != nil {
		return err
	}
	abs, _ := filepath.Abs(path)
	logger.Info("watching", "file", path)

	var timer *time.Timer
	var fire <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			return nil
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if p, _ := filepath.Abs(ev.Name); p != abs {
				continue
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) {
				continue
			}
			if timer != nil {
				timer.Stop()
			}
			timer = time.NewTimer(debounce)
			fire = timer.C
		case <-fire:
			timer, fire = nil, nil
			fn()
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			logger.Warn("watch error", "err", err)
		}
	}
}
