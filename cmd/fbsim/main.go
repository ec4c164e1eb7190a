// Command fbsim renders fbui scenes on a simulated panel.
//
// Usage:
//
//	fbsim render scene.toml -o frame.png
//	fbsim watch scene.toml
//	fbsim term scene.toml
//	fbsim window scene.toml --scale 3
//	fbsim fontconv DejaVuSans.ttf --size 14 --charset latin1 -o dejavu14.fnt
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/gogpu/fbui/internal/cli"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	cli.SetVersion(version, commit, date)
	if err := cli.Execute(ctx); err != nil {
		if errors.Is(err, context.Canceled) {
			os.Exit(130)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
