// SPDX-License-Identifier: MIT

// correlate applies a 2-D kernel to a grid read from a text file.
//
// Usage:
//
//	correlate image.txt kernel.txt result.txt
//	correlate -m collective -w 8 --heatmap result.png image.csv kernel.csv result.csv
//	correlate -c job.hcl
//	correlate batch -k kernel.txt -o out/ a.txt b.txt c.txt
//
// Exit status is 0 on success, 1 when a job fails (including malformed
// input grids) and 2 on usage errors.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
)

var version = "dev"

func main() {
	// Use a minimal logger until the job logger is configured.
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := run(ctx, os.Stdout, os.Stderr, os.Args[1:])
	stop()
	if err != nil {
		var exitErr *ExitError
		if errors.As(err, &exitErr) {
			fmt.Fprintln(os.Stderr, "Error:", exitErr.Message)
			os.Exit(exitErr.Code)
		}
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// run builds the command tree and executes it against args.
func run(ctx context.Context, outW, errW io.Writer, args []string) error {
	root := newRootCmd(outW, errW)
	root.SetArgs(args)

	return root.ExecuteContext(ctx)
}
