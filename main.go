// Package main implements the main entry point for a CHIP-8 interpreter
package main

import (
	"context"
	"errors"
	"os"

	"github.com/retroenv/retrochip8/internal/cli"
	"github.com/retroenv/retrochip8/internal/config"
	"github.com/retroenv/retrochip8/internal/runner"
	"github.com/retroenv/retrogolib/app"
	"github.com/retroenv/retrogolib/log"
)

var (
	version = "dev"
	commit  = ""
	date    = ""
)

func main() {
	ctx := app.Context()

	opts, err := cli.ParseFlags()
	if err != nil {
		logger := config.CreateLogger(opts.Flags)
		var usageErr *cli.UsageError
		if errors.As(err, &usageErr) {
			runner.PrintBanner(logger, opts, version, commit, date)
			if msg := usageErr.Error(); msg != "" {
				logger.Error(msg)
			}
			usageErr.ShowUsage()
		} else {
			logger.Error("Invalid options", log.Err(err))
		}
		os.Exit(1)
	}

	logger := config.CreateLogger(opts.Flags)
	runner.PrintBanner(logger, opts, version, commit, date)

	if err := runner.New(logger).Execute(ctx, opts); err != nil {
		// Handle context cancellation (Ctrl+C, Escape or window close) gracefully
		if errors.Is(err, context.Canceled) {
			logger.Info("Operation cancelled")
			return
		}
		logger.Error("Running ROM failed", log.Err(err))
		os.Exit(1)
	}
}
