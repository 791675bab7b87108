// Package config handles application configuration and setup
package config

import (
	"github.com/retroenv/retrochip8/internal/options"
	"github.com/retroenv/retrogolib/log"
)

// CreateLogger creates a logger with appropriate settings.
// Instruction tracing logs at debug level and therefore enables it.
func CreateLogger(opts options.Flags) *log.Logger {
	cfg := log.DefaultConfig()
	if opts.Debug || opts.Trace {
		cfg.Level = log.DebugLevel
	} else if opts.Quiet {
		cfg.Level = log.ErrorLevel
	}
	return log.NewWithConfig(cfg)
}
