package cli

import (
	"errors"
	"os"
	"testing"

	"github.com/retroenv/retrochip8/internal/options"
	"github.com/retroenv/retrogolib/assert"
)

func setArgs(t *testing.T, args ...string) {
	t.Helper()
	oldArgs := os.Args
	t.Cleanup(func() { os.Args = oldArgs })
	os.Args = args
}

func TestParseFlags(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want options.Program
	}{
		{
			name: "default flags",
			args: []string{"prog", "pong.ch8"},
			want: options.New("pong.ch8"),
		},
		{
			name: "headless with cycle limit",
			args: []string{"prog", "-b", "headless", "-cycles", "100", "-dump", "pong.ch8"},
			want: func() options.Program {
				opts := options.New("pong.ch8")
				opts.Backend = options.BackendHeadless
				opts.Cycles = 100
				opts.Dump = true
				return opts
			}(),
		},
		{
			name: "speed zero uses default",
			args: []string{"prog", "-speed", "0", "pong.ch8"},
			want: options.New("pong.ch8"),
		},
		{
			name: "backend name is case insensitive",
			args: []string{"prog", "-b", "Terminal", "-s", "CHIP8", "-maxsize", "3072", "pong.ch8"},
			want: func() options.Program {
				opts := options.New("pong.ch8")
				opts.Backend = options.BackendTerminal
				opts.System = "chip8"
				opts.MaxSize = 3072
				return opts
			}(),
		},
		{
			name: "logging flags",
			args: []string{"prog", "-trace", "-q", "-speed", "1000", "-scale", "4", "pong.ch8"},
			want: func() options.Program {
				opts := options.New("pong.ch8")
				opts.Trace = true
				opts.Quiet = true
				opts.Speed = 1000
				opts.Scale = 4
				return opts
			}(),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setArgs(t, tt.args...)

			got, err := ParseFlags()
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseFlags_Errors(t *testing.T) {
	tests := []struct {
		name       string
		args       []string
		usageError bool
		contains   string
	}{
		{"missing ROM file", []string{"prog"}, true, ""},
		{"flag after ROM file", []string{"prog", "pong.ch8", "-debug"}, true, "found after ROM file"},
		{"multiple ROM files", []string{"prog", "pong.ch8", "tetris.ch8"}, true, "Only one ROM file"},
		{"unknown backend", []string{"prog", "-b", "vga", "pong.ch8"}, false, "unsupported backend: vga"},
		{"maximum size too large", []string{"prog", "-maxsize", "4000", "pong.ch8"}, false, "invalid maximum ROM size 4000"},
		{"maximum size zero", []string{"prog", "-maxsize", "0", "pong.ch8"}, false, "invalid maximum ROM size 0"},
		{"invalid scale", []string{"prog", "-scale", "0", "pong.ch8"}, false, "invalid window scale"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setArgs(t, tt.args...)

			_, err := ParseFlags()
			assert.Error(t, err)

			var usageErr *UsageError
			assert.Equal(t, tt.usageError, errors.As(err, &usageErr))
			if tt.contains != "" {
				assert.ErrorContains(t, err, tt.contains)
			}
		})
	}
}
