package cli

import (
	"io"

	"github.com/hashicorp/go-hclog"
)

// newLogger builds the CLI logger. Unknown levels fall back to info.
func newLogger(w io.Writer, level string) hclog.Logger {
	lvl := hclog.LevelFromString(level)
	if lvl == hclog.NoLevel {
		lvl = hclog.Info
	}
	return hclog.New(&hclog.LoggerOptions{
		Name:   "tincture",
		Output: w,
		Level:  lvl,
	})
}
