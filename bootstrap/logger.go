// Package bootstrap builds what every mymesh binary needs before its own wiring: the logger, the shared
// registry configuration and the registry backend it selects.
package bootstrap

import (
	"io"
	"os"
	"strings"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
)

// EnvLogLevel selects the minimum level: debug, info (default), warn or error.
const EnvLogLevel = "LOG_LEVEL"

// NewLogger returns a logfmt logger on stderr with ts and caller, filtered at levelName.
func NewLogger(levelName string) log.Logger {
	return newLogger(os.Stderr, levelName)
}

func newLogger(w io.Writer, levelName string) log.Logger {
	logger := log.NewLogfmtLogger(log.NewSyncWriter(w))
	logger = log.WithPrefix(logger, "ts", log.DefaultTimestampUTC)
	logger = log.WithPrefix(logger, "caller", log.DefaultCaller)
	return level.NewFilter(logger, levelOption(levelName))
}

func levelOption(name string) level.Option {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "debug":
		return level.AllowDebug()
	case "warn", "warning":
		return level.AllowWarn()
	case "error":
		return level.AllowError()
	default:
		return level.AllowInfo()
	}
}
