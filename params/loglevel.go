package params

import (
	"fmt"
	"log/slog"

	"github.com/ethereum/go-ethereum/log"
)

// LogLevel is the set of levels accepted by the --level flag.
type LogLevel int

const (
	LevelTrace LogLevel = iota
	LevelDebug
	LevelInfo
	LevelErr
)

func (l LogLevel) String() string {
	switch l {
	case LevelTrace:
		return "trace"
	case LevelDebug:
		return "debug"
	case LevelInfo:
		return "info"
	case LevelErr:
		return "err"
	default:
		return "unknown"
	}
}

// Slog returns the go-ethereum log level this LogLevel maps onto.
func (l LogLevel) Slog() slog.Level {
	switch l {
	case LevelTrace:
		return log.LevelTrace
	case LevelDebug:
		return log.LevelDebug
	case LevelInfo:
		return log.LevelInfo
	case LevelErr:
		return log.LevelError
	default:
		return log.LevelDebug
	}
}

// ParseLogLevel parses one of trace/debug/info/err.
func ParseLogLevel(s string) (LogLevel, error) {
	switch s {
	case "trace":
		return LevelTrace, nil
	case "debug":
		return LevelDebug, nil
	case "info":
		return LevelInfo, nil
	case "err":
		return LevelErr, nil
	default:
		return 0, fmt.Errorf("unknown log level %q: want trace, debug, info or err", s)
	}
}
