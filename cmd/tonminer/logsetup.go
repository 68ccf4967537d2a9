package main

import (
	"os"
	"path/filepath"

	"github.com/ethereum/go-ethereum/log"
	"github.com/tonguys/ton-miner-client/params"
	"gopkg.in/natefinch/lumberjack.v2"
)

// rotatedLogFiles and rotatedLogSizeMiB give spec's "10 x 1 MiB rotating
// file sink" in lumberjack's own terms.
const (
	rotatedLogSizeMiB = 1
	rotatedLogFiles   = 10
)

// setupLogging configures the process-wide logger: JSON lines to stdout and
// to a size-rotated file under logPath, both at level.
func setupLogging(logPath string, level params.LogLevel) {
	fileSink := &lumberjack.Logger{
		Filename:   filepath.Join(logPath, "tonminer.log"),
		MaxSize:    rotatedLogSizeMiB,
		MaxBackups: rotatedLogFiles,
		Compress:   false,
	}

	stdoutHandler := log.JSONHandlerWithLevel(os.Stdout, level.Slog())
	fileHandler := log.JSONHandlerWithLevel(fileSink, level.Slog())

	log.SetDefault(log.NewLogger(newFanoutHandler(stdoutHandler, fileHandler)))
}
