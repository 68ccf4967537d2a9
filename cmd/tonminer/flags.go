package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/tonguys/ton-miner-client/params"
	"github.com/urfave/cli/v2"
)

var (
	tokenFlag = &cli.StringFlag{
		Name:     "token",
		Aliases:  []string{"t"},
		Usage:    "bearer-equivalent query-parameter auth token",
		Required: true,
	}
	urlFlag = &cli.StringFlag{
		Name:    "url",
		Aliases: []string{"u"},
		Usage:   "pool host",
		Value:   params.DefaultPoolURL,
	}
	levelFlag = &cli.StringFlag{
		Name:    "level",
		Aliases: []string{"l"},
		Usage:   "log level: trace, debug, info or err",
		Value:   "debug",
	}
	minerFlag = &cli.StringFlag{
		Name:    "miner",
		Aliases: []string{"m"},
		Usage:   "path to the miner executable",
	}
	boostFactorFlag = &cli.IntFlag{
		Name:    "boost-factor",
		Aliases: []string{"F"},
		Usage:   "passed as -F to the miner",
		Value:   params.DefaultBoostFactor,
	}
	gpuRangeFlag = &cli.StringFlag{
		Name:    "gpu-range",
		Aliases: []string{"G"},
		Usage:   "device list, e.g. [0-2,4,7-9]",
		Value:   "[0-0]",
	}
	logPathFlag = &cli.StringFlag{
		Name:  "log-path",
		Usage: "directory for the rotating file log sink",
	}
	iterationsFlag = &cli.Uint64Flag{
		Name:  "iterations",
		Usage: "per-attempt work cap passed to the miner",
		Value: params.DefaultIterations,
	}
)

var appFlags = []cli.Flag{
	tokenFlag,
	urlFlag,
	levelFlag,
	minerFlag,
	boostFactorFlag,
	gpuRangeFlag,
	logPathFlag,
	iterationsFlag,
}

// buildConfig assembles a params.Config from the parsed CLI context.
func buildConfig(ctx *cli.Context) (params.Config, error) {
	level, err := params.ParseLogLevel(ctx.String(levelFlag.Name))
	if err != nil {
		return params.Config{}, err
	}

	devices, err := parseDeviceRange(ctx.String(gpuRangeFlag.Name))
	if err != nil {
		return params.Config{}, fmt.Errorf("gpu range parsing error: %w", err)
	}

	minerPath := ctx.String(minerFlag.Name)
	if minerPath == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return params.Config{}, fmt.Errorf("failed to resolve default miner path: %w", err)
		}
		minerPath = filepath.Join(cwd, "pow-miner-cuda")
	}

	logPath := ctx.String(logPathFlag.Name)
	if logPath == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return params.Config{}, fmt.Errorf("failed to resolve default log path: %w", err)
		}
		logPath = cwd
	}

	return params.Config{
		Token:       ctx.String(tokenFlag.Name),
		PoolURL:     ctx.String(urlFlag.Name),
		LogLevel:    level,
		LogPath:     logPath,
		MinerPath:   minerPath,
		BoostFactor: ctx.Int(boostFactorFlag.Name),
		Iterations:  ctx.Uint64(iterationsFlag.Name),
		Devices:     devices,
	}, nil
}
