// Command tonminer drives the pool mining supervision loop: it registers
// with a pool, repeatedly fetches a task, fans it out across the configured
// GPU devices, and submits the first artifact produced.
package main

import (
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/ethereum/go-ethereum/log"
	"github.com/tonguys/ton-miner-client/app"
	"github.com/tonguys/ton-miner-client/miner"
	"github.com/tonguys/ton-miner-client/params"
	"github.com/tonguys/ton-miner-client/pool"
	"github.com/urfave/cli/v2"
)

func main() {
	cliApp := &cli.App{
		Name:  "tonminer",
		Usage: "pool-style GPU proof-of-work mining client",
		Flags: appFlags,
		Action: func(ctx *cli.Context) error {
			os.Exit(run(ctx))
			return nil
		},
	}

	if err := cliApp.Run(os.Args); err != nil {
		os.Stderr.WriteString("Error: " + err.Error() + "\n")
		os.Exit(1)
	}
}

func run(ctx *cli.Context) int {
	config, err := buildConfig(ctx)
	if err != nil {
		os.Stderr.WriteString("Error: " + err.Error() + "\n")
		return 1
	}

	setupLogging(config.LogPath, config.LogLevel)

	client := buildPoolClient(config)
	executor := miner.NewExecutor(config.MinerPath, config.BoostFactor)
	loop := app.New(client, executor, config)

	signals := make(chan os.Signal, 1)
	signal.Notify(signals, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-signals
		log.Info("received shutdown signal")
		loop.Stop()
	}()

	return loop.Run()
}

// buildPoolClient selects the mock client when PoolURL carries the mock
// sentinel scheme, and the real HTTPS client otherwise.
func buildPoolClient(config params.Config) pool.Client {
	if strings.HasPrefix(config.PoolURL, params.MockPoolScheme+"://") {
		return &pool.MockClient{}
	}
	return pool.NewHTTPSClient(config.PoolURL, config.Token)
}
