// Package app implements the mining supervision loop: register once, then
// repeatedly request a task, fan it out across the configured devices, and
// submit whatever artifact wins.
package app

import (
	"sync/atomic"

	"github.com/ethereum/go-ethereum/log"
	"github.com/tonguys/ton-miner-client/miner"
	"github.com/tonguys/ton-miner-client/params"
	"github.com/tonguys/ton-miner-client/pool"
)

// maxConsecutiveMisses bounds how many task cycles in a row may come back
// with no answer before the loop gives up.
const maxConsecutiveMisses = 5

// executor is the capability Loop needs from a TaskExecutor. *miner.Executor
// satisfies it; tests substitute a fake to exercise Loop without spawning
// real child processes.
type executor interface {
	Run(task miner.Task) (pool.Answer, bool, error)
	Stop()
}

// Loop is the AppLoop: owns the single Executor for the process lifetime and
// drives register -> (request -> execute -> submit)* against a pool.Client.
type Loop struct {
	client   pool.Client
	executor executor
	config   params.Config

	stopped atomic.Bool
	log     log.Logger
}

// New builds a Loop against client, driving exec with the devices and
// iteration cap from config.
func New(client pool.Client, exec executor, config params.Config) *Loop {
	return &Loop{
		client:   client,
		executor: exec,
		config:   config,
		log:      log.New("name", "app", "thread", "main"),
	}
}

// Run registers with the pool, then loops request->execute->submit until
// Stop is called or a fatal condition is hit, returning the process exit
// code: 0 for an orderly stop, 1 for any fatal failure.
func (l *Loop) Run() int {
	if _, ok := l.client.Register(); !ok {
		l.log.Error("registration failed")
		return 1
	}
	l.log.Info("registered with pool")

	misses := 0
	for !l.stopped.Load() {
		task, ok := l.client.GetTask()
		if !ok {
			l.log.Error("failed to fetch task")
			return 1
		}

		minerTask := miner.Task{
			Task:       task,
			Iterations: l.config.Iterations,
			Devices:    l.config.Devices,
		}

		answer, found, err := l.executor.Run(minerTask)
		l.executor.Stop()
		if err != nil {
			l.log.Error("executor run rejected", "err", err)
			return 1
		}

		if !found {
			misses++
			l.log.Debug("no answer this round", "consecutive_misses", misses)
			if misses >= maxConsecutiveMisses {
				l.log.Error("too many consecutive misses, giving up", "misses", misses)
				return 1
			}
			continue
		}

		misses = 0
		status, ok := l.client.SendAnswer(answer)
		if !ok {
			l.log.Error("failed to submit answer")
			return 1
		}
		l.log.Info("submitted answer", "accepted", status.Accepted)
	}

	return 0
}

// Stop requests an orderly shutdown: the in-flight executor run is
// preempted and Run returns after the current iteration's cleanup.
func (l *Loop) Stop() {
	l.stopped.Store(true)
	l.executor.Stop()
}
