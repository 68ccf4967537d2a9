package miner

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/ethereum/go-ethereum/log"
	"github.com/tonguys/ton-miner-client/pool"
)

// ErrAlreadyRunning is returned by Run when called concurrently with an
// in-progress run on the same Executor.
var ErrAlreadyRunning = errors.New("executor: run already in progress")

// Executor fans a Task out across one Process per device, keeps the first
// success, and terminates the rest. At most one Run may be in flight per
// Executor at a time.
type Executor struct {
	MinerPath   string
	BoostFactor int

	running atomic.Bool
	log     log.Logger

	mu     sync.Mutex
	cancel context.CancelFunc

	// newWorker builds the Process for one device. Tests substitute this to
	// run a stub child instead of a real miner binary; production code
	// leaves it nil and gets the real NewProcess.
	newWorker func(device int) *Process
}

// NewExecutor builds an Executor that spawns minerPath with boostFactor
// passed as -F.
func NewExecutor(minerPath string, boostFactor int) *Executor {
	return &Executor{
		MinerPath:   minerPath,
		BoostFactor: boostFactor,
		log:         log.New("name", "executor"),
	}
}

// Run launches one Process per device in task, waits for either the first
// Ok result or every worker to report Timeout/Crash, and returns the single
// winning Answer. The second return is false when no worker succeeded — not
// itself an error, per the "total failure is not an error" contract. A
// second concurrent call on the same Executor returns ErrAlreadyRunning.
func (e *Executor) Run(task Task) (pool.Answer, bool, error) {
	if !e.running.CompareAndSwap(false, true) {
		return pool.Answer{}, false, ErrAlreadyRunning
	}
	defer e.running.Store(false)

	deadline := time.Unix(task.Expires, 0)
	ctx, cancel := context.WithDeadline(context.Background(), deadline)

	e.mu.Lock()
	e.cancel = cancel
	e.mu.Unlock()
	defer func() {
		e.mu.Lock()
		e.cancel = nil
		e.mu.Unlock()
		cancel()
	}()

	var found atomic.Bool
	results := make(chan Ok, 1)

	var wg sync.WaitGroup
	wg.Add(len(task.Devices))
	for _, device := range task.Devices {
		device := device
		go func() {
			defer wg.Done()
			var proc *Process
			if e.newWorker != nil {
				proc = e.newWorker(device)
			} else {
				proc = NewProcess(e.MinerPath, e.BoostFactor, device, "")
			}
			switch o := proc.Run(ctx, task).(type) {
			case Timeout:
				e.log.Debug("worker timed out", "device", device)
			case Crash:
				e.log.Warn("worker crashed", "device", device, "msg", o.Msg, "code", o.Code)
			case Ok:
				if found.CompareAndSwap(false, true) {
					results <- o
				}
			}
		}()
	}

	allDone := make(chan struct{})
	go func() {
		wg.Wait()
		close(allDone)
	}()

	select {
	case ok := <-results:
		cancel()
		<-allDone
		return ok.Answer, true, nil
	case <-allDone:
		select {
		case ok := <-results:
			return ok.Answer, true, nil
		default:
			return pool.Answer{}, false, nil
		}
	}
}

// Stop preempts an in-progress Run; it is a no-op when the executor is idle.
func (e *Executor) Stop() {
	e.mu.Lock()
	cancel := e.cancel
	e.mu.Unlock()
	if cancel != nil {
		cancel()
	}
}
