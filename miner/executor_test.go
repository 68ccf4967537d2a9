package miner

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestExecutorRunFirstWins(t *testing.T) {
	dir := t.TempDir()
	envByDevice := map[int][]string{
		0: {"TONMINER_TEST_SLEEP_MS=100", "TONMINER_TEST_WRITE_ARTIFACT=A"},
		1: {"TONMINER_TEST_SLEEP_MS=10000", "TONMINER_TEST_WRITE_ARTIFACT=B"},
		2: {"TONMINER_TEST_SLEEP_MS=10000", "TONMINER_TEST_WRITE_ARTIFACT=C"},
	}

	e := NewExecutor(os.Args[0], 64)
	e.newWorker = func(device int) *Process {
		return stubMiner(device, dir, envByDevice[device]...)
	}

	task := testTask(5 * time.Second)
	task.Devices = []int{0, 1, 2}

	start := time.Now()
	answer, found, err := e.Run(task)
	elapsed := time.Since(start)

	require.NoError(t, err)
	require.True(t, found)
	require.Equal(t, []byte("A"), answer.Boc)
	require.Less(t, elapsed, 2*time.Second)
}

func TestExecutorRunAllCrash(t *testing.T) {
	dir := t.TempDir()
	e := NewExecutor(os.Args[0], 64)
	e.newWorker = func(device int) *Process {
		return stubMiner(device, dir, "TONMINER_TEST_EXIT_CODE=1")
	}

	task := testTask(5 * time.Second)
	task.Devices = []int{0, 1}

	answer, found, err := e.Run(task)
	require.NoError(t, err)
	require.False(t, found)
	require.Equal(t, "", answer.GiverAddress)
}

func TestExecutorRunAllTimeout(t *testing.T) {
	dir := t.TempDir()
	e := NewExecutor(os.Args[0], 64)
	e.newWorker = func(device int) *Process {
		return stubMiner(device, dir, "TONMINER_TEST_SLEEP_MS=5000")
	}

	task := testTask(300 * time.Millisecond)
	task.Devices = []int{0, 1}

	start := time.Now()
	_, found, err := e.Run(task)
	elapsed := time.Since(start)

	require.NoError(t, err)
	require.False(t, found)
	require.Less(t, elapsed, 2*time.Second)
}

func TestExecutorRejectsConcurrentRun(t *testing.T) {
	e := NewExecutor("/bin/does-not-exist", 64)
	e.running.Store(true)
	defer e.running.Store(false)

	task := testTask(2 * time.Second)
	task.Devices = []int{0}

	_, _, err := e.Run(task)
	require.ErrorIs(t, err, ErrAlreadyRunning)
}

func TestExecutorStopOnIdleIsNoOp(t *testing.T) {
	e := NewExecutor(os.Args[0], 64)
	e.Stop()
}

func TestExecutorStopCancelsInFlightRun(t *testing.T) {
	dir := t.TempDir()
	e := NewExecutor(os.Args[0], 64)
	e.newWorker = func(device int) *Process {
		return stubMiner(device, dir, "TONMINER_TEST_SLEEP_MS=10000")
	}

	task := testTask(30 * time.Second)
	task.Devices = []int{0}

	done := make(chan struct{})
	go func() {
		defer close(done)
		_, found, err := e.Run(task)
		require.NoError(t, err)
		require.False(t, found)
	}()

	time.Sleep(100 * time.Millisecond)
	e.Stop()

	select {
	case <-done:
	case <-time.After(3 * time.Second):
		t.Fatal("Run did not return after Stop")
	}
}
