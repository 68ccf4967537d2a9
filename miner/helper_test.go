package miner

import (
	"fmt"
	"os"
	"strconv"
	"testing"
	"time"
)

// These tests stand in for the real pow-miner-cuda binary by re-execing the
// test binary itself with a sentinel environment variable set, the same
// trick the standard library's own exec tests use to avoid depending on an
// external executable.

const helperEnv = "TONMINER_TEST_HELPER"

// TestHelperProcess is not a real test; it only does something when re-exec'd
// as the "miner child" by stubMiner, selected via -test.run and gated on
// helperEnv so a normal `go test` run exits immediately.
func TestHelperProcess(t *testing.T) {
	if os.Getenv(helperEnv) == "" {
		return
	}
	defer os.Exit(0)

	sleepMs, _ := strconv.Atoi(os.Getenv("TONMINER_TEST_SLEEP_MS"))
	if sleepMs > 0 {
		time.Sleep(time.Duration(sleepMs) * time.Millisecond)
	}

	if artifact := os.Getenv("TONMINER_TEST_WRITE_ARTIFACT"); artifact != "" {
		if err := os.WriteFile("mined.boc", []byte(artifact), 0o644); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	}

	if code := os.Getenv("TONMINER_TEST_EXIT_CODE"); code != "" {
		n, _ := strconv.Atoi(code)
		os.Exit(n)
	}
}

// stubMiner builds a *Process pointed at the current test binary, configured
// via environment variables consumed by TestHelperProcess above. The pinned
// mining argv is passed through unchanged after a "--" terminator, which the
// flag package (and TestHelperProcess, which never looks at it) ignores.
func stubMiner(device int, workDir string, env ...string) *Process {
	p := NewProcess(os.Args[0], 64, device, workDir)
	p.extraArgs = []string{"-test.run=TestHelperProcess", "--"}
	p.env = append([]string{helperEnv + "=1"}, env...)
	return p
}
