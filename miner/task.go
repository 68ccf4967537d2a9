package miner

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/holiman/uint256"
	"github.com/tonguys/ton-miner-client/pool"
)

// Task is a pool.Task plus the per-attempt controls the caller adds:
// an iteration cap and the non-empty, deduplicated device list to fan out
// across. It is consumed once by TaskExecutor.Run and then discarded.
type Task struct {
	pool.Task
	Iterations uint64
	Devices    []int
}

// argv builds the exact argv the miner binary expects for one device, per
// the pinned invocation contract: flags first, then positional operands,
// seed and complexity re-encoded from hex to decimal.
func (t Task) argv(device, boostFactor int, resultFile string) ([]string, error) {
	seed, err := hexToDecimal(t.Seed)
	if err != nil {
		return nil, fmt.Errorf("seed: %w", err)
	}
	complexity, err := hexToDecimal(t.Complexity)
	if err != nil {
		return nil, fmt.Errorf("complexity: %w", err)
	}

	return []string{
		"-vv",
		"-g", strconv.Itoa(device),
		"-F", strconv.Itoa(boostFactor),
		"-e", strconv.FormatInt(t.Expires, 10),
		t.PoolAddress,
		seed,
		complexity,
		strconv.FormatUint(t.Iterations, 10),
		t.GiverAddress,
		resultFile,
	}, nil
}

// hexToDecimal parses s (optionally 0x-prefixed) as a base-16 big integer
// and re-formats it in base 10. A malformed value is rejected rather than
// silently passed through, per the defensive-parsing note the source
// itself never bothers with.
func hexToDecimal(s string) (string, error) {
	trimmed := strings.TrimPrefix(strings.TrimPrefix(s, "0x"), "0X")
	if trimmed == "" {
		return "", fmt.Errorf("empty hex value")
	}
	// uint256 rejects zero-prefixed hex, so leading zeros are dropped here.
	trimmed = strings.TrimLeft(trimmed, "0")
	if trimmed == "" {
		trimmed = "0"
	}

	var n uint256.Int
	if err := n.SetFromHex("0x" + trimmed); err != nil {
		return "", fmt.Errorf("not a valid hex integer: %q: %w", s, err)
	}
	return n.Dec(), nil
}
