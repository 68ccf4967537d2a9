package main

import (
	"fmt"
	"strconv"
	"strings"
)

// parseDeviceRange parses the --gpu-range grammar: "[" , "]" wrap a
// comma-separated list of items, each either a single non-negative integer
// or an inclusive "A-B" range with A <= B. Duplicates are removed,
// preserving first occurrence.
func parseDeviceRange(spec string) ([]int, error) {
	if spec == "" {
		return nil, fmt.Errorf("empty range")
	}
	if spec[0] != '[' {
		return nil, fmt.Errorf("invalid format: not [ on first place")
	}
	if spec[len(spec)-1] != ']' {
		return nil, fmt.Errorf("invalid format: not ] on the last place")
	}

	inner := spec[1 : len(spec)-1]
	if inner == "" {
		return nil, fmt.Errorf("empty range")
	}

	var devices []int
	seen := make(map[int]bool)
	for _, item := range strings.Split(inner, ",") {
		if n, err := strconv.Atoi(item); err == nil {
			devices = appendUnique(devices, seen, n)
			continue
		}

		dash := strings.IndexByte(item, '-')
		if dash < 0 {
			return nil, fmt.Errorf("can't parse %q: not a number and no dash", item)
		}
		if dash == 0 {
			return nil, fmt.Errorf("first number is missing in %q", item)
		}

		left, right := item[:dash], item[dash+1:]
		l, err := strconv.Atoi(left)
		if err != nil {
			return nil, fmt.Errorf("can't parse numbers: %q and %q", left, right)
		}
		r, err := strconv.Atoi(right)
		if err != nil {
			return nil, fmt.Errorf("can't parse numbers: %q and %q", left, right)
		}
		if r < l {
			return nil, fmt.Errorf("right < left number in %q", item)
		}
		for n := l; n <= r; n++ {
			devices = appendUnique(devices, seen, n)
		}
	}

	if len(devices) == 0 {
		return nil, fmt.Errorf("empty range")
	}
	for _, d := range devices {
		if d < 0 {
			return nil, fmt.Errorf("device index %d is negative", d)
		}
	}
	return devices, nil
}

func appendUnique(devices []int, seen map[int]bool, n int) []int {
	if seen[n] {
		return devices
	}
	seen[n] = true
	return append(devices, n)
}
