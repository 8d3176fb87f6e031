package main

import (
	"fmt"
	"strconv"
	"strings"
)

// parseIndices parses 0-based burst indices from command arguments.
func parseIndices(args []string) ([]int, error) {
	indices := make([]int, 0, len(args))
	for _, arg := range args {
		index, err := strconv.Atoi(strings.TrimSpace(arg))
		if err != nil || index < 0 {
			return nil, fmt.Errorf("invalid burst index %q", arg)
		}
		indices = append(indices, index)
	}
	return indices, nil
}

func yesNo(value bool) string {
	if value {
		return "yes"
	}
	return "no"
}
