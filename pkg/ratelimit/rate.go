package ratelimit

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseRate converts a bandwidth string into bytes per second. A bare
// number is bytes per second; the suffixes K, M and G (case insensitive)
// scale by powers of 1024. An empty string means unlimited and parses
// to zero.
func ParseRate(s string) (int64, error) {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return 0, nil
	}

	multiplier := int64(1)
	switch trimmed[len(trimmed)-1] {
	case 'k', 'K':
		multiplier = 1024
		trimmed = trimmed[:len(trimmed)-1]
	case 'm', 'M':
		multiplier = 1024 * 1024
		trimmed = trimmed[:len(trimmed)-1]
	case 'g', 'G':
		multiplier = 1024 * 1024 * 1024
		trimmed = trimmed[:len(trimmed)-1]
	}

	value, err := strconv.ParseInt(trimmed, 10, 64)
	if err != nil || value < 0 {
		return 0, fmt.Errorf("invalid bandwidth %q (use a number with an optional K, M or G suffix)", s)
	}

	return value * multiplier, nil
}
