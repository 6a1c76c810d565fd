package errors

import (
	"math"
	"strconv"
	"strings"
)

// Bounds for the two positional inputs.
const (
	MinCount = 2
	MaxCount = 32767

	// MaxDelay is the exclusive upper bound for the frame delay in seconds.
	MaxDelay = 2147483647.0
)

// ValidateCount checks that n lies within [MinCount, MaxCount].
func ValidateCount(n int) error {
	if n < MinCount || n > MaxCount {
		return New(ErrCodeInvalidCount, "Element count must be within [%d, %d] (got %d)", MinCount, MaxCount, n)
	}
	return nil
}

// ParseCount parses and validates the element count argument.
func ParseCount(s string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, New(ErrCodeInvalidCount, "Element count must be within [%d, %d] (got %q)", MinCount, MaxCount, s)
	}
	if err := ValidateCount(n); err != nil {
		return 0, err
	}
	return n, nil
}

// ValidateDelay checks that d lies strictly within (0, MaxDelay).
// NaN is rejected since it compares false against both bounds.
func ValidateDelay(d float64) error {
	if !(d > 0) || !(d < MaxDelay) {
		return New(ErrCodeInvalidDelay, "Swap delay must be within (0, %d) (got %f)", int64(MaxDelay), d)
	}
	return nil
}

// ParseDelay parses and validates the frame delay argument (seconds).
func ParseDelay(s string) (float64, error) {
	d, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil && !math.IsInf(d, 0) {
		return 0, New(ErrCodeInvalidDelay, "Swap delay must be within (0, %d) (got %q)", int64(MaxDelay), s)
	}
	if err := ValidateDelay(d); err != nil {
		return 0, err
	}
	return d, nil
}
