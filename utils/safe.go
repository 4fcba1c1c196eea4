// Package utils provides utility functions for kembench.
// This file contains overflow-checked arithmetic for the cycle totals and
// length checks for fixed-size KEM buffers.

package utils

import (
	"errors"
	"fmt"
	"math"
)

var (
	// ErrOverflow indicates an integer overflow occurred.
	ErrOverflow = errors.New("integer overflow")

	// ErrInvalidLength indicates a buffer does not have its fixed size.
	ErrInvalidLength = errors.New("invalid length")
)

// SafeAddUint64 adds two counters and returns an error if the sum wraps.
func SafeAddUint64(a, b uint64) (uint64, error) {
	if a > math.MaxUint64-b {
		return 0, fmt.Errorf("%w: %d + %d exceeds max uint64", ErrOverflow, a, b)
	}
	return a + b, nil
}

// CheckExactLength validates that a named buffer is exactly want bytes.
func CheckExactLength(name string, b []byte, want int) error {
	if len(b) != want {
		return fmt.Errorf("%w: %s is %d bytes, want %d", ErrInvalidLength, name, len(b), want)
	}
	return nil
}
