package rangecache

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidCapacity is returned by New when capacity is not positive.
	ErrInvalidCapacity = errors.New("capacity must be positive")
)

// ErrInvalidRange indicates a malformed or out-of-bounds query range.
//
// A range is valid when 0 <= Left <= Right < Len.
type ErrInvalidRange struct {
	Left  int
	Right int
	Len   int
}

func (e *ErrInvalidRange) Error() string {
	return fmt.Sprintf("invalid range [%d, %d] for array of length %d", e.Left, e.Right, e.Len)
}

// ErrInvalidIndex indicates an out-of-bounds update index.
type ErrInvalidIndex struct {
	Index int
	Len   int
}

func (e *ErrInvalidIndex) Error() string {
	return fmt.Sprintf("invalid index %d for array of length %d", e.Index, e.Len)
}
