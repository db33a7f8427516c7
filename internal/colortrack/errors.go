package colortrack

import (
	"errors"
	"fmt"
)

var (
	// ErrConfig reports an invalid precondition detected before any work starts.
	ErrConfig = errors.New("colortrack: invalid configuration")

	// ErrDecode reports an open, seek, skip or read failure.
	ErrDecode = errors.New("colortrack: decode failed")

	// ErrExtraction reports a color extraction failure on a decoded frame.
	ErrExtraction = errors.New("colortrack: color extraction failed")

	// ErrAssembly reports a duplicate, missing or out-of-range frame index
	// while merging worker results.
	ErrAssembly = errors.New("colortrack: assembly invariant violated")
)

// ChunkError is returned when a worker unit fails. The whole chunk is
// discarded.
type ChunkError struct {
	Chunk Chunk
	// Index is the frame the unit was positioned at when it failed.
	Index int
	Op    string
	Kind  error
	Err   error
}

func (e *ChunkError) Error() string {
	return fmt.Sprintf("%s: %s at frame %d: %v", e.Chunk, e.Op, e.Index, e.Err)
}

func (e *ChunkError) Unwrap() []error {
	return []error{e.Kind, e.Err}
}

// AssemblyError describes an inconsistency in the collected pairs.
type AssemblyError struct {
	Index  int
	Reason string
}

func (e *AssemblyError) Error() string {
	return fmt.Sprintf("%v: %s (frame %d)", ErrAssembly, e.Reason, e.Index)
}

func (e *AssemblyError) Unwrap() error { return ErrAssembly }
