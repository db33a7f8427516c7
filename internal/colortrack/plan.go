package colortrack

import (
	"fmt"
	"runtime"
)

// DefaultMinChunkSeconds is the footage each chunk should cover at minimum so
// the cost of opening and seeking a decoder is amortized.
const DefaultMinChunkSeconds = 90

// IsSampled reports whether index is the first frame of a one-second window.
// Nothing is sampled when fps is not positive.
func IsSampled(index, fps int) bool {
	if fps <= 0 {
		return false
	}
	return index%fps == 0
}

// DefaultWorkers leaves one CPU for coordination and I/O.
func DefaultWorkers() int {
	return max(1, runtime.NumCPU()-1)
}

// Planner partitions a frame range into chunks.
type Planner struct {
	MinChunkSeconds int
}

// Plan uses the default chunk floor.
func Plan(frameCount, fps, maxWorkers int) ([]Chunk, error) {
	return Planner{MinChunkSeconds: DefaultMinChunkSeconds}.Plan(frameCount, fps, maxWorkers)
}

// Plan returns contiguous, non-overlapping chunks covering [0, frameCount).
// An empty video yields no chunks.
func (p Planner) Plan(frameCount, fps, maxWorkers int) ([]Chunk, error) {
	if fps <= 0 {
		return nil, fmt.Errorf("%w: fps must be positive, got %d", ErrConfig, fps)
	}
	if frameCount < 0 {
		return nil, fmt.Errorf("%w: negative frame count %d", ErrConfig, frameCount)
	}
	if frameCount == 0 {
		return nil, nil
	}
	seconds := p.MinChunkSeconds
	if seconds <= 0 {
		seconds = DefaultMinChunkSeconds
	}
	maxWorkers = max(1, maxWorkers)

	minChunkSize := fps * seconds
	desired := ceilDiv(frameCount, minChunkSize)
	count := min(maxWorkers, desired)
	size := ceilDiv(frameCount, count)

	chunks := make([]Chunk, 0, count)
	for start := 0; start < frameCount; start += size {
		chunks = append(chunks, Chunk{
			ID:    len(chunks),
			Start: start,
			End:   min(start+size, frameCount),
		})
	}
	return chunks, nil
}

func ceilDiv(a, b int) int {
	return (a + b - 1) / b
}
