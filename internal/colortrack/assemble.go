package colortrack

import (
	"cmp"
	"fmt"
	"slices"
)

// Assemble orders pairs by frame index and projects their colors. Duplicate,
// out-of-range or missing indices mean the coordinator lost track of a chunk
// and fail the whole run.
func Assemble(pairs []SampledColor, stats VideoStats) (ColorTrack, error) {
	sorted := slices.Clone(pairs)
	slices.SortStableFunc(sorted, func(a, b SampledColor) int {
		return cmp.Compare(a.Index, b.Index)
	})

	for i, p := range sorted {
		if p.Index < 0 || p.Index >= stats.FrameCount {
			return nil, &AssemblyError{Index: p.Index, Reason: "index out of range"}
		}
		if i > 0 && sorted[i-1].Index == p.Index {
			return nil, &AssemblyError{Index: p.Index, Reason: "duplicate index"}
		}
	}
	if want := stats.SampleCount(); len(sorted) != want {
		idx := -1
		if len(sorted) > 0 {
			idx = sorted[len(sorted)-1].Index
		}
		return nil, &AssemblyError{Index: idx, Reason: fmt.Sprintf("got %d samples, want %d", len(sorted), want)}
	}

	track := make(ColorTrack, len(sorted))
	for i, p := range sorted {
		track[i] = p.Color
	}
	return track, nil
}
