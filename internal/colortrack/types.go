// Package colortrack extracts one representative color per second of video.
//
// A Pipeline snapshots the stream statistics once, partitions the frame range
// into chunks, and hands each chunk to a worker unit that owns a private
// decoder seeked to the chunk start. Units run on an Executor and their
// results are merged back into frame order by Assemble.
package colortrack

import (
	"encoding/json"
	"fmt"
	"math"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// RGB8 is a color with three 8-bit channels.
type RGB8 struct {
	R, G, B uint8
}

// MarshalJSON encodes the color as a [r, g, b] array.
func (c RGB8) MarshalJSON() ([]byte, error) {
	return json.Marshal([3]uint8{c.R, c.G, c.B})
}

// UnmarshalJSON decodes a [r, g, b] array.
func (c *RGB8) UnmarshalJSON(data []byte) error {
	var v [3]uint8
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	c.R, c.G, c.B = v[0], v[1], v[2]
	return nil
}

// Hex renders the color as #rrggbb.
func (c RGB8) Hex() string {
	return colorful.Color{
		R: float64(c.R) / 255,
		G: float64(c.G) / 255,
		B: float64(c.B) / 255,
	}.Hex()
}

// ColorTrack is the per-second color sequence ordered by source frame index.
type ColorTrack []RGB8

// Frame is a decoded frame in packed RGB24 (stride 3*Width).
type Frame struct {
	Width  int
	Height int
	Pix    []byte
}

// StreamInfo is what a decoder reports about the opened stream.
type StreamInfo struct {
	FrameRate  float64
	FrameCount int
	Width      int
	Height     int
}

// VideoStats is the immutable snapshot the pipeline plans against.
type VideoStats struct {
	FPS        int
	FrameCount int
}

// NewVideoStats truncates the reported frame rate and validates the result.
func NewVideoStats(info StreamInfo) (VideoStats, error) {
	fps := TruncateFrameRate(info.FrameRate)
	if fps <= 0 {
		return VideoStats{}, fmt.Errorf("%w: frame rate %v truncates to %d", ErrConfig, info.FrameRate, fps)
	}
	if info.FrameCount < 0 {
		return VideoStats{}, fmt.Errorf("%w: negative frame count %d", ErrConfig, info.FrameCount)
	}
	return VideoStats{FPS: fps, FrameCount: info.FrameCount}, nil
}

// SampleCount is the number of sampled frames, one per started second.
func (s VideoStats) SampleCount() int {
	if s.FPS <= 0 || s.FrameCount <= 0 {
		return 0
	}
	return (s.FrameCount + s.FPS - 1) / s.FPS
}

// TruncateFrameRate converts a reported rate to the integer modulus used for
// sampling. The fraction is dropped, so 29.97 becomes 29.
func TruncateFrameRate(rate float64) int {
	if math.IsNaN(rate) || rate <= 0 {
		return 0
	}
	if rate >= math.MaxInt32 {
		return math.MaxInt32
	}
	return int(rate)
}

// Chunk is a half-open frame range [Start, End) handled by one worker unit.
type Chunk struct {
	ID    int
	Start int
	End   int
}

// Len returns the number of frames in the chunk.
func (c Chunk) Len() int { return c.End - c.Start }

func (c Chunk) String() string {
	return fmt.Sprintf("chunk %d [%d,%d)", c.ID, c.Start, c.End)
}

// SampledColor pairs a sampled frame index with its color.
type SampledColor struct {
	Index int
	Color RGB8
}
