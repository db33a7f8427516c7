package colortrack

import (
	"context"
	"fmt"

	"videocolors/internal/metrics"
)

// Decoder is a sequential-access cursor over one video stream. A Decoder is
// owned by a single worker unit and is never used concurrently.
type Decoder interface {
	Info() StreamInfo
	// Seek positions the cursor so the next Skip or Read yields frame index.
	Seek(index int) error
	// Skip advances one frame without materializing pixels.
	Skip() error
	// Read advances one frame and returns it. The Pix buffer may be reused by
	// the next call.
	Read() (Frame, error)
	Close() error
}

// Opener opens a fresh decoder for path.
type Opener interface {
	Open(ctx context.Context, path string) (Decoder, error)
}

// OpenerFunc adapts a function to Opener.
type OpenerFunc func(ctx context.Context, path string) (Decoder, error)

func (f OpenerFunc) Open(ctx context.Context, path string) (Decoder, error) {
	return f(ctx, path)
}

// ColorExtractor reduces a frame to one representative color.
type ColorExtractor interface {
	Extract(frame Frame) (RGB8, error)
}

// ExtractorFunc adapts a function to ColorExtractor.
type ExtractorFunc func(frame Frame) (RGB8, error)

func (f ExtractorFunc) Extract(frame Frame) (RGB8, error) {
	return f(frame)
}

// RunChunk seeks dec to the chunk start and walks every frame in order,
// reading only sampled frames and skipping the rest. On failure the partial
// result is dropped.
func RunChunk(ctx context.Context, dec Decoder, chunk Chunk, fps int, colors ColorExtractor) ([]SampledColor, error) {
	fail := func(op string, index int, kind, err error) ([]SampledColor, error) {
		return nil, &ChunkError{Chunk: chunk, Index: index, Op: op, Kind: kind, Err: err}
	}

	if fps <= 0 {
		return nil, fmt.Errorf("%w: fps must be positive, got %d", ErrConfig, fps)
	}
	if err := dec.Seek(chunk.Start); err != nil {
		return fail("seek", chunk.Start, ErrDecode, err)
	}

	out := make([]SampledColor, 0, ceilDiv(chunk.Len(), fps)+1)
	var read, skipped int
	defer func() {
		metrics.FramesDecodedTotal.WithLabelValues("read").Add(float64(read))
		metrics.FramesDecodedTotal.WithLabelValues("skip").Add(float64(skipped))
	}()

	for i := chunk.Start; i < chunk.End; i++ {
		if err := ctx.Err(); err != nil {
			return fail("cancel", i, err, err)
		}

		if !IsSampled(i, fps) {
			if err := dec.Skip(); err != nil {
				return fail("skip", i, ErrDecode, err)
			}
			skipped++
			continue
		}

		frame, err := dec.Read()
		if err != nil {
			return fail("read", i, ErrDecode, err)
		}
		read++

		c, err := colors.Extract(frame)
		if err != nil {
			return fail("extract", i, ErrExtraction, err)
		}
		out = append(out, SampledColor{Index: i, Color: c})
	}
	return out, nil
}
