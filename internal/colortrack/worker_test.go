package colortrack_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"videocolors/internal/colortrack"
	"videocolors/internal/colortrack/synthetic"
)

func openSynthetic(t *testing.T, v *synthetic.Video) *synthetic.Decoder {
	t.Helper()
	dec, err := v.Open(context.Background(), "synthetic")
	require.NoError(t, err)
	t.Cleanup(func() { _ = dec.Close() })
	return dec.(*synthetic.Decoder)
}

func TestRunChunkReadsOnlySampledFrames(t *testing.T) {
	v := synthetic.NewVideo(30, 95)
	dec := openSynthetic(t, v)

	pairs, err := colortrack.RunChunk(context.Background(), dec, colortrack.Chunk{Start: 0, End: 95}, 30, synthetic.FirstPixel)
	require.NoError(t, err)

	var idx []int
	for _, p := range pairs {
		idx = append(idx, p.Index)
		assert.Equal(t, synthetic.ColorAt(p.Index), p.Color)
	}
	assert.Equal(t, []int{0, 30, 60, 90}, idx)
	assert.Equal(t, 4, dec.Reads)
	assert.Equal(t, 91, dec.Skips)
}

func TestRunChunkStartsAtChunkOffset(t *testing.T) {
	v := synthetic.NewVideo(10, 100)
	dec := openSynthetic(t, v)

	pairs, err := colortrack.RunChunk(context.Background(), dec, colortrack.Chunk{ID: 1, Start: 35, End: 70}, 10, synthetic.FirstPixel)
	require.NoError(t, err)
	require.Len(t, pairs, 3)
	assert.Equal(t, colortrack.SampledColor{Index: 40, Color: synthetic.ColorAt(40)}, pairs[0])
	assert.Equal(t, colortrack.SampledColor{Index: 60, Color: synthetic.ColorAt(60)}, pairs[2])
}

func TestRunChunkReadFailureCarriesRange(t *testing.T) {
	v := synthetic.NewVideo(10, 100)
	v.FailReadAt = 50
	dec := openSynthetic(t, v)

	chunk := colortrack.Chunk{ID: 2, Start: 40, End: 80}
	pairs, err := colortrack.RunChunk(context.Background(), dec, chunk, 10, synthetic.FirstPixel)
	require.Error(t, err)
	assert.Nil(t, pairs)
	assert.ErrorIs(t, err, colortrack.ErrDecode)
	assert.ErrorIs(t, err, synthetic.ErrInjected)

	var ce *colortrack.ChunkError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, chunk, ce.Chunk)
	assert.Equal(t, 50, ce.Index)
	assert.Equal(t, "read", ce.Op)
}

func TestRunChunkSeekFailure(t *testing.T) {
	v := synthetic.NewVideo(10, 100)
	v.FailSeekAt = 40
	dec := openSynthetic(t, v)

	_, err := colortrack.RunChunk(context.Background(), dec, colortrack.Chunk{Start: 40, End: 80}, 10, synthetic.FirstPixel)
	var ce *colortrack.ChunkError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, "seek", ce.Op)
	assert.ErrorIs(t, err, colortrack.ErrDecode)
}

func TestRunChunkExtractionFailure(t *testing.T) {
	v := synthetic.NewVideo(10, 100)
	dec := openSynthetic(t, v)
	boom := errors.New("boom")
	colors := colortrack.ExtractorFunc(func(colortrack.Frame) (colortrack.RGB8, error) {
		return colortrack.RGB8{}, boom
	})

	_, err := colortrack.RunChunk(context.Background(), dec, colortrack.Chunk{Start: 0, End: 20}, 10, colors)
	assert.ErrorIs(t, err, colortrack.ErrExtraction)
	assert.ErrorIs(t, err, boom)
	assert.NotErrorIs(t, err, colortrack.ErrDecode)
}

func TestRunChunkStopsOnCancel(t *testing.T) {
	v := synthetic.NewVideo(10, 100)
	dec := openSynthetic(t, v)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := colortrack.RunChunk(ctx, dec, colortrack.Chunk{Start: 0, End: 100}, 10, synthetic.FirstPixel)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Zero(t, dec.Reads)
}

func TestRunChunkRejectsNonPositiveFPS(t *testing.T) {
	v := synthetic.NewVideo(10, 100)
	dec := openSynthetic(t, v)

	for _, fps := range []int{0, -5} {
		pairs, err := colortrack.RunChunk(context.Background(), dec, colortrack.Chunk{Start: 0, End: 100}, fps, synthetic.FirstPixel)
		assert.ErrorIs(t, err, colortrack.ErrConfig)
		assert.Nil(t, pairs)
	}
	assert.Zero(t, dec.Reads)
}
