package colortrack_test

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"videocolors/internal/colortrack"
	"videocolors/internal/colortrack/synthetic"
)

func expectedTrack(fps, frames int) colortrack.ColorTrack {
	track := colortrack.ColorTrack{}
	for i := 0; i < frames; i += fps {
		track = append(track, synthetic.ColorAt(i))
	}
	return track
}

func newPipeline(t *testing.T, v *synthetic.Video, kind string, workers int, opts ...colortrack.Option) *colortrack.Pipeline {
	t.Helper()
	exec, err := colortrack.NewExecutor(kind, workers)
	require.NoError(t, err)
	opts = append([]colortrack.Option{
		colortrack.WithWorkers(workers),
		colortrack.WithExecutor(exec),
		colortrack.WithMinChunkSeconds(1),
	}, opts...)
	return colortrack.New(v, synthetic.FirstPixel, opts...)
}

var executorKinds = []string{colortrack.ExecutorPool, colortrack.ExecutorForkJoin}

func TestExtractSameTrackForAnyWorkerCount(t *testing.T) {
	for _, kind := range executorKinds {
		t.Run(kind, func(t *testing.T) {
			want := expectedTrack(24, 1000)
			for _, workers := range []int{1, 2, 3, 7, 16} {
				v := synthetic.NewVideo(24, 1000)
				got, err := newPipeline(t, v, kind, workers).Extract(context.Background(), "in.mp4")
				require.NoError(t, err)
				assert.Equal(t, want, got, "workers=%d", workers)
				assert.Zero(t, v.Live(), "decoders left open")
			}
		})
	}
}

func TestExtractIsIdempotent(t *testing.T) {
	v := synthetic.NewVideo(30, 900)
	p := newPipeline(t, v, colortrack.ExecutorPool, 4)

	first, err := p.Extract(context.Background(), "in.mp4")
	require.NoError(t, err)
	second, err := p.Extract(context.Background(), "in.mp4")
	require.NoError(t, err)

	a, err := json.Marshal(first)
	require.NoError(t, err)
	b, err := json.Marshal(second)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestExtractBoundaries(t *testing.T) {
	tests := []struct {
		name   string
		fps    float64
		frames int
		want   int
	}{
		{"empty", 30, 0, 0},
		{"shorter than a second", 30, 10, 1},
		{"single frame", 25, 1, 1},
		{"95 frames at 30fps", 30, 95, 4},
		{"five seconds at 25fps", 25, 125, 5},
		{"fractional rate is truncated", 29.97, 60, 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := synthetic.NewVideo(tt.fps, tt.frames)
			got, err := newPipeline(t, v, colortrack.ExecutorPool, 4).Extract(context.Background(), "in.mp4")
			require.NoError(t, err)
			require.NotNil(t, got)
			assert.Len(t, got, tt.want)
		})
	}
}

func TestExtractConcreteScenario(t *testing.T) {
	v := synthetic.NewVideo(25, 125)
	p := colortrack.New(v, synthetic.FirstPixel, colortrack.WithWorkers(4))

	got, err := p.Extract(context.Background(), "in.mp4")
	require.NoError(t, err)
	assert.Equal(t, colortrack.ColorTrack{
		synthetic.ColorAt(0), synthetic.ColorAt(25), synthetic.ColorAt(50),
		synthetic.ColorAt(75), synthetic.ColorAt(100),
	}, got)
	// One probe decoder plus one decoder for the single planned chunk.
	assert.Equal(t, 2, v.Opened())
}

func TestExtractOneDecoderPerChunk(t *testing.T) {
	v := synthetic.NewVideo(10, 100)
	p := newPipeline(t, v, colortrack.ExecutorPool, 5)

	_, err := p.Extract(context.Background(), "in.mp4")
	require.NoError(t, err)
	assert.Equal(t, 1+5, v.Opened())
}

func TestExtractZeroFPSIsConfigError(t *testing.T) {
	v := synthetic.NewVideo(0.5, 100)
	_, err := newPipeline(t, v, colortrack.ExecutorPool, 2).Extract(context.Background(), "in.mp4")
	require.ErrorIs(t, err, colortrack.ErrConfig)
	assert.Equal(t, 1, v.Opened(), "no worker may start after a config error")
}

func TestExtractOpenFailure(t *testing.T) {
	v := synthetic.NewVideo(30, 100)
	v.FailOpen = true
	_, err := newPipeline(t, v, colortrack.ExecutorPool, 2).Extract(context.Background(), "in.mp4")
	assert.ErrorIs(t, err, colortrack.ErrDecode)
	assert.ErrorIs(t, err, synthetic.ErrInjected)
}

func TestExtractFailureOnLaterChunkFailsWholeRun(t *testing.T) {
	for _, kind := range executorKinds {
		for _, workers := range []int{1, 4} {
			v := synthetic.NewVideo(10, 400)
			v.FailReadAt = 310
			track, err := newPipeline(t, v, kind, workers).Extract(context.Background(), "in.mp4")
			require.Error(t, err, "%s/%d", kind, workers)
			assert.Nil(t, track)

			var ce *colortrack.ChunkError
			require.ErrorAs(t, err, &ce)
			assert.Equal(t, 310, ce.Index)
			assert.True(t, ce.Chunk.Start <= 310 && 310 < ce.Chunk.End, "chunk %s", ce.Chunk)
			if workers == 4 {
				assert.Equal(t, colortrack.Chunk{ID: 3, Start: 300, End: 400}, ce.Chunk)
			}
			assert.ErrorIs(t, err, colortrack.ErrDecode)
		}
	}
}

func TestExtractCancelled(t *testing.T) {
	v := synthetic.NewVideo(10, 400)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	track, err := newPipeline(t, v, colortrack.ExecutorPool, 2).Extract(ctx, "in.mp4")
	assert.ErrorIs(t, err, context.Canceled)
	assert.NotErrorIs(t, err, colortrack.ErrDecode)
	assert.Nil(t, track)
}

func TestExtractCancelledDuringOpenIsNotDecodeError(t *testing.T) {
	v := synthetic.NewVideo(10, 400)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var opens atomic.Int32
	opener := colortrack.OpenerFunc(func(ctx context.Context, path string) (colortrack.Decoder, error) {
		if opens.Add(1) > 1 {
			cancel()
		}
		return v.Open(ctx, path)
	})
	exec, err := colortrack.NewExecutor(colortrack.ExecutorPool, 2)
	require.NoError(t, err)
	p := colortrack.New(opener, synthetic.FirstPixel,
		colortrack.WithWorkers(2),
		colortrack.WithExecutor(exec),
		colortrack.WithMinChunkSeconds(1),
	)

	track, err := p.Extract(ctx, "in.mp4")
	assert.ErrorIs(t, err, context.Canceled)
	assert.NotErrorIs(t, err, colortrack.ErrDecode)
	assert.Nil(t, track)
}

func TestExtractReportsStatsOnce(t *testing.T) {
	v := synthetic.NewVideo(10, 400)
	var got []colortrack.VideoStats
	p := newPipeline(t, v, colortrack.ExecutorPool, 4, colortrack.WithStats(func(s colortrack.VideoStats) {
		got = append(got, s)
	}))

	track, err := p.Extract(context.Background(), "in.mp4")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, colortrack.VideoStats{FPS: 10, FrameCount: 400}, got[0])
	assert.Len(t, track, got[0].SampleCount())
	assert.Equal(t, 5, v.Opened())
}

func TestExtractProgress(t *testing.T) {
	v := synthetic.NewVideo(10, 400)
	var (
		mu    sync.Mutex
		calls [][2]int
	)
	p := newPipeline(t, v, colortrack.ExecutorForkJoin, 4, colortrack.WithProgress(func(done, total int) {
		mu.Lock()
		calls = append(calls, [2]int{done, total})
		mu.Unlock()
	}))

	_, err := p.Extract(context.Background(), "in.mp4")
	require.NoError(t, err)
	require.Len(t, calls, 4)
	seen := map[int]bool{}
	for _, c := range calls {
		assert.Equal(t, 4, c[1])
		seen[c[0]] = true
	}
	assert.Equal(t, map[int]bool{1: true, 2: true, 3: true, 4: true}, seen)
}

func TestExecutorsBoundConcurrency(t *testing.T) {
	chunks, err := colortrack.Planner{MinChunkSeconds: 1}.Plan(200, 10, 20)
	require.NoError(t, err)
	require.Len(t, chunks, 20)

	for _, kind := range executorKinds {
		t.Run(kind, func(t *testing.T) {
			exec, err := colortrack.NewExecutor(kind, 3)
			require.NoError(t, err)

			var running, peak atomic.Int32
			unit := func(ctx context.Context, c colortrack.Chunk) ([]colortrack.SampledColor, error) {
				n := running.Add(1)
				for {
					p := peak.Load()
					if n <= p || peak.CompareAndSwap(p, n) {
						break
					}
				}
				time.Sleep(2 * time.Millisecond)
				running.Add(-1)
				return []colortrack.SampledColor{{Index: c.Start}}, nil
			}

			pairs, err := exec.Execute(context.Background(), chunks, unit)
			require.NoError(t, err)
			assert.Len(t, pairs, 20)
			assert.LessOrEqual(t, peak.Load(), int32(3))
		})
	}
}

func TestExecutorsDiscardResultsOnFailure(t *testing.T) {
	chunks, err := colortrack.Planner{MinChunkSeconds: 1}.Plan(100, 10, 10)
	require.NoError(t, err)
	boom := errors.New("boom")

	for _, kind := range executorKinds {
		t.Run(kind, func(t *testing.T) {
			exec, err := colortrack.NewExecutor(kind, 2)
			require.NoError(t, err)
			pairs, err := exec.Execute(context.Background(), chunks, func(ctx context.Context, c colortrack.Chunk) ([]colortrack.SampledColor, error) {
				if c.ID == 6 {
					return nil, boom
				}
				return []colortrack.SampledColor{{Index: c.Start}}, nil
			})
			assert.ErrorIs(t, err, boom)
			assert.Nil(t, pairs)
		})
	}
}

func TestNewExecutorUnknown(t *testing.T) {
	_, err := colortrack.NewExecutor("threads", 2)
	assert.ErrorIs(t, err, colortrack.ErrConfig)
}

func TestDecoderNeverShared(t *testing.T) {
	// The synthetic decoder fails with ErrConcurrentUse if two goroutines
	// touch it at once, so a clean run across many workers proves isolation.
	v := synthetic.NewVideo(5, 5000)
	for _, kind := range executorKinds {
		_, err := newPipeline(t, v, kind, 8).Extract(context.Background(), "in.mp4")
		require.NoError(t, err)
	}
}
