package colortrack

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.uber.org/zap"

	"videocolors/internal/metrics"
)

// Pipeline extracts a ColorTrack from a video path.
type Pipeline struct {
	opener   Opener
	colors   ColorExtractor
	executor Executor
	planner  Planner
	workers  int
	logger   *zap.Logger
	progress func(done, total int)
	stats    func(VideoStats)
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithWorkers sets the maximum number of concurrent worker units. Values
// below 1 select DefaultWorkers.
func WithWorkers(n int) Option {
	return func(p *Pipeline) {
		p.workers = n
	}
}

// WithExecutor replaces the default PoolExecutor.
func WithExecutor(e Executor) Option {
	return func(p *Pipeline) {
		p.executor = e
	}
}

// WithMinChunkSeconds sets the footage floor per chunk.
func WithMinChunkSeconds(s int) Option {
	return func(p *Pipeline) {
		p.planner.MinChunkSeconds = s
	}
}

// WithLogger sets the logger. The default discards everything.
func WithLogger(l *zap.Logger) Option {
	return func(p *Pipeline) {
		p.logger = l
	}
}

// WithProgress registers a callback fired after each completed chunk. It is
// called from worker goroutines.
func WithProgress(fn func(done, total int)) Option {
	return func(p *Pipeline) {
		p.progress = fn
	}
}

// WithStats registers a callback fired once per Extract with the stats the
// run plans against, before any chunk starts.
func WithStats(fn func(VideoStats)) Option {
	return func(p *Pipeline) {
		p.stats = fn
	}
}

// New builds a pipeline that opens videos with opener and colors frames with
// colors.
func New(opener Opener, colors ColorExtractor, opts ...Option) *Pipeline {
	p := &Pipeline{
		opener:  opener,
		colors:  colors,
		planner: Planner{MinChunkSeconds: DefaultMinChunkSeconds},
		logger:  zap.NewNop(),
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.workers <= 0 {
		p.workers = DefaultWorkers()
	}
	if p.executor == nil {
		p.executor = &PoolExecutor{Workers: p.workers}
	}
	return p
}

// Workers returns the concurrency bound in effect.
func (p *Pipeline) Workers() int { return p.workers }

// Probe opens path, snapshots its stats and closes the decoder again.
func (p *Pipeline) Probe(ctx context.Context, path string) (VideoStats, error) {
	dec, err := p.opener.Open(ctx, path)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return VideoStats{}, fmt.Errorf("open %s: %w", path, ctxErr)
		}
		return VideoStats{}, fmt.Errorf("%w: open %s: %w", ErrDecode, path, err)
	}
	info := dec.Info()
	if err := dec.Close(); err != nil {
		p.logger.Warn("close probe decoder", zap.Error(err))
	}
	return NewVideoStats(info)
}

// Extract runs the whole pipeline. It returns a complete track or an error,
// never a partial track.
func (p *Pipeline) Extract(ctx context.Context, path string) (ColorTrack, error) {
	ctx, span := otel.Tracer("colortrack").Start(ctx, "Pipeline.Extract")
	defer span.End()
	span.SetAttributes(attribute.String("video.path", path))

	start := time.Now()
	track, err := p.extract(ctx, path)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		metrics.ExtractionsTotal.WithLabelValues("failed").Inc()
		return nil, err
	}
	metrics.ExtractionsTotal.WithLabelValues("completed").Inc()
	metrics.ExtractionDuration.Observe(time.Since(start).Seconds())
	return track, nil
}

func (p *Pipeline) extract(ctx context.Context, path string) (ColorTrack, error) {
	log := p.logger.With(zap.String("input", path))

	stats, err := p.Probe(ctx, path)
	if err != nil {
		return nil, err
	}
	if p.stats != nil {
		p.stats(stats)
	}
	chunks, err := p.planner.Plan(stats.FrameCount, stats.FPS, p.workers)
	if err != nil {
		return nil, err
	}
	log.Debug("planned extraction",
		zap.Int("fps", stats.FPS),
		zap.Int("frame_count", stats.FrameCount),
		zap.Int("chunks", len(chunks)),
		zap.Int("workers", p.workers),
	)
	if len(chunks) == 0 {
		return ColorTrack{}, nil
	}

	var done atomic.Int32
	unit := func(ctx context.Context, chunk Chunk) ([]SampledColor, error) {
		pairs, err := p.runUnit(ctx, log, path, stats, chunk)
		if err != nil {
			metrics.ChunksTotal.WithLabelValues("failed").Inc()
			return nil, err
		}
		metrics.ChunksTotal.WithLabelValues("completed").Inc()
		if p.progress != nil {
			p.progress(int(done.Add(1)), len(chunks))
		}
		return pairs, nil
	}

	pairs, err := p.executor.Execute(ctx, chunks, unit)
	if err != nil {
		log.Error("extraction failed", zap.Error(err))
		return nil, err
	}
	track, err := Assemble(pairs, stats)
	if err != nil {
		log.Error("assembly failed", zap.Error(err))
		return nil, err
	}
	log.Debug("extraction complete", zap.Int("colors", len(track)))
	return track, nil
}

// runUnit gives the chunk its own decoder for the lifetime of the unit.
func (p *Pipeline) runUnit(ctx context.Context, log *zap.Logger, path string, stats VideoStats, chunk Chunk) ([]SampledColor, error) {
	ctx, span := otel.Tracer("colortrack").Start(ctx, "chunk")
	defer span.End()
	span.SetAttributes(
		attribute.Int("chunk.id", chunk.ID),
		attribute.Int("chunk.start", chunk.Start),
		attribute.Int("chunk.end", chunk.End),
	)

	dec, err := p.opener.Open(ctx, path)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		kind := ErrDecode
		if ctxErr := ctx.Err(); ctxErr != nil {
			kind = ctxErr
		}
		return nil, &ChunkError{Chunk: chunk, Index: chunk.Start, Op: "open", Kind: kind, Err: err}
	}
	defer dec.Close()

	log.Debug("chunk started", zap.Int("chunk", chunk.ID), zap.Int("start", chunk.Start), zap.Int("end", chunk.End))
	pairs, err := RunChunk(ctx, dec, chunk, stats.FPS, p.colors)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		log.Debug("chunk failed", zap.Int("chunk", chunk.ID), zap.Error(err))
		return nil, err
	}
	log.Debug("chunk finished", zap.Int("chunk", chunk.ID), zap.Int("samples", len(pairs)))
	return pairs, nil
}
