package daemon

import (
	"context"
	"fmt"
	"math"
	"os"
	"time"

	"go.uber.org/zap"

	"videocolors/internal/colortrack"
	"videocolors/internal/metrics"
	"videocolors/internal/output"
)

// startJob schedules a color extraction job for a video.
func (s *Server) startJob(videoID string, reextract bool) (*Job, error) {
	s.mu.Lock()
	video, ok := s.videos[videoID]
	if !ok {
		s.mu.Unlock()
		return nil, errNotFound
	}
	for _, job := range s.jobs {
		if job.VideoID == videoID && isActive(job.Status) {
			s.mu.Unlock()
			return nil, errJobRunning
		}
	}
	if reextract {
		video.ColorsExtracted = 0
		video.ColorsExpected = 0
		video.colorsPath = ""
	}
	video.Status = statusExtracting
	video.LastError = nil

	jobID := newID("job_")
	now := time.Now().UTC()
	job := &Job{
		ID:        jobID,
		VideoID:   videoID,
		Type:      "extract_colors",
		Status:    statusQueued,
		CreatedAt: now,
		UpdatedAt: now,
	}
	s.jobs[jobID] = job
	ctx, cancel := context.WithCancel(context.Background())
	s.jobCancel[jobID] = cancel
	cfg := s.config
	path := video.Path
	s.jobsWG.Add(1)
	s.mu.Unlock()

	copyJob := *job
	go s.runJob(ctx, cancel, jobID, videoID, path, cfg)
	return &copyJob, nil
}

func isActive(status string) bool {
	return status == statusQueued || status == statusRunning
}

// cancelJob stops the active job of a video. The worker units observe the
// cancelled context and the job goroutine records nothing further.
func (s *Server) cancelJob(videoID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var jobID string
	for id, job := range s.jobs {
		if job.VideoID == videoID && isActive(job.Status) {
			jobID = id
			break
		}
	}
	if jobID == "" {
		return errNotFound
	}
	if cancel, ok := s.jobCancel[jobID]; ok {
		cancel()
	}
	s.markCancelledLocked(jobID)
	return nil
}

// runJob extracts the track, stores it under the colors root and pushes it
// to the sink when one is configured.
func (s *Server) runJob(ctx context.Context, cancel context.CancelFunc, jobID, videoID, path string, cfg Config) {
	defer s.jobsWG.Done()
	defer func() {
		cancel()
		s.mu.Lock()
		delete(s.jobCancel, jobID)
		s.mu.Unlock()
	}()

	metrics.ActiveJobs.Inc()
	defer metrics.ActiveJobs.Dec()

	log := s.logger.With(zap.String("job_id", jobID), zap.String("video_id", videoID))

	var stats colortrack.VideoStats
	pipeline, err := s.newPipeline(cfg, log, jobID, videoID, &stats)
	if err != nil {
		s.failJob(jobID, err)
		return
	}
	if !s.setJobRunning(jobID) {
		return
	}

	log.Info("extraction started", zap.String("path", path), zap.Int("workers", pipeline.Workers()))
	track, err := pipeline.Extract(ctx, path)
	if err != nil {
		s.finishWithError(ctx, log, jobID, err)
		return
	}

	if err := os.MkdirAll(s.colorsRoot, 0o755); err != nil {
		s.failJob(jobID, fmt.Errorf("prepare colors root: %w", err))
		return
	}
	colorsPath := s.colorsPathFor(videoID)
	if err := output.WriteJSON(track, colorsPath); err != nil {
		s.failJob(jobID, err)
		return
	}
	if !s.completeJob(jobID, colorsPath, len(track)) {
		return
	}
	log.Info("extraction finished", zap.Int("colors", len(track)))

	s.pushToSink(ctx, log, videoID, path, stats, track)
}

// newPipeline builds a pipeline from a config snapshot taken when the job
// was started. The stats the run plans against are recorded on the video and
// stored in stats.
func (s *Server) newPipeline(cfg Config, log *zap.Logger, jobID, videoID string, stats *colortrack.VideoStats) (*colortrack.Pipeline, error) {
	pc := cfg.pipelineConfig()
	if err := pc.Validate(); err != nil {
		return nil, err
	}
	colors, err := pc.Extractor()
	if err != nil {
		return nil, err
	}
	opts, err := pc.PipelineOptions()
	if err != nil {
		return nil, err
	}
	opts = append(opts,
		colortrack.WithLogger(log),
		colortrack.WithProgress(func(done, total int) {
			s.updateProgress(jobID, done, total)
		}),
		colortrack.WithStats(func(vs colortrack.VideoStats) {
			*stats = vs
			s.recordStats(videoID, vs)
		}),
	)
	return colortrack.New(s.opener, colors, opts...), nil
}

func (s *Server) setJobRunning(jobID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	job, ok := s.jobs[jobID]
	if !ok || job.Status != statusQueued {
		return false
	}
	job.Status = statusRunning
	job.UpdatedAt = time.Now().UTC()
	return true
}

func (s *Server) recordStats(videoID string, stats colortrack.VideoStats) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if video, ok := s.videos[videoID]; ok {
		video.FPS = stats.FPS
		video.FrameCount = stats.FrameCount
		video.ColorsExpected = stats.SampleCount()
	}
}

// updateProgress is called from worker goroutines once per finished chunk.
// Progress stays below 1 until the track is stored.
func (s *Server) updateProgress(jobID string, done, total int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	job, ok := s.jobs[jobID]
	if !ok || job.Status != statusRunning || total <= 0 {
		return
	}
	if done > job.ChunksDone {
		job.ChunksDone = done
	}
	job.ChunksTotal = total
	progress := float64(job.ChunksDone) / float64(total)
	if progress >= 1 {
		progress = math.Nextafter(1, 0)
	}
	if progress > job.Progress {
		job.Progress = progress
	}
	job.UpdatedAt = time.Now().UTC()
}

func (s *Server) completeJob(jobID, colorsPath string, colors int) bool {
	now := time.Now().UTC()
	s.mu.Lock()
	defer s.mu.Unlock()
	job, ok := s.jobs[jobID]
	if !ok || job.Status != statusRunning {
		return false
	}
	job.Status = statusDone
	job.Progress = 1
	if job.ChunksTotal > 0 {
		job.ChunksDone = job.ChunksTotal
	}
	job.UpdatedAt = now
	if video, exists := s.videos[job.VideoID]; exists {
		video.Status = statusDone
		video.ColorsExtracted = colors
		video.ColorsExpected = colors
		video.colorsPath = colorsPath
		video.LastError = nil
		video.LastExtractedAt = &now
	}
	return true
}

func (s *Server) finishWithError(ctx context.Context, log *zap.Logger, jobID string, err error) {
	if ctx.Err() != nil {
		log.Info("extraction cancelled")
		s.mu.Lock()
		s.markCancelledLocked(jobID)
		s.mu.Unlock()
		return
	}
	log.Error("extraction failed", zap.Error(err))
	s.failJob(jobID, err)
}

func (s *Server) failJob(jobID string, err error) {
	msg := err.Error()
	now := time.Now().UTC()
	s.mu.Lock()
	defer s.mu.Unlock()
	job, ok := s.jobs[jobID]
	if !ok || !isActive(job.Status) {
		return
	}
	job.Status = statusFailed
	job.Progress = 0
	job.UpdatedAt = now
	if video, exists := s.videos[job.VideoID]; exists {
		video.Status = statusFailed
		video.LastError = &msg
	}
}

func (s *Server) markCancelledLocked(jobID string) {
	job, ok := s.jobs[jobID]
	if !ok || !isActive(job.Status) {
		return
	}
	job.Status = statusCancelled
	job.Progress = 0
	job.UpdatedAt = time.Now().UTC()
	if video, exists := s.videos[job.VideoID]; exists {
		video.Status = statusCancelled
		msg := "cancelled"
		video.LastError = &msg
	}
}

func (s *Server) pushToSink(ctx context.Context, log *zap.Logger, videoID, path string, stats colortrack.VideoStats, track colortrack.ColorTrack) {
	if s.sinkClient == nil {
		return
	}
	s.mu.RLock()
	token := s.sink.AccessToken
	s.mu.RUnlock()
	if token == "" {
		log.Debug("sink push skipped, no access token")
		return
	}

	id, err := s.sinkClient.PushTrack(ctx, token, TrackUpload{
		VideoID:   videoID,
		VideoPath: path,
		FPS:       stats.FPS,
		Colors:    track,
	})
	now := time.Now().UTC()
	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		log.Warn("sink push failed", zap.Error(err))
		msg := err.Error()
		s.sink.Status.LastError = &msg
		return
	}
	log.Info("track pushed to sink", zap.String("sink_id", id))
	s.sink.Status.Connected = true
	s.sink.Status.LastSuccessfulPush = &now
	s.sink.Status.PushedTracks++
	s.sink.Status.LastError = nil
}
