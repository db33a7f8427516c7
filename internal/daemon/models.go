package daemon

import (
	"errors"
	"time"

	"videocolors/internal/colortrack"
)

// Config holds the extraction settings applied to new jobs.
type Config struct {
	Workers         int    `json:"workers" example:"4"`
	Executor        string `json:"executor" example:"pool"`
	ColorMode       string `json:"color_mode" example:"mean"`
	MinChunkSeconds int    `json:"min_chunk_seconds" example:"90"`
	SinkURL         string `json:"sink_url" example:"http://localhost:9000"`
	SinkAuthStatus  string `json:"sink_auth_status" example:"missing_token"`
	Stateless       bool   `json:"stateless" example:"false"`
}

// Folder represents a tracked folder scanned for videos.
type Folder struct {
	ID          string `json:"folder_id" example:"fld_abcd1234"`
	Path        string `json:"path" example:"/videos"`
	Recursive   bool   `json:"recursive" example:"true"`
	Status      string `json:"status" example:"scanned"`
	VideosFound int    `json:"videos_found" example:"3"`
}

// Video tracks a single video and the state of its color track.
type Video struct {
	ID              string     `json:"video_id" example:"vid_abcd1234"`
	Path            string     `json:"path" example:"/videos/sample.mp4"`
	Status          string     `json:"status" example:"extracting"`
	FPS             int        `json:"fps,omitempty" example:"25"`
	FrameCount      int        `json:"frame_count,omitempty" example:"3000"`
	ColorsExpected  int        `json:"colors_expected" example:"120"`
	ColorsExtracted int        `json:"colors_extracted" example:"120"`
	LastExtractedAt *time.Time `json:"last_extracted_at" example:"2024-01-01T12:00:00Z"`
	LastError       *string    `json:"last_error" example:"chunk 2 [300,400): read at frame 350: unexpected end of stream"`

	colorsPath string
}

// Job represents one color extraction run.
type Job struct {
	ID          string    `json:"job_id" example:"job_abcd1234"`
	VideoID     string    `json:"video_id" example:"vid_abcd1234"`
	Type        string    `json:"type" example:"extract_colors"`
	Status      string    `json:"status" example:"running"`
	Progress    float64   `json:"progress" example:"0.5"`
	ChunksDone  int       `json:"chunks_done" example:"2"`
	ChunksTotal int       `json:"chunks_total" example:"4"`
	CreatedAt   time.Time `json:"created_at" example:"2024-01-01T12:00:00Z"`
	UpdatedAt   time.Time `json:"updated_at" example:"2024-01-01T12:05:00Z"`
}

const (
	statusPending    = "pending"
	statusQueued     = "queued"
	statusRunning    = "running"
	statusExtracting = "extracting"
	statusDone       = "done"
	statusFailed     = "failed"
	statusCancelled  = "cancelled"
)

// SinkStatus describes the connection to the remote track sink.
type SinkStatus struct {
	URL                string     `json:"url" example:"http://localhost:9000"`
	Connected          bool       `json:"connected" example:"true"`
	LastSuccessfulPush *time.Time `json:"last_successful_push" example:"2024-01-01T12:10:00Z"`
	PushedTracks       int        `json:"pushed_tracks" example:"3"`
	LastError          *string    `json:"last_error" example:"sink push failed (502): bad gateway"`
}

type SinkState struct {
	AccessToken string
	Status      SinkStatus
}

// ColorsResponse is the stored track of a video.
type ColorsResponse struct {
	VideoID string                `json:"video_id" example:"vid_abcd1234"`
	Colors  colortrack.ColorTrack `json:"colors" swaggertype:"array,array,integer"`
}

// ErrorResponse represents a standard error payload.
type ErrorResponse struct {
	Error string `json:"error" example:"description of the error"`
}

// HealthResponse describes the health endpoint payload.
type HealthResponse struct {
	Status  string `json:"status" example:"ok"`
	Version string `json:"version" example:"0.1.0"`
}

// ConfigUpdateRequest allows partial configuration updates.
type ConfigUpdateRequest struct {
	Workers         *int    `json:"workers" example:"8"`
	Executor        *string `json:"executor" example:"forkjoin"`
	ColorMode       *string `json:"color_mode" example:"dominant"`
	MinChunkSeconds *int    `json:"min_chunk_seconds" example:"60"`
}

// StatusResponse is a generic status wrapper.
type StatusResponse struct {
	Status string `json:"status" example:"ok"`
}

// AddFolderRequest is the payload to track a folder.
type AddFolderRequest struct {
	Path      string `json:"path" example:"/videos"`
	Recursive bool   `json:"recursive" example:"true"`
}

// AddFolderResponse returns the tracked folder ID and the videos it added.
type AddFolderResponse struct {
	FolderID string   `json:"folder_id" example:"fld_abcd1234"`
	Status   string   `json:"status" example:"scanned"`
	VideoIDs []string `json:"video_ids"`
}

// AddVideoRequest registers a new video for extraction.
type AddVideoRequest struct {
	Path string `json:"path" example:"/videos/sample.mp4"`
}

// AddVideoResponse returns the created video ID.
type AddVideoResponse struct {
	VideoID string `json:"video_id" example:"vid_abcd1234"`
	Status  string `json:"status" example:"scheduled"`
}

// ExtractRequest toggles whether to discard a previous track.
type ExtractRequest struct {
	Reextract bool `json:"reextract" example:"false"`
}

// StartJobResponse provides the started job ID.
type StartJobResponse struct {
	Status string `json:"status" example:"started"`
	JobID  string `json:"job_id" example:"job_abcd1234"`
}

// CancelJobResponse indicates a cancellation attempt.
type CancelJobResponse struct {
	Status string `json:"status" example:"cancelling"`
}

// SinkAuthRequest is the payload to store a sink access token.
type SinkAuthRequest struct {
	AccessToken string `json:"access_token" example:"token_abc123"`
}

var (
	errNotFound   = errors.New("not found")
	errJobRunning = errors.New("an extraction job is already running for this video")
)
