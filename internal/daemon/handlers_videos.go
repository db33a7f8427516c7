package daemon

import (
	"errors"
	"net/http"
	"os"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"videocolors/internal/output"
)

// handleVideos godoc
// @Summary List or register videos
// @Description GET lists tracked videos; POST registers a new video for extraction.
// @Tags videos
// @Accept json
// @Produce json
// @Param request body AddVideoRequest true "Video to register"
// @Success 200 {array} Video
// @Success 200 {object} AddVideoResponse
// @Failure 400 {object} ErrorResponse
// @Router /videos [get]
// @Router /videos [post]
func (s *Server) handleVideos(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		s.mu.RLock()
		list := make([]Video, 0, len(s.videos))
		for _, v := range s.videos {
			copyVideo := *v
			list = append(list, copyVideo)
		}
		s.mu.RUnlock()
		writeJSON(w, http.StatusOK, list)
	case http.MethodPost:
		var req AddVideoRequest
		if err := decodeJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid json payload")
			return
		}
		if strings.TrimSpace(req.Path) == "" {
			writeError(w, http.StatusBadRequest, "path is required")
			return
		}
		s.mu.Lock()
		videoID, created := s.registerVideoLocked(req.Path)
		s.mu.Unlock()

		status := "scheduled"
		if !created {
			status = "already_exists"
		}
		writeJSON(w, http.StatusOK, AddVideoResponse{VideoID: videoID, Status: status})
	}
}

// registerVideoLocked returns the ID for path, creating the video if it is
// new. Callers hold s.mu.
func (s *Server) registerVideoLocked(path string) (string, bool) {
	if id, exists := s.videoByPath[path]; exists {
		return id, false
	}
	videoID := newID("vid_")
	s.videos[videoID] = &Video{
		ID:     videoID,
		Path:   path,
		Status: statusPending,
	}
	s.videoByPath[path] = videoID
	return videoID, true
}

// handleGetVideo godoc
// @Summary Get video details
// @Description Returns stored metadata and extraction status for a video.
// @Tags videos
// @Produce json
// @Param videoID path string true "Video ID"
// @Success 200 {object} Video
// @Failure 404 {object} ErrorResponse
// @Router /videos/{videoID} [get]
func (s *Server) handleGetVideo(w http.ResponseWriter, r *http.Request) {
	videoID := chi.URLParam(r, "videoID")
	s.mu.RLock()
	video, ok := s.videos[videoID]
	if ok {
		copyVideo := *video
		s.mu.RUnlock()
		writeJSON(w, http.StatusOK, copyVideo)
		return
	}
	s.mu.RUnlock()
	writeError(w, http.StatusNotFound, "video not found")
}

// handleExtract godoc
// @Summary Start extraction job
// @Description Starts a color extraction job for the given video.
// @Tags videos
// @Accept json
// @Produce json
// @Param videoID path string true "Video ID"
// @Param request body ExtractRequest false "Extraction options"
// @Success 200 {object} StartJobResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /videos/{videoID}/extract [post]
func (s *Server) handleExtract(w http.ResponseWriter, r *http.Request) {
	videoID := chi.URLParam(r, "videoID")
	var req ExtractRequest
	_ = decodeJSON(r, &req)
	job, err := s.startJob(videoID, req.Reextract)
	if err != nil {
		switch {
		case errors.Is(err, errNotFound):
			writeError(w, http.StatusNotFound, "video not found")
		case errors.Is(err, errJobRunning):
			writeError(w, http.StatusConflict, err.Error())
		default:
			writeError(w, http.StatusBadRequest, err.Error())
		}
		return
	}
	writeJSON(w, http.StatusOK, StartJobResponse{Status: "started", JobID: job.ID})
}

// handleCancel godoc
// @Summary Cancel extraction job
// @Description Cancels the active job for the given video. No partial track is stored.
// @Tags videos
// @Produce json
// @Param videoID path string true "Video ID"
// @Success 200 {object} CancelJobResponse
// @Failure 404 {object} ErrorResponse
// @Router /videos/{videoID}/cancel [post]
func (s *Server) handleCancel(w http.ResponseWriter, r *http.Request) {
	videoID := chi.URLParam(r, "videoID")
	if err := s.cancelJob(videoID); err != nil {
		if errors.Is(err, errNotFound) {
			writeError(w, http.StatusNotFound, "video not found or no active job")
			return
		}
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, CancelJobResponse{Status: "cancelling"})
}

// storedColorsPath returns where the finished track of a video lives.
func (s *Server) storedColorsPath(w http.ResponseWriter, r *http.Request) (string, string, bool) {
	videoID := chi.URLParam(r, "videoID")
	s.mu.RLock()
	video, ok := s.videos[videoID]
	var path string
	if ok {
		path = video.colorsPath
	}
	s.mu.RUnlock()
	if !ok {
		writeError(w, http.StatusNotFound, "video not found")
		return "", "", false
	}
	if path == "" {
		writeError(w, http.StatusConflict, "colors not extracted yet")
		return "", "", false
	}
	return videoID, path, true
}

// handleColors godoc
// @Summary Get color track
// @Description Returns the stored color track, one [r,g,b] entry per second of video.
// @Tags videos
// @Produce json
// @Param videoID path string true "Video ID"
// @Success 200 {object} ColorsResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /videos/{videoID}/colors [get]
func (s *Server) handleColors(w http.ResponseWriter, r *http.Request) {
	videoID, path, ok := s.storedColorsPath(w, r)
	if !ok {
		return
	}
	track, err := output.ReadJSON(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			writeError(w, http.StatusNotFound, "stored colors missing")
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, ColorsResponse{VideoID: videoID, Colors: track})
}

// handleBarcode godoc
// @Summary Render color barcode
// @Description Renders the stored color track as a PNG strip, one column per second.
// @Tags videos
// @Produce png
// @Param videoID path string true "Video ID"
// @Param height query int false "Image height in pixels"
// @Success 200 {file} file
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /videos/{videoID}/barcode [get]
func (s *Server) handleBarcode(w http.ResponseWriter, r *http.Request) {
	_, path, ok := s.storedColorsPath(w, r)
	if !ok {
		return
	}
	track, err := output.ReadJSON(path)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	img, err := output.Barcode(track, output.Options{Height: queryInt(r, "height")})
	if err != nil {
		writeError(w, http.StatusConflict, err.Error())
		return
	}
	w.Header().Set("Content-Type", "image/png")
	if err := imaging.Encode(w, img, imaging.PNG); err != nil {
		s.logger.Warn("encode barcode", zap.Error(err))
	}
}

// handleVideoFile streams a registered video's file contents.
func (s *Server) handleVideoFile(w http.ResponseWriter, r *http.Request) {
	videoID := chi.URLParam(r, "videoID")
	s.mu.RLock()
	video, ok := s.videos[videoID]
	var path string
	if ok {
		path = video.Path
	}
	s.mu.RUnlock()
	if !ok {
		writeError(w, http.StatusNotFound, "video not found")
		return
	}
	if strings.TrimSpace(path) == "" {
		writeError(w, http.StatusNotFound, "video path missing")
		return
	}

	http.ServeFile(w, r, path)
}
