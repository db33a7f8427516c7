package daemon

import (
	"net/http"

	"videocolors/internal/config"
)

// handleHealth godoc
// @Summary Health check
// @Description Returns service health and version.
// @Tags system
// @Produce json
// @Success 200 {object} HealthResponse
// @Router /health [get]
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{
		Status:  "ok",
		Version: Version,
	})
}

// handleConfig godoc
// @Summary Get or update configuration
// @Description Returns the extraction configuration on GET and updates selected fields on PUT. Updates apply to jobs started afterwards.
// @Tags config
// @Accept json
// @Produce json
// @Param request body ConfigUpdateRequest false "Fields to update (PUT only)"
// @Success 200 {object} Config
// @Success 200 {object} StatusResponse "Update acknowledgment"
// @Failure 400 {object} ErrorResponse
// @Router /config [get]
// @Router /config [put]
func (s *Server) handleConfig(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		s.mu.RLock()
		cfg := s.config
		s.mu.RUnlock()
		writeJSON(w, http.StatusOK, cfg)
	case http.MethodPut:
		var req ConfigUpdateRequest
		if err := decodeJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid json payload")
			return
		}
		s.mu.Lock()
		next := s.config
		if req.Workers != nil {
			next.Workers = *req.Workers
		}
		if req.Executor != nil {
			next.Executor = *req.Executor
		}
		if req.ColorMode != nil {
			next.ColorMode = *req.ColorMode
		}
		if req.MinChunkSeconds != nil {
			next.MinChunkSeconds = *req.MinChunkSeconds
		}
		err := validateConfig(next)
		if err == nil {
			s.config = next
		}
		s.mu.Unlock()
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		writeJSON(w, http.StatusOK, StatusResponse{Status: "ok"})
	}
}

func validateConfig(cfg Config) error {
	pc := cfg.pipelineConfig()
	return pc.Validate()
}

// pipelineConfig converts the extraction settings to the environment config
// type, which owns validation and pipeline construction.
func (c Config) pipelineConfig() config.Config {
	return config.Config{
		Workers:         c.Workers,
		Executor:        c.Executor,
		ColorMode:       c.ColorMode,
		MinChunkSeconds: c.MinChunkSeconds,
	}
}
