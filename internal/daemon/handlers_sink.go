package daemon

import (
	"net/http"
	"strings"
)

// handleSinkStatus godoc
// @Summary Get sink status
// @Description Returns the remote track sink connection state and push counters.
// @Tags sink
// @Produce json
// @Success 200 {object} SinkStatus
// @Router /sink/status [get]
func (s *Server) handleSinkStatus(w http.ResponseWriter, r *http.Request) {
	s.mu.RLock()
	status := s.sink.Status
	s.mu.RUnlock()
	writeJSON(w, http.StatusOK, status)
}

// handleSinkAuth godoc
// @Summary Store sink access token
// @Description Saves the bearer token used when pushing finished tracks to the sink.
// @Tags sink
// @Accept json
// @Produce json
// @Param request body SinkAuthRequest true "Access token"
// @Success 200 {object} StatusResponse
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /sink/auth [post]
func (s *Server) handleSinkAuth(w http.ResponseWriter, r *http.Request) {
	var req SinkAuthRequest
	if err := decodeJSON(r, &req); err != nil || strings.TrimSpace(req.AccessToken) == "" {
		writeError(w, http.StatusBadRequest, "access_token is required")
		return
	}
	if s.sinkClient == nil {
		writeError(w, http.StatusConflict, "no sink configured")
		return
	}

	s.mu.Lock()
	s.sink.AccessToken = req.AccessToken
	s.config.SinkAuthStatus = "ok"
	s.sink.Status.Connected = true
	s.mu.Unlock()

	writeJSON(w, http.StatusOK, StatusResponse{Status: "ok"})
}
