package daemon

import (
	"encoding/json"
	"net/http"
	"path/filepath"
	"strconv"

	"github.com/google/uuid"
)

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, ErrorResponse{Error: msg})
}

func decodeJSON(r *http.Request, v interface{}) error {
	return json.NewDecoder(r.Body).Decode(v)
}

func newID(prefix string) string {
	return prefix + uuid.NewString()
}

// colorsPathFor keys stored tracks by video ID.
func (s *Server) colorsPathFor(videoID string) string {
	return filepath.Join(s.colorsRoot, videoID+".json")
}

func queryInt(r *http.Request, key string) int {
	n, err := strconv.Atoi(r.URL.Query().Get(key))
	if err != nil {
		return 0
	}
	return n
}
