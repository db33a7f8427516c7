package daemon

import (
	"net/http"
	"strings"

	"go.uber.org/zap"

	"videocolors/internal/decode"
)

// handleFolders godoc
// @Summary List or track folders
// @Description GET lists tracked folders; POST scans a folder and registers every video file found in it.
// @Tags folders
// @Accept json
// @Produce json
// @Param request body AddFolderRequest true "Folder to track"
// @Success 200 {array} Folder
// @Success 200 {object} AddFolderResponse
// @Failure 400 {object} ErrorResponse
// @Router /folders [get]
// @Router /folders [post]
func (s *Server) handleFolders(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodGet {
		s.mu.RLock()
		list := make([]Folder, 0, len(s.folders))
		for _, f := range s.folders {
			list = append(list, f)
		}
		s.mu.RUnlock()
		writeJSON(w, http.StatusOK, list)
		return
	}

	var req AddFolderRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json payload")
		return
	}
	if strings.TrimSpace(req.Path) == "" {
		writeError(w, http.StatusBadRequest, "path is required")
		return
	}

	s.mu.RLock()
	id, exists := s.folderByPath[req.Path]
	s.mu.RUnlock()
	if exists {
		writeJSON(w, http.StatusOK, AddFolderResponse{
			FolderID: id,
			Status:   "already_exists",
			VideoIDs: []string{},
		})
		return
	}

	paths, err := decode.FindVideos(req.Path, req.Recursive)
	if err != nil {
		writeError(w, http.StatusBadRequest, "scan folder: "+err.Error())
		return
	}

	s.mu.Lock()
	if id, exists := s.folderByPath[req.Path]; exists {
		s.mu.Unlock()
		writeJSON(w, http.StatusOK, AddFolderResponse{FolderID: id, Status: "already_exists", VideoIDs: []string{}})
		return
	}
	videoIDs := make([]string, 0, len(paths))
	for _, p := range paths {
		videoID, _ := s.registerVideoLocked(p)
		videoIDs = append(videoIDs, videoID)
	}
	folderID := newID("fld_")
	s.folders[folderID] = Folder{
		ID:          folderID,
		Path:        req.Path,
		Recursive:   req.Recursive,
		Status:      "scanned",
		VideosFound: len(paths),
	}
	s.folderByPath[req.Path] = folderID
	s.mu.Unlock()

	s.logger.Info("folder scanned", zap.String("path", req.Path), zap.Int("videos", len(paths)))
	writeJSON(w, http.StatusOK, AddFolderResponse{
		FolderID: folderID,
		Status:   "scanned",
		VideoIDs: videoIDs,
	})
}
