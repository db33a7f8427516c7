package daemon

import (
	"net/http"
	"sort"
)

// handleJobs godoc
// @Summary List jobs
// @Description Returns all color extraction jobs with chunk progress, oldest first.
// @Tags jobs
// @Produce json
// @Success 200 {array} Job
// @Router /jobs [get]
func (s *Server) handleJobs(w http.ResponseWriter, r *http.Request) {
	s.mu.RLock()
	list := make([]Job, 0, len(s.jobs))
	for _, j := range s.jobs {
		copyJob := *j
		list = append(list, copyJob)
	}
	s.mu.RUnlock()
	sort.Slice(list, func(i, k int) bool {
		return list[i].CreatedAt.Before(list[k].CreatedAt)
	})
	writeJSON(w, http.StatusOK, list)
}
