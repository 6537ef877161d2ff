package buslocator

import "net/http"

type healthResponse struct {
	Status        string `json:"status"`
	SnapshotEpoch int64  `json:"snapshot_epoch"`
	SnapshotRows  int    `json:"snapshot_rows"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	resp := healthResponse{Status: "ok"}
	if snap, ok := s.cache.Current(); ok {
		resp.SnapshotEpoch = snap.FetchedAt.Unix()
		resp.SnapshotRows = snap.Table.Len()
	}
	writeJSON(w, http.StatusOK, resp)
}
