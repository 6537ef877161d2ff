package buslocator

import (
	"net/http"

	"github.com/open-bus-tools/israel-bus-locator/analysis"
	"github.com/open-bus-tools/israel-bus-locator/locations"
	"github.com/open-bus-tools/israel-bus-locator/render"
)

func (s *Server) snapshotOr503(w http.ResponseWriter, call string) (*Snapshot, bool) {
	snap, ok := s.cache.Current()
	if !ok {
		writeError(w, http.StatusServiceUnavailable, call, "no snapshot fetched yet")
		return nil, false
	}
	return snap, true
}

func (s *Server) handleLocationsJSON(w http.ResponseWriter, r *http.Request) {
	snap, ok := s.snapshotOr503(w, "locations")
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, locationRows(snap.Table))
}

func (s *Server) handleDistancesJSON(w http.ResponseWriter, r *http.Request) {
	snap, ok := s.snapshotOr503(w, "distances")
	if !ok {
		return
	}
	ref, err := parseReference(r.URL.Query(), snap.Reference)
	if err != nil {
		writeError(w, http.StatusBadRequest, "distances", err.Error())
		return
	}
	distances := snap.Distances
	if ref != snap.Reference {
		distances, err = analysis.CurrentDistances(snap.Table, ref)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "distances", err.Error())
			return
		}
	}
	writeJSON(w, http.StatusOK, distances)
}

func (s *Server) handleMap(w http.ResponseWriter, r *http.Request) {
	snap, ok := s.snapshotOr503(w, "map")
	if !ok {
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := render.WriteMap(w, snap.Table); err != nil {
		writeError(w, http.StatusInternalServerError, "map", err.Error())
	}
}

func (s *Server) handlePlot(w http.ResponseWriter, r *http.Request) {
	snap, ok := s.snapshotOr503(w, "plot")
	if !ok {
		return
	}
	ref, err := parseReference(r.URL.Query(), snap.Reference)
	if err != nil {
		writeError(w, http.StatusBadRequest, "plot", err.Error())
		return
	}
	parts, err := locations.SplitByRide(snap.Table)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "plot", err.Error())
		return
	}
	series, err := analysis.DistanceSeries(parts, ref)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "plot", err.Error())
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := render.WritePlot(w, series); err != nil {
		writeError(w, http.StatusInternalServerError, "plot", err.Error())
	}
}
