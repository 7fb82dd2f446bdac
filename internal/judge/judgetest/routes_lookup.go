// internal/judge/judgetest/routes_lookup.go
//
// Read-only routes of the judge stub:
//   - GET /api/quiz/hint/{sessionId}                 → types, region label, first letter
//   - GET /api/quiz/search?prefix=                   → candidate names
//   - GET /api/quiz/silhouette/session/{sessionId}   → black PNG
//   - GET /api/quiz/artwork/session/{sessionId}      → colour PNG, 403 before reveal

package judgetest

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

func (s *Server) mountLookups(r chi.Router) {
	r.Get("/hint/{sessionId}", s.handleHint)
	r.Get("/search", s.handleSearch)
	r.Get("/silhouette/session/{sessionId}", s.handleSilhouette)
	r.Get("/artwork/session/{sessionId}", s.handleArtwork)
}

type hintRes struct {
	Types       []string `json:"types"`
	Region      string   `json:"region"`
	FirstLetter string   `json:"firstLetter"`
}

func (s *Server) handleHint(w http.ResponseWriter, r *http.Request) {
	s.track(r)
	sess, err := s.store.get(chi.URLParam(r, "sessionId"))
	if err != nil {
		httpError(w, http.StatusNotFound, err.Error())
		return
	}
	types := make([]string, 0, len(sess.Entry.Types))
	for _, t := range sess.Entry.Types {
		types = append(types, typeLabel(t))
	}
	first := ""
	for _, ch := range sess.displayName() {
		first = string(ch)
		break
	}
	writeJSON(w, hintRes{Types: types, Region: sess.Region.Label, FirstLetter: first})
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	s.track(r)
	writeJSON(w, s.dex.search(r.URL.Query().Get("prefix")))
}

func (s *Server) handleSilhouette(w http.ResponseWriter, r *http.Request) {
	s.track(r)
	sess, err := s.store.get(chi.URLParam(r, "sessionId"))
	if err != nil {
		httpError(w, http.StatusNotFound, err.Error())
		return
	}
	writePNG(w, drawCreature(sess.Entry, true))
}

func (s *Server) handleArtwork(w http.ResponseWriter, r *http.Request) {
	s.track(r)
	sess, err := s.store.get(chi.URLParam(r, "sessionId"))
	if err != nil {
		httpError(w, http.StatusNotFound, err.Error())
		return
	}
	if !sess.revealed() {
		httpError(w, http.StatusForbidden, "not revealed yet")
		return
	}
	writePNG(w, drawCreature(sess.Entry, false))
}

func writePNG(w http.ResponseWriter, data []byte) {
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "no-store")
	_, _ = w.Write(data)
}
