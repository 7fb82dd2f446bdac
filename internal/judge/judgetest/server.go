// internal/judge/judgetest/server.go
//
// Local stand-in for the silhouette quiz service, for tests.
// Responsibilities:
//   - chi router + middleware (request ids, panic recovery, JSON default).
//   - Session endpoints: start, guess (with throttle → retryAfter), give up.
//   - Lookup endpoints (routes_lookup.go): hint, prefix search, images.
//   - Per-route hit counters so tests can assert how often the client called.
//
// Notes:
//   - Sessions live in memory only.
//   - Unknown session ids answer 404 {"error":"session not found"}.

package judgetest

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/silhouette-quiz/assets"
)

// DefaultThrottle matches the production service's guess interval.
const DefaultThrottle = 5 * time.Second

// Server is a running judge stub.
type Server struct {
	URL string

	r        *chi.Mux
	http     *httptest.Server
	store    *store
	dex      *dex
	throttle time.Duration
	now      func() time.Time
	answer   string

	mu    sync.Mutex
	hits  map[string]int
	holds map[string]chan struct{}
}

// Option customises a Server.
type Option func(*Server)

// WithThrottle sets the minimum interval between guesses (0 disables it).
func WithThrottle(d time.Duration) Option { return func(s *Server) { s.throttle = d } }

// WithClock replaces time.Now for throttle decisions.
func WithClock(now func() time.Time) Option { return func(s *Server) { s.now = now } }

// WithAnswer forces every new session onto the named entry.
func WithAnswer(name string) Option { return func(s *Server) { s.answer = name } }

// NewServer starts a stub on a loopback port. Call Close when done.
func NewServer(opts ...Option) *Server {
	d, err := loadDex()
	if err != nil {
		panic(err)
	}
	s := &Server{
		r:        chi.NewRouter(),
		store:    newStore(),
		dex:      d,
		throttle: DefaultThrottle,
		now:      time.Now,
		hits:     make(map[string]int),
		holds:    make(map[string]chan struct{}),
	}
	for _, opt := range opts {
		opt(s)
	}

	s.r.Use(chimw.RequestID)
	s.r.Use(chimw.Recoverer)
	s.r.Use(jsonContentType)

	s.r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"ok":true}`))
	})
	s.r.Route("/api/quiz", func(r chi.Router) {
		r.Post("/start", s.handleStart)
		r.Post("/guess", s.handleGuess)
		r.Post("/giveup", s.handleGiveUp)
		s.mountLookups(r)
	})
	s.r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		httpError(w, http.StatusNotFound, "not_found")
	})

	s.http = httptest.NewServer(s.r)
	s.URL = s.http.URL
	return s
}

// Close shuts the listener down, releasing any held requests first.
func (s *Server) Close() {
	s.mu.Lock()
	for p, ch := range s.holds {
		close(ch)
		delete(s.holds, p)
	}
	s.mu.Unlock()
	s.http.Close()
}

// Hits reports how many requests matched a route pattern, e.g.
// "/api/quiz/hint/{sessionId}".
func (s *Server) Hits(pattern string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.hits[pattern]
}

// Hold makes requests to pattern block until Release(pattern).
func (s *Server) Hold(pattern string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.holds[pattern]; !ok {
		s.holds[pattern] = make(chan struct{})
	}
}

// Release unblocks requests held on pattern.
func (s *Server) Release(pattern string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if ch, ok := s.holds[pattern]; ok {
		close(ch)
		delete(s.holds, pattern)
	}
}

// Expire forgets a session, as if it lapsed server-side.
func (s *Server) Expire(sessionID string) { s.store.delete(sessionID) }

// Sessions reports how many sessions exist.
func (s *Server) Sessions() int { return s.store.len() }

// ----------------------------- middleware ----------------------------------

// jsonContentType sets a default JSON Content-Type; image handlers override it.
func jsonContentType(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		next.ServeHTTP(w, r)
	})
}

// track counts a request against its route pattern, then blocks while the
// pattern is held or until the request is cancelled.
func (s *Server) track(r *http.Request) {
	pattern := chi.RouteContext(r.Context()).RoutePattern()
	s.mu.Lock()
	s.hits[pattern]++
	ch, ok := s.holds[pattern]
	s.mu.Unlock()
	if !ok {
		return
	}
	select {
	case <-ch:
	case <-r.Context().Done():
	}
}

// ------------------------------ sessions -----------------------------------

type startReq struct {
	Regions     []string `json:"regions"`
	AllowMega   bool     `json:"allowMega"`
	AllowPrimal bool     `json:"allowPrimal"`
}
type startRes struct {
	SessionID string `json:"sessionId"`
}

func (s *Server) handleStart(w http.ResponseWriter, r *http.Request) {
	var req startReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpError(w, http.StatusBadRequest, "bad_json")
		return
	}
	s.track(r)

	var entry assets.Entry
	if s.answer != "" {
		e, ok := s.dex.find(s.answer)
		if !ok {
			httpError(w, http.StatusInternalServerError, "unknown forced answer")
			return
		}
		entry = e
	} else {
		list := s.dex.candidates(req.Regions, req.AllowMega, req.AllowPrimal)
		if len(list) == 0 {
			httpError(w, http.StatusBadRequest, "no pokemon range selected")
			return
		}
		entry = pickOne(list)
	}

	sess := &session{ID: uuid.NewString(), Entry: entry, Region: s.dex.regionOf(entry.ID)}
	s.store.save(sess)
	log.Debug().Str("session", sess.ID).Str("answer", entry.Name).Msg("stub session started")
	writeJSON(w, startRes{SessionID: sess.ID})
}

type guessReq struct {
	SessionID string `json:"sessionId"`
	Answer    string `json:"answer"`
}
type guessRes struct {
	Correct    bool `json:"correct"`
	Solved     bool `json:"solved"`
	RetryAfter int  `json:"retryAfter,omitempty"`
	PokemonID  int  `json:"pokemonId,omitempty"`
}

func (s *Server) handleGuess(w http.ResponseWriter, r *http.Request) {
	var req guessReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpError(w, http.StatusBadRequest, "bad_json")
		return
	}
	s.track(r)
	sess, err := s.store.get(req.SessionID)
	if err != nil {
		httpError(w, http.StatusNotFound, err.Error())
		return
	}
	correct, wait, err := sess.submit(req.Answer, s.now(), s.throttle)
	switch {
	case err == errTooSoon:
		writeJSON(w, guessRes{RetryAfter: retryAfterSeconds(wait)})
	case err == errAlreadyFinished:
		writeJSON(w, guessRes{Solved: true})
	case correct:
		writeJSON(w, guessRes{Correct: true, Solved: true, PokemonID: sess.Entry.ID})
	default:
		writeJSON(w, guessRes{})
	}
}

type giveUpReq struct {
	SessionID string `json:"sessionId"`
}
type resultRes struct {
	PokemonID int      `json:"pokemonId"`
	Name      string   `json:"name"`
	Types     []string `json:"types"`
	Region    string   `json:"region"`
}

func (s *Server) handleGiveUp(w http.ResponseWriter, r *http.Request) {
	var req giveUpReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpError(w, http.StatusBadRequest, "bad_json")
		return
	}
	s.track(r)
	sess, err := s.store.get(req.SessionID)
	if err != nil {
		httpError(w, http.StatusNotFound, err.Error())
		return
	}
	sess.giveUp()
	writeJSON(w, resultRes{
		PokemonID: sess.Entry.ID,
		Name:      sess.displayName(),
		Types:     sess.Entry.Types,
		Region:    sess.Region.Key,
	})
}

// ------------------------------- helpers -----------------------------------

func writeJSON(w http.ResponseWriter, v any) {
	_ = json.NewEncoder(w).Encode(v)
}

func httpError(w http.ResponseWriter, code int, msg string) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
