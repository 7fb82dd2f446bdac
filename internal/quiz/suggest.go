package quiz

import (
	"context"
	"errors"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog/log"
)

// SuggestDelay is the quiet period before a prefix lookup is issued.
const SuggestDelay = 200 * time.Millisecond

type suggestDueMsg struct {
	key   string
	gen   int
	query string
}

type suggestionsMsg struct {
	key   string
	gen   int
	query string
	items []string
	err   error
}

func (m suggestDueMsg) scope() string  { return m.key }
func (m suggestionsMsg) scope() string { return m.key }

// Suggestions is the debounced autocomplete list for one quiz instance.
//
// Every change of the raw input bumps gen, which invalidates the pending
// debounce timer, and cancels the in-flight lookup. A result is applied only
// when its generation and query both match the current input.
type Suggestions struct {
	key    string
	ctx    context.Context
	judge  Judge
	raw    string
	query  string
	gen    int
	cancel context.CancelFunc
	items  []string
	cursor int
	busy   bool
}

// NewSuggestions returns an empty list whose lookups run under ctx.
func NewSuggestions(ctx context.Context, key string, judge Judge) Suggestions {
	return Suggestions{key: key, ctx: ctx, judge: judge}
}

// Items returns the current candidates.
func (s *Suggestions) Items() []string { return s.items }

// Cursor returns the index of the highlighted candidate.
func (s *Suggestions) Cursor() int { return s.cursor }

// Query returns the normalised input the list is keyed by.
func (s *Suggestions) Query() string { return s.query }

// Busy reports whether a lookup is scheduled or in flight.
func (s *Suggestions) Busy() bool { return s.busy }

// SetInput records the latest raw input and schedules a lookup for it.
func (s *Suggestions) SetInput(raw string) tea.Cmd {
	if raw == s.raw {
		return nil
	}
	s.raw = raw
	s.invalidate()
	s.items = nil
	s.cursor = 0
	s.query = normalizeInput(raw)
	if s.query == "" {
		return nil
	}
	s.busy = true
	key, gen, query := s.key, s.gen, s.query
	return tea.Tick(SuggestDelay, func(time.Time) tea.Msg {
		return suggestDueMsg{key: key, gen: gen, query: query}
	})
}

// Select takes the candidate at i as the new input and clears the list.
// No lookup is scheduled; the next keystroke triggers one.
func (s *Suggestions) Select(i int) (string, bool) {
	if i < 0 || i >= len(s.items) {
		return "", false
	}
	picked := s.items[i]
	s.invalidate()
	s.raw = picked
	s.query = normalizeInput(picked)
	s.items = nil
	s.cursor = 0
	return picked, true
}

// Move shifts the highlighted candidate, wrapping at both ends.
func (s *Suggestions) Move(delta int) {
	n := len(s.items)
	if n == 0 {
		return
	}
	s.cursor = ((s.cursor+delta)%n + n) % n
}

// Close cancels pending work; the list stays empty afterwards.
func (s *Suggestions) Close() {
	s.invalidate()
	s.items = nil
}

// Update applies debounce and lookup messages.
func (s *Suggestions) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case suggestDueMsg:
		if msg.key != s.key || msg.gen != s.gen {
			return nil
		}
		ctx, cancel := context.WithCancel(s.ctx)
		s.cancel = cancel
		judge, key, gen, query := s.judge, s.key, s.gen, msg.query
		return func() tea.Msg {
			items, err := judge.Search(ctx, query)
			return suggestionsMsg{key: key, gen: gen, query: query, items: items, err: err}
		}

	case suggestionsMsg:
		if msg.key != s.key || msg.gen != s.gen || msg.query != s.query {
			return nil
		}
		s.release()
		s.busy = false
		if msg.err != nil {
			if !errors.Is(msg.err, context.Canceled) {
				log.Warn().Err(msg.err).Str("instance", s.key).Str("query", msg.query).Msg("suggestion lookup failed")
			}
			s.items = nil
			return nil
		}
		s.items = msg.items
		s.cursor = 0
	}
	return nil
}

func (s *Suggestions) invalidate() {
	s.gen++
	s.busy = false
	s.release()
}

func (s *Suggestions) release() {
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
}
