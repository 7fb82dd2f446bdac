package quiz

import (
	"context"
	"errors"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog/log"
)

// HintField names one independently revealable hint.
type HintField int

const (
	HintType HintField = iota
	HintRegion
	HintFirstLetter
)

// HintFields lists every field in display order.
var HintFields = [...]HintField{HintType, HintRegion, HintFirstLetter}

func (f HintField) String() string {
	switch f {
	case HintType:
		return "type"
	case HintRegion:
		return "region"
	case HintFirstLetter:
		return "firstLetter"
	}
	return "unknown"
}

type hintLoad int

const (
	hintIdle hintLoad = iota
	hintLoading
	hintLoaded
	hintFailed
)

type hintsMsg struct {
	key    string
	bundle HintBundle
	err    error
}

func (m hintsMsg) scope() string { return m.key }

// Hints discloses the hint bundle field by field. The bundle is fetched
// lazily on the first reveal; a reveal is never undone.
type Hints struct {
	key       string
	sessionID string
	ctx       context.Context
	judge     Judge
	revealed  [len(HintFields)]bool
	state     hintLoad
	bundle    HintBundle
	fetches   int
}

// NewHints returns a controller with every field hidden.
func NewHints(ctx context.Context, key, sessionID string, judge Judge) Hints {
	return Hints{key: key, sessionID: sessionID, ctx: ctx, judge: judge}
}

// Reveal shows f and starts the bundle fetch if it is neither loaded nor
// already in flight. Revealing after a failed fetch retries it.
func (h *Hints) Reveal(f HintField) tea.Cmd {
	if f < 0 || int(f) >= len(h.revealed) {
		return nil
	}
	h.revealed[f] = true
	if h.state == hintLoading || h.state == hintLoaded {
		return nil
	}
	h.state = hintLoading
	h.fetches++
	ctx, judge, key, sid := h.ctx, h.judge, h.key, h.sessionID
	return func() tea.Msg {
		b, err := judge.Hint(ctx, sid)
		return hintsMsg{key: key, bundle: b, err: err}
	}
}

// Revealed reports whether f has been revealed.
func (h *Hints) Revealed(f HintField) bool {
	return f >= 0 && int(f) < len(h.revealed) && h.revealed[f]
}

// Loading reports whether the bundle fetch is in flight.
func (h *Hints) Loading() bool { return h.state == hintLoading }

// Value returns the display text of a revealed field. ok is false while the
// bundle is unavailable (pending or failed) or the field is still hidden.
func (h *Hints) Value(f HintField) (string, bool) {
	if !h.Revealed(f) || h.state != hintLoaded {
		return "", false
	}
	switch f {
	case HintType:
		return strings.Join(h.bundle.Types, " / "), true
	case HintRegion:
		return h.bundle.Region, true
	case HintFirstLetter:
		return h.bundle.FirstLetter, true
	}
	return "", false
}

// Update applies the fetch result.
func (h *Hints) Update(msg tea.Msg) tea.Cmd {
	m, ok := msg.(hintsMsg)
	if !ok || m.key != h.key || h.state != hintLoading {
		return nil
	}
	if m.err != nil {
		h.state = hintFailed
		if !errors.Is(m.err, context.Canceled) {
			log.Warn().Err(m.err).Str("session", h.sessionID).Msg("hint fetch failed")
		}
		return nil
	}
	h.bundle = m.bundle
	h.state = hintLoaded
	return nil
}
