// internal/quiz/quiz.go
//
// One live question. A Quiz is created on every entry into the quiz phase
// and owns everything scoped to that question:
//   - the guess controller and its cooldown,
//   - the hint controller,
//   - the suggestion list,
//   - the silhouette image.
//
// All of it runs under one context; Close cancels that context and stops the
// cooldown, and messages carrying another instance key are dropped.

package quiz

import (
	"context"
	"errors"
	"image"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog/log"
)

type silhouetteMsg struct {
	key string
	img image.Image
	err error
}

func (m silhouetteMsg) scope() string { return m.key }

// Quiz is one question instance.
type Quiz struct {
	key     string
	session Session
	ctx     context.Context
	cancel  context.CancelFunc
	judge   Judge
	closed  bool

	guess   Guesser
	hints   Hints
	suggest Suggestions

	picture    image.Image
	pictureErr error
}

// newQuiz builds an instance for sessionID. The instance takes ownership of
// cancel and calls it from Close.
func newQuiz(ctx context.Context, cancel context.CancelFunc, key, sessionID string, judge Judge) *Quiz {
	return &Quiz{
		key:     key,
		session: Session{ID: sessionID},
		ctx:     ctx,
		cancel:  cancel,
		judge:   judge,
		guess:   NewGuesser(ctx, key, sessionID, judge),
		hints:   NewHints(ctx, key, sessionID, judge),
		suggest: NewSuggestions(ctx, key, judge),
	}
}

// Key is the instance key. It doubles as the silhouette cache-busting token.
func (q *Quiz) Key() string { return q.key }

// Session returns the session as known so far.
func (q *Quiz) Session() Session { return q.session }

// Guesser exposes the guess controller for rendering.
func (q *Quiz) Guesser() *Guesser { return &q.guess }

// Hints exposes the hint controller for rendering.
func (q *Quiz) Hints() *Hints { return &q.hints }

// Suggestions exposes the suggestion list for rendering.
func (q *Quiz) Suggestions() *Suggestions { return &q.suggest }

// Picture returns the silhouette once loaded.
func (q *Quiz) Picture() (image.Image, error) { return q.picture, q.pictureErr }

// Closed reports whether the instance has been torn down.
func (q *Quiz) Closed() bool { return q.closed }

// Init loads the silhouette.
func (q *Quiz) Init() tea.Cmd {
	ctx, judge, key, sid := q.ctx, q.judge, q.key, q.session.ID
	return func() tea.Msg {
		img, err := judge.Silhouette(ctx, sid, key)
		return silhouetteMsg{key: key, img: img, err: err}
	}
}

// Submit sends a guess.
func (q *Quiz) Submit(text string) tea.Cmd {
	if q.closed {
		return nil
	}
	return q.guess.Submit(text)
}

// GiveUp requests the answer.
func (q *Quiz) GiveUp() tea.Cmd {
	if q.closed {
		return nil
	}
	return q.guess.GiveUp()
}

// Reveal discloses one hint field.
func (q *Quiz) Reveal(f HintField) tea.Cmd {
	if q.closed {
		return nil
	}
	return q.hints.Reveal(f)
}

// SetInput feeds the current input text to the suggestion list.
func (q *Quiz) SetInput(text string) tea.Cmd {
	if q.closed {
		return nil
	}
	return q.suggest.SetInput(text)
}

// Finished returns how the instance ended, once known.
func (q *Quiz) Finished() (Finish, bool) { return q.guess.Finished() }

// Update routes a message to the controller that owns it.
func (q *Quiz) Update(msg tea.Msg) tea.Cmd {
	if q.closed {
		return nil
	}
	if s, ok := msg.(scoped); ok && s.scope() != q.key {
		return nil
	}
	switch msg := msg.(type) {
	case silhouetteMsg:
		q.picture, q.pictureErr = msg.img, msg.err
		if msg.err != nil && !errors.Is(msg.err, context.Canceled) {
			log.Warn().Err(msg.err).Str("session", q.session.ID).Msg("silhouette fetch failed")
		}
		return nil
	case suggestDueMsg, suggestionsMsg:
		return q.suggest.Update(msg)
	case hintsMsg:
		return q.hints.Update(msg)
	}
	return q.guess.Update(msg)
}

// Close tears the instance down: in-flight requests are cancelled and the
// cooldown stops. Safe to call more than once.
func (q *Quiz) Close() {
	if q.closed {
		return
	}
	q.closed = true
	q.guess.stop()
	q.suggest.Close()
	q.cancel()
}
