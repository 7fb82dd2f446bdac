// internal/quiz/guess.go
//
// Guess submission controller.
// Responsibilities:
//   - Reject empty guesses and guesses during a cooldown without a network call.
//   - Keep at most one submission in flight.
//   - Classify the judge's reply into exactly one Outcome and act on it
//     (finish / arm cooldown / "incorrect" message).
//   - Give up on request; giving up ignores the cooldown.
//   - Ignore both operations once a finish has been requested.

package quiz

import (
	"context"
	"errors"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog/log"
)

type guessedMsg struct {
	key    string
	text   string
	result GuessResult
	err    error
}

type gaveUpMsg struct {
	key    string
	answer Answer
	err    error
}

func (m guessedMsg) scope() string { return m.key }
func (m gaveUpMsg) scope() string  { return m.key }

// Finish is how a quiz instance ended.
type Finish struct {
	Answer    string
	PokemonID int
	Solved    bool
	GaveUp    bool
	Types     []string
	Region    string
	Err       error // give-up reply failed; Answer is unknown
}

// Guesser owns the guess / give-up protocol of one quiz instance.
type Guesser struct {
	key       string
	sessionID string
	ctx       context.Context
	judge     Judge
	cooldown  Cooldown
	pending   bool // guess in flight
	giving    bool // give-up in flight
	finishing bool // finish requested; submit and give-up are no-ops
	expired   bool // server lost the session
	finish    *Finish
	last      Outcome
	message   string
}

// NewGuesser returns a controller ready to submit.
func NewGuesser(ctx context.Context, key, sessionID string, judge Judge) Guesser {
	return Guesser{
		key:       key,
		sessionID: sessionID,
		ctx:       ctx,
		judge:     judge,
		cooldown:  NewCooldown(key),
	}
}

// Message is the user-visible status line.
func (g *Guesser) Message() string { return g.message }

// Pending reports whether a guess or give-up is in flight.
func (g *Guesser) Pending() bool { return g.pending || g.giving }

// Expired reports whether the server no longer knows the session.
func (g *Guesser) Expired() bool { return g.expired }

// LastOutcome returns the outcome of the most recent judged guess.
func (g *Guesser) LastOutcome() Outcome { return g.last }

// Cooldown exposes the cooldown counter.
func (g *Guesser) Cooldown() *Cooldown { return &g.cooldown }

// Finished returns the finish once one is known.
func (g *Guesser) Finished() (Finish, bool) {
	if g.finish == nil {
		return Finish{}, false
	}
	return *g.finish, true
}

// Submit sends text to the judge if the preconditions hold.
func (g *Guesser) Submit(text string) tea.Cmd {
	if g.finishing {
		return nil
	}
	if g.expired {
		g.message = MsgExpired
		return nil
	}
	text = normalizeInput(text)
	if text == "" {
		g.message = MsgEmptyGuess
		return nil
	}
	if g.cooldown.Active() {
		g.message = MsgCooldown
		return nil
	}
	if g.pending {
		return nil
	}
	g.pending = true
	ctx, judge, key, sid := g.ctx, g.judge, g.key, g.sessionID
	return func() tea.Msg {
		res, err := judge.Guess(ctx, sid, text)
		return guessedMsg{key: key, text: text, result: res, err: err}
	}
}

// GiveUp requests the answer. It is never rate limited.
func (g *Guesser) GiveUp() tea.Cmd {
	if g.finishing {
		return nil
	}
	g.finishing = true
	g.giving = true
	ctx, judge, key, sid := g.ctx, g.judge, g.key, g.sessionID
	return func() tea.Msg {
		a, err := judge.GiveUp(ctx, sid)
		return gaveUpMsg{key: key, answer: a, err: err}
	}
}

// Update applies judge replies and cooldown timer messages.
func (g *Guesser) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case guessedMsg:
		if msg.key != g.key {
			return nil
		}
		g.pending = false
		if g.finishing {
			return nil
		}
		if msg.err != nil {
			return g.fail(msg.err)
		}
		return g.judged(msg.text, msg.result)

	case gaveUpMsg:
		if msg.key != g.key || !g.giving {
			return nil
		}
		g.giving = false
		f := &Finish{
			Answer:    msg.answer.Name,
			PokemonID: msg.answer.PokemonID,
			GaveUp:    true,
			Types:     msg.answer.Types,
			Region:    msg.answer.Region,
			Err:       msg.err,
		}
		if msg.err != nil {
			log.Warn().Err(msg.err).Str("session", g.sessionID).Msg("give up reply failed")
		}
		g.finish = f
		return nil
	}
	return g.cooldown.Update(msg)
}

func (g *Guesser) judged(text string, res GuessResult) tea.Cmd {
	g.last = res.Outcome()
	log.Debug().Str("session", g.sessionID).Str("outcome", string(g.last)).Msg("guess judged")
	switch g.last {
	case OutcomeCorrect, OutcomeSolved:
		g.finishing = true
		g.finish = &Finish{Answer: text, PokemonID: res.PokemonID, Solved: true}
		g.message = MsgCorrect
		if g.last == OutcomeSolved {
			g.message = MsgSolved
		}
		return nil
	case OutcomeCooldown:
		g.message = MsgCooldown
		return g.cooldown.Arm(res.RetryAfter)
	default:
		g.message = MsgIncorrect
		return nil
	}
}

func (g *Guesser) fail(err error) tea.Cmd {
	switch {
	case errors.Is(err, ErrSessionNotFound):
		g.expired = true
		g.message = MsgExpired
	case errors.Is(err, context.Canceled):
	default:
		log.Warn().Err(err).Str("session", g.sessionID).Msg("guess failed")
		g.message = MsgNetwork
	}
	return nil
}

// stop releases timers on teardown.
func (g *Guesser) stop() {
	g.cooldown.Stop()
}
