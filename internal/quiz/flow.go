// internal/quiz/flow.go
//
// Session flow controller: the top-level state machine
//
//	Start ──Start(cfg)──▶ Quiz ──finish──▶ Result ──Next()──▶ Quiz
//	  ▲                    │                  │
//	  └──────Back()────────┴──────Back()──────┘
//
// The phase is a tagged union (StartPhase | QuizPhase | ResultPhase); exactly
// one is live at a time. The Config of the last started session is retained
// across Result→Quiz and on Back.

package quiz

import (
	"context"
	"errors"
	"image"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// Phase is one of *StartPhase, *QuizPhase or *ResultPhase.
type Phase interface {
	isPhase()
}

// StartPhase is the config form.
type StartPhase struct {
	Config    Config // retained config, pre-fills the form
	HasConfig bool
	Starting  bool  // session creation in flight
	Err       error // last creation failure
}

// QuizPhase wraps the live question.
type QuizPhase struct {
	Quiz *Quiz
}

// ResultPhase shows the answer of the finished question.
type ResultPhase struct {
	Session    Session
	Config     Config
	Err        error // give-up reply failed; the answer is unknown
	Restarting bool  // Next() in flight
	RestartErr error
	Artwork    image.Image
	ArtworkErr error

	key    string
	cancel context.CancelFunc
}

func (*StartPhase) isPhase()  {}
func (*QuizPhase) isPhase()   {}
func (*ResultPhase) isPhase() {}

type sessionCreatedMsg struct {
	gen int
	cfg Config
	id  string
	err error
}

type artworkMsg struct {
	key string
	img image.Image
	err error
}

func (m artworkMsg) scope() string { return m.key }

// Flow sequences the phases.
type Flow struct {
	ctx       context.Context
	judge     Judge
	phase     Phase
	config    Config
	hasConfig bool
	gen       int // session-creation generation
	newKey    func() string
}

// NewFlow starts in the Start phase. ctx bounds every request the flow issues.
func NewFlow(ctx context.Context, judge Judge) *Flow {
	return &Flow{
		ctx:    ctx,
		judge:  judge,
		phase:  &StartPhase{},
		newKey: uuid.NewString,
	}
}

// Phase returns the live phase.
func (f *Flow) Phase() Phase { return f.phase }

// Config returns the retained config and whether one exists.
func (f *Flow) Config() (Config, bool) { return f.config.Clone(), f.hasConfig }

// Quiz returns the live question, or nil outside the quiz phase.
func (f *Flow) Quiz() *Quiz {
	if p, ok := f.phase.(*QuizPhase); ok {
		return p.Quiz
	}
	return nil
}

// Start creates a session with cfg. Only valid in the Start phase and while
// no creation is already in flight.
func (f *Flow) Start(cfg Config) tea.Cmd {
	p, ok := f.phase.(*StartPhase)
	if !ok || p.Starting {
		return nil
	}
	p.Starting = true
	p.Err = nil
	return f.createSession(cfg.Clone())
}

// Next starts a new question with the retained config, straight from Result.
func (f *Flow) Next() tea.Cmd {
	p, ok := f.phase.(*ResultPhase)
	if !ok || p.Restarting || !f.hasConfig {
		return nil
	}
	p.Restarting = true
	p.RestartErr = nil
	return f.createSession(f.config.Clone())
}

// Back abandons the current question or result and returns to Start.
// The config is retained.
func (f *Flow) Back() {
	switch p := f.phase.(type) {
	case *StartPhase:
		return
	case *QuizPhase:
		p.Quiz.Close()
	case *ResultPhase:
		p.close()
	}
	f.gen++
	f.phase = &StartPhase{Config: f.config.Clone(), HasConfig: f.hasConfig}
}

// Close tears down the live phase; used on program exit.
func (f *Flow) Close() {
	switch p := f.phase.(type) {
	case *QuizPhase:
		p.Quiz.Close()
	case *ResultPhase:
		p.close()
	}
	f.gen++
}

// Update applies a message to the flow and the live phase.
func (f *Flow) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case sessionCreatedMsg:
		return f.sessionCreated(msg)
	case artworkMsg:
		if p, ok := f.phase.(*ResultPhase); ok && msg.key == p.key {
			p.Artwork, p.ArtworkErr = msg.img, msg.err
			if msg.err != nil && !errors.Is(msg.err, context.Canceled) {
				log.Warn().Err(msg.err).Str("session", p.Session.ID).Msg("artwork fetch failed")
			}
		}
		return nil
	}

	p, ok := f.phase.(*QuizPhase)
	if !ok {
		return nil
	}
	cmd := p.Quiz.Update(msg)
	if fin, done := p.Quiz.Finished(); done {
		return tea.Batch(cmd, f.enterResult(p.Quiz, fin))
	}
	return cmd
}

func (f *Flow) createSession(cfg Config) tea.Cmd {
	f.gen++
	ctx, judge, gen := f.ctx, f.judge, f.gen
	return func() tea.Msg {
		id, err := judge.CreateSession(ctx, cfg)
		return sessionCreatedMsg{gen: gen, cfg: cfg, id: id, err: err}
	}
}

func (f *Flow) sessionCreated(msg sessionCreatedMsg) tea.Cmd {
	if msg.gen != f.gen {
		return nil
	}
	switch p := f.phase.(type) {
	case *StartPhase:
		if !p.Starting {
			return nil
		}
		p.Starting = false
		if msg.err != nil {
			log.Warn().Err(msg.err).Msg("create session failed")
			p.Err = msg.err
			return nil
		}
	case *ResultPhase:
		if !p.Restarting {
			return nil
		}
		p.Restarting = false
		if msg.err != nil {
			log.Warn().Err(msg.err).Msg("restart session failed")
			p.RestartErr = msg.err
			return nil
		}
		p.close()
	default:
		return nil
	}

	f.config = msg.cfg
	f.hasConfig = true
	ctx, cancel := context.WithCancel(f.ctx)
	q := newQuiz(ctx, cancel, f.newKey(), msg.id, f.judge)
	f.phase = &QuizPhase{Quiz: q}
	log.Info().Str("session", msg.id).Str("instance", q.key).Strs("regions", msg.cfg.Regions).Msg("quiz started")
	return q.Init()
}

func (f *Flow) enterResult(q *Quiz, fin Finish) tea.Cmd {
	sess := q.Session()
	sess.Answer = fin.Answer
	sess.PokemonID = fin.PokemonID
	sess.Solved = fin.Solved
	sess.GaveUp = fin.GaveUp
	sess.Types = fin.Types
	sess.Region = fin.Region
	q.Close()

	ctx, cancel := context.WithCancel(f.ctx)
	rp := &ResultPhase{
		Session: sess,
		Config:  f.config.Clone(),
		Err:     fin.Err,
		key:     f.newKey(),
		cancel:  cancel,
	}
	f.phase = rp
	log.Info().Str("session", sess.ID).Bool("solved", sess.Solved).Bool("gaveUp", sess.GaveUp).Msg("quiz finished")

	judge, key, sid := f.judge, rp.key, sess.ID
	return func() tea.Msg {
		img, err := judge.Artwork(ctx, sid)
		return artworkMsg{key: key, img: img, err: err}
	}
}

func (p *ResultPhase) close() {
	if p.cancel != nil {
		p.cancel()
		p.cancel = nil
	}
}
