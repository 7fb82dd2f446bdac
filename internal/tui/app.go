// internal/tui/app.go
//
// Root Bubble Tea model. It owns no quiz state of its own: every decision
// lives in quiz.Flow, and this layer only
//   - turns key presses into Flow / Quiz calls,
//   - forwards every other message to the Flow,
//   - keeps the start form and the text field in step with the live phase.

package tui

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/robalobadob/silhouette-quiz/assets"
	"github.com/robalobadob/silhouette-quiz/internal/quiz"
)

// Options configures the App.
type Options struct {
	Regions    []assets.Region
	Defaults   quiz.Config                   // pre-fills the form before any session
	ArtworkURL func(sessionID string) string // optional; enables the QR code
	ShowQR     bool
	ImageWidth int // picture width in columns
}

// App is the root model.
type App struct {
	flow *quiz.Flow
	opts Options

	// start form
	formFor *quiz.StartPhase // phase the form was last seeded from
	cursor  int
	chosen  map[string]bool
	mega    bool
	primal  bool

	input    textinput.Model
	inputFor string // instance key the text field belongs to

	spinner spinner.Model
	help    help.Model
	width   int
	height  int
}

// New builds the App around flow.
func New(flow *quiz.Flow, opts Options) App {
	if opts.ImageWidth <= 0 {
		opts.ImageWidth = 32
	}
	ti := textinput.New()
	ti.Placeholder = "ポケモンの名前"
	ti.CharLimit = 40
	ti.Width = 30

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(colorSpinner)

	a := App{
		flow:    flow,
		opts:    opts,
		input:   ti,
		spinner: s,
		help:    help.New(),
	}
	a.seedForm(opts.Defaults)
	return a
}

// Init implements tea.Model.
func (a App) Init() tea.Cmd { return textinput.Blink }

// Update implements tea.Model.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width, a.height = msg.Width, msg.Height
		a.help.Width = msg.Width
		return a, nil

	case spinner.TickMsg:
		if !a.busy() {
			return a, nil
		}
		var cmd tea.Cmd
		a.spinner, cmd = a.spinner.Update(msg)
		return a, cmd

	case tea.KeyMsg:
		var cmd tea.Cmd
		switch a.flow.Phase().(type) {
		case *quiz.StartPhase:
			a, cmd = a.startKey(msg)
		case *quiz.QuizPhase:
			a, cmd = a.quizKey(msg)
		case *quiz.ResultPhase:
			a, cmd = a.resultKey(msg)
		}
		a.sync()
		return a, a.withSpinner(cmd)
	}

	var inputCmd tea.Cmd
	a.input, inputCmd = a.input.Update(msg)
	cmd := a.flow.Update(msg)
	a.sync()
	return a, tea.Batch(inputCmd, a.withSpinner(cmd))
}

func (a App) startKey(msg tea.KeyMsg) (App, tea.Cmd) {
	k := startKeyMap
	switch {
	case key.Matches(msg, k.Quit):
		return a, tea.Quit
	case key.Matches(msg, k.Up):
		if a.cursor > 0 {
			a.cursor--
		}
	case key.Matches(msg, k.Down):
		if a.cursor < len(a.opts.Regions)-1 {
			a.cursor++
		}
	case key.Matches(msg, k.Toggle):
		if a.cursor < len(a.opts.Regions) {
			r := a.opts.Regions[a.cursor].Key
			a.chosen[r] = !a.chosen[r]
		}
	case key.Matches(msg, k.All):
		all := len(a.selectedRegions()) != len(a.opts.Regions)
		for _, r := range a.opts.Regions {
			a.chosen[r.Key] = all
		}
	case key.Matches(msg, k.Mega):
		a.mega = !a.mega
	case key.Matches(msg, k.Primal):
		a.primal = !a.primal
	case key.Matches(msg, k.Start):
		return a, a.flow.Start(a.formConfig())
	}
	return a, nil
}

func (a App) quizKey(msg tea.KeyMsg) (App, tea.Cmd) {
	q := a.flow.Quiz()
	k := quizKeyMap
	switch {
	case key.Matches(msg, k.Quit):
		return a, tea.Quit
	case key.Matches(msg, k.Back):
		a.flow.Back()
		return a, nil
	case key.Matches(msg, k.Submit):
		return a, q.Submit(a.input.Value())
	case key.Matches(msg, k.GiveUp):
		return a, q.GiveUp()
	case key.Matches(msg, k.HintType):
		return a, q.Reveal(quiz.HintType)
	case key.Matches(msg, k.HintRegion):
		return a, q.Reveal(quiz.HintRegion)
	case key.Matches(msg, k.HintLetter):
		return a, q.Reveal(quiz.HintFirstLetter)
	case key.Matches(msg, k.Up):
		q.Suggestions().Move(-1)
		return a, nil
	case key.Matches(msg, k.Down):
		q.Suggestions().Move(1)
		return a, nil
	case key.Matches(msg, k.Pick):
		s := q.Suggestions()
		if picked, ok := s.Select(s.Cursor()); ok {
			a.input.SetValue(picked)
			a.input.CursorEnd()
		}
		return a, nil
	}

	var cmd tea.Cmd
	a.input, cmd = a.input.Update(msg)
	return a, tea.Batch(cmd, q.SetInput(a.input.Value()))
}

func (a App) resultKey(msg tea.KeyMsg) (App, tea.Cmd) {
	k := resultKeyMap
	switch {
	case key.Matches(msg, k.Quit):
		return a, tea.Quit
	case key.Matches(msg, k.Next):
		return a, a.flow.Next()
	case key.Matches(msg, k.Back):
		a.flow.Back()
	}
	return a, nil
}

// sync re-seeds the form when a new Start phase appears and resets the text
// field when a new question starts.
func (a *App) sync() {
	switch p := a.flow.Phase().(type) {
	case *quiz.StartPhase:
		if p != a.formFor {
			a.formFor = p
			if p.HasConfig {
				a.seedForm(p.Config)
			}
		}
		a.input.Blur()
	case *quiz.QuizPhase:
		if k := p.Quiz.Key(); k != a.inputFor {
			a.inputFor = k
			a.input.Reset()
			a.input.Focus()
		}
	case *quiz.ResultPhase:
		a.input.Blur()
	}
}

func (a *App) seedForm(cfg quiz.Config) {
	a.chosen = make(map[string]bool, len(a.opts.Regions))
	for _, r := range cfg.Regions {
		a.chosen[r] = true
	}
	a.mega, a.primal = cfg.AllowMega, cfg.AllowPrimal
}

// selectedRegions lists chosen keys in catalogue order.
func (a App) selectedRegions() []string {
	var out []string
	for _, r := range a.opts.Regions {
		if a.chosen[r.Key] {
			out = append(out, r.Key)
		}
	}
	return out
}

func (a App) formConfig() quiz.Config {
	return quiz.Config{Regions: a.selectedRegions(), AllowMega: a.mega, AllowPrimal: a.primal}
}

// busy reports whether anything the player waits on is in flight.
func (a App) busy() bool {
	switch p := a.flow.Phase().(type) {
	case *quiz.StartPhase:
		return p.Starting
	case *quiz.QuizPhase:
		q := p.Quiz
		pic, err := q.Picture()
		return q.Guesser().Pending() || q.Hints().Loading() || q.Suggestions().Busy() || (pic == nil && err == nil)
	case *quiz.ResultPhase:
		return p.Restarting || (p.Artwork == nil && p.ArtworkErr == nil)
	}
	return false
}

// withSpinner restarts the spinner alongside cmd when work is in flight.
func (a App) withSpinner(cmd tea.Cmd) tea.Cmd {
	if !a.busy() {
		return cmd
	}
	return tea.Batch(cmd, a.spinner.Tick)
}
