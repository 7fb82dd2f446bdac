package quiz_test

import (
	"context"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/silhouette-quiz/internal/judge"
	"github.com/robalobadob/silhouette-quiz/internal/judge/judgetest"
	"github.com/robalobadob/silhouette-quiz/internal/quiz"
)

// settle runs cmd and feeds its messages back into f until nothing immediate
// is left. Cooldown ticks take a second and never arrive inside the window.
func settle(t *testing.T, f *quiz.Flow, cmd tea.Cmd) {
	t.Helper()
	queue := []tea.Cmd{cmd}
	for i := 0; len(queue) > 0 && i < 100; i++ {
		c := queue[0]
		queue = queue[1:]
		if c == nil {
			continue
		}
		done := make(chan tea.Msg, 1)
		go func() { done <- c() }()
		select {
		case msg := <-done:
			if batch, ok := msg.(tea.BatchMsg); ok {
				queue = append(queue, batch...)
				continue
			}
			queue = append(queue, f.Update(msg))
		case <-time.After(500 * time.Millisecond):
		}
	}
}

func newE2E(t *testing.T, opts ...judgetest.Option) (*quiz.Flow, *judgetest.Server) {
	t.Helper()
	srv := judgetest.NewServer(opts...)
	t.Cleanup(srv.Close)
	client, err := judge.New(srv.URL, 5*time.Second)
	require.NoError(t, err)
	f := quiz.NewFlow(context.Background(), client)
	t.Cleanup(f.Close)
	return f, srv
}

func TestEndToEndCooldownHintsAndGiveUp(t *testing.T) {
	f, srv := newE2E(t, judgetest.WithAnswer("Pikachu"))

	settle(t, f, f.Start(quiz.Config{Regions: []string{"kanto"}}))
	q := f.Quiz()
	require.NotNil(t, q)
	pic, err := q.Picture()
	require.NoError(t, err)
	require.NotNil(t, pic)

	settle(t, f, q.Submit("コダック"))
	assert.Equal(t, quiz.MsgIncorrect, q.Guesser().Message())

	// Second guess inside the server's 5s window.
	settle(t, f, q.Submit("ピカチュウ"))
	g := q.Guesser()
	assert.Equal(t, quiz.OutcomeCooldown, g.LastOutcome())
	assert.Equal(t, 5, g.Cooldown().Remaining())

	assert.Nil(t, q.Submit("ピカチュウ"))
	assert.Equal(t, quiz.MsgCooldown, g.Message())
	assert.Equal(t, 2, srv.Hits("/api/quiz/guess"))

	cmds := []tea.Cmd{q.Reveal(quiz.HintType), q.Reveal(quiz.HintRegion), q.Reveal(quiz.HintFirstLetter)}
	settle(t, f, tea.Batch(cmds...))
	assert.Equal(t, 1, srv.Hits("/api/quiz/hint/{sessionId}"))
	v, ok := q.Hints().Value(quiz.HintFirstLetter)
	require.True(t, ok)
	assert.Equal(t, "ピ", v)
	v, _ = q.Hints().Value(quiz.HintType)
	assert.Equal(t, "でんき", v)

	settle(t, f, q.GiveUp())
	rp, ok := f.Phase().(*quiz.ResultPhase)
	require.True(t, ok)
	assert.True(t, q.Closed())
	assert.Equal(t, "ピカチュウ", rp.Session.Answer)
	assert.Equal(t, 25, rp.Session.PokemonID)
	assert.Equal(t, "kanto", rp.Session.Region)
	assert.True(t, rp.Session.GaveUp)
	assert.NoError(t, rp.ArtworkErr)
	assert.NotNil(t, rp.Artwork)

	settle(t, f, f.Next())
	require.NotNil(t, f.Quiz())
	assert.NotEqual(t, q.Key(), f.Quiz().Key())
	assert.Equal(t, 2, srv.Sessions())
}

func TestEndToEndSolve(t *testing.T) {
	f, _ := newE2E(t, judgetest.WithAnswer("Sprigatito"))
	settle(t, f, f.Start(quiz.Config{}))
	settle(t, f, f.Quiz().Submit(" sprigatito "))

	rp, ok := f.Phase().(*quiz.ResultPhase)
	require.True(t, ok)
	assert.True(t, rp.Session.Solved)
	assert.Equal(t, "sprigatito", rp.Session.Answer)
	assert.Equal(t, 906, rp.Session.PokemonID)
}

func TestEndToEndExpiredSession(t *testing.T) {
	f, srv := newE2E(t)
	settle(t, f, f.Start(quiz.Config{Regions: []string{"johto"}}))
	q := f.Quiz()
	require.NotNil(t, q)

	srv.Expire(q.Session().ID)
	settle(t, f, q.Submit("Chikorita"))
	assert.True(t, q.Guesser().Expired())
	assert.Equal(t, quiz.MsgExpired, q.Guesser().Message())

	f.Back()
	st, ok := f.Phase().(*quiz.StartPhase)
	require.True(t, ok)
	assert.Equal(t, []string{"johto"}, st.Config.Regions)
}
