package quiz

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestGuesser(j *stubJudge) Guesser {
	return NewGuesser(context.Background(), "q1", "s1", j)
}

func reply(res GuessResult) func(string) (GuessResult, error) {
	return func(string) (GuessResult, error) { return res, nil }
}

func TestOutcomePriority(t *testing.T) {
	tests := []struct {
		in   GuessResult
		want Outcome
	}{
		{GuessResult{Correct: true, Solved: true, RetryAfter: 3}, OutcomeCorrect},
		{GuessResult{Solved: true, RetryAfter: 3}, OutcomeSolved},
		{GuessResult{RetryAfter: 3}, OutcomeCooldown},
		{GuessResult{RetryAfter: 0}, OutcomeIncorrect},
		{GuessResult{RetryAfter: -1}, OutcomeIncorrect},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprintf("%+v", tt.in), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.in.Outcome())
		})
	}
}

func TestSubmitEmptyGuess(t *testing.T) {
	j := &stubJudge{}
	g := newTestGuesser(j)

	assert.Nil(t, g.Submit("  　 "))
	assert.Equal(t, MsgEmptyGuess, g.Message())
	assert.Empty(t, j.guesses)
}

func TestSubmitCorrectFinishes(t *testing.T) {
	j := &stubJudge{guess: reply(GuessResult{Correct: true, PokemonID: 25})}
	g := newTestGuesser(j)

	cmd := g.Submit(" ピカチュウ ")
	require.NotNil(t, cmd)
	assert.True(t, g.Pending())
	assert.Nil(t, g.Submit("ライチュウ"), "one submission in flight")

	g.Update(run(cmd))
	assert.Equal(t, []string{"ピカチュウ"}, j.guesses)
	assert.Equal(t, OutcomeCorrect, g.LastOutcome())
	assert.Equal(t, MsgCorrect, g.Message())
	fin, ok := g.Finished()
	require.True(t, ok)
	assert.Equal(t, Finish{Answer: "ピカチュウ", PokemonID: 25, Solved: true}, fin)

	assert.Nil(t, g.Submit("again"))
	assert.Nil(t, g.GiveUp())
}

func TestSubmitSolvedByAnotherClient(t *testing.T) {
	g := newTestGuesser(&stubJudge{guess: reply(GuessResult{Solved: true, RetryAfter: 4})})
	g.Update(run(g.Submit("ピカチュウ")))

	assert.Equal(t, OutcomeSolved, g.LastOutcome())
	assert.Equal(t, MsgSolved, g.Message())
	assert.False(t, g.Cooldown().Active(), "solved wins over retryAfter")
	_, ok := g.Finished()
	assert.True(t, ok)
}

func TestSubmitIncorrect(t *testing.T) {
	g := newTestGuesser(&stubJudge{guess: reply(GuessResult{})})
	g.Update(run(g.Submit("コダック")))

	assert.Equal(t, OutcomeIncorrect, g.LastOutcome())
	assert.Equal(t, MsgIncorrect, g.Message())
	assert.False(t, g.Pending())
	_, ok := g.Finished()
	assert.False(t, ok)
}

func TestCooldownBlocksThenReleases(t *testing.T) {
	j := &stubJudge{guess: reply(GuessResult{RetryAfter: 5})}
	g := newTestGuesser(j)

	armed := g.Update(run(g.Submit("x")))
	require.NotNil(t, armed)
	assert.Equal(t, OutcomeCooldown, g.LastOutcome())
	assert.Equal(t, MsgCooldown, g.Message())

	c := g.Cooldown()
	seen := []int{c.Remaining()}
	for c.Remaining() > 0 {
		assert.Nil(t, g.Submit("y"), "blocked at %d", c.Remaining())
		assert.Equal(t, MsgCooldown, g.Message())
		g.Update(cooldownTickMsg{key: "q1", gen: c.gen})
		seen = append(seen, c.Remaining())
	}
	assert.Equal(t, []int{5, 4, 3, 2, 1, 0}, seen)
	assert.Equal(t, []string{"x"}, j.guesses, "blocked submissions never reach the judge")

	j.guess = reply(GuessResult{})
	g.Update(run(g.Submit("y")))
	assert.Equal(t, []string{"x", "y"}, j.guesses)
}

func TestGiveUpIgnoresCooldown(t *testing.T) {
	j := &stubJudge{
		guess:  reply(GuessResult{RetryAfter: 5}),
		answer: Answer{PokemonID: 25, Name: "ピカチュウ", Types: []string{"でんき"}, Region: "kanto"},
	}
	g := newTestGuesser(j)
	g.Update(run(g.Submit("x")))
	require.True(t, g.Cooldown().Active())

	cmd := g.GiveUp()
	require.NotNil(t, cmd)
	assert.Nil(t, g.GiveUp(), "idempotent while in flight")
	assert.Nil(t, g.Submit("z"))

	g.Update(run(cmd))
	assert.Equal(t, 1, j.giveUps)
	fin, ok := g.Finished()
	require.True(t, ok)
	assert.Equal(t, Finish{
		Answer: "ピカチュウ", PokemonID: 25, GaveUp: true,
		Types: []string{"でんき"}, Region: "kanto",
	}, fin)
}

func TestGiveUpFailureStillFinishes(t *testing.T) {
	boom := errors.New("boom")
	g := newTestGuesser(&stubJudge{giveUpErr: boom})
	g.Update(run(g.GiveUp()))

	fin, ok := g.Finished()
	require.True(t, ok)
	assert.True(t, fin.GaveUp)
	assert.ErrorIs(t, fin.Err, boom)
}

func TestGuessReplyAfterGiveUpIsIgnored(t *testing.T) {
	g := newTestGuesser(&stubJudge{guess: reply(GuessResult{Correct: true})})
	guess := g.Submit("ピカチュウ")
	giveUp := g.GiveUp()

	g.Update(run(guess))
	_, ok := g.Finished()
	assert.False(t, ok, "guess arriving after a give-up request does not finish")

	g.Update(run(giveUp))
	fin, _ := g.Finished()
	assert.True(t, fin.GaveUp)
	assert.False(t, fin.Solved)
}

func TestSubmitFailures(t *testing.T) {
	t.Run("network", func(t *testing.T) {
		g := newTestGuesser(&stubJudge{guess: func(string) (GuessResult, error) {
			return GuessResult{}, errors.New("connection refused")
		}})
		g.Update(run(g.Submit("x")))
		assert.Equal(t, MsgNetwork, g.Message())
		assert.False(t, g.Pending())
		assert.False(t, g.Expired())
	})

	t.Run("expired session", func(t *testing.T) {
		j := &stubJudge{guess: func(string) (GuessResult, error) {
			return GuessResult{}, fmt.Errorf("guess: %w", ErrSessionNotFound)
		}}
		g := newTestGuesser(j)
		g.Update(run(g.Submit("x")))
		assert.True(t, g.Expired())
		assert.Equal(t, MsgExpired, g.Message())

		assert.Nil(t, g.Submit("y"))
		assert.Len(t, j.guesses, 1)
		assert.NotNil(t, g.GiveUp(), "give-up stays available")
	})

	t.Run("cancelled", func(t *testing.T) {
		g := newTestGuesser(&stubJudge{guess: func(string) (GuessResult, error) {
			return GuessResult{}, context.Canceled
		}})
		g.Update(run(g.Submit("x")))
		assert.Empty(t, g.Message())
	})
}

func TestGuesserIgnoresForeignReplies(t *testing.T) {
	g := newTestGuesser(&stubJudge{})
	g.Submit("x")
	g.Update(guessedMsg{key: "q0", text: "x", result: GuessResult{Correct: true}})
	assert.True(t, g.Pending())
	_, ok := g.Finished()
	assert.False(t, ok)

	g.Update(gaveUpMsg{key: "q1", answer: Answer{Name: "x"}})
	_, ok = g.Finished()
	assert.False(t, ok, "give-up reply without a request")
}
