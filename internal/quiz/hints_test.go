package quiz

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHintsFetchOnceAndRevealIndependently(t *testing.T) {
	j := &stubJudge{hint: HintBundle{Types: []string{"でんき"}, Region: "カントー", FirstLetter: "ピ"}}
	h := NewHints(context.Background(), "q1", "s1", j)

	for _, f := range HintFields {
		assert.False(t, h.Revealed(f))
	}

	fetch := h.Reveal(HintType)
	require.NotNil(t, fetch)
	assert.True(t, h.Loading())

	// Second reveal while in flight shares the fetch.
	assert.Nil(t, h.Reveal(HintRegion))
	_, ok := h.Value(HintRegion)
	assert.False(t, ok, "pending until the bundle arrives")

	h.Update(run(fetch))
	v, ok := h.Value(HintType)
	require.True(t, ok)
	assert.Equal(t, "でんき", v)
	v, _ = h.Value(HintRegion)
	assert.Equal(t, "カントー", v)

	_, ok = h.Value(HintFirstLetter)
	assert.False(t, ok, "not revealed yet")
	assert.Nil(t, h.Reveal(HintFirstLetter))
	v, _ = h.Value(HintFirstLetter)
	assert.Equal(t, "ピ", v)

	assert.Equal(t, 1, j.hintHits)
	assert.Equal(t, 1, h.fetches)
	for _, f := range HintFields {
		assert.True(t, h.Revealed(f))
	}
}

func TestHintsFailureLeavesPendingAndRetries(t *testing.T) {
	j := &stubJudge{hintErr: errors.New("offline")}
	h := NewHints(context.Background(), "q1", "s1", j)

	h.Update(run(h.Reveal(HintRegion)))
	assert.True(t, h.Revealed(HintRegion))
	assert.False(t, h.Loading())
	_, ok := h.Value(HintRegion)
	assert.False(t, ok)

	j.hintErr = nil
	j.hint = HintBundle{Region: "ジョウト"}
	retry := h.Reveal(HintRegion)
	require.NotNil(t, retry, "re-triggering after a failure retries")
	h.Update(run(retry))
	v, ok := h.Value(HintRegion)
	require.True(t, ok)
	assert.Equal(t, "ジョウト", v)
	assert.Equal(t, 2, j.hintHits)
}

func TestHintsIgnoreForeignAndUnexpectedReplies(t *testing.T) {
	h := NewHints(context.Background(), "q1", "s1", &stubJudge{})
	h.Update(hintsMsg{key: "q1", bundle: HintBundle{Region: "x"}})
	assert.Equal(t, hintIdle, h.state, "reply without a fetch in flight")

	h.Reveal(HintType)
	h.Update(hintsMsg{key: "q0", bundle: HintBundle{Region: "x"}})
	assert.True(t, h.Loading())

	assert.Nil(t, h.Reveal(HintField(7)))
}
