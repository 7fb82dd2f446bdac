// internal/judge/judgetest/engine.go
//
// Answer judging for one stub session.
//   - Accepts the English or Japanese name, ignoring case, spaces and hyphens.
//   - Throttles guesses: a guess within the interval of the previous accepted
//     guess is refused with the remaining time.
//   - Solved / given-up sessions refuse further guesses.

package judgetest

import (
	"errors"
	"math"
	"strings"
	"sync"
	"time"

	"github.com/robalobadob/silhouette-quiz/assets"
)

var (
	errTooSoon         = errors.New("guess too soon")
	errAlreadyFinished = errors.New("quiz already finished")
)

// session is the server-side state of one question.
type session struct {
	ID     string
	Entry  assets.Entry
	Region assets.Region

	mu          sync.Mutex
	lastGuessAt time.Time
	solved      bool
	gaveUp      bool
}

// submit judges answer at time now. On errTooSoon, wait is the time left
// before the next guess is accepted.
func (s *session) submit(answer string, now time.Time, interval time.Duration) (correct bool, wait time.Duration, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.solved || s.gaveUp {
		return false, 0, errAlreadyFinished
	}
	if !s.lastGuessAt.IsZero() {
		if elapsed := now.Sub(s.lastGuessAt); elapsed < interval {
			return false, interval - elapsed, errTooSoon
		}
	}
	s.lastGuessAt = now

	n := normalize(answer)
	for _, accepted := range []string{s.Entry.Name, s.Entry.Japanese} {
		if accepted != "" && n == normalize(accepted) {
			s.solved = true
			return true, 0, nil
		}
	}
	return false, 0, nil
}

func (s *session) giveUp() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.gaveUp = true
}

// revealed reports whether the artwork may be shown.
func (s *session) revealed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.solved || s.gaveUp
}

// displayName prefers the Japanese name.
func (s *session) displayName() string {
	if s.Entry.Japanese != "" {
		return s.Entry.Japanese
	}
	return s.Entry.Name
}

// normalize lowercases and drops spaces and hyphens.
func normalize(v string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(v) {
		if r == '-' || r == ' ' || r == '　' {
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// retryAfterSeconds rounds up so a positive wait never reports 0.
func retryAfterSeconds(wait time.Duration) int {
	return int(math.Ceil(wait.Seconds()))
}
