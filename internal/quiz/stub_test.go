package quiz

import (
	"context"
	"errors"
	"image"
	"sync"

	tea "github.com/charmbracelet/bubbletea"
)

// stubJudge is an in-process Judge whose replies are set per test.
type stubJudge struct {
	mu sync.Mutex

	sessionIDs []string
	createErr  error
	created    []Config

	guess   func(text string) (GuessResult, error)
	guesses []string

	answer    Answer
	giveUpErr error
	giveUps   int

	hint     HintBundle
	hintErr  error
	hintHits int

	search      map[string][]string
	searchErr   error
	searched    []string
	searchCtxs  []context.Context
	silhouettes []string
}

func (s *stubJudge) CreateSession(_ context.Context, cfg Config) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.created = append(s.created, cfg)
	if s.createErr != nil {
		return "", s.createErr
	}
	if len(s.sessionIDs) == 0 {
		return "", errors.New("stub: out of session ids")
	}
	id := s.sessionIDs[0]
	s.sessionIDs = s.sessionIDs[1:]
	return id, nil
}

func (s *stubJudge) Guess(_ context.Context, _ string, text string) (GuessResult, error) {
	s.mu.Lock()
	s.guesses = append(s.guesses, text)
	fn := s.guess
	s.mu.Unlock()
	if fn == nil {
		return GuessResult{}, nil
	}
	return fn(text)
}

func (s *stubJudge) GiveUp(context.Context, string) (Answer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.giveUps++
	return s.answer, s.giveUpErr
}

func (s *stubJudge) Hint(context.Context, string) (HintBundle, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.hintHits++
	return s.hint, s.hintErr
}

func (s *stubJudge) Search(ctx context.Context, prefix string) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.searched = append(s.searched, prefix)
	s.searchCtxs = append(s.searchCtxs, ctx)
	if s.searchErr != nil {
		return nil, s.searchErr
	}
	return s.search[prefix], nil
}

func (s *stubJudge) Silhouette(_ context.Context, _ string, token string) (image.Image, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.silhouettes = append(s.silhouettes, token)
	return image.NewNRGBA(image.Rect(0, 0, 2, 2)), nil
}

func (s *stubJudge) Artwork(context.Context, string) (image.Image, error) {
	return image.NewNRGBA(image.Rect(0, 0, 2, 2)), nil
}

// run executes a non-timer command synchronously and returns its message.
// For a batch it returns the first non-nil message.
func run(cmd tea.Cmd) tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		for _, c := range batch {
			if m := run(c); m != nil {
				return m
			}
		}
		return nil
	}
	return msg
}
