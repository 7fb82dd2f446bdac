// internal/quiz/types.go
//
// Core type definitions shared by the quiz controllers and the judge client.
// Defines:
//   - Config: region / special-form filters sent when a session is created.
//   - Session: one silhouette question, identified by a server-issued id.
//   - HintBundle, GuessResult, Answer: judge payloads.
//   - Judge: the network boundary the controllers depend on.

package quiz

import (
	"context"
	"errors"
	"image"
	"slices"
)

// ErrSessionNotFound is returned by a Judge when the server no longer knows
// the session (expired or never created).
var ErrSessionNotFound = errors.New("quiz: session not found")

// Config holds the filters controlling which creatures the server may pick.
// An empty Regions list means every region.
type Config struct {
	Regions     []string `json:"regions"`
	AllowMega   bool     `json:"allowMega"`
	AllowPrimal bool     `json:"allowPrimal"`
}

// Clone returns a deep copy so a retained Config cannot be mutated through
// a caller's slice.
func (c Config) Clone() Config {
	c.Regions = slices.Clone(c.Regions)
	return c
}

// Session is the client-side view of one question.
type Session struct {
	ID        string   // server-issued session id
	PokemonID int      // known once solved or given up (0 if the server did not say)
	Solved    bool     // true when a guess was accepted
	GaveUp    bool     // true when the player gave up
	Answer    string   // winning guess text, or the revealed name
	Types     []string // revealed with the answer on give-up
	Region    string   // revealed with the answer on give-up
}

// HintBundle is the set of disclosable attributes of the current answer.
type HintBundle struct {
	Types       []string `json:"types"`
	Region      string   `json:"region"`
	FirstLetter string   `json:"firstLetter"`
}

// GuessResult is the judge's verdict on one guess.
type GuessResult struct {
	Correct    bool `json:"correct"`
	Solved     bool `json:"solved"`
	RetryAfter int  `json:"retryAfter,omitempty"`
	PokemonID  int  `json:"pokemonId,omitempty"`
}

// Outcome is the single primary signal carried by a GuessResult.
type Outcome string

const (
	OutcomeCorrect   Outcome = "correct"
	OutcomeSolved    Outcome = "solved"
	OutcomeCooldown  Outcome = "cooldown"
	OutcomeIncorrect Outcome = "incorrect"
)

// Outcome classifies the result. When a server sets more than one field the
// priority is correct > solved > retryAfter.
func (r GuessResult) Outcome() Outcome {
	switch {
	case r.Correct:
		return OutcomeCorrect
	case r.Solved:
		return OutcomeSolved
	case r.RetryAfter > 0:
		return OutcomeCooldown
	default:
		return OutcomeIncorrect
	}
}

// Answer is the authoritative answer returned on give-up.
type Answer struct {
	PokemonID int      `json:"pokemonId"`
	Name      string   `json:"name"`
	Types     []string `json:"types,omitempty"`
	Region    string   `json:"region,omitempty"`
}

// Judge is the remote quiz service as seen by the controllers.
// Implementations must be safe for concurrent use: calls run on command
// goroutines.
type Judge interface {
	CreateSession(ctx context.Context, cfg Config) (string, error)
	Guess(ctx context.Context, sessionID, answer string) (GuessResult, error)
	GiveUp(ctx context.Context, sessionID string) (Answer, error)
	Hint(ctx context.Context, sessionID string) (HintBundle, error)
	Search(ctx context.Context, prefix string) ([]string, error)
	Silhouette(ctx context.Context, sessionID, token string) (image.Image, error)
	Artwork(ctx context.Context, sessionID string) (image.Image, error)
}
