// internal/game/engine.go
//
// Core game engine for a single Mastermind session.
// Responsibilities:
//   - Create sessions in solver mode (generated secret) or setter mode
//     (secret supplied later by another player).
//   - Validate and apply guesses (length, alphabet membership).
//   - Score guesses with the multiset algorithm in score.go.
//   - Track state transitions: awaiting_secret -> in_progress -> won/lost.
//
// Notes:
//   - A Session is not safe for concurrent use. Hosts that share one across
//     goroutines serialize access (see store.Store.Update).
//   - Every failing operation leaves the session untouched.
package game

import (
	"fmt"
	"time"
)

const (
	DefaultLength      = 4
	DefaultMaxAttempts = 10

	// Upper bounds on Config.Length and Config.MaxAttempts.
	MaxLength   = 16
	AttemptsCap = 100
)

// Config describes a new session. Zero Length and MaxAttempts take the defaults.
type Config struct {
	Alphabet    Alphabet
	Length      int
	MaxAttempts int
	Mode        Mode
	Rand        Source // solver mode only; nil means CryptoSource
}

// Session holds the state of one game: secret, attempts, budget and status.
type Session struct {
	id          string
	alphabet    Alphabet
	length      int
	maxAttempts int
	mode        Mode
	secret      Code
	history     []Attempt
	status      Status
	createdAt   time.Time
}

// New constructs a session.
// Solver sessions start in_progress with a random secret; setter sessions wait
// for SetSecret.
func New(cfg Config) (*Session, error) {
	if cfg.Length == 0 {
		cfg.Length = DefaultLength
	}
	if cfg.MaxAttempts == 0 {
		cfg.MaxAttempts = DefaultMaxAttempts
	}
	switch {
	case cfg.Alphabet.Size() == 0:
		return nil, fmt.Errorf("%w: alphabet is empty", ErrInvalidInput)
	case cfg.Length < 1 || cfg.Length > MaxLength:
		return nil, fmt.Errorf("%w: code length must be in 1..%d, got %d", ErrInvalidInput, MaxLength, cfg.Length)
	case cfg.MaxAttempts < 1 || cfg.MaxAttempts > AttemptsCap:
		return nil, fmt.Errorf("%w: max attempts must be in 1..%d, got %d", ErrInvalidInput, AttemptsCap, cfg.MaxAttempts)
	}

	s := &Session{
		id:          randomID(),
		alphabet:    cfg.Alphabet,
		length:      cfg.Length,
		maxAttempts: cfg.MaxAttempts,
		mode:        cfg.Mode,
		history:     []Attempt{},
		createdAt:   time.Now(),
	}
	switch cfg.Mode {
	case ModeSolver:
		s.secret = RandomCode(cfg.Alphabet, cfg.Length, cfg.Rand)
		s.status = StatusInProgress
	case ModeSetter:
		s.status = StatusAwaitingSecret
	default:
		return nil, fmt.Errorf("%w: unknown mode %q", ErrInvalidInput, cfg.Mode)
	}
	return s, nil
}

// SetSecret installs the secret of a setter-mode session and opens play.
func (s *Session) SetSecret(code Code) (Status, error) {
	if s.status != StatusAwaitingSecret {
		return s.status, fmt.Errorf("%w: cannot set secret while %s", ErrInvalidState, s.status)
	}
	secret, err := s.alphabet.Normalize(code, s.length)
	if err != nil {
		return s.status, err
	}
	s.secret = secret
	s.status = StatusInProgress
	return s.status, nil
}

// SubmitGuess validates and scores a guess, records it, and returns the new
// Attempt together with the updated status.
//
// State transitions:
//   - guess equals the secret -> won (also on the last permitted attempt).
//   - else history full -> lost.
func (s *Session) SubmitGuess(code Code) (Attempt, Status, error) {
	if s.status != StatusInProgress {
		return Attempt{}, s.status, fmt.Errorf("%w: cannot guess while %s", ErrInvalidState, s.status)
	}
	guess, err := s.alphabet.Normalize(code, s.length)
	if err != nil {
		return Attempt{}, s.status, err
	}
	exact, value, err := Score(s.alphabet, s.secret, guess)
	if err != nil {
		return Attempt{}, s.status, err
	}

	a := Attempt{Turn: len(s.history) + 1, Guess: guess, Exact: exact, Value: value}
	s.history = append(s.history, a)

	if guess.Equal(s.secret) {
		s.status = StatusWon
	} else if len(s.history) >= s.maxAttempts {
		s.status = StatusLost
	}
	return a.clone(), s.status, nil
}

// RemainingAttempts is max attempts minus attempts made, never negative.
func (s *Session) RemainingAttempts() int {
	return max(s.maxAttempts-len(s.history), 0)
}

// History returns a copy of the attempts in submission order.
func (s *Session) History() []Attempt {
	out := make([]Attempt, len(s.history))
	for i, a := range s.history {
		out[i] = a.clone()
	}
	return out
}

// RevealSecret returns a copy of the secret (nil while awaiting one).
// It does not check status; hide it from players yourself until the game ends.
func (s *Session) RevealSecret() Code { return s.secret.clone() }

func (s *Session) ID() string           { return s.id }
func (s *Session) Status() Status       { return s.status }
func (s *Session) Alphabet() Alphabet   { return s.alphabet }
func (s *Session) Length() int          { return s.length }
func (s *Session) MaxAttempts() int     { return s.maxAttempts }
func (s *Session) Mode() Mode           { return s.mode }
func (s *Session) CreatedAt() time.Time { return s.createdAt }

// Snapshot copies the session into plain data. The secret is included only
// once the game is won or lost.
func (s *Session) Snapshot() Snapshot {
	snap := Snapshot{
		ID:          s.id,
		Mode:        s.mode,
		Status:      s.status,
		Alphabet:    s.alphabet.Symbols(),
		Length:      s.length,
		MaxAttempts: s.maxAttempts,
		Remaining:   s.RemainingAttempts(),
		History:     s.History(),
	}
	if s.status.Terminal() {
		snap.Secret = s.RevealSecret()
	}
	return snap
}

func (a Attempt) clone() Attempt {
	a.Guess = a.Guess.clone()
	return a
}
