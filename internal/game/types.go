// internal/game/types.go
//
// Core type definitions for the Mastermind game engine.
// Defines:
//   - Symbol / Code: the pieces a secret and a guess are made of.
//   - Mode: how a session obtains its secret (generated vs. set by a player).
//   - Status: the four session states.
//   - Attempt: one scored guess.
//   - Snapshot: a plain-data view of a session for presentation layers.

package game

import "strings"

// Symbol is a single element of an Alphabet ("1".."6", "Red", ...).
type Symbol string

// Code is an ordered sequence of symbols. Repetition is allowed.
type Code []Symbol

// String renders the code as a space separated list.
func (c Code) String() string {
	parts := make([]string, len(c))
	for i, s := range c {
		parts[i] = string(s)
	}
	return strings.Join(parts, " ")
}

// Equal reports whether two codes hold the same symbols in the same order.
func (c Code) Equal(o Code) bool {
	if len(c) != len(o) {
		return false
	}
	for i := range c {
		if c[i] != o[i] {
			return false
		}
	}
	return true
}

func (c Code) clone() Code {
	if c == nil {
		return nil
	}
	return append(Code(nil), c...)
}

// Mode selects where the secret comes from.
//   - "solver": the session generates the secret.
//   - "setter": another player supplies it through SetSecret.
type Mode string

const (
	ModeSolver Mode = "solver"
	ModeSetter Mode = "setter"
)

// Status is the lifecycle state of a session.
type Status string

const (
	StatusAwaitingSecret Status = "awaiting_secret"
	StatusInProgress     Status = "in_progress"
	StatusWon            Status = "won"
	StatusLost           Status = "lost"
)

// Terminal reports whether no further moves are accepted.
func (s Status) Terminal() bool { return s == StatusWon || s == StatusLost }

// Attempt is one scored guess. Attempts are immutable once recorded.
type Attempt struct {
	Turn  int  `json:"turn"`  // 1-based position in the history
	Guess Code `json:"guess"` // the submitted code
	Exact int  `json:"exact"` // right symbol, right position
	Value int  `json:"value"` // right symbol, wrong position
}

// Snapshot is a read-only copy of session state for renderers and APIs.
// Secret is only populated once the game is over.
type Snapshot struct {
	ID          string    `json:"gameId"`
	Mode        Mode      `json:"mode"`
	Status      Status    `json:"status"`
	Alphabet    []Symbol  `json:"alphabet"`
	Length      int       `json:"length"`
	MaxAttempts int       `json:"maxAttempts"`
	Remaining   int       `json:"remaining"`
	History     []Attempt `json:"history"`
	Secret      Code      `json:"secret,omitempty"`
}
