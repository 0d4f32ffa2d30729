package game

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fixedSource replays a sequence of indices.
type fixedSource struct {
	next []int
}

func (f *fixedSource) IntN(n int) int {
	v := f.next[0] % n
	f.next = f.next[1:]
	return v
}

func newSolver(t *testing.T, picks ...int) *Session {
	t.Helper()
	s, err := New(Config{Alphabet: digits(t), Mode: ModeSolver, Rand: &fixedSource{next: picks}})
	require.NoError(t, err)
	return s
}

func TestNewSolverGeneratesSecret(t *testing.T) {
	s := newSolver(t, 0, 1, 2, 3)

	assert.Equal(t, StatusInProgress, s.Status())
	assert.Equal(t, DefaultLength, s.Length())
	assert.Equal(t, DefaultMaxAttempts, s.MaxAttempts())
	assert.Equal(t, 10, s.RemainingAttempts())
	assert.Equal(t, code("1", "2", "3", "4"), s.RevealSecret())
	assert.Len(t, s.ID(), 16)
	assert.Empty(t, s.History())
}

func TestNewSolverIsReproducibleWithSeededSource(t *testing.T) {
	a := digits(t)
	mk := func() Code {
		s, err := New(Config{Alphabet: a, Length: 6, Mode: ModeSolver, Rand: rand.New(rand.NewPCG(1, 2))})
		require.NoError(t, err)
		return s.RevealSecret()
	}
	first := mk()
	assert.Len(t, first, 6)
	assert.Equal(t, first, mk())
}

func TestNewRejectsBadConfig(t *testing.T) {
	a := digits(t)
	tests := []struct {
		name string
		cfg  Config
	}{
		{"empty alphabet", Config{Mode: ModeSolver}},
		{"negative length", Config{Alphabet: a, Length: -1, Mode: ModeSolver}},
		{"negative attempts", Config{Alphabet: a, MaxAttempts: -3, Mode: ModeSolver}},
		{"length over cap", Config{Alphabet: a, Length: MaxLength + 1, Mode: ModeSolver}},
		{"huge length", Config{Alphabet: a, Length: 5_000_000, Mode: ModeSolver}},
		{"attempts over cap", Config{Alphabet: a, MaxAttempts: AttemptsCap + 1, Mode: ModeSolver}},
		{"unknown mode", Config{Alphabet: a, Mode: Mode("coop")}},
		{"missing mode", Config{Alphabet: a}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.cfg)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestNewAcceptsCaps(t *testing.T) {
	s, err := New(Config{Alphabet: digits(t), Length: MaxLength, MaxAttempts: AttemptsCap, Mode: ModeSolver})
	require.NoError(t, err)
	assert.Len(t, s.RevealSecret(), MaxLength)
	assert.Equal(t, AttemptsCap, s.RemainingAttempts())
}

func TestWinOnLastAttempt(t *testing.T) {
	s := newSolver(t, 0, 1, 2, 3)

	for i := 0; i < 9; i++ {
		_, st, err := s.SubmitGuess(code("6", "6", "6", "6"))
		require.NoError(t, err)
		require.Equal(t, StatusInProgress, st)
	}
	a, st, err := s.SubmitGuess(code("1", "2", "3", "4"))
	require.NoError(t, err)
	assert.Equal(t, StatusWon, st)
	assert.Equal(t, 10, a.Turn)
	assert.Equal(t, 4, a.Exact)
	assert.Zero(t, a.Value)
	assert.Zero(t, s.RemainingAttempts())
}

func TestLoseAfterBudget(t *testing.T) {
	s := newSolver(t, 0, 1, 2, 3)

	var st Status
	for i := 0; i < 10; i++ {
		var err error
		_, st, err = s.SubmitGuess(code("4", "3", "2", "1"))
		require.NoError(t, err)
	}
	assert.Equal(t, StatusLost, st)
	assert.Len(t, s.History(), 10)

	_, st, err := s.SubmitGuess(code("1", "2", "3", "4"))
	assert.ErrorIs(t, err, ErrInvalidState)
	assert.Equal(t, StatusLost, st)
	assert.Len(t, s.History(), 10)
	assert.Zero(t, s.RemainingAttempts())
}

func TestNoGuessAfterWin(t *testing.T) {
	s := newSolver(t, 0, 0, 0, 0)

	_, st, err := s.SubmitGuess(code("1", "1", "1", "1"))
	require.NoError(t, err)
	require.Equal(t, StatusWon, st)

	_, _, err = s.SubmitGuess(code("1", "1", "1", "1"))
	assert.ErrorIs(t, err, ErrInvalidState)
	assert.Len(t, s.History(), 1)
	assert.Equal(t, 9, s.RemainingAttempts())
}

func TestRemainingAttemptsDecreasesByOne(t *testing.T) {
	s, err := New(Config{Alphabet: digits(t), MaxAttempts: 3, Mode: ModeSolver, Rand: &fixedSource{next: []int{5, 5, 5, 5}}})
	require.NoError(t, err)

	prev := s.RemainingAttempts()
	for s.Status() == StatusInProgress {
		_, _, err := s.SubmitGuess(code("1", "2", "3", "4"))
		require.NoError(t, err)
		require.Equal(t, prev-1, s.RemainingAttempts())
		prev = s.RemainingAttempts()
	}
	assert.Equal(t, StatusLost, s.Status())
	assert.Zero(t, s.RemainingAttempts())
}

func TestInvalidGuessLeavesSessionUntouched(t *testing.T) {
	s := newSolver(t, 0, 1, 2, 3)

	_, st, err := s.SubmitGuess(code("1", "2", "3"))
	assert.ErrorIs(t, err, ErrInvalidInput)
	assert.Equal(t, StatusInProgress, st)

	_, _, err = s.SubmitGuess(code("1", "2", "3", "9"))
	assert.ErrorIs(t, err, ErrInvalidInput)

	assert.Empty(t, s.History())
	assert.Equal(t, 10, s.RemainingAttempts())
}

func TestSetterFlow(t *testing.T) {
	s, err := New(Config{Alphabet: colors(t), Mode: ModeSetter})
	require.NoError(t, err)
	assert.Equal(t, StatusAwaitingSecret, s.Status())
	assert.Nil(t, s.RevealSecret())

	_, _, err = s.SubmitGuess(code("Red", "Red", "Red", "Red"))
	assert.ErrorIs(t, err, ErrInvalidState)
	assert.Empty(t, s.History())

	_, err = s.SetSecret(code("red", "blue"))
	assert.ErrorIs(t, err, ErrInvalidInput)
	assert.Equal(t, StatusAwaitingSecret, s.Status())

	st, err := s.SetSecret(code("red", "blue", "green", "red"))
	require.NoError(t, err)
	assert.Equal(t, StatusInProgress, st)
	assert.Equal(t, code("Red", "Blue", "Green", "Red"), s.RevealSecret())

	_, err = s.SetSecret(code("Blue", "Blue", "Blue", "Blue"))
	assert.ErrorIs(t, err, ErrInvalidState)
	assert.Equal(t, code("Red", "Blue", "Green", "Red"), s.RevealSecret())

	a, st, err := s.SubmitGuess(code("Red", "Green", "Blue", "Orange"))
	require.NoError(t, err)
	assert.Equal(t, StatusInProgress, st)
	assert.Equal(t, 1, a.Exact)
	assert.Equal(t, 2, a.Value)
}

func TestAccessorsReturnCopies(t *testing.T) {
	s := newSolver(t, 0, 1, 2, 3)
	_, _, err := s.SubmitGuess(code("1", "1", "1", "1"))
	require.NoError(t, err)

	secret := s.RevealSecret()
	secret[0] = "6"
	hist := s.History()
	hist[0].Guess[0] = "6"
	hist[0].Exact = 99

	assert.Equal(t, code("1", "2", "3", "4"), s.RevealSecret())
	assert.Equal(t, code("1", "1", "1", "1"), s.History()[0].Guess)
	assert.Equal(t, 1, s.History()[0].Exact)
}

func TestSnapshotHidesSecretUntilTerminal(t *testing.T) {
	s := newSolver(t, 0, 1, 2, 3)

	snap := s.Snapshot()
	assert.Nil(t, snap.Secret)
	assert.Equal(t, StatusInProgress, snap.Status)
	assert.Equal(t, 10, snap.Remaining)

	_, _, err := s.SubmitGuess(code("1", "2", "3", "4"))
	require.NoError(t, err)

	snap = s.Snapshot()
	assert.Equal(t, StatusWon, snap.Status)
	assert.Equal(t, code("1", "2", "3", "4"), snap.Secret)
	require.Len(t, snap.History, 1)
	assert.Equal(t, 1, snap.History[0].Turn)
}
