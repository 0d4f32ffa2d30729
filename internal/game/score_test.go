package game

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func digits(t *testing.T) Alphabet {
	t.Helper()
	a, err := NumericAlphabet(1, 6)
	require.NoError(t, err)
	return a
}

func colors(t *testing.T) Alphabet {
	t.Helper()
	a, err := NamedAlphabet("Red", "Blue", "Green", "Yellow", "Purple", "Orange")
	require.NoError(t, err)
	return a
}

func code(syms ...string) Code {
	out := make(Code, len(syms))
	for i, s := range syms {
		out[i] = Symbol(s)
	}
	return out
}

func TestScoreKnownCases(t *testing.T) {
	a := digits(t)
	tests := []struct {
		name   string
		secret Code
		guess  Code
		exact  int
		value  int
	}{
		{"rules example", code("1", "2", "3", "4"), code("1", "3", "2", "6"), 1, 2},
		{"duplicates in guess", code("1", "1", "2", "3"), code("1", "1", "1", "1"), 2, 0},
		{"all exact", code("5", "4", "3", "2"), code("5", "4", "3", "2"), 4, 0},
		{"no overlap", code("1", "1", "1", "1"), code("2", "2", "2", "2"), 0, 0},
		{"all swapped", code("1", "1", "2", "2"), code("2", "2", "1", "1"), 0, 4},
		{"reversed", code("5", "4", "3", "2"), code("4", "3", "2", "1"), 0, 3},
		{"partial repeats", code("5", "4", "3", "2"), code("1", "2", "3", "5"), 1, 2},
		{"duplicate in secret only", code("2", "2", "1", "3"), code("2", "4", "2", "5"), 1, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			exact, value, err := Score(a, tt.secret, tt.guess)
			require.NoError(t, err)
			assert.Equal(t, tt.exact, exact, "exact")
			assert.Equal(t, tt.value, value, "value")
		})
	}
}

func TestScoreNamedAlphabetIgnoresCase(t *testing.T) {
	a := colors(t)

	exact, value, err := Score(a, code("Red", "Blue", "Green", "Red"), code("red", "GREEN", "blue", "Orange"))
	require.NoError(t, err)
	assert.Equal(t, 1, exact)
	assert.Equal(t, 2, value)
}

func TestScoreRejectsInvalidInput(t *testing.T) {
	a := digits(t)

	_, _, err := Score(a, code("1", "2", "3", "4"), code("1", "2", "3"))
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, _, err = Score(a, code("1", "2", "3", "4"), code("1", "2", "3", "7"))
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, _, err = Score(a, code("1", "2", "3", "Red"), code("1", "2", "3", "4"))
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestScoreProperties(t *testing.T) {
	a := digits(t)
	r := rand.New(rand.NewPCG(7, 11))

	for i := 0; i < 2000; i++ {
		length := 1 + r.IntN(6)
		secret := RandomCode(a, length, r)
		guess := RandomCode(a, length, r)

		exact, value, err := Score(a, secret, guess)
		require.NoError(t, err)
		require.GreaterOrEqual(t, exact, 0)
		require.LessOrEqual(t, exact, length)
		require.GreaterOrEqual(t, value, 0)
		require.LessOrEqual(t, exact+value, length, "secret %v guess %v", secret, guess)

		rexact, rvalue, err := Score(a, guess, secret)
		require.NoError(t, err)
		require.Equal(t, exact, rexact, "exact symmetry for %v / %v", secret, guess)
		require.Equal(t, value, rvalue, "value symmetry for %v / %v", secret, guess)

		self, selfValue, err := Score(a, secret, secret)
		require.NoError(t, err)
		require.Equal(t, length, self)
		require.Zero(t, selfValue)
	}
}
