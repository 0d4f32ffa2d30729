package game

import "fmt"

// Score compares guess against secret over alphabet a.
//
// exact counts positions holding the same symbol. value counts the remaining
// matches ignoring position, as a multiset intersection:
//
// Pass 1:
//   - Count exact positions.
//   - For every other position, tally the leftover secret symbol and the
//     leftover guess symbol by alphabet index.
//
// Pass 2:
//   - For each symbol, add min(leftover secret, leftover guess).
//
// Repeated symbols are therefore never counted more often than the secret
// holds them. exact+value <= len(secret) always holds.
func Score(a Alphabet, secret, guess Code) (exact, value int, err error) {
	if len(secret) != len(guess) {
		return 0, 0, fmt.Errorf("%w: secret has %d symbols, guess has %d", ErrInvalidInput, len(secret), len(guess))
	}
	si, err := indices(a, secret)
	if err != nil {
		return 0, 0, err
	}
	gi, err := indices(a, guess)
	if err != nil {
		return 0, 0, err
	}

	leftSecret := make([]int, a.Size())
	leftGuess := make([]int, a.Size())
	for i := range si {
		if si[i] == gi[i] {
			exact++
			continue
		}
		leftSecret[si[i]]++
		leftGuess[gi[i]]++
	}
	for k := range leftSecret {
		value += min(leftSecret[k], leftGuess[k])
	}
	return exact, value, nil
}

// indices maps a code to alphabet positions so comparisons ignore spelling.
func indices(a Alphabet, c Code) ([]int, error) {
	out := make([]int, len(c))
	for i, s := range c {
		j, ok := a.Index(s)
		if !ok {
			return nil, fmt.Errorf("%w: symbol %q at position %d is not in the alphabet", ErrInvalidInput, s, i+1)
		}
		out[i] = j
	}
	return out, nil
}
