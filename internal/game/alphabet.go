// internal/game/alphabet.go
//
// Alphabets: the finite symbol sets codes are drawn from.
//
// An Alphabet is a tagged variant:
//   - KindNumeric: consecutive integers min..max, labelled "1", "2", ...
//   - KindNamed:   an explicit list of names ("Red", "Blue", ...).
//
// Lookups on named alphabets are case-insensitive; the canonical spelling
// given at construction is what ends up stored in sessions.

package game

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
)

// Kind tags the alphabet variant.
type Kind string

const (
	KindNumeric Kind = "numeric"
	KindNamed   Kind = "named"
)

// Alphabet is an ordered, duplicate-free set of symbols.
// The zero value is an empty alphabet and is rejected by New.
type Alphabet struct {
	kind    Kind
	symbols []Symbol
	index   map[string]int // lookup key -> position in symbols
}

// NumericAlphabet returns the alphabet min..max inclusive.
func NumericAlphabet(min, max int) (Alphabet, error) {
	if max < min {
		return Alphabet{}, fmt.Errorf("%w: numeric alphabet %d..%d is empty", ErrInvalidInput, min, max)
	}
	a := Alphabet{kind: KindNumeric, index: make(map[string]int, max-min+1)}
	for n := min; n <= max; n++ {
		s := Symbol(strconv.Itoa(n))
		a.index[string(s)] = len(a.symbols)
		a.symbols = append(a.symbols, s)
	}
	return a, nil
}

// NamedAlphabet returns an alphabet over the given names, in order.
// Names must be non-empty and unique ignoring case.
func NamedAlphabet(names ...string) (Alphabet, error) {
	if len(names) == 0 {
		return Alphabet{}, fmt.Errorf("%w: named alphabet has no symbols", ErrInvalidInput)
	}
	a := Alphabet{kind: KindNamed, index: make(map[string]int, len(names))}
	for _, n := range names {
		n = strings.TrimSpace(n)
		if n == "" {
			return Alphabet{}, fmt.Errorf("%w: empty symbol name", ErrInvalidInput)
		}
		key := strings.ToLower(n)
		if _, dup := a.index[key]; dup {
			return Alphabet{}, fmt.Errorf("%w: duplicate symbol %q", ErrInvalidInput, n)
		}
		a.index[key] = len(a.symbols)
		a.symbols = append(a.symbols, Symbol(n))
	}
	return a, nil
}

// Kind returns the variant tag.
func (a Alphabet) Kind() Kind { return a.kind }

// Size is the number of symbols.
func (a Alphabet) Size() int { return len(a.symbols) }

// Symbols returns a copy of the symbols in alphabet order.
func (a Alphabet) Symbols() []Symbol { return append([]Symbol(nil), a.symbols...) }

// Index returns the position of s in the alphabet.
func (a Alphabet) Index(s Symbol) (int, bool) {
	i, ok := a.index[a.key(s)]
	return i, ok
}

// Contains reports whether s belongs to the alphabet.
func (a Alphabet) Contains(s Symbol) bool {
	_, ok := a.Index(s)
	return ok
}

// Canonical maps s to the alphabet's own spelling.
func (a Alphabet) Canonical(s Symbol) (Symbol, bool) {
	i, ok := a.Index(s)
	if !ok {
		return "", false
	}
	return a.symbols[i], true
}

// Normalize checks that code has the given length and only alphabet symbols,
// and returns a fresh copy in canonical spelling.
func (a Alphabet) Normalize(code Code, length int) (Code, error) {
	if len(code) != length {
		return nil, fmt.Errorf("%w: code has %d symbols, want %d", ErrInvalidInput, len(code), length)
	}
	out := make(Code, len(code))
	for i, s := range code {
		c, ok := a.Canonical(s)
		if !ok {
			return nil, fmt.Errorf("%w: symbol %q at position %d is not in the alphabet", ErrInvalidInput, s, i+1)
		}
		out[i] = c
	}
	return out, nil
}

// Validate is Normalize without the result.
func (a Alphabet) Validate(code Code, length int) error {
	_, err := a.Normalize(code, length)
	return err
}

// Parse turns free-form player input into a code.
//
// Accepted forms:
//   - separated tokens: "1 3 2 6", "red,blue,green,red"
//   - numeric alphabets with single-digit labels also take "1326"
//   - named alphabets take unique initials: "R B G R" or "rbgr"
//
// The result is not length-checked; pass it to Normalize/Validate.
func (a Alphabet) Parse(raw string) (Code, error) {
	tokens := strings.FieldsFunc(raw, func(r rune) bool {
		return unicode.IsSpace(r) || r == ',' || r == ';'
	})
	if len(tokens) == 1 && a.compactable() {
		if _, whole := a.resolve(tokens[0]); !whole {
			tokens = splitRunes(tokens[0])
		}
	}
	if len(tokens) == 0 {
		return nil, fmt.Errorf("%w: empty code", ErrInvalidInput)
	}
	out := make(Code, 0, len(tokens))
	for _, t := range tokens {
		s, ok := a.resolve(t)
		if !ok {
			return nil, fmt.Errorf("%w: unknown symbol %q", ErrInvalidInput, t)
		}
		out = append(out, s)
	}
	return out, nil
}

// resolve looks a token up by full name, then by initial for named alphabets.
func (a Alphabet) resolve(tok string) (Symbol, bool) {
	if s, ok := a.Canonical(Symbol(tok)); ok {
		return s, true
	}
	if a.kind != KindNamed || len([]rune(tok)) != 1 {
		return "", false
	}
	return a.byInitial(tok)
}

func (a Alphabet) byInitial(tok string) (Symbol, bool) {
	var found Symbol
	n := 0
	for _, s := range a.symbols {
		if strings.EqualFold(string([]rune(string(s))[0]), tok) {
			found = s
			n++
		}
	}
	return found, n == 1
}

// compactable reports whether an unseparated token can be split per rune:
// every symbol must be addressable by one character.
func (a Alphabet) compactable() bool {
	switch a.kind {
	case KindNumeric:
		for _, s := range a.symbols {
			if len(s) != 1 {
				return false
			}
		}
		return true
	case KindNamed:
		for _, s := range a.symbols {
			if _, ok := a.byInitial(string([]rune(string(s))[0])); !ok {
				return false
			}
		}
		return true
	}
	return false
}

func (a Alphabet) key(s Symbol) string {
	if a.kind == KindNamed {
		return strings.ToLower(strings.TrimSpace(string(s)))
	}
	return strings.TrimSpace(string(s))
}

func splitRunes(s string) []string {
	out := make([]string, 0, len(s))
	for _, r := range s {
		out = append(out, string(r))
	}
	return out
}
