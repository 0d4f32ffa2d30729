package game

import (
	"crypto/rand"
	"encoding/hex"
	"math/big"
)

// Source supplies uniform integers in [0, n). *math/rand/v2.Rand satisfies it,
// so tests can inject rand.New(rand.NewPCG(seed1, seed2)).
type Source interface {
	IntN(n int) int
}

// CryptoSource draws from crypto/rand. It is the default when no Source is set.
type CryptoSource struct{}

// IntN returns a uniform value in [0, n). It panics if n <= 0, like math/rand.
func (CryptoSource) IntN(n int) int {
	if n <= 0 {
		panic("game: invalid argument to IntN")
	}
	v, err := rand.Int(rand.Reader, big.NewInt(int64(n)))
	if err != nil {
		panic("game: crypto/rand unavailable: " + err.Error())
	}
	return int(v.Int64())
}

// RandomCode draws length independent uniform samples, with replacement, from a.
func RandomCode(a Alphabet, length int, src Source) Code {
	if src == nil {
		src = CryptoSource{}
	}
	out := make(Code, length)
	for i := range out {
		out[i] = a.symbols[src.IntN(a.Size())]
	}
	return out
}

// randomID returns a compact 16-hex-char identifier.
func randomID() string {
	var b [8]byte
	_, _ = rand.Read(b[:])
	return hex.EncodeToString(b[:])
}
