package generator

import (
	"crypto/rand"
	"math/big"
	mrand "math/rand/v2"
)

// Source supplies uniformly distributed integers in [0, n).
// n is always positive when called by a Generator.
type Source interface {
	IntN(n int) int
}

// defaultSource uses the auto-seeded top-level math/rand/v2 functions,
// which are safe for concurrent use.
type defaultSource struct{}

func (defaultSource) IntN(n int) int {
	return mrand.IntN(n)
}

// NewSeededSource returns a deterministic source. Two sources built from
// the same seed produce the same sequence. Not safe for concurrent use.
func NewSeededSource(seed uint64) Source {
	return mrand.New(mrand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// CryptoSource draws from crypto/rand. It is opt-in; the package default
// stays on math/rand. A read failure from the system CSPRNG panics.
type CryptoSource struct{}

func (CryptoSource) IntN(n int) int {
	v, err := rand.Int(rand.Reader, big.NewInt(int64(n)))
	if err != nil {
		panic("generator: crypto/rand read failed: " + err.Error())
	}
	return int(v.Int64())
}

var (
	_ Source = defaultSource{}
	_ Source = CryptoSource{}
	_ Source = (*mrand.Rand)(nil)
)
