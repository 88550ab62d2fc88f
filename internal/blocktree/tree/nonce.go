package tree

import (
	crand "crypto/rand"
	"math/rand/v2"
)

// NonceSource supplies nonces for candidates that leave theirs at zero.
// *rand.Rand from math/rand/v2 satisfies it.
type NonceSource interface {
	Uint32() uint32
}

// FixedNonce always returns the same value.
type FixedNonce uint32

// Uint32 implements NonceSource.
func (n FixedNonce) Uint32() uint32 {
	return uint32(n)
}

func newNonceSource() NonceSource {
	var seed [32]byte
	_, _ = crand.Read(seed[:])
	return rand.New(rand.NewChaCha8(seed))
}
