package ascerr

import (
	"crypto/rand"
	"io"
	mrand "math/rand/v2"

	sha3 "golang.org/x/crypto/sha3"
)

// Size of the seed extracted from the caller's random source.
const seedLen = 32

// A PRNG based on SHAKE256. The SHAKE output is consumed by blocks of
// 136 bytes (the SHAKE256 rate) and split into 64-bit words
// (little-endian). It implements math/rand/v2.Source, so that the usual
// distributions (uniform floats, normal samples, shuffles) are all
// derived from the same deterministic stream.
type shake256prng struct {
	state sha3.ShakeHash
	buf   [136]byte
	ptr   int
}

// Create a new SHAKE256-based PRNG, initialized with the provided seed.
func newSHAKE256prng(seed []byte) *shake256prng {
	r := new(shake256prng)
	r.state = sha3.NewShake256()
	r.state.Write(seed)
	r.ptr = len(r.buf)
	return r
}

// Get next 64-bit value.
func (r *shake256prng) next_u64() uint64 {
	ptr := r.ptr
	if ptr > len(r.buf)-8 {
		r.refill()
		ptr = 0
	}
	x := uint64(0)
	for i := 0; i < 8; i++ {
		x |= uint64(r.buf[ptr+i]) << (i << 3)
	}
	r.ptr = ptr + 8
	return x
}

// Refill the output buffer from the SHAKE256 instance.
func (r *shake256prng) refill() {
	r.state.Read(r.buf[:])
	r.ptr = 0
}

// Uint64 implements math/rand/v2.Source.
func (r *shake256prng) Uint64() uint64 {
	return r.next_u64()
}

// NewRand returns a random generator deterministically derived from
// the provided seed. Any seed length is accepted.
func NewRand(seed []byte) *mrand.Rand {
	return mrand.New(newSHAKE256prng(seed))
}

// Obtain a 32-byte seed from rng (nil to use the OS RNG) and build the
// corresponding random generator.
func newRandFromReader(rng io.Reader) (*mrand.Rand, error) {
	if rng == nil {
		rng = rand.Reader
	}
	var seed [seedLen]byte
	if _, err := io.ReadFull(rng, seed[:]); err != nil {
		return nil, err
	}
	return NewRand(seed[:]), nil
}

// Get a uniform value in [0,1).
func uniform(r *mrand.Rand) float64 {
	return r.Float64()
}

// Fill out[] with uniform values in [0,1).
func fill_uniform(r *mrand.Rand, out []float64) {
	for i := range out {
		out[i] = uniform(r)
	}
}
