package weather

import (
	"math/rand/v2"
)

// Source produces uniform draws in [0,1). Implementations carry mutable state and
// are not safe for concurrent use; give every Generate call its own Source.
type Source interface {
	Float32() float32
}

// XorWowSource is Marsaglia's xorwow generator with a Weyl sequence addend.
// Seeding and the 24-bit float draw follow the sequence the recorded reference
// data was produced with, so equal seeds give bit-identical output.
type XorWowSource struct {
	x, y, z, w, v int32
	addend        int32
}

// NewSeededSource returns a deterministic source for seed.
func NewSeededSource(seed int32) *XorWowSource {
	return newXorWow(seed, seed>>31)
}

func newXorWow(seed1, seed2 int32) *XorWowSource {
	s := &XorWowSource{
		x:      seed1,
		y:      seed2,
		v:      ^seed1,
		addend: (seed1 << 10) ^ int32(uint32(seed2)>>4),
	}
	// Trivial seeds give several values with zero upper bits; skip past them.
	for i := 0; i < 64; i++ {
		s.nextInt()
	}
	return s
}

func (s *XorWowSource) nextInt() int32 {
	t := s.x
	t ^= int32(uint32(t) >> 2)
	s.x, s.y, s.z = s.y, s.z, s.w
	v0 := s.v
	s.w = v0
	t = (t ^ (t << 1)) ^ v0 ^ (v0 << 4)
	s.v = t
	s.addend += 362437
	return t + s.addend
}

// nextBits returns the top n bits of the next value, 1 <= n <= 32.
func (s *XorWowSource) nextBits(n uint) uint32 {
	return uint32(s.nextInt()) >> (32 - n)
}

// Float32 returns the next draw in [0,1) with 24 bits of precision.
func (s *XorWowSource) Float32() float32 {
	return float32(s.nextBits(24)) / (1 << 24)
}

// NewRandomSource returns a source seeded from the runtime's entropy.
// Its output is deliberately not reproducible.
func NewRandomSource() Source {
	return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
}
