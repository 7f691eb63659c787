package vmath

// Rand is the random source animation code draws from
// Float64 returns a value in [0, 1)
type Rand interface {
	Float64() float64
}

// FastRand is a xorshift64 generator, deterministic for a given seed
type FastRand struct {
	state uint64
}

func NewFastRand(seed uint64) *FastRand {
	if seed == 0 {
		seed = 1
	}
	return &FastRand{state: seed}
}

func (r *FastRand) Next() uint64 {
	x := r.state
	x ^= x << 13
	x ^= x >> 17
	x ^= x << 5
	r.state = x
	return x
}

// Float64 uses the top 53 bits so every value is exactly representable
func (r *FastRand) Float64() float64 {
	return float64(r.Next()>>11) / (1 << 53)
}

// Uniform returns a value in [-1, 1)
func Uniform(r Rand) float64 {
	return r.Float64()*2 - 1
}

// Script replays a fixed sequence of values, cycling when exhausted
// Intended for tests that need exact transition timing
type Script struct {
	Values []float64
	pos    int
}

func (s *Script) Float64() float64 {
	if len(s.Values) == 0 {
		return 0.999
	}
	v := s.Values[s.pos%len(s.Values)]
	s.pos++
	return v
}

// Const always returns the same value
type Const float64

func (c Const) Float64() float64 { return float64(c) }
