package motion

import "math/rand/v2"

// RandomSource supplies uniform draws in [0,1). *rand.Rand satisfies it.
type RandomSource interface {
	Float64() float64
}

// NewSeededSource returns a reproducible source for fixtures and tests.
// It is not safe for concurrent use.
func NewSeededSource(seed uint64) RandomSource {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// entropySource draws from the runtime's shared generator, which is safe for
// concurrent use.
type entropySource struct{}

func (entropySource) Float64() float64 { return rand.Float64() }

// EntropySource is used when a caller passes a nil RandomSource.
var EntropySource RandomSource = entropySource{}
