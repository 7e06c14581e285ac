package core

import (
	"math/rand/v2"
)

// RandomSource yields uniform samples in [0,1).
type RandomSource interface {
	Float64() float64
}

type processSource struct{}

func (processSource) Float64() float64 { return rand.Float64() }

// ProcessSource is the unseeded process-wide source; every call to
// GenerateGalaxy with it produces a different galaxy.
func ProcessSource() RandomSource { return processSource{} }

// NewSeededSource returns a reproducible source. It is not safe for
// concurrent use.
func NewSeededSource(seed uint64) RandomSource {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}
