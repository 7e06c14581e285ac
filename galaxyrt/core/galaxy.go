package core

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// ParticleBuffer holds the generated point cloud as two parallel slices.
// Positions[i] and Colors[i] describe particle i.
type ParticleBuffer struct {
	Positions []mgl32.Vec3
	Colors    []mgl32.Vec3

	released bool
}

func (b *ParticleBuffer) Len() int {
	if b == nil {
		return 0
	}
	return len(b.Positions)
}

// Release drops the particle data. A released buffer must not be rendered.
func (b *ParticleBuffer) Release() {
	if b == nil {
		return
	}
	b.Positions = nil
	b.Colors = nil
	b.released = true
}

func (b *ParticleBuffer) Released() bool {
	return b != nil && b.released
}

// BranchOf returns the spiral arm index of particle i.
func BranchOf(i, branches int) int {
	return i % branches
}

// GenerateGalaxy builds a fresh particle buffer from p. rng may be nil, in
// which case the process-wide source is used.
//
// Per particle the source is sampled in a fixed order: the radius, then for
// each of x, y and z a magnitude followed by a sign.
func GenerateGalaxy(p ParameterSet, rng RandomSource) (*ParticleBuffer, error) {
	if err := p.validateGalaxy(); err != nil {
		return nil, err
	}
	inside, _ := ParseColor(ParamInsideColor, p.InsideColor)
	outside, _ := ParseColor(ParamOutsideColor, p.OutsideColor)
	if rng == nil {
		rng = ProcessSource()
	}

	buf := &ParticleBuffer{
		Positions: make([]mgl32.Vec3, p.Count),
		Colors:    make([]mgl32.Vec3, p.Count),
	}

	for i := 0; i < p.Count; i++ {
		r := rng.Float64() * p.Radius

		branchAngle := float64(BranchOf(i, p.Branches)) / float64(p.Branches) * math.Pi * 2
		spinAngle := r * p.Spin

		jx := jitter(rng, p.RandomnessPower)
		jy := jitter(rng, p.RandomnessPower)
		jz := jitter(rng, p.RandomnessPower)

		angle := branchAngle + spinAngle
		buf.Positions[i] = mgl32.Vec3{
			float32(math.Cos(angle)*r + jx),
			float32(jy),
			float32(math.Sin(angle)*r + jz),
		}

		t := 0.0
		if p.Radius > 0 {
			t = r / p.Radius
		}
		buf.Colors[i] = ColorVec3(LerpColor(inside, outside, t))
	}

	return buf, nil
}

// jitter concentrates samples near zero as power grows; the sign is a fair
// coin flip.
func jitter(rng RandomSource, power float64) float64 {
	magnitude := math.Pow(rng.Float64(), power)
	if rng.Float64() < 0.5 {
		return magnitude
	}
	return -magnitude
}
