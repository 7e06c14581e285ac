package core

import (
	"fmt"
	"math"
)

// Parameter names, shared by edits, presets and the debug panel.
const (
	ParamCount           = "count"
	ParamSize            = "size"
	ParamRadius          = "radius"
	ParamBranches        = "branches"
	ParamSpin            = "spin"
	ParamRandomness      = "randomness"
	ParamRandomnessPower = "randomnessPower"
	ParamInsideColor     = "insideColor"
	ParamOutsideColor    = "outsideColor"
	ParamSunScale        = "sunScale"
)

// MaxCount bounds the star count so a preset or edit cannot request an
// allocation the generator cannot satisfy.
const MaxCount = 10_000_000

// ParameterSet is the full set of tunable values read by the galaxy and sun
// generators. It is passed by value; generators never keep a reference to it.
type ParameterSet struct {
	Count    int     `json:"count"`
	Size     float64 `json:"size"`
	Radius   float64 `json:"radius"`
	Branches int     `json:"branches"`
	Spin     float64 `json:"spin"`
	// Randomness is stored and editable but not applied to jitter.
	Randomness      float64 `json:"randomness"`
	RandomnessPower float64 `json:"randomnessPower"`
	InsideColor     string  `json:"insideColor"`
	OutsideColor    string  `json:"outsideColor"`
	SunScale        float64 `json:"sunScale"`
}

func DefaultParameters() ParameterSet {
	return ParameterSet{
		Count:           50000,
		Size:            0.01,
		Radius:          5,
		Branches:        5,
		Spin:            1,
		Randomness:      0.2,
		RandomnessPower: 3,
		InsideColor:     "#ff6030",
		OutsideColor:    "#1b3984",
		SunScale:        0.17,
	}
}

// Validate checks every field, including both colors.
func (p ParameterSet) Validate() error {
	if err := p.validateGalaxy(); err != nil {
		return err
	}
	return p.validateSun()
}

func (p ParameterSet) validateGalaxy() error {
	if p.Count < 0 {
		return invalid(ParamCount, p.Count, "must be >= 0")
	}
	if p.Count > MaxCount {
		return invalid(ParamCount, p.Count, fmt.Sprintf("must be <= %d", MaxCount))
	}
	if p.Branches < 1 {
		return invalid(ParamBranches, p.Branches, "must be >= 1")
	}
	if !finite(p.Radius) || p.Radius < 0 {
		return invalid(ParamRadius, p.Radius, "must be a finite value >= 0")
	}
	if !finite(p.RandomnessPower) || p.RandomnessPower < 0 {
		return invalid(ParamRandomnessPower, p.RandomnessPower, "must be a finite value >= 0")
	}
	if !finite(p.Spin) {
		return invalid(ParamSpin, p.Spin, "must be finite")
	}
	if !finite(p.Size) {
		return invalid(ParamSize, p.Size, "must be finite")
	}
	if !finite(p.Randomness) {
		return invalid(ParamRandomness, p.Randomness, "must be finite")
	}
	if _, err := ParseColor(ParamInsideColor, p.InsideColor); err != nil {
		return err
	}
	if _, err := ParseColor(ParamOutsideColor, p.OutsideColor); err != nil {
		return err
	}
	return nil
}

func (p ParameterSet) validateSun() error {
	if !finite(p.SunScale) || p.SunScale < 0 {
		return invalid(ParamSunScale, p.SunScale, "must be a finite value >= 0")
	}
	if _, err := ParseColor(ParamInsideColor, p.InsideColor); err != nil {
		return err
	}
	return nil
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
