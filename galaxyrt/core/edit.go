package core

import (
	"fmt"
	"math"
	"strings"
)

// Target tells which generators must rerun after an edit.
type Target uint8

const (
	TargetGalaxy Target = 1 << iota
	TargetSun

	TargetNone Target = 0
	TargetAll         = TargetGalaxy | TargetSun
)

func (t Target) Has(o Target) bool { return t&o == o && o != 0 }

func (t Target) String() string {
	var parts []string
	if t.Has(TargetGalaxy) {
		parts = append(parts, "galaxy")
	}
	if t.Has(TargetSun) {
		parts = append(parts, "sun")
	}
	if len(parts) == 0 {
		return "none"
	}
	return strings.Join(parts, "+")
}

// Edit is a committed change of one named parameter. Numeric parameters use
// Value, colors use Text.
type Edit struct {
	Name  string
	Value float64
	Text  string
}

func NumberEdit(name string, v float64) Edit { return Edit{Name: name, Value: v} }

func ColorEdit(name, hex string) Edit { return Edit{Name: name, Text: hex} }

// TargetOf reports which generators depend on the named parameter.
func TargetOf(name string) Target {
	switch name {
	case ParamSunScale:
		return TargetSun
	case ParamInsideColor:
		return TargetAll
	case ParamCount, ParamSize, ParamRadius, ParamBranches, ParamSpin,
		ParamRandomness, ParamRandomnessPower, ParamOutsideColor:
		return TargetGalaxy
	}
	return TargetNone
}

// Apply returns a copy of p with e applied. On error p is returned
// unchanged along with TargetNone.
func (p ParameterSet) Apply(e Edit) (ParameterSet, Target, error) {
	if !isColorParam(e.Name) && !finite(e.Value) {
		return p, TargetNone, invalid(e.Name, e.Value, "must be finite")
	}

	next := p
	switch e.Name {
	case ParamCount:
		n, ok := roundInt(e.Value)
		if !ok || n > MaxCount {
			return p, TargetNone, invalid(e.Name, e.Value, fmt.Sprintf("must be <= %d", MaxCount))
		}
		next.Count = n
	case ParamSize:
		next.Size = e.Value
	case ParamRadius:
		next.Radius = e.Value
	case ParamBranches:
		n, ok := roundInt(e.Value)
		if !ok {
			return p, TargetNone, invalid(e.Name, e.Value, "out of range")
		}
		next.Branches = n
	case ParamSpin:
		next.Spin = e.Value
	case ParamRandomness:
		next.Randomness = e.Value
	case ParamRandomnessPower:
		next.RandomnessPower = e.Value
	case ParamInsideColor:
		next.InsideColor = strings.TrimSpace(e.Text)
	case ParamOutsideColor:
		next.OutsideColor = strings.TrimSpace(e.Text)
	case ParamSunScale:
		next.SunScale = e.Value
	default:
		return p, TargetNone, invalid(e.Name, e.Value, "unknown parameter")
	}

	if err := next.Validate(); err != nil {
		return p, TargetNone, err
	}
	return next, TargetOf(e.Name), nil
}

func isColorParam(name string) bool {
	return name == ParamInsideColor || name == ParamOutsideColor
}

// roundInt rounds v to the nearest int. Values outside the int32 range are
// refused so the conversion behaves the same on every platform.
func roundInt(v float64) (int, bool) {
	r := math.Round(v)
	if !finite(r) || r > math.MaxInt32 || r < math.MinInt32 {
		return 0, false
	}
	return int(r), true
}
