package core

import (
	"strings"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/lucasb-eyer/go-colorful"
)

// ParseColor parses "#rgb" or "#rrggbb". Channels are taken as-is in [0,1]
// with no color-space conversion. name is only used for the error.
func ParseColor(name, s string) (colorful.Color, error) {
	hex := strings.TrimSpace(s)
	if len(hex) != 4 && len(hex) != 7 {
		return colorful.Color{}, invalid(name, s, "expected #rgb or #rrggbb")
	}
	if hex[0] != '#' {
		return colorful.Color{}, invalid(name, s, "missing leading '#'")
	}
	for _, r := range hex[1:] {
		if !isHexDigit(r) {
			return colorful.Color{}, invalid(name, s, "non-hex digit")
		}
	}

	c, err := colorful.Hex(strings.ToLower(hex))
	if err != nil {
		return colorful.Color{}, invalid(name, s, err.Error())
	}
	return c, nil
}

// MustParseColor panics on malformed input. Use for literals only.
func MustParseColor(s string) colorful.Color {
	c, err := ParseColor("color", s)
	if err != nil {
		panic(err)
	}
	return c
}

// LerpColor mixes a towards b per channel, linearly.
func LerpColor(a, b colorful.Color, t float64) colorful.Color {
	return a.BlendRgb(b, t)
}

func ColorVec3(c colorful.Color) mgl32.Vec3 {
	return mgl32.Vec3{float32(c.R), float32(c.G), float32(c.B)}
}

func isHexDigit(r rune) bool {
	return (r >= '0' && r <= '9') || (r >= 'a' && r <= 'f') || (r >= 'A' && r <= 'F')
}
