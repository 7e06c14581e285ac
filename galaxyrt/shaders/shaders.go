package shaders

import (
	_ "embed"
)

//go:embed points.wgsl
var PointsWGSL string

//go:embed sun.wgsl
var SunWGSL string

//go:embed text.wgsl
var TextWGSL string
