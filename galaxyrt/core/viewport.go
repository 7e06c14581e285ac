package core

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// MaxPixelRatio caps the device pixel ratio used for the drawing surface.
const MaxPixelRatio = 2.0

// Viewport is a window size in logical units plus the pixel ratio used to
// size the drawing surface.
type Viewport struct {
	Width      int
	Height     int
	PixelRatio float64
}

// ResolveViewport clamps deviceScale into [1, MaxPixelRatio].
func ResolveViewport(width, height int, deviceScale float64) Viewport {
	ratio := deviceScale
	if math.IsNaN(ratio) || ratio < 1 {
		ratio = 1
	}
	ratio = math.Min(ratio, MaxPixelRatio)
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	return Viewport{Width: width, Height: height, PixelRatio: ratio}
}

// Framebuffer returns the drawing surface size in physical pixels.
func (v Viewport) Framebuffer() (int, int) {
	return int(math.Round(float64(v.Width) * v.PixelRatio)), int(math.Round(float64(v.Height) * v.PixelRatio))
}

func (v Viewport) Aspect() float32 {
	if v.Height == 0 {
		return 1
	}
	return float32(v.Width) / float32(v.Height)
}

// glToWebGPUDepth remaps clip z from [-w, w] to [0, w].
var glToWebGPUDepth = mgl32.Mat4{
	1, 0, 0, 0,
	0, 1, 0, 0,
	0, 0, 0.5, 0,
	0, 0, 0.5, 1,
}

// WebGPUProjection converts a GL-style projection matrix to WebGPU clip space.
func WebGPUProjection(proj mgl32.Mat4) mgl32.Mat4 {
	return glToWebGPUDepth.Mul4(proj)
}
