// Package raster is a headless software renderer for galaxy frames. Points
// are splatted additively with area coverage; the sun is drawn as a
// shaded disk that occludes points behind it.
package raster

import (
	"image"
	"image/color"
	"math"

	"github.com/gekko3d/galaxy/galaxyrt/core"
	"github.com/go-gl/mathgl/mgl32"
)

type Points struct {
	Positions   []mgl32.Vec3
	Colors      []mgl32.Vec3
	Model       mgl32.Mat4
	Size        float32
	Attenuation bool
}

type Sphere struct {
	Center   mgl32.Vec3
	Radius   float32
	Material core.PhysicalMaterial
}

type Frame struct {
	View       mgl32.Mat4
	Projection mgl32.Mat4
	Background mgl32.Vec3
	Spheres    []Sphere
	Points     []Points
}

type Renderer struct {
	width  int
	height int
	accum  []mgl32.Vec3
	depth  []float32
}

func New(width, height int) *Renderer {
	r := &Renderer{}
	r.Resize(width, height)
	return r
}

func (r *Renderer) Resize(width, height int) {
	width, height = max(width, 0), max(height, 0)
	r.width, r.height = width, height
	n := width * height
	if cap(r.accum) < n {
		r.accum = make([]mgl32.Vec3, n)
		r.depth = make([]float32, n)
	}
	r.accum = r.accum[:n]
	r.depth = r.depth[:n]
}

func (r *Renderer) Size() (int, int) { return r.width, r.height }

// At returns the unclamped linear color of a pixel.
func (r *Renderer) At(x, y int) mgl32.Vec3 {
	if x < 0 || y < 0 || x >= r.width || y >= r.height {
		return mgl32.Vec3{}
	}
	return r.accum[y*r.width+x]
}

func (r *Renderer) clear(bg mgl32.Vec3) {
	inf := float32(math.Inf(1))
	for i := range r.accum {
		r.accum[i] = bg
		r.depth[i] = inf
	}
}

type projected struct {
	x, y  float32 // pixel coordinates
	depth float32 // view distance along -z
	w     float32
}

func (r *Renderer) project(viewProj mgl32.Mat4, world mgl32.Vec3) (projected, bool) {
	clip := viewProj.Mul4x1(world.Vec4(1))
	if clip.W() <= core.CameraNear {
		return projected{}, false
	}
	ndcX := clip.X() / clip.W()
	ndcY := clip.Y() / clip.W()
	return projected{
		x:     (ndcX + 1) * 0.5 * float32(r.width),
		y:     (1 - ndcY) * 0.5 * float32(r.height),
		depth: clip.W(),
		w:     clip.W(),
	}, true
}

// Render draws f. Spheres go first and write depth; points test against it
// and accumulate without writing.
func (r *Renderer) Render(f Frame) {
	r.clear(f.Background)
	if r.width == 0 || r.height == 0 {
		return
	}
	viewProj := f.Projection.Mul4(f.View)
	for _, s := range f.Spheres {
		r.drawSphere(viewProj, f.Projection, s)
	}
	for _, p := range f.Points {
		r.drawPoints(viewProj, p)
	}
}

func (r *Renderer) drawPoints(viewProj mgl32.Mat4, p Points) {
	mvp := viewProj.Mul4(p.Model)
	halfH := float32(r.height) * 0.5
	n := min(len(p.Positions), len(p.Colors))
	for i := 0; i < n; i++ {
		pr, ok := r.project(mvp, p.Positions[i])
		if !ok {
			continue
		}
		size := p.Size
		if p.Attenuation {
			size = p.Size * halfH / pr.w
		}
		r.splat(pr, size, p.Colors[i])
	}
}

// splat adds c over a size x size pixel square centered on pr, weighted by
// the overlap with each pixel.
func (r *Renderer) splat(pr projected, size float32, c mgl32.Vec3) {
	if size <= 0 {
		return
	}
	half := size * 0.5
	x0, x1 := pr.x-half, pr.x+half
	y0, y1 := pr.y-half, pr.y+half

	px0 := max(int(math.Floor(float64(x0))), 0)
	px1 := min(int(math.Ceil(float64(x1))), r.width)
	py0 := max(int(math.Floor(float64(y0))), 0)
	py1 := min(int(math.Ceil(float64(y1))), r.height)

	for py := py0; py < py1; py++ {
		oy := overlap(y0, y1, float32(py), float32(py+1))
		if oy <= 0 {
			continue
		}
		for px := px0; px < px1; px++ {
			ox := overlap(x0, x1, float32(px), float32(px+1))
			if ox <= 0 {
				continue
			}
			idx := py*r.width + px
			if pr.depth >= r.depth[idx] {
				continue
			}
			r.accum[idx] = r.accum[idx].Add(c.Mul(ox * oy))
		}
	}
}

func overlap(a0, a1, b0, b1 float32) float32 {
	return max(0, min(a1, b1)-max(a0, b0))
}

func (r *Renderer) drawSphere(viewProj, proj mgl32.Mat4, s Sphere) {
	if s.Radius <= 0 {
		return
	}
	center, ok := r.project(viewProj, s.Center)
	if !ok {
		return
	}
	// projected radius of a sphere seen head on
	radiusPx := s.Radius * proj[5] * float32(r.height) * 0.5 / center.w
	if radiusPx <= 0 {
		return
	}

	m := s.Material
	att := core.ColorVec3(m.AttenuationColor)
	spec := core.ColorVec3(m.SpecularColor).Mul(float32(m.SpecularIntensity))
	f0 := math.Pow((m.IOR-1)/(m.IOR+1), 2)

	px0 := max(int(center.x-radiusPx), 0)
	px1 := min(int(center.x+radiusPx)+1, r.width)
	py0 := max(int(center.y-radiusPx), 0)
	py1 := min(int(center.y+radiusPx)+1, r.height)

	for py := py0; py < py1; py++ {
		for px := px0; px < px1; px++ {
			dx := (float32(px) + 0.5 - center.x) / radiusPx
			dy := (float32(py) + 0.5 - center.y) / radiusPx
			d2 := dx*dx + dy*dy
			if d2 > 1 {
				continue
			}
			cosTheta := math.Sqrt(float64(1 - d2))
			depth := center.depth - s.Radius*float32(cosTheta)
			idx := py*r.width + px
			if depth >= r.depth[idx] {
				continue
			}
			r.depth[idx] = depth

			fresnel := f0 + (1-f0)*math.Pow(1-cosTheta, 5)
			path := m.Thickness * cosTheta
			var tint mgl32.Vec3
			for k := 0; k < 3; k++ {
				sigma := -math.Log(math.Max(float64(att[k]), 1e-4)) / math.Max(m.AttenuationDistance, 1e-4)
				tint[k] = float32(math.Exp(-sigma * path))
			}
			behind := r.accum[idx]
			transmitted := mgl32.Vec3{behind[0] * tint[0], behind[1] * tint[1], behind[2] * tint[2]}
			col := transmitted.Mul(float32(m.Transmission * (1 - fresnel))).Add(spec.Mul(float32(fresnel)))
			r.accum[idx] = col
		}
	}
}

// Image converts the accumulation buffer to 8-bit RGBA, clamping each channel.
func (r *Renderer) Image() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, r.width, r.height))
	for y := 0; y < r.height; y++ {
		for x := 0; x < r.width; x++ {
			c := r.accum[y*r.width+x]
			img.SetRGBA(x, y, color.RGBA{R: to8(c[0]), G: to8(c[1]), B: to8(c[2]), A: 255})
		}
	}
	return img
}

func to8(v float32) uint8 {
	if v <= 0 || v != v {
		return 0
	}
	if v >= 1 {
		return 255
	}
	return uint8(v*255 + 0.5)
}
