package core

import (
	"math"

	"github.com/lucasb-eyer/go-colorful"
)

const (
	SunBaseRadius     = 1.0
	SunWidthSegments  = 32
	SunHeightSegments = 16
)

// PhysicalMaterial describes a clear, refractive surface whose transmitted
// light is tinted by AttenuationColor over AttenuationDistance.
type PhysicalMaterial struct {
	Color               colorful.Color
	Transmission        float64
	Opacity             float64
	Metalness           float64
	Roughness           float64
	IOR                 float64
	Thickness           float64
	AttenuationColor    colorful.Color
	AttenuationDistance float64
	SpecularIntensity   float64
	SpecularColor       colorful.Color
	EnvMapIntensity     float64
}

type SunDescriptor struct {
	Radius         float64
	WidthSegments  int
	HeightSegments int
	Material       PhysicalMaterial
}

func GenerateSun(p ParameterSet) (SunDescriptor, error) {
	if err := p.validateSun(); err != nil {
		return SunDescriptor{}, err
	}
	tint, _ := ParseColor(ParamInsideColor, p.InsideColor)
	white := colorful.Color{R: 1, G: 1, B: 1}

	return SunDescriptor{
		Radius:         SunBaseRadius * p.SunScale,
		WidthSegments:  SunWidthSegments,
		HeightSegments: SunHeightSegments,
		Material: PhysicalMaterial{
			Color:               white,
			Transmission:        1,
			Opacity:             1,
			Metalness:           0,
			Roughness:           0,
			IOR:                 1.5,
			Thickness:           2.3,
			AttenuationColor:    tint,
			AttenuationDistance: 0.155,
			SpecularIntensity:   1,
			SpecularColor:       white,
			EnvMapIntensity:     1,
		},
	}, nil
}

type MeshVertex struct {
	Pos    [3]float32
	Normal [3]float32
}

type SphereMesh struct {
	Vertices []MeshVertex
	Indices  []uint16
}

// Tessellate builds a UV sphere: (w+1)*(h+1) vertices with the seam
// duplicated and degenerate pole triangles skipped.
func (d SunDescriptor) Tessellate() SphereMesh {
	w, h := d.WidthSegments, d.HeightSegments
	if w < 3 {
		w = 3
	}
	if h < 2 {
		h = 2
	}

	mesh := SphereMesh{
		Vertices: make([]MeshVertex, 0, (w+1)*(h+1)),
		Indices:  make([]uint16, 0, w*(2*h-2)*3),
	}

	grid := make([][]uint16, h+1)
	for iy := 0; iy <= h; iy++ {
		v := float64(iy) / float64(h)
		row := make([]uint16, w+1)
		for ix := 0; ix <= w; ix++ {
			u := float64(ix) / float64(w)
			phi := u * 2 * math.Pi
			theta := v * math.Pi

			nx := -math.Cos(phi) * math.Sin(theta)
			ny := math.Cos(theta)
			nz := math.Sin(phi) * math.Sin(theta)

			mesh.Vertices = append(mesh.Vertices, MeshVertex{
				Pos:    [3]float32{float32(nx * d.Radius), float32(ny * d.Radius), float32(nz * d.Radius)},
				Normal: [3]float32{float32(nx), float32(ny), float32(nz)},
			})
			row[ix] = uint16(len(mesh.Vertices) - 1)
		}
		grid[iy] = row
	}

	for iy := 0; iy < h; iy++ {
		for ix := 0; ix < w; ix++ {
			a := grid[iy][ix+1]
			b := grid[iy][ix]
			c := grid[iy+1][ix]
			dd := grid[iy+1][ix+1]
			if iy != 0 {
				mesh.Indices = append(mesh.Indices, a, b, dd)
			}
			if iy != h-1 {
				mesh.Indices = append(mesh.Indices, b, c, dd)
			}
		}
	}

	return mesh
}
