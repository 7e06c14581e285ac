package galaxy

import (
	"github.com/gekko3d/galaxy/galaxyrt/core"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/google/uuid"
)

// AssetId names uploaded geometry; renderers key their GPU buffers by it.
type AssetId string

func newAssetId() AssetId {
	return AssetId(uuid.NewString())
}

type Blending int

const (
	BlendNormal Blending = iota
	BlendAdditive
)

type PointsMaterial struct {
	Size            float32
	SizeAttenuation bool
	DepthWrite      bool
	VertexColors    bool
	Blending        Blending
}

// TransformComponent places an entity. Rotation holds Euler angles applied
// in XYZ order.
type TransformComponent struct {
	Position mgl32.Vec3
	Rotation mgl32.Vec3
	Scale    mgl32.Vec3
}

func IdentityTransform() TransformComponent {
	return TransformComponent{Scale: mgl32.Vec3{1, 1, 1}}
}

func (tr TransformComponent) Model() mgl32.Mat4 {
	return mgl32.Translate3D(tr.Position.X(), tr.Position.Y(), tr.Position.Z()).
		Mul4(core.ModelMatrix(tr.Rotation, 1)).
		Mul4(mgl32.Scale3D(tr.Scale.X(), tr.Scale.Y(), tr.Scale.Z()))
}

// GalaxyPoints is the point cloud component of the galaxy entity.
type GalaxyPoints struct {
	Asset    AssetId
	Buffer   *core.ParticleBuffer
	Material PointsMaterial
}

func NewGalaxyPoints(buf *core.ParticleBuffer, size float64) *GalaxyPoints {
	return &GalaxyPoints{
		Asset:  newAssetId(),
		Buffer: buf,
		Material: PointsMaterial{
			Size:            float32(size),
			SizeAttenuation: true,
			DepthWrite:      false,
			VertexColors:    true,
			Blending:        BlendAdditive,
		},
	}
}

func (g *GalaxyPoints) Release() {
	if g.Buffer != nil {
		g.Buffer.Release()
	}
}

// SunMesh is the sphere component of the sun entity.
type SunMesh struct {
	Asset      AssetId
	Descriptor core.SunDescriptor
	Mesh       core.SphereMesh
	released   bool
}

func NewSunMesh(d core.SunDescriptor) *SunMesh {
	return &SunMesh{Asset: newAssetId(), Descriptor: d, Mesh: d.Tessellate()}
}

func (s *SunMesh) Release() {
	s.Mesh = core.SphereMesh{}
	s.released = true
}

func (s *SunMesh) Released() bool { return s.released }
