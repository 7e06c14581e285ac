package core

import (
	"github.com/go-gl/mathgl/mgl32"
)

// Angular speeds of the idle galaxy spin, radians per second.
const (
	GalaxySpinY = 0.1
	GalaxySpinZ = 0.02
)

// GalaxyRotation returns the Euler angles (x, y, z) of the galaxy after
// elapsed seconds.
func GalaxyRotation(elapsed float64) mgl32.Vec3 {
	return mgl32.Vec3{0, float32(elapsed * GalaxySpinY), float32(elapsed * GalaxySpinZ)}
}

// ModelMatrix composes an XYZ-ordered Euler rotation with a uniform scale.
func ModelMatrix(rotation mgl32.Vec3, scale float32) mgl32.Mat4 {
	rot := mgl32.HomogRotate3DX(rotation.X()).
		Mul4(mgl32.HomogRotate3DY(rotation.Y())).
		Mul4(mgl32.HomogRotate3DZ(rotation.Z()))
	return rot.Mul4(mgl32.Scale3D(scale, scale, scale))
}
