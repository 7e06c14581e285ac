package core

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

const (
	CameraFovDegrees = 75
	CameraNear       = 0.1
	CameraFar        = 100

	orbitMinDistance = 0.05
	orbitMaxDistance = 90
	orbitPolarEps    = 1e-6
)

// OrbitCamera circles Target at Distance. Input accumulates into pending
// deltas which Update bleeds off by DampingFactor each frame, so motion
// eases out after the input stops.
type OrbitCamera struct {
	Target   mgl32.Vec3
	Distance float64
	Azimuth  float64 // around +Y, 0 looks down -Z
	Polar    float64 // from +Y

	DampingFactor float64
	RotateSpeed   float64
	ZoomSpeed     float64

	deltaAzimuth float64
	deltaPolar   float64
	dollyScale   float64
}

func NewOrbitCamera() *OrbitCamera {
	c := &OrbitCamera{
		DampingFactor: 0.05,
		RotateSpeed:   1,
		ZoomSpeed:     1,
		dollyScale:    1,
	}
	c.LookFrom(mgl32.Vec3{3, 3, 3})
	return c
}

// LookFrom places the camera at pos, keeping the current target.
func (c *OrbitCamera) LookFrom(pos mgl32.Vec3) {
	off := pos.Sub(c.Target)
	c.Distance = float64(off.Len())
	if c.Distance == 0 {
		c.Azimuth, c.Polar = 0, math.Pi/2
		return
	}
	c.Azimuth = math.Atan2(float64(off.X()), float64(off.Z()))
	c.Polar = math.Acos(clamp(float64(off.Y())/c.Distance, -1, 1))
}

func (c *OrbitCamera) Position() mgl32.Vec3 {
	sinPolar := math.Sin(c.Polar)
	return c.Target.Add(mgl32.Vec3{
		float32(c.Distance * sinPolar * math.Sin(c.Azimuth)),
		float32(c.Distance * math.Cos(c.Polar)),
		float32(c.Distance * sinPolar * math.Cos(c.Azimuth)),
	})
}

// Drag rotates by a pointer movement of (dx, dy) pixels on a surface that is
// height pixels tall.
func (c *OrbitCamera) Drag(dx, dy float64, height int) {
	if height <= 0 {
		return
	}
	h := float64(height)
	c.deltaAzimuth -= 2 * math.Pi * dx / h * c.RotateSpeed
	c.deltaPolar -= 2 * math.Pi * dy / h * c.RotateSpeed
}

// Scroll dollies in for positive steps and out for negative ones.
func (c *OrbitCamera) Scroll(steps float64) {
	if steps == 0 {
		return
	}
	c.dollyScale *= math.Pow(0.95, c.ZoomSpeed*steps)
}

// Update applies pending input with damping.
func (c *OrbitCamera) Update() {
	f := c.DampingFactor
	if f <= 0 || f > 1 {
		f = 1
	}

	c.Azimuth += c.deltaAzimuth * f
	c.Polar += c.deltaPolar * f
	c.Polar = clamp(c.Polar, orbitPolarEps, math.Pi-orbitPolarEps)

	c.Distance = clamp(c.Distance*c.dollyScale, orbitMinDistance, orbitMaxDistance)

	c.deltaAzimuth *= 1 - f
	c.deltaPolar *= 1 - f
	c.dollyScale = 1
}

func (c *OrbitCamera) View() mgl32.Mat4 {
	return mgl32.LookAtV(c.Position(), c.Target, mgl32.Vec3{0, 1, 0})
}

func (c *OrbitCamera) Projection(aspect float32) mgl32.Mat4 {
	if aspect <= 0 {
		aspect = 1
	}
	return mgl32.Perspective(mgl32.DegToRad(CameraFovDegrees), aspect, CameraNear, CameraFar)
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
