package core

// PointInstance matches the instance attributes in points.wgsl
// struct { pos: vec3<f32>, color: vec3<f32> }
type PointInstance struct {
	Pos   [3]float32
	Color [3]float32
}

// PackInstances interleaves a particle buffer for upload. dst is reused
// when it has enough capacity.
func PackInstances(buf *ParticleBuffer, dst []PointInstance) []PointInstance {
	n := buf.Len()
	if cap(dst) < n {
		dst = make([]PointInstance, n)
	}
	dst = dst[:n]
	for i := 0; i < n; i++ {
		dst[i] = PointInstance{Pos: buf.Positions[i], Color: buf.Colors[i]}
	}
	return dst
}
