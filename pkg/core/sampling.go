package core

import "math"

// SampleUniformSphere maps two uniform samples to a direction on the full
// unit sphere using theta = acos(2u-1), phi = 2*pi*v.
func SampleUniformSphere(sample Vec2) Vec3 {
	theta := math.Acos(2.0*sample.X - 1.0)
	phi := 2.0 * math.Pi * sample.Y
	sinTheta := math.Sin(theta)
	return NewVec3(
		sinTheta*math.Cos(phi),
		sinTheta*math.Sin(phi),
		math.Cos(theta),
	)
}

