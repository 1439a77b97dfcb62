package material

import (
	"math"

	"github.com/df07/go-pixel-tracer/pkg/core"
)

// Material describes how a surface emits and reflects light.
// Emission is always present; non-emitters carry a zero vector.
// Glossiness is the Phong exponent and must be non-negative; values
// outside the documented ranges are not validated here.
type Material struct {
	Emission   core.Vec3 // Emitted radiance (RGB, non-negative)
	Diffuse    core.Vec3 // Diffuse reflectance (RGB, [0,1])
	Specular   core.Vec3 // Specular reflectance (RGB)
	Glossiness float64   // Phong exponent
}

// NewPhong creates a non-emissive Phong material
func NewPhong(diffuse, specular core.Vec3, glossiness float64) Material {
	return Material{
		Diffuse:    diffuse,
		Specular:   specular,
		Glossiness: glossiness,
	}
}

// Reflectance evaluates the normalized Phong BRDF:
// diffuse + specular * (g+2)/(2*pi) * max(0, dot(in, reflect(in, n)))^g
// The outgoing direction is accepted for interface symmetry with
// GeometricTerm; the specular lobe is evaluated around the mirror of the
// incoming direction.
func (m Material) Reflectance(normal, inDirection, outDirection core.Vec3) core.Vec3 {
	in := inDirection.Normalize()
	reflected := in.Reflect(normal)

	specularTerm := math.Pow(math.Max(0, in.Dot(reflected)), m.Glossiness)
	normFactor := m.Specular.Multiply((m.Glossiness + 2.0) / (2.0 * math.Pi))

	return m.Diffuse.Add(normFactor.Multiply(specularTerm))
}

// GeometricTerm returns dot(normal, normalize(inDirection)) in every channel.
// The cosine is not clamped: back-facing configurations yield negative values.
func (m Material) GeometricTerm(normal, inDirection, outDirection core.Vec3) core.Vec3 {
	return core.Splat(normal.Dot(inDirection.Normalize()))
}
