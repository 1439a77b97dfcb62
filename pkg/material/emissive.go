package material

import (
	"github.com/df07/go-pixel-tracer/pkg/core"
)

// NewEmissive creates a light-emitting material that does not reflect
func NewEmissive(emission core.Vec3) Material {
	return Material{Emission: emission}
}

// Emit returns the emitted radiance. Emitters are isotropic, so the
// normal does not affect the result.
func (m Material) Emit(normal core.Vec3) core.Vec3 {
	return m.Emission
}

// IsEmissive reports whether the material emits any light
func (m Material) IsEmissive() bool {
	return m.Emission != (core.Vec3{})
}
