package scene

import (
	"fmt"

	"github.com/BurntSushi/toml"

	"github.com/df07/go-pixel-tracer/pkg/core"
	"github.com/df07/go-pixel-tracer/pkg/material"
)

// Triple is an RGB color or a 3D vector written as a TOML array
type Triple [3]float64

// Vec3 converts the triple to a core.Vec3
func (t Triple) Vec3() core.Vec3 {
	return core.NewVec3(t[0], t[1], t[2])
}

// MaterialDesc is the file form of material.Material
type MaterialDesc struct {
	Emission   Triple  `toml:"emission"`
	Diffuse    Triple  `toml:"diffuse"`
	Specular   Triple  `toml:"specular"`
	Glossiness float64 `toml:"glossiness"`
}

// SphereDesc describes one [[sphere]] table
type SphereDesc struct {
	Center   Triple       `toml:"center"`
	Radius   float64      `toml:"radius"`
	Material MaterialDesc `toml:"material"`
}

// PlaneDesc describes one [[plane]] table
type PlaneDesc struct {
	Normal   Triple       `toml:"normal"`
	D        float64      `toml:"d"`
	Material MaterialDesc `toml:"material"`
}

// Description is the static scene data as read from a file
type Description struct {
	Spheres []SphereDesc `toml:"sphere"`
	Planes  []PlaneDesc  `toml:"plane"`
}

// IsEmpty reports whether the description holds no primitives
func (d Description) IsEmpty() bool {
	return len(d.Spheres) == 0 && len(d.Planes) == 0
}

// LoadFile reads a TOML scene description and builds the scene
func LoadFile(path string) (*Scene, error) {
	var desc Description
	md, err := toml.DecodeFile(path, &desc)
	if err != nil {
		return nil, fmt.Errorf("failed to parse scene file %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return nil, fmt.Errorf("scene file %s: unknown keys %v", path, undecoded)
	}
	s, err := desc.Build()
	if err != nil {
		return nil, fmt.Errorf("scene file %s: %w", path, err)
	}
	return s, nil
}

// Build validates the description and creates the scene. Material ranges
// are checked here so the render loop never has to.
func (d Description) Build() (*Scene, error) {
	if d.IsEmpty() {
		return nil, fmt.Errorf("scene has no primitives")
	}

	s := NewScene()
	for i, sd := range d.Spheres {
		if sd.Radius <= 0 {
			return nil, fmt.Errorf("sphere %d: radius must be > 0, got %g", i, sd.Radius)
		}
		mat, err := sd.Material.build()
		if err != nil {
			return nil, fmt.Errorf("sphere %d: %w", i, err)
		}
		s.AddSphere(sd.Center.Vec3(), sd.Radius, mat)
	}

	for i, pd := range d.Planes {
		if pd.Normal.Vec3().LengthSquared() == 0 {
			return nil, fmt.Errorf("plane %d: normal must be non-zero", i)
		}
		mat, err := pd.Material.build()
		if err != nil {
			return nil, fmt.Errorf("plane %d: %w", i, err)
		}
		s.AddPlane(pd.Normal.Vec3(), pd.D, mat)
	}

	return s, nil
}

func (m MaterialDesc) build() (material.Material, error) {
	for c, v := range m.Emission {
		if v < 0 {
			return material.Material{}, fmt.Errorf("emission channel %d must be >= 0, got %g", c, v)
		}
	}
	for c, v := range m.Diffuse {
		if v < 0 || v > 1 {
			return material.Material{}, fmt.Errorf("diffuse channel %d must be in [0,1], got %g", c, v)
		}
	}
	for c, v := range m.Specular {
		if v < 0 {
			return material.Material{}, fmt.Errorf("specular channel %d must be >= 0, got %g", c, v)
		}
	}
	if m.Glossiness < 0 {
		return material.Material{}, fmt.Errorf("glossiness must be >= 0, got %g", m.Glossiness)
	}

	return material.Material{
		Emission:   m.Emission.Vec3(),
		Diffuse:    m.Diffuse.Vec3(),
		Specular:   m.Specular.Vec3(),
		Glossiness: m.Glossiness,
	}, nil
}
