package renderer

import (
	"fmt"

	"github.com/df07/go-pixel-tracer/pkg/core"
	"github.com/df07/go-pixel-tracer/pkg/sampling"
)

// CameraConfig describes the sensor and lens of the thin-lens camera
type CameraConfig struct {
	SensorDistance float64   // Distance from the sensor origin to the image plane
	SensorMin      core.Vec2 // Lower-left corner of the image plane
	SensorMax      core.Vec2 // Upper-right corner of the image plane
	ApertureSize   float64   // Lens diameter, 0 gives a pinhole
	FocalPlane     float64   // Distance along the pinhole ray that stays in focus
}

// DefaultCameraConfig returns the camera used by the built-in scene
func DefaultCameraConfig() CameraConfig {
	return CameraConfig{
		SensorDistance: 1.0,
		SensorMin:      core.NewVec2(-1, -0.5),
		SensorMax:      core.NewVec2(1, 0.5),
		ApertureSize:   0.0,
		FocalPlane:     100.0,
	}
}

// Camera generates primary rays from fragment coordinates
type Camera struct {
	config    CameraConfig
	origin    core.Vec3
	pixelSize core.Vec2
}

// NewCamera creates a camera for an image of the given resolution
func NewCamera(config CameraConfig, width, height int) *Camera {
	extent := config.SensorMax.Subtract(config.SensorMin)
	return &Camera{
		config:    config,
		origin:    core.NewVec3(0, 0, config.SensorDistance),
		pixelSize: core.NewVec2(extent.X/float64(width), extent.Y/float64(height)),
	}
}

// GetRay returns the ray through fragment coordinate frag. Fragment
// coordinates start at the bottom-left corner of the image; pixel centers
// sit at half-integer positions. The lens sample is drawn even for a
// pinhole camera.
func (c *Camera) GetRay(frag core.Vec2, sampler core.Sampler) core.Ray {
	lens := sampler.Sample2(sampling.LensDimension).Subtract(core.NewVec2(0.5, 0.5))
	return c.rayThrough(frag, lens)
}

// CenterRay returns the ray through frag from the center of the lens
func (c *Camera) CenterRay(frag core.Vec2) core.Ray {
	return c.rayThrough(frag, core.Vec2{})
}

func (c *Camera) rayThrough(frag, lens core.Vec2) core.Ray {
	onSensor := c.config.SensorMin.Add(c.pixelSize.MultiplyVec(frag))
	direction := core.NewVec3(onSensor.X, onSensor.Y, -c.config.SensorDistance).Normalize()
	focalPoint := c.origin.Add(direction.Multiply(c.config.FocalPlane))

	origin := c.origin.Add(core.NewVec3(c.config.ApertureSize*lens.X, c.config.ApertureSize*lens.Y, 0))
	return core.NewRay(origin, focalPoint.Subtract(origin).Normalize())
}

// Validate reports the first invalid camera parameter
func (c CameraConfig) Validate() error {
	switch {
	case c.SensorDistance <= 0:
		return fmt.Errorf("camera sensor distance must be positive, got %g", c.SensorDistance)
	case c.SensorMax.X <= c.SensorMin.X || c.SensorMax.Y <= c.SensorMin.Y:
		return fmt.Errorf("camera sensor max %v must exceed sensor min %v", c.SensorMax, c.SensorMin)
	case c.ApertureSize < 0:
		return fmt.Errorf("camera aperture must be non-negative, got %g", c.ApertureSize)
	case c.FocalPlane <= 0:
		return fmt.Errorf("camera focal plane must be positive, got %g", c.FocalPlane)
	}
	return nil
}
