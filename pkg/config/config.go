// Package config loads render settings and optional inline scene data from
// a TOML file. Keys missing from the file keep their defaults.
package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/df07/go-pixel-tracer/pkg/core"
	"github.com/df07/go-pixel-tracer/pkg/integrator"
	"github.com/df07/go-pixel-tracer/pkg/output"
	"github.com/df07/go-pixel-tracer/pkg/renderer"
	"github.com/df07/go-pixel-tracer/pkg/scene"
)

// DefaultSceneName selects the built-in scene
const DefaultSceneName = scene.DefaultSceneID

// Help describes the configuration file format for -help output
const Help = `
The configuration file is TOML with up to three tables and two arrays of
tables. Every key is optional.

[render]
  scene           = "default"   # "default", a scene file path or a name in scenes/
  width           = 800
  height          = 400
  frames          = 50          # frames accumulated per pixel
  passes          = 7           # progressive passes the frames are spread over
  max_path_length = 3
  seed            = 1           # seed of the frame seed sequence
  workers         = 0           # 0 uses every CPU
  tile_size       = 64
  gamma           = 2.0
  anti_alias      = true

[camera]
  sensor_distance = 1.0
  sensor_min      = [-1.0, -0.5]
  sensor_max      = [1.0, 0.5]
  aperture        = 0.0
  focal_plane     = 100.0

[output]
  path   = ""                   # empty writes output/<scene>/render_<timestamp>.<format>
  format = "png"                # png, bmp or tiff
  scale  = 1.0
  upload = ""                   # s3://bucket/key

[[sphere]] and [[plane]] tables replace the scene with inline primitives,
in the same form as a scene file.
`

// Config is the complete set of render settings
type Config struct {
	Render  Render             `toml:"render"`
	Camera  Camera             `toml:"camera"`
	Output  Output             `toml:"output"`
	Spheres []scene.SphereDesc `toml:"sphere"`
	Planes  []scene.PlaneDesc  `toml:"plane"`
}

// Render holds the [render] table
type Render struct {
	Scene         string  `toml:"scene"`
	Width         int     `toml:"width"`
	Height        int     `toml:"height"`
	Frames        int     `toml:"frames"`
	Passes        int     `toml:"passes"`
	MaxPathLength int     `toml:"max_path_length"`
	Seed          int64   `toml:"seed"`
	Workers       int     `toml:"workers"`
	TileSize      int     `toml:"tile_size"`
	Gamma         float64 `toml:"gamma"`
	AntiAlias     bool    `toml:"anti_alias"`
}

// Camera holds the [camera] table
type Camera struct {
	SensorDistance float64    `toml:"sensor_distance"`
	SensorMin      [2]float64 `toml:"sensor_min"`
	SensorMax      [2]float64 `toml:"sensor_max"`
	Aperture       float64    `toml:"aperture"`
	FocalPlane     float64    `toml:"focal_plane"`
}

// Output holds the [output] table
type Output struct {
	Path   string  `toml:"path"`
	Format string  `toml:"format"`
	Scale  float64 `toml:"scale"`
	Upload string  `toml:"upload"`
}

// Default returns the settings used when no file is given
func Default() Config {
	progressive := renderer.DefaultProgressiveConfig()
	camera := renderer.DefaultCameraConfig()

	return Config{
		Render: Render{
			Scene:         DefaultSceneName,
			Width:         scene.DefaultWidth,
			Height:        scene.DefaultHeight,
			Frames:        progressive.MaxSamplesPerPixel,
			Passes:        progressive.MaxPasses,
			MaxPathLength: integrator.DefaultMaxPathLength,
			Seed:          progressive.Seed,
			Workers:       progressive.NumWorkers,
			TileSize:      progressive.TileSize,
			Gamma:         progressive.Gamma,
			AntiAlias:     true,
		},
		Camera: Camera{
			SensorDistance: camera.SensorDistance,
			SensorMin:      [2]float64{camera.SensorMin.X, camera.SensorMin.Y},
			SensorMax:      [2]float64{camera.SensorMax.X, camera.SensorMax.Y},
			Aperture:       camera.ApertureSize,
			FocalPlane:     camera.FocalPlane,
		},
		Output: Output{
			Format: string(output.PNG),
			Scale:  1.0,
		},
	}
}

// Load reads path on top of the defaults
func Load(path string) (Config, error) {
	cfg := Default()
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	if err := checkUndecoded(md); err != nil {
		return Config{}, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Decode parses TOML text on top of the defaults
func Decode(data string) (Config, error) {
	cfg := Default()
	md, err := toml.Decode(data, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := checkUndecoded(md); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func checkUndecoded(md toml.MetaData) error {
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return fmt.Errorf("unknown keys %v", undecoded)
	}
	return nil
}

// Validate checks every setting and reports the first problem
func (c Config) Validate() error {
	r := c.Render
	switch {
	case r.Width <= 0 || r.Height <= 0:
		return fmt.Errorf("render: resolution must be positive, got %dx%d", r.Width, r.Height)
	case r.Frames <= 0:
		return fmt.Errorf("render: frames must be positive, got %d", r.Frames)
	case r.MaxPathLength <= 0:
		return fmt.Errorf("render: max_path_length must be positive, got %d", r.MaxPathLength)
	case r.Workers < 0:
		return fmt.Errorf("render: workers must not be negative, got %d", r.Workers)
	}
	if err := c.ProgressiveConfig().Validate(); err != nil {
		return fmt.Errorf("render: %w", err)
	}
	if err := c.CameraConfig().Validate(); err != nil {
		return err
	}
	if _, err := c.Format(); err != nil {
		return fmt.Errorf("output: %w", err)
	}
	if c.Output.Scale <= 0 {
		return fmt.Errorf("output: scale must be positive, got %g", c.Output.Scale)
	}
	if c.Output.Upload != "" {
		if _, err := output.ParseS3URL(c.Output.Upload); err != nil {
			return fmt.Errorf("output: %w", err)
		}
	}
	return nil
}

// HasInlineScene reports whether the file carries its own primitives
func (c Config) HasInlineScene() bool {
	return len(c.Spheres) > 0 || len(c.Planes) > 0
}

// SceneName names the scene for output paths and logs
func (c Config) SceneName() string {
	if c.HasInlineScene() {
		return "inline"
	}
	if c.Render.Scene == "" || c.Render.Scene == DefaultSceneName {
		return DefaultSceneName
	}
	base := filepath.Base(strings.TrimPrefix(c.Render.Scene, "file:"))
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// Scene builds the scene: inline primitives first, otherwise render.scene
// resolved by scene.Open
func (c Config) Scene() (*scene.Scene, error) {
	if c.HasInlineScene() {
		return scene.Description{Spheres: c.Spheres, Planes: c.Planes}.Build()
	}
	return scene.Open(c.Render.Scene)
}

// CameraConfig converts the [camera] table
func (c Config) CameraConfig() renderer.CameraConfig {
	return renderer.CameraConfig{
		SensorDistance: c.Camera.SensorDistance,
		SensorMin:      core.NewVec2(c.Camera.SensorMin[0], c.Camera.SensorMin[1]),
		SensorMax:      core.NewVec2(c.Camera.SensorMax[0], c.Camera.SensorMax[1]),
		ApertureSize:   c.Camera.Aperture,
		FocalPlane:     c.Camera.FocalPlane,
	}
}

// ProgressiveConfig converts the [render] table
func (c Config) ProgressiveConfig() renderer.ProgressiveConfig {
	progressive := renderer.DefaultProgressiveConfig()
	progressive.TileSize = c.Render.TileSize
	progressive.MaxSamplesPerPixel = c.Render.Frames
	progressive.MaxPasses = min(c.Render.Passes, c.Render.Frames)
	progressive.NumWorkers = c.Render.Workers
	progressive.Seed = c.Render.Seed
	progressive.Gamma = c.Render.Gamma
	return progressive
}

// IntegratorConfig returns the path tracing settings
func (c Config) IntegratorConfig() integrator.Config {
	return integrator.Config{MaxPathLength: c.Render.MaxPathLength}
}

// Format parses output.format
func (c Config) Format() (output.Format, error) {
	return output.ParseFormat(c.Output.Format)
}
