package integrator

import (
	"github.com/df07/go-pixel-tracer/pkg/core"
	"github.com/df07/go-pixel-tracer/pkg/sampling"
	"github.com/df07/go-pixel-tracer/pkg/scene"
)

const (
	// DefaultMaxPathLength is the number of path vertices traced per sample
	DefaultMaxPathLength = 3

	// TMin offsets secondary rays off the surface they leave
	TMin = 0.001
	// TMax bounds the scene
	TMax = 10000.0
)

// Termination reports why a path stopped
type Termination int

const (
	// Tracing is the state of a path that has not stopped yet
	Tracing Termination = iota
	// TerminatedMiss means the ray left the scene
	TerminatedMiss
	// TerminatedLength means the path reached MaxPathLength vertices
	TerminatedLength
	// TerminatedDegenerate means a non-finite contribution was discarded
	TerminatedDegenerate
)

func (t Termination) String() string {
	switch t {
	case Tracing:
		return "tracing"
	case TerminatedMiss:
		return "miss"
	case TerminatedLength:
		return "length"
	case TerminatedDegenerate:
		return "degenerate"
	default:
		return "unknown"
	}
}

// PathResult is the outcome of tracing one path
type PathResult struct {
	Color       core.Vec3   // Accumulated radiance
	Vertices    int         // Surface hits found along the path
	Termination Termination // Why the path stopped
}

// Config contains the path tracing configuration
type Config struct {
	MaxPathLength int // Maximum number of path vertices
}

// DefaultConfig returns the baseline configuration
func DefaultConfig() Config {
	return Config{MaxPathLength: DefaultMaxPathLength}
}

// PathTracingIntegrator implements unidirectional path tracing with
// uniform sphere sampling and a fixed path length. There is no Russian
// roulette and no light sampling: emission is only picked up when a path
// vertex lands on an emitter.
type PathTracingIntegrator struct {
	config Config
}

// NewPathTracingIntegrator creates a new path tracing integrator
func NewPathTracingIntegrator(config Config) *PathTracingIntegrator {
	return &PathTracingIntegrator{
		config: config,
	}
}

// RayColor computes the radiance estimate for a single ray
func (pt *PathTracingIntegrator) RayColor(ray core.Ray, scn *scene.Scene, sampler core.Sampler) core.Vec3 {
	return pt.Trace(ray, scn, sampler).Color
}

// Trace runs the bounce loop and reports how the path ended
func (pt *PathTracingIntegrator) Trace(ray core.Ray, scn *scene.Scene, sampler core.Sampler) PathResult {
	result := core.Vec3{}
	throughput := core.Splat(1.0)
	incomingRay := ray

	for vertex := 0; vertex < pt.config.MaxPathLength; vertex++ {
		hit := scn.Intersect(incomingRay, TMin, TMax)
		if !hit.Hit {
			return PathResult{Color: result, Vertices: vertex, Termination: TerminatedMiss}
		}

		contribution := throughput.MultiplyVec(hit.Material.Emit(hit.Normal))
		if !contribution.IsFinite() {
			return PathResult{Color: result, Vertices: vertex + 1, Termination: TerminatedDegenerate}
		}
		result = result.Add(contribution)

		// The last vertex needs no outgoing direction
		if vertex+1 == pt.config.MaxPathLength {
			return PathResult{Color: result, Vertices: vertex + 1, Termination: TerminatedLength}
		}

		nextRay := core.NewRay(hit.Position, pt.sampleDirection(vertex, sampler))

		weight := hit.Material.Reflectance(hit.Normal, incomingRay.Direction, nextRay.Direction).
			MultiplyVec(hit.Material.GeometricTerm(hit.Normal, incomingRay.Direction, nextRay.Direction))

		throughput = throughput.MultiplyVec(weight).Multiply(1.0 / pt.directionProbability())
		incomingRay = nextRay
	}

	return PathResult{Color: result, Termination: TerminatedLength}
}

// sampleDirection draws the bounce direction for a path vertex from that
// vertex's own dimension block
func (pt *PathTracingIntegrator) sampleDirection(vertex int, sampler core.Sampler) core.Vec3 {
	return core.SampleUniformSphere(sampler.Sample2(sampling.PathVertexDimension(vertex)))
}

// directionProbability is the weight applied to the sampled direction.
// Uniform sampling without importance weighting uses 1.
func (pt *PathTracingIntegrator) directionProbability() float64 {
	return 1.0
}
