package core

// Logger interface for raytracer logging
type Logger interface {
	Printf(format string, args ...interface{})
}

// Sampler provides the random numbers consumed by one pixel evaluation.
// Each draw is tagged with a sample dimension so that a stratified or
// low-discrepancy implementation can keep unrelated decisions uncorrelated.
// Sample2 and Sample3 consume consecutive dimensions starting at dimension.
type Sampler interface {
	Sample(dimension int) float64
	Sample2(dimension int) Vec2
	Sample3(dimension int) Vec3
}
