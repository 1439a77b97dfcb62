package sampling

// Sample dimension register. Every stochastic decision of a pixel
// evaluation draws from its own dimension range so that a quasi-random
// sampler never reuses a slot for two purposes.
const (
	// AntiAliasDimension is the 2D jitter inside the pixel footprint
	AntiAliasDimension = 0
	// LensDimension is the 2D aperture offset
	LensDimension = 2
	// PathDimension is the first dimension used by path vertices
	PathDimension = 4
	// PathDimensionStride is the block size per path vertex: 2 dimensions
	// for the bounce direction and 2 reserved for a next-event direction
	PathDimensionStride = 2 * 2
)

// PathVertexDimension returns the first dimension of vertex i's block.
// The bounce direction uses the first two slots.
func PathVertexDimension(vertex int) int {
	return PathDimension + PathDimensionStride*vertex
}

// NextEventDimension returns the reserved next-event slots of vertex i
func NextEventDimension(vertex int) int {
	return PathVertexDimension(vertex) + 2
}

// PathVertexBlock returns the inclusive dimension range owned by vertex i
func PathVertexBlock(vertex int) (first, last int) {
	first = PathVertexDimension(vertex)
	return first, first + PathDimensionStride - 1
}
