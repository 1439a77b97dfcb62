package sampling

import "math"

// Weights of the trigonometric pixel hash
var seedWeights = [3]float64{23.14069263277926, 2.665144142690225, 7.358926345}

const (
	lcgMultiplier = 1103515245
	lcgIncrement  = 12345
	randomRange   = 32768 // draws are 15-bit integers
)

// PixelIntegerSeed hashes a pixel position and a sample dimension into a
// 15-bit integer in [0, 32767]. It is stable across evaluations of the same
// pixel, so it needs no external entropy.
func PixelIntegerSeed(x, y float64, dimension int) int {
	d := x*seedWeights[0] + y*seedWeights[1] + float64(dimension)*seedWeights[2]
	v := math.Cos(d) * 123456.0
	return int(randomRange * (v - math.Floor(v)))
}

// PixelSeed returns PixelIntegerSeed mapped to [0, 1)
func PixelSeed(x, y float64, dimension int) float64 {
	return integerToFloat(PixelIntegerSeed(x, y, dimension))
}

// LCG is the classic ANSI C linear congruential generator on a 32-bit
// register. Each draw yields 15 bits.
type LCG struct {
	state int32
}

// NewLCG creates a generator with the given initial register value
func NewLCG(seed int32) *LCG {
	return &LCG{state: seed}
}

// Next advances the register and returns the next integer in [0, 32767]
func (l *LCG) Next() int {
	l.state = l.state*lcgMultiplier + lcgIncrement
	return floorMod(int(l.state/65536), randomRange)
}

// Float64 returns the next draw mapped to [0, 1)
func (l *LCG) Float64() float64 {
	return integerToFloat(l.Next())
}

// State returns the current register value
func (l *LCG) State() int32 {
	return l.state
}

func integerToFloat(i int) float64 {
	return float64(i) / randomRange
}

// floorMod is x mod y with the sign of y
func floorMod(x, y int) int {
	m := x % y
	if m < 0 {
		m += y
	}
	return m
}
