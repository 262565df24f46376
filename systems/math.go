package systems

import (
	"math"
	"math/rand"

	"github.com/pthm-cable/shatter/components"
)

// clampFloat clamps a float32 value between min and max.
func clampFloat(v, minVal, maxVal float32) float32 {
	if v < minVal {
		return minVal
	}
	if v > maxVal {
		return maxVal
	}
	return v
}

func sqrt32(x float32) float32 {
	return float32(math.Sqrt(float64(x)))
}

// safeLen returns |v| with the squared length floored at eps*eps.
func safeLen(v components.Vec2, eps float32) float32 {
	return sqrt32(max(v.LenSq(), eps*eps))
}

// RandomInUnitDisc returns a uniformly distributed point inside the unit disc.
func RandomInUnitDisc(rng *rand.Rand) components.Vec2 {
	angle := rng.Float64() * 2 * math.Pi
	r := math.Sqrt(rng.Float64())
	s, c := math.Sincos(angle)
	return components.Vec2{X: float32(c * r), Y: float32(s * r)}
}

// RandomRange returns a uniform sample in [lo, hi).
func RandomRange(rng *rand.Rand, lo, hi float32) float32 {
	return lo + rng.Float32()*(hi-lo)
}
