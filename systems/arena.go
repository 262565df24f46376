package systems

import (
	"math/rand"

	"github.com/pthm-cable/shatter/components"
)

// Arena is a toroidal rectangle centered at the origin.
type Arena struct {
	Extents components.Vec2 // Half-width and half-height
}

// NewArena returns an arena with the given half-extents.
func NewArena(halfWidth, halfHeight float32) Arena {
	return Arena{Extents: components.Vec2{X: halfWidth, Y: halfHeight}}
}

// Width returns the full arena width.
func (a Arena) Width() float32 { return 2 * a.Extents.X }

// Height returns the full arena height.
func (a Arena) Height() float32 { return 2 * a.Extents.Y }

// Wrap moves p back inside the arena by at most one arena size per axis.
// Positions more than one full size outside are not handled.
func (a Arena) Wrap(p components.Vec2) components.Vec2 {
	return components.Vec2{
		X: wrapAxis(p.X, a.Extents.X),
		Y: wrapAxis(p.Y, a.Extents.Y),
	}
}

func wrapAxis(v, extent float32) float32 {
	if v > extent {
		return v - 2*extent
	}
	if v < -extent {
		return v + 2*extent
	}
	return v
}

// WrapDelta returns the shortest relative position from "from" to "to".
func (a Arena) WrapDelta(from, to components.Vec2) components.Vec2 {
	return a.Wrap(to.Sub(from))
}

// RandomPoint returns a uniform point inside the arena.
func (a Arena) RandomPoint(rng *rand.Rand) components.Vec2 {
	return components.Vec2{
		X: RandomRange(rng, -a.Extents.X, a.Extents.X),
		Y: RandomRange(rng, -a.Extents.Y, a.Extents.Y),
	}
}

// Contains reports whether p lies inside the closed arena rectangle.
func (a Arena) Contains(p components.Vec2) bool {
	return p.X >= -a.Extents.X && p.X <= a.Extents.X &&
		p.Y >= -a.Extents.Y && p.Y <= a.Extents.Y
}
