package systems

import "github.com/pthm-cable/shatter/components"

// ResolveCollisions applies the penalty impulse to every overlapping pair of
// alive targets in a single ordered pass over i < j. Impulses accumulate in
// place, so later pairs see velocities already changed by earlier ones.
// It returns the number of overlapping pairs.
func ResolveCollisions(targets []components.Target, arena Arena, bounceStrength, epsilon, dt float32) int {
	contacts := 0
	for i := 0; i < len(targets); i++ {
		a := &targets[i]
		if !a.Alive {
			continue
		}
		for j := i + 1; j < len(targets); j++ {
			b := &targets[j]
			if !b.Alive {
				continue
			}
			p := arena.WrapDelta(a.Position, b.Position)
			r := a.Radius + b.Radius
			if p.LenSq() >= r*r {
				continue
			}
			contacts++
			v := p.Scale((2 / (a.Mass + b.Mass)) * (1 - r/safeLen(p, epsilon)) * bounceStrength * dt)
			a.Velocity = a.Velocity.Add(v.Scale(b.Mass))
			b.Velocity = b.Velocity.Sub(v.Scale(a.Mass))
		}
	}
	return contacts
}
