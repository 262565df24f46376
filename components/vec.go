package components

import "math"

// Vec2 is a 2D vector in arena units.
type Vec2 struct {
	X float32 `json:"x"`
	Y float32 `json:"y"`
}

func (v Vec2) Add(o Vec2) Vec2 { return Vec2{v.X + o.X, v.Y + o.Y} }

func (v Vec2) Sub(o Vec2) Vec2 { return Vec2{v.X - o.X, v.Y - o.Y} }

func (v Vec2) Scale(s float32) Vec2 { return Vec2{v.X * s, v.Y * s} }

func (v Vec2) Dot(o Vec2) float32 { return v.X*o.X + v.Y*o.Y }

// LenSq returns the squared length.
func (v Vec2) LenSq() float32 { return v.X*v.X + v.Y*v.Y }

func (v Vec2) Len() float32 {
	return float32(math.Sqrt(float64(v.X*v.X + v.Y*v.Y)))
}

// Perp returns the clockwise perpendicular (y, -x).
func (v Vec2) Perp() Vec2 { return Vec2{v.Y, -v.X} }

// Rotate rotates v counter-clockwise by angle radians.
func (v Vec2) Rotate(angle float32) Vec2 {
	s, c := math.Sincos(float64(angle))
	sin, cos := float32(s), float32(c)
	return Vec2{v.X*cos - v.Y*sin, v.X*sin + v.Y*cos}
}

// Normalize returns v scaled to unit length, or the zero vector if v is zero.
func (v Vec2) Normalize() Vec2 {
	l := v.Len()
	if l == 0 {
		return Vec2{}
	}
	return Vec2{v.X / l, v.Y / l}
}
