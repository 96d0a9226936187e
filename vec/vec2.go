package vec

import "github.com/chewxy/math32"

type Vec2 struct {
	X, Y float32
}

func NewVec2(x, y float32) Vec2 {
	return Vec2{x, y}
}

func (v Vec2) Add(rhs Vec2) Vec2 {
	return Vec2{v.X + rhs.X, v.Y + rhs.Y}
}

func (v Vec2) Sub(rhs Vec2) Vec2 {
	return Vec2{v.X - rhs.X, v.Y - rhs.Y}
}

func (v Vec2) Scale(s float32) Vec2 {
	return Vec2{v.X * s, v.Y * s}
}

func (v Vec2) Div(s float32) Vec2 {
	return Vec2{v.X / s, v.Y / s}
}

func (v Vec2) Neg() Vec2 {
	return Vec2{-v.X, -v.Y}
}

// At returns the i-th component. Panics when i is outside [0,2).
func (v Vec2) At(i int) float32 {
	switch i {
	case 0:
		return v.X
	case 1:
		return v.Y
	}
	panic("vec: Vec2 index out of range")
}

// SetAt writes the i-th component. Panics when i is outside [0,2).
func (v *Vec2) SetAt(i int, value float32) {
	switch i {
	case 0:
		v.X = value
	case 1:
		v.Y = value
	default:
		panic("vec: Vec2 index out of range")
	}
}

func (v Vec2) Length() float32 {
	return math32.Sqrt(v.LengthSq())
}

func (v Vec2) LengthSq() float32 {
	return v.X*v.X + v.Y*v.Y
}

// Normalized returns the unit vector, or the zero vector when the length
// is zero.
func (v Vec2) Normalized() Vec2 {
	l := v.Length()
	if l == 0 {
		return Vec2{}
	}
	return v.Div(l)
}

func (v *Vec2) Normalize() {
	*v = v.Normalized()
}

func Dot2(a, b Vec2) float32 {
	return a.X*b.X + a.Y*b.Y
}

func Distance2(a, b Vec2) float32 {
	return a.Sub(b).Length()
}

func DistanceSq2(a, b Vec2) float32 {
	return a.Sub(b).LengthSq()
}

func Lerp2(a, b Vec2, t float32) Vec2 {
	return a.Add(b.Sub(a).Scale(t))
}
