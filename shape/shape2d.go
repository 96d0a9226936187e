package shape

import "github.com/aukilabs/raidho/vec"

// Shape2D is the closed set of 2D primitives: *Circle, *Rect, *Box2D,
// *Capsule2D.
type Shape2D interface {
	// Bound returns the axis-aligned rectangle bound, with half extents
	// inflated by scaleFactor.
	Bound(scaleFactor float32) Rect

	shape2()
}

type Circle struct {
	Ctx    any
	Center vec.Vec2
	Radius float32
}

func NewCircle(center vec.Vec2, radius float32) *Circle {
	return &Circle{Center: center, Radius: radius}
}

func (c *Circle) shape2() {}

func (c *Circle) Bound(scaleFactor float32) Rect {
	he := vec.Vec2{X: c.Radius, Y: c.Radius}.Scale(scaleFactor)
	return Rect{Center: c.Center, HalfExtents: he}
}

type Rect struct {
	Ctx         any
	Center      vec.Vec2
	HalfExtents vec.Vec2
}

func NewRect(center, halfExtents vec.Vec2) *Rect {
	return &Rect{Center: center, HalfExtents: halfExtents}
}

func (r *Rect) shape2() {}

func (r *Rect) Bound(scaleFactor float32) Rect {
	return Rect{Center: r.Center, HalfExtents: r.HalfExtents.Scale(scaleFactor)}
}

func (r Rect) Min() vec.Vec2 {
	return r.Center.Sub(r.HalfExtents)
}

func (r Rect) Max() vec.Vec2 {
	return r.Center.Add(r.HalfExtents)
}

// Box2D is an oriented rectangle. Axes must be unit length and
// orthogonal.
type Box2D struct {
	Ctx         any
	Center      vec.Vec2
	HalfExtents vec.Vec2
	Axes        [2]vec.Vec2
}

// WorldAxes2D is the axis set of a Box2D aligned with the world frame.
func WorldAxes2D() [2]vec.Vec2 {
	return [2]vec.Vec2{{X: 1}, {Y: 1}}
}

func NewBox2D(center, halfExtents vec.Vec2, axes [2]vec.Vec2) *Box2D {
	return &Box2D{Center: center, HalfExtents: halfExtents, Axes: axes}
}

func (b *Box2D) shape2() {}

func (b *Box2D) Bound(scaleFactor float32) Rect {
	return box2DBound(b, scaleFactor)
}

// Capsule2D endpoints may coincide, degenerating to a circle.
type Capsule2D struct {
	Ctx    any
	A, B   vec.Vec2
	Radius float32
}

func NewCapsule2D(a, b vec.Vec2, radius float32) *Capsule2D {
	return &Capsule2D{A: a, B: b, Radius: radius}
}

func (c *Capsule2D) shape2() {}

func (c *Capsule2D) Bound(scaleFactor float32) Rect {
	return capsule2DBound(c, scaleFactor)
}
