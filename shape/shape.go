// Package shape defines the closed 3D and 2D primitive sets, their
// overlap algebra, and their axis-aligned bounds.
//
// Shapes are plain value structs; the Shape and Shape2D interfaces are
// sealed and implemented by pointers only, so a registered shape keeps a
// stable identity in the broadphase maps. Every shape carries an opaque
// Ctx handle that is round-tripped without interpretation.
package shape

import "github.com/aukilabs/raidho/vec"

// Shape is the closed set of 3D primitives: *Sphere, *AABB, *OBB,
// *Capsule.
type Shape interface {
	// Bound returns the world axis-aligned bound, with half extents
	// inflated by scaleFactor. Bound(s) contains Bound(1) for s >= 1.
	Bound(scaleFactor float32) AABB

	shape3()
}

type Sphere struct {
	Ctx    any
	Center vec.Vec3
	Radius float32
}

func NewSphere(center vec.Vec3, radius float32) *Sphere {
	return &Sphere{Center: center, Radius: radius}
}

func (s *Sphere) shape3() {}

func (s *Sphere) Bound(scaleFactor float32) AABB {
	he := vec.Vec3{X: s.Radius, Y: s.Radius, Z: s.Radius}.Scale(scaleFactor)
	return AABB{Center: s.Center, HalfExtents: he}
}

type AABB struct {
	Ctx         any
	Center      vec.Vec3
	HalfExtents vec.Vec3
}

func NewAABB(center, halfExtents vec.Vec3) *AABB {
	return &AABB{Center: center, HalfExtents: halfExtents}
}

func (b *AABB) shape3() {}

func (b *AABB) Bound(scaleFactor float32) AABB {
	return AABB{Center: b.Center, HalfExtents: b.HalfExtents.Scale(scaleFactor)}
}

func (b AABB) Min() vec.Vec3 {
	return b.Center.Sub(b.HalfExtents)
}

func (b AABB) Max() vec.Vec3 {
	return b.Center.Add(b.HalfExtents)
}

// OBB is an oriented box. Axes must be unit length and mutually
// orthogonal.
type OBB struct {
	Ctx         any
	Center      vec.Vec3
	HalfExtents vec.Vec3
	Axes        [3]vec.Vec3
}

// WorldAxes is the axis set of an OBB aligned with the world frame.
func WorldAxes() [3]vec.Vec3 {
	return [3]vec.Vec3{{X: 1}, {Y: 1}, {Z: 1}}
}

func NewOBB(center, halfExtents vec.Vec3, axes [3]vec.Vec3) *OBB {
	return &OBB{Center: center, HalfExtents: halfExtents, Axes: axes}
}

func (o *OBB) shape3() {}

func (o *OBB) Bound(scaleFactor float32) AABB {
	return obbBound(o, scaleFactor)
}

// Capsule endpoints may coincide, degenerating to a sphere.
type Capsule struct {
	Ctx    any
	A, B   vec.Vec3
	Radius float32
}

func NewCapsule(a, b vec.Vec3, radius float32) *Capsule {
	return &Capsule{A: a, B: b, Radius: radius}
}

func (c *Capsule) shape3() {}

func (c *Capsule) Bound(scaleFactor float32) AABB {
	return capsuleBound(c, scaleFactor)
}
