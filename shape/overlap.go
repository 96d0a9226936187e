package shape

import (
	"github.com/chewxy/math32"

	"github.com/aukilabs/raidho/mathf"
	"github.com/aukilabs/raidho/vec"
)

// Overlap reports whether two 3D shapes overlap. Exactly touching shapes
// overlap: every comparison is inclusive.
func Overlap(a, b Shape) bool {
	switch s := a.(type) {
	case *Sphere:
		switch o := b.(type) {
		case *Sphere:
			return overlapSphereSphere(s, o)
		case *AABB:
			return overlapSphereAABB(s, o)
		case *OBB:
			return overlapSphereOBB(s, o)
		case *Capsule:
			return overlapCapsuleSphere(o, s)
		}
	case *AABB:
		switch o := b.(type) {
		case *Sphere:
			return overlapSphereAABB(o, s)
		case *AABB:
			return overlapAABBAABB(s, o)
		case *OBB:
			return overlapAABBOBB(s, o)
		case *Capsule:
			return overlapCapsuleAABB(o, s)
		}
	case *OBB:
		switch o := b.(type) {
		case *Sphere:
			return overlapSphereOBB(o, s)
		case *AABB:
			return overlapAABBOBB(o, s)
		case *OBB:
			return overlapOBBOBB(s, o)
		case *Capsule:
			return overlapCapsuleOBB(o, s)
		}
	case *Capsule:
		switch o := b.(type) {
		case *Sphere:
			return overlapCapsuleSphere(s, o)
		case *AABB:
			return overlapCapsuleAABB(s, o)
		case *OBB:
			return overlapCapsuleOBB(s, o)
		case *Capsule:
			return overlapCapsuleCapsule(s, o)
		}
	}
	return false
}

// ContainsPoint reports whether p lies inside or on the boundary of s.
func ContainsPoint(s Shape, p vec.Vec3) bool {
	switch o := s.(type) {
	case *Sphere:
		return p.Sub(o.Center).LengthSq() <= o.Radius*o.Radius
	case *AABB:
		min := o.Min()
		max := o.Max()
		return p.X >= min.X && p.X <= max.X &&
			p.Y >= min.Y && p.Y <= max.Y &&
			p.Z >= min.Z && p.Z <= max.Z
	case *OBB:
		local := p.Sub(o.Center)
		for i := 0; i < 3; i++ {
			dist := vec.Dot(local, o.Axes[i])
			if dist < -o.HalfExtents.At(i) || dist > o.HalfExtents.At(i) {
				return false
			}
		}
		return true
	case *Capsule:
		return DistancePointSegment(p, o.A, o.B) <= o.Radius
	}
	return false
}

func overlapSphereSphere(a, b *Sphere) bool {
	r := a.Radius + b.Radius
	return a.Center.Sub(b.Center).LengthSq() <= r*r
}

func overlapAABBAABB(a, b *AABB) bool {
	return math32.Abs(a.Center.X-b.Center.X) <= a.HalfExtents.X+b.HalfExtents.X &&
		math32.Abs(a.Center.Y-b.Center.Y) <= a.HalfExtents.Y+b.HalfExtents.Y &&
		math32.Abs(a.Center.Z-b.Center.Z) <= a.HalfExtents.Z+b.HalfExtents.Z
}

// overlapCapsuleCapsule approximates segment-segment distance with the
// minimum of the four endpoint-to-segment distances.
func overlapCapsuleCapsule(a, b *Capsule) bool {
	d1 := DistancePointSegment(a.A, b.A, b.B)
	d2 := DistancePointSegment(a.B, b.A, b.B)
	d3 := DistancePointSegment(b.A, a.A, a.B)
	d4 := DistancePointSegment(b.B, a.A, a.B)

	minDist := math32.Min(math32.Min(d1, d2), math32.Min(d3, d4))
	return minDist <= a.Radius+b.Radius
}

// overlapOBBOBB runs the separating axis test on the 3+3 face normals and
// the 9 pairwise edge cross products.
func overlapOBBOBB(a, b *OBB) bool {
	var axes [15]vec.Vec3

	for i := 0; i < 3; i++ {
		axes[i] = a.Axes[i]
		axes[i+3] = b.Axes[i]
	}

	idx := 6
	for _, axeA := range a.Axes {
		for _, axeB := range b.Axes {
			axes[idx] = vec.Cross(axeA, axeB)
			idx++
		}
	}

	for _, axis := range axes {
		if !overlapOnAxis(a, b, axis) {
			return false
		}
	}

	return true
}

func overlapSphereAABB(s *Sphere, b *AABB) bool {
	closest := ClampPointAABB(s.Center, *b)
	return closest.Sub(s.Center).LengthSq() <= s.Radius*s.Radius
}

func overlapCapsuleSphere(c *Capsule, s *Sphere) bool {
	return DistancePointSegment(s.Center, c.A, c.B) <= s.Radius+c.Radius
}

// overlapCapsuleAABB clamps both endpoints into the box and tests the
// midpoint of the clamped pair against the capsule segment.
func overlapCapsuleAABB(c *Capsule, b *AABB) bool {
	var closestPoint vec.Vec3
	for i := 0; i < 3; i++ {
		minB := b.Center.At(i) - b.HalfExtents.At(i)
		maxB := b.Center.At(i) + b.HalfExtents.At(i)
		valA := mathf.Clamp(c.A.At(i), minB, maxB)
		valB := mathf.Clamp(c.B.At(i), minB, maxB)
		closestPoint.SetAt(i, (valA+valB)*0.5)
	}
	return DistancePointSegment(closestPoint, c.A, c.B) <= c.Radius
}

func overlapSphereOBB(s *Sphere, o *OBB) bool {
	d := s.Center.Sub(o.Center)
	local := vec.Vec3{
		X: vec.Dot(d, o.Axes[0]),
		Y: vec.Dot(d, o.Axes[1]),
		Z: vec.Dot(d, o.Axes[2]),
	}

	closest := vec.Vec3{
		X: mathf.Clamp(local.X, -o.HalfExtents.X, o.HalfExtents.X),
		Y: mathf.Clamp(local.Y, -o.HalfExtents.Y, o.HalfExtents.Y),
		Z: mathf.Clamp(local.Z, -o.HalfExtents.Z, o.HalfExtents.Z),
	}

	return local.Sub(closest).LengthSq() <= s.Radius*s.Radius
}

// overlapAABBOBB promotes the AABB to a world-axis OBB and reuses the SAT
// test.
func overlapAABBOBB(b *AABB, o *OBB) bool {
	world := OBB{
		Center:      b.Center,
		HalfExtents: b.HalfExtents,
		Axes:        WorldAxes(),
	}
	return overlapOBBOBB(&world, o)
}

// overlapCapsuleOBB transforms the capsule segment into the box local
// frame; either clamped endpoint within the radius is an early hit,
// otherwise the local-frame capsule-AABB test decides.
func overlapCapsuleOBB(c *Capsule, o *OBB) bool {
	toLocal := func(p vec.Vec3) vec.Vec3 {
		d := p.Sub(o.Center)
		return vec.Vec3{
			X: vec.Dot(d, o.Axes[0]),
			Y: vec.Dot(d, o.Axes[1]),
			Z: vec.Dot(d, o.Axes[2]),
		}
	}

	localA := toLocal(c.A)
	localB := toLocal(c.B)

	clampedA := vec.Vec3{
		X: mathf.Clamp(localA.X, -o.HalfExtents.X, o.HalfExtents.X),
		Y: mathf.Clamp(localA.Y, -o.HalfExtents.Y, o.HalfExtents.Y),
		Z: mathf.Clamp(localA.Z, -o.HalfExtents.Z, o.HalfExtents.Z),
	}
	clampedB := vec.Vec3{
		X: mathf.Clamp(localB.X, -o.HalfExtents.X, o.HalfExtents.X),
		Y: mathf.Clamp(localB.Y, -o.HalfExtents.Y, o.HalfExtents.Y),
		Z: mathf.Clamp(localB.Z, -o.HalfExtents.Z, o.HalfExtents.Z),
	}

	if clampedA.Sub(localA).LengthSq() <= c.Radius*c.Radius {
		return true
	}
	if clampedB.Sub(localB).LengthSq() <= c.Radius*c.Radius {
		return true
	}

	var closestPoint vec.Vec3
	for i := 0; i < 3; i++ {
		valA := mathf.Clamp(localA.At(i), -o.HalfExtents.At(i), o.HalfExtents.At(i))
		valB := mathf.Clamp(localB.At(i), -o.HalfExtents.At(i), o.HalfExtents.At(i))
		closestPoint.SetAt(i, (valA+valB)*0.5)
	}

	return DistancePointSegment(closestPoint, localA, localB) <= c.Radius
}
