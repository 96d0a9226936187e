// Package raycast implements analytic ray intersection against the
// primitive shapes, in 3D and 2D.
//
// Directions need not be unit length; casts normalise internally and
// report distances in world units along the normalised direction. A ray
// whose origin lies strictly inside a shape reports a hit at distance
// zero with a zero normal.
package raycast

import (
	"github.com/aukilabs/go-tooling/pkg/errors"
	"github.com/chewxy/math32"

	"github.com/aukilabs/raidho/mathf"
	"github.com/aukilabs/raidho/shape"
	"github.com/aukilabs/raidho/vec"
)

// ErrTypeDegenerateRay tags errors returned for zero-length ray
// directions.
const ErrTypeDegenerateRay = "degenerate_ray"

type Ray struct {
	Origin    vec.Vec3
	Direction vec.Vec3
}

type HitResult struct {
	Hit      bool
	Distance float32
	Point    vec.Vec3
	Normal   vec.Vec3
}

// Cast intersects r with s and returns the first hit. The only error is a
// zero-length direction; a miss is a zero HitResult and a nil error.
func Cast(r Ray, s shape.Shape) (HitResult, error) {
	if mathf.IsZero(r.Direction.LengthSq()) {
		return HitResult{}, errors.New("ray direction is zero-length").
			WithType(ErrTypeDegenerateRay)
	}

	if shape.ContainsPoint(s, r.Origin) {
		return HitResult{Hit: true, Point: r.Origin}, nil
	}

	switch o := s.(type) {
	case *shape.Sphere:
		return castSphere(r, o), nil
	case *shape.AABB:
		return castAABB(r, o), nil
	case *shape.OBB:
		return castOBB(r, o), nil
	case *shape.Capsule:
		return castCapsule(r, o), nil
	}
	return HitResult{}, nil
}

func castSphere(r Ray, s *shape.Sphere) HitResult {
	dir := r.Direction.Normalized()
	oc := r.Origin.Sub(s.Center)

	a := vec.Dot(dir, dir)
	b := 2 * vec.Dot(oc, dir)
	c := vec.Dot(oc, oc) - s.Radius*s.Radius

	disc := b*b - 4*a*c
	if disc < 0 {
		return HitResult{}
	}

	sqrtD := math32.Sqrt(disc)
	t0 := (-b - sqrtD) / (2 * a)
	t1 := (-b + sqrtD) / (2 * a)

	t := t0
	if t < 0 {
		t = t1
	}
	if t < 0 {
		return HitResult{}
	}

	point := r.Origin.Add(dir.Scale(t))
	return HitResult{
		Hit:      true,
		Distance: t,
		Point:    point,
		Normal:   point.Sub(s.Center).Normalized(),
	}
}

// castAABB walks the three slabs, tracking the entering face normal. A
// ray parallel to a slab outside its bounds misses.
func castAABB(r Ray, b *shape.AABB) HitResult {
	dir := r.Direction.Normalized()

	min := b.Min()
	max := b.Max()

	tMin := float32(0)
	tMax := float32(math32.MaxFloat32)
	var hitNormal vec.Vec3

	for i := 0; i < 3; i++ {
		if mathf.IsZero(math32.Abs(dir.At(i))) {
			if r.Origin.At(i) < min.At(i) || r.Origin.At(i) > max.At(i) {
				return HitResult{}
			}
			continue
		}

		invD := 1 / dir.At(i)
		t1 := (min.At(i) - r.Origin.At(i)) * invD
		t2 := (max.At(i) - r.Origin.At(i)) * invD

		sign := float32(-1)
		if t1 > t2 {
			sign = 1
			t1, t2 = t2, t1
		}

		if t1 > tMin {
			tMin = t1
			hitNormal = vec.Vec3{}
			hitNormal.SetAt(i, sign)
		}

		tMax = math32.Min(tMax, t2)
		if tMin > tMax {
			return HitResult{}
		}
	}

	return HitResult{
		Hit:      true,
		Distance: tMin,
		Point:    r.Origin.Add(dir.Scale(tMin)),
		Normal:   hitNormal,
	}
}

// castOBB transforms the ray into the box local frame, casts against the
// local AABB, and rotates the normal back to world.
func castOBB(r Ray, o *shape.OBB) HitResult {
	dir := r.Direction.Normalized()

	p := r.Origin.Sub(o.Center)
	localOrigin := vec.Vec3{
		X: vec.Dot(p, o.Axes[0]),
		Y: vec.Dot(p, o.Axes[1]),
		Z: vec.Dot(p, o.Axes[2]),
	}
	localDir := vec.Vec3{
		X: vec.Dot(dir, o.Axes[0]),
		Y: vec.Dot(dir, o.Axes[1]),
		Z: vec.Dot(dir, o.Axes[2]),
	}

	localBox := shape.AABB{HalfExtents: o.HalfExtents}
	localHit := castAABB(Ray{Origin: localOrigin, Direction: localDir}, &localBox)
	if !localHit.Hit {
		return HitResult{}
	}

	normal := o.Axes[0].Scale(localHit.Normal.X).
		Add(o.Axes[1].Scale(localHit.Normal.Y)).
		Add(o.Axes[2].Scale(localHit.Normal.Z))

	return HitResult{
		Hit:      true,
		Distance: localHit.Distance,
		Point:    r.Origin.Add(dir.Scale(localHit.Distance)),
		Normal:   normal.Normalized(),
	}
}

// castCylinder intersects the finite cylinder body between a and b,
// rejecting hits outside the segment span.
func castCylinder(r Ray, a, b vec.Vec3, radius float32) (float32, vec.Vec3, bool) {
	d := b.Sub(a)
	m := r.Origin.Sub(a)
	n := r.Direction.Normalized()

	dd := vec.Dot(d, d)
	md := vec.Dot(m, d)
	nd := vec.Dot(n, d)

	mn := vec.Dot(m, n)
	nn := vec.Dot(n, n)

	qa := dd*nn - nd*nd
	qb := dd*mn - md*nd
	qc := dd*vec.Dot(m, m) - md*md - radius*radius*dd

	if mathf.IsZero(math32.Abs(qa)) {
		return 0, vec.Vec3{}, false
	}

	disc := qb*qb - qa*qc
	if disc < 0 {
		return 0, vec.Vec3{}, false
	}

	t := (-qb - math32.Sqrt(disc)) / qa
	if t < 0 {
		return 0, vec.Vec3{}, false
	}

	k := (md + t*nd) / dd
	if k < 0 || k > 1 {
		return 0, vec.Vec3{}, false
	}

	hitPoint := r.Origin.Add(n.Scale(t))
	axisPoint := a.Add(d.Scale(k))

	return t, hitPoint.Sub(axisPoint).Normalized(), true
}

// castCapsule takes the nearest of the cylinder body and the two endpoint
// spheres.
func castCapsule(r Ray, c *shape.Capsule) HitResult {
	dir := r.Direction.Normalized()

	closestT := float32(math32.MaxFloat32)
	var bestNormal vec.Vec3
	hit := false

	if t, n, ok := castCylinder(r, c.A, c.B, c.Radius); ok && t < closestT {
		closestT = t
		bestNormal = n
		hit = true
	}

	capA := shape.Sphere{Center: c.A, Radius: c.Radius}
	if res := castSphere(r, &capA); res.Hit && res.Distance < closestT {
		closestT = res.Distance
		bestNormal = res.Normal
		hit = true
	}

	capB := shape.Sphere{Center: c.B, Radius: c.Radius}
	if res := castSphere(r, &capB); res.Hit && res.Distance < closestT {
		closestT = res.Distance
		bestNormal = res.Normal
		hit = true
	}

	if !hit {
		return HitResult{}
	}

	return HitResult{
		Hit:      true,
		Distance: closestT,
		Point:    r.Origin.Add(dir.Scale(closestT)),
		Normal:   bestNormal,
	}
}
