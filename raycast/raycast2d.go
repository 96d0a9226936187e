package raycast

import (
	"github.com/aukilabs/go-tooling/pkg/errors"
	"github.com/chewxy/math32"

	"github.com/aukilabs/raidho/mathf"
	"github.com/aukilabs/raidho/shape"
	"github.com/aukilabs/raidho/vec"
)

type Ray2D struct {
	Origin    vec.Vec2
	Direction vec.Vec2
}

type HitResult2D struct {
	Hit      bool
	Distance float32
	Point    vec.Vec2
	Normal   vec.Vec2
}

// Cast2D intersects r with s and returns the first hit. The only error is
// a zero-length direction; a miss is a zero HitResult2D and a nil error.
func Cast2D(r Ray2D, s shape.Shape2D) (HitResult2D, error) {
	if mathf.IsZero(r.Direction.LengthSq()) {
		return HitResult2D{}, errors.New("ray direction is zero-length").
			WithType(ErrTypeDegenerateRay)
	}

	if shape.ContainsPoint2D(s, r.Origin) {
		return HitResult2D{Hit: true, Point: r.Origin}, nil
	}

	switch o := s.(type) {
	case *shape.Circle:
		return castCircle(r, o), nil
	case *shape.Rect:
		return castRect(r, o), nil
	case *shape.Box2D:
		return castBox2D(r, o), nil
	case *shape.Capsule2D:
		return castCapsule2D(r, o), nil
	}
	return HitResult2D{}, nil
}

func castCircle(r Ray2D, c *shape.Circle) HitResult2D {
	dir := r.Direction.Normalized()
	oc := r.Origin.Sub(c.Center)

	b := 2 * vec.Dot2(oc, dir)
	cVal := oc.LengthSq() - c.Radius*c.Radius
	disc := b*b - 4*cVal

	if disc < 0 {
		return HitResult2D{}
	}

	sqrtDisc := math32.Sqrt(disc)
	t1 := (-b - sqrtDisc) / 2
	t2 := (-b + sqrtDisc) / 2

	t := float32(-1)
	if t1 > mathf.EPS {
		t = t1
	} else if t2 > mathf.EPS {
		t = t2
	}
	if t < 0 {
		return HitResult2D{}
	}

	point := r.Origin.Add(dir.Scale(t))
	return HitResult2D{
		Hit:      true,
		Distance: t,
		Point:    point,
		Normal:   point.Sub(c.Center).Normalized(),
	}
}

// castRect uses the two-slab intersection; the normal is the axis-aligned
// unit vector of the face nearest the hit point.
func castRect(r Ray2D, rect *shape.Rect) HitResult2D {
	dir := r.Direction.Normalized()
	invDir := vec.Vec2{X: 1 / dir.X, Y: 1 / dir.Y}
	min := rect.Min()
	max := rect.Max()

	t1 := (min.X - r.Origin.X) * invDir.X
	t2 := (max.X - r.Origin.X) * invDir.X
	t3 := (min.Y - r.Origin.Y) * invDir.Y
	t4 := (max.Y - r.Origin.Y) * invDir.Y

	tmin := math32.Max(math32.Min(t1, t2), math32.Min(t3, t4))
	tmax := math32.Min(math32.Max(t1, t2), math32.Max(t3, t4))

	if tmax < 0 || tmin > tmax {
		return HitResult2D{}
	}

	t := tmax
	if tmin > mathf.EPS {
		t = tmin
	}
	if t < 0 {
		return HitResult2D{}
	}

	point := r.Origin.Add(dir.Scale(t))

	var normal vec.Vec2
	switch {
	case mathf.NearlyEqual(point.X, min.X):
		normal = vec.Vec2{X: -1}
	case mathf.NearlyEqual(point.X, max.X):
		normal = vec.Vec2{X: 1}
	case mathf.NearlyEqual(point.Y, min.Y):
		normal = vec.Vec2{Y: -1}
	case mathf.NearlyEqual(point.Y, max.Y):
		normal = vec.Vec2{Y: 1}
	}

	return HitResult2D{
		Hit:      true,
		Distance: t,
		Point:    point,
		Normal:   normal,
	}
}

// castBox2D transforms the ray into the box local frame, casts against
// the local rect, and rotates the normal back to world.
func castBox2D(r Ray2D, b *shape.Box2D) HitResult2D {
	dir := r.Direction.Normalized()

	p := r.Origin.Sub(b.Center)
	localOrigin := vec.Vec2{
		X: vec.Dot2(p, b.Axes[0]),
		Y: vec.Dot2(p, b.Axes[1]),
	}
	localDir := vec.Vec2{
		X: vec.Dot2(dir, b.Axes[0]),
		Y: vec.Dot2(dir, b.Axes[1]),
	}

	localRect := shape.Rect{HalfExtents: b.HalfExtents}
	localHit := castRect(Ray2D{Origin: localOrigin, Direction: localDir}, &localRect)
	if !localHit.Hit {
		return HitResult2D{}
	}

	normal := b.Axes[0].Scale(localHit.Normal.X).
		Add(b.Axes[1].Scale(localHit.Normal.Y))

	return HitResult2D{
		Hit:      true,
		Distance: localHit.Distance,
		Point:    r.Origin.Add(dir.Scale(localHit.Distance)),
		Normal:   normal.Normalized(),
	}
}

// castCapsule2D projects the ray onto the capsule segment and solves the
// circle of the closest axis point; the normal points from the segment to
// the hit.
func castCapsule2D(r Ray2D, cap *shape.Capsule2D) HitResult2D {
	ab := cap.B.Sub(cap.A)
	ao := r.Origin.Sub(cap.A)
	d := r.Direction.Normalized()

	abLenSq := ab.LengthSq()
	var closest vec.Vec2
	if abLenSq == 0 {
		closest = cap.A
	} else {
		tSegment := mathf.Clamp01(vec.Dot2(ao, ab) / abLenSq)
		closest = cap.A.Add(ab.Scale(tSegment))
	}

	diff := closest.Sub(r.Origin)
	proj := vec.Dot2(diff, d)
	if proj < 0 {
		return HitResult2D{}
	}

	closestPoint := r.Origin.Add(d.Scale(proj))
	distSq := closest.Sub(closestPoint).LengthSq()
	if distSq > cap.Radius*cap.Radius {
		return HitResult2D{}
	}

	offset := math32.Sqrt(cap.Radius*cap.Radius - distSq)
	distance := proj - offset
	if distance < mathf.EPS {
		distance = 0
	}

	point := r.Origin.Add(d.Scale(distance))
	return HitResult2D{
		Hit:      true,
		Distance: distance,
		Point:    point,
		Normal:   point.Sub(closest).Normalized(),
	}
}
