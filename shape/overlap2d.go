package shape

import (
	"github.com/chewxy/math32"

	"github.com/aukilabs/raidho/mathf"
	"github.com/aukilabs/raidho/vec"
)

// Overlap2D reports whether two 2D shapes overlap. Touching counts, as in
// the 3D algebra.
func Overlap2D(a, b Shape2D) bool {
	switch s := a.(type) {
	case *Circle:
		switch o := b.(type) {
		case *Circle:
			return overlapCircleCircle(s, o)
		case *Rect:
			return overlapRectCircle(o, s)
		case *Box2D:
			return overlapBox2DCircle(o, s)
		case *Capsule2D:
			return overlapCapsule2DCircle(o, s)
		}
	case *Rect:
		switch o := b.(type) {
		case *Circle:
			return overlapRectCircle(s, o)
		case *Rect:
			return overlapRectRect(s, o)
		case *Box2D:
			return overlapBox2DRect(o, s)
		case *Capsule2D:
			return overlapCapsule2DRect(o, s)
		}
	case *Box2D:
		switch o := b.(type) {
		case *Circle:
			return overlapBox2DCircle(s, o)
		case *Rect:
			return overlapBox2DRect(s, o)
		case *Box2D:
			return overlapBox2DBox2D(s, o)
		case *Capsule2D:
			return overlapBox2DCapsule2D(s, o)
		}
	case *Capsule2D:
		switch o := b.(type) {
		case *Circle:
			return overlapCapsule2DCircle(s, o)
		case *Rect:
			return overlapCapsule2DRect(s, o)
		case *Box2D:
			return overlapBox2DCapsule2D(o, s)
		case *Capsule2D:
			return overlapCapsule2DCapsule2D(s, o)
		}
	}
	return false
}

// ContainsPoint2D reports whether p lies inside or on the boundary of s.
func ContainsPoint2D(s Shape2D, p vec.Vec2) bool {
	switch o := s.(type) {
	case *Circle:
		return p.Sub(o.Center).LengthSq() <= o.Radius*o.Radius
	case *Rect:
		min := o.Min()
		max := o.Max()
		return p.X >= min.X && p.X <= max.X &&
			p.Y >= min.Y && p.Y <= max.Y
	case *Box2D:
		local := p.Sub(o.Center)
		for i := 0; i < 2; i++ {
			dist := vec.Dot2(local, o.Axes[i])
			if dist < -o.HalfExtents.At(i) || dist > o.HalfExtents.At(i) {
				return false
			}
		}
		return true
	case *Capsule2D:
		return DistancePointSegmentSq2D(p, o.A, o.B) <= o.Radius*o.Radius
	}
	return false
}

func overlapCircleCircle(a, b *Circle) bool {
	r := a.Radius + b.Radius
	return a.Center.Sub(b.Center).LengthSq() <= r*r
}

func overlapRectRect(a, b *Rect) bool {
	return math32.Abs(a.Center.X-b.Center.X) <= a.HalfExtents.X+b.HalfExtents.X &&
		math32.Abs(a.Center.Y-b.Center.Y) <= a.HalfExtents.Y+b.HalfExtents.Y
}

func overlapRectCircle(r *Rect, c *Circle) bool {
	closest := ClampPointRect(c.Center, *r)
	return closest.Sub(c.Center).LengthSq() <= c.Radius*c.Radius
}

func overlapCapsule2DCircle(cap *Capsule2D, c *Circle) bool {
	r := cap.Radius + c.Radius
	return DistancePointSegmentSq2D(c.Center, cap.A, cap.B) <= r*r
}

func overlapCapsule2DCapsule2D(a, b *Capsule2D) bool {
	r := a.Radius + b.Radius
	d1 := DistancePointSegmentSq2D(a.A, b.A, b.B)
	d2 := DistancePointSegmentSq2D(a.B, b.A, b.B)
	d3 := DistancePointSegmentSq2D(b.A, a.A, a.B)
	d4 := DistancePointSegmentSq2D(b.B, a.A, a.B)

	minDistSq := math32.Min(math32.Min(d1, d2), math32.Min(d3, d4))
	return minDistSq <= r*r
}

func overlapCapsule2DRect(cap *Capsule2D, r *Rect) bool {
	ca := ClampPointRect(cap.A, *r)
	cb := ClampPointRect(cap.B, *r)

	if ca.Sub(cap.A).LengthSq() <= cap.Radius*cap.Radius {
		return true
	}
	if cb.Sub(cap.B).LengthSq() <= cap.Radius*cap.Radius {
		return true
	}

	return DistancePointSegmentSq2D(r.Center, cap.A, cap.B) <= cap.Radius*cap.Radius
}

// overlapBox2DRect projects the rect extents into the box frame and
// compares along the box's two axes. The rect's own axes are not tested,
// so a rect separated from the box only along a world axis is still
// reported as overlapping.
func overlapBox2DRect(b *Box2D, r *Rect) bool {
	d := r.Center.Sub(b.Center)

	local := vec.Vec2{
		X: vec.Dot2(d, b.Axes[0]),
		Y: vec.Dot2(d, b.Axes[1]),
	}

	var ext vec.Vec2
	ext.X = r.HalfExtents.X*math32.Abs(b.Axes[0].X) +
		r.HalfExtents.Y*math32.Abs(b.Axes[0].Y)
	ext.Y = r.HalfExtents.X*math32.Abs(b.Axes[1].X) +
		r.HalfExtents.Y*math32.Abs(b.Axes[1].Y)

	if math32.Abs(local.X) > b.HalfExtents.X+ext.X {
		return false
	}
	if math32.Abs(local.Y) > b.HalfExtents.Y+ext.Y {
		return false
	}

	return true
}

// overlapBox2DBox2D runs the separating axis test on the four face
// normals.
func overlapBox2DBox2D(a, b *Box2D) bool {
	axes := [4]vec.Vec2{a.Axes[0], a.Axes[1], b.Axes[0], b.Axes[1]}

	d := b.Center.Sub(a.Center)

	for _, axis := range axes {
		axis = axis.Normalized()
		if mathf.IsZero(axis.LengthSq()) {
			continue
		}

		aProj := math32.Abs(vec.Dot2(axis, a.Axes[0]))*a.HalfExtents.X +
			math32.Abs(vec.Dot2(axis, a.Axes[1]))*a.HalfExtents.Y

		bProj := math32.Abs(vec.Dot2(axis, b.Axes[0]))*b.HalfExtents.X +
			math32.Abs(vec.Dot2(axis, b.Axes[1]))*b.HalfExtents.Y

		dist := math32.Abs(vec.Dot2(d, axis))

		if dist > aProj+bProj {
			return false
		}
	}

	return true
}

func overlapBox2DCircle(b *Box2D, c *Circle) bool {
	d := c.Center.Sub(b.Center)
	local := vec.Vec2{
		X: vec.Dot2(d, b.Axes[0]),
		Y: vec.Dot2(d, b.Axes[1]),
	}

	closest := vec.Vec2{
		X: mathf.Clamp(local.X, -b.HalfExtents.X, b.HalfExtents.X),
		Y: mathf.Clamp(local.Y, -b.HalfExtents.Y, b.HalfExtents.Y),
	}

	return local.Sub(closest).LengthSq() <= c.Radius*c.Radius
}

// overlapBox2DCapsule2D clips the capsule segment against the box local
// frame and compares the squared segment-rect distance to the radius.
func overlapBox2DCapsule2D(b *Box2D, cap *Capsule2D) bool {
	toLocal := func(p vec.Vec2) vec.Vec2 {
		d := p.Sub(b.Center)
		return vec.Vec2{
			X: vec.Dot2(d, b.Axes[0]),
			Y: vec.Dot2(d, b.Axes[1]),
		}
	}

	localA := toLocal(cap.A)
	localB := toLocal(cap.B)

	localRect := Rect{HalfExtents: b.HalfExtents}

	distSq := DistanceSegmentRectSq(localA, localB, localRect)
	return distSq <= cap.Radius*cap.Radius
}
