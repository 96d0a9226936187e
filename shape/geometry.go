package shape

import (
	"github.com/chewxy/math32"

	"github.com/aukilabs/raidho/mathf"
	"github.com/aukilabs/raidho/vec"
)

// DistancePointSegment returns the distance from p to the segment ab.
// Coincident endpoints degenerate to point distance.
func DistancePointSegment(p, a, b vec.Vec3) float32 {
	ab := b.Sub(a)
	abLenSq := ab.LengthSq()
	if abLenSq == 0 {
		return p.Sub(a).Length()
	}

	t := mathf.Clamp01(vec.Dot(p.Sub(a), ab) / abLenSq)
	closest := a.Add(ab.Scale(t))
	return p.Sub(closest).Length()
}

// ClampPointAABB clamps p componentwise into b.
func ClampPointAABB(p vec.Vec3, b AABB) vec.Vec3 {
	min := b.Min()
	max := b.Max()
	return vec.Vec3{
		X: mathf.Clamp(p.X, min.X, max.X),
		Y: mathf.Clamp(p.Y, min.Y, max.Y),
		Z: mathf.Clamp(p.Z, min.Z, max.Z),
	}
}

// overlapOnAxis projects both oriented boxes onto axis and compares the
// projected extents against the center distance. Near-zero axes are
// treated as non-separating.
func overlapOnAxis(a, b *OBB, axis vec.Vec3) bool {
	if mathf.IsZero(axis.LengthSq()) {
		return true
	}

	var aProj float32
	for i := 0; i < 3; i++ {
		aProj += a.HalfExtents.At(i) * math32.Abs(vec.Dot(a.Axes[i], axis))
	}

	var bProj float32
	for i := 0; i < 3; i++ {
		bProj += b.HalfExtents.At(i) * math32.Abs(vec.Dot(b.Axes[i], axis))
	}

	distanceCenters := math32.Abs(vec.Dot(b.Center.Sub(a.Center), axis))

	return distanceCenters <= aProj+bProj
}

// DistancePointSegmentSq2D returns the squared distance from p to the
// segment ab.
func DistancePointSegmentSq2D(p, a, b vec.Vec2) float32 {
	ab := b.Sub(a)
	abLenSq := ab.LengthSq()
	if abLenSq == 0 {
		return p.Sub(a).LengthSq()
	}

	t := mathf.Clamp01(vec.Dot2(p.Sub(a), ab) / abLenSq)
	closest := a.Add(ab.Scale(t))
	return p.Sub(closest).LengthSq()
}

// ClampPointRect clamps p componentwise into r.
func ClampPointRect(p vec.Vec2, r Rect) vec.Vec2 {
	min := r.Min()
	max := r.Max()
	return vec.Vec2{
		X: mathf.Clamp(p.X, min.X, max.X),
		Y: mathf.Clamp(p.Y, min.Y, max.Y),
	}
}

// DistanceSegmentRectSq returns the squared distance between segment ab
// and r, using a Liang-Barsky clip of the segment against the slab
// bounds. A clipped segment that survives both slabs intersects the
// rectangle and the distance is zero.
func DistanceSegmentRectSq(a, b vec.Vec2, r Rect) float32 {
	d := b.Sub(a)

	tMin := float32(0)
	tMax := float32(1)

	min := r.Min()
	max := r.Max()

	inside := true
	for i := 0; i < 2 && inside; i++ {
		p := d.At(i)
		q0 := a.At(i) - min.At(i)
		q1 := max.At(i) - a.At(i)

		if math32.Abs(p) < mathf.EPS {
			if q0 < 0 || q1 < 0 {
				inside = false
			}
		} else {
			t0 := q0 / -p
			t1 := q1 / p
			if t0 > t1 {
				t0, t1 = t1, t0
			}

			tMin = math32.Max(tMin, t0)
			tMax = math32.Min(tMax, t1)

			if tMin > tMax {
				inside = false
			}
		}
	}

	if inside {
		return 0
	}

	t := mathf.Clamp01(tMin)
	p := a.Add(d.Scale(t))

	cp := ClampPointRect(p, r)
	return p.Sub(cp).LengthSq()
}
