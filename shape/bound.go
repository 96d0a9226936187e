package shape

import (
	"github.com/chewxy/math32"

	"github.com/aukilabs/raidho/vec"
)

func obbBound(o *OBB, scaleFactor float32) AABB {
	// Project the oriented half extents onto the world axes.
	var he vec.Vec3
	he.X = math32.Abs(o.Axes[0].X)*o.HalfExtents.X +
		math32.Abs(o.Axes[1].X)*o.HalfExtents.Y +
		math32.Abs(o.Axes[2].X)*o.HalfExtents.Z

	he.Y = math32.Abs(o.Axes[0].Y)*o.HalfExtents.X +
		math32.Abs(o.Axes[1].Y)*o.HalfExtents.Y +
		math32.Abs(o.Axes[2].Y)*o.HalfExtents.Z

	he.Z = math32.Abs(o.Axes[0].Z)*o.HalfExtents.X +
		math32.Abs(o.Axes[1].Z)*o.HalfExtents.Y +
		math32.Abs(o.Axes[2].Z)*o.HalfExtents.Z

	return AABB{Center: o.Center, HalfExtents: he.Scale(scaleFactor)}
}

func capsuleBound(c *Capsule, scaleFactor float32) AABB {
	minP := vec.Vec3{
		X: math32.Min(c.A.X, c.B.X),
		Y: math32.Min(c.A.Y, c.B.Y),
		Z: math32.Min(c.A.Z, c.B.Z),
	}
	maxP := vec.Vec3{
		X: math32.Max(c.A.X, c.B.X),
		Y: math32.Max(c.A.Y, c.B.Y),
		Z: math32.Max(c.A.Z, c.B.Z),
	}

	r := vec.Vec3{X: c.Radius, Y: c.Radius, Z: c.Radius}
	minP = minP.Sub(r)
	maxP = maxP.Add(r)

	center := minP.Add(maxP).Scale(0.5)
	halfExtents := maxP.Sub(minP).Scale(0.5)

	return AABB{Center: center, HalfExtents: halfExtents.Scale(scaleFactor)}
}

func box2DBound(b *Box2D, scaleFactor float32) Rect {
	var he vec.Vec2
	he.X = math32.Abs(b.Axes[0].X)*b.HalfExtents.X +
		math32.Abs(b.Axes[1].X)*b.HalfExtents.Y
	he.Y = math32.Abs(b.Axes[0].Y)*b.HalfExtents.X +
		math32.Abs(b.Axes[1].Y)*b.HalfExtents.Y

	return Rect{Center: b.Center, HalfExtents: he.Scale(scaleFactor)}
}

func capsule2DBound(c *Capsule2D, scaleFactor float32) Rect {
	minP := vec.Vec2{
		X: math32.Min(c.A.X, c.B.X),
		Y: math32.Min(c.A.Y, c.B.Y),
	}
	maxP := vec.Vec2{
		X: math32.Max(c.A.X, c.B.X),
		Y: math32.Max(c.A.Y, c.B.Y),
	}

	r := vec.Vec2{X: c.Radius, Y: c.Radius}
	minP = minP.Sub(r)
	maxP = maxP.Add(r)

	center := minP.Add(maxP).Scale(0.5)
	halfExtents := maxP.Sub(minP).Scale(0.5)

	return Rect{Center: center, HalfExtents: halfExtents.Scale(scaleFactor)}
}
