package shape

import (
	"testing"

	"github.com/chewxy/math32"
	"github.com/stretchr/testify/require"

	"github.com/aukilabs/raidho/vec"
)

func rotatedAxesY(deg float32) [3]vec.Vec3 {
	rad := deg * math32.Pi / 180
	c, s := math32.Cos(rad), math32.Sin(rad)
	return [3]vec.Vec3{
		{X: c, Z: -s},
		{Y: 1},
		{X: s, Z: c},
	}
}

func TestOverlapSphereSphere(t *testing.T) {
	a := NewSphere(vec.Vec3{}, 1)

	t.Run("touching counts as overlap", func(t *testing.T) {
		b := NewSphere(vec.Vec3{X: 2}, 1)
		require.True(t, Overlap(a, b))
	})

	t.Run("separated by epsilon misses", func(t *testing.T) {
		c := NewSphere(vec.Vec3{X: 2.01}, 1)
		require.False(t, Overlap(a, c))
	})

	t.Run("contained overlaps", func(t *testing.T) {
		d := NewSphere(vec.Vec3{X: 0.1}, 0.1)
		require.True(t, Overlap(a, d))
	})
}

func TestOverlapAABBAABB(t *testing.T) {
	a := NewAABB(vec.Vec3{}, vec.Vec3{X: 1, Y: 1, Z: 1})

	require.True(t, Overlap(a, NewAABB(vec.Vec3{X: 2}, vec.Vec3{X: 1, Y: 1, Z: 1})))
	require.False(t, Overlap(a, NewAABB(vec.Vec3{X: 2.1}, vec.Vec3{X: 1, Y: 1, Z: 1})))
	require.True(t, Overlap(a, NewAABB(vec.Vec3{X: 0.5, Y: 0.5, Z: 0.5}, vec.Vec3{X: 1, Y: 1, Z: 1})))
}

func TestOverlapOBBOBB(t *testing.T) {
	t.Run("axis aligned boxes", func(t *testing.T) {
		a := NewOBB(vec.Vec3{}, vec.Vec3{X: 1, Y: 1, Z: 1}, WorldAxes())
		b := NewOBB(vec.Vec3{X: 1.5}, vec.Vec3{X: 1, Y: 1, Z: 1}, WorldAxes())
		c := NewOBB(vec.Vec3{X: 3}, vec.Vec3{X: 1, Y: 1, Z: 1}, WorldAxes())

		require.True(t, Overlap(a, b))
		require.False(t, Overlap(a, c))
	})
}

func TestOverlapOBBOBBRotated(t *testing.T) {
	// A 45-degree box whose corner reaches sqrt(2) along x.
	a := NewOBB(vec.Vec3{}, vec.Vec3{X: 1, Y: 1, Z: 1}, rotatedAxesY(45))
	b := NewOBB(vec.Vec3{X: 2.3}, vec.Vec3{X: 1, Y: 1, Z: 1}, WorldAxes())
	c := NewOBB(vec.Vec3{X: 2.5}, vec.Vec3{X: 1, Y: 1, Z: 1}, WorldAxes())

	require.True(t, Overlap(a, b))
	require.False(t, Overlap(a, c))
}

func TestOverlapCapsuleCapsule(t *testing.T) {
	a := NewCapsule(vec.Vec3{Y: -1}, vec.Vec3{Y: 1}, 0.5)

	t.Run("parallel within radii", func(t *testing.T) {
		b := NewCapsule(vec.Vec3{X: 0.9, Y: -1}, vec.Vec3{X: 0.9, Y: 1}, 0.5)
		require.True(t, Overlap(a, b))
	})

	t.Run("parallel out of reach", func(t *testing.T) {
		b := NewCapsule(vec.Vec3{X: 1.1, Y: -1}, vec.Vec3{X: 1.1, Y: 1}, 0.5)
		require.False(t, Overlap(a, b))
	})

	t.Run("degenerate endpoints act as a sphere", func(t *testing.T) {
		point := NewCapsule(vec.Vec3{X: 0.9}, vec.Vec3{X: 0.9}, 0.5)
		require.True(t, Overlap(a, point))
	})
}

func TestOverlapSphereAABB(t *testing.T) {
	b := NewAABB(vec.Vec3{}, vec.Vec3{X: 1, Y: 1, Z: 1})

	require.True(t, Overlap(NewSphere(vec.Vec3{X: 1.5}, 1), b))
	require.False(t, Overlap(NewSphere(vec.Vec3{X: 2.5}, 1), b))

	// Corner distance decides near the vertex.
	corner := NewSphere(vec.Vec3{X: 1.7, Y: 1.7}, 0.9)
	require.False(t, Overlap(corner, b))
}

func TestOverlapSphereOBB(t *testing.T) {
	o := NewOBB(vec.Vec3{}, vec.Vec3{X: 2, Y: 1, Z: 1}, rotatedAxesY(90))

	// Rotated 90 degrees about y: the long side now spans z.
	require.True(t, Overlap(NewSphere(vec.Vec3{Z: 2.5}, 1), o))
	require.False(t, Overlap(NewSphere(vec.Vec3{X: 2.5}, 1), o))
}

func TestOverlapCapsuleAABB(t *testing.T) {
	b := NewAABB(vec.Vec3{}, vec.Vec3{X: 1, Y: 1, Z: 1})

	touching := NewCapsule(vec.Vec3{X: 1.5, Y: -1}, vec.Vec3{X: 1.5, Y: 1}, 0.5)
	require.True(t, Overlap(touching, b))

	away := NewCapsule(vec.Vec3{X: 2.6, Y: -1}, vec.Vec3{X: 2.6, Y: 1}, 0.5)
	require.False(t, Overlap(away, b))
}

func TestOverlapCapsuleOBB(t *testing.T) {
	o := NewOBB(vec.Vec3{}, vec.Vec3{X: 1, Y: 1, Z: 1}, WorldAxes())

	inside := NewCapsule(vec.Vec3{X: 0.5}, vec.Vec3{X: 0.5, Y: 0.5}, 0.1)
	require.True(t, Overlap(inside, o))

	near := NewCapsule(vec.Vec3{X: 1.4, Y: -1}, vec.Vec3{X: 1.4, Y: 1}, 0.5)
	require.True(t, Overlap(near, o))

	far := NewCapsule(vec.Vec3{X: 2.6, Y: -1}, vec.Vec3{X: 2.6, Y: 1}, 0.5)
	require.False(t, Overlap(far, o))
}

func TestOverlapAABBOBB(t *testing.T) {
	b := NewAABB(vec.Vec3{}, vec.Vec3{X: 1, Y: 1, Z: 1})

	near := NewOBB(vec.Vec3{X: 2.3}, vec.Vec3{X: 1, Y: 1, Z: 1}, rotatedAxesY(45))
	require.True(t, Overlap(b, near))

	far := NewOBB(vec.Vec3{X: 2.5}, vec.Vec3{X: 1, Y: 1, Z: 1}, rotatedAxesY(45))
	require.False(t, Overlap(b, far))
}

func TestOverlapSymmetry(t *testing.T) {
	sphere := NewSphere(vec.Vec3{X: 0.5}, 1)
	aabb := NewAABB(vec.Vec3{X: 1}, vec.Vec3{X: 1, Y: 1, Z: 1})
	obb := NewOBB(vec.Vec3{X: -0.5}, vec.Vec3{X: 1, Y: 1, Z: 1}, rotatedAxesY(30))
	capsule := NewCapsule(vec.Vec3{Y: -1}, vec.Vec3{Y: 1}, 0.75)
	farSphere := NewSphere(vec.Vec3{X: 50}, 1)

	shapes := []Shape{sphere, aabb, obb, capsule, farSphere}

	for i, a := range shapes {
		for j, b := range shapes {
			if i == j {
				continue
			}
			require.Equal(t, Overlap(a, b), Overlap(b, a),
				"overlap(%d,%d) is not symmetric", i, j)
		}
	}
}

func TestContainsPoint(t *testing.T) {
	t.Run("centers are contained", func(t *testing.T) {
		require.True(t, ContainsPoint(NewSphere(vec.Vec3{X: 1}, 0.5), vec.Vec3{X: 1}))
		require.True(t, ContainsPoint(NewAABB(vec.Vec3{Y: 2}, vec.Vec3{X: 1, Y: 1, Z: 1}), vec.Vec3{Y: 2}))
		require.True(t, ContainsPoint(NewOBB(vec.Vec3{Z: -1}, vec.Vec3{X: 1, Y: 1, Z: 1}, rotatedAxesY(45)), vec.Vec3{Z: -1}))
		require.True(t, ContainsPoint(NewCapsule(vec.Vec3{Y: -1}, vec.Vec3{Y: 1}, 0.5), vec.Vec3{}))
	})

	t.Run("boundary is contained", func(t *testing.T) {
		require.True(t, ContainsPoint(NewSphere(vec.Vec3{}, 1), vec.Vec3{X: 1}))
		require.True(t, ContainsPoint(NewAABB(vec.Vec3{}, vec.Vec3{X: 1, Y: 1, Z: 1}), vec.Vec3{X: 1, Y: 1, Z: 1}))
	})

	t.Run("outside is not contained", func(t *testing.T) {
		require.False(t, ContainsPoint(NewSphere(vec.Vec3{}, 1), vec.Vec3{X: 1.01}))
		require.False(t, ContainsPoint(NewCapsule(vec.Vec3{Y: -1}, vec.Vec3{Y: 1}, 0.5), vec.Vec3{X: 0.6}))
	})
}

func TestBound(t *testing.T) {
	t.Run("sphere", func(t *testing.T) {
		s := NewSphere(vec.Vec3{X: 1, Y: 2, Z: 3}, 2)
		b := s.Bound(1)
		require.Equal(t, vec.Vec3{X: 1, Y: 2, Z: 3}, b.Center)
		require.Equal(t, vec.Vec3{X: 2, Y: 2, Z: 2}, b.HalfExtents)
	})

	t.Run("aabb is identity", func(t *testing.T) {
		a := NewAABB(vec.Vec3{X: 1}, vec.Vec3{X: 1, Y: 2, Z: 3})
		b := a.Bound(1)
		require.Equal(t, a.Center, b.Center)
		require.Equal(t, a.HalfExtents, b.HalfExtents)
	})

	t.Run("rotated obb bound covers the corners", func(t *testing.T) {
		o := NewOBB(vec.Vec3{}, vec.Vec3{X: 1, Y: 1, Z: 1}, rotatedAxesY(45))
		b := o.Bound(1)
		sqrt2 := math32.Sqrt(2)
		require.InDelta(t, sqrt2, b.HalfExtents.X, 1e-5)
		require.InDelta(t, 1, b.HalfExtents.Y, 1e-5)
		require.InDelta(t, sqrt2, b.HalfExtents.Z, 1e-5)
	})

	t.Run("capsule bound spans segment plus radius", func(t *testing.T) {
		c := NewCapsule(vec.Vec3{Y: -1}, vec.Vec3{Y: 1}, 0.5)
		b := c.Bound(1)
		require.Equal(t, vec.Vec3{}, b.Center)
		require.Equal(t, vec.Vec3{X: 0.5, Y: 1.5, Z: 0.5}, b.HalfExtents)
	})

	t.Run("inflated bound contains the real bound", func(t *testing.T) {
		shapes := []Shape{
			NewSphere(vec.Vec3{X: 1}, 2),
			NewAABB(vec.Vec3{Y: -1}, vec.Vec3{X: 1, Y: 2, Z: 3}),
			NewOBB(vec.Vec3{Z: 4}, vec.Vec3{X: 1, Y: 1, Z: 1}, rotatedAxesY(30)),
			NewCapsule(vec.Vec3{X: -1}, vec.Vec3{X: 1, Y: 2}, 0.5),
		}

		for _, s := range shapes {
			real := s.Bound(1)
			inflated := s.Bound(1.5)

			require.True(t, inflated.Min().X <= real.Min().X)
			require.True(t, inflated.Min().Y <= real.Min().Y)
			require.True(t, inflated.Min().Z <= real.Min().Z)
			require.True(t, inflated.Max().X >= real.Max().X)
			require.True(t, inflated.Max().Y >= real.Max().Y)
			require.True(t, inflated.Max().Z >= real.Max().Z)
		}
	})
}

func TestCtxRoundTrip(t *testing.T) {
	s := NewSphere(vec.Vec3{}, 1)
	s.Ctx = uint32(77)

	var asShape Shape = s
	require.Equal(t, uint32(77), asShape.(*Sphere).Ctx)
}
