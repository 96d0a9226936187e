package shape

import (
	"testing"

	"github.com/chewxy/math32"
	"github.com/stretchr/testify/require"

	"github.com/aukilabs/raidho/vec"
)

func rotatedAxes2D(deg float32) [2]vec.Vec2 {
	rad := deg * math32.Pi / 180
	c, s := math32.Cos(rad), math32.Sin(rad)
	return [2]vec.Vec2{
		{X: c, Y: s},
		{X: -s, Y: c},
	}
}

func TestOverlapCircleCircle(t *testing.T) {
	a := NewCircle(vec.Vec2{}, 1)

	require.True(t, Overlap2D(a, NewCircle(vec.Vec2{X: 2}, 1)))
	require.False(t, Overlap2D(a, NewCircle(vec.Vec2{X: 2.01}, 1)))
}

func TestOverlapRectRect(t *testing.T) {
	a := NewRect(vec.Vec2{}, vec.Vec2{X: 1, Y: 1})

	require.True(t, Overlap2D(a, NewRect(vec.Vec2{X: 2}, vec.Vec2{X: 1, Y: 1})))
	require.False(t, Overlap2D(a, NewRect(vec.Vec2{X: 2.1}, vec.Vec2{X: 1, Y: 1})))
}

func TestOverlapRectCircle(t *testing.T) {
	r := NewRect(vec.Vec2{}, vec.Vec2{X: 1, Y: 1})

	require.True(t, Overlap2D(r, NewCircle(vec.Vec2{X: 1.5}, 1)))
	require.False(t, Overlap2D(r, NewCircle(vec.Vec2{X: 2.5}, 1)))

	// Corner distance decides near the vertex.
	require.False(t, Overlap2D(r, NewCircle(vec.Vec2{X: 1.7, Y: 1.7}, 0.9)))
}

func TestOverlapCapsule2D(t *testing.T) {
	capsule := NewCapsule2D(vec.Vec2{Y: -1}, vec.Vec2{Y: 1}, 0.5)

	t.Run("against circle", func(t *testing.T) {
		require.True(t, Overlap2D(capsule, NewCircle(vec.Vec2{X: 1.5}, 1)))
		require.False(t, Overlap2D(capsule, NewCircle(vec.Vec2{X: 1.6}, 1)))
	})

	t.Run("against rect", func(t *testing.T) {
		require.True(t, Overlap2D(capsule, NewRect(vec.Vec2{X: 1.4}, vec.Vec2{X: 1, Y: 1})))
		require.False(t, Overlap2D(capsule, NewRect(vec.Vec2{X: 2.6}, vec.Vec2{X: 1, Y: 1})))
	})

	t.Run("against capsule", func(t *testing.T) {
		other := NewCapsule2D(vec.Vec2{X: 0.9, Y: -1}, vec.Vec2{X: 0.9, Y: 1}, 0.5)
		require.True(t, Overlap2D(capsule, other))

		apart := NewCapsule2D(vec.Vec2{X: 1.1, Y: -1}, vec.Vec2{X: 1.1, Y: 1}, 0.5)
		require.False(t, Overlap2D(capsule, apart))
	})

	t.Run("degenerate endpoints act as a circle", func(t *testing.T) {
		point := NewCapsule2D(vec.Vec2{X: 0.9}, vec.Vec2{X: 0.9}, 0.5)
		require.True(t, Overlap2D(capsule, point))
	})
}

func TestOverlapBox2D(t *testing.T) {
	t.Run("against rect", func(t *testing.T) {
		box := NewBox2D(vec.Vec2{}, vec.Vec2{X: 1, Y: 1}, rotatedAxes2D(45))

		require.True(t, Overlap2D(box, NewRect(vec.Vec2{X: 2.3}, vec.Vec2{X: 1, Y: 1})))
		require.False(t, Overlap2D(box, NewRect(vec.Vec2{X: 2.5}, vec.Vec2{X: 1, Y: 1})))
	})

	t.Run("against box", func(t *testing.T) {
		a := NewBox2D(vec.Vec2{}, vec.Vec2{X: 1, Y: 1}, rotatedAxes2D(45))
		b := NewBox2D(vec.Vec2{X: 2.3}, vec.Vec2{X: 1, Y: 1}, WorldAxes2D())
		c := NewBox2D(vec.Vec2{X: 2.5}, vec.Vec2{X: 1, Y: 1}, WorldAxes2D())

		require.True(t, Overlap2D(a, b))
		require.False(t, Overlap2D(a, c))
	})

	t.Run("against circle", func(t *testing.T) {
		box := NewBox2D(vec.Vec2{}, vec.Vec2{X: 2, Y: 1}, rotatedAxes2D(90))

		// Rotated 90 degrees: the long side now spans y.
		require.True(t, Overlap2D(box, NewCircle(vec.Vec2{Y: 2.5}, 1)))
		require.False(t, Overlap2D(box, NewCircle(vec.Vec2{X: 2.5}, 1)))
	})

	t.Run("against capsule", func(t *testing.T) {
		box := NewBox2D(vec.Vec2{}, vec.Vec2{X: 1, Y: 1}, WorldAxes2D())

		near := NewCapsule2D(vec.Vec2{X: 1.4, Y: -1}, vec.Vec2{X: 1.4, Y: 1}, 0.5)
		require.True(t, Overlap2D(box, near))

		far := NewCapsule2D(vec.Vec2{X: 2.6, Y: -1}, vec.Vec2{X: 2.6, Y: 1}, 0.5)
		require.False(t, Overlap2D(box, far))

		crossing := NewCapsule2D(vec.Vec2{X: -2}, vec.Vec2{X: 2}, 0.1)
		require.True(t, Overlap2D(box, crossing))
	})
}

func TestOverlap2DSymmetry(t *testing.T) {
	circle := NewCircle(vec.Vec2{X: 0.5}, 1)
	rect := NewRect(vec.Vec2{X: 1}, vec.Vec2{X: 1, Y: 1})
	box := NewBox2D(vec.Vec2{X: -0.5}, vec.Vec2{X: 1, Y: 1}, rotatedAxes2D(30))
	capsule := NewCapsule2D(vec.Vec2{Y: -1}, vec.Vec2{Y: 1}, 0.75)
	farCircle := NewCircle(vec.Vec2{X: 50}, 1)

	shapes := []Shape2D{circle, rect, box, capsule, farCircle}

	for i, a := range shapes {
		for j, b := range shapes {
			if i == j {
				continue
			}
			require.Equal(t, Overlap2D(a, b), Overlap2D(b, a),
				"overlap2d(%d,%d) is not symmetric", i, j)
		}
	}
}

func TestContainsPoint2D(t *testing.T) {
	require.True(t, ContainsPoint2D(NewCircle(vec.Vec2{X: 1}, 0.5), vec.Vec2{X: 1}))
	require.True(t, ContainsPoint2D(NewRect(vec.Vec2{}, vec.Vec2{X: 1, Y: 1}), vec.Vec2{X: 1, Y: 1}))
	require.True(t, ContainsPoint2D(NewBox2D(vec.Vec2{}, vec.Vec2{X: 1, Y: 1}, rotatedAxes2D(45)), vec.Vec2{}))
	require.True(t, ContainsPoint2D(NewCapsule2D(vec.Vec2{Y: -1}, vec.Vec2{Y: 1}, 0.5), vec.Vec2{X: 0.5}))

	require.False(t, ContainsPoint2D(NewCircle(vec.Vec2{}, 1), vec.Vec2{X: 1.01}))
	require.False(t, ContainsPoint2D(NewBox2D(vec.Vec2{}, vec.Vec2{X: 1, Y: 1}, rotatedAxes2D(45)), vec.Vec2{X: 1.2, Y: 1.2}))
}

func TestBound2D(t *testing.T) {
	t.Run("circle", func(t *testing.T) {
		c := NewCircle(vec.Vec2{X: 1, Y: 2}, 2)
		b := c.Bound(1)
		require.Equal(t, vec.Vec2{X: 1, Y: 2}, b.Center)
		require.Equal(t, vec.Vec2{X: 2, Y: 2}, b.HalfExtents)
	})

	t.Run("rect is identity", func(t *testing.T) {
		r := NewRect(vec.Vec2{X: 3}, vec.Vec2{X: 1, Y: 2})
		b := r.Bound(1)
		require.Equal(t, r.Center, b.Center)
		require.Equal(t, r.HalfExtents, b.HalfExtents)
	})

	t.Run("rotated box bound covers the corners", func(t *testing.T) {
		box := NewBox2D(vec.Vec2{}, vec.Vec2{X: 1, Y: 1}, rotatedAxes2D(45))
		b := box.Bound(1)
		sqrt2 := math32.Sqrt(2)
		require.InDelta(t, sqrt2, b.HalfExtents.X, 1e-5)
		require.InDelta(t, sqrt2, b.HalfExtents.Y, 1e-5)
	})

	t.Run("capsule bound spans segment plus radius", func(t *testing.T) {
		c := NewCapsule2D(vec.Vec2{Y: -1}, vec.Vec2{Y: 1}, 0.5)
		b := c.Bound(1)
		require.Equal(t, vec.Vec2{}, b.Center)
		require.Equal(t, vec.Vec2{X: 0.5, Y: 1.5}, b.HalfExtents)
	})

	t.Run("inflated bound contains the real bound", func(t *testing.T) {
		shapes := []Shape2D{
			NewCircle(vec.Vec2{X: 1}, 2),
			NewRect(vec.Vec2{Y: -1}, vec.Vec2{X: 1, Y: 2}),
			NewBox2D(vec.Vec2{X: 4}, vec.Vec2{X: 1, Y: 1}, rotatedAxes2D(30)),
			NewCapsule2D(vec.Vec2{X: -1}, vec.Vec2{X: 1, Y: 2}, 0.5),
		}

		for _, s := range shapes {
			real := s.Bound(1)
			inflated := s.Bound(2)

			require.True(t, inflated.Min().X <= real.Min().X)
			require.True(t, inflated.Min().Y <= real.Min().Y)
			require.True(t, inflated.Max().X >= real.Max().X)
			require.True(t, inflated.Max().Y >= real.Max().Y)
		}
	})
}
