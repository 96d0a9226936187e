// Package broadphase implements sparse uniform-grid spatial indexes over
// the primitive shapes, in 3D and 2D.
//
// Shapes are indexed by the grid cells their inflated bound occupies and
// are held non-owningly: a shape must be removed before the caller
// destroys it. Candidate queries return supersets that a narrow phase
// must refine. A broadphase is not safe for concurrent use.
package broadphase

import (
	"github.com/chewxy/math32"

	"github.com/aukilabs/raidho/featureflag"
	"github.com/aukilabs/raidho/raycast"
	"github.com/aukilabs/raidho/shape"
	"github.com/aukilabs/raidho/vec"
)

type config struct {
	scaleFactor float32
	flags       featureflag.FeatureFlag
}

type Option func(*config)

// WithScaleFactor sets the bound inflation used for indexing. Values
// below 1 are clamped to 1.
func WithScaleFactor(s float32) Option {
	return func(c *config) {
		if s < 1 {
			s = 1
		}
		c.scaleFactor = s
	}
}

// WithFeatureFlags installs the feature flags consulted by the index.
func WithFeatureFlags(f featureflag.FeatureFlag) Option {
	return func(c *config) {
		c.flags = f
	}
}

type cell struct {
	shapes []shape.Shape
}

func (c *cell) add(s shape.Shape) {
	for _, existing := range c.shapes {
		if existing == s {
			return
		}
	}
	c.shapes = append(c.shapes, s)
}

func (c *cell) remove(s shape.Shape) {
	for i, existing := range c.shapes {
		if existing == s {
			c.shapes = append(c.shapes[:i], c.shapes[i+1:]...)
			return
		}
	}
}

// Broadphase is the 3D uniform grid index.
type Broadphase struct {
	cellSize    float32
	scaleFactor float32
	flags       featureflag.FeatureFlag

	grid        map[vec.Vec3i]*cell
	shapeBounds map[shape.Shape]shape.AABB
}

// New creates an index with the given cell size. Panics when cellSize is
// not strictly positive; callers must validate.
func New(cellSize float32, opts ...Option) *Broadphase {
	if cellSize <= 0 {
		panic("broadphase: cell size must be positive")
	}

	conf := config{scaleFactor: 1}
	for _, opt := range opts {
		opt(&conf)
	}

	return &Broadphase{
		cellSize:    cellSize,
		scaleFactor: conf.scaleFactor,
		flags:       conf.flags,
		grid:        make(map[vec.Vec3i]*cell),
		shapeBounds: make(map[shape.Shape]shape.AABB),
	}
}

func (bp *Broadphase) CellSize() float32 {
	return bp.cellSize
}

func (bp *Broadphase) ScaleFactor() float32 {
	return bp.scaleFactor
}

func (bp *Broadphase) positionToCell(pos vec.Vec3) vec.Vec3i {
	return vec.Vec3i{
		X: int32(math32.Floor(pos.X / bp.cellSize)),
		Y: int32(math32.Floor(pos.Y / bp.cellSize)),
		Z: int32(math32.Floor(pos.Z / bp.cellSize)),
	}
}

// cellRange returns the inclusive lattice range spanned by aabb.
func (bp *Broadphase) cellRange(aabb shape.AABB) (min, max vec.Vec3i) {
	return bp.positionToCell(aabb.Min()), bp.positionToCell(aabb.Max())
}

// occupiedCells enumerates the spanned cells in lexicographic x, y, z
// order.
func (bp *Broadphase) occupiedCells(aabb shape.AABB) []vec.Vec3i {
	minCell, maxCell := bp.cellRange(aabb)

	cells := make([]vec.Vec3i, 0,
		(maxCell.X-minCell.X+1)*(maxCell.Y-minCell.Y+1)*(maxCell.Z-minCell.Z+1))
	for x := minCell.X; x <= maxCell.X; x++ {
		for y := minCell.Y; y <= maxCell.Y; y++ {
			for z := minCell.Z; z <= maxCell.Z; z++ {
				cells = append(cells, vec.Vec3i{X: x, Y: y, Z: z})
			}
		}
	}

	return cells
}

// Contains reports whether s is currently indexed.
func (bp *Broadphase) Contains(s shape.Shape) bool {
	_, ok := bp.shapeBounds[s]
	return ok
}

// Update indexes s, or re-indexes it after a move. When the new inflated
// bound spans the same cells as the stored one, only the stored bound is
// rewritten.
func (bp *Broadphase) Update(s shape.Shape) {
	aabb := s.Bound(bp.scaleFactor)

	if old, ok := bp.shapeBounds[s]; ok {
		if !bp.flags.IsSet(featureflag.FlagDisableIndexFastPath) {
			oldMin, oldMax := bp.cellRange(old)
			newMin, newMax := bp.cellRange(aabb)
			if oldMin == newMin && oldMax == newMax {
				bp.shapeBounds[s] = aabb
				bp.instrumentUpdate()
				return
			}
		}

		oldCells := bp.occupiedCells(old)
		newCells := bp.occupiedCells(aabb)

		newSet := make(map[vec.Vec3i]struct{}, len(newCells))
		for _, c := range newCells {
			newSet[c] = struct{}{}
		}

		for _, key := range oldCells {
			if _, ok := newSet[key]; ok {
				continue
			}
			if gridCell, ok := bp.grid[key]; ok {
				gridCell.remove(s)
				if len(gridCell.shapes) == 0 {
					delete(bp.grid, key)
				}
			}
		}

		for _, key := range newCells {
			gridCell, ok := bp.grid[key]
			if !ok {
				gridCell = &cell{}
				bp.grid[key] = gridCell
			}
			gridCell.add(s)
		}

		bp.shapeBounds[s] = aabb
	} else {
		for _, key := range bp.occupiedCells(aabb) {
			gridCell, ok := bp.grid[key]
			if !ok {
				gridCell = &cell{}
				bp.grid[key] = gridCell
			}
			gridCell.shapes = append(gridCell.shapes, s)
		}
		bp.shapeBounds[s] = aabb
	}

	bp.instrumentUpdate()
}

// UpdateMany updates the given shapes in order.
func (bp *Broadphase) UpdateMany(shapes []shape.Shape) {
	for _, s := range shapes {
		bp.Update(s)
	}
}

// UpdateAll rebuilds the grid from scratch for every indexed shape,
// picking up bound changes made outside Update.
func (bp *Broadphase) UpdateAll() {
	bp.grid = make(map[vec.Vec3i]*cell)
	for s := range bp.shapeBounds {
		aabb := s.Bound(bp.scaleFactor)
		for _, key := range bp.occupiedCells(aabb) {
			gridCell, ok := bp.grid[key]
			if !ok {
				gridCell = &cell{}
				bp.grid[key] = gridCell
			}
			gridCell.add(s)
		}
		bp.shapeBounds[s] = aabb
	}

	bp.instrumentUpdate()
}

// Remove drops s from the index. Removing an unknown shape is a no-op.
func (bp *Broadphase) Remove(s shape.Shape) {
	old, ok := bp.shapeBounds[s]
	if !ok {
		return
	}

	for _, key := range bp.occupiedCells(old) {
		if gridCell, ok := bp.grid[key]; ok {
			gridCell.remove(s)
			if len(gridCell.shapes) == 0 {
				delete(bp.grid, key)
			}
		}
	}

	delete(bp.shapeBounds, s)
	bp.instrumentUpdate()
}

// Candidates returns the indexed shapes whose uninflated bound overlaps
// the uninflated bound of queryShape. The result never contains
// queryShape or duplicates; order follows the lexicographic cell sweep
// and, within a cell, insertion order.
func (bp *Broadphase) Candidates(queryShape shape.Shape) []shape.Shape {
	bp.instrumentQuery(queryKindShape)

	var result []shape.Shape
	unique := make(map[shape.Shape]struct{})

	queryAABB := queryShape.Bound(bp.scaleFactor)
	realQuery := queryShape.Bound(1)

	for _, key := range bp.occupiedCells(queryAABB) {
		gridCell, ok := bp.grid[key]
		if !ok {
			continue
		}

		for _, s := range gridCell.shapes {
			if s == queryShape {
				continue
			}
			if _, seen := unique[s]; seen {
				continue
			}

			realBound := s.Bound(1)
			if shape.Overlap(&realQuery, &realBound) {
				unique[s] = struct{}{}
				result = append(result, s)
			}
		}
	}

	return result
}

// CandidatesAlongRay returns the indexed shapes whose uninflated bound is
// hit by r within maxDistance, in grid traversal order. A zero-length
// direction yields no candidates.
func (bp *Broadphase) CandidatesAlongRay(r raycast.Ray, maxDistance float32) []shape.Shape {
	bp.instrumentQuery(queryKindRay)

	if r.Direction.LengthSq() == 0 {
		return nil
	}

	var result []shape.Shape
	unique := make(map[shape.Shape]struct{})

	for _, key := range bp.rayCells(r, maxDistance) {
		gridCell, ok := bp.grid[key]
		if !ok {
			continue
		}

		for _, s := range gridCell.shapes {
			if _, seen := unique[s]; seen {
				continue
			}

			realBound := s.Bound(1)
			out, err := raycast.Cast(r, &realBound)
			if err != nil {
				continue
			}
			if out.Hit && out.Distance <= maxDistance {
				unique[s] = struct{}{}
				result = append(result, s)
			}
		}
	}

	return result
}

// rayCells traverses the grid along r with the incremental DDA, stepping
// by the nearest cell boundary until the traversal parameter exceeds
// maxDistance. The direction is normalised so the parameter is measured
// in world units.
func (bp *Broadphase) rayCells(r raycast.Ray, maxDistance float32) []vec.Vec3i {
	cells := make([]vec.Vec3i, 0, 32)

	origin := r.Origin
	dir := r.Direction.Normalized()

	gridCell := bp.positionToCell(origin)

	var step vec.Vec3i
	var tMax vec.Vec3
	var tDelta vec.Vec3

	initAxis := func(originCoord, dirCoord float32, cellCoord int32) (int32, float32, float32) {
		switch {
		case dirCoord > 0:
			next := float32(cellCoord+1) * bp.cellSize
			return 1, (next - originCoord) / dirCoord, bp.cellSize / dirCoord
		case dirCoord < 0:
			next := float32(cellCoord) * bp.cellSize
			return -1, (next - originCoord) / dirCoord, -bp.cellSize / dirCoord
		default:
			inf := math32.Inf(1)
			return 0, inf, inf
		}
	}

	step.X, tMax.X, tDelta.X = initAxis(origin.X, dir.X, gridCell.X)
	step.Y, tMax.Y, tDelta.Y = initAxis(origin.Y, dir.Y, gridCell.Y)
	step.Z, tMax.Z, tDelta.Z = initAxis(origin.Z, dir.Z, gridCell.Z)

	t := float32(0)

	for t <= maxDistance {
		cells = append(cells, gridCell)

		if tMax.X < tMax.Y {
			if tMax.X < tMax.Z {
				gridCell.X += step.X
				t = tMax.X
				tMax.X += tDelta.X
			} else {
				gridCell.Z += step.Z
				t = tMax.Z
				tMax.Z += tDelta.Z
			}
		} else {
			if tMax.Y < tMax.Z {
				gridCell.Y += step.Y
				t = tMax.Y
				tMax.Y += tDelta.Y
			} else {
				gridCell.Z += step.Z
				t = tMax.Z
				tMax.Z += tDelta.Z
			}
		}
	}

	return cells
}

func (bp *Broadphase) instrumentUpdate() {
	bp.flags.IfNotSet(featureflag.FlagDisableInstrumentation, func() {
		instrumentUpdate(dimension3D)
		instrumentIndexSize(dimension3D, len(bp.shapeBounds), len(bp.grid))
	})
}

func (bp *Broadphase) instrumentQuery(kind string) {
	bp.flags.IfNotSet(featureflag.FlagDisableInstrumentation, func() {
		instrumentQuery(dimension3D, kind)
	})
}
