package broadphase

import (
	"github.com/chewxy/math32"

	"github.com/aukilabs/raidho/featureflag"
	"github.com/aukilabs/raidho/raycast"
	"github.com/aukilabs/raidho/shape"
	"github.com/aukilabs/raidho/vec"
)

type cell2D struct {
	shapes []shape.Shape2D
}

func (c *cell2D) add(s shape.Shape2D) {
	for _, existing := range c.shapes {
		if existing == s {
			return
		}
	}
	c.shapes = append(c.shapes, s)
}

func (c *cell2D) remove(s shape.Shape2D) {
	for i, existing := range c.shapes {
		if existing == s {
			c.shapes = append(c.shapes[:i], c.shapes[i+1:]...)
			return
		}
	}
}

// Broadphase2D is the 2D uniform grid index, mirroring Broadphase.
type Broadphase2D struct {
	cellSize    float32
	scaleFactor float32
	flags       featureflag.FeatureFlag

	grid        map[vec.Vec2i]*cell2D
	shapeBounds map[shape.Shape2D]shape.Rect
}

// New2D creates an index with the given cell size. Panics when cellSize
// is not strictly positive; callers must validate.
func New2D(cellSize float32, opts ...Option) *Broadphase2D {
	if cellSize <= 0 {
		panic("broadphase: cell size must be positive")
	}

	conf := config{scaleFactor: 1}
	for _, opt := range opts {
		opt(&conf)
	}

	return &Broadphase2D{
		cellSize:    cellSize,
		scaleFactor: conf.scaleFactor,
		flags:       conf.flags,
		grid:        make(map[vec.Vec2i]*cell2D),
		shapeBounds: make(map[shape.Shape2D]shape.Rect),
	}
}

func (bp *Broadphase2D) CellSize() float32 {
	return bp.cellSize
}

func (bp *Broadphase2D) ScaleFactor() float32 {
	return bp.scaleFactor
}

func (bp *Broadphase2D) positionToCell(pos vec.Vec2) vec.Vec2i {
	return vec.Vec2i{
		X: int32(math32.Floor(pos.X / bp.cellSize)),
		Y: int32(math32.Floor(pos.Y / bp.cellSize)),
	}
}

func (bp *Broadphase2D) cellRange(rect shape.Rect) (min, max vec.Vec2i) {
	return bp.positionToCell(rect.Min()), bp.positionToCell(rect.Max())
}

func (bp *Broadphase2D) occupiedCells(rect shape.Rect) []vec.Vec2i {
	minCell, maxCell := bp.cellRange(rect)

	cells := make([]vec.Vec2i, 0,
		(maxCell.X-minCell.X+1)*(maxCell.Y-minCell.Y+1))
	for x := minCell.X; x <= maxCell.X; x++ {
		for y := minCell.Y; y <= maxCell.Y; y++ {
			cells = append(cells, vec.Vec2i{X: x, Y: y})
		}
	}

	return cells
}

// Contains reports whether s is currently indexed.
func (bp *Broadphase2D) Contains(s shape.Shape2D) bool {
	_, ok := bp.shapeBounds[s]
	return ok
}

// Update indexes s, or re-indexes it after a move. When the new inflated
// bound spans the same cells as the stored one, only the stored bound is
// rewritten.
func (bp *Broadphase2D) Update(s shape.Shape2D) {
	rect := s.Bound(bp.scaleFactor)

	if old, ok := bp.shapeBounds[s]; ok {
		if !bp.flags.IsSet(featureflag.FlagDisableIndexFastPath) {
			oldMin, oldMax := bp.cellRange(old)
			newMin, newMax := bp.cellRange(rect)
			if oldMin == newMin && oldMax == newMax {
				bp.shapeBounds[s] = rect
				bp.instrumentUpdate()
				return
			}
		}

		oldCells := bp.occupiedCells(old)
		newCells := bp.occupiedCells(rect)

		newSet := make(map[vec.Vec2i]struct{}, len(newCells))
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
				gridCell = &cell2D{}
				bp.grid[key] = gridCell
			}
			gridCell.add(s)
		}

		bp.shapeBounds[s] = rect
	} else {
		for _, key := range bp.occupiedCells(rect) {
			gridCell, ok := bp.grid[key]
			if !ok {
				gridCell = &cell2D{}
				bp.grid[key] = gridCell
			}
			gridCell.shapes = append(gridCell.shapes, s)
		}
		bp.shapeBounds[s] = rect
	}

	bp.instrumentUpdate()
}

// UpdateMany updates the given shapes in order.
func (bp *Broadphase2D) UpdateMany(shapes []shape.Shape2D) {
	for _, s := range shapes {
		bp.Update(s)
	}
}

// UpdateAll rebuilds the grid from scratch for every indexed shape,
// picking up bound changes made outside Update.
func (bp *Broadphase2D) UpdateAll() {
	bp.grid = make(map[vec.Vec2i]*cell2D)
	for s := range bp.shapeBounds {
		rect := s.Bound(bp.scaleFactor)
		for _, key := range bp.occupiedCells(rect) {
			gridCell, ok := bp.grid[key]
			if !ok {
				gridCell = &cell2D{}
				bp.grid[key] = gridCell
			}
			gridCell.add(s)
		}
		bp.shapeBounds[s] = rect
	}

	bp.instrumentUpdate()
}

// Remove drops s from the index. Removing an unknown shape is a no-op.
func (bp *Broadphase2D) Remove(s shape.Shape2D) {
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
// queryShape or duplicates.
func (bp *Broadphase2D) Candidates(queryShape shape.Shape2D) []shape.Shape2D {
	bp.instrumentQuery(queryKindShape)

	var result []shape.Shape2D
	unique := make(map[shape.Shape2D]struct{})

	queryRect := queryShape.Bound(bp.scaleFactor)
	realQuery := queryShape.Bound(1)

	for _, key := range bp.occupiedCells(queryRect) {
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
			if shape.Overlap2D(&realQuery, &realBound) {
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
func (bp *Broadphase2D) CandidatesAlongRay(r raycast.Ray2D, maxDistance float32) []shape.Shape2D {
	bp.instrumentQuery(queryKindRay)

	if r.Direction.LengthSq() == 0 {
		return nil
	}

	var result []shape.Shape2D
	unique := make(map[shape.Shape2D]struct{})

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
			out, err := raycast.Cast2D(r, &realBound)
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

// rayCells is the two-axis variant of the grid DDA.
func (bp *Broadphase2D) rayCells(r raycast.Ray2D, maxDistance float32) []vec.Vec2i {
	cells := make([]vec.Vec2i, 0, 16)

	origin := r.Origin
	dir := r.Direction.Normalized()

	gridCell := bp.positionToCell(origin)

	var step vec.Vec2i
	var tMax vec.Vec2
	var tDelta vec.Vec2

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

	t := float32(0)

	for t <= maxDistance {
		cells = append(cells, gridCell)

		if tMax.X < tMax.Y {
			gridCell.X += step.X
			t = tMax.X
			tMax.X += tDelta.X
		} else {
			gridCell.Y += step.Y
			t = tMax.Y
			tMax.Y += tDelta.Y
		}
	}

	return cells
}

func (bp *Broadphase2D) instrumentUpdate() {
	bp.flags.IfNotSet(featureflag.FlagDisableInstrumentation, func() {
		instrumentUpdate(dimension2D)
		instrumentIndexSize(dimension2D, len(bp.shapeBounds), len(bp.grid))
	})
}

func (bp *Broadphase2D) instrumentQuery(kind string) {
	bp.flags.IfNotSet(featureflag.FlagDisableInstrumentation, func() {
		instrumentQuery(dimension2D, kind)
	})
}
