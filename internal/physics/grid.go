package physics

import (
	"math"
	"slices"
)

// SpatialGrid buckets indices by position on a bounded playfield so a collision
// pass only compares objects in neighbouring cells.
//
// The cell size must be at least the largest distance at which two objects can
// collide; then every candidate lies in the 3x3 block around a query point.
// Positions off the playfield land in the nearest border cell, so objects
// still entering from an edge are found too.
type SpatialGrid struct {
	size       float64
	cols, rows int
	buckets    [][]int // Row-major; slices are truncated, not freed, by Clear
	found      []int
}

// NewSpatialGrid covers a width x height playfield with square cells of cellSize.
func NewSpatialGrid(width, height, cellSize float64) *SpatialGrid {
	cols := max(int(math.Ceil(width/cellSize)), 1)
	rows := max(int(math.Ceil(height/cellSize)), 1)
	return &SpatialGrid{
		size:    cellSize,
		cols:    cols,
		rows:    rows,
		buckets: make([][]int, cols*rows),
	}
}

// Clear empties every cell and keeps the memory for the next frame.
func (g *SpatialGrid) Clear() {
	for i := range g.buckets {
		g.buckets[i] = g.buckets[i][:0]
	}
}

// Insert files index under the cell containing (x, y).
func (g *SpatialGrid) Insert(x, y float64, index int) {
	b := g.bucket(x, y)
	g.buckets[b] = append(g.buckets[b], index)
}

// Nearby returns every index filed in the 3x3 block around (x, y), ascending,
// so callers see candidates in insertion order. The slice is reused by the next call.
func (g *SpatialGrid) Nearby(x, y float64) []int {
	col, row := g.cell(x, y)
	g.found = g.found[:0]

	for r := max(row-1, 0); r <= min(row+1, g.rows-1); r++ {
		for c := max(col-1, 0); c <= min(col+1, g.cols-1); c++ {
			g.found = append(g.found, g.buckets[r*g.cols+c]...)
		}
	}

	slices.Sort(g.found)
	return g.found
}

func (g *SpatialGrid) bucket(x, y float64) int {
	col, row := g.cell(x, y)
	return row*g.cols + col
}

// cell maps a position to its column and row, clamped to the grid.
func (g *SpatialGrid) cell(x, y float64) (col, row int) {
	col = min(max(int(math.Floor(x/g.size)), 0), g.cols-1)
	row = min(max(int(math.Floor(y/g.size)), 0), g.rows-1)
	return col, row
}
