package entity

import (
	"fmt"

	"github.com/rocketscienceinc/battleships-backend/internal/apperror"
)

// Shape is the orientation of a salvo around its anchor cell.
type Shape string

const (
	ShapeSingle          Shape = "single"
	ShapePairRight       Shape = "pair-right"
	ShapePairDown        Shape = "pair-down"
	ShapePairLeft        Shape = "pair-left"
	ShapePairUp          Shape = "pair-up"
	ShapeLineHorizontal  Shape = "line-horizontal"
	ShapeLineVertical    Shape = "line-vertical"
	ShapeCornerNorthEast Shape = "corner-north-east"
	ShapeCornerSouthEast Shape = "corner-south-east"
	ShapeCornerSouthWest Shape = "corner-south-west"
	ShapeCornerNorthWest Shape = "corner-north-west"
)

// MaxSalvoSize is the largest salvo a shape exists for.
const MaxSalvoSize = 3

var shapeDirections = map[Shape][]Direction{
	ShapeSingle:          {},
	ShapePairRight:       {East},
	ShapePairDown:        {South},
	ShapePairLeft:        {West},
	ShapePairUp:          {North},
	ShapeLineHorizontal:  {East, West},
	ShapeLineVertical:    {South, North},
	ShapeCornerNorthEast: {East, North},
	ShapeCornerSouthEast: {East, South},
	ShapeCornerSouthWest: {South, West},
	ShapeCornerNorthWest: {West, North},
}

// shapesBySize keeps the enumeration order used to break scoring ties.
var shapesBySize = [][]Shape{
	1: {ShapeSingle},
	2: {ShapePairRight, ShapePairDown, ShapePairLeft, ShapePairUp},
	3: {
		ShapeLineHorizontal, ShapeLineVertical,
		ShapeCornerNorthEast, ShapeCornerSouthEast, ShapeCornerSouthWest, ShapeCornerNorthWest,
	},
}

// Neighborer looks up the in-bounds orthogonal neighbour of a cell.
type Neighborer interface {
	Neighbor(cell Cell, dir Direction) (Cell, bool)
}

// ShapesFor returns every shape of the given nominal size in enumeration order.
func ShapesFor(size int) ([]Shape, error) {
	if size < 1 || size > MaxSalvoSize {
		return nil, fmt.Errorf("%w: %d", apperror.ErrUnsupportedSize, size)
	}

	shapes := make([]Shape, len(shapesBySize[size]))
	copy(shapes, shapesBySize[size])

	return shapes, nil
}

func (that Shape) IsValid() bool {
	_, ok := shapeDirections[that]
	return ok
}

// Size is the nominal number of shots of the shape.
func (that Shape) Size() int {
	dirs, ok := shapeDirections[that]
	if !ok {
		return 0
	}
	return len(dirs) + 1
}

// Cells returns the anchor followed by every in-bounds member of the shape.
// Members that would fall off the grid are left out.
func (that Shape) Cells(anchor Cell, grid Neighborer) []Cell {
	cells := []Cell{anchor}
	for _, dir := range shapeDirections[that] {
		if neighbor, ok := grid.Neighbor(anchor, dir); ok {
			cells = append(cells, neighbor)
		}
	}
	return cells
}
