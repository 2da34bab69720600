package entity

import "fmt"

type Cell struct {
	Col int `json:"col"`
	Row int `json:"row"`
}

func (that Cell) String() string {
	return fmt.Sprintf("(%d,%d)", that.Col, that.Row)
}

type Direction string

const (
	East  Direction = "E"
	South Direction = "S"
	West  Direction = "W"
	North Direction = "N"
)

// Directions lists the orthogonal directions in lookup order.
var Directions = []Direction{East, South, West, North}

// Step returns the cell one step away in the given direction without bounds checking.
func (that Cell) Step(dir Direction) Cell {
	switch dir {
	case East:
		return Cell{Col: that.Col + 1, Row: that.Row}
	case South:
		return Cell{Col: that.Col, Row: that.Row + 1}
	case West:
		return Cell{Col: that.Col - 1, Row: that.Row}
	case North:
		return Cell{Col: that.Col, Row: that.Row - 1}
	default:
		return that
	}
}

// Around returns the eight cells surrounding c, bounds unchecked.
func (that Cell) Around() []Cell {
	cells := make([]Cell, 0, 8)
	for dr := -1; dr <= 1; dr++ {
		for dc := -1; dc <= 1; dc++ {
			if dr == 0 && dc == 0 {
				continue
			}
			cells = append(cells, Cell{Col: that.Col + dc, Row: that.Row + dr})
		}
	}
	return cells
}

type Marker string

const (
	MarkerUnvisited Marker = "unvisited"
	MarkerShip      Marker = "ship"
	MarkerMiss      Marker = "miss"
	MarkerHit       Marker = "hit"
	MarkerSunk      Marker = "sunk"
	MarkerBoundary  Marker = "boundary"

	// MarkerNone pads the outcome list of a salvo whose shape ran off the grid.
	MarkerNone Marker = "none"
)

// IsVisited reports whether a shot has already landed on a cell with this marker.
func (that Marker) IsVisited() bool {
	return that == MarkerMiss || that == MarkerHit || that == MarkerSunk
}
