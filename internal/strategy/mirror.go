package strategy

import (
	"github.com/rocketscienceinc/battleships-backend/internal/entity"
)

type Mode string

const (
	ModeHunting   Mode = "hunting"
	ModeTargeting Mode = "targeting"
)

// Mirror is what one side knows about the opponent's board. It is built from
// the public markers of the board and then only updated from salvo outcomes.
type Mirror struct {
	width   int
	height  int
	markers [][]entity.Marker
}

type grid interface {
	Width() int
	Height() int
	Markers() [][]entity.Marker
}

func NewMirror(board grid) *Mirror {
	known := board.Markers()
	for _, row := range known {
		for col, marker := range row {
			if marker == entity.MarkerShip {
				row[col] = entity.MarkerUnvisited
			}
		}
	}

	return &Mirror{width: board.Width(), height: board.Height(), markers: known}
}

func (that *Mirror) inBounds(cell entity.Cell) bool {
	return cell.Col >= 0 && cell.Col < that.width && cell.Row >= 0 && cell.Row < that.height
}

func (that *Mirror) Marker(cell entity.Cell) entity.Marker {
	if !that.inBounds(cell) {
		return entity.MarkerNone
	}
	return that.markers[cell.Row][cell.Col]
}

// Unvisited returns every cell no shot has landed on, rows first.
func (that *Mirror) Unvisited() []entity.Cell {
	return that.collect(func(marker entity.Marker) bool { return !marker.IsVisited() })
}

// Hits returns cells hit on ships not yet sunk.
func (that *Mirror) Hits() []entity.Cell {
	return that.collect(func(marker entity.Marker) bool { return marker == entity.MarkerHit })
}

func (that *Mirror) Mode() Mode {
	if len(that.Hits()) > 0 {
		return ModeTargeting
	}
	return ModeHunting
}

// Record folds a fired salvo and the ships it sank into the mirror.
func (that *Mirror) Record(salvo *entity.Salvo, sunk []*entity.Ship) {
	for i, cell := range salvo.Cells {
		if that.inBounds(cell) {
			that.markers[cell.Row][cell.Col] = salvo.Outcomes[i]
		}
	}

	for _, ship := range sunk {
		for _, cell := range ship.Cells {
			that.markers[cell.Row][cell.Col] = entity.MarkerSunk
		}
		for _, cell := range ship.Cells {
			for _, near := range cell.Around() {
				if that.inBounds(near) && that.markers[near.Row][near.Col] == entity.MarkerUnvisited {
					that.markers[near.Row][near.Col] = entity.MarkerBoundary
				}
			}
		}
	}
}

func (that *Mirror) collect(keep func(entity.Marker) bool) []entity.Cell {
	var cells []entity.Cell
	for row := range that.markers {
		for col, marker := range that.markers[row] {
			if keep(marker) {
				cells = append(cells, entity.Cell{Col: col, Row: row})
			}
		}
	}
	return cells
}
