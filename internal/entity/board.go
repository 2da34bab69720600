package entity

import (
	"errors"
	"fmt"

	"github.com/rocketscienceinc/battleships-backend/internal/apperror"
)

var (
	ErrInvalidDimensions = errors.New("board dimensions must be positive")
	ErrCellOccupied      = errors.New("cell is already occupied")
	ErrShipTouching      = errors.New("ship touches another ship")
	ErrEmptyShip         = errors.New("ship has no cells")
)

// BoardModel is everything the rules engine needs from a board. The engine
// never reaches past it, so any board honouring these semantics can be used.
type BoardModel interface {
	Neighborer
	Width() int
	Height() int
	InBounds(cell Cell) bool
	// Markers enumerates the grid, rows first.
	Markers() [][]Marker
	// Fire applies a salvo atomically and reports per-cell markers and newly sunk ships.
	Fire(cells []Cell) ([]Marker, []*Ship, error)
	// Unsunk enumerates ships still afloat in a stable order.
	Unsunk() []*Ship
	// Clone returns an independent deep copy.
	Clone() BoardModel
}

// Board is an in-memory board: grid of markers plus the ships placed on it.
type Board struct {
	width   int
	height  int
	markers [][]Marker
	ships   []*Ship
}

func NewBoard(width, height int) (*Board, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, width, height)
	}

	markers := make([][]Marker, height)
	for row := range markers {
		markers[row] = make([]Marker, width)
		for col := range markers[row] {
			markers[row][col] = MarkerUnvisited
		}
	}

	return &Board{width: width, height: height, markers: markers}, nil
}

func (that *Board) Width() int  { return that.width }
func (that *Board) Height() int { return that.height }

func (that *Board) InBounds(cell Cell) bool {
	return cell.Col >= 0 && cell.Col < that.width && cell.Row >= 0 && cell.Row < that.height
}

func (that *Board) Neighbor(cell Cell, dir Direction) (Cell, bool) {
	neighbor := cell.Step(dir)
	if !that.InBounds(neighbor) {
		return Cell{}, false
	}
	return neighbor, true
}

func (that *Board) Marker(cell Cell) Marker {
	if !that.InBounds(cell) {
		return MarkerNone
	}
	return that.markers[cell.Row][cell.Col]
}

// Markers returns a copy of the grid, rows first.
func (that *Board) Markers() [][]Marker {
	grid := make([][]Marker, that.height)
	for row := range that.markers {
		grid[row] = make([]Marker, that.width)
		copy(grid[row], that.markers[row])
	}
	return grid
}

// Place puts a ship on the board. Ships may neither overlap nor touch, not even diagonally.
func (that *Board) Place(ship *Ship) error {
	if ship.Size() == 0 {
		return ErrEmptyShip
	}

	for _, cell := range ship.Cells {
		if !that.InBounds(cell) {
			return fmt.Errorf("%w: %s", apperror.ErrOutOfBounds, cell)
		}
		if that.shipAt(cell) != nil {
			return fmt.Errorf("%w: %s", ErrCellOccupied, cell)
		}
		for _, near := range cell.Around() {
			if other := that.shipAt(near); other != nil {
				return fmt.Errorf("%w: %s near %s", ErrShipTouching, ship.ID, other.ID)
			}
		}
	}

	that.ships = append(that.ships, ship)
	for _, cell := range ship.Cells {
		that.markers[cell.Row][cell.Col] = MarkerShip
	}

	return nil
}

// Fire applies shots to the listed cells and returns the resulting marker per
// cell together with the ships the shots sank. Either every cell is applied or,
// when one is out of bounds, none is.
func (that *Board) Fire(cells []Cell) ([]Marker, []*Ship, error) {
	for _, cell := range cells {
		if !that.InBounds(cell) {
			return nil, nil, fmt.Errorf("%w: %s", apperror.ErrOutOfBounds, cell)
		}
	}

	outcomes := make([]Marker, 0, len(cells))
	var sunk []*Ship

	for _, cell := range cells {
		switch that.markers[cell.Row][cell.Col] {
		case MarkerUnvisited, MarkerBoundary:
			that.markers[cell.Row][cell.Col] = MarkerMiss
			outcomes = append(outcomes, MarkerMiss)
		case MarkerShip:
			ship := that.shipAt(cell)
			ship.Hits[ship.Occupies(cell)] = true
			that.markers[cell.Row][cell.Col] = MarkerHit
			outcomes = append(outcomes, MarkerHit)

			if ship.IsSunk() {
				that.sink(ship)
				sunk = append(sunk, ship)
				outcomes[len(outcomes)-1] = MarkerSunk
			}
		default:
			outcomes = append(outcomes, that.markers[cell.Row][cell.Col])
		}
	}

	return outcomes, sunk, nil
}

// Ships returns every ship in placement order.
func (that *Board) Ships() []*Ship {
	ships := make([]*Ship, len(that.ships))
	copy(ships, that.ships)
	return ships
}

// Unsunk returns the ships still afloat in placement order.
func (that *Board) Unsunk() []*Ship {
	ships := make([]*Ship, 0, len(that.ships))
	for _, ship := range that.ships {
		if !ship.IsSunk() {
			ships = append(ships, ship)
		}
	}
	return ships
}

func (that *Board) Sunk() []*Ship {
	ships := make([]*Ship, 0, len(that.ships))
	for _, ship := range that.ships {
		if ship.IsSunk() {
			ships = append(ships, ship)
		}
	}
	return ships
}

// Clone returns a deep copy that shares nothing with the receiver.
func (that *Board) Clone() BoardModel {
	return that.clone()
}

func (that *Board) clone() *Board {
	ships := make([]*Ship, len(that.ships))
	for i, ship := range that.ships {
		ships[i] = ship.clone()
	}

	return &Board{
		width:   that.width,
		height:  that.height,
		markers: that.Markers(),
		ships:   ships,
	}
}

func (that *Board) sink(ship *Ship) {
	for _, cell := range ship.Cells {
		that.markers[cell.Row][cell.Col] = MarkerSunk
	}

	for _, cell := range ship.Cells {
		for _, near := range cell.Around() {
			if that.InBounds(near) && that.markers[near.Row][near.Col] == MarkerUnvisited {
				that.markers[near.Row][near.Col] = MarkerBoundary
			}
		}
	}
}

func (that *Board) shipAt(cell Cell) *Ship {
	for _, ship := range that.ships {
		if ship.Occupies(cell) >= 0 {
			return ship
		}
	}
	return nil
}
