package entity

import (
	"errors"
	"fmt"
	"math/rand"
)

const maxPlacementAttempts = 1000

var ErrFleetDoesNotFit = errors.New("fleet does not fit on the board")

// PlaceFleet places one straight ship per size at random positions. Ships are
// named by their index so that placement order is also enumeration order.
func PlaceFleet(board *Board, sizes []int, rnd *rand.Rand) error {
	for i, size := range sizes {
		id := fmt.Sprintf("ship-%d", i+1)

		placed := false
		for attempt := 0; attempt < maxPlacementAttempts && !placed; attempt++ {
			dir := East
			if rnd.Intn(2) == 1 { //nolint: gosec // placement does not need crypto randomness
				dir = South
			}

			origin := Cell{Col: rnd.Intn(board.Width()), Row: rnd.Intn(board.Height())} //nolint: gosec // same as above
			cells := make([]Cell, 0, size)
			for cell := origin; len(cells) < size; cell = cell.Step(dir) {
				cells = append(cells, cell)
			}

			placed = board.Place(NewShip(id, cells)) == nil
		}

		if !placed {
			return fmt.Errorf("%w: %s of size %d", ErrFleetDoesNotFit, id, size)
		}
	}

	return nil
}
