package entity

// Ship is a vessel on a board. Its firepower shrinks as it takes hits.
// Victims lists the ids of opponent ships it sank, in sinking order.
type Ship struct {
	ID      string   `json:"id"`
	Cells   []Cell   `json:"cells"`
	Hits    []bool   `json:"hits"`
	Victims []string `json:"victims,omitempty"`
}

func NewShip(id string, cells []Cell) *Ship {
	return &Ship{
		ID:    id,
		Cells: cells,
		Hits:  make([]bool, len(cells)),
	}
}

func (that *Ship) Size() int {
	return len(that.Cells)
}

// Healthy returns the number of cells not hit yet.
func (that *Ship) Healthy() int {
	healthy := 0
	for _, hit := range that.Hits {
		if !hit {
			healthy++
		}
	}
	return healthy
}

func (that *Ship) IsSunk() bool {
	return that.Healthy() == 0
}

// Occupies reports the index of cell within the ship, or -1.
func (that *Ship) Occupies(cell Cell) int {
	for i, c := range that.Cells {
		if c == cell {
			return i
		}
	}
	return -1
}

// Firepower is the ship's per-round schedule of salvo sizes: its healthy cells
// split into salvos of at most MaxSalvoSize shots.
func (that *Ship) Firepower() []int {
	healthy := that.Healthy()
	schedule := make([]int, 0, healthy/MaxSalvoSize+1)
	for healthy > 0 {
		size := min(healthy, MaxSalvoSize)
		schedule = append(schedule, size)
		healthy -= size
	}
	return schedule
}

// TotalFirepower is the sum of the firepower schedule.
func (that *Ship) TotalFirepower() int {
	return that.Healthy()
}

// RecordVictim credits the ship with sinking victim.
func (that *Ship) RecordVictim(victim *Ship) {
	that.Victims = append(that.Victims, victim.ID)
}

func (that *Ship) clone() *Ship {
	cells := make([]Cell, len(that.Cells))
	copy(cells, that.Cells)
	hits := make([]bool, len(that.Hits))
	copy(hits, that.Hits)

	var victims []string
	if len(that.Victims) > 0 {
		victims = make([]string, len(that.Victims))
		copy(victims, that.Victims)
	}

	return &Ship{ID: that.ID, Cells: cells, Hits: hits, Victims: victims}
}
