package entity

// Salvo is one simultaneous attack sharing a shape.
type Salvo struct {
	AttackerID string   `json:"attacker_id"`
	Anchor     Cell     `json:"anchor"`
	Shape      Shape    `json:"shape"`
	Cells      []Cell   `json:"cells"`
	Outcomes   []Marker `json:"outcomes"`
}

// NewSalvo builds a salvo whose outcome list is padded with MarkerNone up to
// the nominal size, so the shot count matches the consumed firepower entry even
// when the shape was clipped by the grid edge.
func NewSalvo(attackerID string, anchor Cell, shape Shape, cells []Cell, outcomes []Marker, nominal int) *Salvo {
	padded := make([]Marker, 0, max(nominal, len(outcomes)))
	padded = append(padded, outcomes...)
	for len(padded) < nominal {
		padded = append(padded, MarkerNone)
	}

	return &Salvo{
		AttackerID: attackerID,
		Anchor:     anchor,
		Shape:      shape,
		Cells:      cells,
		Outcomes:   padded,
	}
}

// ShotCount is the nominal number of shots, clipped ones included.
func (that *Salvo) ShotCount() int {
	return len(that.Outcomes)
}

// Hits counts outcomes that struck a ship.
func (that *Salvo) Hits() int {
	hits := 0
	for _, outcome := range that.Outcomes {
		if outcome == MarkerHit || outcome == MarkerSunk {
			hits++
		}
	}
	return hits
}
