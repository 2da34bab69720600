package battle

import (
	"fmt"
	"slices"

	"github.com/rocketscienceinc/battleships-backend/internal/apperror"
	"github.com/rocketscienceinc/battleships-backend/internal/entity"
)

// Round is one attacker's full firing allotment for a turn.
type Round struct {
	attacker  *entity.Ship
	schedule  []int
	firepower []int
	fired     []*entity.Salvo
	received  []*entity.Salvo
}

func newRound(attacker *entity.Ship) *Round {
	schedule := attacker.Firepower()
	return &Round{
		attacker:  attacker,
		schedule:  schedule,
		firepower: slices.Clone(schedule),
	}
}

func (that *Round) Attacker() *entity.Ship {
	return that.attacker
}

// Schedule returns the attacker's full schedule as it stood when the round was assigned.
func (that *Round) Schedule() []int {
	return slices.Clone(that.schedule)
}

// Firepower returns the salvo sizes still to be fired this round.
func (that *Round) Firepower() []int {
	return slices.Clone(that.firepower)
}

func (that *Round) Fired() []*entity.Salvo {
	return slices.Clone(that.fired)
}

func (that *Round) Received() []*entity.Salvo {
	return slices.Clone(that.received)
}

func (that *Round) IsComplete() bool {
	return len(that.firepower) == 0
}

// HasFired reports whether any salvo was fired, which locks the attacker in.
func (that *Round) HasFired() bool {
	return len(that.fired) > 0
}

// ReassignAttacker replaces the attacker and resets the budget to its schedule.
func (that *Round) ReassignAttacker(ship *entity.Ship) error {
	if that.HasFired() {
		return fmt.Errorf("%w: %s already fired", apperror.ErrAttackerLocked, that.attacker.ID)
	}

	that.attacker = ship
	that.schedule = ship.Firepower()
	that.firepower = slices.Clone(that.schedule)

	return nil
}

// CanFire reports whether the budget holds an entry of the given size.
func (that *Round) CanFire(size int) bool {
	return slices.Contains(that.firepower, size)
}

// RecordSalvoFired appends the salvo and consumes the budget entry equal to its
// shot count. Entries are matched by value, not position.
func (that *Round) RecordSalvoFired(salvo *entity.Salvo) error {
	idx := slices.Index(that.firepower, salvo.ShotCount())
	if idx < 0 {
		return fmt.Errorf("%w: size %d, remaining %v", apperror.ErrNoFirepowerEntry, salvo.ShotCount(), that.firepower)
	}

	that.firepower = slices.Delete(that.firepower, idx, idx+1)
	that.fired = append(that.fired, salvo)

	return nil
}

// RecordSalvoReceived logs a salvo the opponent fired at this side.
func (that *Round) RecordSalvoReceived(salvo *entity.Salvo) {
	that.received = append(that.received, salvo)
}
