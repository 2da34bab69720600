package battle

import (
	"slices"

	"github.com/rocketscienceinc/battleships-backend/internal/apperror"
	"github.com/rocketscienceinc/battleships-backend/internal/entity"
)

// Turn is a sequence of rounds, one per attacker still eligible this turn.
// The eligibility queue keeps the order ships were enumerated at turn start
// and only ever shrinks.
type Turn struct {
	board     entity.BoardModel
	attackers []*entity.Ship
	rounds    []*Round
	snapshots []entity.BoardModel
}

func newTurn(board entity.BoardModel) (*Turn, error) {
	attackers := board.Unsunk()
	if len(attackers) == 0 {
		return nil, apperror.ErrNoAttackers
	}

	return &Turn{
		board:     board,
		attackers: attackers,
		rounds:    []*Round{newRound(attackers[0])},
		snapshots: []entity.BoardModel{board.Clone()},
	}, nil
}

// Round returns the round in progress.
func (that *Turn) Round() *Round {
	return that.rounds[len(that.rounds)-1]
}

func (that *Turn) Rounds() []*Round {
	return slices.Clone(that.rounds)
}

// Attackers returns the eligibility queue.
func (that *Turn) Attackers() []*entity.Ship {
	return slices.Clone(that.attackers)
}

// Snapshots returns the board copies taken at turn start and at every round boundary.
func (that *Turn) Snapshots() []entity.BoardModel {
	return slices.Clone(that.snapshots)
}

func (that *Turn) IsEligible(ship *entity.Ship) bool {
	return slices.Contains(that.attackers, ship)
}

// StartNewRound drops the finished round's attacker from the queue, snapshots
// the board and opens a round for the next queue head. When nobody is left the
// turn is over; the queue is left untouched and ErrNoAttackers is returned.
func (that *Turn) StartNewRound() error {
	current := that.Round().Attacker()
	remaining := slices.DeleteFunc(slices.Clone(that.attackers), func(ship *entity.Ship) bool {
		return ship == current
	})

	if len(remaining) == 0 {
		return apperror.ErrNoAttackers
	}

	that.attackers = remaining
	that.snapshots = append(that.snapshots, that.board.Clone())
	that.rounds = append(that.rounds, newRound(remaining[0]))

	return nil
}

// PruneSunkAttackers removes queued attackers sunk by counter-fire since the
// queue was built.
func (that *Turn) PruneSunkAttackers() {
	afloat := that.board.Unsunk()
	that.attackers = slices.DeleteFunc(that.attackers, func(ship *entity.Ship) bool {
		return !slices.Contains(afloat, ship)
	})
}

// remainingAfterCurrent counts queued attackers other than the round's own.
func (that *Turn) remainingAfterCurrent() int {
	current := that.Round().Attacker()
	count := 0
	for _, ship := range that.attackers {
		if ship != current {
			count++
		}
	}
	return count
}
