package battle

import (
	"fmt"
	"log/slog"
	"slices"

	"github.com/rocketscienceinc/battleships-backend/internal/apperror"
	"github.com/rocketscienceinc/battleships-backend/internal/entity"
)

// Progress tells where a game stands.
type Progress struct {
	Turn      int `json:"turn"`
	Round     int `json:"round"`
	Attackers int `json:"attackers"`
}

func (that Progress) String() string {
	return fmt.Sprintf("turn #%d / round #%d (%d)", that.Turn, that.Round, that.Attackers)
}

// Game is the sequence of turns one side plays over a match. Its board holds
// the side's own fleet: the attackers come from it.
type Game struct {
	logger   *slog.Logger
	listener Listener

	board   entity.BoardModel
	turns   []*Turn
	victims []*entity.Ship
	last    *Round
}

// NewGame opens the first turn. A nil listener discards notifications.
func NewGame(logger *slog.Logger, board entity.BoardModel, listener Listener) (*Game, error) {
	if listener == nil {
		listener = nopListener{}
	}

	turn, err := newTurn(board)
	if err != nil {
		return nil, fmt.Errorf("failed to open first turn: %w", err)
	}

	return &Game{
		logger:   logger.With("component", "game"),
		listener: listener,
		board:    board,
		turns:    []*Turn{turn},
	}, nil
}

func (that *Game) Board() entity.BoardModel {
	return that.board
}

func (that *Game) Turn() *Turn {
	return that.turns[len(that.turns)-1]
}

func (that *Game) Turns() []*Turn {
	return slices.Clone(that.turns)
}

func (that *Game) Round() *Round {
	return that.Turn().Round()
}

// LastRound returns the most recently completed round, nil before the first one.
func (that *Game) LastRound() *Round {
	return that.last
}

// Victims lists the opponent ships this side destroyed, in sinking order.
func (that *Game) Victims() []*entity.Ship {
	return slices.Clone(that.victims)
}

func (that *Game) Progress() Progress {
	turn := that.Turn()
	return Progress{
		Turn:      len(that.turns),
		Round:     len(turn.rounds),
		Attackers: len(turn.attackers),
	}
}

// StartNewTurn appends a turn seeded with the ships currently afloat. The
// current round must be complete, or forfeited because its attacker sank
// before firing.
func (that *Game) StartNewTurn() error {
	round := that.Round()
	if !round.IsComplete() && !that.isForfeit(round) {
		return fmt.Errorf("%w: %s has %v left", apperror.ErrRoundInProgress, round.Attacker().ID, round.firepower)
	}

	turn, err := newTurn(that.board)
	if err != nil {
		return fmt.Errorf("failed to open turn: %w", err)
	}

	that.turns = append(that.turns, turn)

	return nil
}

// ReassignAttacker hands the current round to another eligible ship.
func (that *Game) ReassignAttacker(ship *entity.Ship) error {
	if !that.Turn().IsEligible(ship) {
		return fmt.Errorf("%w: %s", apperror.ErrNotEligible, ship.ID)
	}

	if err := that.Round().ReassignAttacker(ship); err != nil {
		return fmt.Errorf("failed to reassign attacker: %w", err)
	}

	return nil
}

// Prepare readies the current round for play. Attackers sunk by counter-fire
// are dropped; a round whose attacker sank before firing goes to the next
// eligible ship, or a new turn opens when nobody in this turn survives.
func (that *Game) Prepare() error {
	turn := that.Turn()
	turn.PruneSunkAttackers()

	round := turn.Round()
	if !that.isForfeit(round) {
		return nil
	}

	if len(turn.attackers) > 0 {
		return that.ReassignAttacker(turn.attackers[0])
	}

	that.logger.Debug("every attacker of the turn was sunk, opening a new turn", "progress", that.Progress().String())

	return that.StartNewTurn()
}

// Fire shoots one salvo of the given nominal size at target from the current
// round. The budget is checked before the target is touched, so a rejected
// salvo leaves both boards unchanged.
func (that *Game) Fire(target entity.BoardModel, anchor entity.Cell, shape entity.Shape, size int) (*entity.Salvo, []*entity.Ship, error) {
	round := that.Round()

	if shape.Size() != size {
		return nil, nil, fmt.Errorf("%w: shape %s for size %d", apperror.ErrUnsupportedSize, shape, size)
	}

	if !round.CanFire(size) {
		return nil, nil, fmt.Errorf("%w: size %d, remaining %v", apperror.ErrNoFirepowerEntry, size, round.firepower)
	}

	if !target.InBounds(anchor) {
		return nil, nil, fmt.Errorf("%w: anchor %s", apperror.ErrOutOfBounds, anchor)
	}

	cells := shape.Cells(anchor, target)

	outcomes, sunk, err := target.Fire(cells)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to apply salvo: %w", err)
	}

	salvo := entity.NewSalvo(round.Attacker().ID, anchor, shape, cells, outcomes, size)
	if err = round.RecordSalvoFired(salvo); err != nil {
		return nil, nil, fmt.Errorf("failed to record salvo: %w", err)
	}

	that.victims = append(that.victims, sunk...)
	for _, ship := range sunk {
		round.Attacker().RecordVictim(ship)
	}

	that.listener.SalvoResolved(salvo)
	for _, ship := range sunk {
		that.listener.ShipSunk(ship)
	}

	return salvo, sunk, nil
}

// ReceiveSalvo records a salvo the opponent fired at this side's board.
func (that *Game) ReceiveSalvo(salvo *entity.Salvo) {
	that.Round().RecordSalvoReceived(salvo)
}

// Advance closes the completed round: a new round opens if attackers remain in
// the turn, a new turn opens otherwise.
func (that *Game) Advance() error {
	turn := that.Turn()
	round := turn.Round()
	if !round.IsComplete() {
		return fmt.Errorf("%w: %s has %v left", apperror.ErrRoundInProgress, round.Attacker().ID, round.firepower)
	}

	turn.PruneSunkAttackers()

	if turn.remainingAfterCurrent() == 0 {
		if err := that.StartNewTurn(); err != nil {
			return err
		}
	} else if err := turn.StartNewRound(); err != nil {
		return fmt.Errorf("failed to open round: %w", err)
	}

	that.last = round
	that.listener.TurnAdvanced(that.Progress())

	return nil
}

func (that *Game) isForfeit(round *Round) bool {
	return !round.HasFired() && !that.Turn().IsEligible(round.Attacker())
}
