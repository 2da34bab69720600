package battle

import (
	"fmt"
	"io"
	"log/slog"
	"testing"

	"github.com/rocketscienceinc/battleships-backend/internal/apperror"
	"github.com/rocketscienceinc/battleships-backend/internal/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// fleetBoard builds a 5x5 board holding one ship per cell list, named ship-1, ship-2...
func fleetBoard(t *testing.T, ships ...[]entity.Cell) *entity.Board {
	t.Helper()

	board, err := entity.NewBoard(5, 5)
	require.NoError(t, err)

	for i, cells := range ships {
		require.NoError(t, board.Place(entity.NewShip(fmt.Sprintf("ship-%d", i+1), cells)))
	}

	return board
}

func at(col, row int) entity.Cell {
	return entity.Cell{Col: col, Row: row}
}

type recordingListener struct {
	salvos   []*entity.Salvo
	sunk     []*entity.Ship
	progress []Progress
}

func (that *recordingListener) SalvoResolved(salvo *entity.Salvo) {
	that.salvos = append(that.salvos, salvo)
}

func (that *recordingListener) ShipSunk(ship *entity.Ship) {
	that.sunk = append(that.sunk, ship)
}

func (that *recordingListener) TurnAdvanced(progress Progress) {
	that.progress = append(that.progress, progress)
}

func TestNewGame(t *testing.T) {
	t.Run("First turn is seeded with every live ship", func(t *testing.T) {
		// Given: a fleet of three ships
		own := fleetBoard(t, []entity.Cell{at(0, 0)}, []entity.Cell{at(2, 0)}, []entity.Cell{at(4, 0)})

		// When: a game starts
		game, err := NewGame(discardLogger(), own, nil)
		require.NoError(t, err)

		// Then: round one belongs to the first ship and the queue holds all three
		assert.Equal(t, Progress{Turn: 1, Round: 1, Attackers: 3}, game.Progress())
		assert.Equal(t, "turn #1 / round #1 (3)", game.Progress().String())
		assert.Equal(t, "ship-1", game.Round().Attacker().ID)
		assert.Len(t, game.Turn().Snapshots(), 1)
	})

	t.Run("Fails without live ships", func(t *testing.T) {
		own := fleetBoard(t)

		_, err := NewGame(discardLogger(), own, nil)

		assert.ErrorIs(t, err, apperror.ErrNoAttackers)
	})
}

func TestGame_SingleShotRound(t *testing.T) {
	t.Run("Advances to a new round while attackers remain", func(t *testing.T) {
		// Given: two single cell ships, so each fires a schedule of [1]
		own := fleetBoard(t, []entity.Cell{at(0, 0)}, []entity.Cell{at(2, 0)})
		target := fleetBoard(t, []entity.Cell{at(4, 4)})
		game, err := NewGame(discardLogger(), own, nil)
		require.NoError(t, err)
		require.Equal(t, []int{1}, game.Round().Firepower())

		// When: the first ship fires its single shot
		salvo, sunk, err := game.Fire(target, at(0, 0), entity.ShapeSingle, 1)
		require.NoError(t, err)

		// Then: the budget is empty and advancing opens round two of the same turn
		assert.Equal(t, []entity.Marker{entity.MarkerMiss}, salvo.Outcomes)
		assert.Empty(t, sunk)
		assert.True(t, game.Round().IsComplete())

		require.NoError(t, game.Advance())
		assert.Equal(t, Progress{Turn: 1, Round: 2, Attackers: 1}, game.Progress())
		assert.Equal(t, "ship-2", game.Round().Attacker().ID)
		assert.Len(t, game.Turn().Snapshots(), 2)
	})

	t.Run("Opens a new turn after the last attacker", func(t *testing.T) {
		// Given: one single cell ship
		own := fleetBoard(t, []entity.Cell{at(0, 0)})
		target := fleetBoard(t, []entity.Cell{at(4, 4)})
		game, err := NewGame(discardLogger(), own, nil)
		require.NoError(t, err)

		// When: it fires and the game advances
		_, _, err = game.Fire(target, at(1, 1), entity.ShapeSingle, 1)
		require.NoError(t, err)
		require.NoError(t, game.Advance())

		// Then: turn two starts with the same ship
		assert.Equal(t, Progress{Turn: 2, Round: 1, Attackers: 1}, game.Progress())
		assert.Len(t, game.Turns(), 2)
		assert.Len(t, game.LastRound().Fired(), 1)
	})
}

func TestGame_Fire(t *testing.T) {
	t.Run("Clipped salvo consumes the nominal entry", func(t *testing.T) {
		// Given: a three cell attacker with schedule [3]
		own := fleetBoard(t, []entity.Cell{at(0, 0), at(0, 1), at(0, 2)})
		target := fleetBoard(t, []entity.Cell{at(4, 4)})
		game, err := NewGame(discardLogger(), own, nil)
		require.NoError(t, err)

		// When: a horizontal line is fired at the top left corner
		salvo, _, err := game.Fire(target, at(0, 0), entity.ShapeLineHorizontal, 3)
		require.NoError(t, err)

		// Then: two cells were shot but the three shot entry is gone
		assert.Equal(t, []entity.Cell{at(0, 0), at(1, 0)}, salvo.Cells)
		assert.Equal(t, []entity.Marker{entity.MarkerMiss, entity.MarkerMiss, entity.MarkerNone}, salvo.Outcomes)
		assert.Equal(t, 3, salvo.ShotCount())
		assert.True(t, game.Round().IsComplete())
	})

	t.Run("Budget mismatch leaves the target untouched", func(t *testing.T) {
		// Given: a single cell attacker with schedule [1]
		own := fleetBoard(t, []entity.Cell{at(0, 0)})
		target := fleetBoard(t, []entity.Cell{at(4, 4)})
		game, err := NewGame(discardLogger(), own, nil)
		require.NoError(t, err)

		// When: it tries a two shot salvo
		_, _, err = game.Fire(target, at(3, 4), entity.ShapePairRight, 2)

		// Then: ErrNoFirepowerEntry is returned and the target is unchanged
		require.ErrorIs(t, err, apperror.ErrNoFirepowerEntry)
		assert.Equal(t, entity.MarkerUnvisited, target.Marker(at(3, 4)))
		assert.Equal(t, entity.MarkerShip, target.Marker(at(4, 4)))
		assert.Equal(t, []int{1}, game.Round().Firepower())
	})

	t.Run("Shape must match the size", func(t *testing.T) {
		own := fleetBoard(t, []entity.Cell{at(0, 0)})
		target := fleetBoard(t)
		game, err := NewGame(discardLogger(), own, nil)
		require.NoError(t, err)

		_, _, err = game.Fire(target, at(1, 1), entity.ShapePairUp, 1)

		require.ErrorIs(t, err, apperror.ErrUnsupportedSize)
		assert.Empty(t, game.Round().Fired())
	})

	t.Run("Sinking is collected and announced", func(t *testing.T) {
		// Given: a listener on the game
		listener := &recordingListener{}
		own := fleetBoard(t, []entity.Cell{at(0, 0)})
		target := fleetBoard(t, []entity.Cell{at(4, 4)})
		game, err := NewGame(discardLogger(), own, listener)
		require.NoError(t, err)

		// When: the shot sinks the target ship
		_, sunk, err := game.Fire(target, at(4, 4), entity.ShapeSingle, 1)
		require.NoError(t, err)
		require.NoError(t, game.Advance())

		// Then: the victim is recorded and every hook fired once
		require.Len(t, sunk, 1)
		assert.Equal(t, sunk, game.Victims())
		assert.Len(t, listener.salvos, 1)
		assert.Equal(t, sunk, listener.sunk)
		assert.Equal(t, []Progress{{Turn: 2, Round: 1, Attackers: 1}}, listener.progress)
	})

	t.Run("Attacker keeps the ships it sank", func(t *testing.T) {
		// Given: a two cell attacker facing two single cell ships
		own := fleetBoard(t, []entity.Cell{at(0, 0), at(1, 0)})
		target := fleetBoard(t, []entity.Cell{at(0, 4)}, []entity.Cell{at(4, 4)})
		game, err := NewGame(discardLogger(), own, nil)
		require.NoError(t, err)

		// When: its pair sinks the second ship
		_, sunk, err := game.Fire(target, at(4, 4), entity.ShapePairLeft, 2)
		require.NoError(t, err)
		require.Len(t, sunk, 1)

		// Then: the attacker lists its victim and snapshots copy the list
		attacker := own.Ships()[0]
		assert.Equal(t, []string{"ship-2"}, attacker.Victims)

		snapshot := own.Clone().Unsunk()[0]
		snapshot.Victims[0] = "changed"
		assert.Equal(t, []string{"ship-2"}, attacker.Victims)
	})
}

func TestGame_Preconditions(t *testing.T) {
	t.Run("StartNewTurn refuses an unfinished round", func(t *testing.T) {
		// Given: a round that has not fired yet
		own := fleetBoard(t, []entity.Cell{at(0, 0)})
		game, err := NewGame(discardLogger(), own, nil)
		require.NoError(t, err)

		// When: a new turn is requested
		err = game.StartNewTurn()

		// Then: ErrRoundInProgress is returned and no turn is added
		require.ErrorIs(t, err, apperror.ErrRoundInProgress)
		assert.Len(t, game.Turns(), 1)
	})

	t.Run("Advance refuses an unfinished round", func(t *testing.T) {
		own := fleetBoard(t, []entity.Cell{at(0, 0), at(1, 0), at(2, 0), at(3, 0)})
		target := fleetBoard(t)
		game, err := NewGame(discardLogger(), own, nil)
		require.NoError(t, err)

		_, _, err = game.Fire(target, at(1, 1), entity.ShapeSingle, 1)
		require.NoError(t, err)

		err = game.Advance()

		require.ErrorIs(t, err, apperror.ErrRoundInProgress)
		assert.Equal(t, Progress{Turn: 1, Round: 1, Attackers: 1}, game.Progress())
	})

	t.Run("ReassignAttacker needs an eligible ship", func(t *testing.T) {
		own := fleetBoard(t, []entity.Cell{at(0, 0)})
		game, err := NewGame(discardLogger(), own, nil)
		require.NoError(t, err)

		err = game.ReassignAttacker(entity.NewShip("stranger", []entity.Cell{at(3, 3)}))

		assert.ErrorIs(t, err, apperror.ErrNotEligible)
	})
}

func TestGame_CounterFire(t *testing.T) {
	t.Run("Sunk attackers are skipped at the round boundary", func(t *testing.T) {
		// Given: three attackers, the second of which is sunk by the opponent after round one
		own := fleetBoard(t, []entity.Cell{at(0, 0)}, []entity.Cell{at(2, 0)}, []entity.Cell{at(4, 0)})
		target := fleetBoard(t, []entity.Cell{at(4, 4)})
		game, err := NewGame(discardLogger(), own, nil)
		require.NoError(t, err)

		_, _, err = game.Fire(target, at(0, 4), entity.ShapeSingle, 1)
		require.NoError(t, err)

		_, _, err = own.Fire([]entity.Cell{at(2, 0)})
		require.NoError(t, err)

		// When: the game advances
		require.NoError(t, game.Advance())

		// Then: round two goes to the third ship
		assert.Equal(t, "ship-3", game.Round().Attacker().ID)
		assert.Equal(t, Progress{Turn: 1, Round: 2, Attackers: 1}, game.Progress())
	})

	t.Run("Prepare hands a forfeited round to the next ship", func(t *testing.T) {
		// Given: the attacker of the open round is sunk before it fires
		own := fleetBoard(t, []entity.Cell{at(0, 0)}, []entity.Cell{at(2, 0)})
		game, err := NewGame(discardLogger(), own, nil)
		require.NoError(t, err)

		_, _, err = own.Fire([]entity.Cell{at(0, 0)})
		require.NoError(t, err)

		// When: the round is prepared
		require.NoError(t, game.Prepare())

		// Then: the second ship takes it over
		assert.Equal(t, "ship-2", game.Round().Attacker().ID)
		assert.Equal(t, 1, game.Progress().Attackers)
	})

	t.Run("Prepare opens a new turn when the whole queue sank", func(t *testing.T) {
		// Given: a turn whose only remaining attacker is sunk before firing
		own := fleetBoard(t, []entity.Cell{at(0, 0)}, []entity.Cell{at(2, 0)})
		target := fleetBoard(t)
		game, err := NewGame(discardLogger(), own, nil)
		require.NoError(t, err)

		_, _, err = game.Fire(target, at(3, 3), entity.ShapeSingle, 1)
		require.NoError(t, err)
		require.NoError(t, game.Advance())

		_, _, err = own.Fire([]entity.Cell{at(2, 0)})
		require.NoError(t, err)

		// When: the round is prepared
		require.NoError(t, game.Prepare())

		// Then: turn two starts with the surviving ship
		assert.Equal(t, Progress{Turn: 2, Round: 1, Attackers: 1}, game.Progress())
		assert.Equal(t, "ship-1", game.Round().Attacker().ID)
	})
}

func TestTurn_Snapshots(t *testing.T) {
	// Given: a game whose board is snapshot at turn start
	own := fleetBoard(t, []entity.Cell{at(0, 0)}, []entity.Cell{at(2, 0)})
	target := fleetBoard(t)
	game, err := NewGame(discardLogger(), own, nil)
	require.NoError(t, err)

	_, _, err = game.Fire(target, at(3, 3), entity.ShapeSingle, 1)
	require.NoError(t, err)
	require.NoError(t, game.Advance())

	// When: the live board is hit afterwards
	_, _, err = own.Fire([]entity.Cell{at(0, 0), at(4, 4)})
	require.NoError(t, err)

	// Then: neither snapshot reflects the later shots
	for _, snapshot := range game.Turn().Snapshots() {
		assert.Len(t, snapshot.Unsunk(), 2)
		assert.Equal(t, entity.MarkerUnvisited, snapshot.Markers()[4][4])
	}
}

func TestTurn_EligibilityShrinks(t *testing.T) {
	// Given: four attackers with mixed schedules
	own := fleetBoard(t,
		[]entity.Cell{at(0, 0), at(1, 0), at(2, 0), at(3, 0)},
		[]entity.Cell{at(0, 2)},
		[]entity.Cell{at(2, 2), at(3, 2)},
		[]entity.Cell{at(0, 4)},
	)
	target := fleetBoard(t)
	game, err := NewGame(discardLogger(), own, nil)
	require.NoError(t, err)

	sizes := []int{game.Progress().Attackers}
	require.Equal(t, len(own.Unsunk()), sizes[0])

	// When: every round of the turn fires its whole schedule
	for game.Progress().Turn == 1 {
		round := game.Round()
		for _, size := range round.Firepower() {
			shapes, err := entity.ShapesFor(size)
			require.NoError(t, err)

			_, _, err = game.Fire(target, at(2, 3), shapes[0], size)
			require.NoError(t, err)
		}

		// Then: consumed shots add up to the schedule
		total := 0
		for _, salvo := range round.Fired() {
			total += salvo.ShotCount()
		}
		scheduled := 0
		for _, size := range round.Schedule() {
			scheduled += size
		}
		assert.Equal(t, scheduled, total)

		require.NoError(t, game.Advance())
		if game.Progress().Turn == 1 {
			sizes = append(sizes, game.Progress().Attackers)
		}
	}

	// Then: the queue size never grows within the turn
	for i := 1; i < len(sizes); i++ {
		assert.LessOrEqual(t, sizes[i], sizes[i-1])
	}
	assert.Equal(t, []int{4, 3, 2, 1}, sizes)
	assert.Len(t, game.Turns()[0].Rounds(), 4)
}
