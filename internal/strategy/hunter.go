package strategy

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"
	"slices"

	"go.opentelemetry.io/otel/attribute"

	"github.com/rocketscienceinc/battleships-backend/internal/apperror"
	"github.com/rocketscienceinc/battleships-backend/internal/battle"
	"github.com/rocketscienceinc/battleships-backend/internal/entity"
	"github.com/rocketscienceinc/battleships-backend/internal/telemetry"
)

// Hunter is the baseline computer opponent. It fires at random unvisited cells
// until something is hit, then works the neighbours of every unresolved hit
// until the ship goes down.
type Hunter struct {
	logger *slog.Logger
	target entity.BoardModel
	mirror *Mirror
	rnd    *rand.Rand
}

// NewHunter builds a hunter firing at target. The same seed over the same
// boards reproduces the same game.
func NewHunter(logger *slog.Logger, target entity.BoardModel, rnd *rand.Rand) *Hunter {
	return &Hunter{
		logger: logger.With("component", "hunter"),
		target: target,
		mirror: NewMirror(target),
		rnd:    rnd,
	}
}

func (that *Hunter) Mirror() *Mirror {
	return that.mirror
}

func (that *Hunter) Mode() Mode {
	return that.mirror.Mode()
}

// TakeMove plays the current round to the end and advances the game.
func (that *Hunter) TakeMove(ctx context.Context, game *battle.Game) error {
	ctx, span := telemetry.Tracer("strategy").Start(ctx, "strategy.hunter.move")
	defer span.End()

	if err := game.Prepare(); err != nil {
		return fmt.Errorf("failed to prepare round: %w", err)
	}

	attacker := SelectAttacker(game.Turn().Attackers())
	if attacker == nil {
		return apperror.ErrNoAttackers
	}

	if err := game.ReassignAttacker(attacker); err != nil {
		return fmt.Errorf("failed to select attacker: %w", err)
	}

	span.SetAttributes(
		attribute.String("attacker", attacker.ID),
		attribute.String("progress", game.Progress().String()),
	)

	for !game.Round().IsComplete() {
		if err := ctx.Err(); err != nil {
			return err
		}

		var err error
		if that.mirror.Mode() == ModeTargeting {
			err = that.targetingMove(game)
		} else {
			err = that.huntingMove(game)
		}

		if err != nil {
			span.SetAttributes(attribute.Bool("failed", true))
			return err
		}
	}

	span.SetAttributes(attribute.String("mode", string(that.mirror.Mode())))

	if err := game.Advance(); err != nil {
		return fmt.Errorf("failed to advance game: %w", err)
	}

	return nil
}

// SelectAttacker returns the ship with the greatest total firepower; the first
// enumerated wins a tie.
func SelectAttacker(attackers []*entity.Ship) *entity.Ship {
	var best *entity.Ship
	for _, ship := range attackers {
		if best == nil || ship.TotalFirepower() > best.TotalFirepower() {
			best = ship
		}
	}
	return best
}

func (that *Hunter) huntingMove(game *battle.Game) error {
	size := game.Round().Firepower()[0]

	free := that.mirror.Unvisited()
	if len(free) == 0 {
		return fmt.Errorf("hunting move: %w", apperror.ErrNoUnvisitedCells)
	}

	anchor := free[that.rnd.Intn(len(free))] //nolint: gosec // seeded for reproducible games

	shape, _, err := that.bestShape(anchor, size, that.unvisitedScore)
	if err != nil {
		return fmt.Errorf("hunting move: %w", err)
	}

	return that.fire(game, anchor, shape, size)
}

func (that *Hunter) targetingMove(game *battle.Game) error {
	size := game.Round().Firepower()[0]

	candidates := that.candidates()
	if len(candidates) == 0 {
		that.logger.Warn("hits left without unvisited neighbours, hunting instead", "hits", len(that.mirror.Hits()))
		return that.huntingMove(game)
	}

	score := func(cells []entity.Cell) int {
		covered := 0
		for _, cell := range cells {
			if slices.Contains(candidates, cell) {
				covered++
			}
		}
		return covered*(entity.MaxSalvoSize+1) + that.unvisitedScore(cells)
	}

	var (
		bestAnchor entity.Cell
		bestShape  entity.Shape
		bestScore  = -1
	)

	for _, anchor := range candidates {
		shape, value, err := that.bestShape(anchor, size, score)
		if err != nil {
			return fmt.Errorf("targeting move: %w", err)
		}

		if value > bestScore {
			bestAnchor, bestShape, bestScore = anchor, shape, value
		}
	}

	return that.fire(game, bestAnchor, bestShape, size)
}

// candidates lists unvisited orthogonal neighbours of unresolved hits without duplicates.
func (that *Hunter) candidates() []entity.Cell {
	var cells []entity.Cell
	for _, hit := range that.mirror.Hits() {
		for _, dir := range entity.Directions {
			neighbor, ok := that.target.Neighbor(hit, dir)
			if !ok || that.mirror.Marker(neighbor).IsVisited() || slices.Contains(cells, neighbor) {
				continue
			}
			cells = append(cells, neighbor)
		}
	}
	return cells
}

// bestShape scores every shape of the size anchored at anchor and returns the
// highest; the first in enumeration order wins a tie.
func (that *Hunter) bestShape(anchor entity.Cell, size int, score func([]entity.Cell) int) (entity.Shape, int, error) {
	shapes, err := entity.ShapesFor(size)
	if err != nil {
		return "", 0, err
	}

	best, bestScore := shapes[0], -1
	for _, shape := range shapes {
		if value := score(shape.Cells(anchor, that.target)); value > bestScore {
			best, bestScore = shape, value
		}
	}

	return best, bestScore, nil
}

func (that *Hunter) unvisitedScore(cells []entity.Cell) int {
	count := 0
	for _, cell := range cells {
		if !that.mirror.Marker(cell).IsVisited() {
			count++
		}
	}
	return count
}

func (that *Hunter) fire(game *battle.Game, anchor entity.Cell, shape entity.Shape, size int) error {
	salvo, sunk, err := game.Fire(that.target, anchor, shape, size)
	if err != nil {
		return fmt.Errorf("failed to fire salvo: %w", err)
	}

	that.mirror.Record(salvo, sunk)

	return nil
}
