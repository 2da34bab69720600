package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"

	"github.com/rocketscienceinc/battleships-backend/internal/battle"
	"github.com/rocketscienceinc/battleships-backend/internal/telemetry"
)

var ErrMatchStalled = errors.New("match exceeded the turn limit")

type strategy interface {
	TakeMove(ctx context.Context, game *battle.Game) error
}

// Side is one player of a match: its game over its own fleet and whatever
// decides its rounds.
type Side struct {
	Name     string
	Game     *battle.Game
	Strategy strategy
}

type Result struct {
	Winner string          `json:"winner"`
	Loser  string          `json:"loser"`
	Rounds int             `json:"rounds"`
	Final  battle.Progress `json:"final"`
}

// Match alternates rounds between two sides until one fleet is gone.
type Match struct {
	logger   *slog.Logger
	sides    [2]*Side
	maxTurns int
}

func NewMatch(logger *slog.Logger, first, second *Side, maxTurns int) *Match {
	return &Match{
		logger:   logger.With("component", "match"),
		sides:    [2]*Side{first, second},
		maxTurns: maxTurns,
	}
}

// Play runs rounds, first side first, and reports the winner.
func (that *Match) Play(ctx context.Context) (*Result, error) {
	log := that.logger.With("method", "Play")

	ctx, span := telemetry.Tracer("match").Start(ctx, "match.play")
	defer span.End()

	for rounds, active := 0, 0; ; rounds, active = rounds+1, 1-active {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		side, opponent := that.sides[active], that.sides[1-active]

		if err := side.Strategy.TakeMove(ctx, side.Game); err != nil {
			return nil, fmt.Errorf("%s failed to move: %w", side.Name, err)
		}

		for _, salvo := range side.Game.LastRound().Fired() {
			opponent.Game.ReceiveSalvo(salvo)
		}

		if len(opponent.Game.Board().Unsunk()) == 0 {
			result := &Result{
				Winner: side.Name,
				Loser:  opponent.Name,
				Rounds: rounds + 1,
				Final:  side.Game.Progress(),
			}

			span.SetAttributes(attribute.String("winner", result.Winner), attribute.Int("rounds", result.Rounds))
			log.Info("match finished", "winner", result.Winner, "rounds", result.Rounds, "progress", result.Final.String())

			return result, nil
		}

		if that.maxTurns > 0 && side.Game.Progress().Turn > that.maxTurns {
			return nil, fmt.Errorf("%w: %d", ErrMatchStalled, that.maxTurns)
		}
	}
}
