package strategy

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/rocketscienceinc/battleships-backend/internal/apperror"
	"github.com/rocketscienceinc/battleships-backend/internal/battle"
	"github.com/rocketscienceinc/battleships-backend/internal/entity"
	"github.com/rocketscienceinc/battleships-backend/internal/telemetry"
)

// RoundSource delivers rounds played by a remote peer. Receive blocks until an
// order arrives or ctx is done; an undecodable order is reported as an error
// wrapping apperror.ErrProtocol.
type RoundSource interface {
	Receive(ctx context.Context) (*entity.RoundOrder, error)
	Reject(ctx context.Context, rejection entity.Rejection) error
}

// Remote plays the rounds a remote peer sends, with the same bookkeeping a
// local strategy does. Invalid rounds are rejected before anything is fired.
type Remote struct {
	logger  *slog.Logger
	target  entity.BoardModel
	source  RoundSource
	timeout time.Duration
}

// NewRemote builds a remote-driven strategy. A zero timeout waits as long as ctx allows.
func NewRemote(logger *slog.Logger, target entity.BoardModel, source RoundSource, timeout time.Duration) *Remote {
	return &Remote{
		logger:  logger.With("component", "remote"),
		target:  target,
		source:  source,
		timeout: timeout,
	}
}

func (that *Remote) TakeMove(ctx context.Context, game *battle.Game) error {
	log := that.logger.With("method", "TakeMove")

	ctx, span := telemetry.Tracer("strategy").Start(ctx, "strategy.remote.move")
	defer span.End()

	if that.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, that.timeout)
		defer cancel()
	}

	if err := game.Prepare(); err != nil {
		return fmt.Errorf("failed to prepare round: %w", err)
	}

	for {
		order, err := that.source.Receive(ctx)
		if errors.Is(err, apperror.ErrProtocol) {
			if err = that.reject(ctx, "", err); err != nil {
				return err
			}
			continue
		}

		if err != nil {
			return fmt.Errorf("failed to receive round: %w", err)
		}

		attacker, err := Validate(game, that.target, order)
		if err != nil {
			roundID := ""
			if order != nil {
				roundID = order.ID
			}

			log.Warn("round rejected", "round", roundID, "error", err)
			span.AddEvent("round rejected", trace.WithAttributes(attribute.String("reason", err.Error())))

			if err = that.reject(ctx, roundID, err); err != nil {
				return err
			}
			continue
		}

		span.SetAttributes(attribute.String("attacker", attacker.ID), attribute.String("round", order.ID))

		return that.apply(game, attacker, order)
	}
}

// Validate checks a round order against the game without touching any board
// and returns the attacker it names.
func Validate(game *battle.Game, target entity.BoardModel, order *entity.RoundOrder) (*entity.Ship, error) {
	if order == nil || order.AttackerID == "" || len(order.Salvos) == 0 {
		return nil, fmt.Errorf("%w: %w: attacker and salvos are required", apperror.ErrProtocol, apperror.ErrMalformedRound)
	}

	attacker, err := lookupAttacker(game, order.AttackerID)
	if err != nil {
		return nil, err
	}

	sizes := make([]int, 0, len(order.Salvos))
	for i, salvo := range order.Salvos {
		if !salvo.Shape.IsValid() || salvo.Shape.Size() != salvo.Size {
			return nil, fmt.Errorf("%w: %w: salvo %d has shape %q for size %d",
				apperror.ErrProtocol, apperror.ErrMalformedRound, i, salvo.Shape, salvo.Size)
		}

		if !target.InBounds(salvo.Anchor) {
			return nil, fmt.Errorf("%w: %w: salvo %d anchored off the board at %s",
				apperror.ErrProtocol, apperror.ErrMalformedRound, i, salvo.Anchor)
		}

		sizes = append(sizes, salvo.Size)
	}

	schedule := attacker.Firepower()
	slices.Sort(schedule)
	slices.Sort(sizes)

	if !slices.Equal(schedule, sizes) {
		return nil, fmt.Errorf("%w: %w: got %v, schedule %v", apperror.ErrProtocol, apperror.ErrWrongShotCount, sizes, schedule)
	}

	return attacker, nil
}

func lookupAttacker(game *battle.Game, id string) (*entity.Ship, error) {
	byID := func(ship *entity.Ship) bool { return ship.ID == id }

	turn := game.Turn()
	if idx := slices.IndexFunc(turn.Attackers(), byID); idx >= 0 {
		return turn.Attackers()[idx], nil
	}

	if slices.ContainsFunc(game.Board().Unsunk(), byID) {
		return nil, fmt.Errorf("%w: %w: %s already attacked this turn", apperror.ErrProtocol, apperror.ErrNotEligible, id)
	}

	// the first snapshot of the game holds the whole fleet
	if slices.ContainsFunc(game.Turns()[0].Snapshots()[0].Unsunk(), byID) {
		return nil, fmt.Errorf("%w: %w: %s", apperror.ErrProtocol, apperror.ErrSunkAttacker, id)
	}

	return nil, fmt.Errorf("%w: %w: %s", apperror.ErrProtocol, apperror.ErrUnknownShip, id)
}

func (that *Remote) apply(game *battle.Game, attacker *entity.Ship, order *entity.RoundOrder) error {
	if err := game.ReassignAttacker(attacker); err != nil {
		return fmt.Errorf("failed to assign remote attacker: %w", err)
	}

	for _, salvo := range order.Salvos {
		if _, _, err := game.Fire(that.target, salvo.Anchor, salvo.Shape, salvo.Size); err != nil {
			return fmt.Errorf("failed to fire remote salvo: %w", err)
		}
	}

	if err := game.Advance(); err != nil {
		return fmt.Errorf("failed to advance game: %w", err)
	}

	return nil
}

func (that *Remote) reject(ctx context.Context, roundID string, reason error) error {
	if err := that.source.Reject(ctx, entity.Rejection{RoundID: roundID, Reason: reason.Error()}); err != nil {
		return fmt.Errorf("failed to reject round: %w", err)
	}
	return nil
}
