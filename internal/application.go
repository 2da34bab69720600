package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"

	"github.com/rocketscienceinc/battleships-backend/internal/battle"
	"github.com/rocketscienceinc/battleships-backend/internal/config"
	"github.com/rocketscienceinc/battleships-backend/internal/entity"
	"github.com/rocketscienceinc/battleships-backend/internal/strategy"
	"github.com/rocketscienceinc/battleships-backend/internal/telemetry"
	transport "github.com/rocketscienceinc/battleships-backend/internal/transport/redis"
	"github.com/rocketscienceinc/battleships-backend/internal/usecase"
)

var ErrUnknownMode = errors.New("unknown mode")

// RunApp - plays one match as configured.
func RunApp(logger *slog.Logger, conf *config.Config) error {
	log := logger.With("component", "app")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigs
		log.Info("Received signal, shutting down", "signal", sig)
		cancel()
	}()

	if conf.Telemetry.Enabled {
		shutdown, err := telemetry.Setup(ctx)
		if err != nil {
			log.Warn("telemetry setup failed, running without traces", "error", err)
		} else {
			defer func() {
				if err = shutdown(context.Background()); err != nil {
					log.Error("could not shut down telemetry", "error", err)
				}
			}()
		}
	}

	seed := conf.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	log.Info("Starting match", "mode", conf.Mode, "seed", seed)

	rnd := rand.New(rand.NewSource(seed)) //nolint: gosec // games are replayable by seed

	home, err := newFleet(conf.Board, rnd)
	if err != nil {
		return fmt.Errorf("could not place home fleet: %w", err)
	}

	away, err := newFleet(conf.Board, rnd)
	if err != nil {
		return fmt.Errorf("could not place away fleet: %w", err)
	}

	listener := battle.NewLogListener(logger)

	homeGame, err := battle.NewGame(logger.With("side", "home"), home, listener)
	if err != nil {
		return fmt.Errorf("could not start home game: %w", err)
	}

	awayGame, err := battle.NewGame(logger.With("side", "away"), away, listener)
	if err != nil {
		return fmt.Errorf("could not start away game: %w", err)
	}

	awayStrategy, closeAway, err := newAwayStrategy(ctx, logger, conf, home, rnd)
	if err != nil {
		return err
	}
	defer closeAway()

	match := usecase.NewMatch(logger,
		&usecase.Side{Name: "home", Game: homeGame, Strategy: strategy.NewHunter(logger.With("side", "home"), away, rnd)},
		&usecase.Side{Name: "away", Game: awayGame, Strategy: awayStrategy},
		conf.MaxTurns,
	)

	result, err := match.Play(ctx)
	if errors.Is(err, context.Canceled) {
		log.Info("Match interrupted")
		return nil
	}

	if err != nil {
		return fmt.Errorf("match failed: %w", err)
	}

	log.Info("Match over", "winner", result.Winner, "rounds", result.Rounds, "victims", len(homeGame.Victims())+len(awayGame.Victims()))

	return nil
}

func newFleet(conf config.Board, rnd *rand.Rand) (*entity.Board, error) {
	board, err := entity.NewBoard(conf.Width, conf.Height)
	if err != nil {
		return nil, err
	}

	if err = entity.PlaceFleet(board, conf.Fleet, rnd); err != nil {
		return nil, err
	}

	return board, nil
}

// newAwayStrategy builds the opponent of the home hunter: another hunter, or
// a remote peer feeding rounds through redis.
func newAwayStrategy(ctx context.Context, logger *slog.Logger, conf *config.Config, target entity.BoardModel, rnd *rand.Rand) (strategy.Strategy, func(), error) {
	switch conf.Mode {
	case config.ModeAI:
		return strategy.NewHunter(logger.With("side", "away"), target, rnd), func() {}, nil
	case config.ModeRemote:
		conn, err := transport.Connect(ctx, conf.Redis.GetRedisAddr())
		if err != nil {
			return nil, nil, fmt.Errorf("could not connect to redis: %w", err)
		}

		matchID := conf.Remote.MatchID
		if matchID == "" {
			matchID = uuid.NewString()
		}
		logger.Info("Waiting for remote rounds", "match", matchID)

		closeConn := func() {
			if err := conn.Close(); err != nil {
				logger.Error("could not close redis connection", "error", err)
			}
		}

		source := transport.New(conn, matchID)

		return strategy.NewRemote(logger.With("side", "away"), target, source, conf.Remote.MoveTimeout), closeConn, nil
	default:
		return nil, nil, fmt.Errorf("%w: %q", ErrUnknownMode, conf.Mode)
	}
}
