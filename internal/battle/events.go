package battle

import (
	"log/slog"

	"github.com/rocketscienceinc/battleships-backend/internal/entity"
)

// Listener receives notifications a presentation layer can render.
type Listener interface {
	SalvoResolved(salvo *entity.Salvo)
	ShipSunk(ship *entity.Ship)
	TurnAdvanced(progress Progress)
}

type nopListener struct{}

func (nopListener) SalvoResolved(*entity.Salvo) {}
func (nopListener) ShipSunk(*entity.Ship)       {}
func (nopListener) TurnAdvanced(Progress)       {}

type logListener struct {
	logger *slog.Logger
}

// NewLogListener reports every event as a structured log line.
func NewLogListener(logger *slog.Logger) Listener {
	return &logListener{logger: logger.With("component", "events")}
}

func (that *logListener) SalvoResolved(salvo *entity.Salvo) {
	that.logger.Debug("salvo resolved",
		"attacker", salvo.AttackerID,
		"anchor", salvo.Anchor.String(),
		"shape", salvo.Shape,
		"outcomes", salvo.Outcomes,
	)
}

func (that *logListener) ShipSunk(ship *entity.Ship) {
	that.logger.Info("ship sunk", "ship", ship.ID, "size", ship.Size())
}

func (that *logListener) TurnAdvanced(progress Progress) {
	that.logger.Info("advanced", "progress", progress.String())
}
