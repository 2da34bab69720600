package strategy

import (
	"context"
	"fmt"

	"github.com/rocketscienceinc/battleships-backend/internal/apperror"
	"github.com/rocketscienceinc/battleships-backend/internal/battle"
)

// ProbabilityGrid is meant to weight cells by how many fleet placements cover
// them. It is a placeholder and refuses to play.
type ProbabilityGrid struct{}

func NewProbabilityGrid() *ProbabilityGrid {
	return &ProbabilityGrid{}
}

func (that *ProbabilityGrid) TakeMove(context.Context, *battle.Game) error {
	return fmt.Errorf("probability grid strategy: %w", apperror.ErrNotImplemented)
}
