// Package strategy holds the decision makers that play a round for one side.
package strategy

import (
	"context"

	"github.com/rocketscienceinc/battleships-backend/internal/battle"
)

// Strategy plays one full round of a game: it picks the attacker, fires the
// whole firepower budget and advances the game to the next round or turn.
type Strategy interface {
	TakeMove(ctx context.Context, game *battle.Game) error
}

var (
	_ Strategy = (*Hunter)(nil)
	_ Strategy = (*ProbabilityGrid)(nil)
	_ Strategy = (*Remote)(nil)
)
