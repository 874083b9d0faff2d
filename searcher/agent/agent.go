package agent

import (
	"checkers/experiments/metrics"
	"checkers/game"
)

type Agent interface {
	// FindMove returns the action for player on state and search metrics (if collected).
	// A null action means the agent found no move.
	FindMove(state game.Board, player game.Player) (game.Action, metrics.SearchMetric)
}
