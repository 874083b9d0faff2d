package engine

import (
	"checkers/experiments/metrics"
	"checkers/game"
	"checkers/meta"
)

const MaxTurns = meta.MAX_TURNS

type Engine interface {
	// Run plays a game till there's a winner or a max number of turns is reached
	Run() (winner game.Player, gameMetric metrics.GameMetric, moveMetrics []metrics.MoveMetric, err error)
}
