package agent

import (
	"golang.org/x/exp/rand"

	"checkers/experiments/metrics"
	"checkers/game"
)

type randomAgent struct {
	rng *rand.Rand
}

// NewRandomAgent plays a uniformly random legal move
func NewRandomAgent(seed uint64) Agent {
	return randomAgent{rng: rand.New(rand.NewSource(seed))}
}

func (a randomAgent) FindMove(state game.Board, player game.Player) (game.Action, metrics.SearchMetric) {
	action, _ := state.RandomMove(player, a.rng)
	return action, metrics.SearchMetric{Algorithm: metrics.AlgorithmRandom}
}

type firstAgent struct{}

// NewFirstAgent plays the first legal move in scan order
func NewFirstAgent() Agent {
	return firstAgent{}
}

func (firstAgent) FindMove(state game.Board, player game.Player) (game.Action, metrics.SearchMetric) {
	action, _ := state.FirstMove(player)
	return action, metrics.SearchMetric{Algorithm: metrics.AlgorithmFirst}
}
