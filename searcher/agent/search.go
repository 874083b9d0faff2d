package agent

import (
	"checkers/experiments/metrics"
	"checkers/game"
	"checkers/searcher"
)

type minimaxAgent struct {
	depth   int
	pruning bool
	metrics metrics.Collector
}

// NewMinimaxAgent searches depth plies with plain minimax
func NewMinimaxAgent(depth int) Agent {
	return &minimaxAgent{depth: depth, metrics: metrics.NewCollector()}
}

// NewAlphaBetaAgent searches depth plies with alpha-beta pruning over a full window
func NewAlphaBetaAgent(depth int) Agent {
	return &minimaxAgent{depth: depth, pruning: true, metrics: metrics.NewCollector()}
}

func (a *minimaxAgent) FindMove(state game.Board, player game.Player) (game.Action, metrics.SearchMetric) {
	state = state.WithTurn(player)

	var decision searcher.Decision
	if a.pruning {
		a.metrics.Start(metrics.AlgorithmAlphaBeta, a.depth)
		decision = searcher.AlphaBeta(player, a.depth, state, searcher.MinScore, searcher.MaxScore)
	} else {
		a.metrics.Start(metrics.AlgorithmMinimax, a.depth)
		decision = searcher.Minimax(player, a.depth, state)
	}
	return decision.Action, a.metrics.Complete()
}

type mctsAgent struct {
	mcts       *searcher.MCTS
	iterations int
}

// NewMCTSAgent runs iterations episodes per move, reusing its tree across one game
func NewMCTSAgent(mcts *searcher.MCTS, iterations int) Agent {
	return mctsAgent{mcts: mcts, iterations: iterations}
}

func (a mctsAgent) FindMove(state game.Board, player game.Player) (game.Action, metrics.SearchMetric) {
	return a.mcts.Search(state, player, a.iterations)
}
