package agent

import (
	"testing"

	"github.com/stretchr/testify/require"

	"checkers/experiments/metrics"
	"checkers/game"
	"checkers/searcher"
)

func TestAgents(t *testing.T) {
	b := game.NewBoard(game.DefaultRules())
	legal := b.AllLegalMoves(game.Agent)

	agents := map[string]Agent{
		metrics.AlgorithmMinimax:   NewMinimaxAgent(2),
		metrics.AlgorithmAlphaBeta: NewAlphaBetaAgent(2),
		metrics.AlgorithmMCTS:      NewMCTSAgent(searcher.NewMCTS(searcher.WithSeed(1), searcher.WithMetrics()), 20),
		metrics.AlgorithmRandom:    NewRandomAgent(1),
		metrics.AlgorithmFirst:     NewFirstAgent(),
	}
	for name, a := range agents {
		t.Run(name, func(t *testing.T) {
			action, metric := a.FindMove(b, game.Agent)
			require.Contains(t, legal, action, "Agent should pick a legal move")
			require.Equal(t, name, metric.Algorithm)
		})
	}

	t.Run("minimax and alpha-beta agree on the initial position", func(t *testing.T) {
		mm := searcher.Minimax(game.Agent, 3, b)
		ab, _ := NewAlphaBetaAgent(3).FindMove(b, game.Agent)
		abScore := searcher.AlphaBeta(game.Agent, 3, b, searcher.MinScore, searcher.MaxScore).Score
		require.Equal(t, mm.Score, abScore)
		require.Contains(t, legal, ab)
	})

	t.Run("first agent picks scan order", func(t *testing.T) {
		action, _ := NewFirstAgent().FindMove(b, game.Agent)
		require.Equal(t, legal[0], action)
	})

	t.Run("returning null actions without moves", func(t *testing.T) {
		var grid game.Grid
		grid[1][0] = 1
		grid[0][1] = -1
		stuck, err := game.NewBoardFromGrid(grid, game.Agent, game.DefaultRules())
		require.NoError(t, err)

		for name, a := range agents {
			action, _ := a.FindMove(stuck, game.Agent)
			require.True(t, action.IsNull(), "%s should return a null action", name)
		}
	})
}
