package searcher

import (
	"testing"

	"github.com/stretchr/testify/require"

	"checkers/game"
)

// boardFrom parses rows of 'a'/'A' (agent man/king), 'o'/'O' (opponent man/king) and '.'
func boardFrom(t *testing.T, turn game.Player, rules game.Rules, rows ...string) game.Board {
	t.Helper()
	require.Len(t, rows, game.Size)

	var grid game.Grid
	for r, row := range rows {
		require.Len(t, row, game.Size)
		for c, ch := range row {
			switch ch {
			case 'a':
				grid[r][c] = 1
			case 'A':
				grid[r][c] = 2
			case 'o':
				grid[r][c] = -1
			case 'O':
				grid[r][c] = -2
			}
		}
	}
	b, err := game.NewBoardFromGrid(grid, turn, rules)
	require.NoError(t, err)
	return b
}

// randomPosition plays plies random moves from the initial layout, stopping at game over
func randomPosition(t *testing.T, seed uint64, plies int, rules game.Rules) game.Board {
	t.Helper()
	rng := newTestRand(seed)
	b := game.NewBoard(rules)
	for i := 0; i < plies; i++ {
		if over, _ := b.IsTerminal(); over {
			break
		}
		action, ok := b.RandomMove(b.Turn(), rng)
		require.True(t, ok)
		require.NoError(t, b.Apply(action.Piece, action.Move))
	}
	return b
}
