package searcher

import (
	"math"

	"checkers/game"
)

// Bounds of a full alpha-beta window
const (
	MinScore = math.MinInt
	MaxScore = math.MaxInt
)

// Decision is the result of an adversarial search: the chosen piece and move, and the score
// backed up to the root. Scores are from the agent's perspective.
type Decision struct {
	game.Action
	Score int
}

// Minimax searches depth plies ahead, maximizing for the agent and minimizing for the
// opponent. Moves are enumerated piece by piece in scan order. When the state's rules make
// captures decisive, the first jump found ends the enumeration with a saturated score.
func Minimax(player game.Player, depth int, state game.Board) Decision {
	if stop(depth, state) {
		return leaf(state)
	}

	maximizing := player == game.Agent
	best := Decision{Action: game.NoAction, Score: worst(maximizing)}
	for _, piece := range state.PiecesOf(player) {
		for _, move := range state.LegalMoves(piece) {
			action := game.Action{Piece: piece, Move: move}
			if move.Jump && state.Rules().DecisiveCapture {
				return Decision{Action: action, Score: saturated(maximizing)}
			}

			score := Minimax(player.Opponent(), depth-1, play(state, action)).Score
			if improves(maximizing, score, best.Score) {
				best = Decision{Action: action, Score: score}
			}
		}
	}

	if best.IsNull() {
		return leaf(state)
	}
	return best
}

// AlphaBeta is Minimax with (alpha, beta) pruning. Call it with MinScore and MaxScore for a
// full window; the root score then matches Minimax.
func AlphaBeta(player game.Player, depth int, state game.Board, alpha, beta int) Decision {
	if stop(depth, state) {
		return leaf(state)
	}

	maximizing := player == game.Agent
	best := Decision{Action: game.NoAction, Score: worst(maximizing)}
	for _, piece := range state.PiecesOf(player) {
		for _, move := range state.LegalMoves(piece) {
			action := game.Action{Piece: piece, Move: move}
			if move.Jump && state.Rules().DecisiveCapture {
				return Decision{Action: action, Score: saturated(maximizing)}
			}

			score := AlphaBeta(player.Opponent(), depth-1, play(state, action), alpha, beta).Score
			if improves(maximizing, score, best.Score) {
				best = Decision{Action: action, Score: score}
			}

			if maximizing {
				if best.Score > beta {
					return best
				}
				alpha = max(alpha, best.Score)
			} else {
				if best.Score < alpha {
					return best
				}
				beta = min(beta, best.Score)
			}
		}
	}

	if best.IsNull() {
		return leaf(state)
	}
	return best
}

func stop(depth int, state game.Board) bool {
	if depth <= 0 {
		return true
	}
	over, _ := state.IsTerminal()
	return over
}

func leaf(state game.Board) Decision {
	return Decision{Action: game.NoAction, Score: state.Evaluate(game.Agent)}
}

func play(state game.Board, action game.Action) game.Board {
	next, err := state.CopyWithMove(action.Piece, action.Move)
	if err != nil {
		// Moves come from the state's own generator
		panic(err)
	}
	return next
}

func worst(maximizing bool) int {
	if maximizing {
		return MinScore
	}
	return MaxScore
}

func saturated(maximizing bool) int {
	if maximizing {
		return game.WinScore
	}
	return game.LossScore
}

func improves(maximizing bool, score, best int) bool {
	if maximizing {
		return score > best
	}
	return score < best
}
