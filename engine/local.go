package engine

import (
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"checkers/experiments/metrics"
	"checkers/game"
	"checkers/searcher/agent"
)

type Option func(e *LocalEngine)

var _ Engine = (*LocalEngine)(nil)

// LocalEngine plays one game between two in-process agents on a live board. agents[0] plays
// game.Agent and agents[1] plays game.Opponent.
type LocalEngine struct {
	State    game.Board
	Agents   [2]agent.Agent
	maxTurns int
	label    string
}

func WithMaxTurns(turns int) Option {
	return func(e *LocalEngine) {
		if turns > 0 {
			e.maxTurns = turns
		}
	}
}

// WithBoard starts the game from board instead of the initial layout
func WithBoard(board game.Board) Option {
	return func(e *LocalEngine) {
		e.State = board
	}
}

// WithLabel tags the engine's log lines
func WithLabel(label string) Option {
	return func(e *LocalEngine) {
		e.label = label
	}
}

func NewLocalEngine(agents [2]agent.Agent, rules game.Rules, options ...Option) *LocalEngine {
	if agents[0] == nil || agents[1] == nil {
		panic("need two agents")
	}

	e := &LocalEngine{
		State:    game.NewBoard(rules),
		Agents:   agents,
		maxTurns: MaxTurns,
	}
	for _, option := range options {
		option(e)
	}
	return e
}

// Run executes the game loop until a winner is found or the turn limit is hit (a draw,
// reported as game.NoPlayer).
func (e *LocalEngine) Run() (game.Player, metrics.GameMetric, []metrics.MoveMetric, error) {
	gameMetric := metrics.GameMetric{
		StartingPlayer: e.State.Turn(),
		StartTime:      time.Now(),
	}
	var moveMetrics []metrics.MoveMetric

	logger := log.With().Str("game", e.label).Logger()
	logger.Info().Msgf("%s is starting", e.State.Turn())

	turn := 1
	for ; turn <= e.maxTurns; turn++ {
		if over, _ := e.State.IsTerminal(); over {
			break
		}

		player := e.State.Turn()
		action, searchMetric := e.agentFor(player).FindMove(e.State, player)
		moveMetrics = append(moveMetrics, metrics.MoveMetric{
			Step:         turn,
			Player:       player,
			SearchMetric: searchMetric,
		})

		if action.IsNull() {
			fallback, ok := e.State.FirstMove(player)
			if !ok {
				return game.NoPlayer, gameMetric, moveMetrics, errors.Errorf("turn %d: %s has no legal move on a live board", turn, player)
			}
			logger.Warn().Msgf("%s returned no move on turn %d, playing %s %s instead", player, turn, fallback.Piece, fallback.Move.Direction)
			action = fallback
		}

		if err := e.State.Apply(action.Piece, action.Move); err != nil {
			return game.NoPlayer, gameMetric, moveMetrics, errors.Wrapf(err, "turn %d: %s", turn, player)
		}
		logger.Debug().Msgf("turn %d: %s moved %s %s (jump=%t)\n%s", turn, player, action.Piece, action.Move.Direction, action.Move.Jump, e.State)
	}

	_, winner := e.State.IsTerminal()
	gameMetric.Winner = winner
	gameMetric.EndTime = time.Now()
	gameMetric.Duration = gameMetric.EndTime.Sub(gameMetric.StartTime)
	gameMetric.TotalMoves = len(moveMetrics)

	if winner == game.NoPlayer {
		logger.Info().Msgf("stopped after %d turns without a winner", e.maxTurns)
	} else {
		logger.Info().Msgf("%s won after %d moves", winner, gameMetric.TotalMoves)
	}
	return winner, gameMetric, moveMetrics, nil
}

func (e *LocalEngine) agentFor(player game.Player) agent.Agent {
	if player == game.Agent {
		return e.Agents[0]
	}
	return e.Agents[1]
}
