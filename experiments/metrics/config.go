package metrics

import "fmt"

// Algorithms an AgentConfig can select
const (
	AlgorithmMinimax   = "minimax"
	AlgorithmAlphaBeta = "alphabeta"
	AlgorithmMCTS      = "mcts"
	AlgorithmRandom    = "random"
	AlgorithmFirst     = "first"
)

// AgentConfig describes one tournament participant. Fields not used by the algorithm are
// ignored: Depth applies to minimax and alpha-beta, the MCTS fields to MCTS only.
type AgentConfig struct {
	ID          int     `yaml:"id"`
	Algorithm   string  `yaml:"algorithm"`
	Depth       int     `yaml:"depth,omitempty"`
	Iterations  int     `yaml:"iterations,omitempty"`
	Horizon     int     `yaml:"horizon,omitempty"`
	Exploration float64 `yaml:"exploration,omitempty"`
	MaxNodes    int     `yaml:"max_nodes,omitempty"`
	Seed        uint64  `yaml:"seed,omitempty"` // 0 draws a fresh seed
	Evaluation  string  `yaml:"evaluation,omitempty"`
}

func (c AgentConfig) String() string {
	switch c.Algorithm {
	case AlgorithmMinimax, AlgorithmAlphaBeta:
		return fmt.Sprintf("%s#%d(depth=%d)", c.Algorithm, c.ID, c.Depth)
	case AlgorithmMCTS:
		return fmt.Sprintf("%s#%d(iterations=%d, horizon=%d, c=%g)", c.Algorithm, c.ID, c.Iterations, c.Horizon, c.Exploration)
	}
	return fmt.Sprintf("%s#%d", c.Algorithm, c.ID)
}

// MatchUpSummary aggregates the games between two agents. Agent1 plays the agent side.
type MatchUpSummary struct {
	Agent1       int     `yaml:"agent1"`
	Agent2       int     `yaml:"agent2"`
	Games        int     `yaml:"games"`
	Wins1        int     `yaml:"wins1"`
	Wins2        int     `yaml:"wins2"`
	Draws        int     `yaml:"draws"`
	WinRate      float64 `yaml:"win_rate"` // Agent1's
	WinRateLow   float64 `yaml:"win_rate_low"`
	WinRateHigh  float64 `yaml:"win_rate_high"`
	MeanLength   float64 `yaml:"mean_length"`
	StdDevLength float64 `yaml:"stddev_length"`
}

type Summary struct {
	Experiment string           `yaml:"experiment"`
	Confidence float64          `yaml:"confidence"`
	MatchUps   []MatchUpSummary `yaml:"match_ups"`
}
