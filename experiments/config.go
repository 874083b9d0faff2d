package experiments

import (
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"checkers/experiments/metrics"
	"checkers/game"
	"checkers/meta"
)

// MatchUp pairs two agent configs by ID. Agent1 plays game.Agent and moves first.
type MatchUp struct {
	Agent1 int `yaml:"agent1"`
	Agent2 int `yaml:"agent2"`
}

type RulesConfig struct {
	MandatoryCapture bool `yaml:"mandatory_capture"`
	DecisiveCapture  bool `yaml:"decisive_capture"`
}

func (r RulesConfig) Rules() game.Rules {
	capture := game.CapturesNotMandatory
	if r.MandatoryCapture {
		capture = game.CapturesMandatory
	}
	return game.Rules{Capture: capture, DecisiveCapture: r.DecisiveCapture}
}

type Config struct {
	Name        string                `yaml:"name"`
	OutputDir   string                `yaml:"output_dir"` // Results are not written when empty
	Games       int                   `yaml:"games"`      // Per match up
	Parallelism int                   `yaml:"parallelism"`
	MaxTurns    int                   `yaml:"max_turns"`
	Confidence  float64               `yaml:"confidence"` // Win rate interval, in (0, 1)
	Rules       RulesConfig           `yaml:"rules"`
	Agents      []metrics.AgentConfig `yaml:"agents"`
	MatchUps    []MatchUp             `yaml:"match_ups"`
}

// LoadConfig reads a YAML config. Missing fields keep the defaults of DefaultConfig, except
// agents and match ups which replace the defaults when present.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, errors.Wrap(err, "failed to read config")
	}

	config := DefaultConfig()
	config.Agents = nil
	config.MatchUps = nil
	if err := yaml.Unmarshal(data, &config); err != nil {
		return Config{}, errors.Wrapf(err, "failed to parse config %s", path)
	}
	if len(config.Agents) == 0 {
		defaults := DefaultConfig()
		config.Agents = defaults.Agents
		config.MatchUps = defaults.MatchUps
	}
	return config, config.Validate()
}

func (c Config) Validate() error {
	if c.Games <= 0 {
		return errors.Errorf("games must be positive, got %d", c.Games)
	}
	if c.Parallelism <= 0 {
		return errors.Errorf("parallelism must be positive, got %d", c.Parallelism)
	}
	if c.Confidence <= 0 || c.Confidence >= 1 {
		return errors.Errorf("confidence must be in (0, 1), got %g", c.Confidence)
	}
	if len(c.MatchUps) == 0 {
		return errors.New("no match ups configured")
	}

	ids := map[int]bool{}
	for _, a := range c.Agents {
		if ids[a.ID] {
			return errors.Errorf("duplicate agent id %d", a.ID)
		}
		ids[a.ID] = true
		switch a.Algorithm {
		case metrics.AlgorithmMinimax, metrics.AlgorithmAlphaBeta:
			if a.Depth <= 0 {
				return errors.Errorf("agent %d: depth must be positive", a.ID)
			}
		case metrics.AlgorithmMCTS:
			if a.Iterations <= 0 {
				return errors.Errorf("agent %d: iterations must be positive", a.ID)
			}
		case metrics.AlgorithmRandom, metrics.AlgorithmFirst:
		default:
			return errors.Errorf("agent %d: unknown algorithm %q", a.ID, a.Algorithm)
		}
		if _, err := evaluation(a.Evaluation); err != nil {
			return errors.Wrapf(err, "agent %d", a.ID)
		}
	}
	for _, m := range c.MatchUps {
		if !ids[m.Agent1] || !ids[m.Agent2] {
			return errors.Errorf("match up %d vs %d references an unknown agent", m.Agent1, m.Agent2)
		}
	}
	return nil
}

func evaluation(name string) (game.Evaluate, error) {
	switch name {
	case "", "material":
		return game.EvaluateMaterial, nil
	case "advancement":
		return game.EvaluateAdvancement, nil
	}
	return nil, errors.Errorf("unknown evaluation %q", name)
}

// DefaultConfig pits a 5-iteration MCTS agent against depth-3 minimax and alpha-beta
func DefaultConfig() Config {
	return Config{
		Name:        "tournament",
		Games:       meta.NUM_GAMES,
		Parallelism: meta.PARALLELISM,
		MaxTurns:    meta.MAX_TURNS,
		Confidence:  0.95,
		Rules:       RulesConfig{DecisiveCapture: true},
		Agents: []metrics.AgentConfig{
			{ID: 1, Algorithm: metrics.AlgorithmMCTS, Iterations: meta.ITERATIONS, Horizon: meta.HORIZON, Exploration: 2},
			{ID: 2, Algorithm: metrics.AlgorithmMinimax, Depth: meta.DEPTH},
			{ID: 3, Algorithm: metrics.AlgorithmAlphaBeta, Depth: meta.DEPTH},
		},
		MatchUps: []MatchUp{
			{Agent1: 1, Agent2: 2},
			{Agent1: 1, Agent2: 3},
		},
	}
}

// IterationsConfig pairs MCTS agents of growing budgets against a depth-3 alpha-beta baseline
func IterationsConfig() Config {
	config := DefaultConfig()
	config.Name = "iterations"
	baseline := metrics.AgentConfig{ID: 0, Algorithm: metrics.AlgorithmAlphaBeta, Depth: meta.DEPTH}
	config.Agents = []metrics.AgentConfig{baseline}
	config.MatchUps = nil
	for i, iterations := range []int{5, 20, 80, 320} {
		config.Agents = append(config.Agents, metrics.AgentConfig{
			ID:          i + 1,
			Algorithm:   metrics.AlgorithmMCTS,
			Iterations:  iterations,
			Horizon:     meta.HORIZON,
			Exploration: 2,
		})
		config.MatchUps = append(config.MatchUps, MatchUp{Agent1: i + 1, Agent2: baseline.ID})
	}
	return config
}
