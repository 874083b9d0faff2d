package experiments

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"checkers/experiments/metrics"
	"checkers/game"
)

func quickConfig(dir string) Config {
	return Config{
		Name:        "quick",
		OutputDir:   dir,
		Games:       3,
		Parallelism: 2,
		MaxTurns:    30,
		Confidence:  0.95,
		Rules:       RulesConfig{DecisiveCapture: true},
		Agents: []metrics.AgentConfig{
			{ID: 1, Algorithm: metrics.AlgorithmMCTS, Iterations: 5, Horizon: 10, Exploration: 2, Seed: 17},
			{ID: 2, Algorithm: metrics.AlgorithmAlphaBeta, Depth: 2},
			{ID: 3, Algorithm: metrics.AlgorithmRandom, Seed: 3},
		},
		MatchUps: []MatchUp{{Agent1: 1, Agent2: 2}, {Agent1: 3, Agent2: 1}},
	}
}

func TestRun(t *testing.T) {
	dir := t.TempDir()
	summary, err := Run(context.Background(), quickConfig(dir))
	require.NoError(t, err)

	require.Equal(t, "quick", summary.Experiment)
	require.Len(t, summary.MatchUps, 2)
	for _, s := range summary.MatchUps {
		require.Equal(t, 3, s.Games)
		require.Equal(t, s.Games, s.Wins1+s.Wins2+s.Draws)
		require.LessOrEqual(t, s.WinRateLow, s.WinRate)
		require.GreaterOrEqual(t, s.WinRateHigh, s.WinRate)
		require.GreaterOrEqual(t, s.WinRateLow, 0.0)
		require.LessOrEqual(t, s.WinRateHigh, 1.0)
		require.LessOrEqual(t, s.MeanLength, 30.0)
	}

	runs, err := filepath.Glob(filepath.Join(dir, "quick", "*"))
	require.NoError(t, err)
	require.Len(t, runs, 1)
	for _, name := range []string{"agent_configs.csv", "game_records.csv", "move_records.csv", "summary.yaml"} {
		_, err := os.Stat(filepath.Join(runs[0], name))
		require.NoError(t, err, "%s should be written", name)
	}
}

func TestRunIsReproducible(t *testing.T) {
	config := quickConfig("")
	first, err := Run(context.Background(), config)
	require.NoError(t, err)
	second, err := Run(context.Background(), config)
	require.NoError(t, err)
	require.Equal(t, first, second, "Seeded agents should replay the same games")
}

func TestRunCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := Run(ctx, quickConfig(""))
	require.ErrorIs(t, err, context.Canceled)
}

func TestSeedsDrawnWhenUnset(t *testing.T) {
	config := quickConfig("")
	config.Agents[2].Seed = 0
	_, err := Run(context.Background(), config)
	require.NoError(t, err)
	require.Zero(t, config.Agents[2].Seed, "Caller's config should not be modified")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(c *Config)
	}{
		{"no games", func(c *Config) { c.Games = 0 }},
		{"no parallelism", func(c *Config) { c.Parallelism = 0 }},
		{"confidence out of range", func(c *Config) { c.Confidence = 1 }},
		{"no match ups", func(c *Config) { c.MatchUps = nil }},
		{"duplicate agent", func(c *Config) { c.Agents[1].ID = 1 }},
		{"unknown algorithm", func(c *Config) { c.Agents[0].Algorithm = "expectimax" }},
		{"missing depth", func(c *Config) { c.Agents[1].Depth = 0 }},
		{"missing iterations", func(c *Config) { c.Agents[0].Iterations = 0 }},
		{"unknown evaluation", func(c *Config) { c.Agents[0].Evaluation = "learned" }},
		{"unknown agent in match up", func(c *Config) { c.MatchUps[0].Agent2 = 9 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := quickConfig("")
			tt.modify(&c)
			require.Error(t, c.Validate())
		})
	}

	require.NoError(t, DefaultConfig().Validate())
	require.NoError(t, IterationsConfig().Validate())
}

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := []byte(`
name: custom
games: 4
rules:
  mandatory_capture: true
agents:
  - id: 1
    algorithm: mcts
    iterations: 10
    evaluation: advancement
  - id: 2
    algorithm: first
match_ups:
  - agent1: 1
    agent2: 2
`)
	require.NoError(t, os.WriteFile(path, data, 0644))

	config, err := LoadConfig(path)
	require.NoError(t, err)
	require.Equal(t, "custom", config.Name)
	require.Equal(t, 4, config.Games)
	require.Equal(t, DefaultConfig().Parallelism, config.Parallelism, "Unset fields keep defaults")
	require.Equal(t, game.Rules{Capture: game.CapturesMandatory, DecisiveCapture: true}, config.Rules.Rules())
	require.Len(t, config.Agents, 2)
	require.Equal(t, []MatchUp{{Agent1: 1, Agent2: 2}}, config.MatchUps)

	t.Run("rejecting invalid files", func(t *testing.T) {
		bad := filepath.Join(t.TempDir(), "bad.yaml")
		require.NoError(t, os.WriteFile(bad, []byte("games: -1\n"), 0644))
		_, err := LoadConfig(bad)
		require.Error(t, err)

		_, err = LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
		require.Error(t, err)
	})
}
