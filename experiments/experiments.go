package experiments

import (
	"context"
	"math"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"
	"lukechampine.com/frand"

	"checkers/engine"
	"checkers/experiments/metrics"
	"checkers/game"
	"checkers/searcher"
	"checkers/searcher/agent"
)

type gameResult struct {
	record metrics.GameRecord
	moves  []metrics.MoveMetric
}

// Run plays config.Games games for every match up, then summarizes the results and writes
// them under config.OutputDir.
func Run(ctx context.Context, config Config) (metrics.Summary, error) {
	if err := config.Validate(); err != nil {
		return metrics.Summary{}, err
	}

	config.Agents = append([]metrics.AgentConfig(nil), config.Agents...)
	configs := map[int]metrics.AgentConfig{}
	for i, c := range config.Agents {
		if c.Seed == 0 {
			c.Seed = frand.Uint64n(math.MaxUint64) + 1
			config.Agents[i] = c
			log.Info().Msgf("agent %d seeded with %d", c.ID, c.Seed)
		}
		configs[c.ID] = c
	}

	log.Info().Msgf("starting %s experiment...", config.Name)

	total := len(config.MatchUps) * config.Games
	results := make([]gameResult, total)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(config.Parallelism)
	for mi, matchUp := range config.MatchUps {
		config1 := configs[matchUp.Agent1]
		config2 := configs[matchUp.Agent2]
		log.Info().Msgf("queueing matchup %d of %d between agent1=%s and agent2=%s...", mi+1, len(config.MatchUps), config1, config2)

		for i := 0; i < config.Games; i++ {
			id := mi*config.Games + i + 1
			seed1 := config1.Seed + uint64(i)
			seed2 := config2.Seed + uint64(i)
			mi, i := mi, i // per-iteration copies (pre-Go 1.22 loop semantics)
			g.Go(func() error {
				if err := ctx.Err(); err != nil {
					return err
				}
				result, err := runGame(id, config, config1, config2, seed1, seed2)
				if err != nil {
					return errors.Wrapf(err, "game %d", id)
				}
				results[id-1] = result
				log.Info().Msgf("completed matchup %d of %d game %d of %d with winner: %s", mi+1, len(config.MatchUps), i+1, config.Games, result.record.Winner)
				return nil
			})
		}
	}
	if err := g.Wait(); err != nil {
		return metrics.Summary{}, err
	}

	log.Info().Msgf("completed %s experiment", config.Name)

	summary := summarize(config, results)
	if config.OutputDir == "" {
		return summary, nil
	}
	return summary, store(config, results, summary)
}

// runGame plays one game with fresh agents, so agents never share state across games
func runGame(id int, config Config, config1, config2 metrics.AgentConfig, seed1, seed2 uint64) (gameResult, error) {
	rules := config.Rules.Rules()
	agent1, err := newAgent(config1, seed1, rules)
	if err != nil {
		return gameResult{}, err
	}
	agent2, err := newAgent(config2, seed2, rules)
	if err != nil {
		return gameResult{}, err
	}

	e := engine.NewLocalEngine([2]agent.Agent{agent1, agent2}, rules,
		engine.WithMaxTurns(config.MaxTurns),
		engine.WithLabel(config1.String()+" vs "+config2.String()),
	)
	_, gameMetric, moveMetrics, err := e.Run()
	if err != nil {
		return gameResult{}, err
	}

	return gameResult{
		record: metrics.GameRecord{
			ID:         id,
			Agent1:     config1.ID,
			Agent2:     config2.ID,
			Seed1:      seed1,
			Seed2:      seed2,
			GameMetric: gameMetric,
		},
		moves: moveMetrics,
	}, nil
}

func newAgent(config metrics.AgentConfig, seed uint64, rules game.Rules) (agent.Agent, error) {
	switch config.Algorithm {
	case metrics.AlgorithmMinimax:
		return agent.NewMinimaxAgent(config.Depth), nil
	case metrics.AlgorithmAlphaBeta:
		return agent.NewAlphaBetaAgent(config.Depth), nil
	case metrics.AlgorithmMCTS:
		return agent.NewMCTSAgent(createMCTS(config, seed, rules), config.Iterations), nil
	case metrics.AlgorithmRandom:
		return agent.NewRandomAgent(seed), nil
	case metrics.AlgorithmFirst:
		return agent.NewFirstAgent(), nil
	}
	return nil, errors.Errorf("unknown algorithm %q", config.Algorithm)
}

func createMCTS(config metrics.AgentConfig, seed uint64, rules game.Rules) *searcher.MCTS {
	options := []searcher.Option{
		searcher.WithSeed(seed),
		searcher.WithRules(rules),
		searcher.WithMetrics(),
	}

	if config.Horizon > 0 {
		options = append(options, searcher.WithHorizon(config.Horizon))
	}
	if config.Exploration > 0 {
		options = append(options, searcher.WithExploration(config.Exploration))
	}
	if config.MaxNodes > 0 {
		options = append(options, searcher.WithMaxNodes(config.MaxNodes))
	}
	if evaluate, err := evaluation(config.Evaluation); err == nil {
		options = append(options, searcher.WithEvaluationFn(evaluate))
	}

	return searcher.NewMCTS(options...)
}

func summarize(config Config, results []gameResult) metrics.Summary {
	z := distuv.Normal{Mu: 0, Sigma: 1}.Quantile((1 + config.Confidence) / 2)

	summary := metrics.Summary{Experiment: config.Name, Confidence: config.Confidence}
	for mi, matchUp := range config.MatchUps {
		s := metrics.MatchUpSummary{Agent1: matchUp.Agent1, Agent2: matchUp.Agent2}
		lengths := make([]float64, 0, config.Games)
		for _, result := range results[mi*config.Games : (mi+1)*config.Games] {
			s.Games++
			switch result.record.Winner {
			case game.Agent:
				s.Wins1++
			case game.Opponent:
				s.Wins2++
			default:
				s.Draws++
			}
			lengths = append(lengths, float64(result.record.TotalMoves))
		}

		p := float64(s.Wins1) / float64(s.Games)
		margin := z * math.Sqrt(p*(1-p)/float64(s.Games))
		s.WinRate = p
		s.WinRateLow = math.Max(0, p-margin)
		s.WinRateHigh = math.Min(1, p+margin)
		if len(lengths) > 1 {
			s.MeanLength, s.StdDevLength = stat.MeanStdDev(lengths, nil)
		} else {
			s.MeanLength = stat.Mean(lengths, nil)
		}

		log.Info().Msgf("agent %d vs agent %d: %d-%d-%d, win rate %.2f [%.2f, %.2f]",
			s.Agent1, s.Agent2, s.Wins1, s.Wins2, s.Draws, s.WinRate, s.WinRateLow, s.WinRateHigh)
		summary.MatchUps = append(summary.MatchUps, s)
	}
	return summary
}

func store(config Config, results []gameResult, summary metrics.Summary) error {
	writer, err := metrics.NewWriter(config.OutputDir, config.Name)
	if err != nil {
		return errors.Wrap(err, "failed to create experiment writer")
	}

	gameRecords := make([]metrics.GameRecord, 0, len(results))
	moveRecords := []metrics.MoveRecord{}
	for _, result := range results {
		gameRecords = append(gameRecords, result.record)
		for _, mm := range result.moves {
			moveRecords = append(moveRecords, metrics.MoveRecord{
				Game:       result.record.ID,
				MoveMetric: mm,
			})
		}
	}

	if err := writer.WriteAgentConfigs(config.Agents); err != nil {
		return errors.Wrap(err, "failed to store agent configs")
	}
	log.Info().Msg("stored agent configs")

	if err := writer.WriteGameRecords(gameRecords); err != nil {
		return errors.Wrap(err, "failed to write game records")
	}
	log.Info().Msg("stored game records")

	if err := writer.WriteMoveRecords(moveRecords); err != nil {
		return errors.Wrap(err, "failed to write move records")
	}
	log.Info().Msg("stored move records")

	if err := writer.WriteSummary(summary); err != nil {
		return errors.Wrap(err, "failed to write summary")
	}
	log.Info().Msgf("stored summary in %s", writer.Dir())
	return nil
}
