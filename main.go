package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"checkers/engine"
	"checkers/experiments"
	"checkers/game"
	"checkers/meta"
	"checkers/searcher"
	"checkers/searcher/agent"
)

func main() {
	configPath := flag.String("config", "", "YAML experiment config; overrides -experiment")
	experiment := flag.String("experiment", "tournament", "Built-in experiment: tournament or iterations")
	output := flag.String("output", "results", "Directory for experiment results; empty to skip writing")
	games := flag.Int("games", 0, "Games per match up (0 keeps the config's value)")
	parallelism := flag.Int("parallelism", 0, "Games played at once (0 keeps the config's value)")
	mandatory := flag.Bool("mandatory-capture", false, "Make captures mandatory in play")
	demo := flag.Bool("demo", false, "Play and print a single MCTS vs alpha-beta game instead")
	dotDepth := flag.Int("dot", 0, "With -demo, print the MCTS tree to this depth as Graphviz after the first move")
	level := flag.String("log-level", "info", "Log level: debug, info, warn, error")
	flag.Parse()

	lvl, err := zerolog.ParseLevel(*level)
	if err != nil {
		lvl = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(lvl)
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.TimeOnly})

	if *demo {
		runDemo(*mandatory, *dotDepth)
		return
	}

	var config experiments.Config
	switch {
	case *configPath != "":
		config, err = experiments.LoadConfig(*configPath)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to load config")
		}
	case *experiment == "iterations":
		config = experiments.IterationsConfig()
	case *experiment == "tournament":
		config = experiments.DefaultConfig()
	default:
		log.Fatal().Msgf("unknown experiment %q", *experiment)
	}

	config.OutputDir = *output
	if *games > 0 {
		config.Games = *games
	}
	if *parallelism > 0 {
		config.Parallelism = *parallelism
	}
	if *mandatory {
		config.Rules.MandatoryCapture = true
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if _, err := experiments.Run(ctx, config); err != nil {
		log.Fatal().Err(err).Msg("experiment failed")
	}
}

func runDemo(mandatory bool, dotDepth int) {
	rules := game.DefaultRules()
	if mandatory {
		rules.Capture = game.CapturesMandatory
	}

	mcts := searcher.NewMCTS(searcher.WithMetrics())
	agents := [2]agent.Agent{
		agent.NewMCTSAgent(mcts, meta.ITERATIONS),
		agent.NewAlphaBetaAgent(meta.DEPTH),
	}

	if dotDepth > 0 {
		board := game.NewBoard(rules)
		mcts.Search(board, game.Agent, meta.ITERATIONS)
		dot, err := mcts.Dot(dotDepth)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to render tree")
		}
		os.Stdout.WriteString(dot)
	}

	e := engine.NewLocalEngine(agents, rules, engine.WithLabel("demo"))
	winner, gameMetric, _, err := e.Run()
	if err != nil {
		log.Fatal().Err(err).Msg("game failed")
	}
	log.Info().Msgf("final board:\n%s", e.State)
	log.Info().Msgf("winner: %s after %d moves in %s", winner, gameMetric.TotalMoves, gameMetric.Duration)
}
