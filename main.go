package main

import (
	"flag"
	"os"

	"tablut/engine"
	"tablut/experiments"
	"tablut/meta"
	"tablut/searcher"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	mode := flag.String("mode", "game", "What to run: game or experiment")
	level := flag.String("level", "info", "Log level")
	config := flag.String("config", "", "Experiment YAML file, the built-in depth experiment if empty")
	out := flag.String("out", meta.OutputDir, "Directory for experiment results")
	depth := flag.Int("depth", meta.SearchDepth, "Search depth of both players in game mode")
	moveLimit := flag.Int("limit", meta.MoveLimit, "Moves per side before a draw in game mode")
	flag.Parse()

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	lvl, err := zerolog.ParseLevel(*level)
	if err != nil {
		log.Fatal().Err(err).Msg("bad log level")
	}
	zerolog.SetGlobalLevel(lvl)

	switch *mode {
	case "game":
		runGame(*depth, *moveLimit)
	case "experiment":
		runExperiment(*config, *out)
	default:
		log.Fatal().Msgf("unknown mode %q", *mode)
	}
}

// runGame plays one game between two searchers of the same depth.
func runGame(depth, moveLimit int) {
	newAgent := func() engine.Agent {
		return engine.NewSearchAgent(searcher.NewAlphaBeta(searcher.WithDepth(depth), searcher.WithMetrics()))
	}
	e, err := engine.LocalEngine(newAgent(), newAgent(), moveLimit)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to set up the game")
	}

	winner, gameMetric, moveMetrics, err := e.Run()
	if err != nil {
		log.Fatal().Err(err).Msg("game aborted")
	}
	nodes := 0
	for _, mm := range moveMetrics {
		nodes += mm.Nodes
	}
	log.Info().Msgf("winner: %s after %d moves in %s, %d nodes searched", winner, gameMetric.TotalMoves, gameMetric.Duration, nodes)
}

func runExperiment(path, out string) {
	config := experiments.DefaultConfig()
	if path != "" {
		var err error
		if config, err = experiments.LoadConfig(path); err != nil {
			log.Fatal().Err(err).Msg("failed to load experiment")
		}
	}
	if _, err := experiments.Run(config, out); err != nil {
		log.Fatal().Err(err).Msg("experiment failed")
	}
}
