package experiments

import (
	"tablut/engine"
	"tablut/experiments/metrics"
	"tablut/searcher"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

// Run plays every matchup of config, stores the records under outDir and
// returns a summary per matchup.
func Run(config *Config, outDir string) (*Summary, error) {
	if err := config.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid experiment config")
	}

	count := 0
	gameRecords := []metrics.GameRecord{}
	moveRecords := []metrics.MoveRecord{}

	log.Info().Msgf("starting %s experiment...", config.Name)

	for mi, matchup := range config.Matchups {
		attacker := config.agent(matchup.Attacker)
		defender := config.agent(matchup.Defender)

		log.Info().Msgf("starting matchup %d of %d between attacker=%+v and defender=%+v...", mi+1, len(config.Matchups), attacker, defender)

		for i := 0; i < config.Games; i++ {
			winner, gameMetric, moveMetrics, err := runGame(attacker, defender, config.MoveLimit, uint64(i))
			if err != nil {
				return nil, errors.Wrapf(err, "matchup %d game %d", mi+1, i+1)
			}
			count++
			gameRecords = append(gameRecords, metrics.GameRecord{
				ID:         count,
				Attacker:   attacker.ID,
				Defender:   defender.ID,
				GameMetric: gameMetric,
			})
			for _, mm := range moveMetrics {
				moveRecords = append(moveRecords, metrics.MoveRecord{
					Game:       count,
					MoveMetric: mm,
				})
			}

			log.Info().Msgf("completed matchup %d of %d game %d of %d with winner: %s", mi+1, len(config.Matchups), i+1, config.Games, winner)
		}
	}

	log.Info().Msgf("completed %s experiment", config.Name)

	writer, err := metrics.NewWriter(outDir, config.Name)
	if err != nil {
		return nil, err
	}
	if err := writer.WriteAgentConfigs(config.Agents); err != nil {
		return nil, err
	}
	log.Info().Msg("stored agent configs")
	if err := writer.WriteGameRecords(gameRecords); err != nil {
		return nil, err
	}
	log.Info().Msg("stored game records")
	if err := writer.WriteMoveRecords(moveRecords); err != nil {
		return nil, err
	}
	log.Info().Msgf("stored move records in %s", writer.Dir())

	summary := &Summary{Dir: writer.Dir()}
	for _, matchup := range config.Matchups {
		summary.Matchups = append(summary.Matchups, summarize(matchup, gameRecords, moveRecords))
	}
	summary.Log()
	return summary, nil
}

// runGame plays a single game. Random agents are reseeded per game so that
// repeated games differ.
func runGame(attacker, defender metrics.AgentConfig, moveLimit int, game uint64) (string, metrics.GameMetric, []metrics.MoveMetric, error) {
	e, err := engine.LocalEngine(createAgent(attacker, game), createAgent(defender, game), moveLimit)
	if err != nil {
		return "", metrics.GameMetric{}, nil, err
	}
	winner, gameMetric, moveMetrics, err := e.Run()
	if err != nil {
		return "", gameMetric, moveMetrics, err
	}
	return winner.String(), gameMetric, moveMetrics, nil
}

func createAgent(config metrics.AgentConfig, game uint64) engine.Agent {
	if config.Kind == RandomAgent {
		return engine.NewRandomAgent(config.Seed + game)
	}

	options := []searcher.Option{
		searcher.WithDepth(config.Depth),
		searcher.WithEvaluationFn(evaluators[config.Evaluator]),
		searcher.WithMetrics(),
	}
	if config.NoPruning {
		options = append(options, searcher.WithoutPruning())
	}
	return engine.NewSearchAgent(searcher.NewAlphaBeta(options...))
}
