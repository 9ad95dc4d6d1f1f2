package engine

import (
	"time"

	"tablut/experiments/metrics"
	"tablut/game"
	"tablut/gamemaster"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

// Engine runs a local game between two agents.
type Engine struct {
	referee *gamemaster.Referee
	agents  map[game.Side]Agent
}

// LocalEngine sets up a game from the initial position. A positive moveLimit
// caps the moves per side.
func LocalEngine(attacker, defender Agent, moveLimit int) (*Engine, error) {
	return LocalEngineFrom(game.NewBoard(), attacker, defender, moveLimit)
}

func LocalEngineFrom(board *game.Board, attacker, defender Agent, moveLimit int) (*Engine, error) {
	if attacker == nil || defender == nil {
		panic("need an agent for each side")
	}
	referee, err := gamemaster.NewRefereeFrom(board, moveLimit)
	if err != nil {
		return nil, err
	}
	return &Engine{
		referee: referee,
		agents: map[game.Side]Agent{
			game.Attackers: attacker,
			game.Defenders: defender,
		},
	}, nil
}

// Run plays until a side wins or the move limit is reached. The winner is
// NoSide on a draw.
func (e *Engine) Run() (game.Side, metrics.GameMetric, []metrics.MoveMetric, error) {
	start := time.Now()
	log.Info().Msgf("%s are starting", e.referee.Board().Turn())

	var moveMetrics []metrics.MoveMetric
	for step := 1; !e.referee.Over(); step++ {
		board := e.referee.Board()
		side := board.Turn()

		move, metric := e.agents[side].FindMove(board)
		if err := e.referee.Play(move); err != nil {
			return game.NoSide, metrics.GameMetric{}, moveMetrics, errors.Wrapf(err, "%s at step %d", side, step)
		}
		moveMetrics = append(moveMetrics, metrics.MoveMetric{
			Step:         step,
			Side:         side,
			Move:         move,
			SearchMetric: metric,
		})

		u := <-e.referee.Updates()
		log.Debug().Msgf("step %d: %s played %s\n%s", step, side, u.Move, u.Board)
	}

	winner, draw := e.referee.Result()
	if draw {
		log.Info().Msgf("game drawn after %d moves", len(moveMetrics))
	} else {
		log.Info().Msgf("game won by the %s after %d moves", winner, len(moveMetrics))
	}

	end := time.Now()
	return winner, metrics.GameMetric{
		Winner:     winner,
		StartTime:  start,
		EndTime:    end,
		Duration:   end.Sub(start),
		TotalMoves: len(moveMetrics),
	}, moveMetrics, nil
}
