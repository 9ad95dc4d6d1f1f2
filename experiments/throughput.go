package experiments

import (
	"tablut/experiments/metrics"
	"tablut/game"
	"tablut/utils"

	"github.com/rs/zerolog/log"
	"gonum.org/v1/gonum/stat"
)

type Summary struct {
	Dir      string // where the records were written
	Matchups []MatchupSummary
}

type MatchupSummary struct {
	Matchup
	Games        int
	AttackerWins int
	DefenderWins int
	Draws        int

	MeanMoves float64 // game length
	StdMoves  float64

	MeanNodes      float64 // per searched move
	StdNodes       float64
	NodesPerSecond float64
}

func (s MatchupSummary) AttackerWinRate() float64 {
	return utils.Ratio(s.AttackerWins, s.Games)
}

func (s MatchupSummary) DefenderWinRate() float64 {
	return utils.Ratio(s.DefenderWins, s.Games)
}

func (s *Summary) Log() {
	for _, m := range s.Matchups {
		log.Info().Msgf("attacker %d vs defender %d: %d games, attackers %.0f%%, defenders %.0f%%, %d draws, %.1f±%.1f moves, %.0f nodes/move, %.0f nodes/s",
			m.Attacker, m.Defender, m.Games,
			100*m.AttackerWinRate(), 100*m.DefenderWinRate(), m.Draws,
			m.MeanMoves, m.StdMoves, m.MeanNodes, m.NodesPerSecond)
	}
}

// summarize aggregates the records of every game played in matchup.
func summarize(matchup Matchup, games []metrics.GameRecord, moves []metrics.MoveRecord) MatchupSummary {
	s := MatchupSummary{Matchup: matchup}
	played := map[int]bool{}
	var lengths []float64
	for _, g := range games {
		if g.Attacker != matchup.Attacker || g.Defender != matchup.Defender {
			continue
		}
		played[g.ID] = true
		s.Games++
		switch g.Winner {
		case game.Attackers:
			s.AttackerWins++
		case game.Defenders:
			s.DefenderWins++
		default:
			s.Draws++
		}
		lengths = append(lengths, float64(g.TotalMoves))
	}

	var nodes []float64
	var totalNodes, totalNanos int64
	for _, m := range moves {
		if !played[m.Game] || m.Nodes == 0 {
			continue
		}
		nodes = append(nodes, float64(m.Nodes))
		totalNodes += int64(m.Nodes)
		totalNanos += int64(m.Duration)
	}

	s.MeanMoves, s.StdMoves = meanStdDev(lengths)
	s.MeanNodes, s.StdNodes = meanStdDev(nodes)
	s.NodesPerSecond = 1e9 * utils.Ratio(totalNodes, totalNanos)
	return s
}

// meanStdDev is stat.MeanStdDev with a zero deviation for fewer than two
// samples and zeros for none.
func meanStdDev(x []float64) (mean, std float64) {
	switch len(x) {
	case 0:
		return 0, 0
	case 1:
		return x[0], 0
	}
	return stat.MeanStdDev(x, nil)
}
