package experiments

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"
	"time"

	"tablut/experiments/metrics"
	"tablut/game"

	"github.com/hashicorp/go-multierror"
	"github.com/stretchr/testify/require"
)

func TestConfig(t *testing.T) {
	t.Run("sample file", func(t *testing.T) {
		c, err := LoadConfig("depth.yaml")
		require.NoError(t, err)
		require.Equal(t, "depth", c.Name)
		require.Equal(t, 10, c.Games)
		require.Len(t, c.Agents, 4)
		require.Len(t, c.Matchups, 6)
		require.Equal(t, "material", c.Agents[1].Evaluator, "Evaluator should default to material")
		require.Equal(t, Matchup{Attacker: 0, Defender: 3}, c.Matchups[5])
	})

	t.Run("defaults", func(t *testing.T) {
		c, err := ParseConfig([]byte(`
name: tiny
agents:
  - {id: 1, kind: alphabeta}
  - {id: 2, kind: random}
matchups:
  - {attacker: 1, defender: 2}
`))
		require.NoError(t, err)
		require.Equal(t, 10, c.Games)
		require.Equal(t, 100, c.MoveLimit)
		require.Equal(t, 4, c.Agents[0].Depth)
		require.Zero(t, c.Agents[1].Depth, "Random agents do not search")
	})

	t.Run("reports every problem", func(t *testing.T) {
		_, err := ParseConfig([]byte(`
games: -1
agents:
  - {id: 1, kind: minimax}
  - {id: 1, kind: alphabeta, evaluator: deep}
matchups:
  - {attacker: 1, defender: 9}
`))
		require.Error(t, err)
		var merr *multierror.Error
		require.ErrorAs(t, err, &merr)
		// name, games, unknown kind, duplicate id, unknown evaluator, unknown agent
		require.Len(t, merr.Errors, 6, "%v", err)
	})

	t.Run("default config is valid", func(t *testing.T) {
		require.NoError(t, DefaultConfig().Validate())
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
		require.Error(t, err)
	})
}

func readCSV(t *testing.T, path string) [][]string {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	return rows
}

func TestRun(t *testing.T) {
	config := &Config{
		Name:      "smoke",
		Games:     2,
		MoveLimit: 5,
		Agents: []metrics.AgentConfig{
			{ID: 1, Kind: AlphaBetaAgent, Depth: 1, Evaluator: "material"},
			{ID: 2, Kind: RandomAgent, Seed: 5},
		},
		Matchups: []Matchup{{Attacker: 1, Defender: 2}, {Attacker: 2, Defender: 1}},
	}
	summary, err := Run(config, t.TempDir())
	require.NoError(t, err)
	require.Len(t, summary.Matchups, 2)

	for _, m := range summary.Matchups {
		require.Equal(t, 2, m.Games)
		require.Equal(t, m.Games, m.AttackerWins+m.DefenderWins+m.Draws)
		require.LessOrEqual(t, m.MeanMoves, 10.0, "Five moves per side at most")
		require.Greater(t, m.MeanNodes, 0.0, "The searcher plays in every game")
	}

	agents := readCSV(t, filepath.Join(summary.Dir, "agent_configs.csv"))
	require.Len(t, agents, 3, "Header plus one row per agent")
	require.Equal(t, []string{"id", "kind", "depth", "evaluator", "pruning", "seed"}, agents[0])

	games := readCSV(t, filepath.Join(summary.Dir, "game_records.csv"))
	require.Len(t, games, 5, "Header plus two games per matchup")

	moves := readCSV(t, filepath.Join(summary.Dir, "move_records.csv"))
	require.Greater(t, len(moves), 4)

	t.Run("rejects invalid configs", func(t *testing.T) {
		_, err := Run(&Config{}, t.TempDir())
		require.Error(t, err)
	})
}

func TestSummarize(t *testing.T) {
	matchup := Matchup{Attacker: 1, Defender: 2}
	games := []metrics.GameRecord{
		{ID: 1, Attacker: 1, Defender: 2, GameMetric: metrics.GameMetric{Winner: game.Attackers, TotalMoves: 10}},
		{ID: 2, Attacker: 1, Defender: 2, GameMetric: metrics.GameMetric{Winner: game.NoSide, TotalMoves: 20}},
		{ID: 3, Attacker: 2, Defender: 1, GameMetric: metrics.GameMetric{Winner: game.Defenders, TotalMoves: 99}},
	}
	moves := []metrics.MoveRecord{
		{Game: 1, MoveMetric: metrics.MoveMetric{SearchMetric: metrics.SearchMetric{Nodes: 100, Duration: time.Millisecond}}},
		{Game: 1, MoveMetric: metrics.MoveMetric{}}, // random agent, no search
		{Game: 2, MoveMetric: metrics.MoveMetric{SearchMetric: metrics.SearchMetric{Nodes: 300, Duration: time.Millisecond}}},
		{Game: 3, MoveMetric: metrics.MoveMetric{SearchMetric: metrics.SearchMetric{Nodes: 5000, Duration: time.Millisecond}}},
	}

	s := summarize(matchup, games, moves)
	require.Equal(t, 2, s.Games)
	require.Equal(t, 1, s.AttackerWins)
	require.Equal(t, 1, s.Draws)
	require.Zero(t, s.DefenderWins)
	require.Equal(t, 0.5, s.AttackerWinRate())
	require.InDelta(t, 15.0, s.MeanMoves, 1e-9)
	require.InDelta(t, 7.0710678, s.StdMoves, 1e-6, "Sample standard deviation")
	require.InDelta(t, 200.0, s.MeanNodes, 1e-9, "Moves without a search are ignored")
	require.InDelta(t, 200000.0, s.NodesPerSecond, 1e-6)

	empty := summarize(Matchup{Attacker: 7, Defender: 8}, games, moves)
	require.Zero(t, empty.Games)
	require.Zero(t, empty.MeanMoves)
	require.Zero(t, empty.NodesPerSecond)
}
