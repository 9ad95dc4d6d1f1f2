package engine

import (
	"tablut/experiments/metrics"
	"tablut/game"
	"tablut/searcher"

	"golang.org/x/exp/rand"
)

// Agent chooses moves for whichever side is to move on the board it is given.
// The board is a copy the agent may use freely.
type Agent interface {
	FindMove(b *game.Board) (game.Move, metrics.SearchMetric)
}

type SearchAgent struct {
	searcher *searcher.AlphaBeta
}

func NewSearchAgent(ab *searcher.AlphaBeta) *SearchAgent {
	return &SearchAgent{searcher: ab}
}

func (a *SearchAgent) FindMove(b *game.Board) (game.Move, metrics.SearchMetric) {
	result, metric := a.searcher.Search(b)
	return result.Move, metric
}

// RandomAgent plays a uniformly random legal move. Agents with the same seed
// play the same moves.
type RandomAgent struct {
	rng *rand.Rand
}

func NewRandomAgent(seed uint64) *RandomAgent {
	return &RandomAgent{rng: rand.New(rand.NewSource(seed))}
}

func (a *RandomAgent) FindMove(b *game.Board) (game.Move, metrics.SearchMetric) {
	moves := b.LegalMoves(b.Turn())
	if len(moves) == 0 {
		panic("no legal moves at all")
	}
	return moves[a.rng.Intn(len(moves))], metrics.SearchMetric{}
}
