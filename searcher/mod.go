package searcher

import (
	"math"

	"tablut/game"
)

// infinity bounds the search window. It is larger than any evaluator score.
const infinity = math.MaxInt32

// Searcher picks a move for the side to move.
type Searcher interface {
	SelectMove(b *game.Board) game.Move
}

// adjust pulls a decided score toward zero by the ply it was reached at, so
// that a quicker win scores higher and a slower loss scores higher.
func adjust(score, ply int) int {
	switch {
	case score >= game.WinningValue:
		return score - ply
	case score <= -game.WinningValue:
		return score + ply
	}
	return score
}
