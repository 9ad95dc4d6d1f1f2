package searcher

import (
	"fmt"

	"tablut/experiments/metrics"
	"tablut/game"
	"tablut/meta"

	"github.com/rs/zerolog/log"
)

type Option func(ab *AlphaBeta)

// Result is the outcome of a search: the move chosen at the root and its score
// from the defenders' perspective.
type Result struct {
	Move  game.Move
	Score int
}

// AlphaBeta is a fixed-depth minimax searcher. The defenders maximise and the
// attackers minimise.
type AlphaBeta struct {
	depth    int
	evaluate game.Evaluate
	pruning  bool
	metrics  metrics.Collector
}

func WithDepth(depth int) Option {
	return func(ab *AlphaBeta) {
		if depth > 0 {
			ab.depth = depth
		}
	}
}

func WithEvaluationFn(evaluate game.Evaluate) Option {
	return func(ab *AlphaBeta) {
		if evaluate != nil {
			ab.evaluate = evaluate
		}
	}
}

// WithoutPruning turns the search into plain minimax.
func WithoutPruning() Option {
	return func(ab *AlphaBeta) {
		ab.pruning = false
	}
}

func WithMetrics() Option {
	return func(ab *AlphaBeta) {
		ab.metrics = metrics.NewCollector()
	}
}

func NewAlphaBeta(options ...Option) *AlphaBeta {
	ab := &AlphaBeta{ // Default values
		depth:    meta.SearchDepth,
		evaluate: game.EvaluateMaterial,
		pruning:  true,
		metrics:  metrics.NewDummyCollector(),
	}
	for _, option := range options {
		option(ab)
	}
	return ab
}

func (ab *AlphaBeta) Depth() int {
	return ab.depth
}

// SelectMove returns the best move for the side to move in b. b is left
// untouched. The game must not be over and the side to move must have a legal
// move.
func (ab *AlphaBeta) SelectMove(b *game.Board) game.Move {
	result, _ := ab.Search(b)
	return result.Move
}

// Search is SelectMove that also reports the root score and search metrics.
func (ab *AlphaBeta) Search(b *game.Board) (Result, metrics.SearchMetric) {
	if b.Winner() != game.NoSide {
		panic(fmt.Sprintf("search on a finished game won by %s", b.Winner()))
	}
	if !b.HasMove(b.Turn()) {
		panic(fmt.Sprintf("search without a legal move for %s", b.Turn()))
	}

	board := b.Copy()
	ab.metrics.Start(ab.depth, ab.pruning)
	score, move := ab.search(board, ab.depth, 0, -infinity, infinity)
	metric := ab.metrics.Complete(score)

	log.Debug().Msgf("%s chose %s with score %d at depth %d", board.Turn(), move, score, ab.depth)
	return Result{Move: move, Score: score}, metric
}

// search returns the minimax score of b and, for a position with moves, the
// first move reaching that score. b is restored before returning.
//
// Only a strictly better score replaces the best move, so among equal scores
// the earliest move in generation order wins. Keeping the last one instead
// would let pruning change the chosen move, since a cut-off branch reports a
// bound that can tie the true best score.
func (ab *AlphaBeta) search(b *game.Board, depth, ply, alpha, beta int) (int, game.Move) {
	ab.metrics.AddNode(ply)
	if depth == 0 || b.Winner() != game.NoSide {
		ab.metrics.AddLeaf()
		return adjust(ab.evaluate(b), ply), game.Move{}
	}

	maximizing := b.Turn() == game.Defenders
	moves := b.LegalMoves(b.Turn())
	if len(moves) == 0 {
		// The side to move loses on its turn.
		ab.metrics.AddLeaf()
		if maximizing {
			return adjust(-game.WinningValue, ply), game.Move{}
		}
		return adjust(game.WinningValue, ply), game.Move{}
	}

	best := infinity
	if maximizing {
		best = -infinity
	}
	var bestMove game.Move
	count := b.MoveCount()
	for _, m := range moves {
		if err := b.ApplyMove(m); err != nil {
			panic(fmt.Sprintf("generated move rejected: %v", err))
		}
		score, _ := ab.search(b, depth-1, ply+1, alpha, beta)
		b.Undo()
		if b.MoveCount() != count {
			panic(fmt.Sprintf("move count %d after undoing %s, expected %d", b.MoveCount(), m, count))
		}

		if maximizing {
			if score > best {
				best, bestMove = score, m
			}
			alpha = max(alpha, score)
		} else {
			if score < best {
				best, bestMove = score, m
			}
			beta = min(beta, score)
		}
		if ab.pruning && beta <= alpha {
			ab.metrics.AddCutoff()
			break
		}
	}
	return best, bestMove
}
