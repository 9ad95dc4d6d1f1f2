package gamemaster

import (
	"tablut/game"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"golang.org/x/exp/slices"
)

var ErrGameOver = errors.New("game is over")

// Update is published after every accepted move. Board is a private copy.
type Update struct {
	Move  game.Move
	Board *game.Board
}

// Referee owns the canonical board of a local game. Players only ever see
// copies of it and submit moves through Play.
type Referee struct {
	board    *game.Board
	updateCh chan Update
	gameOver bool
}

// NewReferee starts a game from the initial position. A positive moveLimit
// bounds the number of moves per side, after which the game is drawn.
func NewReferee(moveLimit int) (*Referee, error) {
	return NewRefereeFrom(game.NewBoard(), moveLimit)
}

// NewRefereeFrom starts a game from board, which the referee takes ownership of.
func NewRefereeFrom(board *game.Board, moveLimit int) (*Referee, error) {
	if moveLimit > 0 {
		if err := board.SetMoveLimit(moveLimit); err != nil {
			return nil, err
		}
	}
	r := &Referee{
		board:    board,
		updateCh: make(chan Update, 1),
	}
	r.settle()
	if r.gameOver {
		close(r.updateCh)
	}
	return r, nil
}

// Board returns a copy of the current position.
func (r *Referee) Board() *game.Board {
	return r.board.Copy()
}

// Updates delivers one Update per accepted move and is closed when the game
// ends. It buffers a single update, so Play blocks until the previous update
// has been received.
func (r *Referee) Updates() <-chan Update {
	return r.updateCh
}

// Over reports whether the game has ended.
func (r *Referee) Over() bool {
	return r.gameOver
}

// Result returns the winner, or NoSide with draw set when the move limit ran
// out. Both are zero while the game is in progress.
func (r *Referee) Result() (winner game.Side, draw bool) {
	if !r.gameOver {
		return game.NoSide, false
	}
	winner = r.board.Winner()
	return winner, winner == game.NoSide
}

// Play validates move against the legal moves of the side to move and applies
// it.
func (r *Referee) Play(move game.Move) error {
	if r.gameOver {
		return ErrGameOver
	}

	turn := r.board.Turn()
	if !slices.Contains(r.board.LegalMoves(turn), move) {
		log.Warn().Msgf("rejected %s for %s", move, turn)
		return errors.Wrapf(game.ErrIllegalMove, "%s for %s", move, turn)
	}
	if err := r.board.ApplyMove(move); err != nil {
		return err
	}

	r.settle()
	r.updateCh <- Update{Move: move, Board: r.board.Copy()}
	if r.gameOver {
		close(r.updateCh)
	}
	return nil
}

// Undo takes back the last move of a game in progress.
func (r *Referee) Undo() error {
	if r.gameOver {
		return ErrGameOver
	}
	r.board.Undo()
	return nil
}

// settle ends the game if it has been decided or drawn.
func (r *Referee) settle() {
	// A side left without moves loses before it has to play.
	if !r.board.LimitReached() && r.board.ResolveStalemate() {
		log.Debug().Msgf("%s has no legal move", r.board.Turn())
	}

	r.gameOver = r.board.Winner() != game.NoSide || r.board.LimitReached()
}
