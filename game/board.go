package game

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

var (
	ErrIllegalMove = errors.New("illegal move")
	ErrMoveLimit   = errors.New("move limit already reached")
	ErrBadBoard    = errors.New("bad board layout")
)

// Initial positions of the attackers.
var initialAttackers = []Square{
	MustSq(0, 3), MustSq(0, 4), MustSq(0, 5), MustSq(1, 4),
	MustSq(8, 3), MustSq(8, 4), MustSq(8, 5), MustSq(7, 4),
	MustSq(3, 0), MustSq(4, 0), MustSq(5, 0), MustSq(4, 1),
	MustSq(3, 8), MustSq(4, 8), MustSq(5, 8), MustSq(4, 7),
}

// Initial positions of the defenders of the king.
var initialDefenders = []Square{
	NThrone, EThrone, SThrone, WThrone,
	MustSq(4, 6), MustSq(4, 2), MustSq(2, 4), MustSq(6, 4),
}

// position is the repetition signature of a board: the side to move followed by
// the encoding of every square.
type position [NumSquares + 1]byte

// capture records a piece removed by a move so that undo can restore it.
type capture struct {
	square Square
	piece  Piece
}

// entry is the undo record of one applied move.
type entry struct {
	move     Move
	captures [4]capture
	nCapture int
	winner   Side // status before the move
	repeated bool // status before the move
	position position
}

// Board is the mutable state of a Tablut game. It is changed only through
// ApplyMove and Undo, and is not safe for concurrent use.
type Board struct {
	grid      [NumSquares]Piece
	turn      Side
	winner    Side
	repeated  bool
	moveLimit int

	played int              // moves dropped from the log by ClearUndo
	log    []entry          // one entry per undoable move
	seen   map[position]int // signatures of every position on the current line
}

// NewBoard returns a board in the initial position with the attackers to move.
func NewBoard() *Board {
	b := &Board{}
	for _, sq := range initialAttackers {
		b.grid[sq] = Attacker
	}
	for _, sq := range initialDefenders {
		b.grid[sq] = Defender
	}
	b.grid[Throne] = King
	b.reset(Attackers)
	return b
}

// ParseBoard builds a board from a textual layout in the format produced by
// Render: nine rows from top (row 9) to bottom (row 1), one character per square.
// Whitespace and coordinate labels are ignored. The position is treated as the
// start of a new game with turn to move.
func ParseBoard(layout string, turn Side) (*Board, error) {
	if turn != Attackers && turn != Defenders {
		return nil, errors.Wrapf(ErrBadBoard, "turn must be a side, got %s", turn)
	}
	b := &Board{}
	row := Size
	kings := 0
	for _, line := range strings.Split(layout, "\n") {
		var cells []Piece
		for i := 0; i < len(line); i++ {
			if p, ok := parsePiece(line[i]); ok {
				cells = append(cells, p)
			}
		}
		if len(cells) == 0 {
			continue
		}
		if len(cells) != Size {
			return nil, errors.Wrapf(ErrBadBoard, "row %q has %d squares", line, len(cells))
		}
		row--
		if row < 0 {
			return nil, errors.Wrap(ErrBadBoard, "too many rows")
		}
		for col, p := range cells {
			sq := MustSq(col, row)
			if p == King {
				kings++
			} else if sq == Throne && p != Empty {
				return nil, errors.Wrapf(ErrBadBoard, "only the king may stand on the throne, got %s", p)
			}
			b.grid[sq] = p
		}
	}
	if row != 0 {
		return nil, errors.Wrapf(ErrBadBoard, "expected %d rows, got %d", Size, Size-row)
	}
	if kings > 1 {
		return nil, errors.Wrapf(ErrBadBoard, "%d kings", kings)
	}
	b.reset(turn)
	return b, nil
}

// reset starts a fresh game from the current grid.
func (b *Board) reset(turn Side) {
	b.turn = turn
	b.winner = NoSide
	b.repeated = false
	b.played = 0
	b.log = nil
	b.seen = map[position]int{b.signature(): 1}
}

// Copy returns a deep copy of b, including its undo history.
func (b *Board) Copy() *Board {
	c := *b
	c.log = make([]entry, len(b.log), cap(b.log))
	copy(c.log, b.log)
	c.seen = make(map[position]int, len(b.seen))
	for pos, n := range b.seen {
		c.seen[pos] = n
	}
	return &c
}

// Get returns the piece on sq.
func (b *Board) Get(sq Square) Piece {
	return b.grid[sq]
}

// Turn returns the side to move.
func (b *Board) Turn() Side {
	return b.turn
}

// Winner returns the side that has won, or NoSide if the game is undecided.
func (b *Board) Winner() Side {
	return b.winner
}

// Repeated reports whether the current position won by repetition.
func (b *Board) Repeated() bool {
	return b.repeated
}

// MoveCount returns the number of applied moves that have not been undone.
func (b *Board) MoveCount() int {
	return b.played + len(b.log)
}

// MoveLimit returns the per-side move limit, 0 if none is set.
func (b *Board) MoveLimit() int {
	return b.moveLimit
}

// SetMoveLimit limits the game to n moves per side. It is an error if that many
// moves have already been played.
func (b *Board) SetMoveLimit(n int) error {
	if n <= 0 || b.MoveCount() >= 2*n {
		return errors.Wrapf(ErrMoveLimit, "limit %d with %d moves played", n, b.MoveCount())
	}
	b.moveLimit = n
	return nil
}

// LimitReached reports whether both sides have used up the move limit.
func (b *Board) LimitReached() bool {
	return b.moveLimit > 0 && b.MoveCount() >= 2*b.moveLimit
}

// KingSquare returns the king's square, or NoSquare once it has been captured.
func (b *Board) KingSquare() Square {
	for sq, p := range b.grid {
		if p == King {
			return Square(sq)
		}
	}
	return NoSquare
}

// Count returns the number of pieces on side, the king included.
func (b *Board) Count(side Side) int {
	n := 0
	for _, p := range b.grid {
		if p.Side() == side {
			n++
		}
	}
	return n
}

// IsLegalOrigin reports whether the piece on from belongs to the side to move.
// Squares off the board are never legal origins.
func (b *Board) IsLegalOrigin(from Square) bool {
	return from.valid() && b.grid[from].Side() == b.turn
}

// IsLegalMove reports whether from-to is a legal move in the current position.
func (b *Board) IsLegalMove(from, to Square) bool {
	if !from.valid() || !to.valid() || from == to || !b.IsLegalOrigin(from) {
		return false
	}
	if to == Throne && !b.grid[from].IsKing() {
		return false
	}
	return b.isUnblocked(from, to)
}

// IsLegal reports whether m is a legal move in the current position.
func (b *Board) IsLegal(m Move) bool {
	return b.IsLegalMove(m.From, m.To)
}

// isUnblocked reports whether from-to is a straight line whose squares after
// from, the destination included, are all empty.
func (b *Board) isUnblocked(from, to Square) bool {
	d, ok := from.Direction(to)
	if !ok {
		return false
	}
	for _, sq := range from.Ray(d) {
		if b.grid[sq] != Empty {
			return false
		}
		if sq == to {
			return true
		}
	}
	return false
}

// LegalMoves returns every legal move for side, regardless of whose turn it
// is.
func (b *Board) LegalMoves(side Side) []Move {
	var moves []Move
	b.eachMove(side, func(m Move) bool {
		moves = append(moves, m)
		return true
	})
	return moves
}

// HasMove reports whether side has at least one legal move.
func (b *Board) HasMove(side Side) bool {
	found := false
	b.eachMove(side, func(Move) bool {
		found = true
		return false
	})
	return found
}

// eachMove calls fn for every legal move of side until fn returns false.
func (b *Board) eachMove(side Side, fn func(Move) bool) {
	for i, p := range b.grid {
		if p.Side() != side {
			continue
		}
		from := Square(i)
		for _, d := range Directions {
			for _, m := range RookMoves(from, d) {
				if b.grid[m.To] != Empty {
					break
				}
				if m.To == Throne && !p.IsKing() {
					continue
				}
				if !fn(m) {
					return
				}
			}
		}
	}
}

// signature encodes the side to move and the grid for repetition detection.
func (b *Board) signature() position {
	var pos position
	pos[0] = b.turn.letter()
	for sq, p := range b.grid {
		pos[sq+1] = p.String()[0]
	}
	return pos
}

// String renders the board with coordinates.
func (b *Board) String() string {
	return b.Render(true)
}

// Render draws the board from row 9 down to row 1. With coordinates, row
// numbers are printed on the left and column letters underneath.
func (b *Board) Render(coordinates bool) string {
	var sb strings.Builder
	for r := Size - 1; r >= 0; r-- {
		if coordinates {
			fmt.Fprintf(&sb, "%2d", r+1)
		} else {
			sb.WriteString("  ")
		}
		for c := 0; c < Size; c++ {
			sb.WriteString(" " + b.grid[MustSq(c, r)].String())
		}
		sb.WriteString("\n")
	}
	if coordinates {
		sb.WriteString("  ")
		for c := 0; c < Size; c++ {
			sb.WriteString(" " + string(rune('a'+c)))
		}
		sb.WriteString("\n")
	}
	return sb.String()
}
