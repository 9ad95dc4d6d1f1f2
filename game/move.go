package game

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

// Move is a straight-line slide from one square to another. Moves are plain
// values and do not belong to any board.
type Move struct {
	From Square
	To   Square
}

var ErrBadMove = errors.New("bad move")

// rookMoves[sq][d] holds the moves from sq to every square of the ray in d.
var rookMoves = buildRookMoves()

func buildRookMoves() (moves [NumSquares][4][]Move) {
	for i := 0; i < NumSquares; i++ {
		from := Square(i)
		for _, d := range Directions {
			for _, to := range rays[from][d] {
				moves[from][d] = append(moves[from][d], Move{From: from, To: to})
			}
		}
	}
	return moves
}

// RookMoves returns every geometric move from sq in direction d, nearest
// destination first. The slice is shared and must not be modified.
func RookMoves(sq Square, d Direction) []Move {
	return rookMoves[sq][d]
}

// NewMove returns the move from-to if the two squares are distinct and share a
// row or column.
func NewMove(from, to Square) (Move, error) {
	if _, ok := from.Direction(to); !ok {
		return Move{}, errors.Wrapf(ErrBadMove, "%s-%s is not a straight line", from, to)
	}
	return Move{From: from, To: to}, nil
}

// ParseMove parses "e5-e7" as well as the abbreviated forms "e5-7" (same column)
// and "e5-g" (same row).
func ParseMove(s string) (Move, error) {
	parts := strings.Split(strings.TrimSpace(s), "-")
	if len(parts) != 2 {
		return Move{}, errors.Wrapf(ErrBadMove, "%q", s)
	}
	from, err := ParseSquare(parts[0])
	if err != nil {
		return Move{}, errors.Wrapf(ErrBadMove, "%q: %v", s, err)
	}

	dest := parts[1]
	switch {
	case len(dest) == 1 && dest[0] >= '1' && dest[0] <= '9':
		dest = fmt.Sprintf("%c%s", 'a'+from.Col(), dest)
	case len(dest) == 1 && dest[0] >= 'a' && dest[0] <= 'i':
		dest = fmt.Sprintf("%s%d", dest, from.Row()+1)
	}
	to, err := ParseSquare(dest)
	if err != nil {
		return Move{}, errors.Wrapf(ErrBadMove, "%q: %v", s, err)
	}
	return NewMove(from, to)
}

// MustMove is like ParseMove but panics on malformed input.
func MustMove(s string) Move {
	m, err := ParseMove(s)
	if err != nil {
		panic(err)
	}
	return m
}

func (m Move) String() string {
	return m.From.String() + "-" + m.To.String()
}
