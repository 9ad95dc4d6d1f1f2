package game

import (
	"fmt"

	"tablut/utils"

	"github.com/pkg/errors"
)

// Size is the number of squares on a side of the board.
const Size = 9

// NumSquares is the number of squares on the board.
const NumSquares = Size * Size

// Square is a board coordinate, stored as its flat index row*Size+col.
type Square int8

// NoSquare marks the absence of a square (e.g. a captured king).
const NoSquare Square = -1

// Direction is one of the four orthogonal directions a piece can slide in.
type Direction int

const (
	North Direction = iota
	East
	South
	West
)

// Directions lists all orthogonal directions in a fixed order.
var Directions = [4]Direction{North, East, South, West}

var (
	dCol = [4]int{0, 1, 0, -1}
	dRow = [4]int{1, 0, -1, 0}
)

var ErrBadSquare = errors.New("bad square")

// Fixed squares: the throne and its four orthogonal neighbours.
var (
	Throne  = MustSq(4, 4)
	NThrone = MustSq(4, 5)
	EThrone = MustSq(5, 4)
	SThrone = MustSq(4, 3)
	WThrone = MustSq(3, 4)
)

// rays[sq][d] holds every square reachable from sq sliding in direction d,
// nearest first, stopping at the board edge.
var rays = buildRays()

func buildRays() (rays [NumSquares][4][]Square) {
	for i := 0; i < NumSquares; i++ {
		sq := Square(i)
		for _, d := range Directions {
			for n := 1; ; n++ {
				next, ok := sq.Step(d, n)
				if !ok {
					break
				}
				rays[sq][d] = append(rays[sq][d], next)
			}
		}
	}
	return rays
}

// Sq returns the square at (col, row), both in [0, Size).
func Sq(col, row int) (Square, error) {
	if col < 0 || col >= Size || row < 0 || row >= Size {
		return NoSquare, errors.Wrapf(ErrBadSquare, "(%d, %d) is off the board", col, row)
	}
	return Square(row*Size + col), nil
}

// MustSq is like Sq but panics on out-of-range coordinates.
func MustSq(col, row int) Square {
	sq, err := Sq(col, row)
	if err != nil {
		panic(err)
	}
	return sq
}

// ParseSquare parses a label like "e5" (column a-i, row 1-9).
func ParseSquare(label string) (Square, error) {
	if len(label) != 2 {
		return NoSquare, errors.Wrapf(ErrBadSquare, "%q", label)
	}
	return Sq(int(label[0]-'a'), int(label[1]-'1'))
}

func (s Square) Col() int   { return int(s) % Size }
func (s Square) Row() int   { return int(s) / Size }
func (s Square) Index() int { return int(s) }

// IsEdge reports whether s lies on the outermost ring of the board.
func (s Square) IsEdge() bool {
	c, r := s.Col(), s.Row()
	return c == 0 || r == 0 || c == Size-1 || r == Size-1
}

// EdgeDistance is the number of steps from s to the nearest edge square.
func (s Square) EdgeDistance() int {
	c, r := s.Col(), s.Row()
	return min(c, r, Size-1-c, Size-1-r)
}

// Step returns the square n steps from s in direction d.
func (s Square) Step(d Direction, n int) (Square, bool) {
	sq, err := Sq(s.Col()+n*dCol[d], s.Row()+n*dRow[d])
	return sq, err == nil
}

// Ray returns the squares reachable from s in direction d, nearest first.
// The slice is shared and must not be modified.
func (s Square) Ray(d Direction) []Square {
	return rays[s][d]
}

// Direction returns the direction from s to other if they share a row or
// column.
func (s Square) Direction(other Square) (Direction, bool) {
	switch {
	case s == other:
		return 0, false
	case s.Col() == other.Col() && other.Row() > s.Row():
		return North, true
	case s.Col() == other.Col():
		return South, true
	case s.Row() == other.Row() && other.Col() > s.Col():
		return East, true
	case s.Row() == other.Row():
		return West, true
	}
	return 0, false
}

// Path returns the squares strictly between from and to. ok is false if the two
// squares are equal or not on a common row or column.
func Path(from, to Square) (between []Square, ok bool) {
	d, ok := from.Direction(to)
	if !ok {
		return nil, false
	}
	for _, sq := range from.Ray(d) {
		if sq == to {
			return between, true
		}
		between = append(between, sq)
	}
	return nil, false
}

// Between returns the single square between a and b when they are exactly two
// steps apart on a row or column.
func Between(a, b Square) (Square, bool) {
	d, ok := a.Direction(b)
	if !ok {
		return NoSquare, false
	}
	if a.Distance(b) != 2 {
		return NoSquare, false
	}
	mid, _ := a.Step(d, 1)
	return mid, true
}

// Distance returns the number of orthogonal steps between s and other.
func (s Square) Distance(other Square) int {
	return utils.Abs(s.Col()-other.Col()) + utils.Abs(s.Row()-other.Row())
}

// IsThroneAdjacent reports whether s is the throne or one of its neighbours.
func (s Square) IsThroneAdjacent() bool {
	return s == Throne || s == NThrone || s == EThrone || s == SThrone || s == WThrone
}

func (s Square) valid() bool {
	return s >= 0 && int(s) < NumSquares
}

func (s Square) String() string {
	if !s.valid() {
		return fmt.Sprintf("Square(%d)", int(s))
	}
	return fmt.Sprintf("%c%d", 'a'+s.Col(), s.Row()+1)
}
