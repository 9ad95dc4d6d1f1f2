package game

import (
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"
)

func mustParse(t *testing.T, layout string, turn Side) *Board {
	t.Helper()
	b, err := ParseBoard(layout, turn)
	require.NoError(t, err)
	return b
}

func play(t *testing.T, b *Board, moves ...string) {
	t.Helper()
	for _, s := range moves {
		require.NoError(t, b.ApplyMove(MustMove(s)), "move %s should be legal", s)
	}
}

// snapshot captures everything undo has to restore.
type snapshot struct {
	grid      string
	turn      Side
	winner    Side
	repeated  bool
	moveCount int
}

func snap(b *Board) snapshot {
	return snapshot{
		grid:      b.Render(false),
		turn:      b.Turn(),
		winner:    b.Winner(),
		repeated:  b.Repeated(),
		moveCount: b.MoveCount(),
	}
}

func TestNewBoard(t *testing.T) {
	b := NewBoard()

	require.Equal(t, Attackers, b.Turn(), "Attackers move first")
	require.Equal(t, NoSide, b.Winner())
	require.False(t, b.Repeated())
	require.Equal(t, 0, b.MoveCount())
	require.Equal(t, Throne, b.KingSquare())
	require.Equal(t, 16, b.Count(Attackers))
	require.Equal(t, 9, b.Count(Defenders), "Eight defenders plus the king")
	require.Equal(t, ` 9 - - - B B B - - -
 8 - - - - B - - - -
 7 - - - - W - - - -
 6 B - - - W - - - B
 5 B B W W K W W B B
 4 B - - - W - - - B
 3 - - - - W - - - -
 2 - - - - B - - - -
 1 - - - B B B - - -
   a b c d e f g h i
`, b.String())
}

func TestParseBoard(t *testing.T) {
	t.Run("parses its own rendering", func(t *testing.T) {
		want := NewBoard()
		got := mustParse(t, want.String(), Attackers)
		require.Equal(t, want.Render(false), got.Render(false))
	})

	t.Run("rejects malformed layouts", func(t *testing.T) {
		_, err := ParseBoard("- - -", Attackers)
		require.ErrorIs(t, err, ErrBadBoard)

		twoKings := NewBoard().Render(false)
		twoKings = "K" + twoKings[4:]
		_, err = ParseBoard(twoKings, Attackers)
		require.ErrorIs(t, err, ErrBadBoard, "Two kings should be rejected")

		_, err = ParseBoard(NewBoard().String(), NoSide)
		require.ErrorIs(t, err, ErrBadBoard, "Turn must be a side")
	})
}

func TestLegality(t *testing.T) {
	b := mustParse(t, `
		- - - - - - - - -
		- - - - - - - - -
		- - - - - - - - -
		- - - - W - - - -
		- - - W - - - K -
		- - - - - - - - -
		- - - - B - - - -
		- - - - - - - - -
		- - - - - - - - -`, Defenders)

	tests := []struct {
		name  string
		move  string
		legal bool
	}{
		{"slide along a row", "d5-a5", true},
		{"slide along a column", "e6-e9", true},
		{"defender may not land on the throne", "d5-e5", false},
		{"defender may not stop on the throne", "e6-e5", false},
		{"defender may cross the empty throne", "d5-f5", true},
		{"king may return to the throne", "h5-e5", true},
		{"blocked by a piece", "e6-e2", false},
		{"destination occupied", "e6-e3", false},
		{"wrong side", "e3-b3", false},
		{"empty origin", "a1-a2", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.legal, b.IsLegal(MustMove(tt.move)))
		})
	}

	t.Run("no move to the throne except for the king", func(t *testing.T) {
		for _, side := range []Side{Attackers, Defenders} {
			for _, m := range b.LegalMoves(side) {
				if m.To == Throne {
					require.True(t, b.Get(m.From).IsKing(), "%s must be a king move", m)
				}
			}
		}
	})

	t.Run("degenerate moves", func(t *testing.T) {
		require.False(t, b.IsLegalMove(MustSq(3, 4), MustSq(3, 4)), "Null moves are illegal")
		require.False(t, b.IsLegalMove(MustSq(3, 4), MustSq(2, 3)), "Diagonal moves are illegal")
		require.False(t, b.IsLegalMove(NoSquare, MustSq(2, 3)), "Off-board squares are illegal")
		require.False(t, b.IsLegalOrigin(NoSquare), "Off-board squares are no origin")
		require.False(t, b.IsLegalOrigin(Square(NumSquares)), "Off-board squares are no origin")
	})

	t.Run("legal moves agree with IsLegal", func(t *testing.T) {
		moves := b.LegalMoves(Defenders)
		require.NotEmpty(t, moves)
		for _, m := range moves {
			require.True(t, b.IsLegal(m), "%s", m)
		}
		require.True(t, b.HasMove(Defenders))
	})
}

func TestApplyMoveErrors(t *testing.T) {
	t.Run("illegal moves are rejected and change nothing", func(t *testing.T) {
		b := NewBoard()
		before := snap(b)

		err := b.ApplyMove(MustMove("e3-e1"))
		require.ErrorIs(t, err, ErrIllegalMove, "Defenders may not move on the attackers' turn")
		err = b.ApplyMove(MustMove("a4-a9"))
		require.ErrorIs(t, err, ErrIllegalMove, "Path a5 is blocked")
		require.Equal(t, before, snap(b))
	})

	t.Run("move limit", func(t *testing.T) {
		b := NewBoard()
		require.NoError(t, b.SetMoveLimit(1))
		require.Equal(t, 1, b.MoveLimit())
		require.False(t, b.LimitReached())

		play(t, b, "a4-a3", "e3-b3")
		require.True(t, b.LimitReached(), "One move each exhausts a limit of one")
		require.ErrorIs(t, b.SetMoveLimit(1), ErrMoveLimit)
		require.NoError(t, b.SetMoveLimit(2))
		require.ErrorIs(t, b.SetMoveLimit(0), ErrMoveLimit)
	})
}

func TestUndo(t *testing.T) {
	t.Run("no-op on the initial position", func(t *testing.T) {
		b := NewBoard()
		before := snap(b)
		b.Undo()
		require.Equal(t, before, snap(b))
	})

	t.Run("restores captures", func(t *testing.T) {
		b := mustParse(t, `
			- - - - - - - - -
			- - - - - - - - -
			- - - - - - - - -
			- - - - - - - - -
			- - - - K - - - -
			- - - - - - - - -
			- B W - W B - - -
			- - - - - - - - -
			- - - B - - - - -`, Attackers)
		before := snap(b)

		play(t, b, "d1-d3")
		require.Equal(t, Empty, b.Get(MustSq(2, 2)), "c3 is flanked by b3 and d3")
		require.Equal(t, Empty, b.Get(MustSq(4, 2)), "e3 is flanked by d3 and f3")

		b.Undo()
		require.Equal(t, before, snap(b))
	})

	t.Run("apply then undo is exact over random games", func(t *testing.T) {
		rng := rand.New(rand.NewSource(42))
		for g := 0; g < 5; g++ {
			b := NewBoard()
			for ply := 0; ply < 120 && b.Winner() == NoSide; ply++ {
				moves := b.LegalMoves(b.Turn())
				require.NotEmpty(t, moves)
				before := snap(b)
				for _, m := range moves {
					require.NoError(t, b.ApplyMove(m))
					b.Undo()
					require.Equal(t, before, snap(b), "undo of %s after %d plies", m, ply)
				}
				require.NoError(t, b.ApplyMove(moves[rng.Intn(len(moves))]))
			}
		}
	})

	t.Run("ClearUndo keeps the position", func(t *testing.T) {
		b := NewBoard()
		play(t, b, "a4-a3", "e3-b3")
		before := snap(b)
		b.ClearUndo()
		require.Equal(t, before, snap(b))
		b.Undo()
		require.Equal(t, before, snap(b), "Nothing left to undo")
	})
}

func TestCopy(t *testing.T) {
	b := NewBoard()
	play(t, b, "a4-a3")
	c := b.Copy()

	play(t, c, "e3-b3")
	c.Undo()
	c.Undo()
	require.Equal(t, 1, b.MoveCount(), "The original must not see the copy's moves")
	require.Equal(t, Attacker, b.Get(MustSq(0, 2)))
	require.Equal(t, 0, c.MoveCount())

	b.Undo()
	require.Equal(t, snap(c), snap(b))
}
