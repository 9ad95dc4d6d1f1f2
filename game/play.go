package game

import "github.com/pkg/errors"

// ApplyMove plays m for the side to move, resolves captures and updates the
// game status. A side without any legal move loses on the spot: m is ignored,
// the opponent is declared winner as by ResolveStalemate and nothing else
// changes. Any other illegal move is rejected with ErrIllegalMove.
func (b *Board) ApplyMove(m Move) error {
	if b.ResolveStalemate() {
		return nil
	}
	if !b.IsLegal(m) {
		return errors.Wrapf(ErrIllegalMove, "%s for %s", m, b.turn)
	}

	e := entry{move: m, winner: b.winner, repeated: b.repeated}
	mover := b.grid[m.From]
	b.grid[m.To] = mover
	b.grid[m.From] = Empty

	for _, d := range Directions {
		flank, ok := m.To.Step(d, 2)
		if !ok {
			continue
		}
		if flank != Throne && b.grid[flank].Side() != mover.Side() {
			continue
		}
		victim, _ := m.To.Step(d, 1)
		if !b.capturable(m.To, victim, flank) {
			continue
		}
		e.captures[e.nCapture] = capture{square: victim, piece: b.grid[victim]}
		e.nCapture++
		if b.grid[victim].IsKing() {
			b.winner = Attackers
		}
		b.grid[victim] = Empty
	}

	if king := b.KingSquare(); king != NoSquare && king.IsEdge() {
		b.winner = Defenders
	}

	b.turn = b.turn.Opponent()

	// The side to move in a repeated position wins.
	e.position = b.signature()
	b.repeated = b.seen[e.position] > 0
	if b.repeated {
		b.winner = b.turn
	}
	b.seen[e.position]++
	b.log = append(b.log, e)
	return nil
}

// Undo takes back the last applied move, restoring captured pieces and the
// game status from before that move. It has no effect on the initial position.
func (b *Board) Undo() {
	n := len(b.log)
	if n == 0 {
		return
	}
	e := &b.log[n-1]

	if b.seen[e.position]--; b.seen[e.position] == 0 {
		delete(b.seen, e.position)
	}
	for i := e.nCapture - 1; i >= 0; i-- {
		b.grid[e.captures[i].square] = e.captures[i].piece
	}
	b.grid[e.move.From] = b.grid[e.move.To]
	b.grid[e.move.To] = Empty

	b.winner = e.winner
	b.repeated = e.repeated
	b.turn = b.turn.Opponent()
	b.log = b.log[:n-1]
}

// ResolveStalemate declares the opponent the winner when the side to move has
// no legal move and the game is still undecided. It reports whether it did.
// The position, turn and move count are left alone and no undo entry is made.
func (b *Board) ResolveStalemate() bool {
	if b.winner != NoSide || b.HasMove(b.turn) {
		return false
	}
	b.winner = b.turn.Opponent()
	return true
}

// ClearUndo forgets the undo log and every position seen so far. The current
// position, move count and status are kept.
func (b *Board) ClearUndo() {
	b.played += len(b.log)
	b.log = nil
	b.seen = map[position]int{b.signature(): 1}
}

// capturable reports whether the piece on victim is taken by the piece that just
// moved to sq0, with flank being the square beyond the victim.
func (b *Board) capturable(sq0, victim, flank Square) bool {
	if b.grid[victim].IsKing() {
		return b.kingCaptured(sq0, victim, flank)
	}
	return b.flanked(sq0, victim, flank)
}

// flanked is the ordinary custodial rule: the victim is hostile to the mover and
// the far side is held by the mover's side. When the far side is the throne only
// its hostility counts, whoever sits on it.
func (b *Board) flanked(sq0, victim, flank Square) bool {
	side := b.grid[sq0].Side()
	if b.grid[victim].IsEmpty() || b.grid[victim].Side() == side {
		return false
	}
	if flank == Throne {
		return b.throneHostile()
	}
	return b.grid[flank].Side() == side
}

// kingCaptured applies the ordinary rule, and on or next to the throne also
// requires the king to be enclosed on all four sides by attackers or the throne.
func (b *Board) kingCaptured(sq0, king, flank Square) bool {
	if !b.flanked(sq0, king, flank) {
		return false
	}
	if !king.IsThroneAdjacent() {
		return true
	}
	for _, d := range Directions {
		n, _ := king.Step(d, 1)
		if n != Throne && b.grid[n] != Attacker {
			return false
		}
	}
	return true
}

// throneHostile reports whether the throne acts as a capturing square: it does
// unless the king sits on it, and even then once three of its neighbours hold
// attackers.
func (b *Board) throneHostile() bool {
	if b.grid[Throne] != King {
		return true
	}
	attackers := 0
	for _, sq := range []Square{NThrone, EThrone, SThrone, WThrone} {
		if b.grid[sq] == Attacker {
			attackers++
		}
	}
	return attackers >= 3
}
