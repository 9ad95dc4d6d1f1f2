package game

import "math"

// Evaluate scores a position from the defenders' perspective: positive values
// favour the defenders, negative values the attackers.
type Evaluate func(*Board) int

// WinningValue is the magnitude of a decided position. No undecided position
// scores anywhere near it.
const WinningValue = math.MaxInt32 - 20

// Weights of EvaluateMaterial.
const (
	defenderWeight = 200 // defenders start outnumbered two to one
	attackerWeight = 100
	kingFreedom    = 15  // per square the king can reach
	kingEdgeStep   = 60  // per step between the king and the nearest edge
	kingOpenLine   = 400 // per clear line from the king to an edge
	kingPressure   = 80  // per attacker next to the king
)

// decided returns the sentinel score of a position whose outcome is already
// known.
func decided(b *Board) (int, bool) {
	switch b.Winner() {
	case Defenders:
		return WinningValue, true
	case Attackers:
		return -WinningValue, true
	}
	king := b.KingSquare()
	switch {
	case king == NoSquare:
		return -WinningValue, true
	case king.IsEdge():
		return WinningValue, true
	}
	return 0, false
}

// EvaluateFlat is the placeholder heuristic: decided positions score a
// sentinel, attackers outnumbering the defenders count as an attacker win, and
// everything else is neutral.
func EvaluateFlat(b *Board) int {
	if score, ok := decided(b); ok {
		return score
	}
	if b.Count(Attackers) > b.Count(Defenders) {
		return -WinningValue
	}
	return 0
}

// EvaluateMaterial weighs material against the king's freedom and proximity to
// the edge.
func EvaluateMaterial(b *Board) int {
	if score, ok := decided(b); ok {
		return score
	}

	defenders, attackers := 0, 0
	for _, p := range b.grid {
		switch p {
		case Defender:
			defenders++
		case Attacker:
			attackers++
		}
	}
	score := defenderWeight*defenders - attackerWeight*attackers

	king := b.KingSquare()
	score -= kingEdgeStep * king.EdgeDistance()
	for _, d := range Directions {
		ray := king.Ray(d)
		reach := 0
		for _, sq := range ray {
			if b.grid[sq] != Empty {
				break
			}
			reach++
		}
		score += kingFreedom * reach
		if reach == len(ray) {
			score += kingOpenLine
		}
		if n, ok := king.Step(d, 1); ok && b.grid[n] == Attacker {
			score -= kingPressure
		}
	}
	return score
}
