package game

// Piece is the content of a board square.
type Piece uint8

const (
	Empty Piece = iota
	Attacker
	Defender
	King
)

// Side is one of the two competing factions. NoSide doubles as "no winner yet".
type Side uint8

const (
	NoSide Side = iota
	Attackers
	Defenders
)

// Side maps a piece to the side that controls it. Empty squares have no side.
func (p Piece) Side() Side {
	switch p {
	case Attacker:
		return Attackers
	case Defender, King:
		return Defenders
	}
	return NoSide
}

func (p Piece) IsKing() bool  { return p == King }
func (p Piece) IsEmpty() bool { return p == Empty }

// String gives the one-character board encoding of p.
func (p Piece) String() string {
	switch p {
	case Attacker:
		return "B"
	case Defender:
		return "W"
	case King:
		return "K"
	}
	return "-"
}

func parsePiece(c byte) (Piece, bool) {
	switch c {
	case '-':
		return Empty, true
	case 'B':
		return Attacker, true
	case 'W':
		return Defender, true
	case 'K':
		return King, true
	}
	return Empty, false
}

// Opponent returns the other side. NoSide has no opponent.
func (s Side) Opponent() Side {
	switch s {
	case Attackers:
		return Defenders
	case Defenders:
		return Attackers
	}
	return NoSide
}

// letter is the side's character in a position signature.
func (s Side) letter() byte {
	switch s {
	case Attackers:
		return 'B'
	case Defenders:
		return 'W'
	}
	return '-'
}

func (s Side) String() string {
	switch s {
	case Attackers:
		return "attackers"
	case Defenders:
		return "defenders"
	}
	return "none"
}
