package skillchess

// RevivalFlags marks the colors that have spent their one revival.
type RevivalFlags [2]bool

func (f RevivalFlags) Used(c Color) bool {
	if c != White && c != Black {
		return false
	}
	return f[c]
}

// homeSquares lists the candidate home squares of a rook or knight, in the
// order they are tried.
func homeSquares(c Color, t PieceType) []Square {
	back := 0
	if c == Black {
		back = Ranks - 1
	}
	switch t {
	case PieceRook:
		return []Square{squareAt(0, back), squareAt(7, back)}
	case PieceKnight:
		return []Square{squareAt(1, back), squareAt(6, back)}
	}
	return nil
}

// bishopHome is the home square of c's bishop that travels on light or dark
// squares.
func bishopHome(c Color, light bool) Square {
	back := 0
	if c == Black {
		back = Ranks - 1
	}
	for _, f := range []int{2, 5} {
		if sq := squareAt(f, back); sq.Light() == light {
			return sq
		}
	}
	return NoSquare
}

// Revive puts a freshly captured knight, bishop or rook back on an empty
// home square, once per color per game. It returns the square used, or
// NoSquare when the piece stays captured.
func Revive(p *Position, captured Piece, capturedOn Square, flags *RevivalFlags) Square {
	if captured.Empty() || flags == nil || flags.Used(captured.Color) {
		return NoSquare
	}
	var candidates []Square
	switch captured.Type {
	case PieceKnight, PieceRook:
		candidates = homeSquares(captured.Color, captured.Type)
	case PieceBishop:
		if !capturedOn.Valid() {
			return NoSquare
		}
		candidates = []Square{bishopHome(captured.Color, capturedOn.Light())}
	case PieceNone, PiecePawn, PieceQueen, PieceKing:
		return NoSquare
	}
	for _, sq := range candidates {
		if p.PieceAt(sq).Empty() {
			p.SetPiece(sq, captured)
			flags[captured.Color] = true
			return sq
		}
	}
	return NoSquare
}
