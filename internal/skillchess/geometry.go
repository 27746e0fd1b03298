package skillchess

// IsQueenLike reports whether from and to share a file, a rank or a diagonal.
func IsQueenLike(from, to Square) bool {
	df := abs(to.File() - from.File())
	dr := abs(to.Rank() - from.Rank())
	return df == 0 || dr == 0 || df == dr
}

// IsRookLike reports whether from and to share a file or a rank.
func IsRookLike(from, to Square) bool {
	return from.File() == to.File() || from.Rank() == to.Rank()
}

func IsDiagonal(from, to Square) bool {
	df := abs(to.File() - from.File())
	return df != 0 && df == abs(to.Rank()-from.Rank())
}

// SquaresBetween returns the squares strictly between from and to, walking
// from origin towards destination. Adjacent or unaligned pairs yield nil.
func SquaresBetween(from, to Square) []Square {
	if from == to || !IsQueenLike(from, to) {
		return nil
	}
	df := to.File() - from.File()
	dr := to.Rank() - from.Rank()
	steps := max(abs(df), abs(dr))
	if steps <= 1 {
		return nil
	}
	sf, sr := sign(df), sign(dr)
	out := make([]Square, 0, steps-1)
	f, r := from.File(), from.Rank()
	for i := 1; i < steps; i++ {
		f += sf
		r += sr
		out = append(out, squareAt(f, r))
	}
	return out
}

func sign(x int) int {
	switch {
	case x > 0:
		return 1
	case x < 0:
		return -1
	}
	return 0
}

var (
	knightDeltas = [8][2]int{{1, 2}, {2, 1}, {2, -1}, {1, -2}, {-1, -2}, {-2, -1}, {-2, 1}, {-1, 2}}
	kingDeltas   = [8][2]int{{1, 0}, {1, 1}, {0, 1}, {-1, 1}, {-1, 0}, {-1, -1}, {0, -1}, {1, -1}}
)

// attacks reports whether the piece standing on from attacks to, ignoring
// pins and whose turn it is. Sliders need a clear path.
func (p *Position) attacks(from, to Square) bool {
	pc := p.PieceAt(from)
	if pc.Empty() || from == to {
		return false
	}
	df := to.File() - from.File()
	dr := to.Rank() - from.Rank()
	switch pc.Type {
	case PiecePawn:
		return dr == pawnDir(pc.Color) && abs(df) == 1
	case PieceKnight:
		for _, d := range knightDeltas {
			if d[0] == df && d[1] == dr {
				return true
			}
		}
		return false
	case PieceKing:
		return max(abs(df), abs(dr)) == 1
	case PieceBishop:
		return IsDiagonal(from, to) && p.pathClear(from, to)
	case PieceRook:
		return IsRookLike(from, to) && p.pathClear(from, to)
	case PieceQueen:
		return IsQueenLike(from, to) && p.pathClear(from, to)
	}
	return false
}

// pathClear: every square strictly between from and to is empty.
func (p *Position) pathClear(from, to Square) bool {
	for _, sq := range SquaresBetween(from, to) {
		if !p.PieceAt(sq).Empty() {
			return false
		}
	}
	return true
}

// pathFriendly: every square strictly between from and to is empty or
// holds a piece of color c.
func (p *Position) pathFriendly(from, to Square, c Color) bool {
	for _, sq := range SquaresBetween(from, to) {
		if pc := p.PieceAt(sq); !pc.Empty() && pc.Color != c {
			return false
		}
	}
	return true
}
