package skillchess

// Majesty is a ruleset of its own rather than one more skill branch: the
// Majesty side keeps nothing but its king, the king moves like a queen and
// may stand on attacked squares, and whoever captures a king wins.

// majestySetup strips color c down to its king.
func majestySetup(p *Position, c Color) {
	for _, sq := range p.Occupied(c) {
		if p.PieceAt(sq).Type != PieceKing {
			p.place(sq, NoPiece)
		}
	}
	p.resync()
}

// IsMajestyMoveLegal judges m for the side to move in a Majesty match.
// majesty[c] is set for every color that picked the skill.
func IsMajestyMoveLegal(p *Position, majesty [2]bool, m Move) bool {
	if !m.From.Valid() || !m.To.Valid() || m.From == m.To {
		return false
	}
	mover := p.SideToMove()
	pc := p.PieceAt(m.From)
	if pc.Empty() || pc.Color != mover {
		return false
	}
	target := p.PieceAt(m.To)
	if !target.Empty() && target.Color == mover {
		return false
	}
	m = p.Normalize(m)

	if majesty[mover] && pc.Type == PieceKing {
		return IsQueenLike(m.From, m.To) && p.pathClear(m.From, m.To)
	}
	if target.Type == PieceKing && majesty[target.Color] {
		return p.attacks(m.From, m.To)
	}
	return p.IsStandardLegal(m)
}

func majestyMoves(p *Position, majesty [2]bool) []Move {
	var out []Move
	eachCandidate(p, func(m Move) bool {
		if IsMajestyMoveLegal(p, majesty, m) {
			out = append(out, m)
		}
		return true
	})
	return out
}

func hasMajestyMove(p *Position, majesty [2]bool) bool {
	found := false
	eachCandidate(p, func(m Move) bool {
		found = IsMajestyMoveLegal(p, majesty, m)
		return !found
	})
	return found
}
