package skillchess

// Rules is what the evaluator needs to know beyond the board: the skills of
// the side to move and of its opponent, and the anchor of a pending bonus.
type Rules struct {
	Mover    Skill
	Attacker Skill
	Anchor   Square
}

// IsMoveLegal decides whether the side to move may play m. With bonus set
// the move is judged as the second move of a skill-granted pair; only the
// skill that granted it can open that gate.
//
// The position is used for speculative pushes and is always handed back
// unchanged.
func IsMoveLegal(p *Position, r Rules, m Move, bonus bool) bool {
	if !m.From.Valid() || !m.To.Valid() || m.From == m.To {
		return false
	}
	mover := p.SideToMove()
	pc := p.PieceAt(m.From)
	if pc.Empty() || pc.Color != mover {
		return false
	}
	m = p.Normalize(m)

	if bonus && !bonusGateOpen(p, r, m) {
		return false
	}

	if !p.IsStandardLegal(m) && !skillGrantsMove(p, r.Mover, pc, m) {
		return false
	}

	target := p.PieceAt(m.To)
	if !target.Empty() && target.Color == mover {
		return false
	}
	if target.Type == PieceKing && theocracyImmune(p, target.Color, r.Attacker) {
		return false
	}

	if r.Attacker == SkillSubjects && !subjectsAllows(p, r, pc, m) {
		return false
	}

	return !leavesInCheck(p, r, m)
}

// skillGrantsMove covers moves the baseline does not know about.
func skillGrantsMove(p *Position, skill Skill, pc Piece, m Move) bool {
	switch skill {
	case SkillTheocracy:
		return pc.Type == PieceBishop && IsQueenLike(m.From, m.To) && p.pathClear(m.From, m.To)
	case SkillBlitzkrieg:
		return pc.Type == PieceRook && IsRookLike(m.From, m.To) && p.pathFriendly(m.From, m.To, pc.Color)
	case SkillNone, SkillRampage, SkillSubjects, SkillMajesty:
		return false
	}
	return false
}

func bonusGateOpen(p *Position, r Rules, m Move) bool {
	switch r.Mover {
	case SkillRampage:
		if m.From != r.Anchor {
			return false
		}
		return !p.IsCapture(m) && !givesCheck(p, r, m)
	case SkillBlitzkrieg:
		rooks := p.PiecesOf(PieceRook, p.SideToMove())
		if len(rooks) < 2 {
			return false
		}
		others := make([]Square, 0, len(rooks))
		anchored := false
		for _, sq := range rooks {
			if sq == r.Anchor {
				anchored = true
				continue
			}
			others = append(others, sq)
		}
		if !anchored || len(others) == 0 {
			return false
		}
		for _, sq := range others {
			if m.From == sq {
				return true
			}
		}
		return false
	case SkillNone, SkillTheocracy, SkillSubjects, SkillMajesty:
		return false
	}
	return false
}

// subjectsAllows applies the opponent's pawn blockade: squares ahead of an
// enemy pawn on its file may only be entered by capturing. A king escaping
// check ignores the blockade.
func subjectsAllows(p *Position, r Rules, pc Piece, m Move) bool {
	mover := pc.Color
	if pc.Type == PieceKing && IsCheck(p, mover, r.Mover, r.Attacker) {
		return true
	}
	if !projectedByPawns(p, mover.Other(), m.To) {
		return true
	}
	return p.IsCapture(m)
}

// projectedByPawns reports whether sq lies on the file of a pawn of color c,
// strictly ahead of it.
func projectedByPawns(p *Position, c Color, sq Square) bool {
	dir := pawnDir(c)
	for _, pawn := range p.PiecesOf(PiecePawn, c) {
		if pawn.File() != sq.File() {
			continue
		}
		if (sq.Rank()-pawn.Rank())*dir > 0 {
			return true
		}
	}
	return false
}

// ProjectedSquares lists the Subjects zone of color c's pawns.
func ProjectedSquares(p *Position, c Color) []Square {
	var out []Square
	for sq := Square(0); sq < NoSquare; sq++ {
		if projectedByPawns(p, c, sq) {
			out = append(out, sq)
		}
	}
	return out
}

func leavesInCheck(p *Position, r Rules, m Move) bool {
	mover := p.SideToMove()
	defer p.Push(m)()
	return IsCheck(p, mover, r.Mover, r.Attacker)
}

// givesCheck plays m and asks whether the opponent's king is now in check.
func givesCheck(p *Position, r Rules, m Move) bool {
	opp := p.SideToMove().Other()
	defer p.Push(m)()
	return IsCheck(p, opp, r.Attacker, r.Mover)
}

// LegalMoves enumerates every legal move of the side to move. Promotions
// are listed once, as the default queen.
func LegalMoves(p *Position, r Rules, bonus bool) []Move {
	var out []Move
	eachCandidate(p, func(m Move) bool {
		if IsMoveLegal(p, r, m, bonus) {
			out = append(out, m)
		}
		return true
	})
	return out
}

func HasLegalMove(p *Position, r Rules, bonus bool) bool {
	found := false
	eachCandidate(p, func(m Move) bool {
		if IsMoveLegal(p, r, m, bonus) {
			found = true
			return false
		}
		return true
	})
	return found
}

// eachCandidate walks every (own piece, other square) pair until fn
// returns false.
func eachCandidate(p *Position, fn func(Move) bool) {
	for _, from := range p.Occupied(p.SideToMove()) {
		for to := Square(0); to < NoSquare; to++ {
			if to == from {
				continue
			}
			if !fn(p.Normalize(Move{From: from, To: to})) {
				return
			}
		}
	}
}
