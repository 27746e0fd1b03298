package skillchess

// IsCheck reports whether defender's king is in check once both skills are
// taken into account. Theocracy immunity suppresses every kind of check,
// not only the ones its own bishops could deliver.
func IsCheck(p *Position, defender Color, defenderSkill, attackerSkill Skill) bool {
	if !p.HasKing(defender) {
		return false
	}
	if theocracyImmune(p, defender, defenderSkill) {
		return false
	}
	if p.InCheck(defender) {
		return true
	}
	switch attackerSkill {
	case SkillTheocracy:
		return theocracyCheck(p, defender)
	case SkillBlitzkrieg:
		return blitzkriegCheck(p, defender)
	case SkillNone, SkillRampage, SkillSubjects, SkillMajesty:
		return false
	}
	return false
}

// theocracyImmune: a Theocracy player is immune while one bishop remains.
func theocracyImmune(p *Position, c Color, skill Skill) bool {
	return skill == SkillTheocracy && p.Count(PieceBishop, c) > 0
}

// theocracyCheck swaps each enemy bishop for a queen in turn and asks the
// baseline whether the defender's king is attacked.
func theocracyCheck(p *Position, defender Color) bool {
	attacker := defender.Other()
	for _, sq := range p.PiecesOf(PieceBishop, attacker) {
		if phantomQueenChecks(p, sq, defender) {
			return true
		}
	}
	return false
}

func phantomQueenChecks(p *Position, sq Square, defender Color) bool {
	defer p.substitute(sq, Piece{Color: defender.Other(), Type: PieceQueen})()
	return p.InCheck(defender)
}

// blitzkriegCheck finds an enemy rook sharing a rank or file with the king
// whose path holds nothing but the rook's own pieces.
func blitzkriegCheck(p *Position, defender Color) bool {
	king, _ := p.KingSquare(defender)
	attacker := defender.Other()
	for _, sq := range p.PiecesOf(PieceRook, attacker) {
		if !IsRookLike(sq, king) {
			continue
		}
		if p.pathFriendly(sq, king, attacker) {
			return true
		}
	}
	return false
}
