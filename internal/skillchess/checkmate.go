package skillchess

// IsCheckmate reports whether the side to move is in check with no legal
// reply. The baseline move generator is not consulted for the escape
// search because skills create moves it does not know; every own piece is
// tried against every other square instead.
func IsCheckmate(p *Position, moverSkill, attackerSkill Skill) bool {
	if !IsCheck(p, p.SideToMove(), moverSkill, attackerSkill) {
		return false
	}
	r := Rules{Mover: moverSkill, Attacker: attackerSkill, Anchor: NoSquare}
	return !HasLegalMove(p, r, false)
}
