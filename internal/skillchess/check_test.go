package skillchess

import "testing"

func TestCheckWithoutSkillsMatchesBaseline(t *testing.T) {
	for _, fen := range []string{
		StartFEN,
		"4k3/8/8/8/8/8/8/4K2r w - - 0 1",
		"4k3/8/8/8/4b3/8/8/4K3 w - - 0 1",
		"R5k1/5ppp/8/8/8/8/8/6K1 b - - 0 1",
	} {
		p := mustDecode(t, fen)
		for _, c := range []Color{White, Black} {
			if got, want := IsCheck(p, c, SkillNone, SkillNone), p.InCheck(c); got != want {
				t.Fatalf("%q %v: got=%v want=%v", fen, c, got, want)
			}
		}
	}
}

func TestTheocracyImmunity(t *testing.T) {
	p := mustDecode(t, "4k3/8/8/8/8/8/8/2B1K2r w - - 0 1")
	if !IsCheck(p, White, SkillNone, SkillNone) {
		t.Fatalf("rook on h1 should check without skills")
	}
	if IsCheck(p, White, SkillTheocracy, SkillNone) {
		t.Fatalf("theocracy with a bishop must be immune")
	}

	bare := mustDecode(t, "4k3/8/8/8/8/8/8/4K2r w - - 0 1")
	if !IsCheck(bare, White, SkillTheocracy, SkillNone) {
		t.Fatalf("theocracy without bishops is not immune")
	}
}

func TestTheocracyBishopChecksLikeQueen(t *testing.T) {
	p := mustDecode(t, "4k3/8/8/8/4b3/8/8/4K3 w - - 0 1")
	if IsCheck(p, White, SkillNone, SkillNone) {
		t.Fatalf("bishop on e4 does not check e1 in plain chess")
	}
	if !IsCheck(p, White, SkillNone, SkillTheocracy) {
		t.Fatalf("theocracy bishop on e4 should check e1")
	}
	blocked := mustDecode(t, "4k3/8/8/8/4b3/8/4P3/4K3 w - - 0 1")
	if IsCheck(blocked, White, SkillNone, SkillTheocracy) {
		t.Fatalf("blocked file should not check")
	}
	// the board is handed back untouched
	if p.PieceAt(mustSquare(t, "e4")).Type != PieceBishop {
		t.Fatalf("bishop was not restored")
	}
}

func TestBlitzkriegCheckThroughOwnPieces(t *testing.T) {
	p := mustDecode(t, "R2Nk3/8/8/8/8/8/8/4K3 w - - 0 1")
	if IsCheck(p, Black, SkillNone, SkillNone) {
		t.Fatalf("screened rook should not check without skills")
	}
	if !IsCheck(p, Black, SkillNone, SkillBlitzkrieg) {
		t.Fatalf("blitzkrieg rook should check through its own knight")
	}
	enemy := mustDecode(t, "R1bNk3/8/8/8/8/8/8/4K3 w - - 0 1")
	if IsCheck(enemy, Black, SkillNone, SkillBlitzkrieg) {
		t.Fatalf("an enemy piece on the line blocks blitzkrieg check")
	}
}

func TestCheckWithoutKing(t *testing.T) {
	p := mustDecode(t, "8/8/8/8/8/8/8/4K2r w - - 0 1")
	if IsCheck(p, Black, SkillNone, SkillNone) || IsCheck(p, White, SkillNone, SkillNone) {
		t.Fatalf("no check is possible with a king missing")
	}
}
