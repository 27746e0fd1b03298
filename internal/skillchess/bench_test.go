package skillchess

import "testing"

func BenchmarkLegalMovesOpening(b *testing.B) {
	p := NewInitialPosition()
	r := Rules{Mover: SkillNone, Attacker: SkillNone, Anchor: NoSquare}
	for i := 0; i < b.N; i++ {
		LegalMoves(p, r, false)
	}
}

func BenchmarkLegalMovesTheocracy(b *testing.B) {
	m := NewMatch(SkillTheocracy, SkillBlitzkrieg, Options{})
	if err := m.ApplySetup(); err != nil {
		b.Fatalf("setup: %v", err)
	}
	for i := 0; i < b.N; i++ {
		m.LegalMoves()
	}
}

func BenchmarkIsCheckmateBackRank(b *testing.B) {
	p, err := DecodePosition("R5k1/5ppp/8/8/8/8/8/6K1 b - - 0 1")
	if err != nil {
		b.Fatalf("decode: %v", err)
	}
	for i := 0; i < b.N; i++ {
		if !IsCheckmate(p, SkillNone, SkillNone) {
			b.Fatalf("expected mate")
		}
	}
}
