package skillchess

import (
	"errors"
	"strings"
	"testing"
)

func TestDecodeEncodeRoundTrip(t *testing.T) {
	for _, fen := range []string{
		StartFEN,
		"r3k2r/8/8/3pP3/8/8/8/R3K2R w KQkq d6 0 1",
		"6k1/5ppp/8/8/8/8/8/R5K1 w - - 0 1",
	} {
		p := mustDecode(t, fen)
		again := mustDecode(t, p.Encode())
		if again.Encode() != p.Encode() {
			t.Fatalf("round trip of %q: got=%q want=%q", fen, again.Encode(), p.Encode())
		}
	}
}

func TestDecodeShortForm(t *testing.T) {
	p := mustDecode(t, "4k3/8/8/8/8/8/8/4K3 b - -")
	if p.SideToMove() != Black {
		t.Fatalf("side to move: got=%v", p.SideToMove())
	}
	if _, err := DecodePosition("4k3/8/8/8/8/8/8/4K3 b -"); !errors.Is(err, ErrInvalidFEN) {
		t.Fatalf("three field FEN: got err=%v want ErrInvalidFEN", err)
	}
}

func TestDecodeRejectsGarbage(t *testing.T) {
	for _, fen := range []string{
		"",
		"hello",
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP w KQkq - 0 1",
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNX w KQkq - 0 1",
		"rnbqkbnr/pppppppp/9/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1",
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR x KQkq - 0 1",
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq z9 0 1",
	} {
		if _, err := DecodePosition(fen); !errors.Is(err, ErrInvalidFEN) {
			t.Fatalf("%q: got err=%v want ErrInvalidFEN", fen, err)
		}
	}
}

func TestDecodeDropsImpossibleCastling(t *testing.T) {
	p := mustDecode(t, "4k3/8/8/8/8/8/8/4K3 w KQkq - 0 1")
	fields := strings.Fields(p.Encode())
	if fields[2] != "-" {
		t.Fatalf("castling field: got=%q want=-", fields[2])
	}
	p = mustDecode(t, "4k2r/8/8/8/8/8/8/R3K3 w KQkq - 0 1")
	fields = strings.Fields(p.Encode())
	if fields[2] != "Qk" {
		t.Fatalf("castling field: got=%q want=Qk", fields[2])
	}
}
