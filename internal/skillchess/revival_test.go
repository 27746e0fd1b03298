package skillchess

import "testing"

func TestReviveOncePerColor(t *testing.T) {
	p := mustDecode(t, "4k3/8/8/8/8/8/8/4K3 w - - 0 1")
	var flags RevivalFlags

	sq := Revive(p, Piece{Black, PieceKnight}, mustSquare(t, "h5"), &flags)
	if sq != mustSquare(t, "b8") {
		t.Fatalf("revived knight: got=%v want=b8", sq)
	}
	if got := p.PieceAt(sq); got != (Piece{Black, PieceKnight}) {
		t.Fatalf("b8 holds %+v", got)
	}
	if !flags.Used(Black) || flags.Used(White) {
		t.Fatalf("flags: got=%v", flags)
	}
	if sq := Revive(p, Piece{Black, PieceRook}, mustSquare(t, "h5"), &flags); sq != NoSquare {
		t.Fatalf("second black revival: got=%v want none", sq)
	}
	if sq := Revive(p, Piece{White, PieceRook}, mustSquare(t, "h5"), &flags); sq != mustSquare(t, "a1") {
		t.Fatalf("white rook: got=%v want=a1", sq)
	}
}

func TestReviveHomeSquares(t *testing.T) {
	cases := []struct {
		name     string
		fen      string
		piece    Piece
		captured string
		want     string
	}{
		{"knight falls back to g file", "1n2k3/8/8/8/8/8/8/4K3 w - - 0 1", Piece{Black, PieceKnight}, "d4", "g8"},
		{"light bishop", "4k3/8/8/8/8/8/8/4K3 w - - 0 1", Piece{Black, PieceBishop}, "e4", "c8"},
		{"dark bishop", "4k3/8/8/8/8/8/8/4K3 w - - 0 1", Piece{Black, PieceBishop}, "d4", "f8"},
		{"white light bishop", "4k3/8/8/8/8/8/8/4K3 w - - 0 1", Piece{White, PieceBishop}, "e4", "f1"},
		{"white dark bishop", "4k3/8/8/8/8/8/8/4K3 w - - 0 1", Piece{White, PieceBishop}, "d4", "c1"},
		{"black rook", "4k3/8/8/8/8/8/8/4K3 w - - 0 1", Piece{Black, PieceRook}, "d4", "a8"},
	}
	for _, tc := range cases {
		p := mustDecode(t, tc.fen)
		var flags RevivalFlags
		got := Revive(p, tc.piece, mustSquare(t, tc.captured), &flags)
		if got != mustSquare(t, tc.want) {
			t.Fatalf("%s: got=%v want=%s", tc.name, got, tc.want)
		}
	}
}

func TestReviveSkipsWhenNoRoom(t *testing.T) {
	p := mustDecode(t, "1n2k1n1/8/8/8/8/8/8/4K3 w - - 0 1")
	var flags RevivalFlags
	if sq := Revive(p, Piece{Black, PieceKnight}, mustSquare(t, "d4"), &flags); sq != NoSquare {
		t.Fatalf("occupied homes: got=%v want none", sq)
	}
	if flags.Used(Black) {
		t.Fatalf("failed revival must not spend the flag")
	}
	for _, pt := range []PieceType{PiecePawn, PieceQueen} {
		if sq := Revive(p, Piece{Black, pt}, mustSquare(t, "d4"), &flags); sq != NoSquare {
			t.Fatalf("%v revived to %v", pt, sq)
		}
	}
}
