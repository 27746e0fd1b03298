package skillchess

import (
	"errors"
	"testing"
)

func squares(t *testing.T, names ...string) []Square {
	t.Helper()
	out := make([]Square, 0, len(names))
	for _, n := range names {
		out = append(out, mustSquare(t, n))
	}
	return out
}

func TestSquaresBetween(t *testing.T) {
	cases := []struct {
		from, to string
		want     []string
	}{
		{"a1", "d4", []string{"b2", "c3"}},
		{"d4", "a1", []string{"c3", "b2"}},
		{"a1", "h1", []string{"b1", "c1", "d1", "e1", "f1", "g1"}},
		{"e8", "e5", []string{"e7", "e6"}},
		{"e4", "e5", nil},
		{"e4", "f5", nil},
		{"a1", "b3", nil},
		{"c3", "c3", nil},
	}
	for _, tc := range cases {
		got := SquaresBetween(mustSquare(t, tc.from), mustSquare(t, tc.to))
		want := squares(t, tc.want...)
		if len(got) != len(want) {
			t.Fatalf("%s-%s: got=%v want=%v", tc.from, tc.to, got, want)
		}
		for i := range got {
			if got[i] != want[i] {
				t.Fatalf("%s-%s: got=%v want=%v", tc.from, tc.to, got, want)
			}
		}
	}
}

func TestLinePredicates(t *testing.T) {
	a1, h8, b3, a8 := mustSquare(t, "a1"), mustSquare(t, "h8"), mustSquare(t, "b3"), mustSquare(t, "a8")
	if !IsQueenLike(a1, h8) || !IsDiagonal(a1, h8) || IsRookLike(a1, h8) {
		t.Fatalf("a1-h8 should be a diagonal only")
	}
	if IsQueenLike(a1, b3) || IsDiagonal(a1, b3) || IsRookLike(a1, b3) {
		t.Fatalf("a1-b3 is not aligned")
	}
	if !IsRookLike(a1, a8) || IsDiagonal(a1, a8) {
		t.Fatalf("a1-a8 should be a file")
	}
}

func TestSquareNames(t *testing.T) {
	sq, err := ParseSquare("E4")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if sq != 28 || sq.String() != "e4" {
		t.Fatalf("e4: got=%d %q", sq, sq.String())
	}
	if mustSquare(t, "a1").Light() || !mustSquare(t, "h1").Light() || mustSquare(t, "h8").Light() {
		t.Fatalf("square colors wrong")
	}
	for _, bad := range []string{"", "i1", "a9", "a10", "11"} {
		if _, err := ParseSquare(bad); !errors.Is(err, ErrInvalidSquare) {
			t.Fatalf("%q: got err=%v want ErrInvalidSquare", bad, err)
		}
	}
	if NoSquare.String() != "-" {
		t.Fatalf("NoSquare string: %q", NoSquare.String())
	}
}

func TestAttacks(t *testing.T) {
	p := mustDecode(t, "4k3/8/8/3p4/8/2N5/8/R3K3 w - - 0 1")
	cases := []struct {
		from, to string
		want     bool
	}{
		{"c3", "d5", true},
		{"c3", "e3", false},
		{"a1", "a8", true},
		{"a1", "e1", true},
		{"a1", "f1", false},
		{"d5", "c4", true},
		{"d5", "c6", false},
		{"e1", "d2", true},
	}
	for _, tc := range cases {
		if got := p.attacks(mustSquare(t, tc.from), mustSquare(t, tc.to)); got != tc.want {
			t.Fatalf("%s attacks %s: got=%v want=%v", tc.from, tc.to, got, tc.want)
		}
	}
}
