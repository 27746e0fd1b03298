package skillchess

import "fmt"

const (
	Ranks      = 8
	Files      = 8
	NumSquares = Ranks * Files
)

// Square indexes the board a1=0, b1=1 ... h8=63, matching dragontoothmg.
type Square uint8

const NoSquare Square = NumSquares

func squareAt(file, rank int) Square { return Square(rank*Files + file) }

func (s Square) File() int { return int(s) % Files }
func (s Square) Rank() int { return int(s) / Files }

func (s Square) Valid() bool { return s < NoSquare }

// Light reports the square color; a1 is dark.
func (s Square) Light() bool { return (s.File()+s.Rank())%2 == 1 }

func (s Square) String() string {
	if !s.Valid() {
		return "-"
	}
	return fmt.Sprintf("%c%d", 'a'+s.File(), s.Rank()+1)
}

func onBoard(file, rank int) bool {
	return file >= 0 && file < Files && rank >= 0 && rank < Ranks
}

// ParseSquare reads algebraic notation ("e4"), case-insensitive.
func ParseSquare(s string) (Square, error) {
	if len(s) != 2 {
		return NoSquare, fmt.Errorf("%w: %q", ErrInvalidSquare, s)
	}
	f := int(s[0]|0x20) - 'a'
	r := int(s[1]) - '1'
	if !onBoard(f, r) {
		return NoSquare, fmt.Errorf("%w: %q", ErrInvalidSquare, s)
	}
	return squareAt(f, r), nil
}

// pawnDir is the rank step of a pawn of the given color: white up, black down.
func pawnDir(c Color) int {
	switch c {
	case White:
		return +1
	case Black:
		return -1
	}
	return 0
}

// lastRank is where a pawn of color c promotes.
func lastRank(c Color) int {
	if c == White {
		return Ranks - 1
	}
	return 0
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
