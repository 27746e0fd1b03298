package skillchess

import (
	"fmt"
	"strings"

	"github.com/dylhunn/dragontoothmg"
)

const StartFEN = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

var letterToPieceType = map[rune]PieceType{
	'p': PiecePawn,
	'n': PieceKnight,
	'b': PieceBishop,
	'r': PieceRook,
	'q': PieceQueen,
	'k': PieceKing,
}

func (p *Position) Encode() string {
	return p.board.ToFen()
}

// DecodePosition parses a FEN. The move counters are optional.
func DecodePosition(fen string) (pos *Position, err error) {
	fields := strings.Fields(fen)
	switch len(fields) {
	case 4:
		fields = append(fields, "0", "1")
	case 6:
	default:
		return nil, fmt.Errorf("%w: want 4 or 6 fields, got %d", ErrInvalidFEN, len(fields))
	}
	if err := checkPlacement(fields[0]); err != nil {
		return nil, err
	}
	if fields[1] != "w" && fields[1] != "b" {
		return nil, fmt.Errorf("%w: side to move %q", ErrInvalidFEN, fields[1])
	}
	if fields[3] != "-" {
		if _, err := ParseSquare(fields[3]); err != nil {
			return nil, fmt.Errorf("%w: en passant %q", ErrInvalidFEN, fields[3])
		}
	}

	// dragontoothmg panics on input it cannot read.
	defer func() {
		if r := recover(); r != nil {
			pos, err = nil, fmt.Errorf("%w: %v", ErrInvalidFEN, r)
		}
	}()
	b := dragontoothmg.ParseFen(strings.Join(fields, " "))
	pos = newPosition(b)
	fields[2] = pos.castlingField(fields[2])
	pos.board = dragontoothmg.ParseFen(strings.Join(fields, " "))
	return pos, nil
}

func checkPlacement(placement string) error {
	rows := strings.Split(placement, "/")
	if len(rows) != Ranks {
		return fmt.Errorf("%w: want %d ranks, got %d", ErrInvalidFEN, Ranks, len(rows))
	}
	kings := map[rune]int{}
	for _, row := range rows {
		n := 0
		for _, ch := range row {
			if ch >= '1' && ch <= '8' {
				n += int(ch - '0')
				continue
			}
			lower := ch | 0x20
			if _, ok := letterToPieceType[lower]; !ok {
				return fmt.Errorf("%w: piece %q", ErrInvalidFEN, ch)
			}
			if lower == 'k' {
				kings[ch]++
			}
			n++
		}
		if n != Files {
			return fmt.Errorf("%w: rank %q", ErrInvalidFEN, row)
		}
	}
	if kings['K'] > 1 || kings['k'] > 1 {
		return fmt.Errorf("%w: more than one king per side", ErrInvalidFEN)
	}
	return nil
}

// castlingField keeps only the rights whose king and rook still stand on
// their home squares. Setup and revival move pieces behind the baseline's
// back, and dragontoothmg trusts the rights field.
func (p *Position) castlingField(rights string) string {
	type right struct {
		flag       rune
		king, rook Square
		color      Color
	}
	all := []right{
		{'K', squareAt(4, 0), squareAt(7, 0), White},
		{'Q', squareAt(4, 0), squareAt(0, 0), White},
		{'k', squareAt(4, 7), squareAt(7, 7), Black},
		{'q', squareAt(4, 7), squareAt(0, 7), Black},
	}
	var sb strings.Builder
	for _, r := range all {
		if !strings.ContainsRune(rights, r.flag) {
			continue
		}
		if p.PieceAt(r.king) != (Piece{r.color, PieceKing}) || p.PieceAt(r.rook) != (Piece{r.color, PieceRook}) {
			continue
		}
		sb.WriteRune(r.flag)
	}
	if sb.Len() == 0 {
		return "-"
	}
	return sb.String()
}

// resync rebuilds the baseline board from its own FEN after a direct
// bitboard edit, so its hash and castling state agree with the pieces.
func (p *Position) resync() {
	p.rebuild(false)
}

func (p *Position) resyncClearEP() {
	p.rebuild(true)
}

func (p *Position) rebuild(clearEP bool) {
	fields := strings.Fields(p.board.ToFen())
	if len(fields) >= 4 {
		fields[2] = p.castlingField(fields[2])
		if clearEP {
			fields[3] = "-"
		}
	}
	p.board = dragontoothmg.ParseFen(strings.Join(fields, " "))
	p.touch()
}
