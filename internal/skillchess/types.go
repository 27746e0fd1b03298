package skillchess

import (
	"fmt"
	"strings"

	"github.com/dylhunn/dragontoothmg"
)

type Color int8

const (
	NoColor Color = -1
	White   Color = 0
	Black   Color = 1
)

func (c Color) Other() Color {
	switch c {
	case White:
		return Black
	case Black:
		return White
	}
	return NoColor
}

func (c Color) String() string {
	switch c {
	case White:
		return "white"
	case Black:
		return "black"
	}
	return "none"
}

// ParseColor accepts "white"/"w" and "black"/"b".
func ParseColor(s string) (Color, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "white", "w":
		return White, true
	case "black", "b":
		return Black, true
	}
	return NoColor, false
}

// PieceType values line up with dragontoothmg.Piece.
type PieceType uint8

const (
	PieceNone   = PieceType(dragontoothmg.Nothing)
	PiecePawn   = PieceType(dragontoothmg.Pawn)
	PieceKnight = PieceType(dragontoothmg.Knight)
	PieceBishop = PieceType(dragontoothmg.Bishop)
	PieceRook   = PieceType(dragontoothmg.Rook)
	PieceQueen  = PieceType(dragontoothmg.Queen)
	PieceKing   = PieceType(dragontoothmg.King)
)

func (t PieceType) String() string {
	switch t {
	case PiecePawn:
		return "pawn"
	case PieceKnight:
		return "knight"
	case PieceBishop:
		return "bishop"
	case PieceRook:
		return "rook"
	case PieceQueen:
		return "queen"
	case PieceKing:
		return "king"
	}
	return "none"
}

type Piece struct {
	Color Color
	Type  PieceType
}

var NoPiece = Piece{Color: NoColor, Type: PieceNone}

func (p Piece) Empty() bool { return p.Type == PieceNone }

// Move is a request-scoped origin/destination pair. Promotion is PieceNone
// for everything except pawn moves onto the last rank.
type Move struct {
	From      Square
	To        Square
	Promotion PieceType
}

func (m Move) String() string {
	s := m.From.String() + m.To.String()
	switch m.Promotion {
	case PieceKnight:
		s += "n"
	case PieceBishop:
		s += "b"
	case PieceRook:
		s += "r"
	case PieceQueen:
		s += "q"
	}
	return s
}

// ParsePromotion accepts a piece letter or name; "" means no promotion.
func ParsePromotion(s string) (PieceType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "":
		return PieceNone, nil
	case "q", "queen":
		return PieceQueen, nil
	case "r", "rook":
		return PieceRook, nil
	case "b", "bishop":
		return PieceBishop, nil
	case "n", "knight":
		return PieceKnight, nil
	}
	return PieceNone, fmt.Errorf("%w: promotion %q", ErrMalformedMove, s)
}

// ParseMove reads coordinate notation such as "e2e4" or "e7e8q".
func ParseMove(s string) (Move, error) {
	if len(s) != 4 && len(s) != 5 {
		return Move{}, fmt.Errorf("%w: %q", ErrMalformedMove, s)
	}
	from, err := ParseSquare(s[0:2])
	if err != nil {
		return Move{}, fmt.Errorf("%w: %w", ErrMalformedMove, err)
	}
	to, err := ParseSquare(s[2:4])
	if err != nil {
		return Move{}, fmt.Errorf("%w: %w", ErrMalformedMove, err)
	}
	m := Move{From: from, To: to}
	if len(s) == 5 {
		if m.Promotion, err = ParsePromotion(s[4:]); err != nil {
			return Move{}, err
		}
	}
	return m, nil
}

// Skill is the per-player modifier picked before a match.
type Skill uint8

const (
	SkillNone Skill = iota
	SkillTheocracy
	SkillBlitzkrieg
	SkillRampage
	SkillSubjects
	SkillMajesty

	skillCount
)

func (s Skill) String() string {
	switch s {
	case SkillNone:
		return "none"
	case SkillTheocracy:
		return "theocracy"
	case SkillBlitzkrieg:
		return "blitzkrieg"
	case SkillRampage:
		return "rampage"
	case SkillSubjects:
		return "subjects"
	case SkillMajesty:
		return "majesty"
	}
	return "unknown"
}

// GrantsBonus reports whether the skill can award a second move.
func (s Skill) GrantsBonus() bool {
	switch s {
	case SkillRampage, SkillBlitzkrieg:
		return true
	case SkillNone, SkillTheocracy, SkillSubjects, SkillMajesty:
		return false
	}
	return false
}

// Skills lists every selectable skill in declaration order.
func Skills() []Skill {
	out := make([]Skill, 0, skillCount)
	for s := SkillNone; s < skillCount; s++ {
		out = append(out, s)
	}
	return out
}

func SkillStrings() []string {
	out := make([]string, 0, skillCount)
	for _, s := range Skills() {
		out = append(out, s.String())
	}
	return out
}

// ParseSkill is case-insensitive; the empty string means SkillNone.
func ParseSkill(s string) (Skill, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	if name == "" {
		return SkillNone, nil
	}
	for _, sk := range Skills() {
		if sk.String() == name {
			return sk, nil
		}
	}
	return SkillNone, ErrUnknownSkill
}

func (s Skill) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

func (s *Skill) UnmarshalText(b []byte) error {
	sk, err := ParseSkill(string(b))
	if err != nil {
		return err
	}
	*s = sk
	return nil
}
