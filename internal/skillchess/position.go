package skillchess

import (
	"math/bits"

	"github.com/dylhunn/dragontoothmg"
)

// Position is the baseline board plus side to move. All rule knowledge of
// plain chess lives in dragontoothmg; this type only adapts it.
//
// version identifies the board contents. Undo closures rewind it, so the
// cached standard move list stays valid across push/pop pairs.
type Position struct {
	board dragontoothmg.Board

	seq     uint64
	version uint64

	legal        []Move
	legalVersion uint64
	legalOK      bool
}

func newPosition(b dragontoothmg.Board) *Position {
	p := &Position{board: b}
	p.touch()
	return p
}

func NewInitialPosition() *Position {
	p, err := DecodePosition(StartFEN)
	if err != nil {
		panic(err)
	}
	return p
}

func (p *Position) touch() {
	p.seq++
	p.version = p.seq
}

func (p *Position) Clone() *Position {
	return newPosition(p.board)
}

func (p *Position) SideToMove() Color {
	if p.board.Wtomove {
		return White
	}
	return Black
}

func (p *Position) bitboards(c Color) *dragontoothmg.Bitboards {
	if c == White {
		return &p.board.White
	}
	return &p.board.Black
}

func typeBoard(bb *dragontoothmg.Bitboards, t PieceType) *uint64 {
	switch t {
	case PiecePawn:
		return &bb.Pawns
	case PieceKnight:
		return &bb.Knights
	case PieceBishop:
		return &bb.Bishops
	case PieceRook:
		return &bb.Rooks
	case PieceQueen:
		return &bb.Queens
	case PieceKing:
		return &bb.Kings
	}
	return nil
}

var pieceTypes = [...]PieceType{PiecePawn, PieceKnight, PieceBishop, PieceRook, PieceQueen, PieceKing}

// PieceAt returns NoPiece for empty or out-of-range squares.
func (p *Position) PieceAt(sq Square) Piece {
	if !sq.Valid() {
		return NoPiece
	}
	bit := uint64(1) << sq
	for _, c := range [2]Color{White, Black} {
		bb := p.bitboards(c)
		if bb.All&bit == 0 {
			continue
		}
		for _, t := range pieceTypes {
			if *typeBoard(bb, t)&bit != 0 {
				return Piece{Color: c, Type: t}
			}
		}
	}
	return NoPiece
}

// PiecesOf lists the squares holding pieces of type t and color c, a1 first.
func (p *Position) PiecesOf(t PieceType, c Color) []Square {
	set := typeBoard(p.bitboards(c), t)
	if set == nil {
		return nil
	}
	var out []Square
	for b := *set; b != 0; b &= b - 1 {
		out = append(out, Square(bits.TrailingZeros64(b)))
	}
	return out
}

func (p *Position) Count(t PieceType, c Color) int {
	set := typeBoard(p.bitboards(c), t)
	if set == nil {
		return 0
	}
	return bits.OnesCount64(*set)
}

// Occupied lists every square holding a piece of color c.
func (p *Position) Occupied(c Color) []Square {
	var out []Square
	for b := p.bitboards(c).All; b != 0; b &= b - 1 {
		out = append(out, Square(bits.TrailingZeros64(b)))
	}
	return out
}

func (p *Position) KingSquare(c Color) (Square, bool) {
	k := p.bitboards(c).Kings
	if k == 0 {
		return NoSquare, false
	}
	return Square(bits.TrailingZeros64(k)), true
}

func (p *Position) HasKing(c Color) bool {
	_, ok := p.KingSquare(c)
	return ok
}

// place writes pc (or clears the square for NoPiece) straight into the
// bitboards. Callers decide whether the change is persistent.
func (p *Position) place(sq Square, pc Piece) {
	bit := uint64(1) << sq
	for _, c := range [2]Color{White, Black} {
		bb := p.bitboards(c)
		for _, t := range pieceTypes {
			*typeBoard(bb, t) &^= bit
		}
		bb.All &^= bit
	}
	if pc.Empty() {
		return
	}
	bb := p.bitboards(pc.Color)
	*typeBoard(bb, pc.Type) |= bit
	bb.All |= bit
}

// substitute puts pc on sq and returns the restore func. The board comes
// back bit-identical, including its version.
func (p *Position) substitute(sq Square, pc Piece) (restore func()) {
	orig := p.PieceAt(sq)
	prev := p.version
	p.place(sq, pc)
	p.touch()
	return func() {
		p.place(sq, orig)
		p.version = prev
	}
}

// view makes c the side to move until the returned func runs.
func (p *Position) view(c Color) (restore func()) {
	want := c == White
	if p.board.Wtomove == want {
		return func() {}
	}
	prev := p.version
	p.board.Wtomove = want
	p.touch()
	return func() {
		p.board.Wtomove = !want
		p.version = prev
	}
}

// Push plays m on the board and returns the undo func. Pair every Push with
// a deferred call of its undo.
func (p *Position) Push(m Move) (undo func()) {
	prev := p.version
	unapply := p.board.Apply(toBaseline(m))
	p.touch()
	return func() {
		unapply()
		p.version = prev
	}
}

// Play commits m. Moves missing from the baseline list are carried out
// square by square, so the baseline never reads them as castling or en
// passant.
func (p *Position) Play(m Move) {
	if p.IsStandardLegal(m) {
		p.Push(m)
		return
	}
	pc := p.PieceAt(m.From)
	if pc.Type == PiecePawn || !p.PieceAt(m.To).Empty() {
		p.board.Halfmoveclock = 0
	} else {
		p.board.Halfmoveclock++
	}
	if !p.board.Wtomove {
		p.board.Fullmoveno++
	}
	p.place(m.From, NoPiece)
	p.place(m.To, pc)
	p.board.Wtomove = !p.board.Wtomove
	p.resyncClearEP()
}

// SetPiece persistently places pc on sq (NoPiece clears it).
func (p *Position) SetPiece(sq Square, pc Piece) {
	if !sq.Valid() {
		return
	}
	p.place(sq, pc)
	p.resync()
}

func (p *Position) RemovePiece(sq Square) Piece {
	pc := p.PieceAt(sq)
	if !pc.Empty() {
		p.SetPiece(sq, NoPiece)
	}
	return pc
}

// SetSideToMove persistently hands the move to c. Any en passant target is
// dropped since it belonged to the other side.
func (p *Position) SetSideToMove(c Color) {
	if p.SideToMove() == c {
		return
	}
	p.board.Wtomove = c == White
	p.resyncClearEP()
}

// InCheck is the baseline check test for c's king. With either king off
// the board there is no check to speak of.
func (p *Position) InCheck(c Color) bool {
	if !p.HasKing(c) || !p.HasKing(c.Other()) {
		return false
	}
	defer p.view(c)()
	return p.board.OurKingInCheck()
}

// StandardMoves is the baseline legal move list for the side to move.
func (p *Position) StandardMoves() []Move {
	if p.legalOK && p.legalVersion == p.version {
		return p.legal
	}
	var out []Move
	// dragontoothmg indexes king squares unconditionally.
	if p.HasKing(White) && p.HasKing(Black) {
		gen := p.board.GenerateLegalMoves()
		out = make([]Move, 0, len(gen))
		for _, mv := range gen {
			out = append(out, fromBaseline(mv))
		}
	}
	p.legal, p.legalVersion, p.legalOK = out, p.version, true
	return out
}

func (p *Position) IsStandardLegal(m Move) bool {
	for _, mv := range p.StandardMoves() {
		if mv == m {
			return true
		}
	}
	return false
}

// IsCapture includes en passant. dragontoothmg.IsCapture is not used: with
// no en passant square set it reads square a1 as the target.
func (p *Position) IsCapture(m Move) bool {
	if !m.From.Valid() || !m.To.Valid() {
		return false
	}
	pc := p.PieceAt(m.From)
	if pc.Empty() {
		return false
	}
	if target := p.PieceAt(m.To); !target.Empty() {
		return target.Color != pc.Color
	}
	return p.IsEnPassant(m)
}

// IsEnPassant is a diagonal pawn step onto an empty square past an enemy
// pawn.
func (p *Position) IsEnPassant(m Move) bool {
	if !m.From.Valid() || !m.To.Valid() {
		return false
	}
	pc := p.PieceAt(m.From)
	if pc.Type != PiecePawn || abs(m.From.File()-m.To.File()) != 1 || !p.PieceAt(m.To).Empty() {
		return false
	}
	if m.To.Rank()-m.From.Rank() != pawnDir(pc.Color) {
		return false
	}
	behind := p.PieceAt(squareAt(m.To.File(), m.From.Rank()))
	return behind.Type == PiecePawn && behind.Color == pc.Color.Other()
}

func (p *Position) IsCastling(m Move) bool {
	return p.PieceAt(m.From).Type == PieceKing && abs(m.To.File()-m.From.File()) == 2
}

// CaptureSquare is where the captured piece stood, NoSquare for quiet moves.
func (p *Position) CaptureSquare(m Move) Square {
	switch {
	case p.IsEnPassant(m):
		return squareAt(m.To.File(), m.From.Rank())
	case p.IsCapture(m):
		return m.To
	}
	return NoSquare
}

// CastleRookSquares returns the rook's origin and destination for a castling
// move.
func (p *Position) CastleRookSquares(m Move) (from, to Square, ok bool) {
	if !p.IsCastling(m) {
		return NoSquare, NoSquare, false
	}
	r := m.From.Rank()
	if m.To.File() > m.From.File() {
		return squareAt(7, r), squareAt(5, r), true
	}
	return squareAt(0, r), squareAt(3, r), true
}

// Normalize fills in the default queen promotion and drops a promotion
// piece on anything that is not a pawn reaching the last rank.
func (p *Position) Normalize(m Move) Move {
	pc := p.PieceAt(m.From)
	if pc.Type == PiecePawn && m.To.Valid() && m.To.Rank() == lastRank(pc.Color) {
		switch m.Promotion {
		case PieceKnight, PieceBishop, PieceRook, PieceQueen:
		default:
			m.Promotion = PieceQueen
		}
		return m
	}
	m.Promotion = PieceNone
	return m
}

func toBaseline(m Move) dragontoothmg.Move {
	var mv dragontoothmg.Move
	mv.Setfrom(dragontoothmg.Square(m.From)).Setto(dragontoothmg.Square(m.To))
	if m.Promotion != PieceNone {
		mv.Setpromote(dragontoothmg.Piece(m.Promotion))
	}
	return mv
}

func fromBaseline(mv dragontoothmg.Move) Move {
	return Move{
		From:      Square(mv.From()),
		To:        Square(mv.To()),
		Promotion: PieceType(mv.Promote()),
	}
}
