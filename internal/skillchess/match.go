package skillchess

// Phase is where a match stands between moves.
type Phase uint8

const (
	PhaseWaiting Phase = iota
	PhaseBonusPending
	PhaseOver
)

func (ph Phase) String() string {
	switch ph {
	case PhaseWaiting:
		return "waiting"
	case PhaseBonusPending:
		return "bonus_pending"
	case PhaseOver:
		return "over"
	}
	return "unknown"
}

// Reason says how a match ended.
type Reason uint8

const (
	ReasonNone Reason = iota
	ReasonCheckmate
	ReasonResignation
	ReasonKingCaptured
	ReasonStalemate
)

func (r Reason) String() string {
	switch r {
	case ReasonNone:
		return ""
	case ReasonCheckmate:
		return "checkmate"
	case ReasonResignation:
		return "resignation"
	case ReasonKingCaptured:
		return "king_captured"
	case ReasonStalemate:
		return "stalemate"
	}
	return "unknown"
}

type Variant uint8

const (
	VariantSkills Variant = iota
	VariantMajesty
)

func (v Variant) String() string {
	if v == VariantMajesty {
		return "majesty"
	}
	return "skills"
}

// Options toggles rules that are off by default.
type Options struct {
	// Revival returns the first captured knight, bishop or rook of each
	// color to a free home square.
	Revival bool
}

// Outcome reports what an evaluated move did.
type Outcome struct {
	Accepted bool
	Move     Move
	Color    Color

	CaptureSquare Square
	Captured      Piece
	RookFrom      Square
	RookTo        Square
	Revived       Square

	// Check is set when the opponent's king is in check afterwards.
	Check bool
	// Bonus is set when the mover must now play a bonus move.
	Bonus bool
	// BonusLapsed is set when a bonus was earned but no legal bonus move
	// exists, so the turn passed straight away.
	BonusLapsed bool

	Over   bool
	Winner Color
	Reason Reason
}

func rejected(m Move, c Color) Outcome {
	return Outcome{
		Move:          m,
		Color:         c,
		CaptureSquare: NoSquare,
		Captured:      NoPiece,
		RookFrom:      NoSquare,
		RookTo:        NoSquare,
		Revived:       NoSquare,
		Winner:        NoColor,
	}
}

// Match runs one game: the turn order, the bonus-move state machine, the
// end-of-game checks and the optional revival rule. It is not safe for
// concurrent use.
type Match struct {
	pos     *Position
	skills  [2]Skill
	variant Variant
	majesty [2]bool
	opts    Options

	// usage counts bonus grants per skill and color within the current
	// turn. It is non-zero only while a bonus is pending.
	usage   [skillCount][2]int
	anchor  Square
	revived RevivalFlags

	setup  bool
	phase  Phase
	winner Color
	reason Reason
	plies  int
}

// NewMatch starts from the standard opening position. A Majesty pick on
// either side turns the whole match into the Majesty variant, where the
// other skills have no effect.
func NewMatch(white, black Skill, opts Options) *Match {
	return newMatch(NewInitialPosition(), white, black, opts)
}

// NewMatchFromFEN starts from an arbitrary position.
func NewMatchFromFEN(fen string, white, black Skill, opts Options) (*Match, error) {
	p, err := DecodePosition(fen)
	if err != nil {
		return nil, err
	}
	return newMatch(p, white, black, opts), nil
}

func newMatch(p *Position, white, black Skill, opts Options) *Match {
	m := &Match{
		pos:    p,
		skills: [2]Skill{white, black},
		opts:   opts,
		anchor: NoSquare,
		winner: NoColor,
	}
	for _, c := range [2]Color{White, Black} {
		if m.skills[c] == SkillMajesty {
			m.variant = VariantMajesty
			m.majesty[c] = true
		}
	}
	return m
}

// ApplySetup performs the one-time board changes the skills call for and
// opens the match for moves.
func (m *Match) ApplySetup() error {
	if m.setup {
		return ErrSetupApplied
	}
	for _, c := range [2]Color{White, Black} {
		switch {
		case m.majesty[c]:
			majestySetup(m.pos, c)
		case m.variant == VariantSkills && m.skills[c] == SkillTheocracy:
			for _, sq := range m.pos.PiecesOf(PieceQueen, c) {
				m.pos.RemovePiece(sq)
			}
		}
	}
	m.setup = true
	return nil
}

func (m *Match) Started() bool       { return m.setup }
func (m *Match) Position() *Position { return m.pos }
func (m *Match) Turn() Color         { return m.pos.SideToMove() }
func (m *Match) Phase() Phase        { return m.phase }
func (m *Match) Winner() Color       { return m.winner }
func (m *Match) Reason() Reason      { return m.reason }
func (m *Match) Variant() Variant    { return m.variant }
func (m *Match) Anchor() Square      { return m.anchor }
func (m *Match) Plies() int          { return m.plies }
func (m *Match) Revived() RevivalFlags {
	return m.revived
}

func (m *Match) Skill(c Color) Skill {
	if c != White && c != Black {
		return SkillNone
	}
	return m.skills[c]
}

// Usage is how many bonus moves skill s has granted c this turn.
func (m *Match) Usage(s Skill, c Color) int {
	if s >= skillCount || (c != White && c != Black) {
		return 0
	}
	return m.usage[s][c]
}

// rulesFor returns the evaluator inputs with c as the mover.
func (m *Match) rulesFor(c Color) Rules {
	r := Rules{Mover: m.skills[c], Attacker: m.skills[c.Other()], Anchor: NoSquare}
	if m.phase == PhaseBonusPending && c == m.pos.SideToMove() {
		r.Anchor = m.anchor
	}
	return r
}

func (m *Match) legal(mv Move, bonus bool) bool {
	if m.variant == VariantMajesty {
		return !bonus && IsMajestyMoveLegal(m.pos, m.majesty, mv)
	}
	return IsMoveLegal(m.pos, m.rulesFor(m.pos.SideToMove()), mv, bonus)
}

// Evaluate judges mv for the side to move and, when it is legal, plays it.
// bonus must match the current phase. Illegal moves leave the match
// untouched and come back with Accepted unset.
func (m *Match) Evaluate(mv Move, bonus bool) (Outcome, error) {
	if m.phase == PhaseOver {
		return Outcome{}, ErrGameOver
	}
	if !m.setup {
		return Outcome{}, ErrMatchNotStarted
	}
	if !mv.From.Valid() || !mv.To.Valid() || mv.From == mv.To {
		return Outcome{}, ErrMalformedMove
	}
	if m.pos.PieceAt(mv.From).Empty() {
		return Outcome{}, ErrMalformedMove
	}
	switch {
	case bonus && m.phase != PhaseBonusPending:
		return Outcome{}, ErrNoBonusPending
	case !bonus && m.phase == PhaseBonusPending:
		return Outcome{}, ErrBonusPending
	}

	mv = m.pos.Normalize(mv)
	mover := m.pos.SideToMove()
	if !m.legal(mv, bonus) {
		return rejected(mv, mover), nil
	}
	return m.accept(mv, bonus), nil
}

// Play is Evaluate for a named player, with the bonus flag taken from the
// phase.
func (m *Match) Play(c Color, mv Move) (Outcome, error) {
	if m.phase == PhaseOver {
		return Outcome{}, ErrGameOver
	}
	if !m.setup {
		return Outcome{}, ErrMatchNotStarted
	}
	if c != m.pos.SideToMove() {
		return Outcome{}, ErrNotYourTurn
	}
	return m.Evaluate(mv, m.phase == PhaseBonusPending)
}

func (m *Match) accept(mv Move, bonus bool) Outcome {
	p := m.pos
	mover := p.SideToMove()
	out := rejected(mv, mover)
	out.Accepted = true

	out.CaptureSquare = p.CaptureSquare(mv)
	if out.CaptureSquare == NoSquare && p.PieceAt(mv.To).Type == PieceKing {
		out.CaptureSquare = mv.To
	}
	if out.CaptureSquare != NoSquare {
		out.Captured = p.PieceAt(out.CaptureSquare)
	}
	if rf, rt, ok := p.CastleRookSquares(mv); ok {
		out.RookFrom, out.RookTo = rf, rt
	}
	grant := !bonus && m.bonusEarned(mv)

	p.Play(mv)
	m.plies++

	if m.opts.Revival && !out.Captured.Empty() {
		out.Revived = Revive(p, out.Captured, out.CaptureSquare, &m.revived)
	}

	if out.Captured.Type == PieceKing || !p.HasKing(mover.Other()) {
		m.finish(mover, ReasonKingCaptured)
		return m.report(out)
	}

	if grant {
		skill := m.skills[mover]
		p.SetSideToMove(mover)
		m.usage[skill][mover]++
		m.anchor = mv.To
		m.phase = PhaseBonusPending
		out.Bonus = true
		if !HasLegalMove(p, m.rulesFor(mover), true) {
			m.passTurn(mover)
			out.Bonus = false
			out.BonusLapsed = true
		}
	} else {
		m.passTurn(mover)
	}

	out.Check = m.inCheck(mover.Other())
	m.checkEnd(mover)
	return m.report(out)
}

func (m *Match) report(out Outcome) Outcome {
	out.Over = m.phase == PhaseOver
	out.Winner = m.winner
	out.Reason = m.reason
	return out
}

// bonusEarned is judged on the board before mv is played.
func (m *Match) bonusEarned(mv Move) bool {
	if m.variant != VariantSkills {
		return false
	}
	p := m.pos
	mover := p.SideToMove()
	skill := m.skills[mover]
	if !skill.GrantsBonus() || m.usage[skill][mover] > 0 {
		return false
	}
	pc := p.PieceAt(mv.From)
	switch skill {
	case SkillRampage:
		return pc.Type == PieceKnight && p.IsCapture(mv)
	case SkillBlitzkrieg:
		if pc.Type != PieceRook || p.Count(PieceRook, mover) < 2 || p.IsCapture(mv) {
			return false
		}
		return !givesCheck(p, m.rulesFor(mover), mv)
	case SkillNone, SkillTheocracy, SkillSubjects, SkillMajesty:
		return false
	}
	return false
}

// passTurn hands the move to the opponent of mover and clears every
// per-turn bonus counter of mover.
func (m *Match) passTurn(mover Color) {
	m.pos.SetSideToMove(mover.Other())
	for s := range m.usage {
		m.usage[s][mover] = 0
	}
	m.anchor = NoSquare
	m.phase = PhaseWaiting
}

func (m *Match) finish(winner Color, reason Reason) {
	m.phase = PhaseOver
	m.winner = winner
	m.reason = reason
	m.anchor = NoSquare
}

func (m *Match) inCheck(c Color) bool {
	if m.variant == VariantMajesty {
		return m.pos.InCheck(c)
	}
	return IsCheck(m.pos, c, m.skills[c], m.skills[c.Other()])
}

// checkEnd looks for checkmate or stalemate of mover's opponent. While a
// bonus is pending the opponent is examined as if it were already to move;
// a stalemate only counts once the turn has really passed.
func (m *Match) checkEnd(mover Color) {
	opp := mover.Other()
	p := m.pos
	defer p.view(opp)()

	if m.variant == VariantMajesty {
		if m.phase == PhaseWaiting && !hasMajestyMove(p, m.majesty) {
			m.finish(NoColor, ReasonStalemate)
		}
		return
	}
	if IsCheckmate(p, m.skills[opp], m.skills[mover]) {
		m.finish(mover, ReasonCheckmate)
		return
	}
	if m.phase == PhaseWaiting && !HasLegalMove(p, Rules{Mover: m.skills[opp], Attacker: m.skills[mover], Anchor: NoSquare}, false) {
		m.finish(NoColor, ReasonStalemate)
	}
}

// DeclineBonus gives up a pending bonus move and passes the turn.
func (m *Match) DeclineBonus(c Color) (Outcome, error) {
	if m.phase == PhaseOver {
		return Outcome{}, ErrGameOver
	}
	if m.phase != PhaseBonusPending {
		return Outcome{}, ErrNoBonusPending
	}
	if c != m.pos.SideToMove() {
		return Outcome{}, ErrNotYourTurn
	}
	out := rejected(Move{From: NoSquare, To: NoSquare}, c)
	m.passTurn(c)
	out.Check = m.inCheck(c.Other())
	m.checkEnd(c)
	return m.report(out), nil
}

// Resign ends the match in favour of c's opponent.
func (m *Match) Resign(c Color) (Outcome, error) {
	if m.phase == PhaseOver {
		return Outcome{}, ErrGameOver
	}
	if c != White && c != Black {
		return Outcome{}, ErrNotYourTurn
	}
	m.finish(c.Other(), ReasonResignation)
	return m.report(rejected(Move{From: NoSquare, To: NoSquare}, c)), nil
}

// IsCheckmate asks the checkmate question for the side to move.
func (m *Match) IsCheckmate() bool {
	if m.variant == VariantMajesty {
		return false
	}
	c := m.pos.SideToMove()
	return IsCheckmate(m.pos, m.skills[c], m.skills[c.Other()])
}

// InCheck reports whether c's king is in check under the match's skills.
func (m *Match) InCheck(c Color) bool {
	if c != White && c != Black {
		return false
	}
	return m.inCheck(c)
}

// LegalMoves lists the moves the side to move may play now, bonus moves
// included while one is pending.
func (m *Match) LegalMoves() []Move {
	if m.phase == PhaseOver || !m.setup {
		return nil
	}
	if m.variant == VariantMajesty {
		return majestyMoves(m.pos, m.majesty)
	}
	return LegalMoves(m.pos, m.rulesFor(m.pos.SideToMove()), m.phase == PhaseBonusPending)
}

// FEN is the current board in Forsyth-Edwards notation.
func (m *Match) FEN() string { return m.pos.Encode() }
