package httpserver

import (
	"skillchess/internal/server/game"
	"skillchess/internal/skillchess"
)

// JoinRequest takes a seat. An empty room opens a new one.
type JoinRequest struct {
	Room   string `json:"room"`
	Player string `json:"player"`
	Skill  string `json:"skill"`
}

type JoinResponse struct {
	Room    string `json:"room"`
	Color   string `json:"color"`
	Token   string `json:"token"`
	Skill   string `json:"skill"`
	Started bool   `json:"started"`
}

// MoveRequest squares are algebraic ("e2"); promotion is optional and
// defaults to a queen.
type MoveRequest struct {
	Room      string `json:"room"`
	Token     string `json:"token"`
	From      string `json:"from"`
	To        string `json:"to"`
	Promotion string `json:"promotion,omitempty"`
}

// SeatRequest identifies a player in a room, for resign and decline_bonus.
type SeatRequest struct {
	Room  string `json:"room"`
	Token string `json:"token"`
}

type StateRequest struct {
	Room string `json:"room"`
}

type OutcomeDTO struct {
	Accepted    bool   `json:"accepted"`
	Color       string `json:"color"`
	From        string `json:"from,omitempty"`
	To          string `json:"to,omitempty"`
	Promotion   string `json:"promotion,omitempty"`
	CapturedSq  string `json:"captured_sq,omitempty"`
	RookFrom    string `json:"rook_from,omitempty"`
	RookTo      string `json:"rook_to,omitempty"`
	Revived     string `json:"revived,omitempty"`
	InCheck     bool   `json:"in_check"`
	Bonus       bool   `json:"bonus"`
	BonusLapsed bool   `json:"bonus_lapsed,omitempty"`
	Over        bool   `json:"over"`
	Winner      string `json:"winner,omitempty"`
	Reason      string `json:"reason,omitempty"`
}

type StateResponse struct {
	Room       string            `json:"room"`
	Started    bool              `json:"started"`
	Players    map[string]string `json:"players"`
	Skills     map[string]string `json:"skills"`
	FEN        string            `json:"fen,omitempty"`
	Turn       string            `json:"turn,omitempty"`
	Phase      string            `json:"phase,omitempty"`
	Variant    string            `json:"variant,omitempty"`
	Anchor     string            `json:"anchor,omitempty"`
	InCheck    bool              `json:"in_check"`
	LegalMoves []string          `json:"legal_moves"`
	Winner     string            `json:"winner,omitempty"`
	Reason     string            `json:"reason,omitempty"`
}

type MoveResponse struct {
	Outcome OutcomeDTO    `json:"outcome"`
	State   StateResponse `json:"state"`
}

type RoomDTO struct {
	Room    string   `json:"room"`
	Players []string `json:"players"`
	Started bool     `json:"started"`
	Over    bool     `json:"over"`
}

type StandingDTO struct {
	Player string `json:"player"`
	Wins   int    `json:"wins"`
}

// GameOverEvent is the payload of the game_over room event.
type GameOverEvent struct {
	Winner string `json:"winner,omitempty"`
	Player string `json:"player,omitempty"`
	Reason string `json:"reason"`
}

func squareString(sq skillchess.Square) string {
	if !sq.Valid() {
		return ""
	}
	return sq.String()
}

func colorString(c skillchess.Color) string {
	if c == skillchess.NoColor {
		return ""
	}
	return c.String()
}

func outcomeToDTO(o skillchess.Outcome) OutcomeDTO {
	dto := OutcomeDTO{
		Accepted:    o.Accepted,
		Color:       colorString(o.Color),
		From:        squareString(o.Move.From),
		To:          squareString(o.Move.To),
		CapturedSq:  squareString(o.CaptureSquare),
		RookFrom:    squareString(o.RookFrom),
		RookTo:      squareString(o.RookTo),
		Revived:     squareString(o.Revived),
		InCheck:     o.Check,
		Bonus:       o.Bonus,
		BonusLapsed: o.BonusLapsed,
		Over:        o.Over,
		Winner:      colorString(o.Winner),
		Reason:      o.Reason.String(),
	}
	if o.Move.Promotion != skillchess.PieceNone {
		dto.Promotion = o.Move.Promotion.String()
	}
	return dto
}

func movesToStrings(ms []skillchess.Move) []string {
	out := make([]string, len(ms))
	for i, m := range ms {
		out[i] = m.String()
	}
	return out
}

// stateOf must run inside GameState.Do.
func stateOf(g *game.GameState) StateResponse {
	resp := StateResponse{
		Room:       g.ID,
		Started:    g.Started(),
		Players:    make(map[string]string, len(g.Seats)),
		Skills:     make(map[string]string, len(g.Seats)),
		LegalMoves: []string{},
	}
	for _, s := range g.Seats {
		resp.Players[s.Color.String()] = s.Player
		resp.Skills[s.Color.String()] = s.Skill.String()
	}
	m := g.Match
	if m == nil {
		return resp
	}
	resp.FEN = m.FEN()
	resp.Turn = m.Turn().String()
	resp.Phase = m.Phase().String()
	resp.Variant = m.Variant().String()
	resp.Anchor = squareString(m.Anchor())
	resp.InCheck = m.InCheck(m.Turn())
	resp.LegalMoves = movesToStrings(m.LegalMoves())
	resp.Winner = colorString(m.Winner())
	resp.Reason = m.Reason().String()
	return resp
}
