package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/sirupsen/logrus"

	"skillchess/internal/server/game"
	"skillchess/internal/server/ws"
	"skillchess/internal/skillchess"
)

// Handler serves the /api/* routes. The websocket hub is optional; without
// it room events are simply not published.
type Handler struct {
	games *game.Manager
	hub   *ws.Hub
}

func NewHandler(games *game.Manager, hub *ws.Hub) *Handler {
	return &Handler{games: games, hub: hub}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	switch r.URL.Path {
	case "/api/join":
		h.post(w, r, h.handleJoin)
	case "/api/move":
		h.post(w, r, h.handleMove)
	case "/api/decline_bonus":
		h.post(w, r, h.handleDeclineBonus)
	case "/api/resign":
		h.post(w, r, h.handleResign)
	case "/api/state":
		h.post(w, r, h.handleState)
	case "/api/skills":
		h.get(w, r, h.handleSkills)
	case "/api/rooms":
		h.get(w, r, h.handleRooms)
	case "/api/leaderboard":
		h.get(w, r, h.handleLeaderboard)
	default:
		http.NotFound(w, r)
	}
}

func (h *Handler) post(w http.ResponseWriter, r *http.Request, fn http.HandlerFunc) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	fn(w, r)
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request, fn http.HandlerFunc) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	fn(w, r)
}

func decode(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		http.Error(w, "bad json", http.StatusBadRequest)
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logrus.WithError(err).Error("write json")
	}
}

// statusOf maps domain errors onto HTTP status codes.
func statusOf(err error) int {
	switch {
	case errors.Is(err, game.ErrGameNotFound):
		return http.StatusNotFound
	case errors.Is(err, game.ErrUnknownPlayer):
		return http.StatusForbidden
	case errors.Is(err, skillchess.ErrMalformedMove),
		errors.Is(err, skillchess.ErrInvalidSquare),
		errors.Is(err, skillchess.ErrInvalidFEN),
		errors.Is(err, skillchess.ErrUnknownSkill):
		return http.StatusBadRequest
	case errors.Is(err, game.ErrRoomFull),
		errors.Is(err, skillchess.ErrNotYourTurn),
		errors.Is(err, skillchess.ErrBonusPending),
		errors.Is(err, skillchess.ErrNoBonusPending),
		errors.Is(err, skillchess.ErrGameOver),
		errors.Is(err, skillchess.ErrSetupApplied),
		errors.Is(err, skillchess.ErrMatchNotStarted):
		return http.StatusConflict
	}
	return http.StatusInternalServerError
}

func writeError(w http.ResponseWriter, err error) {
	status := statusOf(err)
	if status == http.StatusInternalServerError {
		logrus.WithError(err).Error("request failed")
	}
	http.Error(w, err.Error(), status)
}

func (h *Handler) publish(room, typ string, data any) {
	if h.hub == nil {
		return
	}
	h.hub.Broadcast(room, ws.Event{Type: typ, Data: data})
}

// finish credits the winner, tells the room and drops the finished match
// from the registry. Call outside the room lock.
func (h *Handler) finish(room, player, color string, reason skillchess.Reason) {
	h.games.RecordWin(player)
	h.publish(room, ws.EventGameOver, GameOverEvent{Winner: color, Player: player, Reason: reason.String()})
	if err := h.games.Delete(room); err != nil {
		logrus.WithError(err).WithField("room", room).Debug("finished room already gone")
	}
}

func winnerName(g *game.GameState) string {
	if g.Match == nil {
		return ""
	}
	w := g.Match.Winner()
	for _, s := range g.Seats {
		if s.Color == w {
			return s.Player
		}
	}
	return ""
}

func (h *Handler) handleJoin(w http.ResponseWriter, r *http.Request) {
	var req JoinRequest
	if !decode(w, r, &req) {
		return
	}
	req.Player = strings.TrimSpace(req.Player)
	if req.Player == "" {
		http.Error(w, "missing player", http.StatusBadRequest)
		return
	}
	skill, err := skillchess.ParseSkill(req.Skill)
	if err != nil {
		writeError(w, err)
		return
	}

	g, seat, err := h.games.Join(strings.TrimSpace(req.Room), req.Player, skill)
	if err != nil {
		writeError(w, err)
		return
	}

	var state StateResponse
	_ = g.Do(func(g *game.GameState) error {
		state = stateOf(g)
		return nil
	})
	logrus.WithFields(logrus.Fields{
		"room":   g.ID,
		"player": seat.Player,
		"color":  seat.Color,
		"skill":  seat.Skill,
	}).Info("player joined")

	if state.Started {
		h.publish(g.ID, ws.EventStart, state)
	} else {
		h.publish(g.ID, ws.EventWaiting, state)
	}
	writeJSON(w, JoinResponse{
		Room:    g.ID,
		Color:   seat.Color.String(),
		Token:   seat.Token,
		Skill:   seat.Skill.String(),
		Started: state.Started,
	})
}

func parseMoveRequest(req MoveRequest) (skillchess.Move, error) {
	from, err := skillchess.ParseSquare(req.From)
	if err != nil {
		return skillchess.Move{}, err
	}
	to, err := skillchess.ParseSquare(req.To)
	if err != nil {
		return skillchess.Move{}, err
	}
	promo, err := skillchess.ParsePromotion(req.Promotion)
	if err != nil {
		return skillchess.Move{}, err
	}
	return skillchess.Move{From: from, To: to, Promotion: promo}, nil
}

func (h *Handler) handleMove(w http.ResponseWriter, r *http.Request) {
	var req MoveRequest
	if !decode(w, r, &req) {
		return
	}
	mv, err := parseMoveRequest(req)
	if err != nil {
		writeError(w, err)
		return
	}
	g, err := h.games.Get(req.Room)
	if err != nil {
		writeError(w, err)
		return
	}

	var (
		resp   MoveResponse
		winner string
		reason skillchess.Reason
	)
	err = g.Do(func(g *game.GameState) error {
		seat, err := g.SeatFor(req.Token)
		if err != nil {
			return err
		}
		if g.Match == nil {
			return skillchess.ErrMatchNotStarted
		}
		out, err := g.Match.Play(seat.Color, mv)
		if err != nil {
			return err
		}
		resp = MoveResponse{Outcome: outcomeToDTO(out), State: stateOf(g)}
		if out.Over {
			winner, reason = winnerName(g), out.Reason
		}
		return nil
	})
	if err != nil {
		writeError(w, err)
		return
	}

	log := logrus.WithFields(logrus.Fields{
		"room":  req.Room,
		"color": resp.Outcome.Color,
		"move":  mv.String(),
	})
	if !resp.Outcome.Accepted {
		log.Debug("move rejected")
		writeJSON(w, resp)
		return
	}
	log.WithField("bonus", resp.Outcome.Bonus).Info("move played")

	h.publish(req.Room, ws.EventMoveMade, resp)
	if resp.Outcome.Over {
		h.finish(req.Room, winner, resp.State.Winner, reason)
	}
	writeJSON(w, resp)
}

func (h *Handler) handleDeclineBonus(w http.ResponseWriter, r *http.Request) {
	var req SeatRequest
	if !decode(w, r, &req) {
		return
	}
	g, err := h.games.Get(req.Room)
	if err != nil {
		writeError(w, err)
		return
	}
	var (
		resp   MoveResponse
		winner string
		reason skillchess.Reason
	)
	err = g.Do(func(g *game.GameState) error {
		seat, err := g.SeatFor(req.Token)
		if err != nil {
			return err
		}
		if g.Match == nil {
			return skillchess.ErrMatchNotStarted
		}
		out, err := g.Match.DeclineBonus(seat.Color)
		if err != nil {
			return err
		}
		resp = MoveResponse{Outcome: outcomeToDTO(out), State: stateOf(g)}
		if out.Over {
			winner, reason = winnerName(g), out.Reason
		}
		return nil
	})
	if err != nil {
		writeError(w, err)
		return
	}
	logrus.WithFields(logrus.Fields{"room": req.Room, "color": resp.Outcome.Color}).Info("bonus declined")
	h.publish(req.Room, ws.EventMoveMade, resp)
	if resp.Outcome.Over {
		h.finish(req.Room, winner, resp.State.Winner, reason)
	}
	writeJSON(w, resp)
}

func (h *Handler) handleResign(w http.ResponseWriter, r *http.Request) {
	var req SeatRequest
	if !decode(w, r, &req) {
		return
	}
	g, err := h.games.Get(req.Room)
	if err != nil {
		writeError(w, err)
		return
	}
	var (
		resp   MoveResponse
		winner string
		reason skillchess.Reason
	)
	err = g.Do(func(g *game.GameState) error {
		seat, err := g.SeatFor(req.Token)
		if err != nil {
			return err
		}
		if g.Match == nil {
			return skillchess.ErrMatchNotStarted
		}
		out, err := g.Match.Resign(seat.Color)
		if err != nil {
			return err
		}
		resp = MoveResponse{Outcome: outcomeToDTO(out), State: stateOf(g)}
		winner, reason = winnerName(g), out.Reason
		return nil
	})
	if err != nil {
		writeError(w, err)
		return
	}
	logrus.WithFields(logrus.Fields{"room": req.Room, "color": resp.Outcome.Color}).Info("player resigned")
	h.finish(req.Room, winner, resp.State.Winner, reason)
	writeJSON(w, resp)
}

func (h *Handler) handleState(w http.ResponseWriter, r *http.Request) {
	var req StateRequest
	if !decode(w, r, &req) {
		return
	}
	g, err := h.games.Get(req.Room)
	if err != nil {
		writeError(w, err)
		return
	}
	var resp StateResponse
	_ = g.Do(func(g *game.GameState) error {
		resp = stateOf(g)
		return nil
	})
	writeJSON(w, resp)
}

func (h *Handler) handleSkills(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, skillchess.SkillStrings())
}

func (h *Handler) handleRooms(w http.ResponseWriter, r *http.Request) {
	list := h.games.List()
	out := make([]RoomDTO, 0, len(list))
	for _, s := range list {
		out = append(out, RoomDTO{Room: s.ID, Players: s.Players, Started: s.Started, Over: s.Over})
	}
	writeJSON(w, out)
}

func (h *Handler) handleLeaderboard(w http.ResponseWriter, r *http.Request) {
	board := h.games.Leaderboard()
	out := make([]StandingDTO, 0, len(board))
	for _, s := range board {
		out = append(out, StandingDTO{Player: s.Player, Wins: s.Wins})
	}
	writeJSON(w, out)
}
