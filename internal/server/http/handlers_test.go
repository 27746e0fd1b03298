package httpserver

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"skillchess/internal/server/game"
	"skillchess/internal/skillchess"
)

func call(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func decodeBody(t *testing.T, rr *httptest.ResponseRecorder, v any) {
	t.Helper()
	if err := json.Unmarshal(rr.Body.Bytes(), v); err != nil {
		t.Fatalf("decode body %q: %v", rr.Body.String(), err)
	}
}

func join(t *testing.T, h http.Handler, room, player, skill string) JoinResponse {
	t.Helper()
	body, _ := json.Marshal(JoinRequest{Room: room, Player: player, Skill: skill})
	rr := call(t, h, http.MethodPost, "/api/join", string(body))
	if rr.Code != http.StatusOK {
		t.Fatalf("join %s: status=%d body=%q", player, rr.Code, rr.Body.String())
	}
	var resp JoinResponse
	decodeBody(t, rr, &resp)
	return resp
}

func move(t *testing.T, h http.Handler, room, token, from, to string) *httptest.ResponseRecorder {
	t.Helper()
	body, _ := json.Marshal(MoveRequest{Room: room, Token: token, From: from, To: to})
	return call(t, h, http.MethodPost, "/api/move", string(body))
}

func TestJoinAndPlay(t *testing.T) {
	h := NewHandler(game.NewManager(skillchess.Options{}), nil)

	white := join(t, h, "", "alice", "theocracy")
	if white.Room == "" || white.Color != "white" || white.Started {
		t.Fatalf("first join: %+v", white)
	}
	black := join(t, h, white.Room, "bob", "")
	if black.Color != "black" || !black.Started || black.Skill != "none" {
		t.Fatalf("second join: %+v", black)
	}

	body, _ := json.Marshal(JoinRequest{Room: white.Room, Player: "carol"})
	if rr := call(t, h, http.MethodPost, "/api/join", string(body)); rr.Code != http.StatusConflict {
		t.Fatalf("third join: status=%d", rr.Code)
	}

	if rr := move(t, h, white.Room, black.Token, "e7", "e5"); rr.Code != http.StatusConflict {
		t.Fatalf("out of turn: status=%d", rr.Code)
	}
	if rr := move(t, h, white.Room, "bogus", "e2", "e4"); rr.Code != http.StatusForbidden {
		t.Fatalf("bad token: status=%d", rr.Code)
	}
	if rr := move(t, h, white.Room, white.Token, "e2", "z9"); rr.Code != http.StatusBadRequest {
		t.Fatalf("bad square: status=%d", rr.Code)
	}

	rr := move(t, h, white.Room, white.Token, "e2", "e4")
	if rr.Code != http.StatusOK {
		t.Fatalf("move: status=%d body=%q", rr.Code, rr.Body.String())
	}
	var resp MoveResponse
	decodeBody(t, rr, &resp)
	if !resp.Outcome.Accepted || resp.State.Turn != "black" || resp.State.Phase != "waiting" {
		t.Fatalf("move response: %+v", resp)
	}
	if resp.State.Skills["white"] != "theocracy" || len(resp.State.LegalMoves) == 0 {
		t.Fatalf("state: %+v", resp.State)
	}

	rr = move(t, h, white.Room, black.Token, "e7", "e4")
	if rr.Code != http.StatusOK {
		t.Fatalf("illegal move: status=%d", rr.Code)
	}
	decodeBody(t, rr, &resp)
	if resp.Outcome.Accepted || resp.State.Turn != "black" {
		t.Fatalf("illegal move accepted: %+v", resp)
	}
}

func TestResignUpdatesLeaderboard(t *testing.T) {
	h := NewHandler(game.NewManager(skillchess.Options{}), nil)
	white := join(t, h, "r1", "alice", "")
	join(t, h, "r1", "bob", "rampage")

	body, _ := json.Marshal(SeatRequest{Room: "r1", Token: white.Token})
	rr := call(t, h, http.MethodPost, "/api/resign", string(body))
	if rr.Code != http.StatusOK {
		t.Fatalf("resign: status=%d body=%q", rr.Code, rr.Body.String())
	}
	var resp MoveResponse
	decodeBody(t, rr, &resp)
	if !resp.Outcome.Over || resp.Outcome.Winner != "black" || resp.Outcome.Reason != "resignation" {
		t.Fatalf("resign outcome: %+v", resp.Outcome)
	}

	if rr := call(t, h, http.MethodPost, "/api/resign", string(body)); rr.Code != http.StatusNotFound {
		t.Fatalf("second resign: status=%d", rr.Code)
	}
	if rr := call(t, h, http.MethodPost, "/api/state", `{"room":"r1"}`); rr.Code != http.StatusNotFound {
		t.Fatalf("state after resignation: status=%d", rr.Code)
	}

	rr = call(t, h, http.MethodGet, "/api/leaderboard", "")
	var board []StandingDTO
	decodeBody(t, rr, &board)
	if len(board) != 1 || board[0].Player != "bob" || board[0].Wins != 1 {
		t.Fatalf("leaderboard: %+v", board)
	}
}

func TestCheckmateClosesRoom(t *testing.T) {
	games := game.NewManager(skillchess.Options{})
	h := NewHandler(games, nil)
	white := join(t, h, "mate", "alice", "")
	black := join(t, h, "mate", "bob", "")

	for i, mv := range [][3]string{
		{white.Token, "f2", "f3"},
		{black.Token, "e7", "e5"},
		{white.Token, "g2", "g4"},
	} {
		if rr := move(t, h, "mate", mv[0], mv[1], mv[2]); rr.Code != http.StatusOK {
			t.Fatalf("move %d: status=%d body=%q", i, rr.Code, rr.Body.String())
		}
	}
	rr := move(t, h, "mate", black.Token, "d8", "h4")
	if rr.Code != http.StatusOK {
		t.Fatalf("mating move: status=%d body=%q", rr.Code, rr.Body.String())
	}
	var resp MoveResponse
	decodeBody(t, rr, &resp)
	if !resp.Outcome.Over || resp.Outcome.Winner != "black" || resp.Outcome.Reason != "checkmate" {
		t.Fatalf("mate outcome: %+v", resp.Outcome)
	}

	if rr := call(t, h, http.MethodPost, "/api/state", `{"room":"mate"}`); rr.Code != http.StatusNotFound {
		t.Fatalf("state after checkmate: status=%d", rr.Code)
	}
	if rooms := games.List(); len(rooms) != 0 {
		t.Fatalf("finished room still listed: %+v", rooms)
	}
}

func TestStateRoomsAndSkills(t *testing.T) {
	h := NewHandler(game.NewManager(skillchess.Options{}), nil)
	join(t, h, "lobby", "alice", "subjects")

	rr := call(t, h, http.MethodPost, "/api/state", `{"room":"lobby"}`)
	var state StateResponse
	decodeBody(t, rr, &state)
	if state.Started || state.Players["white"] != "alice" {
		t.Fatalf("state: %+v", state)
	}
	if rr := call(t, h, http.MethodPost, "/api/state", `{"room":"missing"}`); rr.Code != http.StatusNotFound {
		t.Fatalf("missing room: status=%d", rr.Code)
	}
	if rr := call(t, h, http.MethodPost, "/api/state", `{`); rr.Code != http.StatusBadRequest {
		t.Fatalf("bad json: status=%d", rr.Code)
	}

	rr = call(t, h, http.MethodGet, "/api/rooms", "")
	var rooms []RoomDTO
	decodeBody(t, rr, &rooms)
	if len(rooms) != 1 || rooms[0].Room != "lobby" {
		t.Fatalf("rooms: %+v", rooms)
	}

	rr = call(t, h, http.MethodGet, "/api/skills", "")
	var skills []string
	decodeBody(t, rr, &skills)
	if len(skills) != 6 || skills[1] != "theocracy" {
		t.Fatalf("skills: %v", skills)
	}

	if rr := call(t, h, http.MethodGet, "/api/join", ""); rr.Code != http.StatusMethodNotAllowed {
		t.Fatalf("GET join: status=%d", rr.Code)
	}
	body, _ := json.Marshal(JoinRequest{Player: "x", Skill: "wizardry"})
	if rr := call(t, h, http.MethodPost, "/api/join", string(body)); rr.Code != http.StatusBadRequest {
		t.Fatalf("unknown skill: status=%d", rr.Code)
	}
}

func TestDeclineBonusWithoutGrant(t *testing.T) {
	h := NewHandler(game.NewManager(skillchess.Options{}), nil)
	white := join(t, h, "r", "alice", "rampage")
	join(t, h, "r", "bob", "")
	body, _ := json.Marshal(SeatRequest{Room: "r", Token: white.Token})
	if rr := call(t, h, http.MethodPost, "/api/decline_bonus", string(body)); rr.Code != http.StatusConflict {
		t.Fatalf("decline: status=%d", rr.Code)
	}
}

func TestStaticRedirect(t *testing.T) {
	srv := NewServer(game.NewManager(skillchess.Options{}), Options{WebDir: t.TempDir()})
	req := httptest.NewRequest(http.MethodGet, "/?view=mobile", nil)
	rr := httptest.NewRecorder()
	srv.ServeHTTP(rr, req)
	if rr.Code != http.StatusFound || rr.Header().Get("Location") != "/web_mobile/" {
		t.Fatalf("redirect: status=%d location=%q", rr.Code, rr.Header().Get("Location"))
	}
}
