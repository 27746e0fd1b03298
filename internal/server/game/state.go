package game

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"skillchess/internal/skillchess"
)

// Seat is one player's place at a table. Token is the secret the player
// presents with every later request.
type Seat struct {
	Color  skillchess.Color
	Player string
	Skill  skillchess.Skill
	Token  string
}

// GameState is one room. Seats fill in join order, white first; the match
// exists once both are taken.
type GameState struct {
	ID        string
	Match     *skillchess.Match
	Seats     []Seat
	CreatedAt time.Time
	UpdatedAt time.Time

	opts skillchess.Options
	mu   sync.Mutex
}

func newGameState(id string, opts skillchess.Options) *GameState {
	now := time.Now()
	return &GameState{
		ID:        id,
		CreatedAt: now,
		UpdatedAt: now,
		opts:      opts,
	}
}

// Do runs fn with the room locked. All reads and writes of a room go
// through here.
func (g *GameState) Do(fn func(g *GameState) error) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	err := fn(g)
	g.UpdatedAt = time.Now()
	return err
}

func (g *GameState) seat(player string, skill skillchess.Skill) (Seat, error) {
	if len(g.Seats) >= 2 {
		return Seat{}, ErrRoomFull
	}
	s := Seat{
		Color:  skillchess.Color(len(g.Seats)),
		Player: player,
		Skill:  skill,
		Token:  uuid.NewString(),
	}
	g.Seats = append(g.Seats, s)
	if len(g.Seats) == 2 {
		g.Match = skillchess.NewMatch(g.Seats[0].Skill, g.Seats[1].Skill, g.opts)
		if err := g.Match.ApplySetup(); err != nil {
			return s, err
		}
	}
	return s, nil
}

func (g *GameState) Started() bool { return g.Match != nil }

func (g *GameState) Over() bool {
	return g.Match != nil && g.Match.Phase() == skillchess.PhaseOver
}

// SeatFor resolves a player token.
func (g *GameState) SeatFor(token string) (Seat, error) {
	for _, s := range g.Seats {
		if s.Token == token {
			return s, nil
		}
	}
	return Seat{}, ErrUnknownPlayer
}

// Opponent is the name sitting across from c, "" while the seat is empty.
func (g *GameState) Opponent(c skillchess.Color) string {
	for _, s := range g.Seats {
		if s.Color == c.Other() {
			return s.Player
		}
	}
	return ""
}

// Summary is the lobby view of a room.
type Summary struct {
	ID        string
	Players   []string
	Started   bool
	Over      bool
	CreatedAt time.Time
}

func (g *GameState) summary() Summary {
	players := make([]string, 0, len(g.Seats))
	for _, s := range g.Seats {
		players = append(players, s.Player)
	}
	return Summary{
		ID:        g.ID,
		Players:   players,
		Started:   g.Started(),
		Over:      g.Over(),
		CreatedAt: g.CreatedAt,
	}
}
