package game

import (
	"errors"
	"sort"
	"sync"

	"github.com/google/uuid"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"

	"skillchess/internal/skillchess"
)

var (
	ErrGameNotFound  = errors.New("game not found")
	ErrRoomFull      = errors.New("room full")
	ErrUnknownPlayer = errors.New("unknown player")
)

// Manager keeps every room of the process in memory, plus the tally of
// wins per player name.
type Manager struct {
	mu    sync.RWMutex
	games map[string]*GameState
	wins  map[string]int
	opts  skillchess.Options
}

func NewManager(opts skillchess.Options) *Manager {
	return &Manager{
		games: make(map[string]*GameState),
		wins:  make(map[string]int),
		opts:  opts,
	}
}

// Join seats player in room, creating the room on first use. An empty
// room id opens a fresh room with a generated id.
func (m *Manager) Join(room, player string, skill skillchess.Skill) (*GameState, Seat, error) {
	m.mu.Lock()
	if room == "" {
		room = uuid.NewString()
	}
	g, ok := m.games[room]
	if !ok {
		g = newGameState(room, m.opts)
		m.games[room] = g
	}
	m.mu.Unlock()

	var seat Seat
	err := g.Do(func(g *GameState) error {
		s, err := g.seat(player, skill)
		seat = s
		return err
	})
	return g, seat, err
}

func (m *Manager) Get(id string) (*GameState, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	g, ok := m.games[id]
	if !ok {
		return nil, ErrGameNotFound
	}
	return g, nil
}

func (m *Manager) Delete(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.games[id]; !ok {
		return ErrGameNotFound
	}
	delete(m.games, id)
	return nil
}

// List summarises every room, ordered by id.
func (m *Manager) List() []Summary {
	m.mu.RLock()
	ids := maps.Keys(m.games)
	slices.Sort(ids)
	rooms := make([]*GameState, 0, len(ids))
	for _, id := range ids {
		rooms = append(rooms, m.games[id])
	}
	m.mu.RUnlock()

	out := make([]Summary, 0, len(rooms))
	for _, g := range rooms {
		_ = g.Do(func(g *GameState) error {
			out = append(out, g.summary())
			return nil
		})
	}
	return out
}

// RecordWin credits player with one won game.
func (m *Manager) RecordWin(player string) {
	if player == "" {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.wins[player]++
}

type Standing struct {
	Player string
	Wins   int
}

// Leaderboard ranks players by wins, ties broken by name.
func (m *Manager) Leaderboard() []Standing {
	m.mu.RLock()
	names := maps.Keys(m.wins)
	out := make([]Standing, 0, len(names))
	for _, n := range names {
		out = append(out, Standing{Player: n, Wins: m.wins[n]})
	}
	m.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		if out[i].Wins != out[j].Wins {
			return out[i].Wins > out[j].Wins
		}
		return out[i].Player < out[j].Player
	})
	return out
}
