// internal/store/memory.go
//
// In-memory implementation of game.Store and player.Store.
// This is a lightweight persistence layer used for ephemeral sessions,
// primarily in development/testing, or when durability is not required.
//
// Characteristics:
//   - Stores games and players keyed by ID in maps.
//   - IDs are assigned in increasing order starting at 1.
//   - Concurrency-safe via RWMutex (concurrent reads allowed, writes exclusive).
//   - Values are copied in and out, so callers only change state through Save.
//   - State is lost when the process restarts.

package store

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/samber/lo"

	"github.com/robalobadob/wordguesser/internal/game"
	"github.com/robalobadob/wordguesser/internal/player"
)

// Memory is an in-memory map-based store.
type Memory struct {
	mu         sync.RWMutex // guards everything below
	games      map[int64]*game.Game
	players    map[int64]*player.Player
	nextGame   int64
	nextPlayer int64
}

var (
	_ game.Store   = (*Memory)(nil)
	_ player.Store = (*Memory)(nil)
)

// NewMemory constructs an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{
		games:   make(map[int64]*game.Game),
		players: make(map[int64]*player.Player),
	}
}

// Create stores a copy of g under a fresh ID.
func (m *Memory) Create(ctx context.Context, g *game.Game) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextGame++
	c := g.Clone()
	c.ID = m.nextGame
	m.games[c.ID] = c
	return c.ID, nil
}

// Get returns a copy of the game with the given ID.
func (m *Memory) Get(ctx context.Context, id int64) (*game.Game, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	g, ok := m.games[id]
	if !ok {
		return nil, fmt.Errorf("game %d: %w", id, game.ErrNotFound)
	}
	return g.Clone(), nil
}

// Save replaces the stored state of g.
func (m *Memory) Save(ctx context.Context, g *game.Game) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if g.ID == 0 {
		return errors.New("save: game has no id")
	}
	m.games[g.ID] = g.Clone()
	return nil
}

// List returns copies of all games ordered by ID.
func (m *Memory) List(ctx context.Context) ([]*game.Game, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	ids := lo.Keys(m.games)
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return lo.Map(ids, func(id int64, _ int) *game.Game { return m.games[id].Clone() }), nil
}

// CreatePlayer stores a copy of p under a fresh ID.
func (m *Memory) CreatePlayer(ctx context.Context, p *player.Player) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextPlayer++
	c := *p
	c.ID = m.nextPlayer
	m.players[c.ID] = &c
	return c.ID, nil
}

// GetPlayer returns a copy of the player with the given ID.
func (m *Memory) GetPlayer(ctx context.Context, id int64) (*player.Player, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	p, ok := m.players[id]
	if !ok {
		return nil, fmt.Errorf("player %d: %w", id, player.ErrNotFound)
	}
	c := *p
	return &c, nil
}

// ListPlayers returns copies of all players ordered by ID.
func (m *Memory) ListPlayers(ctx context.Context) ([]*player.Player, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	ids := lo.Keys(m.players)
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return lo.Map(ids, func(id int64, _ int) *player.Player {
		c := *m.players[id]
		return &c
	}), nil
}
