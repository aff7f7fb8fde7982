// Package player holds the people who own games.
package player

import (
	"context"
	"errors"
	"strings"
	"unicode/utf8"
)

const maxNameLen = 40

// ErrNotFound is returned by stores when a player id does not exist.
var ErrNotFound = errors.New("player not found")

// Player is someone who starts games.
type Player struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Normalize trims surrounding whitespace from the name.
func (p *Player) Normalize() { p.Name = strings.TrimSpace(p.Name) }

// Validate enforces basic naming rules.
func (p Player) Validate() error {
	n := utf8.RuneCountInString(p.Name)
	if n == 0 {
		return errors.New("name is required")
	}
	if n > maxNameLen {
		return errors.New("name must be at most 40 chars")
	}
	return nil
}

// Store persists players.
type Store interface {
	CreatePlayer(ctx context.Context, p *Player) (int64, error)
	GetPlayer(ctx context.Context, id int64) (*Player, error)
	ListPlayers(ctx context.Context) ([]*Player, error)
}
