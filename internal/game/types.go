// internal/game/types.go
//
// Core type definitions for the word guesser engine.
// Defines:
//   - Game:     state for a single in-progress or finished game.
//   - Reply:    outcome of a start or a guess, as returned to the player.
//   - Status:   coarse lifecycle state (not_started → in_progress → complete).
//   - Snapshot: read-only view of a game that never carries the secret word.
//   - Store / WordSource: collaborators the engine depends on.

package game

import (
	"context"
	"errors"
	"time"
)

// Mask stands in for every letter of the secret word that has not been guessed.
const Mask = '*'

// ErrNotFound is returned by stores when a game id does not exist.
var ErrNotFound = errors.New("game not found")

// Game holds the state of a single play-through.
type Game struct {
	ID        int64     // Store-assigned identifier (0 until created).
	PlayerID  int64     // Owning player, 0 when the game is anonymous.
	Word      string    // The secret word (lowercase, never sent to clients).
	Guesses   int       // Number of distinct letters accepted so far.
	Complete  bool      // True once every letter of Word has been revealed.
	Letters   LetterSet // Accepted letters in the order they were guessed.
	StartedAt time.Time // Creation time (UTC).
}

// Display returns the current masked rendering of the secret word.
func (g *Game) Display() string { return Reveal(g.Word, g.Letters) }

// Clone returns a deep copy so callers can mutate without touching shared state.
func (g *Game) Clone() *Game {
	c := *g
	c.Letters = g.Letters.Clone()
	return &c
}

// Reply is the result of starting a game or submitting a guess.
type Reply struct {
	Correct     bool   `json:"correct"`
	DisplayWord string `json:"displayWord"`
	Message     string `json:"message"`
}

// Status is the lifecycle state of a game.
type Status string

const (
	StatusNotStarted Status = "not_started"
	StatusInProgress Status = "in_progress"
	StatusComplete   Status = "complete"
)

// Message is the human readable form of s.
func (s Status) Message() string {
	switch s {
	case StatusInProgress:
		return "game in progress"
	case StatusComplete:
		return "game complete"
	default:
		return "game not started"
	}
}

// StatusOf reports the lifecycle state of g. A nil game has not been started.
func StatusOf(g *Game) Status {
	switch {
	case g == nil:
		return StatusNotStarted
	case g.Complete:
		return StatusComplete
	default:
		return StatusInProgress
	}
}

// Snapshot is a read-only view of a game, safe to hand to clients.
type Snapshot struct {
	ID          int64  `json:"id"`
	PlayerID    int64  `json:"playerId,omitempty"`
	DisplayWord string `json:"displayWord"`
	Guesses     int    `json:"guesses"`
	Complete    bool   `json:"complete"`
	Status      Status `json:"status"`
	Message     string `json:"message"`
}

// SnapshotOf builds the client view of g.
func SnapshotOf(g *Game) Snapshot {
	st := StatusOf(g)
	if g == nil {
		return Snapshot{Status: st, Message: st.Message()}
	}
	return Snapshot{
		ID:          g.ID,
		PlayerID:    g.PlayerID,
		DisplayWord: g.Display(),
		Guesses:     g.Guesses,
		Complete:    g.Complete,
		Status:      st,
		Message:     st.Message(),
	}
}

// WordSource supplies secret words for new games.
type WordSource interface {
	RandomWord() (string, error)
}

// Store defines the persistence interface for games.
// Implementations may be backed by memory, SQL, etc.
type Store interface {
	// Create persists a new game and assigns its ID.
	Create(ctx context.Context, g *Game) (int64, error)

	// Get retrieves a game by ID, or ErrNotFound.
	Get(ctx context.Context, id int64) (*Game, error)

	// Save upserts the full state of a game.
	Save(ctx context.Context, g *Game) error

	// List returns every game ordered by ID.
	List(ctx context.Context) ([]*Game, error)
}
