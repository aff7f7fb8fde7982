// internal/game/engine.go
//
// Core engine for the word guesser.
// Responsibilities:
//   - Start new games from a word source (random, daily, or a fixed word).
//   - Apply letter guesses: already finished → already guessed → miss/hit → win.
//   - Derive the display word from the secret word and the guessed letters.
//   - Serialize guesses per game id so concurrent requests cannot lose updates.
//
// Notes:
//   - The display word is always recomputed in full (Reveal); it is never
//     patched one character at a time.
//   - Finished games and repeated letters are normal replies, not errors.
package game

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/samber/lo"
)

// New constructs a game for word, owned by playerID (0 for anonymous).
func New(word string, playerID int64) *Game {
	return &Game{
		PlayerID:  playerID,
		Word:      strings.ToLower(word),
		StartedAt: time.Now().UTC(),
	}
}

// Reveal renders word with every letter not in guessed replaced by Mask.
// It is a pure function of its inputs.
func Reveal(word string, guessed LetterSet) string {
	var b strings.Builder
	b.Grow(len(word))
	for _, r := range word {
		if guessed.Has(string(r)) {
			b.WriteRune(r)
		} else {
			b.WriteRune(Mask)
		}
	}
	return b.String()
}

// ApplyGuess applies a single-letter guess to g and reports the outcome.
//
// Checks short-circuit in order:
//   - finished game   → "already finished game <id>", no change.
//   - repeated letter → "already guessed <letter>", no change.
//   - novel letter    → recorded and counted, then classified as a miss,
//     a hit, or the winning hit.
//
// Letters are compared case-sensitively; callers supply exactly one letter.
func (g *Game) ApplyGuess(letter string) Reply {
	if g.Complete {
		return Reply{
			DisplayWord: g.Display(),
			Message:     fmt.Sprintf("already finished game %d", g.ID),
		}
	}
	if g.Letters.Has(letter) {
		return Reply{
			DisplayWord: g.Display(),
			Message:     fmt.Sprintf("already guessed %s", letter),
		}
	}

	g.Letters.Add(letter)
	g.Guesses++
	display := g.Display()

	if !strings.Contains(g.Word, letter) {
		return Reply{
			DisplayWord: display,
			Message:     fmt.Sprintf("%s is not in the word", letter),
		}
	}
	if display == g.Word {
		g.Complete = true
		return Reply{Correct: true, DisplayWord: display, Message: "You win!"}
	}
	return Reply{
		Correct:     true,
		DisplayWord: display,
		Message:     fmt.Sprintf("%s is in the word", letter),
	}
}

// StartOptions controls how Engine.Start picks the secret word.
// Word takes precedence over Source, which takes precedence over the
// engine's default source.
type StartOptions struct {
	Word     string
	Source   WordSource
	PlayerID int64
}

// Engine runs games held in a Store.
type Engine struct {
	store Store
	words WordSource

	mu    sync.Mutex // guards locks
	locks map[int64]*gameLock
}

// gameLock serializes mutation of one game; refs lets idle locks be dropped.
type gameLock struct {
	mu   sync.Mutex
	refs int
}

// NewEngine returns an engine backed by st that draws words from words.
func NewEngine(st Store, words WordSource) *Engine {
	return &Engine{store: st, words: words, locks: make(map[int64]*gameLock)}
}

// Start creates and persists a new game.
// The returned reply carries the fully masked display word.
func (e *Engine) Start(ctx context.Context, opts StartOptions) (*Game, Reply, error) {
	word := opts.Word
	if word == "" {
		src := opts.Source
		if src == nil {
			src = e.words
		}
		if src == nil {
			return nil, Reply{}, errors.New("no word source configured")
		}
		w, err := src.RandomWord()
		if err != nil {
			return nil, Reply{}, fmt.Errorf("pick word: %w", err)
		}
		word = w
	}

	g := New(word, opts.PlayerID)
	id, err := e.store.Create(ctx, g)
	if err != nil {
		return nil, Reply{}, fmt.Errorf("create game: %w", err)
	}
	g.ID = id

	zerolog.Ctx(ctx).Debug().Int64("gameId", id).Int("length", len(g.Word)).Msg("game started")
	return g, Reply{
		DisplayWord: g.Display(),
		Message:     fmt.Sprintf("Started new game with id %d", id),
	}, nil
}

// SubmitGuess applies letter to the game with the given id.
// At most one guess per game id is in flight at a time.
func (e *Engine) SubmitGuess(ctx context.Context, id int64, letter string) (Reply, error) {
	unlock := e.lock(id)
	defer unlock()

	g, err := e.store.Get(ctx, id)
	if err != nil {
		return Reply{}, err
	}
	before := g.Guesses
	reply := g.ApplyGuess(letter)
	if g.Guesses == before {
		return reply, nil
	}
	if err := e.store.Save(ctx, g); err != nil {
		return Reply{}, fmt.Errorf("save game %d: %w", id, err)
	}
	if g.Complete {
		zerolog.Ctx(ctx).Info().Int64("gameId", id).Int("guesses", g.Guesses).Msg("game won")
	}
	return reply, nil
}

// GuessedLetters returns the accepted letters of a game in guess order.
func (e *Engine) GuessedLetters(ctx context.Context, id int64) ([]string, error) {
	g, err := e.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return g.Letters.Letters(), nil
}

// Status returns a read-only snapshot of a game.
func (e *Engine) Status(ctx context.Context, id int64) (Snapshot, error) {
	g, err := e.store.Get(ctx, id)
	if err != nil {
		return Snapshot{}, err
	}
	return SnapshotOf(g), nil
}

// List returns snapshots of every stored game.
func (e *Engine) List(ctx context.Context) ([]Snapshot, error) {
	games, err := e.store.List(ctx)
	if err != nil {
		return nil, err
	}
	return lo.Map(games, func(g *Game, _ int) Snapshot { return SnapshotOf(g) }), nil
}

// lock acquires the per-game mutex for id and returns its release func.
func (e *Engine) lock(id int64) func() {
	e.mu.Lock()
	l, ok := e.locks[id]
	if !ok {
		l = &gameLock{}
		e.locks[id] = l
	}
	l.refs++
	e.mu.Unlock()

	l.mu.Lock()
	return func() {
		l.mu.Unlock()
		e.mu.Lock()
		l.refs--
		if l.refs == 0 {
			delete(e.locks, id)
		}
		e.mu.Unlock()
	}
}
