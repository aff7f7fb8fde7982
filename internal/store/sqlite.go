// internal/store/sqlite.go
//
// SQLite implementation of game.Store and player.Store.
// Responsibilities:
//   - Opening the database with safe defaults (WAL, busy timeout, foreign keys).
//   - Applying embedded migrations (idempotent, recorded in _migrations).
//   - Mapping games/players to rows; guessed letters are kept as a JSON array
//     and the display word is recomputed from them on load.

package store

import (
	"context"
	"database/sql"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordguesser/internal/game"
	"github.com/robalobadob/wordguesser/internal/player"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// SQLite is a database/sql backed store.
type SQLite struct {
	db *sql.DB
}

var (
	_ game.Store   = (*SQLite)(nil)
	_ player.Store = (*SQLite)(nil)
)

// OpenSQLite opens (and creates if missing) a SQLite database file and migrates it.
func OpenSQLite(dsn string) (*SQLite, error) {
	// Ensure directory exists for ./data/app.db, etc.
	dir := filepath.Dir(dsn)
	if dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("mkdir %s: %w", dir, err)
		}
	}

	db, err := sql.Open("sqlite3", dsn+"?_busy_timeout=5000&_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, err
	}
	if _, err := db.Exec(`PRAGMA foreign_keys = ON; PRAGMA journal_mode = WAL;`); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("set pragmas: %w", err)
	}
	if err := migrate(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &SQLite{db: db}, nil
}

// Close releases the underlying database handle.
func (s *SQLite) Close() error { return s.db.Close() }

// migrate applies embedded SQL migrations in lexical order.
// A _migrations table tracks applied files; each file runs in its own transaction.
func migrate(db *sql.DB) error {
	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS _migrations (name TEXT PRIMARY KEY);`); err != nil {
		return fmt.Errorf("create _migrations: %w", err)
	}

	files, err := fs.Glob(migrationsFS, "migrations/*.sql")
	if err != nil {
		return fmt.Errorf("list migrations: %w", err)
	}
	sort.Strings(files)

	for _, f := range files {
		var done int
		err := db.QueryRow(`SELECT 1 FROM _migrations WHERE name=?`, f).Scan(&done)
		if err == nil {
			log.Debug().Str("migration", f).Msg("already applied")
			continue
		}
		if !errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("query _migrations: %w", err)
		}

		sqlBytes, err := migrationsFS.ReadFile(f)
		if err != nil {
			return fmt.Errorf("read %s: %w", f, err)
		}

		tx, err := db.Begin()
		if err != nil {
			return err
		}
		if _, err := tx.Exec(string(sqlBytes)); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("apply %s: %w", f, err)
		}
		if _, err := tx.Exec(`INSERT INTO _migrations(name) VALUES (?)`, f); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("record %s: %w", f, err)
		}
		if err := tx.Commit(); err != nil {
			return fmt.Errorf("commit %s: %w", f, err)
		}
		log.Info().Str("migration", f).Msg("applied")
	}
	return nil
}

/* -------------------------------- games --------------------------------- */

const gameColumns = `id, player_id, word, guesses, complete, letters, started_at`

// Create inserts g and returns the generated ID.
func (s *SQLite) Create(ctx context.Context, g *game.Game) (int64, error) {
	letters, err := json.Marshal(g.Letters)
	if err != nil {
		return 0, err
	}
	res, err := s.db.ExecContext(ctx, `
        INSERT INTO games (player_id, word, guesses, complete, letters, started_at)
        VALUES (?, ?, ?, ?, ?, ?)`,
		nullID(g.PlayerID), g.Word, g.Guesses, g.Complete, string(letters), formatTime(g.StartedAt),
	)
	if err != nil {
		return 0, fmt.Errorf("insert game: %w", err)
	}
	return res.LastInsertId()
}

// Get loads a game by ID.
func (s *SQLite) Get(ctx context.Context, id int64) (*game.Game, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+gameColumns+` FROM games WHERE id=?`, id)
	g, err := scanGame(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("game %d: %w", id, game.ErrNotFound)
	}
	return g, err
}

// Save upserts the full state of g.
func (s *SQLite) Save(ctx context.Context, g *game.Game) error {
	letters, err := json.Marshal(g.Letters)
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx, `
        INSERT INTO games (id, player_id, word, guesses, complete, letters, started_at)
        VALUES (?, ?, ?, ?, ?, ?, ?)
        ON CONFLICT(id) DO UPDATE SET
            player_id = excluded.player_id,
            word      = excluded.word,
            guesses   = excluded.guesses,
            complete  = excluded.complete,
            letters   = excluded.letters`,
		g.ID, nullID(g.PlayerID), g.Word, g.Guesses, g.Complete, string(letters), formatTime(g.StartedAt),
	)
	if err != nil {
		return fmt.Errorf("save game %d: %w", g.ID, err)
	}
	return nil
}

// List returns every game ordered by ID.
func (s *SQLite) List(ctx context.Context) ([]*game.Game, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+gameColumns+` FROM games ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*game.Game
	for rows.Next() {
		g, err := scanGame(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, g)
	}
	return out, rows.Err()
}

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanGame(row rowScanner) (*game.Game, error) {
	var (
		g        game.Game
		playerID sql.NullInt64
		letters  string
		started  string
	)
	if err := row.Scan(&g.ID, &playerID, &g.Word, &g.Guesses, &g.Complete, &letters, &started); err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(letters), &g.Letters); err != nil {
		return nil, fmt.Errorf("decode letters for game %d: %w", g.ID, err)
	}
	g.PlayerID = playerID.Int64
	g.StartedAt = parseTime(started)
	return &g, nil
}

/* ------------------------------- players -------------------------------- */

// CreatePlayer inserts p and returns the generated ID.
func (s *SQLite) CreatePlayer(ctx context.Context, p *player.Player) (int64, error) {
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO players (name, created_at) VALUES (?, ?)`,
		p.Name, formatTime(time.Now()),
	)
	if err != nil {
		return 0, fmt.Errorf("insert player: %w", err)
	}
	return res.LastInsertId()
}

// GetPlayer loads a player by ID.
func (s *SQLite) GetPlayer(ctx context.Context, id int64) (*player.Player, error) {
	var p player.Player
	err := s.db.QueryRowContext(ctx, `SELECT id, name FROM players WHERE id=?`, id).Scan(&p.ID, &p.Name)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("player %d: %w", id, player.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// ListPlayers returns every player ordered by ID.
func (s *SQLite) ListPlayers(ctx context.Context) ([]*player.Player, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, name FROM players ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*player.Player
	for rows.Next() {
		var p player.Player
		if err := rows.Scan(&p.ID, &p.Name); err != nil {
			return nil, err
		}
		out = append(out, &p)
	}
	return out, rows.Err()
}

/* ------------------------------- helpers -------------------------------- */

// nullID maps the zero ID to SQL NULL.
func nullID(id int64) sql.NullInt64 {
	return sql.NullInt64{Int64: id, Valid: id != 0}
}

func formatTime(t time.Time) string { return t.UTC().Format(time.RFC3339) }

// parseTime parses RFC3339 timestamps; on error returns zero time.
func parseTime(s string) time.Time {
	t, _ := time.Parse(time.RFC3339, s)
	return t
}
