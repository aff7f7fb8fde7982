// internal/httpserver/routes_games.go
//
// HTTP routes for games:
//   - POST       /games              → start a game (201)
//   - GET        /games              → list game snapshots
//   - GET        /games/guessed      → guessed letters (?gameId=N)
//   - GET        /games/{id}         → game status
//   - POST|PATCH /games/{id}         → submit a letter guess
//   - GET        /games/{id}/guessed → guessed letters

package httpserver

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/go-chi/chi/v5"

	"github.com/robalobadob/wordguesser/internal/game"
)

// mountGames registers all /games routes.
func (s *Server) mountGames(r chi.Router) {
	r.Route("/games", func(r chi.Router) {
		r.Post("/", s.handleNewGame)
		r.Get("/", s.handleListGames)
		r.Get("/guessed", s.handleGuessedByQuery)
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", s.handleGameStatus)
			r.Post("/", s.handleGuess)
			r.Patch("/", s.handleGuess)
			r.Get("/guessed", s.handleGuessed)
		})
	})
}

// -----------------------------------------------------------------------------
// POST /games

// newGameReq is the optional body of POST /games.
type newGameReq struct {
	Word string `json:"word"` // fixed secret word (deterministic play)
}

// newGameRes is returned by POST /games.
type newGameRes struct {
	GameID int64 `json:"gameId"`
	game.Reply
}

// handleNewGame starts a game.
// Query: playerId (optional owner), mode=daily (word of the day).
func (s *Server) handleNewGame(w http.ResponseWriter, r *http.Request) {
	var req newGameReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		writeError(w, http.StatusBadRequest, "bad_json")
		return
	}
	opts := game.StartOptions{}

	if req.Word != "" {
		word := strings.ToLower(strings.TrimSpace(req.Word))
		if !isLetters(word) {
			writeError(w, http.StatusBadRequest, "invalid_word")
			return
		}
		opts.Word = word
	}

	switch mode := r.URL.Query().Get("mode"); mode {
	case "", "random":
	case "daily":
		if s.daily == nil {
			writeError(w, http.StatusBadRequest, "daily_unavailable")
			return
		}
		opts.Source = s.daily
	default:
		writeError(w, http.StatusBadRequest, "invalid_mode")
		return
	}

	if v := r.URL.Query().Get("playerId"); v != "" {
		pid, err := strconv.ParseInt(v, 10, 64)
		if err != nil || pid <= 0 {
			writeError(w, http.StatusBadRequest, "invalid_player_id")
			return
		}
		if _, err := s.players.GetPlayer(r.Context(), pid); err != nil {
			writeStoreError(w, r, err)
			return
		}
		opts.PlayerID = pid
	}

	g, reply, err := s.engine.Start(r.Context(), opts)
	if err != nil {
		writeStoreError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, newGameRes{GameID: g.ID, Reply: reply})
}

// -----------------------------------------------------------------------------
// GET /games, GET /games/{id}

// handleListGames returns snapshots of every game.
func (s *Server) handleListGames(w http.ResponseWriter, r *http.Request) {
	games, err := s.engine.List(r.Context())
	if err != nil {
		writeStoreError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, games)
}

// handleGameStatus returns the display word and status of one game.
func (s *Server) handleGameStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	snap, err := s.engine.Status(r.Context(), id)
	if err != nil {
		writeStoreError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, snap)
}

// -----------------------------------------------------------------------------
// POST|PATCH /games/{id}

// guessReq is the body of a guess.
type guessReq struct {
	Letter string `json:"letter"`
}

// handleGuess validates the letter and applies it to the game.
func (s *Server) handleGuess(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var req guessReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json")
		return
	}
	if !isSingleLetter(req.Letter) {
		writeError(w, http.StatusBadRequest, "invalid_letter")
		return
	}
	reply, err := s.engine.SubmitGuess(r.Context(), id, req.Letter)
	if err != nil {
		writeStoreError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, reply)
}

// -----------------------------------------------------------------------------
// guessed letters

// lettersRes is returned by the guessed-letters endpoints.
type lettersRes struct {
	Letters []string `json:"letters"`
}

func (s *Server) handleGuessed(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	s.writeGuessed(w, r, id)
}

// handleGuessedByQuery serves GET /games/guessed?gameId=N.
func (s *Server) handleGuessedByQuery(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.URL.Query().Get("gameId"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_game_id")
		return
	}
	s.writeGuessed(w, r, id)
}

func (s *Server) writeGuessed(w http.ResponseWriter, r *http.Request, id int64) {
	letters, err := s.engine.GuessedLetters(r.Context(), id)
	if err != nil {
		writeStoreError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, lettersRes{Letters: letters})
}

// ------------------------------- small util ---------------------------------

// pathID parses the {id} URL parameter, writing 400 on failure.
func pathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_id")
		return 0, false
	}
	return id, true
}

// isSingleLetter reports whether s is exactly one Unicode letter.
func isSingleLetter(s string) bool {
	if utf8.RuneCountInString(s) != 1 {
		return false
	}
	r, _ := utf8.DecodeRuneInString(s)
	return unicode.IsLetter(r)
}

// isLetters reports whether s is a non-empty run of a–z.
func isLetters(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < 'a' || r > 'z' {
			return false
		}
	}
	return true
}
