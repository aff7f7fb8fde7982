// internal/httpserver/routes_players.go
//
// HTTP routes for players:
//   - POST /players      → create a player (201)
//   - GET  /players      → list players
//   - GET  /players/{id} → player with their game snapshots

package httpserver

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/samber/lo"

	"github.com/robalobadob/wordguesser/internal/game"
	"github.com/robalobadob/wordguesser/internal/player"
)

// mountPlayers registers all /players routes.
func (s *Server) mountPlayers(r chi.Router) {
	r.Route("/players", func(r chi.Router) {
		r.Post("/", s.handleNewPlayer)
		r.Get("/", s.handleListPlayers)
		r.Get("/{id}", s.handleGetPlayer)
	})
}

func (s *Server) handleNewPlayer(w http.ResponseWriter, r *http.Request) {
	var p player.Player
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json")
		return
	}
	p.Normalize()
	if err := p.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	id, err := s.players.CreatePlayer(r.Context(), &p)
	if err != nil {
		writeStoreError(w, r, err)
		return
	}
	p.ID = id
	writeJSON(w, http.StatusCreated, p)
}

func (s *Server) handleListPlayers(w http.ResponseWriter, r *http.Request) {
	players, err := s.players.ListPlayers(r.Context())
	if err != nil {
		writeStoreError(w, r, err)
		return
	}
	if players == nil {
		players = []*player.Player{}
	}
	writeJSON(w, http.StatusOK, players)
}

// playerRes is a player together with the games they started.
type playerRes struct {
	player.Player
	Games []game.Snapshot `json:"games"`
}

func (s *Server) handleGetPlayer(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	p, err := s.players.GetPlayer(r.Context(), id)
	if err != nil {
		writeStoreError(w, r, err)
		return
	}
	all, err := s.engine.List(r.Context())
	if err != nil {
		writeStoreError(w, r, err)
		return
	}
	games := lo.Filter(all, func(g game.Snapshot, _ int) bool { return g.PlayerID == p.ID })
	writeJSON(w, http.StatusOK, playerRes{Player: *p, Games: games})
}
