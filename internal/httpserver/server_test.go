package httpserver

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/robalobadob/wordguesser/internal/game"
	"github.com/robalobadob/wordguesser/internal/store"
)

type fixedWord string

func (f fixedWord) RandomWord() (string, error) { return string(f), nil }

func newTestServer(t *testing.T, opts Options) *Server {
	t.Helper()
	mem := store.NewMemory()
	return New(game.NewEngine(mem, fixedWord("hello")), mem, fixedWord("spring"), opts)
}

func do(t *testing.T, s *Server, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.Unmarshal(rec.Body.Bytes(), &v); err != nil {
		t.Fatalf("decode %q: %v", rec.Body.String(), err)
	}
	return v
}

func TestHealth(t *testing.T) {
	s := newTestServer(t, Options{})
	rec := do(t, s, http.MethodGet, "/health", "")
	if rec.Code != http.StatusOK || strings.TrimSpace(rec.Body.String()) != `{"ok":true}` {
		t.Errorf("health = %d %s", rec.Code, rec.Body.String())
	}
	if rec.Header().Get(requestIDHeader) == "" {
		t.Error("missing request id header")
	}
}

func TestRequestIDEchoed(t *testing.T) {
	s := newTestServer(t, Options{})
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set(requestIDHeader, "abc-123")
	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, req)
	if got := rec.Header().Get(requestIDHeader); got != "abc-123" {
		t.Errorf("request id = %q", got)
	}
}

func TestGameFlow(t *testing.T) {
	s := newTestServer(t, Options{})

	rec := do(t, s, http.MethodPost, "/games", "")
	if rec.Code != http.StatusCreated {
		t.Fatalf("start = %d %s", rec.Code, rec.Body.String())
	}
	started := decode[newGameRes](t, rec)
	if started.GameID != 1 || started.DisplayWord != "*****" || started.Message != "Started new game with id 1" {
		t.Fatalf("start = %+v", started)
	}
	if strings.Contains(rec.Body.String(), "hello") {
		t.Error("secret word leaked in start response")
	}

	steps := []struct {
		method, letter string
		want           game.Reply
	}{
		{http.MethodPost, "l", game.Reply{Correct: true, DisplayWord: "**ll*", Message: "l is in the word"}},
		{http.MethodPatch, "z", game.Reply{DisplayWord: "**ll*", Message: "z is not in the word"}},
		{http.MethodPost, "l", game.Reply{DisplayWord: "**ll*", Message: "already guessed l"}},
		{http.MethodPost, "h", game.Reply{Correct: true, DisplayWord: "h*ll*", Message: "h is in the word"}},
		{http.MethodPost, "e", game.Reply{Correct: true, DisplayWord: "hell*", Message: "e is in the word"}},
		{http.MethodPatch, "o", game.Reply{Correct: true, DisplayWord: "hello", Message: "You win!"}},
		{http.MethodPost, "q", game.Reply{DisplayWord: "hello", Message: "already finished game 1"}},
	}
	for _, st := range steps {
		rec := do(t, s, st.method, "/games/1", `{"letter":"`+st.letter+`"}`)
		if rec.Code != http.StatusOK {
			t.Fatalf("%s %q = %d %s", st.method, st.letter, rec.Code, rec.Body.String())
		}
		if got := decode[game.Reply](t, rec); got != st.want {
			t.Errorf("%s %q = %+v, want %+v", st.method, st.letter, got, st.want)
		}
	}

	rec = do(t, s, http.MethodGet, "/games/1", "")
	snap := decode[game.Snapshot](t, rec)
	if rec.Code != http.StatusOK || !snap.Complete || snap.Guesses != 5 || snap.Status != game.StatusComplete {
		t.Errorf("status = %d %+v", rec.Code, snap)
	}

	for _, path := range []string{"/games/1/guessed", "/games/guessed?gameId=1"} {
		rec = do(t, s, http.MethodGet, path, "")
		got := decode[lettersRes](t, rec)
		want := []string{"l", "z", "h", "e", "o"}
		if rec.Code != http.StatusOK || strings.Join(got.Letters, "") != strings.Join(want, "") {
			t.Errorf("%s = %d %v, want %v", path, rec.Code, got.Letters, want)
		}
	}
}

func TestStartWithWordAndDaily(t *testing.T) {
	s := newTestServer(t, Options{})

	rec := do(t, s, http.MethodPost, "/games", `{"word":"Games"}`)
	if rec.Code != http.StatusCreated || decode[newGameRes](t, rec).DisplayWord != "*****" {
		t.Fatalf("fixed word = %d %s", rec.Code, rec.Body.String())
	}
	rec = do(t, s, http.MethodPost, "/games/1", `{"letter":"g"}`)
	if got := decode[game.Reply](t, rec); got.DisplayWord != "g****" {
		t.Errorf("fixed word guess = %+v", got)
	}

	rec = do(t, s, http.MethodPost, "/games?mode=daily", "")
	if rec.Code != http.StatusCreated || decode[newGameRes](t, rec).DisplayWord != "******" {
		t.Fatalf("daily = %d %s", rec.Code, rec.Body.String())
	}
}

func TestStartBadInput(t *testing.T) {
	s := newTestServer(t, Options{})
	tests := []struct {
		path, body string
		code       int
	}{
		{"/games", `{"word":"he11o"}`, http.StatusBadRequest},
		{"/games", `{not json`, http.StatusBadRequest},
		{"/games?mode=weekly", "", http.StatusBadRequest},
		{"/games?playerId=abc", "", http.StatusBadRequest},
		{"/games?playerId=5", "", http.StatusNotFound},
	}
	for _, tt := range tests {
		rec := do(t, s, http.MethodPost, tt.path, tt.body)
		if rec.Code != tt.code {
			t.Errorf("POST %s %s = %d, want %d (%s)", tt.path, tt.body, rec.Code, tt.code, rec.Body.String())
		}
	}
}

func TestGuessBadInput(t *testing.T) {
	s := newTestServer(t, Options{})
	do(t, s, http.MethodPost, "/games", "")

	tests := []struct {
		path, body string
		code       int
	}{
		{"/games/1", `{"letter":""}`, http.StatusBadRequest},
		{"/games/1", `{"letter":"ab"}`, http.StatusBadRequest},
		{"/games/1", `{"letter":"1"}`, http.StatusBadRequest},
		{"/games/1", `nope`, http.StatusBadRequest},
		{"/games/x", `{"letter":"a"}`, http.StatusBadRequest},
		{"/games/99", `{"letter":"a"}`, http.StatusNotFound},
	}
	for _, tt := range tests {
		rec := do(t, s, http.MethodPost, tt.path, tt.body)
		if rec.Code != tt.code {
			t.Errorf("POST %s %s = %d, want %d", tt.path, tt.body, rec.Code, tt.code)
		}
	}

	// Rejected input never reaches the engine.
	rec := do(t, s, http.MethodGet, "/games/1", "")
	if snap := decode[game.Snapshot](t, rec); snap.Guesses != 0 {
		t.Errorf("guesses = %d after rejected input", snap.Guesses)
	}
}

func TestNotFoundLookups(t *testing.T) {
	s := newTestServer(t, Options{})
	for _, path := range []string{"/games/7", "/games/7/guessed", "/games/guessed?gameId=7", "/players/3", "/nowhere"} {
		if rec := do(t, s, http.MethodGet, path, ""); rec.Code != http.StatusNotFound {
			t.Errorf("GET %s = %d, want 404", path, rec.Code)
		}
	}
}

func TestListGames(t *testing.T) {
	s := newTestServer(t, Options{})
	rec := do(t, s, http.MethodGet, "/games", "")
	if rec.Code != http.StatusOK || strings.TrimSpace(rec.Body.String()) != "[]" {
		t.Fatalf("empty list = %d %s", rec.Code, rec.Body.String())
	}
	do(t, s, http.MethodPost, "/games", "")
	do(t, s, http.MethodPost, "/games", "")
	games := decode[[]game.Snapshot](t, do(t, s, http.MethodGet, "/games", ""))
	if len(games) != 2 || games[0].ID != 1 || games[1].ID != 2 {
		t.Errorf("games = %+v", games)
	}
}

func TestPlayers(t *testing.T) {
	s := newTestServer(t, Options{})

	rec := do(t, s, http.MethodPost, "/players", `{"name":"  Ada "}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create = %d %s", rec.Code, rec.Body.String())
	}
	if rec := do(t, s, http.MethodPost, "/players", `{"name":""}`); rec.Code != http.StatusBadRequest {
		t.Errorf("empty name = %d", rec.Code)
	}

	do(t, s, http.MethodPost, "/games?playerId=1", "")
	do(t, s, http.MethodPost, "/games", "")

	rec = do(t, s, http.MethodGet, "/players/1", "")
	got := decode[playerRes](t, rec)
	if rec.Code != http.StatusOK || got.Name != "Ada" || len(got.Games) != 1 || got.Games[0].ID != 1 {
		t.Errorf("player = %d %+v", rec.Code, got)
	}

	rec = do(t, s, http.MethodGet, "/players", "")
	if !strings.Contains(rec.Body.String(), `"name":"Ada"`) {
		t.Errorf("list = %s", rec.Body.String())
	}
}

func TestRateLimit(t *testing.T) {
	s := newTestServer(t, Options{RateLimitRPS: 0.001, RateLimitBurst: 2})
	codes := make([]int, 3)
	for i := range codes {
		codes[i] = do(t, s, http.MethodGet, "/health", "").Code
	}
	if codes[0] != http.StatusOK || codes[1] != http.StatusOK || codes[2] != http.StatusTooManyRequests {
		t.Errorf("codes = %v, want [200 200 429]", codes)
	}
}

func TestCORSPreflight(t *testing.T) {
	s := newTestServer(t, Options{ClientOrigin: "http://example.test"})
	rec := do(t, s, http.MethodOptions, "/games", "")
	if rec.Code != http.StatusNoContent {
		t.Errorf("preflight = %d", rec.Code)
	}
	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "http://example.test" {
		t.Errorf("allow origin = %q", got)
	}
}
