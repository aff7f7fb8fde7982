// Package daily picks a word of the day: every game started on the same UTC
// date gets the same secret word.
package daily

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/binary"
	"time"

	"github.com/robalobadob/wordguesser/internal/words"
)

// DateKey returns YYYY-MM-DD in UTC.
func DateKey(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}

// WordIndex returns a deterministic index for a date using HMAC(salt, YYYY-MM-DD) % n.
func WordIndex(date time.Time, salt string, n int) int {
	if n <= 0 {
		return 0
	}
	h := hmac.New(sha256.New, []byte(salt))
	h.Write([]byte(DateKey(date)))
	sum := h.Sum(nil)
	// first 8 bytes as uint64 for modulus distribution
	v := binary.BigEndian.Uint64(sum[:8])
	return int(v % uint64(n))
}

// Source hands out the word of the day from a fixed list.
type Source struct {
	list *words.List
	salt string
	now  func() time.Time
}

// NewSource returns a daily source over list, keyed by salt.
func NewSource(list *words.List, salt string) *Source {
	return &Source{list: list, salt: salt, now: time.Now}
}

// RandomWord returns today's word. The name satisfies game.WordSource.
func (s *Source) RandomWord() (string, error) {
	w, _, err := s.WordFor(s.now())
	return w, err
}

// WordFor returns the word and its index for the day containing t.
func (s *Source) WordFor(t time.Time) (string, int, error) {
	all := s.list.Words()
	if len(all) == 0 {
		return "", 0, words.ErrEmpty
	}
	idx := WordIndex(t, s.salt, len(all))
	return all[idx], idx, nil
}
