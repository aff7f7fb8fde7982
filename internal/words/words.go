// internal/words/words.go
//
// Provides candidate secret words for new games.
//
// Responsibilities:
//   - Load the candidate list from a file (WORDS_FILE) or fall back to the
//     embedded default list in the assets package.
//   - Normalize entries: trimmed, lowercased, alphabetic a–z only, deduplicated.
//   - Pick a uniformly random word with crypto/rand.
//
// File format: one word per line; blank lines and lines starting with '#'
// are ignored.

package words

import (
	"bufio"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"os"
	"strings"

	"github.com/samber/lo"

	"github.com/robalobadob/wordguesser/assets"
)

// ErrEmpty is returned when a word is requested from an empty list.
var ErrEmpty = errors.New("words: candidate list is empty")

// List is a fixed pool of candidate words.
type List struct {
	words []string
}

// New builds a list from raw entries, keeping only valid words.
func New(raw []string) *List {
	normalized := lo.Map(raw, func(w string, _ int) string {
		return strings.ToLower(strings.TrimSpace(w))
	})
	valid := lo.Filter(normalized, func(w string, _ int) bool {
		return w != "" && isAlpha(w)
	})
	return &List{words: lo.Uniq(valid)}
}

// Load reads the candidate list from path, or the embedded defaults if path is empty.
// Returns ErrEmpty if no valid words remain.
func Load(path string) (*List, error) {
	var (
		raw []string
		err error
	)
	if path == "" {
		raw, err = assets.Words()
	} else {
		raw, err = readWordFile(path)
	}
	if err != nil {
		return nil, fmt.Errorf("load words: %w", err)
	}
	l := New(raw)
	if l.Len() == 0 {
		return nil, ErrEmpty
	}
	return l, nil
}

// readWordFile loads one word per line from a file, skipping comments.
func readWordFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var out []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		out = append(out, line)
	}
	return out, sc.Err()
}

// isAlpha reports whether s is all lowercase ASCII letters.
func isAlpha(s string) bool {
	for _, r := range s {
		if r < 'a' || r > 'z' {
			return false
		}
	}
	return true
}

// RandomWord returns a cryptographically random word from the list.
func (l *List) RandomWord() (string, error) {
	if len(l.words) == 0 {
		return "", ErrEmpty
	}
	n, err := rand.Int(rand.Reader, big.NewInt(int64(len(l.words))))
	if err != nil {
		return "", fmt.Errorf("random index: %w", err)
	}
	return l.words[n.Int64()], nil
}

// Words returns a copy of the candidate words.
func (l *List) Words() []string {
	return append([]string(nil), l.words...)
}

// Len returns the number of candidate words.
func (l *List) Len() int { return len(l.words) }
