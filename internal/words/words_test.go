package words

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestLoadEmbeddedDefaults(t *testing.T) {
	l, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	want := []string{"hello", "goodbye", "testing", "mystery", "games", "spring", "controller", "repository"}
	got := l.Words()
	if len(got) != len(want) {
		t.Fatalf("words = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("words[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "words.txt")
	body := "# comment\nApple\n\n  pear  \nbad-word\nx1\napple\n"
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	l, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	got := l.Words()
	if len(got) != 2 || got[0] != "apple" || got[1] != "pear" {
		t.Errorf("words = %v, want [apple pear]", got)
	}
}

func TestLoadEmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.txt")
	if err := os.WriteFile(path, []byte("# nothing\n123\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); !errors.Is(err, ErrEmpty) {
		t.Errorf("err = %v, want ErrEmpty", err)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.txt")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestRandomWord(t *testing.T) {
	l := New([]string{"alpha", "beta"})
	seen := map[string]bool{}
	for i := 0; i < 50; i++ {
		w, err := l.RandomWord()
		if err != nil {
			t.Fatal(err)
		}
		if w != "alpha" && w != "beta" {
			t.Fatalf("unexpected word %q", w)
		}
		seen[w] = true
	}
	if len(seen) == 0 {
		t.Error("no words drawn")
	}
}

func TestRandomWordEmpty(t *testing.T) {
	if _, err := New(nil).RandomWord(); !errors.Is(err, ErrEmpty) {
		t.Errorf("err = %v, want ErrEmpty", err)
	}
}
