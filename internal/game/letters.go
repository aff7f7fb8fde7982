package game

import "encoding/json"

// LetterSet is an insertion-ordered set of guessed letters.
// The zero value is an empty set ready to use.
type LetterSet struct {
	order []string
	seen  map[string]struct{}
}

// NewLetterSet builds a set from letters, dropping duplicates.
func NewLetterSet(letters ...string) LetterSet {
	var s LetterSet
	for _, l := range letters {
		s.Add(l)
	}
	return s
}

// Add inserts l and reports whether it was not already present.
func (s *LetterSet) Add(l string) bool {
	if s.Has(l) {
		return false
	}
	if s.seen == nil {
		s.seen = make(map[string]struct{})
	}
	s.seen[l] = struct{}{}
	s.order = append(s.order, l)
	return true
}

// Has reports whether l has been added.
func (s LetterSet) Has(l string) bool {
	_, ok := s.seen[l]
	return ok
}

// Len returns the number of letters in the set.
func (s LetterSet) Len() int { return len(s.order) }

// Letters returns the letters in insertion order.
func (s LetterSet) Letters() []string {
	out := make([]string, len(s.order))
	copy(out, s.order)
	return out
}

// Clone returns an independent copy of s.
func (s LetterSet) Clone() LetterSet {
	return NewLetterSet(s.order...)
}

func (s LetterSet) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Letters())
}

func (s *LetterSet) UnmarshalJSON(b []byte) error {
	var letters []string
	if err := json.Unmarshal(b, &letters); err != nil {
		return err
	}
	*s = NewLetterSet(letters...)
	return nil
}
