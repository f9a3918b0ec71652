// internal/solver/session.go
//
// Session owns one ConstraintState and its candidate list.
// Responsibilities:
//   - Seed candidates from a dictionary (deduplicated, load order kept).
//   - Validate and apply a guess with its feedback.
//   - Re-filter candidates after every accepted guess.
//
// A guess is applied atomically: feedback is recorded into a clone of the
// state and the candidates are re-filtered before anything is committed, so a
// rejected guess leaves the session exactly as it was.
//
// Sessions are not safe for concurrent use.

package solver

import (
	"fmt"
	"unicode/utf8"

	"github.com/robalobadob/wordle/apps/go-solver/internal/feedback"
)

// Session is a single solving session.
type Session struct {
	alphabet   Alphabet
	state      *State
	candidates []string
	index      map[string]struct{}
	guesses    int
}

// Result is what the caller sees after an accepted guess.
type Result struct {
	Candidates []string
	Count      int
	Open       []int
	Solved     bool // every position is confirmed
	Guesses    int  // accepted guesses so far
}

// NewSession seeds a session for n-letter words. Every dictionary word must
// have n letters; duplicates are dropped.
func NewSession(n int, alphabet Alphabet, dictionary []string) (*Session, error) {
	if n <= 0 {
		return nil, newValidationError(KindInvalidWordLength, -1, 0, "",
			"word length must be positive, got %d", n)
	}
	s := &Session{
		alphabet:   alphabet,
		state:      NewState(n),
		candidates: make([]string, 0, len(dictionary)),
		index:      make(map[string]struct{}, len(dictionary)),
	}
	for _, w := range dictionary {
		if utf8.RuneCountInString(w) != n {
			return nil, newValidationError(KindInvalidWordLength, -1, 0, w,
				"dictionary word %q has %d letters, want %d", w, utf8.RuneCountInString(w), n)
		}
		if _, dup := s.index[w]; dup {
			continue
		}
		s.index[w] = struct{}{}
		s.candidates = append(s.candidates, w)
	}
	return s, nil
}

// Len is the word length N.
func (s *Session) Len() int { return s.state.Len() }

// Alphabet returns the session's letter universe.
func (s *Session) Alphabet() Alphabet { return s.alphabet }

// State returns a copy of the current constraint state.
func (s *Session) State() *State { return s.state.Clone() }

// Candidates returns a copy of the remaining candidates in load order.
func (s *Session) Candidates() []string { return append([]string(nil), s.candidates...) }

// Count is the number of remaining candidates.
func (s *Session) Count() int { return len(s.candidates) }

// Guesses is the number of accepted guesses.
func (s *Session) Guesses() int { return s.guesses }

// IsCandidate reports whether word is still a candidate.
func (s *Session) IsCandidate(word string) bool {
	_, ok := s.index[word]
	return ok
}

// Guess validates word and marks, records the feedback and re-filters.
//
// Validation order:
//   - word must have N letters (ErrInvalidWordLength),
//   - marks must be N known tags (ErrInvalidFeedback),
//   - word must be a remaining candidate (ErrUnknownGuess),
//   - feedback must agree with what is already known.
func (s *Session) Guess(word string, marks []feedback.Mark) (Result, error) {
	n := s.Len()
	letters := []rune(word)
	if len(letters) != n {
		return Result{}, newValidationError(KindInvalidWordLength, -1, 0, word,
			"guess %q has %d letters, want %d", word, len(letters), n)
	}
	if len(marks) != n {
		return Result{}, newValidationError(KindInvalidFeedback, -1, 0, word,
			"got %d marks for %d letters", len(marks), n)
	}
	for i, m := range marks {
		if !m.Valid() {
			return Result{}, newValidationError(KindInvalidFeedback, i, letters[i], word,
				"unknown mark %q at position %d", string(m), i)
		}
	}
	if !s.IsCandidate(word) {
		return Result{}, newValidationError(KindUnknownGuess, -1, 0, word,
			"%q", word)
	}

	next := s.state.Clone()
	if err := apply(next, letters, marks); err != nil {
		return Result{}, err
	}

	remaining := make([]string, 0, len(s.candidates)-1)
	for _, w := range s.candidates {
		if w != word {
			remaining = append(remaining, w)
		}
	}
	filtered, err := Filter(next, s.alphabet, remaining)
	if err != nil {
		return Result{}, fmt.Errorf("filter after %q: %w", word, err)
	}

	// Commit.
	s.state = next
	s.candidates = filtered
	s.index = make(map[string]struct{}, len(filtered))
	for _, w := range filtered {
		s.index[w] = struct{}{}
	}
	s.guesses++
	return s.result(), nil
}

// Result reports the current candidates and progress without changing anything.
func (s *Session) Result() Result { return s.result() }

func (s *Session) result() Result {
	open := s.state.OpenPositions()
	return Result{
		Candidates: s.Candidates(),
		Count:      len(s.candidates),
		Open:       open,
		Solved:     len(open) == 0,
		Guesses:    s.guesses,
	}
}

// apply records one guess into st: confirmed marks, then present marks, then
// absent marks, so a gray repeat of a green or yellow letter is not excluded.
func apply(st *State, letters []rune, marks []feedback.Mark) error {
	for i, m := range marks {
		if m == feedback.MarkConfirmed {
			if err := st.RecordConfirmed(i, letters[i]); err != nil {
				return err
			}
		}
	}
	for i, m := range marks {
		if m == feedback.MarkPresent {
			if err := st.RecordPresentElsewhere(i, letters[i]); err != nil {
				return err
			}
		}
	}
	for i, m := range marks {
		if m == feedback.MarkAbsent {
			st.RecordAbsent(letters[i])
		}
	}
	return nil
}
