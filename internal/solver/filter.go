// internal/solver/filter.go
//
// CandidateFilter: reduces a candidate list to the words consistent with a State.
//
// Passes:
//   1. Required letters: drop words missing any required letter.
//   2. Pattern compile: one anchored regular expression over the N positions.
//      A confirmed slot matches its letter; an open slot matches any alphabet
//      letter that is neither excluded nor misplaced at that position.
//   3. Match: keep words the pattern accepts, in input order.
//
// An open slot with no admissible letter yields a matcher that rejects every
// word. That is an empty result, not an error.

package solver

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/rs/zerolog/log"
)

// Matcher is the compiled positional pattern for a State.
type Matcher struct {
	n       int
	pattern string
	re      *regexp.Regexp // nil when some slot admits no letter
}

// Compile builds the positional matcher for st over alphabet.
func Compile(st *State, alphabet Alphabet) (*Matcher, error) {
	var b strings.Builder
	b.WriteString("^")
	impossible := false
	for pos, sl := range st.slots {
		if sl.Confirmed() {
			b.WriteString(regexp.QuoteMeta(string(sl.Letter)))
			continue
		}
		class := make([]rune, 0, alphabet.Len())
		for _, l := range alphabet.letters {
			if st.allowedAt(pos, l) {
				class = append(class, l)
			}
		}
		if len(class) == 0 {
			impossible = true
			b.WriteString("[]")
			continue
		}
		b.WriteString(charClass(class))
	}
	b.WriteString("$")

	m := &Matcher{n: st.Len(), pattern: b.String()}
	if impossible {
		return m, nil
	}
	re, err := regexp.Compile(m.pattern)
	if err != nil {
		return nil, fmt.Errorf("compile pattern %q: %w", m.pattern, err)
	}
	m.re = re
	return m, nil
}

// charClass renders letters as a bracket expression. Each letter is written as
// a \x{...} escape so alphabets may hold regexp metacharacters.
func charClass(letters []rune) string {
	var b strings.Builder
	b.Grow(len(letters)*8 + 2)
	b.WriteByte('[')
	for _, l := range letters {
		fmt.Fprintf(&b, `\x{%x}`, l)
	}
	b.WriteByte(']')
	return b.String()
}

// Match reports whether word fits every position.
func (m *Matcher) Match(word string) bool {
	if m.re == nil || utf8.RuneCountInString(word) != m.n {
		return false
	}
	return m.re.MatchString(word)
}

// Impossible reports whether some open slot admits no letter at all.
func (m *Matcher) Impossible() bool { return m.re == nil }

// String returns the source pattern.
func (m *Matcher) String() string { return m.pattern }

// Filter returns the candidates consistent with st, preserving their order.
// It fails with ErrInvalidWordLength if a candidate is not st.Len() letters.
func Filter(st *State, alphabet Alphabet, candidates []string) ([]string, error) {
	n := st.Len()
	for _, w := range candidates {
		if utf8.RuneCountInString(w) != n {
			return nil, newValidationError(KindInvalidWordLength, -1, 0, w,
				"candidate %q has %d letters, want %d", w, utf8.RuneCountInString(w), n)
		}
	}

	// Pass 1: required letters.
	required := st.Required()
	kept := make([]string, 0, len(candidates))
	for _, w := range candidates {
		if containsAll(w, required) {
			kept = append(kept, w)
		}
	}

	// Pass 2: positional pattern.
	m, err := Compile(st, alphabet)
	if err != nil {
		return nil, err
	}
	log.Debug().
		Str("pattern", m.String()).
		Int("before", len(candidates)).
		Int("afterRequired", len(kept)).
		Msg("filter")

	// Pass 3: match.
	out := kept[:0]
	for _, w := range kept {
		if m.Match(w) {
			out = append(out, w)
		}
	}
	return out, nil
}

// containsAll reports whether w holds every letter in letters.
func containsAll(w string, letters []rune) bool {
	for _, l := range letters {
		if !strings.ContainsRune(w, l) {
			return false
		}
	}
	return true
}
