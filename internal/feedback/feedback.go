// internal/feedback/feedback.go
//
// Per-letter feedback for a single guess.
// Defines:
//   - Mark: the tag a game reports for one position (confirmed/present/absent).
//   - Parse: turns a user-typed feedback string into marks.
//   - Score: the classic two-pass Wordle evaluation of a guess against an answer.
//
// Notes:
//   - Parse accepts several spellings per tag so both the colour initials
//     ("g", "y") and the symbols used by other solvers ("+", "*", "-") work.
//   - Score works on runes so the word length is the letter count.

package feedback

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
)

// Mark represents the evaluation result for a single letter in a guess.
// Possible values:
//   - "confirmed": letter is correct and in the correct position (green).
//   - "present":   letter exists in the answer but in a different position (yellow).
//   - "absent":    letter does not exist in the answer (gray).
type Mark string

const (
	MarkConfirmed Mark = "confirmed"
	MarkPresent   Mark = "present"
	MarkAbsent    Mark = "absent"
)

// ErrBadMark is returned by Parse for a character that names no mark.
var ErrBadMark = errors.New("unrecognised feedback mark")

// Valid reports whether m is one of the three known marks.
func (m Mark) Valid() bool {
	switch m {
	case MarkConfirmed, MarkPresent, MarkAbsent:
		return true
	}
	return false
}

// Symbol returns the single-character form Parse accepts for m.
func (m Mark) Symbol() byte {
	switch m {
	case MarkConfirmed:
		return 'g'
	case MarkPresent:
		return 'y'
	case MarkAbsent:
		return '-'
	}
	return '?'
}

// Parse converts a feedback string into marks, one per character.
// Whitespace is ignored so "g - y - g" and "g-y-g" are equivalent.
//
//	g + 2  → confirmed
//	y * 1  → present
//	- . x b 0 → absent
func Parse(s string) ([]Mark, error) {
	out := make([]Mark, 0, len(s))
	for i, r := range strings.ToLower(s) {
		if unicode.IsSpace(r) {
			continue
		}
		switch r {
		case 'g', '+', '2':
			out = append(out, MarkConfirmed)
		case 'y', '*', '1':
			out = append(out, MarkPresent)
		case '-', '.', 'x', 'b', '0':
			out = append(out, MarkAbsent)
		default:
			return nil, fmt.Errorf("%w %q at offset %d", ErrBadMark, r, i)
		}
	}
	return out, nil
}

// String renders marks back into the compact form Parse reads.
func String(marks []Mark) string {
	var b strings.Builder
	b.Grow(len(marks))
	for _, m := range marks {
		b.WriteByte(m.Symbol())
	}
	return b.String()
}

// Score implements the standard Wordle two-pass scoring algorithm.
//
// Pass 1:
//   - Mark exact matches as Confirmed.
//   - Count remaining (non-confirmed) answer letters.
//
// Pass 2:
//   - For each non-confirmed guess letter: if there is remaining count for that
//     letter, mark Present and decrement the count; otherwise mark Absent.
//
// Guess and answer must have the same number of letters; otherwise nil is returned.
func Score(answer, guess string) []Mark {
	answerRunes := []rune(answer)
	guessRunes := []rune(guess)
	n := len(guessRunes)
	if len(answerRunes) != n {
		return nil
	}
	res := make([]Mark, n)

	counts := make(map[rune]int, n)

	// First pass: mark hits and collect counts for remaining answer letters.
	for i := 0; i < n; i++ {
		if guessRunes[i] == answerRunes[i] {
			res[i] = MarkConfirmed
		} else {
			counts[answerRunes[i]]++
		}
	}

	// Second pass: resolve presents/absents for non-confirmed tiles.
	for i := 0; i < n; i++ {
		if res[i] == MarkConfirmed {
			continue
		}
		if c := guessRunes[i]; counts[c] > 0 {
			res[i] = MarkPresent
			counts[c]--
		} else {
			res[i] = MarkAbsent
		}
	}
	return res
}

// AllConfirmed returns true if every mark is MarkConfirmed.
func AllConfirmed(m []Mark) bool {
	for _, x := range m {
		if x != MarkConfirmed {
			return false
		}
	}
	return len(m) > 0
}
