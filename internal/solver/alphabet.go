package solver

import (
	"strings"
	"unicode"

	"github.com/bits-and-blooms/bitset"
)

// DefaultLetters is the alphabet used when no alphabet source is configured.
const DefaultLetters = "abcdefghijklmnopqrstuvwxyz"

// Alphabet is the universe of letters a position may hold.
// Letters are kept sorted and without duplicates.
type Alphabet struct {
	letters []rune
	set     *bitset.BitSet
}

// NewAlphabet builds an alphabet from the letters of s. Whitespace is ignored
// and letters are lowercased, so a file holding "a b c\n" yields {a, b, c}.
func NewAlphabet(s string) Alphabet {
	set := bitset.New(128)
	for _, r := range strings.ToLower(s) {
		if unicode.IsSpace(r) {
			continue
		}
		set.Set(uint(r))
	}
	return Alphabet{letters: lettersOf(set), set: set}
}

// DefaultAlphabet returns the 26 lowercase English letters.
func DefaultAlphabet() Alphabet { return NewAlphabet(DefaultLetters) }

// Letters returns the letters in ascending order.
func (a Alphabet) Letters() []rune { return append([]rune(nil), a.letters...) }

// Contains reports whether r belongs to the alphabet.
func (a Alphabet) Contains(r rune) bool {
	return a.set != nil && r >= 0 && a.set.Test(uint(r))
}

// Len is the number of distinct letters.
func (a Alphabet) Len() int { return len(a.letters) }

func (a Alphabet) String() string { return string(a.letters) }

// lettersOf lists the members of a letter bitset in ascending order.
func lettersOf(set *bitset.BitSet) []rune {
	out := make([]rune, 0, set.Count())
	for i, ok := set.NextSet(0); ok; i, ok = set.NextSet(i + 1) {
		out = append(out, rune(i))
	}
	return out
}
