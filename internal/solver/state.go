// internal/solver/state.go
//
// ConstraintState: everything learned from feedback so far in one solver session.
// Holds:
//   - one slot per position (Unknown or Confirmed(letter)),
//   - letters known to be in the word (required),
//   - letters known not to be in the word (excluded),
//   - for each letter, the positions it is known not to occupy (misplaced).
//
// Invariants:
//   - A Confirmed slot never changes.
//   - required and excluded only grow and never share a letter.
//
// Known limitation: RecordAbsent ignores repeated letters. A gray tile for a
// second copy of a letter excludes that letter entirely unless it is already
// required, so callers must record confirmed and present marks of a guess
// before its absent marks.

package solver

import (
	"github.com/bits-and-blooms/bitset"
)

// SlotKind distinguishes an open position from a pinned one.
type SlotKind int

const (
	SlotUnknown SlotKind = iota
	SlotConfirmed
)

// Slot is a single position of the solution.
type Slot struct {
	Kind   SlotKind
	Letter rune // set only when Kind == SlotConfirmed
}

// Confirmed reports whether the slot is pinned to a letter.
func (s Slot) Confirmed() bool { return s.Kind == SlotConfirmed }

func (s Slot) String() string {
	if s.Kind == SlotConfirmed {
		return string(s.Letter)
	}
	return "?"
}

// State is the ConstraintState of a session. The zero value is not usable; call NewState.
type State struct {
	slots     []Slot
	required  *bitset.BitSet
	excluded  *bitset.BitSet
	misplaced map[rune]*bitset.BitSet // letter -> positions it is not at
}

// NewState returns an empty state for words of n letters.
func NewState(n int) *State {
	return &State{
		slots:     make([]Slot, n),
		required:  bitset.New(128),
		excluded:  bitset.New(128),
		misplaced: make(map[rune]*bitset.BitSet),
	}
}

// Len is the word length N.
func (s *State) Len() int { return len(s.slots) }

// RecordConfirmed pins letter at pos and marks it required.
// Recording the same letter twice is a no-op.
func (s *State) RecordConfirmed(pos int, letter rune) error {
	if err := s.checkPos(pos, letter); err != nil {
		return err
	}
	if cur := s.slots[pos]; cur.Confirmed() {
		if cur.Letter == letter {
			return nil
		}
		return newValidationError(KindConflictingConfirmation, pos, letter, "",
			"position %d is %q, got %q", pos, cur.Letter, letter)
	}
	if s.isExcluded(letter) {
		return newValidationError(KindConflictWithExcluded, pos, letter, "",
			"%q cannot be confirmed at position %d", letter, pos)
	}
	s.slots[pos] = Slot{Kind: SlotConfirmed, Letter: letter}
	s.required.Set(uint(letter))
	return nil
}

// RecordPresentElsewhere marks letter required and rules it out at pos.
func (s *State) RecordPresentElsewhere(pos int, letter rune) error {
	if err := s.checkPos(pos, letter); err != nil {
		return err
	}
	if cur := s.slots[pos]; cur.Confirmed() && cur.Letter == letter {
		return newValidationError(KindConflictWithConfirmed, pos, letter, "",
			"%q is confirmed at position %d", letter, pos)
	}
	if s.isExcluded(letter) {
		return newValidationError(KindConflictWithExcluded, pos, letter, "",
			"%q cannot be present", letter)
	}
	s.required.Set(uint(letter))
	p, ok := s.misplaced[letter]
	if !ok {
		p = bitset.New(uint(len(s.slots)))
		s.misplaced[letter] = p
	}
	p.Set(uint(pos))
	return nil
}

// RecordAbsent excludes letter unless it is already required.
// It reports whether the letter was excluded.
func (s *State) RecordAbsent(letter rune) bool {
	if letter < 0 || s.required.Test(uint(letter)) {
		return false
	}
	s.excluded.Set(uint(letter))
	return true
}

// OpenPositions returns, in order, the positions not yet confirmed.
func (s *State) OpenPositions() []int {
	out := make([]int, 0, len(s.slots))
	for i, sl := range s.slots {
		if !sl.Confirmed() {
			out = append(out, i)
		}
	}
	return out
}

// Slots returns a copy of the position slots.
func (s *State) Slots() []Slot { return append([]Slot(nil), s.slots...) }

// Required lists the required letters in ascending order.
func (s *State) Required() []rune { return lettersOf(s.required) }

// Excluded lists the excluded letters in ascending order.
func (s *State) Excluded() []rune { return lettersOf(s.excluded) }

// IsRequired reports whether letter is known to be in the word.
func (s *State) IsRequired(letter rune) bool {
	return letter >= 0 && s.required.Test(uint(letter))
}

// Misplaced lists the positions letter is known not to occupy.
func (s *State) Misplaced(letter rune) []int {
	p, ok := s.misplaced[letter]
	if !ok {
		return nil
	}
	out := make([]int, 0, p.Count())
	for i, ok := p.NextSet(0); ok; i, ok = p.NextSet(i + 1) {
		out = append(out, int(i))
	}
	return out
}

// Clone returns a deep copy; mutating it never affects s.
func (s *State) Clone() *State {
	c := &State{
		slots:     append([]Slot(nil), s.slots...),
		required:  s.required.Clone(),
		excluded:  s.excluded.Clone(),
		misplaced: make(map[rune]*bitset.BitSet, len(s.misplaced)),
	}
	for l, p := range s.misplaced {
		c.misplaced[l] = p.Clone()
	}
	return c
}

// allowedAt reports whether letter may sit at an unknown position pos.
func (s *State) allowedAt(pos int, letter rune) bool {
	if s.isExcluded(letter) {
		return false
	}
	if p, ok := s.misplaced[letter]; ok && p.Test(uint(pos)) {
		return false
	}
	return true
}

func (s *State) isExcluded(letter rune) bool {
	return letter >= 0 && s.excluded.Test(uint(letter))
}

func (s *State) checkPos(pos int, letter rune) error {
	if pos < 0 || pos >= len(s.slots) {
		return newValidationError(KindPositionOutOfRange, pos, letter, "",
			"position %d not in [0, %d)", pos, len(s.slots))
	}
	return nil
}
