package solver

import (
	"errors"
	"fmt"
)

// Kind classifies a validation failure.
type Kind int

const (
	KindPositionOutOfRange Kind = iota + 1
	KindConflictingConfirmation
	KindConflictWithConfirmed
	KindConflictWithExcluded
	KindInvalidWordLength
	KindInvalidFeedback
	KindUnknownGuess
)

// Sentinel errors, one per Kind. A *ValidationError matches its sentinel with errors.Is.
var (
	ErrPositionOutOfRange      = errors.New("position out of range")
	ErrConflictingConfirmation = errors.New("position already confirmed with a different letter")
	ErrConflictWithConfirmed   = errors.New("letter is confirmed at this position")
	ErrConflictWithExcluded    = errors.New("letter is already known to be absent")
	ErrInvalidWordLength       = errors.New("invalid word length")
	ErrInvalidFeedback         = errors.New("invalid feedback")
	ErrUnknownGuess            = errors.New("word is not a remaining candidate")
)

var kindSentinels = map[Kind]error{
	KindPositionOutOfRange:      ErrPositionOutOfRange,
	KindConflictingConfirmation: ErrConflictingConfirmation,
	KindConflictWithConfirmed:   ErrConflictWithConfirmed,
	KindConflictWithExcluded:    ErrConflictWithExcluded,
	KindInvalidWordLength:       ErrInvalidWordLength,
	KindInvalidFeedback:         ErrInvalidFeedback,
	KindUnknownGuess:            ErrUnknownGuess,
}

var kindCodes = map[Kind]string{
	KindPositionOutOfRange:      "position_out_of_range",
	KindConflictingConfirmation: "conflicting_confirmation",
	KindConflictWithConfirmed:   "conflict_with_confirmed",
	KindConflictWithExcluded:    "conflict_with_excluded",
	KindInvalidWordLength:       "invalid_word_length",
	KindInvalidFeedback:         "invalid_feedback",
	KindUnknownGuess:            "unknown_guess",
}

// String returns a stable snake_case code, suitable for API responses.
func (k Kind) String() string {
	if c, ok := kindCodes[k]; ok {
		return c
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// ValidationError is a local, non-fatal input failure. It is always
// returned before any state is changed.
type ValidationError struct {
	Kind     Kind
	Position int    // -1 when not tied to a position
	Letter   rune   // 0 when not tied to a letter
	Word     string // offending word, if any
	Detail   string
}

func (e *ValidationError) Error() string {
	msg := e.Kind.String()
	if s, ok := kindSentinels[e.Kind]; ok {
		msg = s.Error()
	}
	if e.Detail != "" {
		msg += ": " + e.Detail
	}
	return msg
}

// Is lets errors.Is(err, ErrUnknownGuess) and friends match.
func (e *ValidationError) Is(target error) bool {
	return kindSentinels[e.Kind] == target
}

func newValidationError(k Kind, pos int, letter rune, word, format string, args ...any) *ValidationError {
	return &ValidationError{
		Kind:     k,
		Position: pos,
		Letter:   letter,
		Word:     word,
		Detail:   fmt.Sprintf(format, args...),
	}
}

// KindOf extracts the Kind of a validation failure; ok is false for any other error.
func KindOf(err error) (Kind, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve.Kind, true
	}
	return 0, false
}
