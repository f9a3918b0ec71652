package solver

import (
	"errors"
	"reflect"
	"testing"
)

func TestFilter(t *testing.T) {
	dict := []string{"apple", "angle", "amble", "crane", "slate", "eagle"}

	tests := []struct {
		name  string
		setup func(*State)
		want  []string
	}{
		{
			name: "no knowledge keeps everything",
			want: dict,
		},
		{
			name: "required letter",
			setup: func(s *State) {
				_ = s.RecordPresentElsewhere(0, 'g')
			},
			want: []string{"angle", "eagle"},
		},
		{
			name: "confirmed slot",
			setup: func(s *State) {
				_ = s.RecordConfirmed(4, 'e')
				_ = s.RecordConfirmed(0, 'a')
			},
			want: []string{"apple", "angle", "amble"},
		},
		{
			name: "excluded letter",
			setup: func(s *State) {
				s.RecordAbsent('p')
				s.RecordAbsent('n')
			},
			want: []string{"amble", "slate", "eagle"},
		},
		{
			name: "misplaced letter",
			setup: func(s *State) {
				_ = s.RecordPresentElsewhere(3, 'l')
			},
			want: []string{"slate"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewState(5)
			if tt.setup != nil {
				tt.setup(s)
			}
			got, err := Filter(s, DefaultAlphabet(), dict)
			if err != nil {
				t.Fatalf("Filter() error = %v", err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Filter() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestFilter_InvalidWordLength(t *testing.T) {
	_, err := Filter(NewState(5), DefaultAlphabet(), []string{"apple", "pear"})
	if !errors.Is(err, ErrInvalidWordLength) {
		t.Fatalf("error = %v, want ErrInvalidWordLength", err)
	}
	var ve *ValidationError
	if !errors.As(err, &ve) || ve.Word != "pear" {
		t.Errorf("ValidationError = %+v", ve)
	}
}

func TestFilter_EmptyClassIsEmptyResult(t *testing.T) {
	s := NewState(2)
	alpha := NewAlphabet("ab")
	s.RecordAbsent('a')
	s.RecordAbsent('b')

	m, err := Compile(s, alpha)
	if err != nil {
		t.Fatal(err)
	}
	if !m.Impossible() {
		t.Errorf("Impossible() = false for pattern %q", m)
	}
	got, err := Filter(s, alpha, []string{"ab", "ba", "aa"})
	if err != nil {
		t.Fatalf("Filter() error = %v", err)
	}
	if len(got) != 0 {
		t.Errorf("Filter() = %v, want empty", got)
	}
}

func TestFilter_SmallAlphabet(t *testing.T) {
	// Letters outside the alphabet never match an open slot.
	got, err := Filter(NewState(3), NewAlphabet("abc"), []string{"cab", "bad", "abc"})
	if err != nil {
		t.Fatal(err)
	}
	if want := []string{"cab", "abc"}; !reflect.DeepEqual(got, want) {
		t.Errorf("Filter() = %v, want %v", got, want)
	}
}

func TestCompile_Pattern(t *testing.T) {
	s := NewState(3)
	_ = s.RecordConfirmed(0, 'a')
	_ = s.RecordPresentElsewhere(1, 'b')
	s.RecordAbsent('c')

	m, err := Compile(s, NewAlphabet("abc"))
	if err != nil {
		t.Fatal(err)
	}
	want := `^a[\x{61}][\x{61}\x{62}]$`
	if m.String() != want {
		t.Errorf("pattern = %q, want %q", m.String(), want)
	}
	for word, ok := range map[string]bool{"aab": true, "aaa": true, "aba": false, "abc": false, "aa": false} {
		if got := m.Match(word); got != ok {
			t.Errorf("Match(%q) = %v, want %v", word, got, ok)
		}
	}
}

func TestFilter_MetacharacterAlphabet(t *testing.T) {
	alpha := NewAlphabet("a.]^-")
	s := NewState(2)
	s.RecordAbsent('a')
	got, err := Filter(s, alpha, []string{"..", "a.", "]-", "^^"})
	if err != nil {
		t.Fatal(err)
	}
	if want := []string{"..", "]-", "^^"}; !reflect.DeepEqual(got, want) {
		t.Errorf("Filter() = %v, want %v", got, want)
	}
}

func TestFilter_SolutionSurvivesFullConfirmation(t *testing.T) {
	for _, solution := range []string{"a", "ox", "crane", "abacus"} {
		t.Run(solution, func(t *testing.T) {
			s := NewState(len(solution))
			for i, r := range solution {
				if err := s.RecordConfirmed(i, r); err != nil {
					t.Fatal(err)
				}
			}
			if open := s.OpenPositions(); len(open) != 0 {
				t.Fatalf("OpenPositions() = %v", open)
			}
			decoy := make([]rune, len(solution))
			for i := range decoy {
				decoy[i] = 'z'
			}
			got, err := Filter(s, DefaultAlphabet(), []string{string(decoy), solution})
			if err != nil {
				t.Fatal(err)
			}
			if !reflect.DeepEqual(got, []string{solution}) {
				t.Errorf("Filter() = %v, want [%s]", got, solution)
			}
		})
	}
}
