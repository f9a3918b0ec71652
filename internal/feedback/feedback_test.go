package feedback

import (
	"errors"
	"reflect"
	"testing"
)

func TestParse(t *testing.T) {
	C, P, A := MarkConfirmed, MarkPresent, MarkAbsent
	tests := []struct {
		in      string
		want    []Mark
		wantErr bool
	}{
		{"gy-", []Mark{C, P, A}, false},
		{"+*-", []Mark{C, P, A}, false},
		{"210", []Mark{C, P, A}, false},
		{"G Y . X B", []Mark{C, P, A, A, A}, false},
		{"", []Mark{}, false},
		{"gq", nil, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := Parse(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Parse() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				if !errors.Is(err, ErrBadMark) {
					t.Errorf("error %v is not ErrBadMark", err)
				}
				return
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Parse() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestString(t *testing.T) {
	m, err := Parse("+*-.g")
	if err != nil {
		t.Fatal(err)
	}
	if got := String(m); got != "gy--g" {
		t.Errorf("String() = %q, want %q", got, "gy--g")
	}
}

func TestScore(t *testing.T) {
	tests := []struct {
		answer, guess string
		want          string
	}{
		{"crane", "crane", "ggggg"},
		{"crane", "slate", "--g-g"},
		{"abide", "speed", "--y-y"},
		{"eerie", "geese", "-gy-g"},
		{"llama", "lolly", "g-y--"},
		{"apple", "pears", "yyy--"},
	}
	for _, tt := range tests {
		t.Run(tt.answer+"/"+tt.guess, func(t *testing.T) {
			if got := String(Score(tt.answer, tt.guess)); got != tt.want {
				t.Errorf("Score() = %q, want %q", got, tt.want)
			}
		})
	}
	if got := Score("crane", "cranes"); got != nil {
		t.Errorf("length mismatch: Score() = %v, want nil", got)
	}
}

func TestAllConfirmed(t *testing.T) {
	if !AllConfirmed(Score("crane", "crane")) {
		t.Errorf("exact match not all confirmed")
	}
	if AllConfirmed(Score("crane", "crate")) {
		t.Errorf("crate vs crane reported all confirmed")
	}
	if AllConfirmed(nil) {
		t.Errorf("empty marks reported all confirmed")
	}
}
