package labels

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestUnique(t *testing.T) {
	tests := []struct {
		name string
		in   []string
		want []string
	}{
		{"nil", nil, []string{}},
		{"empty", []string{}, []string{}},
		{"no duplicates", []string{"a", "b", "c"}, []string{"a", "b", "c"}},
		{"later duplicates dropped", []string{"A", "B", "A", "C", "D", "E", "F"}, []string{"A", "B", "C", "D", "E", "F"}},
		{"all same", []string{"x", "x", "x"}, []string{"x"}},
		{"case sensitive", []string{"Family Law", "family law"}, []string{"Family Law", "family law"}},
		{"empty string is a label", []string{"", "a", ""}, []string{"", "a"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Unique(tt.in)
			if got == nil {
				t.Fatal("Unique returned nil")
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Unique() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestUnique_IsSubsequenceOfInput(t *testing.T) {
	in := []string{"c", "a", "c", "b", "a", "d", "b"}
	got := Unique(in)
	j := 0
	for _, l := range in {
		if j < len(got) && got[j] == l {
			j++
		}
	}
	if j != len(got) {
		t.Errorf("Unique(%v) = %v is not an order-preserving subsequence", in, got)
	}
	seen := map[string]bool{}
	for _, l := range got {
		if seen[l] {
			t.Errorf("duplicate %q in %v", l, got)
		}
		seen[l] = true
	}
}

func TestFirst(t *testing.T) {
	in := []string{"a", "b", "c", "d", "e", "f"}
	if diff := cmp.Diff([]string{"a", "b", "c", "d", "e"}, First(in, 5)); diff != "" {
		t.Errorf("First(5) mismatch:\n%s", diff)
	}
	if got := First(in[:2], 5); len(got) != 2 {
		t.Errorf("First on short input = %v", got)
	}
	if got := First(in, -1); len(got) != 0 {
		t.Errorf("First(-1) = %v", got)
	}
}
