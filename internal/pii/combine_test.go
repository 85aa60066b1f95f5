package pii

import (
	"reflect"
	"sort"
	"testing"
)

func sortedCopy(in []string) []string {
	out := append([]string(nil), in...)
	sort.Strings(out)
	return out
}

func TestCombine(t *testing.T) {
	tests := []struct {
		name  string
		regex Results
		ai    Results
		want  map[Type][]string // sorted per type; set semantics only
	}{
		{
			name:  "both empty",
			regex: Results{},
			ai:    Results{},
			want:  map[Type][]string{},
		},
		{
			name:  "ai only type inserted as-is",
			regex: Results{TypeEmail: {"a@b.com"}},
			ai:    Results{TypePerson: {"John Doe"}},
			want: map[Type][]string{
				TypeEmail:  {"a@b.com"},
				TypePerson: {"John Doe"},
			},
		},
		{
			name:  "overlapping type is set union",
			regex: Results{TypeEmail: {"a@b.com", "c@d.com"}},
			ai:    Results{TypeEmail: {"c@d.com", "e@f.com"}},
			want: map[Type][]string{
				TypeEmail: {"a@b.com", "c@d.com", "e@f.com"},
			},
		},
		{
			name:  "regex duplicates collapse during merge",
			regex: Results{TypePhone: {"9876543210", "9876543210"}},
			ai:    Results{TypePhone: {"9876543210"}},
			want: map[Type][]string{
				TypePhone: {"9876543210"},
			},
		},
		{
			name:  "dedup is case-sensitive",
			regex: Results{TypeEmail: {"A@b.com"}},
			ai:    Results{TypeEmail: {"a@b.com"}},
			want: map[Type][]string{
				TypeEmail: {"A@b.com", "a@b.com"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Combine(tt.regex, tt.ai)
			if len(got) != len(tt.want) {
				t.Fatalf("Combine() has %d types, want %d: %v", len(got), len(tt.want), got)
			}
			for typ, want := range tt.want {
				if gotSorted := sortedCopy(got[typ]); !reflect.DeepEqual(gotSorted, sortedCopy(want)) {
					t.Errorf("Combine()[%s] = %v, want members %v", typ, got[typ], want)
				}
			}
		})
	}
}

func TestCombine_CommutativeMembership(t *testing.T) {
	a := Results{
		TypeEmail: {"a@b.com", "c@d.com"},
		TypeAadhar: {"2345 6789 0123"},
	}
	b := Results{
		TypeEmail:  {"c@d.com", "e@f.com"},
		TypePerson: {"John Doe"},
	}

	ab := Combine(a, b)
	ba := Combine(b, a)

	if len(ab) != len(ba) {
		t.Fatalf("Combine(a,b) has %d types, Combine(b,a) has %d", len(ab), len(ba))
	}
	for typ := range ab {
		if !reflect.DeepEqual(sortedCopy(ab[typ]), sortedCopy(ba[typ])) {
			t.Errorf("membership differs for %s: %v vs %v", typ, ab[typ], ba[typ])
		}
	}
}

func TestCombine_DoesNotMutateInputs(t *testing.T) {
	regex := Results{TypeEmail: {"a@b.com"}}
	ai := Results{TypeEmail: {"b@c.com"}}

	_ = Combine(regex, ai)

	if !reflect.DeepEqual(regex, Results{TypeEmail: {"a@b.com"}}) {
		t.Errorf("regex input mutated: %v", regex)
	}
	if !reflect.DeepEqual(ai, Results{TypeEmail: {"b@c.com"}}) {
		t.Errorf("ai input mutated: %v", ai)
	}
}
