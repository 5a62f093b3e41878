package filterexpr

import (
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

type rawFilter string

func (f rawFilter) GetFilter() string { return string(f) }

var entrySchema = Schema{
	"category": {Kind: Text, Ops: []Op{OpEQ, OpIN}},
	"lemma":    {Kind: Text, Ops: []Op{OpEQ, OpSW}},
	"edited":   {Kind: Time, Ops: []Op{OpGTE, OpLTE}},
}

func TestParse_Conjunction(t *testing.T) {
	filter := `category == 'noun' && lemma.startsWith('hús') && edited >= timestamp('2025-03-01T10:00:00Z')` +
		` && edited <= timestamp('2025-03-02T10:00:00.5Z')`

	got, err := Parse(rawFilter(filter), entrySchema)
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}

	want := []Condition{
		{Field: "category", Op: OpEQ, Text: "noun"},
		{Field: "lemma", Op: OpSW, Text: "hús"},
		{Field: "edited", Op: OpGTE, At: time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)},
		{Field: "edited", Op: OpLTE, At: time.Date(2025, 3, 2, 10, 0, 0, 500_000_000, time.UTC)},
	}
	if diff := cmp.Diff(want, got, cmpopts.IgnoreUnexported(Condition{})); diff != "" {
		t.Fatalf("conditions mismatch (-want +got):\n%s", diff)
	}
}

func TestParse_InList(t *testing.T) {
	got, err := Parse(rawFilter(`category in ['noun', 'adj']`), entrySchema)
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("expected one condition, got %d", len(got))
	}
	if diff := cmp.Diff([]string{"noun", "adj"}, got[0].Texts()); diff != "" {
		t.Fatalf("Texts mismatch (-want +got):\n%s", diff)
	}
}

func TestParse_EmptyFilter(t *testing.T) {
	got, err := Parse(rawFilter("   "), entrySchema)
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	if got != nil {
		t.Fatalf("expected no conditions, got %v", got)
	}
}

func TestParse_Rejects(t *testing.T) {
	cases := []struct {
		name   string
		filter string
		want   string
	}{
		{"unknown field", `gender == 'kk'`, `field "gender" is not allowed`},
		{"operator not allowed", `lemma in ['a']`, `operator "in" is not allowed`},
		{"disjunction", `category == 'noun' || lemma == 'a'`, `"_||_" is not supported`},
		{"negation", `!(category == 'noun')`, `"!_" is not supported`},
		{"number literal", `category == 1`, `expects a string literal`},
		{"field operand", `edited >= created`, `must be a literal`},
		{"list element", `category in ['noun', 2]`, `list element 1`},
		{"empty list", `category in []`, `must not be empty`},
		{"string for timestamp", `edited >= '2025-01-01'`, `expects timestamp()`},
		{"timestamp for text", `category == timestamp('2025-01-01T00:00:00Z')`, `expects a string literal`},
		{"bad timestamp", `edited >= timestamp('yesterday')`, `invalid timestamp`},
		{"unsupported function", `lemma.endsWith('s')`, `"endsWith" is not supported`},
		{"syntax", `category ==`, `filter:`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Parse(rawFilter(tc.filter), entrySchema)
			if err == nil {
				t.Fatalf("expected error for %q", tc.filter)
			}
			if !strings.Contains(err.Error(), tc.want) {
				t.Fatalf("error %q does not mention %q", err, tc.want)
			}
		})
	}
}
