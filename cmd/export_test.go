package cmd

import (
	"testing"
	"time"
)

func TestParseSince(t *testing.T) {
	cases := []struct {
		in   string
		want time.Time
	}{
		{"2025-03-01", time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)},
		{"2025-03-01 12:30:00", time.Date(2025, 3, 1, 12, 30, 0, 0, time.UTC)},
		{"2025-03-01T12:30:00+02:00", time.Date(2025, 3, 1, 10, 30, 0, 0, time.UTC)},
	}
	for _, c := range cases {
		got, err := parseSince(c.in)
		if err != nil {
			t.Fatalf("parseSince(%q): %v", c.in, err)
		}
		if !got.Equal(c.want) {
			t.Fatalf("parseSince(%q) = %s, want %s", c.in, got, c.want)
		}
	}

	if got, err := parseSince("  "); err != nil || got != nil {
		t.Fatalf("blank value = %v, %v", got, err)
	}
	if _, err := parseSince("yesterday"); err == nil {
		t.Fatal("expected error for unparseable time")
	}
}
