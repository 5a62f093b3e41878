package cmd

import (
	"bytes"
	"strings"
	"testing"

	"github.com/eslsoft/ordasafn/internal/usecase/corpus"
)

func TestProgressStep(t *testing.T) {
	cases := []struct{ total, want int }{
		{0, 1000},
		{5, 1},
		{200, 10},
		{1_000_000, 1000},
	}
	for _, c := range cases {
		if got := progressStep(c.total); got != c.want {
			t.Fatalf("progressStep(%d) = %d, want %d", c.total, got, c.want)
		}
	}
}

func TestCLIProgressPrintsPhases(t *testing.T) {
	var out bytes.Buffer
	p := newCLIProgress(&out)
	p.StartPhase(corpus.PhaseCompounds, 3)
	p.Increment(corpus.PhaseCompounds, 1)
	p.Increment(corpus.PhaseCompounds, 0)
	p.Increment(corpus.PhaseCompounds, 2)
	p.FinishPhase(corpus.PhaseCompounds)

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	want := []string{
		"开始解析合成词 (共 3 条)",
		"解析合成词进度: 1/3",
		"解析合成词进度: 3/3",
		"完成解析合成词: 3/3 条",
	}
	if len(lines) != len(want) {
		t.Fatalf("got %d lines:\n%s", len(lines), out.String())
	}
	for i := range want {
		if lines[i] != want[i] {
			t.Fatalf("line %d = %q, want %q", i, lines[i], want[i])
		}
	}
	if len(p.totals) != 0 {
		t.Fatal("finished phase still tracked")
	}
}
