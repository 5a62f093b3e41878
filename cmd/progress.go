package cmd

import (
	"fmt"
	"io"

	"github.com/eslsoft/ordasafn/internal/usecase/corpus"
)

var phaseLabels = map[string]string{
	corpus.PhaseLoad:      "读取词条文件",
	corpus.PhaseAtoms:     "写入基础词条",
	corpus.PhaseCompounds: "解析合成词",
	corpus.PhaseExport:    "导出词条",
	corpus.PhaseVerify:    "校验词条文件",
}

type cliProgress struct {
	out         io.Writer
	totals      map[string]int
	counts      map[string]int
	lastPrinted map[string]int
	steps       map[string]int
}

func newCLIProgress(out io.Writer) *cliProgress {
	return &cliProgress{
		out:         out,
		totals:      make(map[string]int),
		counts:      make(map[string]int),
		lastPrinted: make(map[string]int),
		steps:       make(map[string]int),
	}
}

func phaseLabel(phase string) string {
	if label, ok := phaseLabels[phase]; ok {
		return label
	}
	return phase
}

func (p *cliProgress) StartPhase(phase string, total int) {
	if total < 0 {
		total = 0
	}
	p.totals[phase] = total
	p.counts[phase] = 0
	p.lastPrinted[phase] = 0
	p.steps[phase] = progressStep(total)
	fmt.Fprintf(p.out, "开始%s (共 %d 条)\n", phaseLabel(phase), total)
}

func (p *cliProgress) Increment(phase string, delta int) {
	if delta <= 0 {
		return
	}
	current := p.counts[phase] + delta
	p.counts[phase] = current
	total := p.totals[phase]
	step := p.steps[phase]
	if step <= 0 {
		step = 1
	}
	last := p.lastPrinted[phase]
	if current == total || last == 0 || current-last >= step {
		p.printProgress(phase, current, total)
		p.lastPrinted[phase] = current
	}
}

func (p *cliProgress) FinishPhase(phase string) {
	current := p.counts[phase]
	total := p.totals[phase]
	if current != p.lastPrinted[phase] {
		p.printProgress(phase, current, total)
	}
	if total > 0 {
		fmt.Fprintf(p.out, "完成%s: %d/%d 条\n", phaseLabel(phase), current, total)
	} else {
		fmt.Fprintf(p.out, "完成%s: %d 条\n", phaseLabel(phase), current)
	}
	delete(p.counts, phase)
	delete(p.totals, phase)
	delete(p.lastPrinted, phase)
	delete(p.steps, phase)
}

func (p *cliProgress) printProgress(phase string, current, total int) {
	if total > 0 {
		fmt.Fprintf(p.out, "%s进度: %d/%d\n", phaseLabel(phase), current, total)
	} else {
		fmt.Fprintf(p.out, "%s进度: 已处理 %d 条\n", phaseLabel(phase), current)
	}
}

func progressStep(total int) int {
	if total <= 0 {
		return 1000
	}
	step := total / 20
	if step < 1 {
		step = 1
	}
	if step > 1000 {
		step = 1000
	}
	return step
}
