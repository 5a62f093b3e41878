package corpus

import (
	"github.com/samber/lo"
	"go.uber.org/multierr"

	"github.com/eslsoft/ordasafn/internal/repository"
)

// Phases reported to a ProgressReporter.
const (
	PhaseLoad      = "load"
	PhaseAtoms     = "atoms"
	PhaseCompounds = "compounds"
	PhaseExport    = "export"
	PhaseVerify    = "verify"
)

// ProgressReporter receives progress callbacks while a run walks the corpus.
type ProgressReporter interface {
	StartPhase(phase string, total int)
	Increment(phase string, delta int)
	FinishPhase(phase string)
}

type noopProgress struct{}

func (noopProgress) StartPhase(string, int) {}
func (noopProgress) Increment(string, int)  {}
func (noopProgress) FinishPhase(string)     {}

// RunOption customizes a single import, export or verify run.
type RunOption func(*runConfig)

type runConfig struct {
	reporter ProgressReporter
}

// WithProgressReporter registers a reporter that receives progress callbacks.
func WithProgressReporter(reporter ProgressReporter) RunOption {
	return func(cfg *runConfig) {
		cfg.reporter = reporter
	}
}

func newRunConfig(opts []RunOption) *runConfig {
	cfg := &runConfig{}
	for _, opt := range opts {
		opt(cfg)
	}
	if cfg.reporter == nil {
		cfg.reporter = noopProgress{}
	}
	return cfg
}

// Report sums up one run.
type Report struct {
	Created   int
	Updated   int
	Unchanged int
	// Checked counts verified files.
	Checked  int
	Failures []error
}

func (r *Report) count(status repository.WriteStatus) {
	switch status {
	case repository.StatusCreated:
		r.Created++
	case repository.StatusUpdated:
		r.Updated++
	default:
		r.Unchanged++
	}
}

func (r *Report) fail(err error) {
	r.Failures = append(r.Failures, err)
}

// Failed is the number of entries that could not be processed.
func (r *Report) Failed() int { return len(r.Failures) }

// Err combines every failure, or returns nil.
func (r *Report) Err() error {
	return multierr.Combine(lo.Compact(r.Failures)...)
}
