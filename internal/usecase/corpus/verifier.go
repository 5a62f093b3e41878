package corpus

import (
	"bytes"
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/eslsoft/ordasafn/internal/entity"
	"github.com/eslsoft/ordasafn/internal/repository"
	"github.com/eslsoft/ordasafn/internal/usecase/compound"
)

// Verifier checks the corpus without touching the store: every file must
// re-encode to its own bytes and every compound must resolve.
type Verifier struct {
	files  repository.EntryFileStore
	logger logrus.FieldLogger
}

func NewVerifier(files repository.EntryFileStore, logger logrus.FieldLogger) *Verifier {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &Verifier{files: files, logger: logger}
}

func (v *Verifier) Verify(ctx context.Context, opts ...RunOption) (*Report, error) {
	cfg := newRunConfig(opts)
	paths, err := v.files.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list corpus: %w", err)
	}

	report := &Report{}
	lookup := compound.NewMemoryLookup()
	var compounds []loaded

	cfg.reporter.StartPhase(PhaseVerify, len(paths))
	for _, path := range paths {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		e, err := v.check(ctx, path)
		cfg.reporter.Increment(PhaseVerify, 1)
		report.Checked++
		if err != nil {
			v.logger.WithField("path", path).WithError(err).Error("verification failed")
			report.fail(err)
			if e == nil {
				continue
			}
		}
		lookup.Add(e)
		if e.IsCompound() {
			compounds = append(compounds, loaded{path: path, entry: e})
		}
	}
	cfg.reporter.FinishPhase(PhaseVerify)

	resolver := compound.NewResolver(lookup, v.logger)
	for _, item := range compounds {
		if err := resolver.Materialize(ctx, item.entry.Clone()); err != nil {
			err = &entity.EntryError{Path: item.path, Identity: item.entry.Identity, Err: err}
			v.logger.WithField("path", item.path).WithError(err).Error("compound does not resolve")
			report.fail(err)
		}
	}

	v.logger.WithFields(logrus.Fields{
		"files":     len(paths),
		"compounds": len(compounds),
		"failed":    report.Failed(),
	}).Info("verification finished")

	if err := report.Err(); err != nil {
		return report, fmt.Errorf("verify: %d problems: %w", report.Failed(), err)
	}
	return report, nil
}

// check decodes one file and compares its canonical rendering to the bytes
// on disk. A decoded entry is returned even when the bytes differ.
func (v *Verifier) check(ctx context.Context, path string) (*entity.Entry, error) {
	raw, err := v.files.ReadRaw(ctx, path)
	if err != nil {
		return nil, err
	}
	e, err := v.files.Read(ctx, path)
	if err != nil {
		return nil, err
	}
	out, err := entity.Encode(e)
	if err != nil {
		return nil, &entity.EntryError{Path: path, Identity: e.Identity, Err: err}
	}
	if !bytes.Equal(raw, out) {
		return e, &entity.EntryError{
			Path:     path,
			Identity: e.Identity,
			Err:      fmt.Errorf("%w: first difference on line %d", entity.ErrRoundTrip, firstDifferentLine(raw, out)),
		}
	}
	return e, nil
}

func firstDifferentLine(a, b []byte) int {
	la, lb := bytes.Split(a, []byte("\n")), bytes.Split(b, []byte("\n"))
	for i := 0; i < len(la) && i < len(lb); i++ {
		if !bytes.Equal(la[i], lb[i]) {
			return i + 1
		}
	}
	return min(len(la), len(lb)) + 1
}
