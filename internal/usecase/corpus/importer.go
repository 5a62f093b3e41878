package corpus

import (
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/eslsoft/ordasafn/internal/entity"
	"github.com/eslsoft/ordasafn/internal/repository"
	"github.com/eslsoft/ordasafn/internal/usecase/compound"
)

// Importer rebuilds the store from the corpus files.
type Importer struct {
	files   repository.EntryFileStore
	entries repository.EntryRepository
	logger  logrus.FieldLogger
}

func NewImporter(files repository.EntryFileStore, entries repository.EntryRepository, logger logrus.FieldLogger) *Importer {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &Importer{files: files, entries: entries, logger: logger}
}

type loaded struct {
	path  string
	entry *entity.Entry
}

// Import loads every file, stores non-compound entries first and then
// compounds. A compound whose referent is not stored yet is retried after
// the others until a round makes no progress.
func (im *Importer) Import(ctx context.Context, opts ...RunOption) (*Report, error) {
	cfg := newRunConfig(opts)
	report := &Report{}

	paths, err := im.files.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list corpus: %w", err)
	}

	var atoms, compounds []loaded
	cfg.reporter.StartPhase(PhaseLoad, len(paths))
	for _, path := range paths {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		e, err := im.files.Read(ctx, path)
		cfg.reporter.Increment(PhaseLoad, 1)
		if err != nil {
			im.failed(report, path, "", err)
			continue
		}
		if e.IsCompound() {
			compounds = append(compounds, loaded{path: path, entry: e})
		} else {
			atoms = append(atoms, loaded{path: path, entry: e})
		}
	}
	cfg.reporter.FinishPhase(PhaseLoad)

	cfg.reporter.StartPhase(PhaseAtoms, len(atoms))
	for _, item := range atoms {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		im.store(ctx, report, item)
		cfg.reporter.Increment(PhaseAtoms, 1)
	}
	cfg.reporter.FinishPhase(PhaseAtoms)

	cfg.reporter.StartPhase(PhaseCompounds, len(compounds))
	resolver := compound.NewResolver(im.entries, im.logger)
	pending := compounds
	for round := 1; len(pending) > 0; round++ {
		var deferred []loaded
		for _, item := range pending {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			err := resolver.Materialize(ctx, item.entry)
			var missing *entity.MissingReferenceError
			if errors.As(err, &missing) {
				im.logger.WithFields(logrus.Fields{
					"identity": item.entry.Identity,
					"referent": missing.Referent,
					"round":    round,
				}).Debug("compound deferred")
				deferred = append(deferred, item)
				continue
			}
			if err != nil {
				im.failed(report, item.path, item.entry.Identity, err)
			} else {
				im.store(ctx, report, item)
			}
			cfg.reporter.Increment(PhaseCompounds, 1)
		}
		if len(deferred) == len(pending) {
			im.unresolved(ctx, report, atoms, compounds, deferred)
			break
		}
		pending = deferred
	}
	cfg.reporter.FinishPhase(PhaseCompounds)

	im.logger.WithFields(logrus.Fields{
		"files":     len(paths),
		"created":   report.Created,
		"updated":   report.Updated,
		"unchanged": report.Unchanged,
		"failed":    report.Failed(),
	}).Info("import finished")

	if err := report.Err(); err != nil {
		return report, fmt.Errorf("import: %d of %d entries failed: %w", report.Failed(), len(paths), err)
	}
	return report, nil
}

func (im *Importer) store(ctx context.Context, report *Report, item loaded) {
	res, err := im.entries.Write(ctx, item.entry)
	if err != nil {
		im.failed(report, item.path, item.entry.Identity, err)
		return
	}
	report.count(res.Status)
	if res.Status == repository.StatusUpdated {
		im.logger.WithFields(logrus.Fields{
			"identity": item.entry.Identity,
			"changes":  res.Changes,
		}).Debug("entry updated")
	}
}

// unresolved reports the compounds left after the last round. Resolving them
// against the whole loaded corpus tells a dangling reference from a cycle.
func (im *Importer) unresolved(ctx context.Context, report *Report, atoms, compounds, residue []loaded) {
	lookup := compound.NewMemoryLookup()
	for _, item := range atoms {
		lookup.Add(item.entry)
	}
	for _, item := range compounds {
		lookup.Add(item.entry)
	}
	resolver := compound.NewResolver(lookup, im.logger)
	for _, item := range residue {
		_, err := resolver.Resolve(ctx, item.entry)
		if err == nil {
			err = fmt.Errorf("%w: a referent could not be stored", entity.ErrMissingReference)
		}
		im.failed(report, item.path, item.entry.Identity, err)
	}
}

func (im *Importer) failed(report *Report, path, identity string, err error) {
	var entryErr *entity.EntryError
	if !errors.As(err, &entryErr) {
		err = &entity.EntryError{Path: path, Identity: identity, Err: err}
	}
	im.logger.WithFields(logrus.Fields{"path": path, "identity": identity}).WithError(err).Error("entry failed")
	report.fail(err)
}
