package corpus

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/eslsoft/ordasafn/internal/entity"
	"github.com/eslsoft/ordasafn/internal/repository"
	"github.com/eslsoft/ordasafn/internal/usecase/compound"
)

// ExportQuery selects the entries an export writes.
type ExportQuery struct {
	// Since keeps entries edited at or after this instant.
	Since *time.Time
	// Filter is a CEL conjunction over category, subcategory, identity,
	// lemma, created and edited.
	Filter string
}

// Exporter writes stored entries back to the corpus files.
type Exporter struct {
	files    repository.EntryFileStore
	entries  repository.EntryRepository
	resolver *compound.Resolver
	logger   logrus.FieldLogger
}

func NewExporter(files repository.EntryFileStore, entries repository.EntryRepository, logger logrus.FieldLogger) *Exporter {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &Exporter{
		files:    files,
		entries:  entries,
		resolver: compound.NewResolver(entries, logger),
		logger:   logger,
	}
}

// Export writes every selected entry in ascending id order. Files are
// rewritten only when their canonical bytes differ.
func (ex *Exporter) Export(ctx context.Context, query ExportQuery, opts ...RunOption) (*Report, error) {
	cfg := newRunConfig(opts)
	ids, err := ex.entries.ListIDs(ctx, &repository.ListEntryQuery{
		FilterOrder: repository.FilterOrder{Filter: query.Filter},
		Since:       query.Since,
	})
	if err != nil {
		return nil, fmt.Errorf("list entries: %w", err)
	}

	report := &Report{}
	cfg.reporter.StartPhase(PhaseExport, len(ids))
	for _, id := range ids {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		ex.exportOne(ctx, report, id)
		cfg.reporter.Increment(PhaseExport, 1)
	}
	cfg.reporter.FinishPhase(PhaseExport)

	ex.logger.WithFields(logrus.Fields{
		"entries":   len(ids),
		"created":   report.Created,
		"updated":   report.Updated,
		"unchanged": report.Unchanged,
		"failed":    report.Failed(),
	}).Info("export finished")

	if err := report.Err(); err != nil {
		return report, fmt.Errorf("export: %d of %d entries failed: %w", report.Failed(), len(ids), err)
	}
	return report, nil
}

func (ex *Exporter) exportOne(ctx context.Context, report *Report, id int64) {
	e, err := ex.entries.GetByID(ctx, id)
	if err != nil {
		err = fmt.Errorf("load entry %d: %w", id, err)
		ex.logger.WithError(err).Error("entry failed")
		report.fail(err)
		return
	}
	path := ex.files.PathOf(e)
	if e.IsCompound() {
		ex.checkDrift(ctx, e, path)
	}

	status, err := ex.files.Write(ctx, e)
	if err != nil {
		ex.logger.WithFields(logrus.Fields{"path": path, "identity": e.Identity}).WithError(err).Error("entry failed")
		report.fail(err)
		return
	}
	report.count(status)
	if status == repository.StatusCreated {
		ex.logger.WithFields(logrus.Fields{"path": path, "identity": e.Identity}).Warn("new file written")
	}
}

// checkDrift re-derives a compound and warns when the stored forms no
// longer match what its parts produce.
func (ex *Exporter) checkDrift(ctx context.Context, e *entity.Entry, path string) {
	fields := logrus.Fields{"path": path, "identity": e.Identity}
	derived, err := ex.resolver.Resolve(ctx, e)
	if err != nil {
		ex.logger.WithFields(fields).WithError(err).Warn("compound no longer resolves")
		return
	}
	fresh := e.Clone()
	fresh.Paradigm = derived
	if changes := entity.Changes(e, fresh); len(changes) > 0 {
		fields["changes"] = changes
		ex.logger.WithFields(fields).Warn("derived forms drifted since import")
	}
}
