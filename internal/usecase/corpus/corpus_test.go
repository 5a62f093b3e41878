package corpus

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/eslsoft/ordasafn/internal/adapter/filestore"
	"github.com/eslsoft/ordasafn/internal/entity"
	"github.com/eslsoft/ordasafn/internal/repository"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// memoryEntries is an in-memory EntryRepository.
type memoryEntries struct {
	byID  map[int64]*entity.Entry
	ids   map[string]int64
	next  int64
	clock time.Time
}

func newMemoryEntries() *memoryEntries {
	return &memoryEntries{
		byID:  map[int64]*entity.Entry{},
		ids:   map[string]int64{},
		clock: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

func (m *memoryEntries) Write(_ context.Context, e *entity.Entry) (*repository.WriteResult, error) {
	m.clock = m.clock.Add(time.Second)
	if id, ok := m.ids[e.Identity]; ok {
		existing := m.byID[id]
		changes := entity.Changes(existing, e)
		if len(changes) == 0 {
			return &repository.WriteResult{ID: id, Status: repository.StatusUnchanged}, nil
		}
		stored := e.Clone()
		stored.ID, stored.CreatedAt, stored.EditedAt = id, existing.CreatedAt, m.clock
		m.byID[id] = stored
		return &repository.WriteResult{ID: id, Status: repository.StatusUpdated, Changes: changes}, nil
	}
	m.next++
	stored := e.Clone()
	stored.ID, stored.CreatedAt, stored.EditedAt = m.next, m.clock, m.clock
	m.byID[m.next] = stored
	m.ids[e.Identity] = m.next
	return &repository.WriteResult{ID: m.next, Status: repository.StatusCreated}, nil
}

func (m *memoryEntries) GetByID(_ context.Context, id int64) (*entity.Entry, error) {
	e, ok := m.byID[id]
	if !ok {
		return nil, entity.ErrEntryNotFound
	}
	return e.Clone(), nil
}

func (m *memoryEntries) GetByIdentity(ctx context.Context, identity string) (*entity.Entry, error) {
	id, ok := m.ids[identity]
	if !ok {
		return nil, fmt.Errorf("%w: %s", entity.ErrEntryNotFound, identity)
	}
	return m.GetByID(ctx, id)
}

func (m *memoryEntries) ListIDs(_ context.Context, query *repository.ListEntryQuery) ([]int64, error) {
	var out []int64
	for id, e := range m.byID {
		if query != nil && query.Since != nil && e.EditedAt.Before(*query.Since) {
			continue
		}
		out = append(out, id)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out, nil
}

type countingProgress struct {
	totals map[string]int
	seen   map[string]int
}

func (p *countingProgress) StartPhase(phase string, total int) {
	if p.totals == nil {
		p.totals, p.seen = map[string]int{}, map[string]int{}
	}
	p.totals[phase] = total
}
func (p *countingProgress) Increment(phase string, delta int) { p.seen[phase] += delta }
func (p *countingProgress) FinishPhase(string)                {}

func quietLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)
	return logger
}

const (
	husSource = `{"lemma": "hús", "category": "nafnorð", "gender": "hvorugkyn",
 "et": {"bare": ["hús", "hús", "húsi", "húss"], "definite": ["húsið", "húsið", "húsinu", "hússins"]},
 "ft": {"bare": ["hús", "hús", "húsum", "húsa"]}}`
	eldhusSource = `{"lemma": "eldhús", "category": "nafnorð", "gender": "hvorugkyn",
 "compound": [{"literal": "eld", "joining": "stofnsamsetning"}, {"reference": "n-hús-n"}]}`
	baejareldhusSource = `{"lemma": "bæjareldhús", "category": "nafnorð", "gender": "hvorugkyn",
 "compound": [{"literal": "bæjar", "joining": "eignarfallssamsetning"}, {"reference": "n-eldhús-n", "beygingar": ["et"]}]}`
)

// seed writes the canonical file of every source below root.
func seed(t *testing.T, root string, sources ...string) repository.EntryFileStore {
	t.Helper()
	files := filestore.NewFileStore(root, quietLogger())
	for _, src := range sources {
		e, err := entity.Decode([]byte(src))
		require.NoError(t, err)
		_, err = e.Seal()
		require.NoError(t, err)
		_, err = files.Write(context.Background(), e)
		require.NoError(t, err)
	}
	return files
}

func TestImportResolvesForwardReferences(t *testing.T) {
	ctx := context.Background()
	files := seed(t, t.TempDir(), husSource, eldhusSource, baejareldhusSource)
	entries := newMemoryEntries()
	progress := &countingProgress{}

	report, err := NewImporter(files, entries, quietLogger()).Import(ctx, WithProgressReporter(progress))
	require.NoError(t, err)
	require.Equal(t, 3, report.Created)
	require.Zero(t, report.Failed())
	require.Equal(t, 3, progress.totals[PhaseLoad])
	require.Equal(t, 2, progress.seen[PhaseCompounds])

	e, err := entries.GetByIdentity(ctx, "n-bæjareldhús-n")
	require.NoError(t, err)
	p := e.Paradigm.(*entity.NounParadigm)
	require.Equal(t, "bæjareldhúsinu", p.Singular.Definite.Form(entity.Dative))
	require.Nil(t, p.Plural)

	again, err := NewImporter(files, entries, quietLogger()).Import(ctx)
	require.NoError(t, err)
	require.Equal(t, 3, again.Unchanged)
	require.Zero(t, again.Created+again.Updated)
}

func TestImportReportsEveryFailure(t *testing.T) {
	ctx := context.Background()
	root := t.TempDir()
	files := seed(t, root, husSource,
		`{"lemma": "a", "category": "n", "gender": "n", "compound": [{"reference": "n-b-n"}]}`,
		`{"lemma": "b", "category": "n", "gender": "n", "compound": [{"reference": "n-a-n"}]}`,
		`{"lemma": "c", "category": "n", "gender": "n", "compound": [{"literal": "x", "joining": "stem"}, {"reference": "n-ekki-n"}]}`,
	)
	require.NoError(t, os.WriteFile(filepath.Join(root, "noun", "x.json"), []byte(`{"lemma": "x", "category": "nafnorð"}`), 0o644))

	report, err := NewImporter(files, newMemoryEntries(), quietLogger()).Import(ctx)
	require.Error(t, err)
	require.Equal(t, 1, report.Created)
	require.Equal(t, 4, report.Failed())

	byIdentity := map[string]error{}
	for _, f := range report.Failures {
		var entryErr *entity.EntryError
		require.ErrorAs(t, f, &entryErr)
		byIdentity[entryErr.Identity+"@"+entryErr.Path] = f
	}
	require.ErrorIs(t, byIdentity["@noun/x.json"], entity.ErrSchemaViolation)
	require.ErrorIs(t, byIdentity["n-a-n@noun/a-n.json"], entity.ErrReferenceCycle)
	require.ErrorIs(t, byIdentity["n-b-n@noun/b-n.json"], entity.ErrReferenceCycle)
	require.ErrorIs(t, byIdentity["n-c-n@noun/c-n.json"], entity.ErrMissingReference)
	require.ErrorIs(t, err, entity.ErrReferenceCycle)
}

func TestExportWritesOnlyDifferences(t *testing.T) {
	ctx := context.Background()
	root := t.TempDir()
	files := seed(t, root, husSource, eldhusSource)
	entries := newMemoryEntries()
	_, err := NewImporter(files, entries, quietLogger()).Import(ctx)
	require.NoError(t, err)

	husPath := filepath.Join(root, "noun", "hús-n.json")
	canonical, err := os.ReadFile(husPath)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(husPath, append([]byte(" "), canonical...), 0o644))
	require.NoError(t, os.Remove(filepath.Join(root, "noun", "eldhús-n.json")))

	report, err := NewExporter(files, entries, quietLogger()).Export(ctx, ExportQuery{})
	require.NoError(t, err)
	require.Equal(t, 1, report.Updated)
	require.Equal(t, 1, report.Created)

	restored, err := os.ReadFile(husPath)
	require.NoError(t, err)
	require.Equal(t, string(canonical), string(restored))

	report, err = NewExporter(files, entries, quietLogger()).Export(ctx, ExportQuery{})
	require.NoError(t, err)
	require.Equal(t, 2, report.Unchanged)

	future := time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC)
	report, err = NewExporter(files, entries, quietLogger()).Export(ctx, ExportQuery{Since: &future})
	require.NoError(t, err)
	require.Zero(t, report.Created+report.Updated+report.Unchanged)
}

func TestExportSurvivesDriftedCompound(t *testing.T) {
	ctx := context.Background()
	files := seed(t, t.TempDir(), husSource, eldhusSource)
	entries := newMemoryEntries()
	_, err := NewImporter(files, entries, quietLogger()).Import(ctx)
	require.NoError(t, err)

	hus, err := entries.GetByIdentity(ctx, "n-hús-n")
	require.NoError(t, err)
	hus.Paradigm.(*entity.NounParadigm).Plural = nil
	_, err = hus.Seal()
	require.NoError(t, err)
	_, err = entries.Write(ctx, hus)
	require.NoError(t, err)

	report, err := NewExporter(files, entries, quietLogger()).Export(ctx, ExportQuery{})
	require.NoError(t, err)
	require.Equal(t, 1, report.Updated)
	require.Equal(t, 1, report.Unchanged)
}

func TestVerify(t *testing.T) {
	ctx := context.Background()
	root := t.TempDir()
	files := seed(t, root, husSource, eldhusSource)

	report, err := NewVerifier(files, quietLogger()).Verify(ctx)
	require.NoError(t, err)
	require.Equal(t, 2, report.Checked)

	husPath := filepath.Join(root, "noun", "hús-n.json")
	canonical, err := os.ReadFile(husPath)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(husPath, append(canonical, '\n'), 0o644))
	require.NoError(t, os.Remove(filepath.Join(root, "noun", "eldhús-n.json")))
	seed(t, root, `{"lemma": "c", "category": "n", "gender": "n", "compound": [{"reference": "n-ekki-n"}]}`)

	report, err = NewVerifier(files, quietLogger()).Verify(ctx)
	require.Error(t, err)
	require.Equal(t, 2, report.Failed())
	require.True(t, errors.Is(err, entity.ErrRoundTrip))
	require.True(t, errors.Is(err, entity.ErrMissingReference))
}
