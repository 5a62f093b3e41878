package corpus

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/eslsoft/ordasafn/internal/adapter/filestore"
	adapterrepo "github.com/eslsoft/ordasafn/internal/adapter/repository"
	"github.com/eslsoft/ordasafn/internal/infrastructure/config"
	"github.com/eslsoft/ordasafn/internal/infrastructure/database"
)

var dbCounter atomic.Int64

// readTree returns every file below root keyed by its slash-separated relative path.
func readTree(t *testing.T, root string) map[string]string {
	t.Helper()
	out := map[string]string{}
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return err
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		out[filepath.ToSlash(rel)] = string(data)
		return nil
	})
	require.NoError(t, err)
	return out
}

func TestExportOfImportReproducesFiles(t *testing.T) {
	ctx := context.Background()
	cfg := &config.Config{Database: config.DatabaseConfig{
		Driver: "sqlite3",
		DSN:    fmt.Sprintf("file:corpus%d?mode=memory&cache=shared&_fk=1", dbCounter.Add(1)),
	}}
	drv, cleanup, err := database.NewDriver(cfg, nil)
	require.NoError(t, err)
	t.Cleanup(cleanup)
	require.NoError(t, database.Migrate(ctx, drv))
	entries := adapterrepo.NewEntryRepository(drv, quietLogger())

	// bæjareldhús sorts before the eldhús it refers to, which sorts before hús.
	source := t.TempDir()
	files := seed(t, source, baejareldhusSource, eldhusSource, husSource)

	imported, err := NewImporter(files, entries, quietLogger()).Import(ctx)
	require.NoError(t, err)
	require.Equal(t, 3, imported.Created)

	target := t.TempDir()
	exported, err := NewExporter(filestore.NewFileStore(target, quietLogger()), entries, quietLogger()).Export(ctx, ExportQuery{})
	require.NoError(t, err)
	require.Equal(t, 3, exported.Created)
	require.Zero(t, exported.Failed())

	want := readTree(t, source)
	require.Len(t, want, 3)
	require.Equal(t, want, readTree(t, target))

	again, err := NewExporter(files, entries, quietLogger()).Export(ctx, ExportQuery{})
	require.NoError(t, err)
	require.Equal(t, 3, again.Unchanged)
	require.Zero(t, again.Created+again.Updated)
	require.Equal(t, want, readTree(t, source))
}
