package filestore

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"

	"github.com/eslsoft/ordasafn/internal/entity"
	"github.com/eslsoft/ordasafn/internal/repository"
)

const hestur = `{
  "lemma": "hestur",
  "category": "nafnorð",
  "gender": "karlkyn",
  "et": {
    "bare": ["hestur", "hest", "hesti", "hests"]
  }
}
`

func writeFile(t *testing.T, root, rel, content string) {
	t.Helper()
	name := filepath.Join(root, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(name), 0o755))
	require.NoError(t, os.WriteFile(name, []byte(content), 0o644))
}

func quietLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetLevel(logrus.WarnLevel)
	return logger
}

func TestPathOf(t *testing.T) {
	cases := []struct {
		e    entity.Entry
		want string
	}{
		{entity.Entry{Lemma: "hestur", Category: entity.Noun, Gender: entity.Masculine}, "noun/hestur-m.json"},
		{entity.Entry{Lemma: "á", Category: entity.Particle, Subcategory: entity.Preposition}, "particle/preposition/á.json"},
		{entity.Entry{Lemma: "Jón", Category: entity.ProperName, Subcategory: entity.GivenName, Gender: entity.Masculine}, "proper-name/given/masculine/Jón-m.json"},
		{entity.Entry{Lemma: "Mar", Category: entity.ProperName, Subcategory: entity.MiddleName}, "proper-name/middle/Mar.json"},
		{entity.Entry{Lemma: "góður", Category: entity.Adjective, Meaning: "siðferði", Dependent: true}, "adjective/góður-_siðferði_-ó.json"},
	}
	for _, c := range cases {
		require.Equal(t, c.want, PathOf(&c.e))
	}
}

func TestListSkipsAbbreviationsAndSorts(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "noun/hús-n.json", "{}")
	writeFile(t, root, "adjective/góður.json", "{}")
	writeFile(t, root, "noun/hestur-m.json", "{}")
	writeFile(t, root, "abbreviations/t.d.json", "{}")
	writeFile(t, root, "noun/notes.txt", "")

	store := NewFileStore(root, quietLogger())
	paths, err := store.List(context.Background())
	require.NoError(t, err)
	require.Equal(t, []string{"adjective/góður.json", "noun/hestur-m.json", "noun/hús-n.json"}, paths)
}

func TestReadSealsEntry(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "noun/hestur-m.json", hestur)

	store := NewFileStore(root, quietLogger())
	e, err := store.Read(context.Background(), "noun/hestur-m.json")
	require.NoError(t, err)
	require.Equal(t, "n-hestur-m", e.Identity)
	require.Len(t, e.Hash, 64)
}

func TestReadRejectsMisplacedFile(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "noun/hross-n.json", hestur)

	store := NewFileStore(root, quietLogger())
	_, err := store.Read(context.Background(), "noun/hross-n.json")
	require.ErrorIs(t, err, entity.ErrIdentityMismatch)

	var entryErr *entity.EntryError
	require.ErrorAs(t, err, &entryErr)
	require.Equal(t, "noun/hross-n.json", entryErr.Path)
}

func TestReadReportsSchemaProblems(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "noun/x.json", `{"lemma": "x", "category": "nafnorð"}`)

	store := NewFileStore(root, quietLogger())
	_, err := store.Read(context.Background(), "noun/x.json")
	require.ErrorIs(t, err, entity.ErrSchemaViolation)
}

func TestWriteOnlyOnDifference(t *testing.T) {
	ctx := context.Background()
	root := t.TempDir()
	store := NewFileStore(root, quietLogger())

	e, err := entity.Decode([]byte(hestur))
	require.NoError(t, err)
	_, err = e.Seal()
	require.NoError(t, err)

	status, err := store.Write(ctx, e)
	require.NoError(t, err)
	require.Equal(t, repository.StatusCreated, status)

	name := filepath.Join(root, "noun", "hestur-m.json")
	written, err := os.ReadFile(name)
	require.NoError(t, err)
	require.True(t, strings.HasSuffix(string(written), "}\n"))
	require.Contains(t, string(written), `"identity": "n-hestur-m"`)

	info, err := os.Stat(name)
	require.NoError(t, err)

	status, err = store.Write(ctx, e)
	require.NoError(t, err)
	require.Equal(t, repository.StatusUnchanged, status)
	again, err := os.Stat(name)
	require.NoError(t, err)
	require.Equal(t, info.ModTime(), again.ModTime())

	e.Paradigm.(*entity.NounParadigm).Singular.Bare[entity.Dative] = nil
	_, err = e.Seal()
	require.NoError(t, err)
	status, err = store.Write(ctx, e)
	require.NoError(t, err)
	require.Equal(t, repository.StatusUpdated, status)

	entries, err := os.ReadDir(filepath.Join(root, "noun"))
	require.NoError(t, err)
	require.Len(t, entries, 1, "temp files must not be left behind")

	read, err := store.Read(ctx, "noun/hestur-m.json")
	require.NoError(t, err)
	require.Equal(t, e.Hash, read.Hash)
}
