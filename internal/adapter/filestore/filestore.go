package filestore

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"

	"github.com/eslsoft/ordasafn/internal/entity"
	"github.com/eslsoft/ordasafn/internal/repository"
)

// skippedDirs are top-level directories that hold no entries.
var skippedDirs = []string{"abbreviations"}

type fileStore struct {
	fs     afero.Fs
	logger logrus.FieldLogger
}

// NewFileStore serves the corpus rooted at root on the local disk.
func NewFileStore(root string, logger logrus.FieldLogger) repository.EntryFileStore {
	return NewFileStoreFs(afero.NewBasePathFs(afero.NewOsFs(), root), logger)
}

// NewFileStoreFs serves the corpus found at the root of fsys.
func NewFileStoreFs(fsys afero.Fs, logger logrus.FieldLogger) repository.EntryFileStore {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &fileStore{fs: fsys, logger: logger}
}

// PathOf is <category>[/<subcategory>][/<gender>]/<file stem>.json. Only
// proper names are split by gender.
func PathOf(e *entity.Entry) string {
	dir := entity.DirectoryOf(e.Category, e.Subcategory)
	if e.Category == entity.ProperName && e.Gender.Specified() {
		dir = path.Join(dir, e.Gender.Alias().Slug)
	}
	return path.Join(dir, entity.FileStem(e)+".json")
}

func (s *fileStore) PathOf(e *entity.Entry) string { return PathOf(e) }

func (s *fileStore) List(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	matches, err := doublestar.Glob(afero.NewIOFS(s.fs), "**/*.json", doublestar.WithFilesOnly())
	if err != nil {
		return nil, fmt.Errorf("list corpus: %w", err)
	}
	out := matches[:0]
	for _, m := range matches {
		top, _, _ := strings.Cut(m, "/")
		if isSkipped(top) {
			continue
		}
		out = append(out, m)
	}
	sort.Strings(out)
	return out, nil
}

func isSkipped(dir string) bool {
	for _, d := range skippedDirs {
		if dir == d {
			return true
		}
	}
	return false
}

func (s *fileStore) ReadRaw(ctx context.Context, rel string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := afero.ReadFile(s.fs, filepath.FromSlash(rel))
	if err != nil {
		return nil, &entity.EntryError{Path: rel, Err: err}
	}
	return data, nil
}

func (s *fileStore) Read(ctx context.Context, rel string) (*entity.Entry, error) {
	data, err := s.ReadRaw(ctx, rel)
	if err != nil {
		return nil, err
	}
	e, err := entity.Decode(data)
	if err != nil {
		return nil, &entity.EntryError{Path: rel, Err: err}
	}
	hashChanged, err := e.Seal()
	if err != nil {
		return nil, &entity.EntryError{Path: rel, Identity: e.Identity, Err: err}
	}
	if want := PathOf(e); want != rel {
		return nil, &entity.EntryError{
			Path:     rel,
			Identity: e.Identity,
			Err:      fmt.Errorf("%w: entry belongs at %s", entity.ErrIdentityMismatch, want),
		}
	}
	if hashChanged {
		s.logger.WithFields(logrus.Fields{"path": rel, "identity": e.Identity}).Debug("content hash recomputed")
	}
	return e, nil
}

func (s *fileStore) Write(ctx context.Context, e *entity.Entry) (repository.WriteStatus, error) {
	if err := ctx.Err(); err != nil {
		return repository.StatusUnchanged, err
	}
	rel := PathOf(e)
	data, err := entity.Encode(e)
	if err != nil {
		return repository.StatusUnchanged, &entity.EntryError{Path: rel, Identity: e.Identity, Err: err}
	}

	name := filepath.FromSlash(rel)
	status := repository.StatusUpdated
	current, err := afero.ReadFile(s.fs, name)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		status = repository.StatusCreated
	case err != nil:
		return repository.StatusUnchanged, &entity.EntryError{Path: rel, Identity: e.Identity, Err: err}
	case bytes.Equal(current, data):
		return repository.StatusUnchanged, nil
	}

	if err := s.replace(name, data); err != nil {
		return repository.StatusUnchanged, &entity.EntryError{Path: rel, Identity: e.Identity, Err: err}
	}
	return status, nil
}

// replace writes data next to name and renames it into place.
func (s *fileStore) replace(name string, data []byte) error {
	dir := filepath.Dir(name)
	if err := s.fs.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create directory: %w", err)
	}
	tmp, err := afero.TempFile(s.fs, dir, "."+filepath.Base(name)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()
	commit := false
	defer func() {
		if !commit {
			_ = s.fs.Remove(tmpName)
		}
	}()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := s.fs.Chmod(tmpName, 0o644); err != nil {
		return fmt.Errorf("chmod temp file: %w", err)
	}
	if err := s.fs.Rename(tmpName, name); err != nil {
		return fmt.Errorf("rename temp file: %w", err)
	}
	commit = true
	return nil
}
