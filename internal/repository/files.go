package repository

import (
	"context"

	"github.com/eslsoft/ordasafn/internal/entity"
)

// EntryFileStore reads and writes entry files below the data root. Paths are
// slash-separated and relative to the root.
type EntryFileStore interface {
	// List returns every entry file in byte order.
	List(ctx context.Context) ([]string, error)
	// ReadRaw returns the bytes of one file.
	ReadRaw(ctx context.Context, path string) ([]byte, error)
	// Read decodes, validates and seals one file.
	Read(ctx context.Context, path string) (*entity.Entry, error)
	// Write stores the canonical bytes of e at its derived path, touching the
	// file only when its content differs.
	Write(ctx context.Context, e *entity.Entry) (WriteStatus, error)
	// PathOf is the derived path of e.
	PathOf(e *entity.Entry) string
}
