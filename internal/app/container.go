package app

import (
	"entgo.io/ent/dialect"
	"github.com/sirupsen/logrus"

	"github.com/eslsoft/ordasafn/internal/infrastructure/config"
	"github.com/eslsoft/ordasafn/internal/repository"
	"github.com/eslsoft/ordasafn/internal/usecase/corpus"
)

// Container aggregates the application dependencies produced by Wire.
type Container struct {
	Config   *config.Config
	Logger   *logrus.Logger
	Driver   dialect.Driver
	Entries  repository.EntryRepository
	Files    repository.EntryFileStore
	Importer *corpus.Importer
	Exporter *corpus.Exporter
	Verifier *corpus.Verifier
}
