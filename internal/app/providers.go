package app

import (
	"fmt"

	"entgo.io/ent/dialect"
	"github.com/sirupsen/logrus"

	"github.com/eslsoft/ordasafn/internal/adapter/filestore"
	adapterrepo "github.com/eslsoft/ordasafn/internal/adapter/repository"
	"github.com/eslsoft/ordasafn/internal/infrastructure/config"
	"github.com/eslsoft/ordasafn/internal/repository"
)

func provideEntryRepository(drv dialect.Driver, logger logrus.FieldLogger) repository.EntryRepository {
	return adapterrepo.NewEntryRepository(drv, logger)
}

func provideFileStore(cfg *config.Config, logger logrus.FieldLogger) (repository.EntryFileStore, error) {
	root, err := cfg.DataRoot()
	if err != nil {
		return nil, fmt.Errorf("resolve data root: %w", err)
	}
	return filestore.NewFileStore(root, logger), nil
}
