//go:build wireinject
// +build wireinject

package app

import (
	"github.com/google/wire"
	"github.com/sirupsen/logrus"

	"github.com/eslsoft/ordasafn/internal/infrastructure/config"
	"github.com/eslsoft/ordasafn/internal/infrastructure/database"
	"github.com/eslsoft/ordasafn/internal/infrastructure/logging"
	"github.com/eslsoft/ordasafn/internal/usecase/corpus"
)

var configSet = wire.NewSet(
	config.Load,
)

var loggingSet = wire.NewSet(
	logging.NewLogger,
	wire.Bind(new(logrus.FieldLogger), new(*logrus.Logger)),
)

var databaseSet = wire.NewSet(
	database.NewDriver,
)

var repositorySet = wire.NewSet(
	provideEntryRepository,
	provideFileStore,
)

var usecaseSet = wire.NewSet(
	corpus.NewImporter,
	corpus.NewExporter,
	corpus.NewVerifier,
)

// Initialize builds the application container using Wire.
func Initialize() (*Container, func(), error) {
	wire.Build(
		configSet,
		loggingSet,
		databaseSet,
		repositorySet,
		usecaseSet,
		wire.Struct(new(Container), "*"),
	)
	return nil, nil, nil
}
