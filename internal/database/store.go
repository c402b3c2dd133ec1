// Package database contains the item stores and the logic for
// establishing their connections.
//
// Three drivers implement ItemStore:
//   - mongo: the document store used in production (mongo-driver)
//   - postgres: a relational alternative (pgx pool + tern migrations)
//   - memory: a process-local store for development and tests
//
// Stores own identifiers and timestamps: they mint ids on insert and
// stamp createdAt/updatedAt on every write.
package database

import (
	"context"
	"fmt"

	"github.com/deppfellow/items-api/internal/config"
	loggerConfig "github.com/deppfellow/items-api/internal/logger"
	"github.com/deppfellow/items-api/internal/model"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

var (
	// ErrNotFound is returned by FindByID when no item has the given id.
	ErrNotFound = errors.New("item not found")

	// ErrInvalidID is returned when an id is not in the store's format.
	ErrInvalidID = errors.New("invalid item id")
)

// ItemStore is the persistence collaborator behind the item repository.
type ItemStore interface {
	// InsertOne persists item, filling ID, CreatedAt and UpdatedAt.
	InsertOne(ctx context.Context, item *model.Item) error

	// FindAll returns every item in insertion order.
	FindAll(ctx context.Context) ([]model.Item, error)

	// FindByID returns ErrNotFound when the id is unknown.
	FindByID(ctx context.Context, id model.ItemID) (*model.Item, error)

	// UpdateByID overwrites name and description and bumps UpdatedAt.
	// It reports whether a document matched.
	UpdateByID(ctx context.Context, id model.ItemID, name, description string) (bool, error)

	// DeleteByID reports whether a document was removed.
	DeleteByID(ctx context.Context, id model.ItemID) (bool, error)

	// Ping checks connectivity.
	Ping(ctx context.Context) error

	// Close releases connections.
	Close(ctx context.Context) error
}

// Open connects to the store selected by cfg.Database.Driver.
func Open(ctx context.Context, cfg *config.Config, logger *zerolog.Logger, loggerService *loggerConfig.LoggerService) (ItemStore, error) {
	switch cfg.Database.Driver {
	case config.DriverMongo:
		return NewMongo(ctx, cfg, logger, loggerService)
	case config.DriverPostgres:
		return NewPostgres(ctx, cfg, logger, loggerService)
	case config.DriverMemory:
		logger.Warn().Msg("using in-memory item store, data will not survive restarts")
		return NewMemory(), nil
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Database.Driver)
	}
}
