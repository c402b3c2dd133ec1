package database

import (
	"context"
	"os"
	"testing"

	"github.com/deppfellow/items-api/internal/config"
	"github.com/deppfellow/items-api/internal/model"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestPostgres(t *testing.T) *PostgresDatabase {
	t.Helper()

	uri := os.Getenv("ITEMS_TEST_POSTGRES_URI")
	if uri == "" {
		t.Skip("ITEMS_TEST_POSTGRES_URI not set")
	}

	cfg := &config.Config{
		Primary: config.Primary{Env: "test"},
		Database: config.DatabaseConfig{
			Driver:         config.DriverPostgres,
			URI:            uri,
			ConnectTimeout: 5,
			MaxOpenConns:   4,
			MaxIdleConns:   1,
		},
		Observability: config.DefaultObservabilityConfig(),
	}

	logger := zerolog.Nop()
	ctx := context.Background()

	require.NoError(t, Migrate(ctx, &logger, cfg))

	db, err := NewPostgres(ctx, cfg, &logger, nil)
	require.NoError(t, err)

	_, err = db.Pool.Exec(ctx, `TRUNCATE items`)
	require.NoError(t, err)

	t.Cleanup(func() { _ = db.Close(ctx) })
	return db
}

func TestPostgresItemStore(t *testing.T) {
	db := newTestPostgres(t)
	ctx := context.Background()

	first := &model.Item{Name: "Item 1", Description: "This is item 1"}
	second := &model.Item{Name: "Item 2"}
	require.NoError(t, db.InsertOne(ctx, first))
	require.NoError(t, db.InsertOne(ctx, second))

	_, err := uuid.Parse(first.ID.String())
	require.NoError(t, err)

	items, err := db.FindAll(ctx)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, first.ID, items[0].ID)
	assert.Equal(t, second.ID, items[1].ID)

	_, err = db.FindByID(ctx, model.ItemID(uuid.NewString()))
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = db.FindByID(ctx, "000000000000000000000001")
	assert.ErrorIs(t, err, ErrInvalidID)

	found, err := db.UpdateByID(ctx, first.ID, "Updated Item", "")
	require.NoError(t, err)
	assert.True(t, found)

	updated, err := db.FindByID(ctx, first.ID)
	require.NoError(t, err)
	assert.Equal(t, "Updated Item", updated.Name)
	assert.Empty(t, updated.Description)
	assert.False(t, updated.UpdatedAt.Before(first.UpdatedAt))

	deleted, err := db.DeleteByID(ctx, first.ID)
	require.NoError(t, err)
	assert.True(t, deleted)

	deleted, err = db.DeleteByID(ctx, first.ID)
	require.NoError(t, err)
	assert.False(t, deleted)
}
