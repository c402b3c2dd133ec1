package database

import (
	"context"
	"os"
	"testing"

	"github.com/deppfellow/items-api/internal/config"
	"github.com/deppfellow/items-api/internal/model"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// newTestMongo connects to the server named by ITEMS_TEST_MONGO_URI and
// seeds a fresh collection with the three fixture items.
func newTestMongo(t *testing.T) *MongoDatabase {
	t.Helper()

	uri := os.Getenv("ITEMS_TEST_MONGO_URI")
	if uri == "" {
		t.Skip("ITEMS_TEST_MONGO_URI not set")
	}

	cfg := &config.Config{
		Primary: config.Primary{Env: "test"},
		Database: config.DatabaseConfig{
			Driver:         config.DriverMongo,
			URI:            uri,
			Name:           "items_test",
			Collection:     "items_" + primitive.NewObjectID().Hex(),
			ConnectTimeout: 5,
		},
		Observability: config.DefaultObservabilityConfig(),
	}
	logger := zerolog.Nop()

	ctx := context.Background()
	db, err := NewMongo(ctx, cfg, &logger, nil)
	require.NoError(t, err)

	t.Cleanup(func() {
		_ = db.collection.Drop(ctx)
		_ = db.Close(ctx)
	})

	var docs []interface{}
	for i, id := range []model.ItemID{item1ID, item2ID, item3ID} {
		oid, err := primitive.ObjectIDFromHex(id.String())
		require.NoError(t, err)
		docs = append(docs, bson.M{
			"_id":         oid,
			"name":        []string{"Item 1", "Item 2", "Item 3"}[i],
			"description": []string{"This is item 1", "This is item 2", "This is item 3"}[i],
		})
	}
	_, err = db.collection.InsertMany(ctx, docs)
	require.NoError(t, err)

	return db
}

func TestMongoItemStore(t *testing.T) {
	db := newTestMongo(t)
	ctx := context.Background()

	items, err := db.FindAll(ctx)
	require.NoError(t, err)
	require.Len(t, items, 3)
	assert.Equal(t, item1ID, items[0].ID)
	assert.Equal(t, "This is item 3", items[2].Description)

	_, err = db.FindByID(ctx, item4ID)
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = db.FindByID(ctx, "xyz")
	assert.ErrorIs(t, err, ErrInvalidID)

	created := &model.Item{Name: "New Item"}
	require.NoError(t, db.InsertOne(ctx, created))
	assert.True(t, primitive.IsValidObjectID(created.ID.String()))

	found, err := db.UpdateByID(ctx, item1ID, "Updated Item", "")
	require.NoError(t, err)
	assert.True(t, found)

	updated, err := db.FindByID(ctx, item1ID)
	require.NoError(t, err)
	assert.Equal(t, "Updated Item", updated.Name)
	assert.Empty(t, updated.Description)

	found, err = db.UpdateByID(ctx, item4ID, "Ghost", "")
	require.NoError(t, err)
	assert.False(t, found)

	deleted, err := db.DeleteByID(ctx, item1ID)
	require.NoError(t, err)
	assert.True(t, deleted)

	deleted, err = db.DeleteByID(ctx, item1ID)
	require.NoError(t, err)
	assert.False(t, deleted)

	assert.NoError(t, db.Ping(ctx))
}
