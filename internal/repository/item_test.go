package repository

import (
	"context"
	"testing"

	"github.com/deppfellow/items-api/internal/database"
	"github.com/deppfellow/items-api/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	item1ID model.ItemID = "000000000000000000000001"
	item4ID model.ItemID = "000000000000000000000004"
)

func newTestRepository(t *testing.T) (*ItemRepository, *database.MemoryDatabase) {
	t.Helper()

	store := database.NewMemory()
	require.NoError(t, store.Seed(
		model.Item{ID: item1ID, Name: "Item 1", Description: "This is item 1"},
		model.Item{ID: "000000000000000000000002", Name: "Item 2", Description: "This is item 2"},
		model.Item{ID: "000000000000000000000003", Name: "Item 3", Description: "This is item 3"},
	))
	return NewItemRepository(store), store
}

func TestCreateItem(t *testing.T) {
	ctx := context.Background()

	t.Run("AssignsIDAndTimestamps", func(t *testing.T) {
		repo, _ := newTestRepository(t)

		item, err := repo.CreateItem(ctx, "New Item", "This is a new item")
		require.NoError(t, err)
		assert.NotEmpty(t, item.ID)
		assert.Equal(t, "New Item", item.Name)
		assert.Equal(t, "This is a new item", item.Description)
		assert.False(t, item.CreatedAt.IsZero())

		fetched, err := repo.GetItem(ctx, item.ID)
		require.NoError(t, err)
		assert.Equal(t, item, fetched)
	})

	t.Run("DescriptionOptional", func(t *testing.T) {
		repo, _ := newTestRepository(t)

		item, err := repo.CreateItem(ctx, "Bare", "")
		require.NoError(t, err)
		assert.Empty(t, item.Description)
	})

	t.Run("NameRequired", func(t *testing.T) {
		repo, _ := newTestRepository(t)

		item, err := repo.CreateItem(ctx, "", "no name")
		assert.ErrorIs(t, err, ErrNameRequired)
		assert.Nil(t, item)

		items, err := repo.GetAllItems(ctx)
		require.NoError(t, err)
		assert.Len(t, items, 3)
	})
}

func TestGetAllItems(t *testing.T) {
	ctx := context.Background()

	repo, _ := newTestRepository(t)
	items, err := repo.GetAllItems(ctx)
	require.NoError(t, err)
	require.Len(t, items, 3)
	assert.Equal(t, "Item 1", items[0].Name)
	assert.Equal(t, "Item 3", items[2].Name)

	empty, err := NewItemRepository(database.NewMemory()).GetAllItems(ctx)
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)
}

func TestGetItem(t *testing.T) {
	ctx := context.Background()
	repo, _ := newTestRepository(t)

	item, err := repo.GetItem(ctx, item1ID)
	require.NoError(t, err)
	require.NotNil(t, item)
	assert.Equal(t, "Item 1", item.Name)

	item, err = repo.GetItem(ctx, item4ID)
	require.NoError(t, err)
	assert.Nil(t, item)

	_, err = repo.GetItem(ctx, "not-an-id")
	assert.ErrorIs(t, err, database.ErrInvalidID)
}

func TestUpdateItem(t *testing.T) {
	ctx := context.Background()

	t.Run("Existing", func(t *testing.T) {
		repo, _ := newTestRepository(t)

		found, err := repo.UpdateItem(ctx, item1ID, "Updated Item", "This is an updated item")
		require.NoError(t, err)
		assert.True(t, found)

		item, err := repo.GetItem(ctx, item1ID)
		require.NoError(t, err)
		assert.Equal(t, "Updated Item", item.Name)
		assert.Equal(t, "This is an updated item", item.Description)
	})

	t.Run("Missing", func(t *testing.T) {
		repo, _ := newTestRepository(t)

		found, err := repo.UpdateItem(ctx, item4ID, "Updated Item", "")
		require.NoError(t, err)
		assert.False(t, found)

		item, err := repo.GetItem(ctx, item4ID)
		require.NoError(t, err)
		assert.Nil(t, item)
	})

	t.Run("EmptyNameOnExisting", func(t *testing.T) {
		repo, _ := newTestRepository(t)

		found, err := repo.UpdateItem(ctx, item1ID, "", "whatever")
		assert.ErrorIs(t, err, ErrNameRequired)
		assert.False(t, found)

		item, err := repo.GetItem(ctx, item1ID)
		require.NoError(t, err)
		assert.Equal(t, "Item 1", item.Name)
	})

	t.Run("EmptyNameOnMissing", func(t *testing.T) {
		repo, _ := newTestRepository(t)

		found, err := repo.UpdateItem(ctx, item4ID, "", "")
		require.NoError(t, err)
		assert.False(t, found)
	})

	t.Run("MalformedID", func(t *testing.T) {
		repo, _ := newTestRepository(t)

		_, err := repo.UpdateItem(ctx, "bad", "x", "")
		assert.ErrorIs(t, err, database.ErrInvalidID)
	})
}

func TestDeleteItem(t *testing.T) {
	ctx := context.Background()
	repo, _ := newTestRepository(t)

	deleted, err := repo.DeleteItem(ctx, item1ID)
	require.NoError(t, err)
	assert.True(t, deleted)

	item, err := repo.GetItem(ctx, item1ID)
	require.NoError(t, err)
	assert.Nil(t, item)

	deleted, err = repo.DeleteItem(ctx, item1ID)
	require.NoError(t, err)
	assert.False(t, deleted)

	deleted, err = repo.DeleteItem(ctx, "not-an-id")
	require.NoError(t, err)
	assert.False(t, deleted)

	items, err := repo.GetAllItems(ctx)
	require.NoError(t, err)
	assert.Len(t, items, 2)
}
