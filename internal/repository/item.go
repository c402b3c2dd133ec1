package repository

import (
	"context"

	"github.com/deppfellow/items-api/internal/database"
	"github.com/deppfellow/items-api/internal/model"
	"github.com/pkg/errors"
)

// ErrNameRequired is returned by CreateItem and UpdateItem when name is empty.
var ErrNameRequired = errors.New("item name is required")

// ItemRepository implements the five item operations over an ItemStore.
type ItemRepository struct {
	store database.ItemStore
}

// NewItemRepository wraps store. The store is the only state the repository holds.
func NewItemRepository(store database.ItemStore) *ItemRepository {
	return &ItemRepository{store: store}
}

// CreateItem persists a new item and returns it with the id and
// timestamps assigned by the store.
func (r *ItemRepository) CreateItem(ctx context.Context, name, description string) (*model.Item, error) {
	if name == "" {
		return nil, ErrNameRequired
	}

	item := &model.Item{
		Name:        name,
		Description: description,
	}
	if err := r.store.InsertOne(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

// GetAllItems returns every item. An empty collection yields an empty slice.
func (r *ItemRepository) GetAllItems(ctx context.Context) ([]model.Item, error) {
	items, err := r.store.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []model.Item{}
	}
	return items, nil
}

// GetItem looks an item up by id.
//
// It returns nil, nil when no item matches. A malformed id fails with
// database.ErrInvalidID.
func (r *ItemRepository) GetItem(ctx context.Context, id model.ItemID) (*model.Item, error) {
	item, err := r.store.FindByID(ctx, id)
	if errors.Is(err, database.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return item, nil
}

// UpdateItem overwrites name and description in place. It returns false,
// without writing, when no item matches. An empty name is only an error
// for an item that exists.
func (r *ItemRepository) UpdateItem(ctx context.Context, id model.ItemID, name, description string) (bool, error) {
	if name == "" {
		existing, err := r.GetItem(ctx, id)
		if err != nil || existing == nil {
			return false, err
		}
		return false, ErrNameRequired
	}
	return r.store.UpdateByID(ctx, id, name, description)
}

// DeleteItem removes the item if present. Deleting an unknown or
// malformed id is a no-op; the bool reports whether anything was removed.
func (r *ItemRepository) DeleteItem(ctx context.Context, id model.ItemID) (bool, error) {
	deleted, err := r.store.DeleteByID(ctx, id)
	if errors.Is(err, database.ErrInvalidID) {
		return false, nil
	}
	return deleted, err
}
