package database

import (
	"context"
	"sync"
	"time"

	"github.com/deppfellow/items-api/internal/model"
	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MemoryDatabase is an in-process ItemStore.
//
// Ids use the same ObjectID hex format as the Mongo store, so clients and
// tests see identical identifiers whichever driver is running.
type MemoryDatabase struct {
	mu    sync.RWMutex
	items map[model.ItemID]model.Item
	order []model.ItemID
	now   func() time.Time
}

// MemoryOption configures a MemoryDatabase.
type MemoryOption func(*MemoryDatabase)

// WithClock overrides the clock used for timestamps.
func WithClock(fn func() time.Time) MemoryOption {
	return func(db *MemoryDatabase) {
		if fn != nil {
			db.now = fn
		}
	}
}

// NewMemory creates an empty store.
func NewMemory(opts ...MemoryOption) *MemoryDatabase {
	db := &MemoryDatabase{
		items: make(map[model.ItemID]model.Item),
		now: func() time.Time {
			return time.Now().UTC()
		},
	}
	for _, opt := range opts {
		opt(db)
	}
	return db
}

// Seed inserts items with caller-chosen ids, as a fixture loader would
// write documents straight into the collection. Zero timestamps are
// filled from the clock.
func (db *MemoryDatabase) Seed(items ...model.Item) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	for _, item := range items {
		if !primitive.IsValidObjectID(string(item.ID)) {
			return ErrInvalidID
		}
		if _, exists := db.items[item.ID]; exists {
			return errors.Errorf("duplicate item id '%s'", item.ID)
		}

		now := db.now()
		if item.CreatedAt.IsZero() {
			item.CreatedAt = now
		}
		if item.UpdatedAt.IsZero() {
			item.UpdatedAt = item.CreatedAt
		}

		db.items[item.ID] = item
		db.order = append(db.order, item.ID)
	}
	return nil
}

func (db *MemoryDatabase) InsertOne(ctx context.Context, item *model.Item) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	db.mu.Lock()
	defer db.mu.Unlock()

	now := db.now()
	stored := model.Item{
		ID:          model.ItemID(primitive.NewObjectID().Hex()),
		Name:        item.Name,
		Description: item.Description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	db.items[stored.ID] = stored
	db.order = append(db.order, stored.ID)

	*item = stored
	return nil
}

func (db *MemoryDatabase) FindAll(ctx context.Context) ([]model.Item, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	db.mu.RLock()
	defer db.mu.RUnlock()

	items := make([]model.Item, 0, len(db.order))
	for _, id := range db.order {
		items = append(items, db.items[id])
	}
	return items, nil
}

func (db *MemoryDatabase) FindByID(ctx context.Context, id model.ItemID) (*model.Item, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if !primitive.IsValidObjectID(string(id)) {
		return nil, ErrInvalidID
	}

	db.mu.RLock()
	defer db.mu.RUnlock()

	item, ok := db.items[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &item, nil
}

func (db *MemoryDatabase) UpdateByID(ctx context.Context, id model.ItemID, name, description string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	if !primitive.IsValidObjectID(string(id)) {
		return false, ErrInvalidID
	}

	db.mu.Lock()
	defer db.mu.Unlock()

	item, ok := db.items[id]
	if !ok {
		return false, nil
	}

	item.Name = name
	item.Description = description
	item.UpdatedAt = db.now()
	db.items[id] = item
	return true, nil
}

func (db *MemoryDatabase) DeleteByID(ctx context.Context, id model.ItemID) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	if !primitive.IsValidObjectID(string(id)) {
		return false, ErrInvalidID
	}

	db.mu.Lock()
	defer db.mu.Unlock()

	if _, ok := db.items[id]; !ok {
		return false, nil
	}

	delete(db.items, id)
	for i, existing := range db.order {
		if existing == id {
			db.order = append(db.order[:i], db.order[i+1:]...)
			break
		}
	}
	return true, nil
}

func (db *MemoryDatabase) Ping(ctx context.Context) error {
	return ctx.Err()
}

func (db *MemoryDatabase) Close(context.Context) error {
	return nil
}
