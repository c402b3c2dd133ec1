package service

import (
	"context"
	"time"

	"github.com/deppfellow/items-api/internal/lib/job"
	"github.com/deppfellow/items-api/internal/model"
	"github.com/deppfellow/items-api/internal/repository"
	"github.com/deppfellow/items-api/internal/server"
	"github.com/rs/zerolog"
)

type ItemService struct {
	server *server.Server
	repo   *repository.ItemRepository
}

func NewItemService(s *server.Server, repo *repository.ItemRepository) *ItemService {
	return &ItemService{
		server: s,
		repo:   repo,
	}
}

// requestIDKey lets callers attach the request id to emitted events.
type requestIDKey struct{}

// WithRequestID returns a context carrying the request id for item events.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, requestID)
}

func (s *ItemService) CreateItem(ctx context.Context, payload *model.CreateItemPayload) (*model.Item, error) {
	item, err := s.repo.CreateItem(ctx, payload.Name, payload.Description)
	if err != nil {
		return nil, err
	}

	s.publish(ctx, item.ID, job.ItemCreated, true)
	return item, nil
}

func (s *ItemService) GetAllItems(ctx context.Context) ([]model.Item, error) {
	return s.repo.GetAllItems(ctx)
}

// GetItem returns nil, nil when the item does not exist.
func (s *ItemService) GetItem(ctx context.Context, id model.ItemID) (*model.Item, error) {
	return s.repo.GetItem(ctx, id)
}

// UpdateItem reports whether the item existed.
func (s *ItemService) UpdateItem(ctx context.Context, payload *model.UpdateItemPayload) (bool, error) {
	id := model.ItemID(payload.ID)

	found, err := s.repo.UpdateItem(ctx, id, payload.Name, payload.Description)
	if err != nil {
		return false, err
	}

	s.publish(ctx, id, job.ItemUpdated, found)
	return found, nil
}

// DeleteItem reports whether anything was removed. Callers treat both
// outcomes as success.
func (s *ItemService) DeleteItem(ctx context.Context, id model.ItemID) (bool, error) {
	deleted, err := s.repo.DeleteItem(ctx, id)
	if err != nil {
		return false, err
	}

	s.publish(ctx, id, job.ItemDeleted, deleted)
	return deleted, nil
}

// publish enqueues an item:changed task. Failures are logged and never
// reach the caller: the write already happened.
func (s *ItemService) publish(ctx context.Context, id model.ItemID, action job.ItemAction, found bool) {
	if s.server.Job == nil {
		return
	}

	logger := zerolog.Ctx(ctx)
	if logger.GetLevel() == zerolog.Disabled {
		logger = s.server.Logger
	}

	requestID, _ := ctx.Value(requestIDKey{}).(string)

	task, err := job.NewItemChangedTask(job.ItemChangedPayload{
		ItemID:     id.String(),
		Action:     action,
		Found:      found,
		RequestID:  requestID,
		OccurredAt: time.Now().UTC(),
	})
	if err != nil {
		logger.Error().Err(err).Str("item_id", id.String()).Msg("failed to build item event")
		return
	}

	if _, err := s.server.Job.Client.EnqueueContext(ctx, task); err != nil {
		logger.Error().Err(err).Str("item_id", id.String()).Msg("failed to enqueue item event")
	}
}
