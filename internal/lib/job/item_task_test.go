package job

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/hibiken/asynq"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewItemChangedTask(t *testing.T) {
	occurred := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	task, err := NewItemChangedTask(ItemChangedPayload{
		ItemID:     "000000000000000000000001",
		Action:     ItemDeleted,
		Found:      false,
		RequestID:  "req-1",
		OccurredAt: occurred,
	})
	require.NoError(t, err)
	assert.Equal(t, TaskItemChanged, task.Type())

	var decoded ItemChangedPayload
	require.NoError(t, json.Unmarshal(task.Payload(), &decoded))
	assert.Equal(t, ItemDeleted, decoded.Action)
	assert.False(t, decoded.Found)
	assert.Equal(t, "req-1", decoded.RequestID)
	assert.True(t, occurred.Equal(decoded.OccurredAt))
}

func TestHandleItemChangedTask(t *testing.T) {
	logger := zerolog.Nop()
	j := &JobService{logger: &logger}

	task, err := NewItemChangedTask(ItemChangedPayload{ItemID: "1", Action: ItemCreated, Found: true})
	require.NoError(t, err)
	assert.NoError(t, j.handleItemChangedTask(context.Background(), task))

	bad := asynq.NewTask(TaskItemChanged, []byte("{"))
	err = j.handleItemChangedTask(context.Background(), bad)
	assert.True(t, errors.Is(err, asynq.SkipRetry))
}
