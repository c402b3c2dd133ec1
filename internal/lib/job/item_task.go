package job

import (
	"encoding/json"
	"time"

	"github.com/hibiken/asynq"
)

const (
	// TaskItemChanged is the task type for item lifecycle events.
	TaskItemChanged = "item:changed"

	// QueueEvents holds audit events. They are low value individually,
	// so they are retried a few times and then dropped.
	QueueEvents = "events"
)

// ItemAction names what happened to an item.
type ItemAction string

const (
	ItemCreated ItemAction = "created"
	ItemUpdated ItemAction = "updated"
	ItemDeleted ItemAction = "deleted"
)

// ItemChangedPayload is the JSON payload of an item:changed task.
//
// Found is false for an update or delete that matched nothing, which lets
// the audit trail tell a real delete from an idempotent no-op.
type ItemChangedPayload struct {
	ItemID     string     `json:"item_id"`
	Action     ItemAction `json:"action"`
	Found      bool       `json:"found"`
	RequestID  string     `json:"request_id,omitempty"`
	OccurredAt time.Time  `json:"occurred_at"`
}

// NewItemChangedTask serializes payload into an Asynq task.
func NewItemChangedTask(payload ItemChangedPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	return asynq.NewTask(
		TaskItemChanged,
		data,
		asynq.MaxRetry(3),
		asynq.Queue(QueueEvents),
		asynq.Timeout(10*time.Second),
	), nil
}
