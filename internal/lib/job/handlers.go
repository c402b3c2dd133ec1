package job

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/hibiken/asynq"
)

// handleItemChangedTask writes one audit line per item event.
func (j *JobService) handleItemChangedTask(_ context.Context, t *asynq.Task) error {
	var p ItemChangedPayload
	if err := json.Unmarshal(t.Payload(), &p); err != nil {
		// A payload that cannot be decoded will never succeed.
		return fmt.Errorf("failed to unmarshal item changed payload: %v: %w", err, asynq.SkipRetry)
	}

	j.logger.Info().
		Str("type", TaskItemChanged).
		Str("item_id", p.ItemID).
		Str("action", string(p.Action)).
		Bool("found", p.Found).
		Str("request_id", p.RequestID).
		Time("occurred_at", p.OccurredAt).
		Msg("item audit event")

	return nil
}
