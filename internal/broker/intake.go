package broker

import (
	"context"
	"fmt"
	"time"

	"mix-service/internal/models"

	"github.com/google/uuid"
)

// IntakePublisher hands finalized mix drafts to the order intake
// service by publishing them on the draft topic. No response is
// consumed; a successful publish is a successful hand-off.
type IntakePublisher struct {
	producer *Producer
}

// NewIntakePublisher creates an intake publisher over a producer.
func NewIntakePublisher(producer *Producer) *IntakePublisher {
	return &IntakePublisher{producer: producer}
}

// AcceptOrder publishes the draft as a MixOrderDrafted event.
func (ip *IntakePublisher) AcceptOrder(ctx context.Context, draft models.OrderDraft) error {
	event := &models.MixOrderDraftedEvent{
		BaseEvent: models.BaseEvent{
			EventID:   uuid.New().String(),
			EventType: models.EventTypeMixOrderDrafted,
			Timestamp: time.Now(),
		},
		Name:       draft.Name,
		Components: draft.Components,
		TotalPrice: draft.TotalPrice,
		Nutrition:  draft.Nutrition,
	}

	key := fmt.Sprintf("mix-%s", event.EventID)
	return ip.producer.PublishEvent(ctx, key, event)
}
