package store

import (
	"context"

	"github.com/jwalitptl/practice-dashboard/internal/model"
	"github.com/jwalitptl/practice-dashboard/pkg/messaging"
)

// BrokerEvents publishes store changes as "<resource>.<operation>" messages.
type BrokerEvents struct {
	publisher messaging.Publisher
}

func NewBrokerEvents(publisher messaging.Publisher) *BrokerEvents {
	return &BrokerEvents{publisher: publisher}
}

func (e *BrokerEvents) PublishChange(ctx context.Context, event model.ChangeEvent) error {
	return e.publisher.Publish(ctx, EventType(event), event)
}

func EventType(event model.ChangeEvent) string {
	return event.Resource + "." + event.Operation
}
