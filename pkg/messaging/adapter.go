package messaging

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// ChannelPublisher publishes typed messages on one broker channel.
type ChannelPublisher struct {
	broker  Broker
	channel string
	source  string
}

func NewChannelPublisher(broker Broker, channel string) *ChannelPublisher {
	return &ChannelPublisher{broker: broker, channel: channel, source: uuid.NewString()}
}

// Source is the id stamped on every message this publisher sends.
func (p *ChannelPublisher) Source() string {
	return p.source
}

func (p *ChannelPublisher) Publish(ctx context.Context, eventType string, payload interface{}) error {
	msg := Message{Type: eventType, Source: p.source, Payload: payload}
	if err := p.broker.Publish(ctx, p.channel, msg); err != nil {
		return fmt.Errorf("failed to publish %s: %w", eventType, err)
	}
	return nil
}

// Consume decodes messages from channel and hands those not sent by
// ignoreSource to handler until ctx is done. Undecodable messages and
// handler errors are logged and skipped.
func Consume(ctx context.Context, broker Broker, channel, ignoreSource string, logger zerolog.Logger, handler func(Message) error) error {
	msgChan, err := broker.Subscribe(ctx, channel)
	if err != nil {
		return fmt.Errorf("failed to subscribe to %s: %w", channel, err)
	}

	go func() {
		for raw := range msgChan {
			var msg Message
			if err := json.Unmarshal(raw, &msg); err != nil {
				logger.Warn().Err(err).Str("channel", channel).Msg("dropping undecodable message")
				continue
			}
			if ignoreSource != "" && msg.Source == ignoreSource {
				continue
			}
			if err := handler(msg); err != nil {
				logger.Error().Err(err).Str("type", msg.Type).Msg("message handler failed")
			}
		}
	}()

	return nil
}
