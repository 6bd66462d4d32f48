// Package events publishes blog lifecycle notifications after successful writes.
package events

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/blogpessoal/blogapi/internal/mq"
)

const (
	PostCreated    = "post.created"
	PostUpdated    = "post.updated"
	PostDeleted    = "post.deleted"
	ThemeCreated   = "theme.created"
	ThemeUpdated   = "theme.updated"
	ThemeDeleted   = "theme.deleted"
	UserRegistered = "user.registered"
)

// Event is the JSON payload sent on the events channel.
type Event struct {
	Type       string    `json:"type"`
	ID         int       `json:"id"`
	OccurredAt time.Time `json:"occurred_at"`
}

// Publisher is implemented by anything that can emit lifecycle events.
// Publishing never fails the caller.
type Publisher interface {
	Publish(ctx context.Context, eventType string, id int)
}

// Nop discards every event.
type Nop struct{}

func (Nop) Publish(context.Context, string, int) {}

// MQPublisher sends events through a message broker.
type MQPublisher struct {
	mq      *mq.MQ
	channel string
	logger  *slog.Logger
	now     func() time.Time
}

func NewMQPublisher(broker *mq.MQ, channel string, logger *slog.Logger) *MQPublisher {
	return &MQPublisher{
		mq:      broker,
		channel: channel,
		logger:  logger,
		now:     time.Now,
	}
}

func (p *MQPublisher) Publish(ctx context.Context, eventType string, id int) {
	data, err := json.Marshal(Event{Type: eventType, ID: id, OccurredAt: p.now().UTC()})
	if err != nil {
		p.logger.ErrorContext(ctx, "encode event failed", slog.String("type", eventType), slog.Any("error", err))
		return
	}

	msgID, err := p.mq.Publish(ctx, p.channel, data, map[string]string{"type": eventType})
	if err != nil {
		p.logger.WarnContext(ctx, "publish event failed",
			slog.String("type", eventType),
			slog.Int("id", id),
			slog.Any("error", err),
		)
		return
	}
	p.logger.DebugContext(ctx, "event published", slog.String("type", eventType), slog.Int("id", id), slog.String("message_id", msgID))
}

// Decode parses a message produced by MQPublisher.
func Decode(msg mq.Message) (Event, error) {
	var event Event
	err := json.Unmarshal(msg.Data, &event)
	return event, err
}
