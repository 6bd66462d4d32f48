package events

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/blogpessoal/blogapi/internal/mq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type captureBackend struct {
	channel string
	data    []byte
	attrs   map[string]string
	err     error
}

func (b *captureBackend) Publish(_ context.Context, channel string, data []byte, attrs map[string]string) (string, error) {
	b.channel = channel
	b.data = data
	b.attrs = attrs
	return "m-1", b.err
}

func (b *captureBackend) Subscribe(context.Context, string, string, mq.Handler) error { return nil }
func (b *captureBackend) Close() error                                             { return nil }

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestMQPublisherEncodesEvent(t *testing.T) {
	backend := &captureBackend{}
	publisher := NewMQPublisher(mq.New(backend), "blog-events", discardLogger())
	fixed := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	publisher.now = func() time.Time { return fixed }

	publisher.Publish(context.Background(), PostCreated, 42)

	assert.Equal(t, "blog-events", backend.channel)
	assert.Equal(t, map[string]string{"type": PostCreated}, backend.attrs)

	event, err := Decode(mq.Message{Data: backend.data})
	require.NoError(t, err)
	assert.Equal(t, Event{Type: PostCreated, ID: 42, OccurredAt: fixed}, event)
}

func TestMQPublisherSwallowsBrokerErrors(t *testing.T) {
	backend := &captureBackend{err: errors.New("broker down")}
	publisher := NewMQPublisher(mq.New(backend), "blog-events", discardLogger())

	assert.NotPanics(t, func() {
		publisher.Publish(context.Background(), ThemeDeleted, 1)
	})
}
