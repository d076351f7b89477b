package eventbus

import (
	"context"
	"log"

	"github.com/blueprintkit/blueprint/internal/event"
)

// LogConsumer logs all generation events for observability.
type LogConsumer struct{}

func NewLogConsumer() *LogConsumer { return &LogConsumer{} }

func (c *LogConsumer) HandleEvent(_ context.Context, evt event.Event) error {
	log.Printf("event: %s [%s] %s", evt.Type, evt.Config, evt.Summary)
	return nil
}
