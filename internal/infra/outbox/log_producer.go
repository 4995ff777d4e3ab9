package outbox

import (
	"context"
	"log/slog"
)

// LogProducer writes events to the log when no broker is configured.
type LogProducer struct {
	Logger *slog.Logger
}

func (p LogProducer) Publish(ctx context.Context, topic string, key string, payload []byte, headers map[string]string) error {
	if p.Logger != nil {
		p.Logger.InfoContext(ctx, "event", "topic", topic, "key", key, "payload", string(payload))
	}
	return nil
}
