package memory

import (
	"context"
	"log/slog"
	"sync"

	appoutbox "roomrates/internal/app/outbox"
)

// Producer is the broker side of the outbox.
type Producer interface {
	Publish(ctx context.Context, topic string, key string, payload []byte, headers map[string]string) error
}

// Outbox keeps records in memory until Flush. With no Producer the records
// are only logged. Records that fail to publish stay queued for the next Flush.
type Outbox struct {
	Producer    Producer
	Logger      *slog.Logger
	TopicPrefix string
	Source      string

	mu      sync.Mutex
	records []appoutbox.EventRecord
}

func NewOutbox(producer Producer, logger *slog.Logger, topicPrefix string) *Outbox {
	return &Outbox{Producer: producer, Logger: logger, TopicPrefix: topicPrefix}
}

func (o *Outbox) Add(ctx context.Context, record appoutbox.EventRecord) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.records = append(o.records, record)
	return nil
}

func (o *Outbox) Flush(ctx context.Context) error {
	o.mu.Lock()
	pending := o.records
	o.records = nil
	o.mu.Unlock()

	var failed []appoutbox.EventRecord
	for _, rec := range pending {
		if err := o.publish(ctx, rec); err != nil {
			if o.Logger != nil {
				o.Logger.ErrorContext(ctx, "event publish failed", "event", rec.Name, "id", rec.ID, "error", err)
			}
			failed = append(failed, rec)
		}
	}
	if len(failed) > 0 {
		o.mu.Lock()
		o.records = append(failed, o.records...)
		o.mu.Unlock()
	}
	return nil
}

// Pending reports how many records wait for a flush.
func (o *Outbox) Pending() int {
	o.mu.Lock()
	defer o.mu.Unlock()
	return len(o.records)
}

func (o *Outbox) publish(ctx context.Context, rec appoutbox.EventRecord) error {
	topic := appoutbox.TopicFor(rec.Name, o.TopicPrefix)
	if o.Producer == nil {
		if o.Logger != nil {
			o.Logger.InfoContext(ctx, "event", "topic", topic, "event", rec.Name, "room_id", rec.Aggregate, "payload", string(rec.Payload))
		}
		return nil
	}
	payload, headers, err := appoutbox.CloudEvent(rec, o.Source)
	if err != nil {
		return err
	}
	return o.Producer.Publish(ctx, topic, rec.Aggregate, payload, headers)
}

var _ appoutbox.Outbox = (*Outbox)(nil)
