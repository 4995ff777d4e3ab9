package outbox

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	appoutbox "roomrates/internal/app/outbox"
)

var ErrWorkerNotConfigured = errors.New("outbox: worker missing dependencies")

type Producer interface {
	Publish(ctx context.Context, topic string, key string, payload []byte, headers map[string]string) error
}

type queue interface {
	Claim(ctx context.Context, workerID string) (*EventDocument, error)
	MarkSent(ctx context.Context, id string) error
	MarkFailed(ctx context.Context, id string, next time.Time, errMsg string) error
	Wakeup() <-chan struct{}
}

// Worker drains due events from the store on every tick or Flush.
type Worker struct {
	Store       queue
	Producer    Producer
	Logger      *slog.Logger
	Interval    time.Duration
	TopicPrefix string
	Source      string
	ID          string
	Backoff     []time.Duration
	// BatchSize bounds the events published per wakeup.
	BatchSize int

	now func() time.Time
}

func (w *Worker) Run(ctx context.Context) error {
	if w.Store == nil || w.Producer == nil {
		return ErrWorkerNotConfigured
	}
	if w.ID == "" {
		w.ID = uuid.NewString()
	}
	ticker := time.NewTicker(w.interval())
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		case <-w.Store.Wakeup():
		}
		if _, err := w.Drain(ctx); err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			w.log().ErrorContext(ctx, "outbox drain failed", "error", err)
		}
	}
}

// Drain publishes up to BatchSize due events and reports how many were sent.
func (w *Worker) Drain(ctx context.Context) (int, error) {
	sent := 0
	for range w.batchSize() {
		doc, err := w.Store.Claim(ctx, w.ID)
		if err != nil {
			return sent, err
		}
		if doc == nil {
			return sent, nil
		}
		if err := w.publish(ctx, doc); err != nil {
			w.log().WarnContext(ctx, "event publish failed", "event", doc.Name, "id", doc.ID, "attempts", doc.Attempts+1, "error", err)
			if err := w.Store.MarkFailed(ctx, doc.ID, w.nextRetry(doc.Attempts), err.Error()); err != nil {
				return sent, err
			}
			continue
		}
		if err := w.Store.MarkSent(ctx, doc.ID); err != nil {
			return sent, err
		}
		sent++
	}
	return sent, nil
}

func (w *Worker) publish(ctx context.Context, doc *EventDocument) error {
	payload, headers, err := appoutbox.CloudEvent(doc.record(), w.Source)
	if err != nil {
		return err
	}
	return w.Producer.Publish(ctx, appoutbox.TopicFor(doc.Name, w.TopicPrefix), doc.Aggregate, payload, headers)
}

func (w *Worker) interval() time.Duration {
	if w.Interval <= 0 {
		return 500 * time.Millisecond
	}
	return w.Interval
}

func (w *Worker) batchSize() int {
	if w.BatchSize <= 0 {
		return 50
	}
	return w.BatchSize
}

func (w *Worker) nextRetry(attempts int) time.Time {
	now := time.Now()
	if w.now != nil {
		now = w.now()
	}
	if attempts < len(w.Backoff) {
		return now.Add(w.Backoff[attempts])
	}
	if len(w.Backoff) > 0 {
		return now.Add(w.Backoff[len(w.Backoff)-1])
	}
	return now.Add(5 * time.Second)
}

func (w *Worker) log() *slog.Logger {
	if w.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return w.Logger
}
