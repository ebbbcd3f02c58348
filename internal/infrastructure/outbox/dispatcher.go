package outbox

import (
	"context"
	"encoding/json"
	"time"

	"github.com/rdcosta-dev/paysplit-go/internal/domain/event"
)

type EventPublisher interface {
	Publish(event.Event) error
}

// Dispatcher polls the outbox and fans recorded notifications out to the
// bus. A failed publish leaves the row unpublished for the next round.
type Dispatcher struct {
	Repo         Repository
	EventBus     EventPublisher
	PollInterval time.Duration
	BatchSize    int
}

func (d *Dispatcher) Run(ctx context.Context) {
	ticker := time.NewTicker(d.PollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			d.DispatchOnce()
		}
	}
}

func (d *Dispatcher) DispatchOnce() {
	events, err := d.Repo.FindUnpublished(d.BatchSize)
	if err != nil {
		return
	}

	for _, evt := range events {
		payload, err := decodePayload(evt.Type, evt.Payload)
		if err != nil {
			continue
		}

		if err := d.EventBus.Publish(event.Event{
			Type:    evt.Type,
			Payload: payload,
		}); err != nil {
			continue
		}

		_ = d.Repo.MarkPublished(evt.ID)
	}
}

// decodePayload restores the typed payload so bus subscribers see the same
// shape the engine emitted.
func decodePayload(t event.Type, raw []byte) (any, error) {
	switch t {
	case event.PaymentCreated:
		var p event.PaymentCreatedPayload
		err := json.Unmarshal(raw, &p)
		return p, err
	case event.PaymentCompleted:
		var p event.PaymentCompletedPayload
		err := json.Unmarshal(raw, &p)
		return p, err
	case event.PaymentRefunded:
		var p event.PaymentRefundedPayload
		err := json.Unmarshal(raw, &p)
		return p, err
	case event.PaymentCancelled:
		var p event.PaymentCancelledPayload
		err := json.Unmarshal(raw, &p)
		return p, err
	}

	var p any
	err := json.Unmarshal(raw, &p)
	return p, err
}
