package outbox

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/rdcosta-dev/paysplit-go/internal/domain/event"
)

// Recorder persists lifecycle notifications so the dispatcher can deliver
// them after the owning operation has committed.
type Recorder struct {
	Repo Repository
}

func (r *Recorder) Record(evt event.Event) error {
	payload, err := json.Marshal(evt.Payload)
	if err != nil {
		return err
	}

	return r.Repo.Save(OutboxEvent{
		ID:        uuid.NewString(),
		Type:      evt.Type,
		Payload:   payload,
		CreatedAt: time.Now().UTC(),
	})
}
