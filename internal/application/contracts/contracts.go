package contracts

import "github.com/rdcosta-dev/paysplit-go/internal/domain/event"

type EventRecorder interface {
	Record(event.Event) error
}
