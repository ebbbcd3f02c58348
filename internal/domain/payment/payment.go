package payment

import "time"

type Status string

const (
	StatusPending   Status = "PENDING"
	StatusCompleted Status = "COMPLETED"
	StatusRefunded  Status = "REFUNDED"
	StatusCancelled Status = "CANCELLED"
)

// Payment is the ledger record for a single transfer. Ids are dense,
// 1-based and strictly increasing. Everything except Status is immutable
// after creation.
type Payment struct {
	ID          int64
	Payer       string
	Recipient   string
	Amount      int64
	Description string
	Timestamp   time.Time
	Status      Status
	Exists      bool
}

// Terminal reports whether no further transition is permitted from s.
func (s Status) Terminal() bool {
	return s == StatusRefunded || s == StatusCancelled
}
