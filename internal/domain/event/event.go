package event

type Type string

const (
	PaymentCreated   Type = "CREATED"
	PaymentCompleted Type = "COMPLETED"
	PaymentRefunded  Type = "REFUNDED"
	PaymentCancelled Type = "CANCELLED"
)

// Types lists every notification a lifecycle transition can emit.
var Types = []Type{PaymentCreated, PaymentCompleted, PaymentRefunded, PaymentCancelled}

type Event struct {
	Type    Type
	Payload any
}
