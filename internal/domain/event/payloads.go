package event

type PaymentCreatedPayload struct {
	PaymentID   int64
	Payer       string
	Recipient   string
	Amount      int64
	Description string
}

type PaymentCompletedPayload struct {
	PaymentID       int64
	Recipient       string
	RecipientAmount int64
}

type PaymentRefundedPayload struct {
	PaymentID int64
	Payer     string
	Amount    int64
}

type PaymentCancelledPayload struct {
	PaymentID int64
	Payer     string
	Amount    int64
}
