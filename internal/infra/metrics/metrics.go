package metrics

import "sync/atomic"

type Counters struct {
	PaymentsCreated   uint64
	PaymentsCompleted uint64
	PaymentsRefunded  uint64
	PaymentsCancelled uint64
	TransferFailures  uint64
}

func (c *Counters) IncCreated() {
	atomic.AddUint64(&c.PaymentsCreated, 1)
}

func (c *Counters) IncCompleted() {
	atomic.AddUint64(&c.PaymentsCompleted, 1)
}

func (c *Counters) IncRefunded() {
	atomic.AddUint64(&c.PaymentsRefunded, 1)
}

func (c *Counters) IncCancelled() {
	atomic.AddUint64(&c.PaymentsCancelled, 1)
}

func (c *Counters) IncTransferFailures() {
	atomic.AddUint64(&c.TransferFailures, 1)
}
