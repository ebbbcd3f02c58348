package engine

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rdcosta-dev/paysplit-go/internal/application/contracts"
	"github.com/rdcosta-dev/paysplit-go/internal/domain/event"
	"github.com/rdcosta-dev/paysplit-go/internal/domain/fee"
	"github.com/rdcosta-dev/paysplit-go/internal/domain/payment"
	"github.com/rdcosta-dev/paysplit-go/internal/infra/logging"
	"github.com/rdcosta-dev/paysplit-go/internal/infra/metrics"
)

var (
	ErrUnauthorized   = errors.New("caller not authorized")
	ErrInvalidFee     = errors.New("fee exceeds maximum")
	ErrNoBalance      = errors.New("no withdrawable balance")
	ErrTransferFailed = errors.New("transfer failed")
)

// Leg is a single outbound transfer of a payout.
type Leg struct {
	To     string
	Amount int64
}

// Gateway moves funds in and out of the platform float. Payout applies its
// legs all-or-nothing; a failed payout leaves no durable partial transfer.
// It is the only point where control leaves the engine, so it is invoked
// only after the owning status transition is committed to the ledger.
type Gateway interface {
	Deposit(ctx context.Context, from string, amount int64) error
	Payout(ctx context.Context, legs ...Leg) error
	// Balance returns the current platform float.
	Balance() int64
}

type Authorizer interface {
	IsAdmin(caller string) bool
	CanManage(caller string, p *payment.Payment) bool
}

// Engine drives the payment lifecycle: Pending -> {Completed, Cancelled},
// Completed -> {Refunded}. Creation auto-completes in the same operation.
type Engine struct {
	Ledger   payment.Repository
	Fees     *fee.Config
	Gateway  Gateway
	Access   Authorizer
	Recorder contracts.EventRecorder
	Logger   logging.Logger
	Metrics  *metrics.Counters
}

// CreatePayment validates the request, funds the platform float with the
// payer's amount, allocates a Pending record and immediately completes it.
// If any payout leg fails the whole creation unwinds: the record is
// discarded and the deposit returned to the payer.
func (e *Engine) CreatePayment(ctx context.Context, caller, recipient, description string, amount int64) (int64, error) {
	if recipient == "" || recipient == caller {
		return 0, payment.ErrInvalidRecipient
	}
	if amount <= 0 {
		return 0, payment.ErrInvalidAmount
	}

	if err := e.Gateway.Deposit(ctx, caller, amount); err != nil {
		return 0, fmt.Errorf("%w: funding deposit: %v", ErrTransferFailed, err)
	}

	p := &payment.Payment{
		Payer:       caller,
		Recipient:   recipient,
		Amount:      amount,
		Description: description,
		Timestamp:   time.Now().UTC(),
		Status:      payment.StatusPending,
		Exists:      true,
	}

	id, err := e.Ledger.Create(p)
	if err != nil {
		return 0, err
	}

	recipientAmount, err := e.complete(ctx, id, p)
	if err != nil {
		if derr := e.Ledger.Discard(id); derr != nil {
			e.Logger.Error("discarding aborted payment", map[string]any{
				"payment-id": id,
				"error":      derr.Error(),
			})
		}
		if perr := e.Gateway.Payout(ctx, Leg{To: p.Payer, Amount: p.Amount}); perr != nil {
			// Deposit stays in the float as residual; the admin can sweep it.
			e.Logger.Error("returning deposit of aborted payment", map[string]any{
				"payment-id": id,
				"payer":      p.Payer,
				"error":      perr.Error(),
			})
		}
		return 0, err
	}

	// Notifications fire only once the whole fused operation has committed;
	// an aborted create leaves no observable trace.
	e.record(event.Event{
		Type: event.PaymentCreated,
		Payload: event.PaymentCreatedPayload{
			PaymentID:   id,
			Payer:       p.Payer,
			Recipient:   p.Recipient,
			Amount:      p.Amount,
			Description: p.Description,
		},
	})
	e.Metrics.IncCreated()

	e.record(event.Event{
		Type: event.PaymentCompleted,
		Payload: event.PaymentCompletedPayload{
			PaymentID:       id,
			Recipient:       p.Recipient,
			RecipientAmount: recipientAmount,
		},
	})
	e.Metrics.IncCompleted()

	e.Logger.Info("payment completed", map[string]any{
		"payment-id":       id,
		"payer":            p.Payer,
		"recipient":        p.Recipient,
		"recipient-amount": recipientAmount,
	})

	return id, nil
}

// complete is the second half of the fused create: commit the status
// transition first, then pay the fee leg and the recipient leg. A reentrant
// call issued by a paid recipient observes StatusCompleted and cannot
// re-trigger the transition. Returns the recipient's share of the split.
func (e *Engine) complete(ctx context.Context, id int64, p *payment.Payment) (int64, error) {
	if err := e.Ledger.Transition(id, payment.StatusPending, payment.StatusCompleted); err != nil {
		return 0, err
	}

	feeAmount, recipientAmount := fee.Split(p.Amount, e.Fees.Bps())

	legs := make([]Leg, 0, 2)
	if feeAmount > 0 {
		legs = append(legs, Leg{To: e.Fees.Recipient(), Amount: feeAmount})
	}
	legs = append(legs, Leg{To: p.Recipient, Amount: recipientAmount})

	if err := e.Gateway.Payout(ctx, legs...); err != nil {
		if terr := e.Ledger.Transition(id, payment.StatusCompleted, payment.StatusPending); terr != nil {
			e.Logger.Error("reverting failed completion", map[string]any{
				"payment-id": id,
				"error":      terr.Error(),
			})
		}
		e.Metrics.IncTransferFailures()
		return 0, fmt.Errorf("%w: completion payout: %v", ErrTransferFailed, err)
	}

	return recipientAmount, nil
}

// CancelPayment aborts a Pending payment and returns the full amount to
// the payer. Only the payer or the admin may cancel.
func (e *Engine) CancelPayment(ctx context.Context, caller string, id int64) error {
	return e.payBack(ctx, caller, id, payment.StatusCancelled)
}

// RefundPayment returns the full original amount to the payer, from
// Pending or Completed. The platform fee already disbursed on completion
// is not clawed back from the fee recipient.
func (e *Engine) RefundPayment(ctx context.Context, caller string, id int64) error {
	return e.payBack(ctx, caller, id, payment.StatusRefunded)
}

// payBack is the shared cancel/refund path: authorize, commit the guarded
// transition, then issue the single payout leg back to the payer.
func (e *Engine) payBack(ctx context.Context, caller string, id int64, to payment.Status) error {
	p, err := e.Ledger.FindByID(id)
	if err != nil {
		return err
	}

	if !e.Access.CanManage(caller, p) {
		return ErrUnauthorized
	}

	from := p.Status
	switch to {
	case payment.StatusCancelled:
		if from != payment.StatusPending {
			return payment.ErrInvalidTransition
		}
	case payment.StatusRefunded:
		if from != payment.StatusPending && from != payment.StatusCompleted {
			return payment.ErrInvalidTransition
		}
	}

	if err := e.Ledger.Transition(id, from, to); err != nil {
		return err
	}

	if err := e.Gateway.Payout(ctx, Leg{To: p.Payer, Amount: p.Amount}); err != nil {
		if terr := e.Ledger.Transition(id, to, from); terr != nil {
			e.Logger.Error("reverting failed payback", map[string]any{
				"payment-id": id,
				"error":      terr.Error(),
			})
		}
		e.Metrics.IncTransferFailures()
		return fmt.Errorf("%w: payback payout: %v", ErrTransferFailed, err)
	}

	if to == payment.StatusCancelled {
		e.record(event.Event{
			Type: event.PaymentCancelled,
			Payload: event.PaymentCancelledPayload{
				PaymentID: id,
				Payer:     p.Payer,
				Amount:    p.Amount,
			},
		})
		e.Metrics.IncCancelled()
	} else {
		e.record(event.Event{
			Type: event.PaymentRefunded,
			Payload: event.PaymentRefundedPayload{
				PaymentID: id,
				Payer:     p.Payer,
				Amount:    p.Amount,
			},
		})
		e.Metrics.IncRefunded()
	}

	e.Logger.Info("payment paid back", map[string]any{
		"payment-id": id,
		"payer":      p.Payer,
		"amount":     p.Amount,
		"status":     string(to),
	})

	return nil
}

// UpdateFee sets the platform fee rate. Admin only; capped at fee.MaxBps.
func (e *Engine) UpdateFee(caller string, bps int64) error {
	if !e.Access.IsAdmin(caller) {
		return ErrUnauthorized
	}
	if bps < 0 || bps > fee.MaxBps {
		return ErrInvalidFee
	}

	e.Fees.SetBps(bps)
	return nil
}

// UpdateFeeRecipient sets the identity that receives the platform fee.
func (e *Engine) UpdateFeeRecipient(caller, recipient string) error {
	if !e.Access.IsAdmin(caller) {
		return ErrUnauthorized
	}
	if recipient == "" {
		return payment.ErrInvalidRecipient
	}

	e.Fees.SetRecipient(recipient)
	return nil
}

// EmergencyWithdraw sweeps the residual float balance, the part not backing
// any Pending payment, to the admin. Returns the amount withdrawn.
func (e *Engine) EmergencyWithdraw(ctx context.Context, caller string) (int64, error) {
	if !e.Access.IsAdmin(caller) {
		return 0, ErrUnauthorized
	}

	pending, err := e.Ledger.PendingTotal()
	if err != nil {
		return 0, err
	}

	residual := e.Gateway.Balance() - pending
	if residual <= 0 {
		return 0, ErrNoBalance
	}

	if err := e.Gateway.Payout(ctx, Leg{To: caller, Amount: residual}); err != nil {
		e.Metrics.IncTransferFailures()
		return 0, fmt.Errorf("%w: emergency withdraw: %v", ErrTransferFailed, err)
	}

	e.Logger.Info("emergency withdraw", map[string]any{
		"admin":  caller,
		"amount": residual,
	})

	return residual, nil
}

func (e *Engine) GetPayment(id int64) (*payment.Payment, error) {
	return e.Ledger.FindByID(id)
}

func (e *Engine) GetUserPayments(owner string) ([]int64, error) {
	return e.Ledger.FindByOwner(owner)
}

func (e *Engine) GetPaymentCount() (int64, error) {
	return e.Ledger.Count()
}

func (e *Engine) GetFeeBps() int64 {
	return e.Fees.Bps()
}

func (e *Engine) GetFeeRecipient() string {
	return e.Fees.Recipient()
}

// record hands the notification to the recorder. A recording failure never
// aborts an already committed transition.
func (e *Engine) record(evt event.Event) {
	if err := e.Recorder.Record(evt); err != nil {
		e.Logger.Error("recording notification", map[string]any{
			"event-type": string(evt.Type),
			"error":      err.Error(),
		})
	}
}
