package funds_test

import (
	"context"
	"errors"
	"testing"

	"github.com/rdcosta-dev/paysplit-go/internal/application/engine"
	"github.com/rdcosta-dev/paysplit-go/internal/infrastructure/funds"
)

func TestSettlementGateway_PayoutMovesFloatToAccounts(t *testing.T) {
	g := funds.NewSettlementGateway()
	ctx := context.Background()

	if err := g.Deposit(ctx, "alice", 1000); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	err := g.Payout(ctx,
		engine.Leg{To: "platform", Amount: 2},
		engine.Leg{To: "bob", Amount: 998},
	)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got := g.Balance(); got != 0 {
		t.Errorf("expected float 0, got %d", got)
	}
	if got := g.AccountBalance("platform"); got != 2 {
		t.Errorf("expected platform balance 2, got %d", got)
	}
	if got := g.AccountBalance("bob"); got != 998 {
		t.Errorf("expected bob balance 998, got %d", got)
	}

	journal := g.Journal()
	if len(journal) != 2 {
		t.Fatalf("expected 2 journaled transfers, got %d", len(journal))
	}
	if journal[0].Ref == "" || journal[0].Ref == journal[1].Ref {
		t.Errorf("expected distinct non-empty transfer refs")
	}
}

func TestSettlementGateway_FailedLegRevertsAppliedLegs(t *testing.T) {
	g := funds.NewSettlementGateway()
	ctx := context.Background()

	_ = g.Deposit(ctx, "alice", 1000)
	g.Block("bob")

	err := g.Payout(ctx,
		engine.Leg{To: "platform", Amount: 2},
		engine.Leg{To: "bob", Amount: 998},
	)
	if !errors.Is(err, funds.ErrRecipientBlocked) {
		t.Fatalf("expected ErrRecipientBlocked, got %v", err)
	}

	if got := g.Balance(); got != 1000 {
		t.Errorf("expected float restored to 1000, got %d", got)
	}
	if got := g.AccountBalance("platform"); got != 0 {
		t.Errorf("expected applied fee leg reverted, got %d", got)
	}
	if got := g.AccountBalance("bob"); got != 0 {
		t.Errorf("expected no credit to blocked recipient, got %d", got)
	}
	if journal := g.Journal(); len(journal) != 0 {
		t.Errorf("expected no journaled transfers after revert, got %d", len(journal))
	}
}

func TestSettlementGateway_HookErrorFailsWholePayout(t *testing.T) {
	g := funds.NewSettlementGateway()
	ctx := context.Background()

	_ = g.Deposit(ctx, "alice", 1000)

	hookErr := errors.New("receiver rejected")
	g.OnReceive("bob", func(int64) error {
		return hookErr
	})

	err := g.Payout(ctx,
		engine.Leg{To: "platform", Amount: 2},
		engine.Leg{To: "bob", Amount: 998},
	)
	if !errors.Is(err, hookErr) {
		t.Fatalf("expected hook error to surface, got %v", err)
	}

	if got := g.Balance(); got != 1000 {
		t.Errorf("expected float restored, got %d", got)
	}
	if got := g.AccountBalance("bob"); got != 0 {
		t.Errorf("expected rejected credit reverted, got %d", got)
	}
	if got := g.AccountBalance("platform"); got != 0 {
		t.Errorf("expected fee leg reverted, got %d", got)
	}
}

func TestSettlementGateway_HookObservesCredit(t *testing.T) {
	g := funds.NewSettlementGateway()
	ctx := context.Background()

	_ = g.Deposit(ctx, "alice", 500)

	var seen int64
	g.OnReceive("bob", func(amount int64) error {
		seen = g.AccountBalance("bob")
		return nil
	})

	if err := g.Payout(ctx, engine.Leg{To: "bob", Amount: 500}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if seen != 500 {
		t.Errorf("expected hook to observe committed credit of 500, got %d", seen)
	}
}
