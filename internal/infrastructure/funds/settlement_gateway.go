package funds

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/rdcosta-dev/paysplit-go/internal/application/engine"
)

var ErrRecipientBlocked = errors.New("recipient rejected transfer")

// ReceiveHook runs after an identity is credited. It models recipient-side
// code outside the platform's control: it may call back into the engine,
// and a non-nil error fails the leg (and with it the whole payout).
type ReceiveHook func(amount int64) error

// Transfer is one journaled leg of a settled payout.
type Transfer struct {
	Ref    string
	To     string
	Amount int64
	At     time.Time
}

// SettlementGateway keeps the platform float and per-identity balances in
// memory. Payout applies all legs or none: legs already credited are
// reverted if a later leg fails.
type SettlementGateway struct {
	mu       sync.Mutex
	float    int64
	accounts map[string]int64
	blocked  map[string]bool
	hooks    map[string]ReceiveHook
	journal  []Transfer
}

func NewSettlementGateway() *SettlementGateway {
	return &SettlementGateway{
		accounts: make(map[string]int64),
		blocked:  make(map[string]bool),
		hooks:    make(map[string]ReceiveHook),
	}
}

func (g *SettlementGateway) Deposit(ctx context.Context, from string, amount int64) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.float += amount
	return nil
}

func (g *SettlementGateway) Payout(ctx context.Context, legs ...engine.Leg) error {
	applied := make([]engine.Leg, 0, len(legs))

	for _, leg := range legs {
		if err := g.apply(leg); err != nil {
			g.revert(applied)
			return err
		}
		applied = append(applied, leg)

		// The hook runs outside the lock: control is leaving the platform
		// and the receiver may reenter the engine.
		if hook := g.hook(leg.To); hook != nil {
			if err := hook(leg.Amount); err != nil {
				g.revert(applied)
				return err
			}
		}
	}

	return nil
}

func (g *SettlementGateway) apply(leg engine.Leg) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.blocked[leg.To] {
		return ErrRecipientBlocked
	}

	// The float may go negative: a refund after completion draws platform
	// liquidity, since the fee and recipient shares are already disbursed.
	g.float -= leg.Amount
	g.accounts[leg.To] += leg.Amount
	g.journal = append(g.journal, Transfer{
		Ref:    uuid.NewString(),
		To:     leg.To,
		Amount: leg.Amount,
		At:     time.Now().UTC(),
	})

	return nil
}

func (g *SettlementGateway) revert(applied []engine.Leg) {
	g.mu.Lock()
	defer g.mu.Unlock()

	for _, leg := range applied {
		g.accounts[leg.To] -= leg.Amount
		g.float += leg.Amount
		if len(g.journal) > 0 {
			g.journal = g.journal[:len(g.journal)-1]
		}
	}
}

func (g *SettlementGateway) hook(to string) ReceiveHook {
	g.mu.Lock()
	defer g.mu.Unlock()

	return g.hooks[to]
}

// Balance returns the platform float.
func (g *SettlementGateway) Balance() int64 {
	g.mu.Lock()
	defer g.mu.Unlock()

	return g.float
}

// AccountBalance returns the total credited to an identity.
func (g *SettlementGateway) AccountBalance(id string) int64 {
	g.mu.Lock()
	defer g.mu.Unlock()

	return g.accounts[id]
}

// Block makes every transfer to the identity fail.
func (g *SettlementGateway) Block(id string) {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.blocked[id] = true
}

// OnReceive installs a receive hook for an identity.
func (g *SettlementGateway) OnReceive(id string, hook ReceiveHook) {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.hooks[id] = hook
}

// Journal returns a copy of the settled transfer legs.
func (g *SettlementGateway) Journal() []Transfer {
	g.mu.Lock()
	defer g.mu.Unlock()

	out := make([]Transfer, len(g.journal))
	copy(out, g.journal)
	return out
}
