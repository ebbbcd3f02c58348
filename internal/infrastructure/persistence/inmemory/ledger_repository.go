package inmemory

import (
	"slices"
	"sync"

	"github.com/rdcosta-dev/paysplit-go/internal/domain/payment"
)

// LedgerRepository keeps payment records and the per-owner index in memory.
// Ids are allocated densely starting at 1.
type LedgerRepository struct {
	mu         sync.RWMutex
	payments   map[int64]*payment.Payment
	ownerIndex map[string][]int64
	lastID     int64
}

func NewLedgerRepository() *LedgerRepository {
	return &LedgerRepository{
		payments:   make(map[int64]*payment.Payment),
		ownerIndex: make(map[string][]int64),
	}
}

func (r *LedgerRepository) Create(p *payment.Payment) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.lastID++
	stored := *p
	stored.ID = r.lastID
	stored.Status = payment.StatusPending
	stored.Exists = true

	r.payments[stored.ID] = &stored
	r.ownerIndex[stored.Payer] = append(r.ownerIndex[stored.Payer], stored.ID)

	return stored.ID, nil
}

func (r *LedgerRepository) FindByID(id int64) (*payment.Payment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.payments[id]
	if !ok {
		return nil, payment.ErrNotFound
	}

	found := *p
	return &found, nil
}

func (r *LedgerRepository) FindByOwner(owner string) ([]int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return slices.Clone(r.ownerIndex[owner]), nil
}

func (r *LedgerRepository) Count() (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.lastID, nil
}

func (r *LedgerRepository) Transition(id int64, from, to payment.Status) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.payments[id]
	if !ok {
		return payment.ErrNotFound
	}
	if p.Status != from {
		return payment.ErrInvalidTransition
	}

	p.Status = to
	return nil
}

func (r *LedgerRepository) Discard(id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.payments[id]
	if !ok {
		return payment.ErrNotFound
	}
	if id != r.lastID {
		return payment.ErrInvalidTransition
	}

	delete(r.payments, id)
	ids := r.ownerIndex[p.Payer]
	r.ownerIndex[p.Payer] = ids[:len(ids)-1]
	r.lastID--

	return nil
}

func (r *LedgerRepository) PendingTotal() (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var total int64
	for _, p := range r.payments {
		if p.Status == payment.StatusPending {
			total += p.Amount
		}
	}

	return total, nil
}
