package payment

type Repository interface {
	// Create allocates the next id, stores p as Pending and appends the id
	// to the payer's owner index.
	Create(p *Payment) (int64, error)
	FindByID(id int64) (*Payment, error)
	// FindByOwner returns the owner's payment ids in creation order.
	FindByOwner(owner string) ([]int64, error)
	// Count returns the highest allocated id.
	Count() (int64, error)
	// Transition compares-and-swaps the status. ErrInvalidTransition if the
	// current status is not from, ErrNotFound if id was never created.
	Transition(id int64, from, to Status) error
	// Discard unwinds the most recent allocation. Only the highest id may
	// be discarded; the slot is reused by the next Create.
	Discard(id int64) error
	// PendingTotal sums the amounts of all Pending payments.
	PendingTotal() (int64, error)
}
