package sqlite_test

import (
	"database/sql"
	"errors"
	"path/filepath"
	"testing"
	"time"

	_ "modernc.org/sqlite"

	"github.com/rdcosta-dev/paysplit-go/internal/domain/payment"
	"github.com/rdcosta-dev/paysplit-go/internal/infrastructure/persistence/sqlite"
)

func setupTestDB(t *testing.T) *sql.DB {
	// A file-backed DB is required: with ":memory:" each pooled
	// connection gets its own separate empty database.
	db, err := sql.Open("sqlite", filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatal(err)
	}

	if err := sqlite.RunMigrations(db); err != nil {
		t.Fatal(err)
	}

	return db
}

func newRecord(payer, recipient string, amount int64) *payment.Payment {
	return &payment.Payment{
		Payer:     payer,
		Recipient: recipient,
		Amount:    amount,
		Timestamp: time.Now().UTC(),
		Status:    payment.StatusPending,
	}
}

func TestLedgerRepository_CreateAndFind(t *testing.T) {
	repo := sqlite.NewLedgerRepository(setupTestDB(t))

	id, err := repo.Create(newRecord("alice", "bob", 1000))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if id != 1 {
		t.Errorf("expected first id 1, got %d", id)
	}

	p, err := repo.FindByID(id)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.Payer != "alice" || p.Recipient != "bob" || p.Amount != 1000 {
		t.Errorf("unexpected record: %+v", p)
	}
	if p.Status != payment.StatusPending {
		t.Errorf("expected PENDING, got %s", p.Status)
	}
	if !p.Exists {
		t.Errorf("expected Exists to be set")
	}

	if _, err := repo.FindByID(42); !errors.Is(err, payment.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestLedgerRepository_OwnerIndexOrder(t *testing.T) {
	repo := sqlite.NewLedgerRepository(setupTestDB(t))

	id1, _ := repo.Create(newRecord("alice", "bob", 100))
	_, _ = repo.Create(newRecord("carol", "bob", 100))
	id3, _ := repo.Create(newRecord("alice", "dan", 100))

	ids, err := repo.FindByOwner("alice")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(ids) != 2 || ids[0] != id1 || ids[1] != id3 {
		t.Errorf("expected [%d %d], got %v", id1, id3, ids)
	}
}

func TestLedgerRepository_TransitionCompareAndSwap(t *testing.T) {
	repo := sqlite.NewLedgerRepository(setupTestDB(t))
	id, _ := repo.Create(newRecord("alice", "bob", 100))

	if err := repo.Transition(id, payment.StatusPending, payment.StatusCompleted); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	err := repo.Transition(id, payment.StatusPending, payment.StatusCancelled)
	if !errors.Is(err, payment.ErrInvalidTransition) {
		t.Errorf("expected ErrInvalidTransition, got %v", err)
	}

	err = repo.Transition(42, payment.StatusPending, payment.StatusCompleted)
	if !errors.Is(err, payment.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestLedgerRepository_DiscardReusesIDSlot(t *testing.T) {
	repo := sqlite.NewLedgerRepository(setupTestDB(t))

	id1, _ := repo.Create(newRecord("alice", "bob", 100))
	id2, _ := repo.Create(newRecord("alice", "carol", 200))

	if err := repo.Discard(id1); !errors.Is(err, payment.ErrInvalidTransition) {
		t.Errorf("expected only the last id to be discardable, got %v", err)
	}

	if err := repo.Discard(id2); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := repo.FindByID(id2); !errors.Is(err, payment.ErrNotFound) {
		t.Errorf("expected discarded record to be gone, got %v", err)
	}

	ids, _ := repo.FindByOwner("alice")
	if len(ids) != 1 || ids[0] != id1 {
		t.Errorf("expected owner index [%d], got %v", id1, ids)
	}

	reused, err := repo.Create(newRecord("dan", "bob", 300))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if reused != id2 {
		t.Errorf("expected id %d to be reused, got %d", id2, reused)
	}

	count, _ := repo.Count()
	if count != 2 {
		t.Errorf("expected count 2, got %d", count)
	}
}

func TestLedgerRepository_PendingTotal(t *testing.T) {
	repo := sqlite.NewLedgerRepository(setupTestDB(t))

	id1, _ := repo.Create(newRecord("alice", "bob", 100))
	_, _ = repo.Create(newRecord("alice", "carol", 250))

	total, err := repo.PendingTotal()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if total != 350 {
		t.Errorf("expected pending total 350, got %d", total)
	}

	_ = repo.Transition(id1, payment.StatusPending, payment.StatusRefunded)

	total, _ = repo.PendingTotal()
	if total != 250 {
		t.Errorf("expected pending total 250, got %d", total)
	}
}
