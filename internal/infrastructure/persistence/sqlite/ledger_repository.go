package sqlite

import (
	"database/sql"
	"errors"

	"github.com/rdcosta-dev/paysplit-go/internal/domain/payment"
)

type LedgerRepository struct {
	db *sql.DB
}

func NewLedgerRepository(db *sql.DB) *LedgerRepository {
	return &LedgerRepository{db: db}
}

func (r *LedgerRepository) Create(p *payment.Payment) (int64, error) {
	tx, err := r.db.Begin()
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	res, err := tx.Exec(
		`INSERT INTO payments
		 (payer, recipient, amount, description, created_at, status)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		p.Payer,
		p.Recipient,
		p.Amount,
		p.Description,
		p.Timestamp,
		string(payment.StatusPending),
	)
	if err != nil {
		return 0, err
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}

	if _, err := tx.Exec(
		`INSERT INTO owner_index (owner, payment_id) VALUES (?, ?)`,
		p.Payer,
		id,
	); err != nil {
		return 0, err
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}

	return id, nil
}

func (r *LedgerRepository) FindByID(id int64) (*payment.Payment, error) {
	row := r.db.QueryRow(
		`SELECT id, payer, recipient, amount, description, created_at, status
		 FROM payments
		 WHERE id = ?`,
		id,
	)

	var p payment.Payment
	var status string

	if err := row.Scan(
		&p.ID,
		&p.Payer,
		&p.Recipient,
		&p.Amount,
		&p.Description,
		&p.Timestamp,
		&status,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, payment.ErrNotFound
		}
		return nil, err
	}

	p.Status = payment.Status(status)
	p.Exists = true
	return &p, nil
}

func (r *LedgerRepository) FindByOwner(owner string) ([]int64, error) {
	rows, err := r.db.Query(
		`SELECT payment_id
		 FROM owner_index
		 WHERE owner = ?
		 ORDER BY rowid`,
		owner,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}

	return ids, rows.Err()
}

func (r *LedgerRepository) Count() (int64, error) {
	row := r.db.QueryRow(`SELECT COALESCE(MAX(id), 0) FROM payments`)

	var count int64
	if err := row.Scan(&count); err != nil {
		return 0, err
	}

	return count, nil
}

func (r *LedgerRepository) Transition(id int64, from, to payment.Status) error {
	res, err := r.db.Exec(
		`UPDATE payments
		 SET status = ?
		 WHERE id = ? AND status = ?`,
		string(to),
		id,
		string(from),
	)
	if err != nil {
		return err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		if _, err := r.FindByID(id); err != nil {
			return err
		}
		return payment.ErrInvalidTransition
	}

	return nil
}

func (r *LedgerRepository) Discard(id int64) error {
	tx, err := r.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	res, err := tx.Exec(
		`DELETE FROM payments
		 WHERE id = ? AND id = (SELECT MAX(id) FROM payments)`,
		id,
	)
	if err != nil {
		return err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		if _, err := r.FindByID(id); err != nil {
			return err
		}
		return payment.ErrInvalidTransition
	}

	if _, err := tx.Exec(
		`DELETE FROM owner_index WHERE payment_id = ?`,
		id,
	); err != nil {
		return err
	}

	return tx.Commit()
}

func (r *LedgerRepository) PendingTotal() (int64, error) {
	row := r.db.QueryRow(
		`SELECT COALESCE(SUM(amount), 0)
		 FROM payments
		 WHERE status = ?`,
		string(payment.StatusPending),
	)

	var total int64
	if err := row.Scan(&total); err != nil {
		return 0, err
	}

	return total, nil
}
