package sqlite

import "database/sql"

func RunMigrations(db *sql.DB) error {
	stmts := []string{

		// INTEGER PRIMARY KEY without AUTOINCREMENT: sqlite allocates
		// max(id)+1, so a discarded allocation is reused and ids stay dense.
		`CREATE TABLE IF NOT EXISTS payments (
			id INTEGER PRIMARY KEY,
			payer TEXT NOT NULL,
			recipient TEXT NOT NULL,
			amount INTEGER NOT NULL,
			description TEXT NOT NULL,
			created_at DATETIME NOT NULL,
			status TEXT NOT NULL
		);`,

		`CREATE TABLE IF NOT EXISTS owner_index (
			owner TEXT NOT NULL,
			payment_id INTEGER NOT NULL
		);`,

		`CREATE INDEX IF NOT EXISTS idx_owner_index_owner
			ON owner_index (owner);`,

		`CREATE TABLE IF NOT EXISTS outbox_events (
			id TEXT PRIMARY KEY,
			event_type TEXT NOT NULL,
			payload BLOB NOT NULL,
			published INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME NOT NULL
		);`,
	}

	for _, stmt := range stmts {
		if _, err := db.Exec(stmt); err != nil {
			return err
		}
	}

	return nil
}
