package export

import (
	"context"
	"database/sql"
	_ "embed"
	"fmt"

	_ "github.com/mattn/go-sqlite3"

	"github.com/baxley/shopbook/internal/ledger"
)

//go:embed schema.sql
var schemaSQL string

// Archive is a SQLite database holding an exported copy of the ledger.
type Archive struct {
	db *sql.DB
}

// OpenArchive creates or opens the archive database at path and applies
// pragmas and the schema. Safe to call on an existing archive.
func OpenArchive(path string) (*Archive, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open archive: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("open archive: %w", err)
	}

	// SQLite allows one writer; a single connection avoids SQLITE_BUSY.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	for _, pragma := range []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA foreign_keys = ON",
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("apply %q: %w", pragma, err)
		}
	}

	if _, err := db.Exec(schemaSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}
	return &Archive{db: db}, nil
}

// Close closes the archive database.
func (a *Archive) Close() error {
	if a.db == nil {
		return nil
	}
	return a.db.Close()
}

// Export writes every store into the archive inside one transaction.
// Rows are replaced by primary key, so exporting twice is idempotent.
func (a *Archive) Export(ctx context.Context,
	products *ledger.ProductStore,
	customers *ledger.CustomerStore,
	txns *ledger.TransactionStore,
	financial *ledger.FinancialStore,
) error {
	tx, err := a.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("export: begin tx: %w", err)
	}
	defer tx.Rollback() // No-op if committed

	for _, p := range products.All() {
		_, err := tx.ExecContext(ctx, `
			INSERT OR REPLACE INTO products
			(id, name, price, quantity, category, description)
			VALUES (?, ?, ?, ?, ?, ?)
		`, p.ID, p.Name, p.Price, p.Quantity, p.Category, p.Description)
		if err != nil {
			return fmt.Errorf("export products: %w", err)
		}
	}

	for _, c := range customers.All() {
		_, err := tx.ExecContext(ctx, `
			INSERT OR REPLACE INTO customers
			(id, name, phone, email, address, notes)
			VALUES (?, ?, ?, ?, ?, ?)
		`, c.ID, c.Name, c.Phone, c.Email, c.Address, c.Notes)
		if err != nil {
			return fmt.Errorf("export customers: %w", err)
		}
	}

	for _, t := range txns.All() {
		_, err := tx.ExecContext(ctx, `
			INSERT OR REPLACE INTO transactions
			(id, date, customer_id, total, payment_method, status)
			VALUES (?, ?, ?, ?, ?, ?)
		`, t.ID, t.Date, t.CustomerID, t.Total, t.PaymentMethod, t.Status)
		if err != nil {
			return fmt.Errorf("export transactions: %w", err)
		}
		if _, err := tx.ExecContext(ctx,
			`DELETE FROM transaction_items WHERE transaction_id = ?`, t.ID); err != nil {
			return fmt.Errorf("export transaction items: %w", err)
		}
		for i, it := range t.Items {
			_, err := tx.ExecContext(ctx, `
				INSERT INTO transaction_items
				(transaction_id, line, product_id, name, price, quantity, subtotal)
				VALUES (?, ?, ?, ?, ?, ?, ?)
			`, t.ID, i, it.ProductID, it.Name, it.Price, it.Quantity, it.Subtotal)
			if err != nil {
				return fmt.Errorf("export transaction items: %w", err)
			}
		}
	}

	// Financial records have no natural key; replace the table wholesale.
	if _, err := tx.ExecContext(ctx, `DELETE FROM financial_records`); err != nil {
		return fmt.Errorf("export financial records: %w", err)
	}
	for _, r := range financial.All() {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO financial_records
			(date, category, amount, type, description)
			VALUES (?, ?, ?, ?, ?)
		`, r.Date, r.Category, r.Amount, r.Type, r.Description)
		if err != nil {
			return fmt.Errorf("export financial records: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("export: commit: %w", err)
	}
	return nil
}

// SQLite exports every store to a new or existing archive at path.
func SQLite(ctx context.Context, path string,
	products *ledger.ProductStore,
	customers *ledger.CustomerStore,
	txns *ledger.TransactionStore,
	financial *ledger.FinancialStore,
) error {
	a, err := OpenArchive(path)
	if err != nil {
		return err
	}
	defer a.Close()
	return a.Export(ctx, products, customers, txns, financial)
}
