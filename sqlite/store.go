// Package sqlite stores a ledger in a SQLite database.
//
// The whole collection is read and written at once, in a single database
// transaction, like the JSON file store.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/etnz/ledger"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	_ "modernc.org/sqlite"
)

const (
	primaryLedger   = "primary"
	secondaryLedger = "secondary"

	keyFiat      = "fiat"
	keyWatermark = "checked_up_to"
)

// Store implements ledger.Store on a SQLite database.
type Store struct {
	db *sql.DB
}

var _ ledger.Store = (*Store)(nil)

// Open opens or creates the database at path and migrates its schema.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	if err := runMigrations(path); err != nil {
		db.Close()
		return nil, err
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Load reads the whole collection. An empty database is an empty collection.
func (s *Store) Load(ctx context.Context) (*ledger.Accounts, error) {
	tx, err := s.db.BeginTx(ctx, &sql.TxOptions{ReadOnly: true})
	if err != nil {
		return nil, fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	var snap ledger.Snapshot
	if err := loadMeta(ctx, tx, &snap); err != nil {
		return nil, err
	}
	ids, err := loadAccounts(ctx, tx, &snap)
	if err != nil {
		return nil, err
	}
	for i, id := range ids {
		a := &snap.Accounts[i]
		if a.Transactions, err = loadTransactions(ctx, tx, id, primaryLedger); err != nil {
			return nil, fmt.Errorf("account %q: %w", a.Name, err)
		}
		if a.Secondary != nil {
			if a.Secondary.Transactions, err = loadTransactions(ctx, tx, id, secondaryLedger); err != nil {
				return nil, fmt.Errorf("account %q: %w", a.Name, err)
			}
		}
		if a.Recurring, err = loadRecurring(ctx, tx, id); err != nil {
			return nil, fmt.Errorf("account %q: %w", a.Name, err)
		}
	}
	l, err := ledger.FromSnapshot(snap)
	if err != nil {
		return nil, fmt.Errorf("invalid ledger: %w", err)
	}
	return l, nil
}

func loadMeta(ctx context.Context, tx *sql.Tx, snap *ledger.Snapshot) error {
	rows, err := tx.QueryContext(ctx, "SELECT key, value FROM meta")
	if err != nil {
		return fmt.Errorf("query meta: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return fmt.Errorf("scan meta: %w", err)
		}
		switch key {
		case keyFiat:
			if err := snap.Fiat.UnmarshalText([]byte(value)); err != nil {
				return fmt.Errorf("meta %s: %w", key, err)
			}
		case keyWatermark:
			if value == "" {
				continue
			}
			t, err := time.Parse(time.RFC3339Nano, value)
			if err != nil {
				return fmt.Errorf("meta %s: %w", key, err)
			}
			snap.Watermark = t.UTC()
		}
	}
	return rows.Err()
}

func loadAccounts(ctx context.Context, tx *sql.Tx, snap *ledger.Snapshot) ([]int64, error) {
	rows, err := tx.QueryContext(ctx, "SELECT position, name, currency, secondary_currency FROM accounts ORDER BY position")
	if err != nil {
		return nil, fmt.Errorf("query accounts: %w", err)
	}
	defer rows.Close()
	var ids []int64
	for rows.Next() {
		var (
			id        int64
			a         ledger.AccountSnapshot
			currency  string
			secondary sql.NullString
		)
		if err := rows.Scan(&id, &a.Name, &currency, &secondary); err != nil {
			return nil, fmt.Errorf("scan account: %w", err)
		}
		if err := a.Currency.UnmarshalText([]byte(currency)); err != nil {
			return nil, fmt.Errorf("account %q: %w", a.Name, err)
		}
		if secondary.Valid {
			a.Secondary = &ledger.SecondarySnapshot{}
			if err := a.Secondary.Currency.UnmarshalText([]byte(secondary.String)); err != nil {
				return nil, fmt.Errorf("account %q: %w", a.Name, err)
			}
		}
		ids = append(ids, id)
		snap.Accounts = append(snap.Accounts, a)
	}
	return ids, rows.Err()
}

func loadTransactions(ctx context.Context, tx *sql.Tx, account int64, kind string) ([]ledger.Transaction, error) {
	rows, err := tx.QueryContext(ctx,
		"SELECT id, amount, balance, comment, date FROM transactions WHERE account = ? AND ledger = ? ORDER BY position",
		account, kind)
	if err != nil {
		return nil, fmt.Errorf("query %s transactions: %w", kind, err)
	}
	defer rows.Close()
	var txs []ledger.Transaction
	for rows.Next() {
		var (
			t                   ledger.Transaction
			id, amount, balance string
			date                int64
		)
		if err := rows.Scan(&id, &amount, &balance, &t.Comment, &date); err != nil {
			return nil, fmt.Errorf("scan transaction: %w", err)
		}
		if id != "" {
			if t.ID, err = uuid.Parse(id); err != nil {
				return nil, fmt.Errorf("transaction id %q: %w", id, err)
			}
		}
		if t.Amount, err = decimal.NewFromString(amount); err != nil {
			return nil, fmt.Errorf("transaction %s amount: %w", id, err)
		}
		if t.Balance, err = decimal.NewFromString(balance); err != nil {
			return nil, fmt.Errorf("transaction %s balance: %w", id, err)
		}
		t.Date = time.Unix(date, 0).UTC()
		txs = append(txs, t)
	}
	return txs, rows.Err()
}

func loadRecurring(ctx context.Context, tx *sql.Tx, account int64) ([]ledger.RecurringTransaction, error) {
	rows, err := tx.QueryContext(ctx, "SELECT amount, comment FROM recurring WHERE account = ? ORDER BY position", account)
	if err != nil {
		return nil, fmt.Errorf("query recurring: %w", err)
	}
	defer rows.Close()
	var out []ledger.RecurringTransaction
	for rows.Next() {
		var (
			r      ledger.RecurringTransaction
			amount string
		)
		if err := rows.Scan(&amount, &r.Comment); err != nil {
			return nil, fmt.Errorf("scan recurring: %w", err)
		}
		if r.Amount, err = decimal.NewFromString(amount); err != nil {
			return nil, fmt.Errorf("recurring amount: %w", err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// Save replaces the content of the database with the collection. On error
// the previous content is kept.
func (s *Store) Save(ctx context.Context, l *ledger.Accounts) (err error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer func() {
		if err != nil {
			err = errors.Join(err, tx.Rollback())
		}
	}()

	for _, table := range []string{"recurring", "transactions", "accounts", "meta"} {
		if _, err := tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return fmt.Errorf("clear %s: %w", table, err)
		}
	}

	snap := l.Snapshot()
	watermark := ""
	if !snap.Watermark.IsZero() {
		watermark = snap.Watermark.UTC().Format(time.RFC3339Nano)
	}
	if _, err := tx.ExecContext(ctx, "INSERT INTO meta (key, value) VALUES (?, ?), (?, ?)",
		keyFiat, snap.Fiat.String(), keyWatermark, watermark); err != nil {
		return fmt.Errorf("insert meta: %w", err)
	}

	for i, a := range snap.Accounts {
		var secondary sql.NullString
		if a.Secondary != nil {
			secondary = sql.NullString{String: a.Secondary.Currency.String(), Valid: true}
		}
		if _, err := tx.ExecContext(ctx, "INSERT INTO accounts (position, name, currency, secondary_currency) VALUES (?, ?, ?, ?)",
			i, a.Name, a.Currency.String(), secondary); err != nil {
			return fmt.Errorf("insert account %q: %w", a.Name, err)
		}
		if err := insertTransactions(ctx, tx, i, primaryLedger, a.Transactions); err != nil {
			return fmt.Errorf("account %q: %w", a.Name, err)
		}
		if a.Secondary != nil {
			if err := insertTransactions(ctx, tx, i, secondaryLedger, a.Secondary.Transactions); err != nil {
				return fmt.Errorf("account %q: %w", a.Name, err)
			}
		}
		for j, r := range a.Recurring {
			if _, err := tx.ExecContext(ctx, "INSERT INTO recurring (account, position, amount, comment) VALUES (?, ?, ?, ?)",
				i, j, r.Amount.String(), r.Comment); err != nil {
				return fmt.Errorf("account %q: insert recurring: %w", a.Name, err)
			}
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

func insertTransactions(ctx context.Context, tx *sql.Tx, account int, kind string, txs []ledger.Transaction) error {
	stmt, err := tx.PrepareContext(ctx,
		"INSERT INTO transactions (account, ledger, position, id, amount, balance, comment, date) VALUES (?, ?, ?, ?, ?, ?, ?, ?)")
	if err != nil {
		return fmt.Errorf("prepare: %w", err)
	}
	defer stmt.Close()
	for i, t := range txs {
		id := ""
		if t.ID != uuid.Nil {
			id = t.ID.String()
		}
		if _, err := stmt.ExecContext(ctx, account, kind, i, id, t.Amount.String(), t.Balance.String(), t.Comment, t.Date.Unix()); err != nil {
			return fmt.Errorf("insert %s transaction %d: %w", kind, i, err)
		}
	}
	return nil
}
