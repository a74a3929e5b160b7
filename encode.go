package ledger

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

func init() {
	decimal.MarshalJSONWithoutQuotes = true
}

// The persisted JSON shape:
//
//	{
//	  "fiat": "fiat:EUR",
//	  "checked_up_to": 1712000000,
//	  "accounts": [{
//	    "name": "wallet",
//	    "currency": "crypto:ETH",
//	    "transactions": [{"id": "…", "amount": 0, "balance": 3000, "comment": "…", "date": 1712000000}],
//	    "transactions_secondary": {"currency": "crypto:ETH", "transactions": […]},
//	    "transactions_monthly": [{"amount": -20, "comment": "fees"}]
//	  }]
//	}
//
// Dates are seconds since the Unix epoch.

type snapshotJSON struct {
	Fiat        Currency      `json:"fiat,omitempty"`
	CheckedUpTo int64         `json:"checked_up_to"`
	Accounts    []accountJSON `json:"accounts"`
}

type accountJSON struct {
	Name         string            `json:"name"`
	Currency     Currency          `json:"currency"`
	Transactions []transactionJSON `json:"transactions"`
	Secondary    *secondaryJSON    `json:"transactions_secondary,omitempty"`
	Monthly      []recurringJSON   `json:"transactions_monthly"`
}

type secondaryJSON struct {
	Currency     Currency          `json:"currency"`
	Transactions []transactionJSON `json:"transactions"`
}

type transactionJSON struct {
	ID      string          `json:"id,omitempty"`
	Amount  decimal.Decimal `json:"amount"`
	Balance decimal.Decimal `json:"balance"`
	Comment string          `json:"comment"`
	Date    int64           `json:"date"`
}

type recurringJSON struct {
	Amount  decimal.Decimal `json:"amount"`
	Comment string          `json:"comment"`
}

// Encode writes the collection as an indented JSON document.
func Encode(w io.Writer, l *Accounts) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(toJSON(l.Snapshot())); err != nil {
		return fmt.Errorf("failed to encode ledger: %w", err)
	}
	return nil
}

// Decode reads a collection written by Encode.
func Decode(r io.Reader) (*Accounts, error) {
	var doc snapshotJSON
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("could not decode ledger: %w", err)
	}
	s, err := fromJSON(doc)
	if err != nil {
		return nil, fmt.Errorf("could not decode ledger: %w", err)
	}
	l, err := FromSnapshot(s)
	if err != nil {
		return nil, fmt.Errorf("invalid ledger: %w", err)
	}
	return l, nil
}

func toJSON(s Snapshot) snapshotJSON {
	doc := snapshotJSON{
		Fiat:        s.Fiat,
		CheckedUpTo: watermarkSeconds(s.Watermark),
		Accounts:    make([]accountJSON, 0, len(s.Accounts)),
	}
	for _, a := range s.Accounts {
		aj := accountJSON{
			Name:         a.Name,
			Currency:     a.Currency,
			Transactions: transactionsToJSON(a.Transactions),
			Monthly:      make([]recurringJSON, 0, len(a.Recurring)),
		}
		if a.Secondary != nil {
			aj.Secondary = &secondaryJSON{
				Currency:     a.Secondary.Currency,
				Transactions: transactionsToJSON(a.Secondary.Transactions),
			}
		}
		for _, r := range a.Recurring {
			aj.Monthly = append(aj.Monthly, recurringJSON{Amount: r.Amount, Comment: r.Comment})
		}
		doc.Accounts = append(doc.Accounts, aj)
	}
	return doc
}

func fromJSON(doc snapshotJSON) (Snapshot, error) {
	s := Snapshot{Fiat: doc.Fiat}
	if doc.CheckedUpTo != 0 {
		s.Watermark = time.Unix(doc.CheckedUpTo, 0).UTC()
	}
	for _, aj := range doc.Accounts {
		txs, err := transactionsFromJSON(aj.Transactions)
		if err != nil {
			return Snapshot{}, fmt.Errorf("account %q: %w", aj.Name, err)
		}
		a := AccountSnapshot{Name: aj.Name, Currency: aj.Currency, Transactions: txs}
		if aj.Secondary != nil {
			txs, err := transactionsFromJSON(aj.Secondary.Transactions)
			if err != nil {
				return Snapshot{}, fmt.Errorf("account %q: %w", aj.Name, err)
			}
			a.Secondary = &SecondarySnapshot{Currency: aj.Secondary.Currency, Transactions: txs}
		}
		for _, r := range aj.Monthly {
			a.Recurring = append(a.Recurring, RecurringTransaction{Amount: r.Amount, Comment: r.Comment})
		}
		s.Accounts = append(s.Accounts, a)
	}
	return s, nil
}

func transactionsToJSON(txs []Transaction) []transactionJSON {
	out := make([]transactionJSON, 0, len(txs))
	for _, tx := range txs {
		tj := transactionJSON{
			Amount:  tx.Amount,
			Balance: tx.Balance,
			Comment: tx.Comment,
			Date:    tx.Date.Unix(),
		}
		if tx.ID != uuid.Nil {
			tj.ID = tx.ID.String()
		}
		out = append(out, tj)
	}
	return out
}

func transactionsFromJSON(in []transactionJSON) ([]Transaction, error) {
	txs := make([]Transaction, 0, len(in))
	for i, tj := range in {
		tx := Transaction{
			Amount:  tj.Amount,
			Balance: tj.Balance,
			Comment: tj.Comment,
			Date:    time.Unix(tj.Date, 0).UTC(),
		}
		if tj.ID != "" {
			id, err := uuid.Parse(tj.ID)
			if err != nil {
				return nil, fmt.Errorf("transaction %d: invalid id %q: %w", i, tj.ID, err)
			}
			tx.ID = id
		}
		txs = append(txs, tx)
	}
	return txs, nil
}

// watermarkSeconds rounds the watermark up to the second, so that a
// reloaded watermark is never before the one in memory.
func watermarkSeconds(t time.Time) int64 {
	if t.IsZero() {
		return 0
	}
	s := t.Unix()
	if t.Nanosecond() > 0 {
		s++
	}
	return s
}
