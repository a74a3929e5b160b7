package ledger

import (
	"slices"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// book is a chronologically sorted list of transactions.
type book struct {
	txs []Transaction
}

// balance returns the balance of the most recent transaction, or zero.
func (b *book) balance() decimal.Decimal {
	if len(b.txs) == 0 {
		return decimal.Zero
	}
	return b.txs[len(b.txs)-1].Balance
}

// append adds transactions and keeps the book sorted.
func (b *book) append(txs ...Transaction) {
	b.txs = append(b.txs, txs...)
	b.stableSort()
}

// stableSort sorts the book by date. Transactions on the same date keep
// their relative order.
func (b *book) stableSort() {
	sort.SliceStable(b.txs, func(i, j int) bool {
		return b.txs[i].Date.Before(b.txs[j].Date)
	})
}

// submit parses the raw input and appends a transaction whose balance is the
// current balance plus the amount.
func (b *book) submit(rawAmount, rawDate, comment string, now time.Time) (Transaction, error) {
	amount, err := ParseAmount("amount", rawAmount)
	if err != nil {
		return Transaction{}, err
	}
	on, err := parseDate(rawDate, now)
	if err != nil {
		return Transaction{}, err
	}
	tx := newTransaction(amount, b.balance().Add(amount), comment, on)
	b.append(tx)
	return tx, nil
}

// remove deletes the transaction at index i. The order of the others is
// preserved.
func (b *book) remove(what string, i int) error {
	if i < 0 || i >= len(b.txs) {
		return &IndexOutOfRangeError{What: what, Index: i, Len: len(b.txs)}
	}
	b.txs = slices.Delete(b.txs, i, i+1)
	return nil
}

// sum returns the sum of amounts in [start, end).
func (b *book) sum(start, end time.Time) decimal.Decimal {
	total := decimal.Zero
	for _, tx := range b.txs {
		if !tx.Date.Before(start) && tx.Date.Before(end) {
			total = total.Add(tx.Amount)
		}
	}
	return total
}

// total returns the sum of all amounts.
func (b *book) total() decimal.Decimal {
	total := decimal.Zero
	for _, tx := range b.txs {
		total = total.Add(tx.Amount)
	}
	return total
}

// between returns a copy of the transactions in [start, end).
func (b *book) between(start, end time.Time) []Transaction {
	var txs []Transaction
	for _, tx := range b.txs {
		if !tx.Date.Before(start) && tx.Date.Before(end) {
			txs = append(txs, tx)
		}
	}
	return txs
}

// find returns the index of the transaction with this id, or -1.
func (b *book) find(id uuid.UUID) int {
	if id == uuid.Nil {
		return -1
	}
	return slices.IndexFunc(b.txs, func(tx Transaction) bool { return tx.ID == id })
}

func (b *book) transactions() []Transaction { return slices.Clone(b.txs) }
