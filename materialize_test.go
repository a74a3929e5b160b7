package ledger

import (
	"testing"
	"time"
)

// newRecurringLedger returns a ledger with one account holding 100 and two
// recurring templates.
func newRecurringLedger(t *testing.T) (*Accounts, *Account) {
	t.Helper()
	l := New()
	a, _ := l.Add("checking", EUR)
	submit(t, a, on("2023-12-01"), [2]string{"100", "2023-12-01"})
	a.AddRecurring(d("-20"), "fees")
	a.AddRecurring(d("5"), "cashback")
	return l, a
}

func TestMaterialize(t *testing.T) {
	l, a := newRecurringLedger(t)
	now := time.Date(2024, 4, 15, 9, 30, 0, 0, time.UTC)

	if got := l.Materialize(now); got != 2 {
		t.Fatalf("Materialize() = %d, want 2", got)
	}
	txs := a.Transactions()
	if len(txs) != 3 {
		t.Fatalf("len(Transactions()) = %d, want 3", len(txs))
	}
	for i, want := range []string{"80", "85"} {
		tx := txs[i+1]
		if !tx.Date.Equal(on("2024-04-01")) {
			t.Errorf("txs[%d].Date = %v, want 2024-04-01", i+1, tx.Date)
		}
		if !tx.Balance.Equal(d(want)) {
			t.Errorf("txs[%d].Balance = %v, want %v", i+1, tx.Balance, want)
		}
	}
	if txs[1].Comment != "fees" || txs[2].Comment != "cashback" {
		t.Errorf("comments = %q, %q, want template order", txs[1].Comment, txs[2].Comment)
	}
	if !l.Watermark().Equal(now) {
		t.Errorf("Watermark() = %v, want %v", l.Watermark(), now)
	}
}

func TestMaterializeIdempotent(t *testing.T) {
	l, a := newRecurringLedger(t)
	now := time.Date(2024, 4, 15, 9, 30, 0, 0, time.UTC)
	l.Materialize(now)
	if got := l.Materialize(now); got != 0 {
		t.Errorf("second Materialize(now) = %d, want 0", got)
	}
	if got := l.Materialize(now.Add(24 * time.Hour)); got != 0 {
		t.Errorf("Materialize(later same month) = %d, want 0", got)
	}
	if n := len(a.Transactions()); n != 3 {
		t.Errorf("len(Transactions()) = %d, want 3", n)
	}
}

func TestMaterializeSkipsMissedMonths(t *testing.T) {
	l, a := newRecurringLedger(t)
	l.watermark = on("2024-01-01")
	if got := l.Materialize(time.Date(2024, 4, 15, 0, 0, 0, 0, time.UTC)); got != 2 {
		t.Fatalf("Materialize() = %d, want 2", got)
	}
	for _, tx := range a.Transactions()[1:] {
		if !tx.Date.Equal(on("2024-04-01")) {
			t.Errorf("materialized on %v, want only 2024-04-01", tx.Date)
		}
	}
}

func TestMaterializeFirstOfMonth(t *testing.T) {
	l, _ := newRecurringLedger(t)
	l.watermark = on("2024-02-15")

	midnight := on("2024-03-01")
	if got := l.Materialize(midnight); got != 0 {
		t.Errorf("Materialize(exactly midnight) = %d, want 0", got)
	}
	if got := l.Materialize(midnight.Add(time.Second)); got != 2 {
		t.Errorf("Materialize(one second after midnight) = %d, want 2", got)
	}
}

func TestMaterializeWatermarkNeverGoesBack(t *testing.T) {
	l, _ := newRecurringLedger(t)
	now := time.Date(2024, 4, 15, 0, 0, 0, 0, time.UTC)
	l.Materialize(now)
	if got := l.Materialize(now.AddDate(0, -2, 0)); got != 0 {
		t.Errorf("Materialize(past) = %d, want 0", got)
	}
	if !l.Watermark().Equal(now) {
		t.Errorf("Watermark() = %v, want %v", l.Watermark(), now)
	}
}

func TestMaterializeNoTemplates(t *testing.T) {
	l := New()
	l.Add("checking", EUR)
	now := time.Date(2024, 4, 15, 0, 0, 0, 0, time.UTC)
	if got := l.Materialize(now); got != 0 {
		t.Errorf("Materialize() = %d, want 0", got)
	}
	if !l.Watermark().Equal(now) {
		t.Errorf("Watermark() = %v, want %v", l.Watermark(), now)
	}
}
