package ledger

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestAccountsAdd(t *testing.T) {
	l := New()
	if _, err := l.Add("checking", EUR); err != nil {
		t.Fatalf("Add() unexpected error: %v", err)
	}
	if _, err := l.Add(" checking ", USD); !errors.Is(err, ErrAccountExists) {
		t.Errorf("Add(duplicate) error = %v, want ErrAccountExists", err)
	}
	if _, err := l.Add("wallet", Crypto("")); !errors.Is(err, ErrInvalidCurrency) {
		t.Errorf("Add(empty crypto) error = %v, want ErrInvalidCurrency", err)
	}
	if l.Len() != 1 {
		t.Errorf("Len() = %d, want 1", l.Len())
	}
	if _, err := l.Account("nope"); !errors.Is(err, ErrAccountNotFound) {
		t.Errorf("Account(nope) error = %v, want ErrAccountNotFound", err)
	}
}

func TestAccountsDelete(t *testing.T) {
	l := New()
	for _, name := range []string{"a", "b", "c"} {
		l.Add(name, EUR)
	}
	if err := l.Delete(1); err != nil {
		t.Fatalf("Delete(1) unexpected error: %v", err)
	}
	if err := l.DeleteNamed("c"); err != nil {
		t.Fatalf("DeleteNamed(c) unexpected error: %v", err)
	}
	var names []string
	for _, a := range l.All() {
		names = append(names, a.Name())
	}
	if want := []string{"a"}; !cmp.Equal(names, want) {
		t.Errorf("names (-want +got):\n%s", cmp.Diff(want, names))
	}
	if err := l.Delete(3); !errors.Is(err, ErrIndexOutOfRange) {
		t.Errorf("Delete(3) error = %v, want ErrIndexOutOfRange", err)
	}
	if err := l.DeleteNamed("b"); !errors.Is(err, ErrAccountNotFound) {
		t.Errorf("DeleteNamed(b) error = %v, want ErrAccountNotFound", err)
	}
}

func TestTotal(t *testing.T) {
	l := New()
	now := on("2024-03-01")
	a, _ := l.Add("checking", EUR)
	b, _ := l.Add("savings", EUR)
	c, _ := l.Add("travel", USD)
	submit(t, a, now, [2]string{"100", "2024-01-10"}, [2]string{"-40", "2024-02-10"})
	submit(t, b, now, [2]string{"1000", "2024-02-15"})
	submit(t, c, now, [2]string{"7", "2024-02-01"})

	if got := l.Total(EUR); !got.Equal(d("1060")) {
		t.Errorf("Total(EUR) = %v, want 1060", got)
	}
	if got := l.Total(USD); !got.Equal(d("7")) {
		t.Errorf("Total(USD) = %v, want 7", got)
	}
	if got := l.Total(Fiat("CHF")); !got.IsZero() {
		t.Errorf("Total(CHF) = %v, want 0", got)
	}
	if got := l.TotalForWindow(EUR, on("2024-02-01"), on("2024-03-01")); !got.Equal(d("960")) {
		t.Errorf("TotalForWindow(EUR, 2024-02) = %v, want 960", got)
	}
}

func TestProject(t *testing.T) {
	l := New()
	a, _ := l.Add("checking", EUR)
	submit(t, a, on("2024-03-01"), [2]string{"1000", "2024-01-01"})
	a.AddRecurring(d("-100"), "rent")
	a.AddRecurring(d("50"), "allowance")
	w, _ := l.Add("wallet", ETH)
	w.AddRecurring(d("1000"), "ignored")

	tests := []struct {
		months uint
		want   string
	}{
		{0, "1000"},
		{1, "950"},
		{12, "400"},
	}
	for _, tt := range tests {
		got, err := l.Project(tt.months)
		if err != nil {
			t.Fatalf("Project(%d) unexpected error: %v", tt.months, err)
		}
		if !got.Equal(M(d(tt.want), EUR)) {
			t.Errorf("Project(%d) = %v, want %s EUR", tt.months, got, tt.want)
		}
	}

	got, err := New().Project(3)
	if err != nil || !got.Equal(M(0, DefaultFiat)) {
		t.Errorf("empty Project(3) = %v, %v want 0 in the reporting currency", got, err)
	}
}

func TestProjectMixedCurrencies(t *testing.T) {
	l := New()
	now := on("2024-02-10")
	eur, _ := l.Add("checking", EUR)
	submit(t, eur, now, [2]string{"100", "2024-01-01"})
	usd, _ := l.Add("travel", USD)
	submit(t, usd, now, [2]string{"1000", "2024-01-01"})
	usd.AddRecurring(d("50"), "allowance")

	if _, err := l.Project(2); !errors.Is(err, ErrUnitMismatch) {
		t.Errorf("Project(2) error = %v, want ErrUnitMismatch", err)
	}
	want := []Money{M(100, EUR), M(1100, USD)}
	if got := l.Projections(2); !cmp.Equal(got, want) {
		t.Errorf("Projections(2) (-want +got):\n%s", cmp.Diff(want, got))
	}
}

func TestNetWorth(t *testing.T) {
	l := New()
	now := on("2024-03-01")
	a, _ := l.Add("checking", EUR)
	submit(t, a, now, [2]string{"100", ""})
	w, _ := l.Add("wallet", ETH)
	w.SubmitSecondary("1", "", "", now)
	w.SubmitValuation(d("2000"), now)

	got, err := l.NetWorth()
	if err != nil {
		t.Fatalf("NetWorth() unexpected error: %v", err)
	}
	if want := M(2100, EUR); !got.Equal(want) {
		t.Errorf("NetWorth() = %v, want %v", got, want)
	}

	u, _ := l.Add("travel", USD)
	submit(t, u, now, [2]string{"5", ""})
	if _, err := l.NetWorth(); !errors.Is(err, ErrUnitMismatch) {
		t.Errorf("NetWorth() with USD error = %v, want ErrUnitMismatch", err)
	}
	totals := l.Totals()
	if want := []Money{M(2100, EUR), M(5, USD)}; !cmp.Equal(totals, want) {
		t.Errorf("Totals() = %v, want %v", totals, want)
	}
}

func TestSetFiat(t *testing.T) {
	l := New()
	if err := l.SetFiat(USD); err != nil {
		t.Fatalf("SetFiat(USD) unexpected error: %v", err)
	}
	w, _ := l.Add("wallet", ETH)
	if w.Unit() != USD {
		t.Errorf("Unit() = %v, want USD", w.Unit())
	}
	if err := l.SetFiat(BTC); !errors.Is(err, ErrInvalidCurrency) {
		t.Errorf("SetFiat(BTC) error = %v, want ErrInvalidCurrency", err)
	}
	if err := l.SetFiat(EUR); !errors.Is(err, ErrFiatInUse) {
		t.Errorf("SetFiat(EUR) with accounts error = %v, want ErrFiatInUse", err)
	}
	if err := l.SetFiat(USD); err != nil {
		t.Errorf("SetFiat(USD) again unexpected error: %v", err)
	}
	if l.Fiat() != USD || w.Unit() != USD {
		t.Errorf("Fiat() = %v, Unit() = %v, want USD", l.Fiat(), w.Unit())
	}
}
