package date

import (
	"testing"
	"time"
)

func TestPeriodRange(t *testing.T) {
	tests := []struct {
		name   string
		period Period
		in     time.Time
		want   Range
		id     string
	}{
		{
			name:   "month",
			period: Monthly,
			in:     time.Date(2024, time.February, 20, 8, 0, 0, 0, time.UTC),
			want:   Range{From: New(2024, time.February, 1), To: New(2024, time.March, 1)},
			id:     "2024-02",
		},
		{
			name:   "december",
			period: Monthly,
			in:     New(2023, time.December, 31),
			want:   Range{From: New(2023, time.December, 1), To: New(2024, time.January, 1)},
			id:     "2023-12",
		},
		{
			name:   "year",
			period: Yearly,
			in:     New(2024, time.July, 4),
			want:   Range{From: New(2024, time.January, 1), To: New(2025, time.January, 1)},
			id:     "2024",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.period.Range(tt.in)
			if !got.From.Equal(tt.want.From) || !got.To.Equal(tt.want.To) {
				t.Errorf("Range(%v) = %v, want %v", tt.in, got, tt.want)
			}
			if got.String() != tt.id {
				t.Errorf("Range(%v).String() = %q, want %q", tt.in, got.String(), tt.id)
			}
		})
	}
}

func TestRangePrevious(t *testing.T) {
	jan := Monthly.Range(New(2024, time.January, 10))
	prev := jan.Previous()
	if want := New(2023, time.December, 1); !prev.From.Equal(want) {
		t.Errorf("Previous().From = %v, want %v", prev.From, want)
	}
	if !prev.To.Equal(jan.From) {
		t.Errorf("Previous().To = %v, want %v", prev.To, jan.From)
	}

	year := Yearly.Range(New(2024, time.January, 10))
	prevYear := year.Previous()
	if want := New(2023, time.January, 1); !prevYear.From.Equal(want) {
		t.Errorf("Previous().From = %v, want %v", prevYear.From, want)
	}
}

func TestRangeContains(t *testing.T) {
	r, err := Month(2024, time.February)
	if err != nil {
		t.Fatal(err)
	}
	tests := []struct {
		on   time.Time
		want bool
	}{
		{New(2024, time.January, 31), false},
		{New(2024, time.February, 1), true},
		{time.Date(2024, time.February, 29, 23, 59, 59, 0, time.UTC), true},
		{New(2024, time.March, 1), false},
	}
	for _, tt := range tests {
		if got := r.Contains(tt.on); got != tt.want {
			t.Errorf("Contains(%v) = %v, want %v", tt.on, got, tt.want)
		}
	}
}

func TestMonthRejectsOutOfRange(t *testing.T) {
	for _, m := range []time.Month{0, 13} {
		if _, err := Month(2024, m); err == nil {
			t.Errorf("Month(2024, %d) expected an error", m)
		}
	}
}
