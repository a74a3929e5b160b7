package date

import (
	"testing"
	"time"
)

func TestParse(t *testing.T) {
	now := time.Date(2024, time.March, 14, 15, 9, 26, 0, time.UTC)

	tests := []struct {
		input   string
		want    time.Time
		wantErr bool
	}{
		{"", now, false},
		{"   ", now, false},
		{"2024-02-10", New(2024, time.February, 10), false},
		{" 2024-02-10 ", New(2024, time.February, 10), false},
		{"2024-12-31", New(2024, time.December, 31), false},
		{"2024-2-10", time.Time{}, true},
		{"2024-02-30", time.Time{}, true},
		{"10/02/2024", time.Time{}, true},
		{"yesterday", time.Time{}, true},
		{"2024-02-10T00:00:00Z", time.Time{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := Parse(tt.input, now)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Parse(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if !got.Equal(tt.want) {
				t.Errorf("Parse(%q) = %v, want %v", tt.input, got, tt.want)
			}
			if err == nil && tt.input != "" && got.Location() != time.UTC {
				t.Errorf("Parse(%q) location = %v, want UTC", tt.input, got.Location())
			}
		})
	}
}

func TestStartOfMonth(t *testing.T) {
	paris := time.FixedZone("CET", 3600)
	tests := []struct {
		name string
		in   time.Time
		want time.Time
	}{
		{"mid month", time.Date(2024, time.April, 15, 10, 0, 0, 0, time.UTC), New(2024, time.April, 1)},
		{"first second", New(2024, time.April, 1), New(2024, time.April, 1)},
		{"other zone crossing month", time.Date(2024, time.May, 1, 0, 30, 0, 0, paris), New(2024, time.April, 1)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := StartOfMonth(tt.in); !got.Equal(tt.want) {
				t.Errorf("StartOfMonth(%v) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestMustParsePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("MustParse() did not panic on a malformed date")
		}
	}()
	MustParse("not a date")
}
