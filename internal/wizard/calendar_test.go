package wizard

import (
	"testing"
	"time"
)

func TestMonthGrid(t *testing.T) {
	tests := []struct {
		name      string
		month     time.Time
		label     string
		weeks     int
		firstWeek [7]int
		lastWeek  [7]int
	}{
		{
			name:      "february starting sunday fills four rows",
			month:     time.Date(2026, 2, 14, 0, 0, 0, 0, time.UTC),
			label:     "February 2026",
			weeks:     4,
			firstWeek: [7]int{1, 2, 3, 4, 5, 6, 7},
			lastWeek:  [7]int{22, 23, 24, 25, 26, 27, 28},
		},
		{
			name:      "march has trailing blanks",
			month:     time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
			label:     "March 2026",
			weeks:     5,
			firstWeek: [7]int{1, 2, 3, 4, 5, 6, 7},
			lastWeek:  [7]int{29, 30, 31, 0, 0, 0, 0},
		},
		{
			name:      "october has leading blanks",
			month:     time.Date(2026, 10, 19, 0, 0, 0, 0, time.UTC),
			label:     "October 2026",
			weeks:     5,
			firstWeek: [7]int{0, 0, 0, 0, 1, 2, 3},
			lastWeek:  [7]int{25, 26, 27, 28, 29, 30, 31},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cal := MonthGrid(tt.month)
			if cal.Month != tt.label {
				t.Fatalf("expected label %q, got %q", tt.label, cal.Month)
			}
			if len(cal.Weeks) != tt.weeks {
				t.Fatalf("expected %d weeks, got %d", tt.weeks, len(cal.Weeks))
			}
			if cal.Weeks[0] != tt.firstWeek {
				t.Fatalf("first week = %v, want %v", cal.Weeks[0], tt.firstWeek)
			}
			if cal.Weeks[len(cal.Weeks)-1] != tt.lastWeek {
				t.Fatalf("last week = %v, want %v", cal.Weeks[len(cal.Weeks)-1], tt.lastWeek)
			}
			if len(cal.Slots) != len(TimeSlots) {
				t.Fatalf("expected %d slots, got %d", len(TimeSlots), len(cal.Slots))
			}
		})
	}
}

func TestSelectSlot(t *testing.T) {
	sel, err := SelectSlot(" 2026-03-04 ", "10:00 am")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sel.Slot != "10:00 AM" || sel.Date != "2026-03-04" || !sel.Selected {
		t.Fatalf("unexpected selection %+v", sel)
	}

	if _, err := SelectSlot("2026-03-04", "11:30 PM"); err != ErrUnknownSlot {
		t.Fatalf("expected ErrUnknownSlot, got %v", err)
	}
}
