package wizard

import (
	"strings"
	"time"
)

// TimeSlots are the bookable call times shown next to the date grid.
var TimeSlots = []string{
	"9:00 AM",
	"10:00 AM",
	"11:00 AM",
	"1:00 PM",
	"2:00 PM",
	"3:00 PM",
	"4:00 PM",
}

// Calendar is the static month grid. Zero entries in Weeks are blank cells.
type Calendar struct {
	Month    string   `json:"month"`
	Weekdays []string `json:"weekdays"`
	Weeks    [][7]int `json:"weeks"`
	Slots    []string `json:"slots"`
}

// SlotSelection echoes a chosen slot. It never touches session state.
type SlotSelection struct {
	Date     string `json:"date,omitempty"`
	Slot     string `json:"slot"`
	Selected bool   `json:"selected"`
}

// MonthGrid lays out the month containing t, weeks starting on Sunday.
func MonthGrid(t time.Time) Calendar {
	first := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
	days := first.AddDate(0, 1, -1).Day()

	var weeks [][7]int
	var week [7]int
	col := int(first.Weekday())
	for day := 1; day <= days; day++ {
		week[col] = day
		col++
		if col == 7 {
			weeks = append(weeks, week)
			week = [7]int{}
			col = 0
		}
	}
	if col > 0 {
		weeks = append(weeks, week)
	}

	return Calendar{
		Month:    first.Format("January 2006"),
		Weekdays: []string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"},
		Weeks:    weeks,
		Slots:    append([]string(nil), TimeSlots...),
	}
}

// SelectSlot validates a slot against TimeSlots.
func SelectSlot(date, slot string) (SlotSelection, error) {
	slot = strings.TrimSpace(slot)
	for _, s := range TimeSlots {
		if strings.EqualFold(s, slot) {
			return SlotSelection{Date: strings.TrimSpace(date), Slot: s, Selected: true}, nil
		}
	}
	return SlotSelection{}, ErrUnknownSlot
}
