package calendar

import (
	"time"

	"caseflow/internal/models"
)

// DayStatus is the render-time classification of a deadline relative
// to "now". Computed on the client, never stored.
type DayStatus string

const (
	StatusMuted    DayStatus = "muted"     // completed
	StatusOverdue  DayStatus = "overdue"   // incomplete, lapsed
	StatusDueToday DayStatus = "due-today" // incomplete, due now
	StatusUpcoming DayStatus = "upcoming"  // incomplete, in the future
)

// Visible caps per cell before entries collapse into the overflow
// affordance.
const (
	MonthVisibleCap = 3
	WeekVisibleCap  = 5
)

// Entry is one deadline placed on a grid cell.
type Entry struct {
	Deadline models.Deadline `json:"deadline"`
	Status   DayStatus       `json:"status"`
}

// DayCell is one day of a calendar grid. Hidden holds the entries past
// the visible cap, revealed on demand through the overflow affordance.
type DayCell struct {
	Date    time.Time `json:"date"`
	Visible []Entry   `json:"visible"`
	Hidden  []Entry   `json:"hidden,omitempty"`
}

// Overflow reports how many entries the cell is hiding.
func (c *DayCell) Overflow() int {
	return len(c.Hidden)
}

// Classify maps a deadline onto its display status for the given day.
func Classify(d *models.Deadline, today time.Time) DayStatus {
	if d.Completed {
		return StatusMuted
	}
	due := dateOnly(d.DueDate)
	now := dateOnly(today)
	switch {
	case due.Before(now):
		return StatusOverdue
	case due.Equal(now):
		return StatusDueToday
	default:
		return StatusUpcoming
	}
}

// MonthGrid lays the deadlines onto every day of the month containing
// ref. Cells cap at MonthVisibleCap visible entries.
func MonthGrid(deadlines []models.Deadline, ref, today time.Time) []DayCell {
	first := time.Date(ref.Year(), ref.Month(), 1, 0, 0, 0, 0, time.UTC)
	daysInMonth := first.AddDate(0, 1, -1).Day()

	cells := make([]DayCell, 0, daysInMonth)
	for day := 0; day < daysInMonth; day++ {
		cells = append(cells, buildCell(deadlines, first.AddDate(0, 0, day), today, MonthVisibleCap))
	}
	return cells
}

// WeekGrid lays the deadlines onto the seven days starting at
// weekStart. Cells cap at WeekVisibleCap visible entries.
func WeekGrid(deadlines []models.Deadline, weekStart, today time.Time) []DayCell {
	start := dateOnly(weekStart)
	cells := make([]DayCell, 0, 7)
	for day := 0; day < 7; day++ {
		cells = append(cells, buildCell(deadlines, start.AddDate(0, 0, day), today, WeekVisibleCap))
	}
	return cells
}

func buildCell(deadlines []models.Deadline, date, today time.Time, cap int) DayCell {
	cell := DayCell{Date: date}
	for i := range deadlines {
		d := &deadlines[i]
		if !d.DueOn(date) {
			continue
		}
		entry := Entry{Deadline: *d, Status: Classify(d, today)}
		if len(cell.Visible) < cap {
			cell.Visible = append(cell.Visible, entry)
		} else {
			cell.Hidden = append(cell.Hidden, entry)
		}
	}
	return cell
}

func dateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func sameDay(a, b time.Time) bool {
	return dateOnly(a).Equal(dateOnly(b))
}
