package booking

import (
	"fmt"
	"time"

	"regal/models"
)

const (
	// DateLayout is the canonical calendar-date form used everywhere.
	DateLayout = "2006-01-02"
	// MonthLayout is the form of the month cursor.
	MonthLayout = "2006-01"
)

// BookingWindow returns the availability window [today, today+3 months),
// built at date granularity so boundary results do not depend on the
// wall-clock time of day.
func BookingWindow(now time.Time) models.DateWindow {
	start := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return models.DateWindow{Start: start, End: start.AddDate(0, 3, 0)}
}

// MonthOf returns the month cursor for the given time.
func MonthOf(t time.Time) string {
	return t.Format(MonthLayout)
}

// shiftMonth moves a month cursor forward or backward by one month.
func shiftMonth(cursor string, delta int) (string, error) {
	t, err := time.Parse(MonthLayout, cursor)
	if err != nil {
		return "", fmt.Errorf("bad month cursor %q: %w", cursor, err)
	}
	return t.AddDate(0, delta, 0).Format(MonthLayout), nil
}

// daysInMonth returns the number of days in the cursor's month.
func daysInMonth(cursor string) (int, error) {
	t, err := time.Parse(MonthLayout, cursor)
	if err != nil {
		return 0, fmt.Errorf("bad month cursor %q: %w", cursor, err)
	}
	// Day zero of the following month is the last day of this one.
	return time.Date(t.Year(), t.Month()+1, 0, 0, 0, 0, 0, time.UTC).Day(), nil
}

// classifyDate buckets a date for the visible calendar. Past wins over
// booked; comparisons are date-string comparisons to avoid timezone skew.
func classifyDate(date, today string, snapshot models.AvailabilitySnapshot) models.DayCellStatus {
	if date < today {
		return models.CellPast
	}
	if snapshot.Contains(date) {
		return models.CellBooked
	}
	return models.CellSelectable
}

// BuildDayCells renders the visible month of a form session into day cells.
func BuildDayCells(s models.FormSession, today string) ([]models.DayCell, error) {
	n, err := daysInMonth(s.MonthCursor)
	if err != nil {
		return nil, err
	}
	cells := make([]models.DayCell, 0, n)
	for day := 1; day <= n; day++ {
		date := fmt.Sprintf("%s-%02d", s.MonthCursor, day)
		cells = append(cells, models.DayCell{
			Date:     date,
			Status:   classifyDate(date, today, s.Snapshot),
			Selected: date == s.SelectedDate,
		})
	}
	return cells, nil
}
