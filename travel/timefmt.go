package travel

import (
	"fmt"
	"time"
)

// Layouts used for every external date/time rendering and for CSV ingest.
const (
	DateLayout     = "2006-01-02"
	TimeLayout     = "15:04"
	DateTimeLayout = "2006-01-02 15:04"
)

// FormatDateTime renders t in the canonical minute-precision layout.
func FormatDateTime(t time.Time) string {
	return t.Format(DateTimeLayout)
}

// FormatDate renders the calendar-day portion of t.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// ParseDateTime parses the canonical "2006-01-02 15:04" layout.
func ParseDateTime(s string) (time.Time, error) {
	return time.Parse(DateTimeLayout, s)
}

// ParseDate parses a bare calendar day.
func ParseDate(s string) (time.Time, error) {
	return time.Parse(DateLayout, s)
}

// FormatDuration renders d as HH:MM. Hours are not wrapped at 24, so a
// 30-hour journey renders as "30:00".
func FormatDuration(d time.Duration) string {
	hours := int64(d.Hours())
	minutes := int64(d.Minutes()) - hours*60
	return fmt.Sprintf("%02d:%02d", hours, minutes)
}

// SameDay reports whether a and b fall on the same calendar day.
func SameDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.YearDay() == b.YearDay()
}
