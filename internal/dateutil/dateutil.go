// Package dateutil provides date parsing and week arithmetic for the timetable.
package dateutil

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Validation errors.
var (
	ErrInvalidDate        = errors.New("date must be in DD/MM/YYYY format")
	ErrEndDateBeforeStart = errors.New("end date must be on or after start date")
)

// ParseError reports a date string that could not be parsed.
type ParseError struct {
	Input  string
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("invalid date %q: %s", e.Input, e.Reason)
}

// Is makes errors.Is(err, ErrInvalidDate) hold for every ParseError.
func (e *ParseError) Is(target error) bool {
	return target == ErrInvalidDate
}

// DateRange represents a validated date range.
type DateRange struct {
	Start time.Time
	End   time.Time
}

// NewDateRange creates a new DateRange with validation.
// startDate can be empty (defaults to today) or in DD/MM/YYYY format.
// endDate can be empty (defaults to startDate) or in DD/MM/YYYY format.
func NewDateRange(startDate, endDate string) (*DateRange, error) {
	start, err := ParseDateOrToday(startDate)
	if err != nil {
		return nil, err
	}

	end := start
	if endDate != "" {
		end, err = ParseDate(endDate)
		if err != nil {
			return nil, err
		}
	}

	if end.Before(start) {
		return nil, ErrEndDateBeforeStart
	}

	return &DateRange{Start: start, End: end}, nil
}

// ParseDate parses a DD/MM/YYYY string into local midnight of that day.
// Single-digit day and month components are accepted.
func ParseDate(s string) (time.Time, error) {
	input := strings.TrimSpace(s)
	parts := strings.Split(input, "/")
	if len(parts) != 3 {
		return time.Time{}, &ParseError{Input: s, Reason: "expected DD/MM/YYYY"}
	}

	day, err := parseComponent(parts[0], 2)
	if err != nil {
		return time.Time{}, &ParseError{Input: s, Reason: "day is not a number"}
	}
	month, err := parseComponent(parts[1], 2)
	if err != nil {
		return time.Time{}, &ParseError{Input: s, Reason: "month is not a number"}
	}
	if len(parts[2]) != 4 {
		return time.Time{}, &ParseError{Input: s, Reason: "year must have four digits"}
	}
	year, err := parseComponent(parts[2], 4)
	if err != nil {
		return time.Time{}, &ParseError{Input: s, Reason: "year is not a number"}
	}

	if month < 1 || month > 12 {
		return time.Time{}, &ParseError{Input: s, Reason: "month out of range"}
	}
	if day < 1 || day > DaysIn(time.Month(month), year) {
		return time.Time{}, &ParseError{Input: s, Reason: "day out of range"}
	}

	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.Local), nil
}

// ParseDateOrToday is ParseDate, except that an empty string yields today.
func ParseDateOrToday(s string) (time.Time, error) {
	if strings.TrimSpace(s) == "" {
		return TruncateToDay(time.Now()), nil
	}
	return ParseDate(s)
}

func parseComponent(s string, maxLen int) (int, error) {
	if s == "" || len(s) > maxLen {
		return 0, strconv.ErrSyntax
	}
	for _, c := range s {
		if c < '0' || c > '9' {
			return 0, strconv.ErrSyntax
		}
	}
	return strconv.Atoi(s)
}

// DaysIn returns the number of days in the given month.
func DaysIn(month time.Month, year int) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// FormatDate renders t as DD/MM/YYYY.
func FormatDate(t time.Time) string {
	return t.Format("02/01/2006")
}

// DateKey returns the canonical YYYY-MM-DD key for grouping.
// The time-of-day component is ignored.
func DateKey(t time.Time) string {
	return t.Format("2006-01-02")
}

// StartOfWeek returns Monday 00:00 of the week containing t.
func StartOfWeek(t time.Time) time.Time {
	t = TruncateToDay(t)
	weekday := int(t.Weekday())
	if weekday == 0 {
		weekday = 7 // Sunday is the last day of the week
	}
	return t.AddDate(0, 0, -(weekday - 1))
}

// AddDays returns t shifted by n calendar days. n may be negative.
func AddDays(t time.Time, n int) time.Time {
	return t.AddDate(0, 0, n)
}

// WeekRange returns the Monday and Sunday of the week containing t.
func WeekRange(t time.Time) (monday, sunday time.Time) {
	monday = StartOfWeek(t)
	return monday, AddDays(monday, 6)
}

// TruncateToDay returns t with time set to midnight.
func TruncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// SameDay reports whether a and b fall on the same calendar day.
func SameDay(a, b time.Time) bool {
	return DateKey(a) == DateKey(b)
}
