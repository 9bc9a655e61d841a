package slot

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Time errors.
var (
	ErrInvalidTimeFormat = errors.New("time must be in HH:MM format")
	ErrEndBeforeStart    = errors.New("end time must be after start time")
)

// TimeRange is a wall-clock interval on the slot's date, in "HH:MM" form.
type TimeRange struct {
	Start string
	End   string
}

// NewTimeRange creates a validated TimeRange.
func NewTimeRange(start, end string) (TimeRange, error) {
	r := TimeRange{Start: start, End: end}
	if err := r.Validate(); err != nil {
		return TimeRange{}, err
	}
	return r, nil
}

// Validate checks both bounds and that Start < End.
func (r TimeRange) Validate() error {
	if err := validateTimeFormat(r.Start); err != nil {
		return fmt.Errorf("start time: %w", err)
	}
	if err := validateTimeFormat(r.End); err != nil {
		return fmt.Errorf("end time: %w", err)
	}
	if r.End <= r.Start {
		return ErrEndBeforeStart
	}
	return nil
}

// Overlaps reports whether two ranges overlap as half-open intervals.
func (r TimeRange) Overlaps(other TimeRange) bool {
	return TimesOverlap(r.Start, r.End, other.Start, other.End)
}

// Minutes returns the length of the range in minutes.
func (r TimeRange) Minutes() int {
	return TimeToMinutes(r.End) - TimeToMinutes(r.Start)
}

// String renders the range as "HH:MM-HH:MM".
func (r TimeRange) String() string {
	return r.Start + "-" + r.End
}

// StartHour returns the hour component of the start time.
func (r TimeRange) StartHour() int {
	return TimeToMinutes(r.Start) / 60
}

func validateTimeFormat(s string) error {
	if len(s) != 5 {
		return ErrInvalidTimeFormat
	}
	if _, err := time.Parse("15:04", s); err != nil {
		return ErrInvalidTimeFormat
	}
	return nil
}

// TimeToMinutes converts "HH:MM" to minutes since midnight.
// Returns 0 for invalid input.
func TimeToMinutes(t string) int {
	if len(t) < 5 {
		return 0
	}
	hours := int(t[0]-'0')*10 + int(t[1]-'0')
	mins := int(t[3]-'0')*10 + int(t[4]-'0')
	return hours*60 + mins
}

// TimesOverlap returns true if two time ranges overlap.
// Two time ranges overlap if: start1 < end2 AND start2 < end1
func TimesOverlap(start1, end1, start2, end2 string) bool {
	return start1 < end2 && start2 < end1
}

// Period is a coarse bucket of the day used for grid placement.
type Period int

const (
	Morning Period = iota
	Afternoon
	Evening
)

// NumPeriods is the number of periods in a day.
const NumPeriods = 3

// Periods lists every period in day order.
var Periods = [NumPeriods]Period{Morning, Afternoon, Evening}

// Period boundaries, in hours. A boundary hour belongs to the later period.
const (
	afternoonStartHour = 12
	eveningStartHour   = 18
)

// canonicalRanges is the representative range assigned on reschedule.
var canonicalRanges = [NumPeriods]TimeRange{
	Morning:   {Start: "08:00", End: "12:00"},
	Afternoon: {Start: "13:00", End: "18:00"},
	Evening:   {Start: "18:00", End: "22:00"},
}

// PeriodOf maps a range to its period using the start hour.
func PeriodOf(r TimeRange) Period {
	switch h := r.StartHour(); {
	case h < afternoonStartHour:
		return Morning
	case h < eveningStartHour:
		return Afternoon
	default:
		return Evening
	}
}

// CanonicalRange returns the fixed range a slot snaps to when moved into p.
func CanonicalRange(p Period) TimeRange {
	if !p.Valid() {
		return TimeRange{}
	}
	return canonicalRanges[p]
}

// Valid returns true if p is one of the three periods.
func (p Period) Valid() bool {
	return p >= Morning && p <= Evening
}

func (p Period) String() string {
	switch p {
	case Morning:
		return "morning"
	case Afternoon:
		return "afternoon"
	case Evening:
		return "evening"
	default:
		return fmt.Sprintf("period(%d)", int(p))
	}
}

// Label returns the capitalized period name.
func (p Period) Label() string {
	s := p.String()
	if !p.Valid() {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// ParsePeriod parses a period name case-insensitively.
func ParsePeriod(s string) (Period, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "morning":
		return Morning, nil
	case "afternoon":
		return Afternoon, nil
	case "evening":
		return Evening, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrInvalidPeriod, s)
	}
}
