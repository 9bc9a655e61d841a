// Package slot defines the core domain types for the timetable.
package slot

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/javiermolinar/timetable/internal/dateutil"
)

// Validation errors.
var (
	ErrEmptyID       = errors.New("slot id cannot be empty")
	ErrDuplicateID   = errors.New("duplicate slot id")
	ErrInvalidType   = errors.New("type must be 'class', 'makeup' or 'event'")
	ErrInvalidPeriod = errors.New("period must be 'morning', 'afternoon' or 'evening'")
	ErrInvalidColor  = errors.New("color must be in #RRGGBB format")
	ErrMissingDate   = errors.New("slot date is required")
)

// ErrNotFound is matched by every NotFoundError.
var ErrNotFound = errors.New("slot not found")

// NotFoundError reports a reference to a slot id that is not in the working set.
type NotFoundError struct {
	ID string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("slot %q not found", e.ID)
}

// Is makes errors.Is(err, ErrNotFound) hold.
func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// Type is the kind of occurrence a slot represents.
type Type string

const (
	TypeClass  Type = "class"
	TypeMakeup Type = "makeup"
	TypeEvent  Type = "event"
)

// Types lists every slot type in display order.
var Types = []Type{TypeClass, TypeMakeup, TypeEvent}

// Valid returns true if the type is a known value.
func (t Type) Valid() bool {
	switch t {
	case TypeClass, TypeMakeup, TypeEvent:
		return true
	default:
		return false
	}
}

// ParseType parses a type name case-insensitively.
// "make-up" and "make_up" are accepted for makeup.
func ParseType(s string) (Type, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "class":
		return TypeClass, nil
	case "makeup", "make-up", "make_up":
		return TypeMakeup, nil
	case "event":
		return TypeEvent, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidType, s)
	}
}

// Slot is one concrete, dated, timed occurrence of a class, make-up or event.
type Slot struct {
	ID      string
	Title   string
	Type    Type
	Teacher string
	Room    string
	Date    time.Time // local midnight
	Time    TimeRange
	Branch  string
	Note    string
	Color   string // "#rrggbb", empty means the type color

	// Conflict is derived by the conflict detector and never taken from input.
	Conflict bool
}

// Validate checks the slot invariants.
func (s *Slot) Validate() error {
	if strings.TrimSpace(s.ID) == "" {
		return ErrEmptyID
	}
	if !s.Type.Valid() {
		return fmt.Errorf("slot %s: %w", s.ID, ErrInvalidType)
	}
	if s.Date.IsZero() {
		return fmt.Errorf("slot %s: %w", s.ID, ErrMissingDate)
	}
	if err := s.Time.Validate(); err != nil {
		return fmt.Errorf("slot %s: %w", s.ID, err)
	}
	if s.Color != "" && !ValidColor(s.Color) {
		return fmt.Errorf("slot %s: %w", s.ID, ErrInvalidColor)
	}
	return nil
}

// Period returns the period the slot falls into.
func (s *Slot) Period() Period {
	return PeriodOf(s.Time)
}

// DateKey returns the grouping key of the slot's date.
func (s *Slot) DateKey() string {
	return dateutil.DateKey(s.Date)
}

// Duration returns the slot duration in minutes.
func (s *Slot) Duration() int {
	return s.Time.Minutes()
}

// Overlaps reports whether a and b share any instant on the same date.
// Back-to-back slots do not overlap.
func Overlaps(a, b Slot) bool {
	if a.DateKey() != b.DateKey() {
		return false
	}
	return a.Time.Overlaps(b.Time)
}

// Less orders slots by date and then by start time.
func Less(a, b Slot) bool {
	ak, bk := a.DateKey(), b.DateKey()
	if ak != bk {
		return ak < bk
	}
	return a.Time.Start < b.Time.Start
}

// Compare is the three-way form of Less, for slices.SortStableFunc.
func Compare(a, b Slot) int {
	switch {
	case Less(a, b):
		return -1
	case Less(b, a):
		return 1
	default:
		return 0
	}
}

// ValidColor reports whether c is a #rrggbb hex color.
func ValidColor(c string) bool {
	if len(c) != 7 || c[0] != '#' {
		return false
	}
	for i := 1; i < len(c); i++ {
		switch ch := c[i]; {
		case ch >= '0' && ch <= '9', ch >= 'a' && ch <= 'f', ch >= 'A' && ch <= 'F':
		default:
			return false
		}
	}
	return true
}
