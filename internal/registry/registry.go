// Package registry owns the working set of slots for one editing session.
//
// Every mutation goes through the registry so the derived conflict flags are
// recomputed before any reader can observe the new state.
package registry

import (
	"fmt"
	"slices"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/javiermolinar/timetable/internal/conflict"
	"github.com/javiermolinar/timetable/internal/dateutil"
	"github.com/javiermolinar/timetable/internal/grid"
	"github.com/javiermolinar/timetable/internal/slot"
)

// Registry holds slots in insertion order.
type Registry struct {
	mu        sync.RWMutex
	slots     []slot.Slot
	index     map[string]int
	conflicts []conflict.Conflict
	detector  *conflict.Detector
	log       *zap.Logger
}

// Option configures a Registry.
type Option func(*Registry)

// WithLogger sets the logger. Defaults to a no-op logger.
func WithLogger(l *zap.Logger) Option {
	return func(r *Registry) {
		if l != nil {
			r.log = l
		}
	}
}

// WithDetector sets the conflict detector. Defaults to NewDetector().
func WithDetector(d *conflict.Detector) Option {
	return func(r *Registry) {
		if d != nil {
			r.detector = d
		}
	}
}

// New creates an empty Registry.
func New(opts ...Option) *Registry {
	r := &Registry{
		index:    make(map[string]int),
		detector: conflict.NewDetector(),
		log:      zap.NewNop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Load replaces the working set. Incoming Conflict flags are ignored.
// On a validation error or duplicate ID the previous set is kept.
func (r *Registry) Load(slots []slot.Slot) error {
	next := make([]slot.Slot, len(slots))
	index := make(map[string]int, len(slots))
	for i, s := range slots {
		if err := s.Validate(); err != nil {
			return err
		}
		if _, dup := index[s.ID]; dup {
			return fmt.Errorf("%w: %q", slot.ErrDuplicateID, s.ID)
		}
		s.Date = dateutil.TruncateToDay(s.Date)
		s.Conflict = false
		next[i] = s
		index[s.ID] = i
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.slots = next
	r.index = index
	r.detect()

	r.log.Info("loaded slots",
		zap.Int("count", len(next)),
		zap.Int("conflicts", len(r.conflicts)),
	)
	return nil
}

// All returns a snapshot ordered by date and start time.
// Ties keep insertion order.
func (r *Registry) All() []slot.Slot {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]slot.Slot, len(r.slots))
	copy(result, r.slots)
	slices.SortStableFunc(result, slot.Compare)
	return result
}

// ByType returns the slots of the given type, in All order.
func (r *Registry) ByType(t slot.Type) []slot.Slot {
	var result []slot.Slot
	for _, s := range r.All() {
		if s.Type == t {
			result = append(result, s)
		}
	}
	return result
}

// Get returns a copy of the slot with the given ID.
func (r *Registry) Get(id string) (slot.Slot, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	i, ok := r.index[id]
	if !ok {
		return slot.Slot{}, &slot.NotFoundError{ID: id}
	}
	return r.slots[i], nil
}

// Len returns the number of slots in the working set.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.slots)
}

// Conflicts returns the conflicting pairs found by the last detection pass.
func (r *Registry) Conflicts() []conflict.Conflict {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]conflict.Conflict, len(r.conflicts))
	copy(result, r.conflicts)
	return result
}

// Week builds the grid for the week containing date.
func (r *Registry) Week(date time.Time) grid.Grid {
	return grid.BuildWeek(r.All(), dateutil.StartOfWeek(date))
}

// Reschedule moves a slot to newDate and snaps its time range to the
// canonical range of newPeriod, then recomputes conflicts.
// Conflicts are flagged, never rejected.
func (r *Registry) Reschedule(id string, newDate time.Time, newPeriod slot.Period) error {
	if !newPeriod.Valid() {
		return fmt.Errorf("%w: %v", slot.ErrInvalidPeriod, newPeriod)
	}
	if newDate.IsZero() {
		return fmt.Errorf("reschedule %s: %w", id, slot.ErrMissingDate)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	i, ok := r.index[id]
	if !ok {
		return &slot.NotFoundError{ID: id}
	}

	s := &r.slots[i]
	from := fmt.Sprintf("%s %s", s.DateKey(), s.Time)
	s.Date = dateutil.TruncateToDay(newDate)
	s.Time = slot.CanonicalRange(newPeriod)
	r.detect()

	r.log.Info("rescheduled slot",
		zap.String("id", id),
		zap.String("from", from),
		zap.String("to", fmt.Sprintf("%s %s", s.DateKey(), s.Time)),
		zap.Bool("conflict", s.Conflict),
	)
	return nil
}

// SetColor changes only the cosmetic color of a slot.
// An empty color resets it to the type color.
func (r *Registry) SetColor(id, color string) error {
	if color != "" && !slot.ValidColor(color) {
		return fmt.Errorf("%w: %q", slot.ErrInvalidColor, color)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	i, ok := r.index[id]
	if !ok {
		return &slot.NotFoundError{ID: id}
	}
	r.slots[i].Color = color
	r.detect()

	r.log.Debug("set slot color", zap.String("id", id), zap.String("color", color))
	return nil
}

// detect reruns the full conflict pass. Caller holds the write lock.
func (r *Registry) detect() {
	r.conflicts = r.detector.Detect(r.slots)
	r.log.Debug("conflict detection", zap.Int("pairs", len(r.conflicts)))
}
