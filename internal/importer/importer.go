// Package importer reads and writes slot sets as JSON.
package importer

import (
	"errors"
	"fmt"
	"io"
	"strings"

	json "github.com/goccy/go-json"
	"github.com/google/uuid"

	"github.com/javiermolinar/timetable/internal/dateutil"
	"github.com/javiermolinar/timetable/internal/slot"
)

// ErrEmptyInput is returned when the document holds no JSON at all.
var ErrEmptyInput = errors.New("empty input")

// Record is the JSON shape of one slot.
// Conflict is written on export and ignored on import.
type Record struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Type     string `json:"type"`
	Teacher  string `json:"teacher"`
	Room     string `json:"room"`
	Date     string `json:"date"`
	Start    string `json:"start"`
	End      string `json:"end"`
	Branch   string `json:"branch,omitempty"`
	Note     string `json:"note,omitempty"`
	Color    string `json:"color,omitempty"`
	Conflict bool   `json:"conflict"`
}

// RecordError reports which record of a document failed to convert.
type RecordError struct {
	Index int
	ID    string
	Err   error
}

func (e *RecordError) Error() string {
	if e.ID != "" {
		return fmt.Sprintf("record %d (%s): %v", e.Index, e.ID, e.Err)
	}
	return fmt.Sprintf("record %d: %v", e.Index, e.Err)
}

func (e *RecordError) Unwrap() error {
	return e.Err
}

// ReadSlots decodes a JSON array of records into validated slots.
// Records without an id get a generated one.
func ReadSlots(r io.Reader) ([]slot.Slot, error) {
	var records []Record
	if err := json.NewDecoder(r).Decode(&records); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, ErrEmptyInput
		}
		return nil, fmt.Errorf("decoding slots: %w", err)
	}

	slots := make([]slot.Slot, 0, len(records))
	seen := make(map[string]bool, len(records))
	for i, rec := range records {
		s, err := rec.toSlot()
		if err != nil {
			return nil, &RecordError{Index: i, ID: rec.ID, Err: err}
		}
		if seen[s.ID] {
			return nil, &RecordError{Index: i, ID: s.ID, Err: slot.ErrDuplicateID}
		}
		seen[s.ID] = true
		slots = append(slots, s)
	}
	return slots, nil
}

func (rec Record) toSlot() (slot.Slot, error) {
	id := strings.TrimSpace(rec.ID)
	if id == "" {
		id = uuid.NewString()
	}

	typ, err := slot.ParseType(rec.Type)
	if err != nil {
		return slot.Slot{}, err
	}

	date, err := dateutil.ParseDate(rec.Date)
	if err != nil {
		return slot.Slot{}, err
	}

	tr, err := slot.NewTimeRange(strings.TrimSpace(rec.Start), strings.TrimSpace(rec.End))
	if err != nil {
		return slot.Slot{}, err
	}

	s := slot.Slot{
		ID:      id,
		Title:   strings.TrimSpace(rec.Title),
		Type:    typ,
		Teacher: strings.TrimSpace(rec.Teacher),
		Room:    strings.TrimSpace(rec.Room),
		Date:    date,
		Time:    tr,
		Branch:  strings.TrimSpace(rec.Branch),
		Note:    strings.TrimSpace(rec.Note),
		Color:   strings.ToLower(strings.TrimSpace(rec.Color)),
	}
	if err := s.Validate(); err != nil {
		return slot.Slot{}, err
	}
	return s, nil
}

// FromSlot converts a slot into its JSON record.
func FromSlot(s slot.Slot) Record {
	return Record{
		ID:       s.ID,
		Title:    s.Title,
		Type:     string(s.Type),
		Teacher:  s.Teacher,
		Room:     s.Room,
		Date:     dateutil.FormatDate(s.Date),
		Start:    s.Time.Start,
		End:      s.Time.End,
		Branch:   s.Branch,
		Note:     s.Note,
		Color:    s.Color,
		Conflict: s.Conflict,
	}
}

// WriteSlots encodes slots as an indented JSON array.
func WriteSlots(w io.Writer, slots []slot.Slot) error {
	records := make([]Record, len(slots))
	for i, s := range slots {
		records[i] = FromSlot(s)
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(records); err != nil {
		return fmt.Errorf("encoding slots: %w", err)
	}
	return nil
}
