package conflict

import (
	"testing"
	"time"

	"github.com/javiermolinar/timetable/internal/slot"
)

func date(d int) time.Time {
	return time.Date(2024, 12, d, 0, 0, 0, 0, time.Local)
}

func mk(id, teacher, room string, d int, start, end string) slot.Slot {
	return slot.Slot{
		ID:      id,
		Title:   id,
		Type:    slot.TypeClass,
		Teacher: teacher,
		Room:    room,
		Date:    date(d),
		Time:    slot.TimeRange{Start: start, End: end},
	}
}

func flags(slots []slot.Slot) map[string]bool {
	got := make(map[string]bool, len(slots))
	for _, s := range slots {
		got[s.ID] = s.Conflict
	}
	return got
}

func TestDetect(t *testing.T) {
	tests := []struct {
		name      string
		slots     []slot.Slot
		want      map[string]bool
		wantPairs int
	}{
		{
			name: "different dates never conflict",
			slots: []slot.Slot{
				mk("EVT-01", "Minh", "P301", 2, "08:00", "09:30"),
				mk("EVT-02", "Minh", "P301", 3, "08:00", "09:30"),
			},
			want: map[string]bool{"EVT-01": false, "EVT-02": false},
		},
		{
			name: "same room overlapping",
			slots: []slot.Slot{
				mk("A", "Minh", "P301", 2, "08:00", "09:30"),
				mk("B", "Hoa", "P301", 2, "08:30", "10:00"),
			},
			want:      map[string]bool{"A": true, "B": true},
			wantPairs: 1,
		},
		{
			name: "same teacher overlapping",
			slots: []slot.Slot{
				mk("A", "Minh", "P301", 2, "08:00", "09:30"),
				mk("B", "minh ", "P205", 2, "09:00", "10:00"),
			},
			want:      map[string]bool{"A": true, "B": true},
			wantPairs: 1,
		},
		{
			name: "back to back is fine",
			slots: []slot.Slot{
				mk("A", "Minh", "P301", 2, "08:00", "09:30"),
				mk("B", "Minh", "P301", 2, "09:30", "11:00"),
			},
			want: map[string]bool{"A": false, "B": false},
		},
		{
			name: "online room exempt from room conflict",
			slots: []slot.Slot{
				mk("A", "Minh", "Online", 2, "08:00", "09:30"),
				mk("B", "Hoa", "online", 2, "08:00", "09:30"),
			},
			want: map[string]bool{"A": false, "B": false},
		},
		{
			name: "online room still checks teacher",
			slots: []slot.Slot{
				mk("A", "Minh", "online", 2, "08:00", "09:30"),
				mk("B", "Minh", "online", 2, "08:00", "09:30"),
			},
			want:      map[string]bool{"A": true, "B": true},
			wantPairs: 1,
		},
		{
			name: "empty room and teacher never match",
			slots: []slot.Slot{
				mk("A", "", "", 2, "08:00", "09:30"),
				mk("B", "", "", 2, "08:00", "09:30"),
			},
			want: map[string]bool{"A": false, "B": false},
		},
		{
			name: "overlap without shared resource",
			slots: []slot.Slot{
				mk("A", "Minh", "P301", 2, "08:00", "09:30"),
				mk("B", "Hoa", "P205", 2, "08:00", "09:30"),
			},
			want: map[string]bool{"A": false, "B": false},
		},
		{
			name: "flag is OR over pairs",
			slots: []slot.Slot{
				mk("A", "Minh", "P301", 2, "08:00", "12:00"),
				mk("B", "Hoa", "P301", 2, "08:00", "09:00"),
				mk("C", "Lan", "P205", 2, "08:00", "09:00"),
				mk("D", "Hoa", "P102", 2, "08:30", "09:30"),
			},
			want:      map[string]bool{"A": true, "B": true, "C": false, "D": true},
			wantPairs: 2,
		},
	}

	d := NewDetector()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pairs := d.Detect(tt.slots)
			if len(pairs) != tt.wantPairs {
				t.Errorf("got %d conflicting pairs, want %d: %+v", len(pairs), tt.wantPairs, pairs)
			}
			got := flags(tt.slots)
			for id, want := range tt.want {
				if got[id] != want {
					t.Errorf("slot %s conflict = %v, want %v", id, got[id], want)
				}
			}
		})
	}
}

func TestDetect_ClearsStaleFlags(t *testing.T) {
	slots := []slot.Slot{
		mk("A", "Minh", "P301", 2, "08:00", "09:30"),
		mk("B", "Hoa", "P205", 3, "14:00", "15:30"),
	}
	slots[0].Conflict = true
	slots[1].Conflict = true

	if pairs := NewDetector().Detect(slots); len(pairs) != 0 {
		t.Fatalf("expected no conflicts, got %+v", pairs)
	}
	if slots[0].Conflict || slots[1].Conflict {
		t.Error("stale conflict flags were not cleared")
	}
}

func TestDetect_BothResources(t *testing.T) {
	slots := []slot.Slot{
		mk("A", "Minh", "P301", 2, "08:00", "09:30"),
		mk("B", "Minh", "P301", 2, "09:00", "10:00"),
	}
	pairs := NewDetector().Detect(slots)
	if len(pairs) != 1 {
		t.Fatalf("expected 1 pair, got %d", len(pairs))
	}
	c := pairs[0]
	if !c.Has(ResourceRoom) || !c.Has(ResourceTeacher) {
		t.Errorf("expected room and teacher, got %v", c.Resources)
	}
	if c.A != "A" || c.B != "B" || c.DateKey != "2024-12-02" {
		t.Errorf("unexpected pair %+v", c)
	}
	if !c.Involves("A") || c.Involves("C") {
		t.Error("Involves mismatch")
	}
}

func TestDetect_OrderedByDate(t *testing.T) {
	slots := []slot.Slot{
		mk("late-1", "Minh", "P301", 5, "08:00", "09:00"),
		mk("late-2", "Minh", "P302", 5, "08:00", "09:00"),
		mk("early-1", "Hoa", "P301", 2, "08:00", "09:00"),
		mk("early-2", "Hoa", "P302", 2, "08:00", "09:00"),
	}
	pairs := NewDetector().Detect(slots)
	if len(pairs) != 2 {
		t.Fatalf("expected 2 pairs, got %d", len(pairs))
	}
	if pairs[0].A != "early-1" || pairs[1].A != "late-1" {
		t.Errorf("pairs not ordered by date: %+v", pairs)
	}
}

func TestDetector_CustomOnlineRooms(t *testing.T) {
	d := NewDetector("Zoom", "Google Meet")
	if !d.isOnline(" zoom ") || !d.isOnline("google meet") {
		t.Error("configured markers should be online")
	}
	if d.isOnline("online") {
		t.Error("default marker should not apply when markers are configured")
	}

	a := mk("A", "Minh", "Zoom", 2, "08:00", "09:00")
	b := mk("B", "Hoa", "zoom", 2, "08:00", "09:00")
	if got := d.Check(a, b); got != nil {
		t.Errorf("Check() = %v, want nil", got)
	}
}

func TestCheck_Symmetric(t *testing.T) {
	d := NewDetector()
	a := mk("A", "Minh", "P301", 2, "08:00", "09:30")
	b := mk("B", "Minh", "P205", 2, "09:00", "10:00")
	ab := d.Check(a, b)
	ba := d.Check(b, a)
	if len(ab) != len(ba) || len(ab) != 1 || ab[0] != ba[0] {
		t.Errorf("Check not symmetric: %v vs %v", ab, ba)
	}
}
