// Package conflict detects room and teacher double-bookings between slots.
package conflict

import (
	"slices"
	"strings"

	"github.com/javiermolinar/timetable/internal/slot"
)

// DefaultOnlineRoom is the room marker used when none is configured.
const DefaultOnlineRoom = "online"

// Resource is the contended resource of a conflicting pair.
type Resource string

const (
	ResourceRoom    Resource = "room"
	ResourceTeacher Resource = "teacher"
)

// Conflict is one pair of slots that cannot coexist.
type Conflict struct {
	DateKey   string
	A         string // slot ID
	B         string // slot ID
	Resources []Resource
}

// Has reports whether the pair contends for r.
func (c Conflict) Has(r Resource) bool {
	for _, got := range c.Resources {
		if got == r {
			return true
		}
	}
	return false
}

// Involves reports whether the slot id is part of the pair.
func (c Conflict) Involves(id string) bool {
	return c.A == id || c.B == id
}

// Detector flags slots that overlap in time while sharing a room or teacher.
type Detector struct {
	online map[string]bool
}

// NewDetector creates a Detector. Rooms matching any of onlineRooms are exempt
// from room conflicts. With no arguments, "online" is the only marker.
func NewDetector(onlineRooms ...string) *Detector {
	if len(onlineRooms) == 0 {
		onlineRooms = []string{DefaultOnlineRoom}
	}
	online := make(map[string]bool, len(onlineRooms))
	for _, r := range onlineRooms {
		if k := normalize(r); k != "" {
			online[k] = true
		}
	}
	return &Detector{online: online}
}

// isOnline reports whether room denotes an online session.
func (d *Detector) isOnline(room string) bool {
	return d.online[normalize(room)]
}

// Detect recomputes the Conflict flag of every slot in place and returns the
// conflicting pairs, ordered by date and then by slice position.
// Flags are reset first, so a slot that no longer collides is cleared.
func (d *Detector) Detect(slots []slot.Slot) []Conflict {
	var order []string
	groups := make(map[string][]int)
	for i := range slots {
		slots[i].Conflict = false
		key := slots[i].DateKey()
		if _, ok := groups[key]; !ok {
			order = append(order, key)
		}
		groups[key] = append(groups[key], i)
	}

	var conflicts []Conflict
	slices.Sort(order)
	for _, key := range order {
		idx := groups[key]
		for x := 0; x < len(idx); x++ {
			for y := x + 1; y < len(idx); y++ {
				a, b := &slots[idx[x]], &slots[idx[y]]
				resources := d.contended(a, b)
				if len(resources) == 0 {
					continue
				}
				a.Conflict = true
				b.Conflict = true
				conflicts = append(conflicts, Conflict{
					DateKey:   key,
					A:         a.ID,
					B:         b.ID,
					Resources: resources,
				})
			}
		}
	}
	return conflicts
}

// Check reports the resources a and b contend for, nil if they can coexist.
func (d *Detector) Check(a, b slot.Slot) []Resource {
	if a.DateKey() != b.DateKey() {
		return nil
	}
	return d.contended(&a, &b)
}

func (d *Detector) contended(a, b *slot.Slot) []Resource {
	if !a.Time.Overlaps(b.Time) {
		return nil
	}
	var resources []Resource
	if room := normalize(a.Room); room != "" && room == normalize(b.Room) && !d.isOnline(room) {
		resources = append(resources, ResourceRoom)
	}
	if teacher := normalize(a.Teacher); teacher != "" && teacher == normalize(b.Teacher) {
		resources = append(resources, ResourceTeacher)
	}
	return resources
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
