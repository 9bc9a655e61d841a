// Package display maps slots to presentation metadata: labels, badges,
// colors and filter tabs.
package display

import (
	"github.com/javiermolinar/timetable/internal/slot"
)

// TypeMeta holds the display metadata of a slot type.
type TypeMeta struct {
	Label string
	Badge string
	Color string // "#rrggbb"
}

// ConflictColor marks conflicting slots.
const ConflictColor = "#ef4444"

var typeMeta = map[slot.Type]TypeMeta{
	slot.TypeClass:  {Label: "Class", Badge: "CLS", Color: "#3b82f6"},
	slot.TypeMakeup: {Label: "Make-up", Badge: "MKP", Color: "#f59e0b"},
	slot.TypeEvent:  {Label: "Event", Badge: "EVT", Color: "#10b981"},
}

var unknownMeta = TypeMeta{Label: "Other", Badge: "???", Color: "#6b7280"}

// Meta returns the metadata for t. Unknown types get a neutral grey entry.
func Meta(t slot.Type) TypeMeta {
	if m, ok := typeMeta[t]; ok {
		return m
	}
	return unknownMeta
}

// ColorOf returns the slot's override color, or its type color.
func ColorOf(s slot.Slot) string {
	if s.Color != "" {
		return s.Color
	}
	return Meta(s.Type).Color
}

// Tab is one entry of the type filter bar.
type Tab struct {
	Label string
	Type  slot.Type // empty for "All"
	Count int
}

// Tabs returns the "All" tab followed by one tab per type, with counts.
func Tabs(slots []slot.Slot) []Tab {
	tabs := []Tab{{Label: "All", Count: len(slots)}}
	for _, t := range slot.Types {
		count := 0
		for _, s := range slots {
			if s.Type == t {
				count++
			}
		}
		tabs = append(tabs, Tab{Label: Meta(t).Label, Type: t, Count: count})
	}
	return tabs
}

// Filter returns the slots of type t. An empty type keeps everything.
func Filter(slots []slot.Slot, t slot.Type) []slot.Slot {
	if t == "" {
		return slots
	}
	var result []slot.Slot
	for _, s := range slots {
		if s.Type == t {
			result = append(result, s)
		}
	}
	return result
}
