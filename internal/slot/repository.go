package slot

import "context"

// Repository defines the storage interface for slots.
// The conflict flag is never stored; it is derived after loading.
type Repository interface {
	// ListSlots returns every stored slot in insertion order.
	ListSlots(ctx context.Context) ([]Slot, error)

	// ReplaceSlots atomically replaces the stored set.
	ReplaceSlots(ctx context.Context, slots []Slot) error

	// UpdateSlot overwrites a stored slot by ID.
	// Returns a *NotFoundError if the slot does not exist.
	UpdateSlot(ctx context.Context, s Slot) error

	// Close releases any resources held by the repository.
	Close() error
}
