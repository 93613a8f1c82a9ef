package shift

import "context"

// ShiftRepository defines data access methods for the shift catalog.
type ShiftRepository interface {
	Create(ctx context.Context, shift Shift) (Shift, error)

	GetByID(ctx context.Context, id string) (Shift, error)

	// List returns the full catalog in priority order (creation order).
	// ActiveShift depends on this ordering when shift windows overlap.
	List(ctx context.Context) ([]Shift, error)

	Update(ctx context.Context, req UpdateShiftRequest) (Shift, error)

	// Delete removes a shift. Fails with ErrShiftInUse while any employee
	// is still assigned to it.
	Delete(ctx context.Context, id string) error
}
