package employee

import "time"

type Employee struct {
	ID              string
	Name            string
	Email           string
	PasswordHash    string
	IsAdmin         bool
	AssignedShiftID *string
	CreatedAt       time.Time
	UpdatedAt       time.Time

	// Joined fields
	ShiftName *string
}
