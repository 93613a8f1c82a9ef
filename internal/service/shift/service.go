package shift

import (
	"context"
	"fmt"

	"github.com/hadirin/hadirin-backend-go/internal/domain/shift"
	"github.com/hadirin/hadirin-backend-go/internal/pkg/validator"
)

type ShiftServiceImpl struct {
	shift.ShiftRepository
}

func NewShiftService(shiftRepo shift.ShiftRepository) *ShiftServiceImpl {
	return &ShiftServiceImpl{ShiftRepository: shiftRepo}
}

// CreateShift implements shift.ShiftService.
func (s *ShiftServiceImpl) CreateShift(ctx context.Context, req shift.CreateShiftRequest) (shift.ShiftResponse, error) {
	if err := req.Validate(); err != nil {
		return shift.ShiftResponse{}, err
	}

	entity := shift.Shift{
		Name:          req.Name,
		ExpectedHours: req.ExpectedHours,
		HasBreak:      req.HasBreak,
	}
	entity.Start1, _ = validator.IsValidTimeOfDay(req.Start1)
	entity.End1, _ = validator.IsValidTimeOfDay(req.End1)
	if req.Start2 != nil {
		t, _ := validator.IsValidTimeOfDay(*req.Start2)
		entity.Start2 = &t
	}
	if req.End2 != nil {
		t, _ := validator.IsValidTimeOfDay(*req.End2)
		entity.End2 = &t
	}

	created, err := s.ShiftRepository.Create(ctx, entity)
	if err != nil {
		return shift.ShiftResponse{}, err
	}

	return shift.NewShiftResponse(created), nil
}

// GetShift implements shift.ShiftService.
func (s *ShiftServiceImpl) GetShift(ctx context.Context, id string) (shift.ShiftResponse, error) {
	sh, err := s.ShiftRepository.GetByID(ctx, id)
	if err != nil {
		return shift.ShiftResponse{}, err
	}
	return shift.NewShiftResponse(sh), nil
}

// ListShifts implements shift.ShiftService.
func (s *ShiftServiceImpl) ListShifts(ctx context.Context) ([]shift.ShiftResponse, error) {
	shifts, err := s.ShiftRepository.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list shifts: %w", err)
	}

	responses := make([]shift.ShiftResponse, 0, len(shifts))
	for _, sh := range shifts {
		responses = append(responses, shift.NewShiftResponse(sh))
	}
	return responses, nil
}

// UpdateShift implements shift.ShiftService. Partial updates are validated
// against the merged state, not the request alone: flipping has_break on a
// shift whose second session was never configured must fail the same way it
// would at creation.
func (s *ShiftServiceImpl) UpdateShift(ctx context.Context, req shift.UpdateShiftRequest) (shift.ShiftResponse, error) {
	if err := req.Validate(); err != nil {
		return shift.ShiftResponse{}, err
	}

	current, err := s.ShiftRepository.GetByID(ctx, req.ID)
	if err != nil {
		return shift.ShiftResponse{}, err
	}
	if err := validateMerged(current, req); err != nil {
		return shift.ShiftResponse{}, err
	}

	updated, err := s.ShiftRepository.Update(ctx, req)
	if err != nil {
		return shift.ShiftResponse{}, err
	}

	return shift.NewShiftResponse(updated), nil
}

// validateMerged checks the shift as it would be stored after applying the
// partial update.
func validateMerged(current shift.Shift, req shift.UpdateShiftRequest) error {
	hasBreak := current.HasBreak
	if req.HasBreak != nil {
		hasBreak = *req.HasBreak
	}
	start2 := current.Start2
	if req.Start2 != nil {
		t, _ := validator.IsValidTimeOfDay(*req.Start2)
		start2 = &t
	}
	end2 := current.End2
	if req.End2 != nil {
		t, _ := validator.IsValidTimeOfDay(*req.End2)
		end2 = &t
	}

	var errs validator.ValidationErrors

	if hasBreak && (start2 == nil || end2 == nil) {
		errs = append(errs, validator.ValidationError{Field: "has_break", Message: "second session times are required when has_break is true"})
	}
	// session 2 never spans midnight
	if start2 != nil && end2 != nil && !start2.Before(*end2) {
		errs = append(errs, validator.ValidationError{Field: "end_time_2", Message: "second session end must be after its start"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// DeleteShift implements shift.ShiftService.
func (s *ShiftServiceImpl) DeleteShift(ctx context.Context, id string) error {
	return s.ShiftRepository.Delete(ctx, id)
}
