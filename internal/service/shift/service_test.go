package shift

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hadirin/hadirin-backend-go/internal/domain/shift"
	"github.com/hadirin/hadirin-backend-go/internal/pkg/validator"
)

type fakeShiftRepo struct {
	shifts map[string]shift.Shift
}

func newFakeShiftRepo(shifts ...shift.Shift) *fakeShiftRepo {
	repo := &fakeShiftRepo{shifts: make(map[string]shift.Shift)}
	for _, s := range shifts {
		repo.shifts[s.ID] = s
	}
	return repo
}

func (f *fakeShiftRepo) Create(ctx context.Context, s shift.Shift) (shift.Shift, error) {
	f.shifts[s.ID] = s
	return s, nil
}

func (f *fakeShiftRepo) GetByID(ctx context.Context, id string) (shift.Shift, error) {
	s, ok := f.shifts[id]
	if !ok {
		return shift.Shift{}, shift.ErrShiftNotFound
	}
	return s, nil
}

func (f *fakeShiftRepo) List(ctx context.Context) ([]shift.Shift, error) {
	var out []shift.Shift
	for _, s := range f.shifts {
		out = append(out, s)
	}
	return out, nil
}

func (f *fakeShiftRepo) Update(ctx context.Context, req shift.UpdateShiftRequest) (shift.Shift, error) {
	s, ok := f.shifts[req.ID]
	if !ok {
		return shift.Shift{}, shift.ErrShiftNotFound
	}
	if req.Name != nil {
		s.Name = *req.Name
	}
	if req.Start1 != nil {
		s.Start1, _ = validator.IsValidTimeOfDay(*req.Start1)
	}
	if req.End1 != nil {
		s.End1, _ = validator.IsValidTimeOfDay(*req.End1)
	}
	if req.Start2 != nil {
		t, _ := validator.IsValidTimeOfDay(*req.Start2)
		s.Start2 = &t
	}
	if req.End2 != nil {
		t, _ := validator.IsValidTimeOfDay(*req.End2)
		s.End2 = &t
	}
	if req.ExpectedHours != nil {
		s.ExpectedHours = *req.ExpectedHours
	}
	if req.HasBreak != nil {
		s.HasBreak = *req.HasBreak
	}
	f.shifts[req.ID] = s
	return s, nil
}

func (f *fakeShiftRepo) Delete(ctx context.Context, id string) error {
	if _, ok := f.shifts[id]; !ok {
		return shift.ErrShiftNotFound
	}
	delete(f.shifts, id)
	return nil
}

func boolPtr(b bool) *bool { return &b }

func singleSessionShift() shift.Shift {
	return shift.Shift{
		ID:            "shift-1",
		Name:          "Day",
		Start1:        time.Date(0, 1, 1, 9, 0, 0, 0, time.UTC),
		End1:          time.Date(0, 1, 1, 17, 0, 0, 0, time.UTC),
		ExpectedHours: 6,
		HasBreak:      false,
	}
}

// Enabling the break flag on a shift whose second session was never
// configured must fail exactly as it would at creation; otherwise employees
// on that shift resolve to on-break with no window to return in.
func TestUpdateShift_BreakWithoutSecondSessionRejected(t *testing.T) {
	ctx := context.Background()
	repo := newFakeShiftRepo(singleSessionShift())
	svc := NewShiftService(repo)

	_, err := svc.UpdateShift(ctx, shift.UpdateShiftRequest{
		ID:       "shift-1",
		HasBreak: boolPtr(true),
	})
	require.Error(t, err)

	var errs validator.ValidationErrors
	require.ErrorAs(t, err, &errs)
	assert.Contains(t, errs.ToMap(), "has_break")

	// the stored shift is untouched
	stored, getErr := repo.GetByID(ctx, "shift-1")
	require.NoError(t, getErr)
	assert.False(t, stored.HasBreak)
}

func TestUpdateShift_BreakWithSecondSessionAccepted(t *testing.T) {
	ctx := context.Background()
	repo := newFakeShiftRepo(singleSessionShift())
	svc := NewShiftService(repo)

	resp, err := svc.UpdateShift(ctx, shift.UpdateShiftRequest{
		ID:       "shift-1",
		End1:     strPtr("12:00"),
		Start2:   strPtr("13:00"),
		End2:     strPtr("17:00"),
		HasBreak: boolPtr(true),
	})
	require.NoError(t, err)
	assert.True(t, resp.HasBreak)
	require.NotNil(t, resp.Start2)
	assert.Equal(t, "13:00:00", *resp.Start2)
}

// The merged second session must not span midnight even when only one of its
// endpoints changes.
func TestUpdateShift_MergedSecondSessionInverted(t *testing.T) {
	ctx := context.Background()
	existing := singleSessionShift()
	start2 := time.Date(0, 1, 1, 13, 0, 0, 0, time.UTC)
	end2 := time.Date(0, 1, 1, 17, 0, 0, 0, time.UTC)
	existing.Start2 = &start2
	existing.End2 = &end2
	existing.HasBreak = true
	repo := newFakeShiftRepo(existing)
	svc := NewShiftService(repo)

	_, err := svc.UpdateShift(ctx, shift.UpdateShiftRequest{
		ID:     "shift-1",
		Start2: strPtr("18:00"),
	})
	require.Error(t, err)

	var errs validator.ValidationErrors
	require.ErrorAs(t, err, &errs)
	assert.Contains(t, errs.ToMap(), "end_time_2")
}

func TestUpdateShift_UnknownShift(t *testing.T) {
	svc := NewShiftService(newFakeShiftRepo())

	_, err := svc.UpdateShift(context.Background(), shift.UpdateShiftRequest{
		ID:       "missing",
		HasBreak: boolPtr(true),
	})
	assert.ErrorIs(t, err, shift.ErrShiftNotFound)
}

func strPtr(s string) *string { return &s }
