package attendance

import (
	"context"
	"fmt"
	"io"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hadirin/hadirin-backend-go/internal/config"
	"github.com/hadirin/hadirin-backend-go/internal/domain/attendance"
	"github.com/hadirin/hadirin-backend-go/internal/domain/shift"
	"github.com/hadirin/hadirin-backend-go/internal/pkg/sse"
)

type fakeAttendanceRepo struct {
	records map[string]*attendance.Record
	nextID  int
}

func newFakeAttendanceRepo() *fakeAttendanceRepo {
	return &fakeAttendanceRepo{records: make(map[string]*attendance.Record)}
}

func recordKey(employeeID string, date time.Time) string {
	return employeeID + "|" + date.Format("2006-01-02")
}

func (f *fakeAttendanceRepo) CreateFirstCheckIn(ctx context.Context, rec attendance.Record) (attendance.Record, bool, error) {
	key := recordKey(rec.EmployeeID, rec.Date)
	if existing, ok := f.records[key]; ok {
		return *existing, false, nil
	}
	f.nextID++
	rec.ID = fmt.Sprintf("rec-%d", f.nextID)
	f.records[key] = &rec
	return rec, true, nil
}

func (f *fakeAttendanceRepo) GetByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (*attendance.Record, error) {
	rec, ok := f.records[recordKey(employeeID, date)]
	if !ok {
		return nil, nil
	}
	copied := *rec
	return &copied, nil
}

func (f *fakeAttendanceRepo) GetByID(ctx context.Context, id string) (attendance.Record, error) {
	for _, rec := range f.records {
		if rec.ID == id {
			return *rec, nil
		}
	}
	return attendance.Record{}, attendance.ErrRecordNotFound
}

func (f *fakeAttendanceRepo) Update(ctx context.Context, rec attendance.Record) error {
	key := recordKey(rec.EmployeeID, rec.Date)
	if _, ok := f.records[key]; !ok {
		return attendance.ErrRecordNotFound
	}
	copied := rec
	f.records[key] = &copied
	return nil
}

func (f *fakeAttendanceRepo) UpdateDerived(ctx context.Context, employeeID string, date time.Time, workHours, salary decimal.Decimal) error {
	rec, ok := f.records[recordKey(employeeID, date)]
	if !ok {
		return attendance.ErrRecordNotFound
	}
	rec.WorkHours = &workHours
	rec.Salary = &salary
	return nil
}

func (f *fakeAttendanceRepo) ListByEmployee(ctx context.Context, employeeID string, filter attendance.HistoryFilter) ([]attendance.Record, int64, error) {
	var out []attendance.Record
	for _, rec := range f.records {
		if rec.EmployeeID == employeeID {
			out = append(out, *rec)
		}
	}
	return out, int64(len(out)), nil
}

func (f *fakeAttendanceRepo) List(ctx context.Context, filter attendance.AdminFilter) ([]attendance.Record, int64, error) {
	var out []attendance.Record
	for _, rec := range f.records {
		out = append(out, *rec)
	}
	return out, int64(len(out)), nil
}

func (f *fakeAttendanceRepo) Delete(ctx context.Context, id string) error {
	for key, rec := range f.records {
		if rec.ID == id {
			delete(f.records, key)
			return nil
		}
	}
	return attendance.ErrRecordNotFound
}

type fakeShiftRepo struct {
	shifts []shift.Shift
}

func (f *fakeShiftRepo) Create(ctx context.Context, s shift.Shift) (shift.Shift, error) {
	f.shifts = append(f.shifts, s)
	return s, nil
}

func (f *fakeShiftRepo) GetByID(ctx context.Context, id string) (shift.Shift, error) {
	for _, s := range f.shifts {
		if s.ID == id {
			return s, nil
		}
	}
	return shift.Shift{}, shift.ErrShiftNotFound
}

func (f *fakeShiftRepo) List(ctx context.Context) ([]shift.Shift, error) {
	return f.shifts, nil
}

func (f *fakeShiftRepo) Update(ctx context.Context, req shift.UpdateShiftRequest) (shift.Shift, error) {
	return shift.Shift{}, shift.ErrShiftNotFound
}

func (f *fakeShiftRepo) Delete(ctx context.Context, id string) error {
	return shift.ErrShiftNotFound
}

type fakeFileService struct {
	saved   []string
	removed []string
}

func (f *fakeFileService) SaveSelfie(ctx context.Context, employeeID string, date time.Time, event string, file io.Reader, filename string) (string, error) {
	url := fmt.Sprintf("http://localhost/uploads/%s/%s", employeeID, event)
	f.saved = append(f.saved, url)
	return url, nil
}

func (f *fakeFileService) RemoveByURL(ctx context.Context, url string) error {
	f.removed = append(f.removed, url)
	return nil
}

func breakShift() shift.Shift {
	start2 := time.Date(0, 1, 1, 13, 0, 0, 0, time.UTC)
	end2 := time.Date(0, 1, 1, 17, 0, 0, 0, time.UTC)
	return shift.Shift{
		ID:            "shift-1",
		Name:          "Regular",
		Start1:        time.Date(0, 1, 1, 9, 0, 0, 0, time.UTC),
		End1:          time.Date(0, 1, 1, 12, 0, 0, 0, time.UTC),
		Start2:        &start2,
		End2:          &end2,
		ExpectedHours: 6,
		HasBreak:      true,
	}
}

func newTestService(t *testing.T, shifts ...shift.Shift) (*AttendanceServiceImpl, *fakeAttendanceRepo, *fakeFileService) {
	t.Helper()

	calc, err := NewCalculator(config.PayrollConfig{
		BaseSalary:    decimal.NewFromInt(80000),
		ExpectedHours: 6,
		Timezone:      "UTC",
	})
	require.NoError(t, err)

	repo := newFakeAttendanceRepo()
	files := &fakeFileService{}
	svc := NewAttendanceService(nil, repo, &fakeShiftRepo{shifts: shifts}, files, calc, sse.NewHub())
	return svc, repo, files
}

func TestPerformAction_FullDay(t *testing.T) {
	ctx := context.Background()
	svc, repo, _ := newTestService(t, breakShift())

	clock := time.Date(2025, 6, 2, 9, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return clock }

	// check-in 1
	resp, err := svc.PerformAction(ctx, "emp-1", attendance.ActionRequest{})
	require.NoError(t, err)
	require.NotNil(t, resp.CheckIn1)
	assert.Equal(t, "shift-1", resp.ShiftID)
	assert.Nil(t, resp.Salary)

	today, err := svc.GetToday(ctx, "emp-1")
	require.NoError(t, err)
	assert.Equal(t, attendance.StatusCheckedIn1, today.Status)
	assert.Equal(t, attendance.ActionWriteCheckOut1, today.NextAction)

	// check-out 1
	clock = clock.Add(3 * time.Hour)
	resp, err = svc.PerformAction(ctx, "emp-1", attendance.ActionRequest{})
	require.NoError(t, err)
	require.NotNil(t, resp.CheckOut1)
	assert.Nil(t, resp.Salary)

	today, err = svc.GetToday(ctx, "emp-1")
	require.NoError(t, err)
	assert.Equal(t, attendance.StatusOnBreak, today.Status)

	// check-in 2
	clock = clock.Add(time.Hour)
	resp, err = svc.PerformAction(ctx, "emp-1", attendance.ActionRequest{})
	require.NoError(t, err)
	require.NotNil(t, resp.CheckIn2)
	assert.Nil(t, resp.Salary)

	// check-out 2 completes the day and triggers the calculation
	clock = clock.Add(3 * time.Hour)
	resp, err = svc.PerformAction(ctx, "emp-1", attendance.ActionRequest{})
	require.NoError(t, err)
	require.NotNil(t, resp.CheckOut2)
	require.NotNil(t, resp.WorkHours)
	require.NotNil(t, resp.Salary)
	assert.Equal(t, float64(6), *resp.WorkHours)
	assert.Equal(t, int64(80000), *resp.Salary)

	today, err = svc.GetToday(ctx, "emp-1")
	require.NoError(t, err)
	assert.Equal(t, attendance.StatusCompleted, today.Status)
	assert.Equal(t, attendance.ActionNone, today.NextAction)

	stored, err := repo.GetByEmployeeAndDate(ctx, "emp-1", time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	require.NotNil(t, stored)
	require.NotNil(t, stored.Salary)
}

func TestPerformAction_AfterCompletionRejected(t *testing.T) {
	ctx := context.Background()
	svc, repo, _ := newTestService(t, breakShift())

	clock := time.Date(2025, 6, 2, 9, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return clock }

	for i := 0; i < 4; i++ {
		_, err := svc.PerformAction(ctx, "emp-1", attendance.ActionRequest{})
		require.NoError(t, err)
		clock = clock.Add(2 * time.Hour)
	}

	before, err := repo.GetByEmployeeAndDate(ctx, "emp-1", time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)

	_, err = svc.PerformAction(ctx, "emp-1", attendance.ActionRequest{})
	assert.ErrorIs(t, err, attendance.ErrAlreadyCompleted)

	after, err := repo.GetByEmployeeAndDate(ctx, "emp-1", time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Equal(t, before, after, "rejected action must not mutate the record")
}

func TestPerformAction_NoActiveShift(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newTestService(t, breakShift())

	svc.now = func() time.Time { return time.Date(2025, 6, 2, 3, 0, 0, 0, time.UTC) }

	_, err := svc.PerformAction(ctx, "emp-1", attendance.ActionRequest{})
	assert.ErrorIs(t, err, attendance.ErrNoActiveShift)
}

func TestPerformAction_SingleSessionCompletesOnFirstCheckOut(t *testing.T) {
	ctx := context.Background()
	single := shift.Shift{
		ID:            "shift-night",
		Name:          "Night",
		Start1:        time.Date(0, 1, 1, 9, 0, 0, 0, time.UTC),
		End1:          time.Date(0, 1, 1, 18, 0, 0, 0, time.UTC),
		ExpectedHours: 6,
		HasBreak:      false,
	}
	svc, _, _ := newTestService(t, single)

	clock := time.Date(2025, 6, 2, 9, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return clock }

	_, err := svc.PerformAction(ctx, "emp-1", attendance.ActionRequest{})
	require.NoError(t, err)

	clock = clock.Add(6 * time.Hour)
	resp, err := svc.PerformAction(ctx, "emp-1", attendance.ActionRequest{})
	require.NoError(t, err)
	require.NotNil(t, resp.Salary)
	assert.Equal(t, int64(80000), *resp.Salary)

	today, err := svc.GetToday(ctx, "emp-1")
	require.NoError(t, err)
	assert.Equal(t, attendance.StatusCompleted, today.Status)
}

// Two concurrent first check-ins insert once; the loser gets the winner's
// record back instead of an error.
func TestPerformAction_FirstCheckInRace(t *testing.T) {
	ctx := context.Background()
	svc, repo, _ := newTestService(t, breakShift())

	clock := time.Date(2025, 6, 2, 9, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return clock }

	winner, err := svc.PerformAction(ctx, "emp-1", attendance.ActionRequest{})
	require.NoError(t, err)

	// simulate the loser racing past the existence check
	date := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)
	now := clock
	loser, created, err := repo.CreateFirstCheckIn(ctx, attendance.Record{
		EmployeeID: "emp-1",
		Date:       date,
		ShiftID:    "shift-1",
		CheckIn1:   &now,
	})
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, winner.ID, loser.ID)
}

func TestGetStatus_OnGivenDate(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newTestService(t, breakShift())

	clock := time.Date(2025, 6, 2, 9, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return clock }

	_, err := svc.PerformAction(ctx, "emp-1", attendance.ActionRequest{})
	require.NoError(t, err)

	status, err := svc.GetStatus(ctx, "emp-1", time.Date(2025, 6, 2, 15, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Equal(t, attendance.StatusCheckedIn1, status)

	status, err = svc.GetStatus(ctx, "emp-1", time.Date(2025, 6, 3, 9, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Equal(t, attendance.StatusNotStarted, status)
}

func edited(v string) *string { return &v }

// completeDay walks a record through all four actions and returns it.
func completeDay(t *testing.T, svc *AttendanceServiceImpl) attendance.RecordResponse {
	t.Helper()
	ctx := context.Background()

	clock := time.Date(2025, 6, 2, 9, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return clock }

	var resp attendance.RecordResponse
	var err error
	for _, step := range []time.Duration{0, 3 * time.Hour, time.Hour, 3 * time.Hour} {
		clock = clock.Add(step)
		resp, err = svc.PerformAction(ctx, "emp-1", attendance.ActionRequest{})
		require.NoError(t, err)
	}
	return resp
}

func TestUpdateRecord_RecomputesDerivedFields(t *testing.T) {
	ctx := context.Background()
	svc, repo, _ := newTestService(t, breakShift())

	rec := completeDay(t, svc)
	require.NotNil(t, rec.Salary)
	assert.Equal(t, int64(80000), *rec.Salary)

	// pull the second check-out back an hour, the day stays complete
	resp, err := svc.UpdateRecord(ctx, attendance.UpdateRecordRequest{
		ID:        rec.ID,
		CheckOut2: edited("2025-06-02T15:00:00Z"),
	})
	require.NoError(t, err)
	require.NotNil(t, resp.WorkHours)
	require.NotNil(t, resp.Salary)
	assert.Equal(t, float64(5), *resp.WorkHours)
	assert.Equal(t, int64(66667), *resp.Salary)

	stored, err := repo.GetByID(ctx, rec.ID)
	require.NoError(t, err)
	require.NotNil(t, stored.Salary)
	assert.Equal(t, "66667", stored.Salary.String())
}

func TestUpdateRecord_ClearingTimestampDropsDerivedFields(t *testing.T) {
	ctx := context.Background()
	svc, repo, _ := newTestService(t, breakShift())

	rec := completeDay(t, svc)
	require.NotNil(t, rec.Salary)

	// clearing check-out 2 reopens the day
	resp, err := svc.UpdateRecord(ctx, attendance.UpdateRecordRequest{
		ID:        rec.ID,
		CheckOut2: edited(""),
	})
	require.NoError(t, err)
	assert.Nil(t, resp.CheckOut2)
	assert.Nil(t, resp.WorkHours)
	assert.Nil(t, resp.Salary)

	status, err := svc.GetStatus(ctx, "emp-1", time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Equal(t, attendance.StatusCheckedIn2, status)

	stored, err := repo.GetByID(ctx, rec.ID)
	require.NoError(t, err)
	assert.Nil(t, stored.WorkHours)
	assert.Nil(t, stored.Salary)
}

func TestUpdateRecord_UnknownRecord(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newTestService(t, breakShift())

	_, err := svc.UpdateRecord(ctx, attendance.UpdateRecordRequest{
		ID:        "missing",
		CheckOut2: edited("2025-06-02T15:00:00Z"),
	})
	assert.ErrorIs(t, err, attendance.ErrRecordNotFound)
}

func TestGetToday_BeforeFirstCheckIn(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newTestService(t, breakShift())
	svc.now = func() time.Time { return time.Date(2025, 6, 2, 8, 0, 0, 0, time.UTC) }

	today, err := svc.GetToday(ctx, "emp-1")
	require.NoError(t, err)
	assert.Nil(t, today.Record)
	assert.Equal(t, attendance.StatusNotStarted, today.Status)
	assert.Equal(t, attendance.ActionWriteCheckIn1, today.NextAction)
}
