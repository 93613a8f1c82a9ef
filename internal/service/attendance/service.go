package attendance

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/hadirin/hadirin-backend-go/internal/domain/attendance"
	"github.com/hadirin/hadirin-backend-go/internal/domain/shift"
	"github.com/hadirin/hadirin-backend-go/internal/pkg/database"
	"github.com/hadirin/hadirin-backend-go/internal/pkg/sse"
	"github.com/hadirin/hadirin-backend-go/internal/pkg/validator"
	"github.com/hadirin/hadirin-backend-go/internal/repository/postgresql"
	"github.com/hadirin/hadirin-backend-go/internal/service/file"
)

type AttendanceServiceImpl struct {
	db *database.DB
	attendance.AttendanceRepository
	shift.ShiftRepository
	fileService file.FileService
	calculator  *Calculator
	hub         *sse.Hub

	now func() time.Time
}

func NewAttendanceService(
	db *database.DB,
	attendanceRepo attendance.AttendanceRepository,
	shiftRepo shift.ShiftRepository,
	fileService file.FileService,
	calculator *Calculator,
	hub *sse.Hub,
) *AttendanceServiceImpl {
	return &AttendanceServiceImpl{
		db:                   db,
		AttendanceRepository: attendanceRepo,
		ShiftRepository:      shiftRepo,
		fileService:          fileService,
		calculator:           calculator,
		hub:                  hub,
		now:                  time.Now,
	}
}

// civilDate converts a local timestamp to the DATE key of its working day.
func civilDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// GetToday implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) GetToday(ctx context.Context, employeeID string) (attendance.TodayResponse, error) {
	nowLocal := s.now().In(s.calculator.Location())
	rec, status, _, err := s.resolve(ctx, employeeID, civilDate(nowLocal))
	if err != nil {
		return attendance.TodayResponse{}, err
	}

	resp := attendance.TodayResponse{
		Status:     status,
		NextAction: attendance.NextAction(status),
	}
	if rec != nil {
		mapped := attendance.NewRecordResponse(*rec)
		resp.Record = &mapped
	}
	return resp, nil
}

// GetStatus implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) GetStatus(ctx context.Context, employeeID string, date time.Time) (attendance.Status, error) {
	_, status, _, err := s.resolve(ctx, employeeID, civilDate(date))
	return status, err
}

// resolve fetches the record (nil when absent) and derives its status. The
// shift returned is the one bound to the record; zero value when no record
// exists yet.
func (s *AttendanceServiceImpl) resolve(ctx context.Context, employeeID string, date time.Time) (*attendance.Record, attendance.Status, shift.Shift, error) {
	rec, err := s.AttendanceRepository.GetByEmployeeAndDate(ctx, employeeID, date)
	if err != nil {
		return nil, "", shift.Shift{}, err
	}
	if rec == nil {
		return nil, attendance.StatusNotStarted, shift.Shift{}, nil
	}

	sh, err := s.ShiftRepository.GetByID(ctx, rec.ShiftID)
	if err != nil {
		return nil, "", shift.Shift{}, fmt.Errorf("failed to load shift bound to record: %w", err)
	}

	return rec, attendance.ResolveStatus(*rec, sh), sh, nil
}

// PerformAction implements attendance.AttendanceService. The flow is
// read-then-write: the status decides the single permitted write, so an
// idempotent re-invoke after a transient failure repeats the same pending
// action instead of stacking a new one.
func (s *AttendanceServiceImpl) PerformAction(ctx context.Context, employeeID string, req attendance.ActionRequest) (attendance.RecordResponse, error) {
	nowUTC := s.now().UTC()
	nowLocal := nowUTC.In(s.calculator.Location())
	date := civilDate(nowLocal)

	rec, status, sh, err := s.resolve(ctx, employeeID, date)
	if err != nil {
		return attendance.RecordResponse{}, err
	}

	action := attendance.NextAction(status)
	if action == attendance.ActionNone {
		return attendance.RecordResponse{}, attendance.ErrAlreadyCompleted
	}

	if action == attendance.ActionWriteCheckIn1 {
		return s.firstCheckIn(ctx, employeeID, date, nowUTC, nowLocal, req)
	}

	selfieURL, err := s.saveSelfie(ctx, employeeID, date, action, req)
	if err != nil {
		return attendance.RecordResponse{}, err
	}

	applyAction(rec, action, nowUTC, selfieURL)

	if err := s.AttendanceRepository.Update(ctx, *rec); err != nil {
		s.discardSelfie(ctx, selfieURL)
		return attendance.RecordResponse{}, err
	}

	// the final checkout triggers the salary computation, exactly once
	if attendance.Completes(action, sh) {
		workHours, salary := s.calculator.Calculate(*rec)
		if err := s.AttendanceRepository.UpdateDerived(ctx, employeeID, date, workHours, salary); err != nil {
			return attendance.RecordResponse{}, fmt.Errorf("salary calculation failed: %w", err)
		}
		rec.WorkHours = &workHours
		rec.Salary = &salary
	}

	resp := attendance.NewRecordResponse(*rec)
	s.broadcast(resp)
	return resp, nil
}

func (s *AttendanceServiceImpl) firstCheckIn(ctx context.Context, employeeID string, date, nowUTC, nowLocal time.Time, req attendance.ActionRequest) (attendance.RecordResponse, error) {
	shifts, err := s.ShiftRepository.List(ctx)
	if err != nil {
		return attendance.RecordResponse{}, fmt.Errorf("failed to load shift catalog: %w", err)
	}

	active := shift.ActiveShift(nowLocal, shifts)
	if active == nil {
		return attendance.RecordResponse{}, attendance.ErrNoActiveShift
	}

	selfieURL, err := s.saveSelfie(ctx, employeeID, date, attendance.ActionWriteCheckIn1, req)
	if err != nil {
		return attendance.RecordResponse{}, err
	}

	created, wasCreated, err := s.AttendanceRepository.CreateFirstCheckIn(ctx, attendance.Record{
		EmployeeID:     employeeID,
		Date:           date,
		ShiftID:        active.ID,
		CheckIn1:       &nowUTC,
		SelfieCheckIn1: selfieURL,
	})
	if err != nil {
		s.discardSelfie(ctx, selfieURL)
		return attendance.RecordResponse{}, err
	}
	if !wasCreated {
		// lost the create race; the winner's record stands
		s.discardSelfie(ctx, selfieURL)
	}

	resp := attendance.NewRecordResponse(created)
	s.broadcast(resp)
	return resp, nil
}

func (s *AttendanceServiceImpl) saveSelfie(ctx context.Context, employeeID string, date time.Time, action attendance.Action, req attendance.ActionRequest) (*string, error) {
	if req.File == nil {
		return nil, nil
	}
	url, err := s.fileService.SaveSelfie(ctx, employeeID, date, string(action), req.File, req.FileHeader.Filename)
	if err != nil {
		return nil, fmt.Errorf("failed to store selfie: %w", err)
	}
	return &url, nil
}

func (s *AttendanceServiceImpl) discardSelfie(ctx context.Context, url *string) {
	if url == nil {
		return
	}
	if err := s.fileService.RemoveByURL(ctx, *url); err != nil {
		slog.Warn("failed to remove orphaned selfie", "url", *url, "error", err)
	}
}

// applyAction writes the one timestamp the action names, with its selfie, so
// both land in the same row update.
func applyAction(rec *attendance.Record, action attendance.Action, ts time.Time, selfieURL *string) {
	switch action {
	case attendance.ActionWriteCheckOut1:
		rec.CheckOut1 = &ts
		rec.SelfieCheckOut1 = selfieURL
	case attendance.ActionWriteCheckIn2:
		rec.CheckIn2 = &ts
		rec.SelfieCheckIn2 = selfieURL
	case attendance.ActionWriteCheckOut2:
		rec.CheckOut2 = &ts
		rec.SelfieCheckOut2 = selfieURL
	}
}

func (s *AttendanceServiceImpl) broadcast(resp attendance.RecordResponse) {
	if s.hub == nil {
		return
	}
	s.hub.Broadcast(sse.Event{Event: "attendance_updated", Data: resp})
}

// GetMyAttendance implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) GetMyAttendance(ctx context.Context, employeeID string, filter attendance.HistoryFilter) (attendance.ListRecordsResponse, error) {
	if err := filter.Validate(); err != nil {
		return attendance.ListRecordsResponse{}, err
	}

	records, total, err := s.AttendanceRepository.ListByEmployee(ctx, employeeID, filter)
	if err != nil {
		return attendance.ListRecordsResponse{}, fmt.Errorf("failed to list attendance history: %w", err)
	}

	return listResponse(records, total, filter.Page, filter.Limit), nil
}

// ListAttendance implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) ListAttendance(ctx context.Context, filter attendance.AdminFilter) (attendance.ListRecordsResponse, error) {
	if err := filter.Validate(); err != nil {
		return attendance.ListRecordsResponse{}, err
	}

	records, total, err := s.AttendanceRepository.List(ctx, filter)
	if err != nil {
		return attendance.ListRecordsResponse{}, fmt.Errorf("failed to list attendance records: %w", err)
	}

	return listResponse(records, total, filter.Page, filter.Limit), nil
}

func listResponse(records []attendance.Record, total int64, page, limit int) attendance.ListRecordsResponse {
	responses := make([]attendance.RecordResponse, 0, len(records))
	for _, rec := range records {
		responses = append(responses, attendance.NewRecordResponse(rec))
	}

	return attendance.ListRecordsResponse{
		TotalCount: total,
		Page:       page,
		Limit:      limit,
		TotalPages: int(math.Ceil(float64(total) / float64(limit))),
		Records:    responses,
	}
}

// UpdateRecord implements attendance.AttendanceService. Admin override for
// fixing wrong timestamps; derived fields are recomputed inside the same
// transaction when the record is complete.
func (s *AttendanceServiceImpl) UpdateRecord(ctx context.Context, req attendance.UpdateRecordRequest) (attendance.RecordResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.RecordResponse{}, err
	}

	var updated attendance.Record
	err := s.withTransaction(ctx, func(txCtx context.Context) error {
		rec, err := s.AttendanceRepository.GetByID(txCtx, req.ID)
		if err != nil {
			return err
		}

		applyTimestamp(&rec.CheckIn1, req.CheckIn1)
		applyTimestamp(&rec.CheckOut1, req.CheckOut1)
		applyTimestamp(&rec.CheckIn2, req.CheckIn2)
		applyTimestamp(&rec.CheckOut2, req.CheckOut2)

		sh, err := s.ShiftRepository.GetByID(txCtx, rec.ShiftID)
		if err != nil {
			return fmt.Errorf("failed to load shift bound to record: %w", err)
		}

		if attendance.ResolveStatus(rec, sh) == attendance.StatusCompleted {
			workHours, salary := s.calculator.Calculate(rec)
			rec.WorkHours = &workHours
			rec.Salary = &salary
		} else {
			rec.WorkHours = nil
			rec.Salary = nil
		}

		if err := s.AttendanceRepository.Update(txCtx, rec); err != nil {
			return err
		}

		updated = rec
		return nil
	})
	if err != nil {
		return attendance.RecordResponse{}, err
	}

	resp := attendance.NewRecordResponse(updated)
	s.broadcast(resp)
	return resp, nil
}

// withTransaction runs fn inside a database transaction. Without a pool the
// callback runs against whatever repositories the service was built with.
func (s *AttendanceServiceImpl) withTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if s.db == nil {
		return fn(ctx)
	}
	return postgresql.WithTransaction(ctx, s.db, fn)
}

func applyTimestamp(dst **time.Time, value *string) {
	if value == nil {
		return
	}
	if *value == "" {
		*dst = nil
		return
	}
	if t, ok := validator.IsValidDateTime(*value); ok {
		utc := t.UTC()
		*dst = &utc
	}
}

// DeleteRecord implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) DeleteRecord(ctx context.Context, id string) error {
	if err := s.AttendanceRepository.Delete(ctx, id); err != nil {
		if errors.Is(err, attendance.ErrRecordNotFound) {
			return attendance.ErrRecordNotFound
		}
		return fmt.Errorf("failed to delete attendance record: %w", err)
	}
	return nil
}
