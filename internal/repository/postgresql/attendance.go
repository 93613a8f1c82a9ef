package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/hadirin/hadirin-backend-go/internal/domain/attendance"
	"github.com/hadirin/hadirin-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

type attendanceRepository struct {
	db *database.DB
}

func NewAttendanceRepository(db *database.DB) attendance.AttendanceRepository {
	return &attendanceRepository{db: db}
}

const recordColumns = `
	r.id, r.employee_id, r.date, r.shift_id,
	r.check_in_1, r.check_out_1, r.check_in_2, r.check_out_2,
	r.selfie_check_in_1, r.selfie_check_out_1, r.selfie_check_in_2, r.selfie_check_out_2,
	r.calculated_work_hours, r.calculated_salary,
	r.created_at, r.updated_at,
	e.name AS employee_name, s.name AS shift_name
`

const recordJoins = `
	FROM attendance_records r
	JOIN employees e ON e.id = r.employee_id
	JOIN shifts s ON s.id = r.shift_id
`

// CreateFirstCheckIn implements attendance.AttendanceRepository. The unique
// constraint on (employee_id, date) plus ON CONFLICT DO NOTHING makes the
// first check-in atomic: the loser of a create race reads back the winner's
// row untouched.
func (a *attendanceRepository) CreateFirstCheckIn(ctx context.Context, rec attendance.Record) (attendance.Record, bool, error) {
	q := GetQuerier(ctx, a.db)

	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}

	query := `
		INSERT INTO attendance_records (id, employee_id, date, shift_id, check_in_1, selfie_check_in_1)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (employee_id, date) DO NOTHING
		RETURNING created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		rec.ID, rec.EmployeeID, rec.Date, rec.ShiftID, rec.CheckIn1, rec.SelfieCheckIn1,
	).Scan(&rec.CreatedAt, &rec.UpdatedAt)

	if err == nil {
		return rec, true, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return attendance.Record{}, false, fmt.Errorf("failed to create attendance record: %w", err)
	}

	// conflict: another writer created today's record first
	existing, err := a.GetByEmployeeAndDate(ctx, rec.EmployeeID, rec.Date)
	if err != nil {
		return attendance.Record{}, false, err
	}
	if existing == nil {
		return attendance.Record{}, false, fmt.Errorf("attendance record vanished after insert conflict: %w", attendance.ErrRecordNotFound)
	}
	return *existing, false, nil
}

// GetByEmployeeAndDate implements attendance.AttendanceRepository.
func (a *attendanceRepository) GetByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (*attendance.Record, error) {
	q := GetQuerier(ctx, a.db)

	query := `SELECT ` + recordColumns + recordJoins + `
		WHERE r.employee_id = $1 AND r.date = $2
		LIMIT 1
	`

	rec, err := scanRecord(q.QueryRow(ctx, query, employeeID, date))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get attendance record: %w", err)
	}
	return &rec, nil
}

// GetByID implements attendance.AttendanceRepository.
func (a *attendanceRepository) GetByID(ctx context.Context, id string) (attendance.Record, error) {
	q := GetQuerier(ctx, a.db)

	query := `SELECT ` + recordColumns + recordJoins + `
		WHERE r.id = $1
	`

	rec, err := scanRecord(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.Record{}, attendance.ErrRecordNotFound
		}
		return attendance.Record{}, fmt.Errorf("failed to get attendance record: %w", err)
	}
	return rec, nil
}

// Update implements attendance.AttendanceRepository. The row write covers the
// timestamps and selfie references in one statement so a timestamp and its
// selfie never apply partially.
func (a *attendanceRepository) Update(ctx context.Context, rec attendance.Record) error {
	q := GetQuerier(ctx, a.db)

	query := `
		UPDATE attendance_records SET
			check_in_1 = $2,
			check_out_1 = $3,
			check_in_2 = $4,
			check_out_2 = $5,
			selfie_check_in_1 = $6,
			selfie_check_out_1 = $7,
			selfie_check_in_2 = $8,
			selfie_check_out_2 = $9,
			calculated_work_hours = $10,
			calculated_salary = $11,
			updated_at = NOW()
		WHERE id = $1
	`

	tag, err := q.Exec(ctx, query,
		rec.ID,
		rec.CheckIn1, rec.CheckOut1, rec.CheckIn2, rec.CheckOut2,
		rec.SelfieCheckIn1, rec.SelfieCheckOut1, rec.SelfieCheckIn2, rec.SelfieCheckOut2,
		rec.WorkHours, rec.Salary,
	)
	if err != nil {
		return fmt.Errorf("failed to update attendance record: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return attendance.ErrRecordNotFound
	}
	return nil
}

// UpdateDerived implements attendance.AttendanceRepository.
func (a *attendanceRepository) UpdateDerived(ctx context.Context, employeeID string, date time.Time, workHours, salary decimal.Decimal) error {
	q := GetQuerier(ctx, a.db)

	query := `
		UPDATE attendance_records SET
			calculated_work_hours = $3,
			calculated_salary = $4,
			updated_at = NOW()
		WHERE employee_id = $1 AND date = $2
	`

	tag, err := q.Exec(ctx, query, employeeID, date, workHours, salary)
	if err != nil {
		return fmt.Errorf("failed to store derived fields: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return attendance.ErrRecordNotFound
	}
	return nil
}

// ListByEmployee implements attendance.AttendanceRepository.
func (a *attendanceRepository) ListByEmployee(ctx context.Context, employeeID string, filter attendance.HistoryFilter) ([]attendance.Record, int64, error) {
	q := GetQuerier(ctx, a.db)

	where := `WHERE r.employee_id = $1`
	args := []interface{}{employeeID}

	if filter.StartDate != "" {
		args = append(args, filter.StartDate)
		where += fmt.Sprintf(" AND r.date >= $%d", len(args))
	}
	if filter.EndDate != "" {
		args = append(args, filter.EndDate)
		where += fmt.Sprintf(" AND r.date <= $%d", len(args))
	}

	var total int64
	countQuery := `SELECT COUNT(*) FROM attendance_records r ` + where
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count attendance records: %w", err)
	}

	args = append(args, filter.Limit, (filter.Page-1)*filter.Limit)
	query := `SELECT ` + recordColumns + recordJoins + where +
		fmt.Sprintf(` ORDER BY r.date DESC LIMIT $%d OFFSET $%d`, len(args)-1, len(args))

	records, err := a.queryRecords(ctx, q, query, args...)
	if err != nil {
		return nil, 0, err
	}
	return records, total, nil
}

// List implements attendance.AttendanceRepository.
func (a *attendanceRepository) List(ctx context.Context, filter attendance.AdminFilter) ([]attendance.Record, int64, error) {
	q := GetQuerier(ctx, a.db)

	where := `WHERE 1=1`
	var args []interface{}

	if filter.EmployeeID != "" {
		args = append(args, filter.EmployeeID)
		where += fmt.Sprintf(" AND r.employee_id = $%d", len(args))
	}
	if filter.StartDate != "" {
		args = append(args, filter.StartDate)
		where += fmt.Sprintf(" AND r.date >= $%d", len(args))
	}
	if filter.EndDate != "" {
		args = append(args, filter.EndDate)
		where += fmt.Sprintf(" AND r.date <= $%d", len(args))
	}

	var total int64
	countQuery := `SELECT COUNT(*) FROM attendance_records r ` + where
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count attendance records: %w", err)
	}

	args = append(args, filter.Limit, (filter.Page-1)*filter.Limit)
	query := `SELECT ` + recordColumns + recordJoins + where +
		fmt.Sprintf(` ORDER BY r.date DESC, e.name LIMIT $%d OFFSET $%d`, len(args)-1, len(args))

	records, err := a.queryRecords(ctx, q, query, args...)
	if err != nil {
		return nil, 0, err
	}
	return records, total, nil
}

// Delete implements attendance.AttendanceRepository.
func (a *attendanceRepository) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, a.db)

	tag, err := q.Exec(ctx, `DELETE FROM attendance_records WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete attendance record: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return attendance.ErrRecordNotFound
	}
	return nil
}

func (a *attendanceRepository) queryRecords(ctx context.Context, q database.Querier, query string, args ...interface{}) ([]attendance.Record, error) {
	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query attendance records: %w", err)
	}
	defer rows.Close()

	var records []attendance.Record
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan attendance record: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate attendance records: %w", err)
	}

	return records, nil
}

func scanRecord(row pgx.Row) (attendance.Record, error) {
	var rec attendance.Record
	err := row.Scan(
		&rec.ID, &rec.EmployeeID, &rec.Date, &rec.ShiftID,
		&rec.CheckIn1, &rec.CheckOut1, &rec.CheckIn2, &rec.CheckOut2,
		&rec.SelfieCheckIn1, &rec.SelfieCheckOut1, &rec.SelfieCheckIn2, &rec.SelfieCheckOut2,
		&rec.WorkHours, &rec.Salary,
		&rec.CreatedAt, &rec.UpdatedAt,
		&rec.EmployeeName, &rec.ShiftName,
	)
	return rec, err
}
