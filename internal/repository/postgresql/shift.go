package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/hadirin/hadirin-backend-go/internal/domain/shift"
	"github.com/hadirin/hadirin-backend-go/internal/pkg/database"
	"github.com/hadirin/hadirin-backend-go/internal/pkg/validator"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

type shiftRepository struct {
	db *database.DB
}

func NewShiftRepository(db *database.DB) shift.ShiftRepository {
	return &shiftRepository{db: db}
}

// Create implements shift.ShiftRepository.
func (r *shiftRepository) Create(ctx context.Context, s shift.Shift) (shift.Shift, error) {
	q := GetQuerier(ctx, r.db)

	if s.ID == "" {
		s.ID = uuid.NewString()
	}

	query := `
		INSERT INTO shifts (id, name, start_time_1, end_time_1, start_time_2, end_time_2, expected_hours, has_break)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		s.ID, s.Name, s.Start1, s.End1, s.Start2, s.End2, s.ExpectedHours, s.HasBreak,
	).Scan(&s.CreatedAt, &s.UpdatedAt)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return shift.Shift{}, shift.ErrShiftNameExists
		}
		return shift.Shift{}, fmt.Errorf("failed to create shift: %w", err)
	}

	return s, nil
}

// GetByID implements shift.ShiftRepository.
func (r *shiftRepository) GetByID(ctx context.Context, id string) (shift.Shift, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, name, start_time_1, end_time_1, start_time_2, end_time_2,
		       expected_hours, has_break, created_at, updated_at
		FROM shifts
		WHERE id = $1
	`

	s, err := scanShift(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return shift.Shift{}, shift.ErrShiftNotFound
		}
		return shift.Shift{}, fmt.Errorf("failed to get shift: %w", err)
	}
	return s, nil
}

// List implements shift.ShiftRepository. Creation order is the catalog's
// priority order; ActiveShift relies on it when windows overlap.
func (r *shiftRepository) List(ctx context.Context) ([]shift.Shift, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, name, start_time_1, end_time_1, start_time_2, end_time_2,
		       expected_hours, has_break, created_at, updated_at
		FROM shifts
		ORDER BY created_at, id
	`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list shifts: %w", err)
	}
	defer rows.Close()

	var shifts []shift.Shift
	for rows.Next() {
		s, err := scanShift(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan shift: %w", err)
		}
		shifts = append(shifts, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate shifts: %w", err)
	}

	return shifts, nil
}

// Update implements shift.ShiftRepository.
func (r *shiftRepository) Update(ctx context.Context, req shift.UpdateShiftRequest) (shift.Shift, error) {
	q := GetQuerier(ctx, r.db)

	// time-of-day strings were validated upstream
	var start1, end1, start2, end2 interface{}
	if req.Start1 != nil {
		t, _ := validator.IsValidTimeOfDay(*req.Start1)
		start1 = t
	}
	if req.End1 != nil {
		t, _ := validator.IsValidTimeOfDay(*req.End1)
		end1 = t
	}
	if req.Start2 != nil {
		t, _ := validator.IsValidTimeOfDay(*req.Start2)
		start2 = t
	}
	if req.End2 != nil {
		t, _ := validator.IsValidTimeOfDay(*req.End2)
		end2 = t
	}

	query := `
		UPDATE shifts SET
			name = COALESCE($2, name),
			start_time_1 = COALESCE($3, start_time_1),
			end_time_1 = COALESCE($4, end_time_1),
			start_time_2 = COALESCE($5, start_time_2),
			end_time_2 = COALESCE($6, end_time_2),
			expected_hours = COALESCE($7, expected_hours),
			has_break = COALESCE($8, has_break),
			updated_at = NOW()
		WHERE id = $1
	`

	tag, err := q.Exec(ctx, query, req.ID, req.Name, start1, end1, start2, end2, req.ExpectedHours, req.HasBreak)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return shift.Shift{}, shift.ErrShiftNameExists
		}
		return shift.Shift{}, fmt.Errorf("failed to update shift: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return shift.Shift{}, shift.ErrShiftNotFound
	}

	return r.GetByID(ctx, req.ID)
}

// Delete implements shift.ShiftRepository.
func (r *shiftRepository) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	var assigned int64
	err := q.QueryRow(ctx, `SELECT COUNT(*) FROM employees WHERE assigned_shift_id = $1`, id).Scan(&assigned)
	if err != nil {
		return fmt.Errorf("failed to check shift assignments: %w", err)
	}
	if assigned > 0 {
		return shift.ErrShiftInUse
	}

	tag, err := q.Exec(ctx, `DELETE FROM shifts WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete shift: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return shift.ErrShiftNotFound
	}
	return nil
}

func scanShift(row pgx.Row) (shift.Shift, error) {
	var s shift.Shift
	err := row.Scan(
		&s.ID, &s.Name, &s.Start1, &s.End1, &s.Start2, &s.End2,
		&s.ExpectedHours, &s.HasBreak, &s.CreatedAt, &s.UpdatedAt,
	)
	return s, err
}
