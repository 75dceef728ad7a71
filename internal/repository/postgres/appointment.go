package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/polyclinic/clinic-api/internal/model"
	"github.com/polyclinic/clinic-api/pkg/apperror"
)

const appointmentColumns = `id, patient_id, doctor_id, appointment_date,
	appointment_time, diagnosis, status, created_at, updated_at`

func (r *appointmentRepository) Create(ctx context.Context, appointment *model.Appointment) error {
	query := `
		INSERT INTO appointments (
			id, patient_id, doctor_id, appointment_date, appointment_time,
			diagnosis, status, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	appointment.ID = uuid.New()
	appointment.CreatedAt = time.Now()
	appointment.UpdatedAt = time.Now()

	_, err := r.ext(ctx).ExecContext(ctx, query,
		appointment.ID,
		appointment.PatientID,
		appointment.DoctorID,
		appointment.Date,
		appointment.Time,
		appointment.Diagnosis,
		appointment.Status,
		appointment.CreatedAt,
		appointment.UpdatedAt,
	)
	if err != nil {
		return apperror.Store(err, "failed to create appointment")
	}
	return nil
}

func (r *appointmentRepository) Get(ctx context.Context, id uuid.UUID) (*model.Appointment, error) {
	query := `SELECT ` + appointmentColumns + ` FROM appointments WHERE id = $1`

	var appointment model.Appointment
	err := sqlx.GetContext(ctx, r.ext(ctx), &appointment, query, id)
	if err != nil {
		if isNoRows(err) {
			return nil, apperror.NotFound("appointment", id)
		}
		return nil, apperror.Store(err, "failed to get appointment")
	}
	return &appointment, nil
}

func (r *appointmentRepository) List(ctx context.Context, filters *model.AppointmentFilters) ([]*model.Appointment, error) {
	filters.Normalize()

	query := `SELECT ` + appointmentColumns + ` FROM appointments WHERE 1=1`
	args := []interface{}{}
	argCount := 1

	if filters.PatientID != uuid.Nil {
		query += fmt.Sprintf(" AND patient_id = $%d", argCount)
		args = append(args, filters.PatientID)
		argCount++
	}
	if filters.DoctorID != uuid.Nil {
		query += fmt.Sprintf(" AND doctor_id = $%d", argCount)
		args = append(args, filters.DoctorID)
		argCount++
	}
	if filters.Status != "" {
		query += fmt.Sprintf(" AND status = $%d", argCount)
		args = append(args, filters.Status)
		argCount++
	}
	if filters.Date != nil {
		query += fmt.Sprintf(" AND appointment_date = $%d", argCount)
		args = append(args, *filters.Date)
		argCount++
	}

	query += fmt.Sprintf(" ORDER BY appointment_date DESC, appointment_time ASC OFFSET $%d LIMIT $%d",
		argCount, argCount+1)
	args = append(args, filters.Offset, filters.Limit)

	var appointments []*model.Appointment
	err := sqlx.SelectContext(ctx, r.ext(ctx), &appointments, query, args...)
	if err != nil {
		return nil, apperror.Store(err, "failed to list appointments")
	}
	return appointments, nil
}

func (r *appointmentRepository) ListForDoctorDay(ctx context.Context, doctorID uuid.UUID, date model.DateOnly) ([]*model.Appointment, error) {
	query := `SELECT ` + appointmentColumns + `
		FROM appointments
		WHERE doctor_id = $1
		AND appointment_date = $2
		AND status IN ('scheduled', 'completed')
		ORDER BY appointment_time ASC
	`
	var appointments []*model.Appointment
	err := sqlx.SelectContext(ctx, r.ext(ctx), &appointments, query, doctorID, date)
	if err != nil {
		return nil, apperror.Store(err, "failed to list doctor appointments for day")
	}
	return appointments, nil
}

func (r *appointmentRepository) Update(ctx context.Context, appointment *model.Appointment) error {
	query := `
		UPDATE appointments
		SET appointment_date = $1, appointment_time = $2, diagnosis = $3,
			status = $4, updated_at = $5
		WHERE id = $6
	`
	appointment.UpdatedAt = time.Now()

	result, err := r.ext(ctx).ExecContext(ctx, query,
		appointment.Date,
		appointment.Time,
		appointment.Diagnosis,
		appointment.Status,
		appointment.UpdatedAt,
		appointment.ID,
	)
	if err != nil {
		return apperror.Store(err, "failed to update appointment")
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return apperror.Store(err, "failed to get rows affected")
	}
	if rows == 0 {
		return apperror.NotFound("appointment", appointment.ID)
	}
	return nil
}

func (r *appointmentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.ext(ctx).ExecContext(ctx, `DELETE FROM appointments WHERE id = $1`, id)
	if err != nil {
		return apperror.Store(err, "failed to delete appointment")
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return apperror.Store(err, "failed to get rows affected")
	}
	if rows == 0 {
		return apperror.NotFound("appointment", id)
	}
	return nil
}

func (r *appointmentRepository) CountScheduledForDoctor(ctx context.Context, doctorID uuid.UUID) (int, error) {
	var count int
	err := sqlx.GetContext(ctx, r.ext(ctx), &count,
		`SELECT COUNT(*) FROM appointments WHERE doctor_id = $1 AND status = 'scheduled'`, doctorID)
	if err != nil {
		return 0, apperror.Store(err, "failed to count scheduled appointments")
	}
	return count, nil
}

func (r *appointmentRepository) CountForDoctor(ctx context.Context, doctorID uuid.UUID) (int, error) {
	var count int
	err := sqlx.GetContext(ctx, r.ext(ctx), &count,
		`SELECT COUNT(*) FROM appointments WHERE doctor_id = $1`, doctorID)
	if err != nil {
		return 0, apperror.Store(err, "failed to count appointments")
	}
	return count, nil
}

// WithDoctorLock serializes concurrent bookings for one doctor: the
// conflict check and the insert/update both happen while the doctor row
// is locked, so no two requests can validate against a stale view of
// each other.
func (r *appointmentRepository) WithDoctorLock(ctx context.Context, doctorID uuid.UUID, fn func(ctx context.Context) error) error {
	return r.WithTx(ctx, func(ctx context.Context) error {
		var id uuid.UUID
		err := sqlx.GetContext(ctx, r.ext(ctx), &id,
			`SELECT id FROM doctors WHERE id = $1 FOR UPDATE`, doctorID)
		if err != nil {
			if isNoRows(err) {
				return apperror.NotFound("doctor", doctorID)
			}
			return apperror.Store(err, "failed to lock doctor row")
		}
		return fn(ctx)
	})
}
