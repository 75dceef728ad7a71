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

func (r *doctorRepository) Create(ctx context.Context, doctor *model.Doctor, specializationIDs []uuid.UUID) error {
	doctor.ID = uuid.New()
	doctor.CreatedAt = time.Now()
	doctor.UpdatedAt = time.Now()

	return r.WithTx(ctx, func(ctx context.Context) error {
		query := `
			INSERT INTO doctors (
				id, full_name, phone, experience_years, cabinet_id,
				created_at, updated_at
			) VALUES ($1, $2, $3, $4, $5, $6, $7)
		`
		_, err := r.ext(ctx).ExecContext(ctx, query,
			doctor.ID,
			doctor.FullName,
			doctor.Phone,
			doctor.ExperienceYears,
			doctor.CabinetID,
			doctor.CreatedAt,
			doctor.UpdatedAt,
		)
		if err != nil {
			return apperror.Store(err, "failed to create doctor")
		}
		return r.replaceSpecializations(ctx, doctor.ID, specializationIDs)
	})
}

func (r *doctorRepository) replaceSpecializations(ctx context.Context, doctorID uuid.UUID, specializationIDs []uuid.UUID) error {
	if _, err := r.ext(ctx).ExecContext(ctx,
		`DELETE FROM doctor_specializations WHERE doctor_id = $1`, doctorID); err != nil {
		return apperror.Store(err, "failed to clear doctor specializations")
	}
	for _, specID := range specializationIDs {
		_, err := r.ext(ctx).ExecContext(ctx,
			`INSERT INTO doctor_specializations (doctor_id, specialization_id) VALUES ($1, $2)`,
			doctorID, specID)
		if err != nil {
			return apperror.Store(err, "failed to link doctor specialization")
		}
	}
	return nil
}

func (r *doctorRepository) loadSpecializations(ctx context.Context, doctors []*model.Doctor) error {
	for _, doctor := range doctors {
		query := `
			SELECT s.id, s.name, s.created_at, s.updated_at
			FROM specializations s
			JOIN doctor_specializations ds ON ds.specialization_id = s.id
			WHERE ds.doctor_id = $1
			ORDER BY s.name ASC
		`
		var specs []model.Specialization
		if err := sqlx.SelectContext(ctx, r.ext(ctx), &specs, query, doctor.ID); err != nil {
			return apperror.Store(err, "failed to load doctor specializations")
		}
		doctor.Specializations = specs
	}
	return nil
}

func (r *doctorRepository) Get(ctx context.Context, id uuid.UUID) (*model.Doctor, error) {
	query := `
		SELECT id, full_name, phone, experience_years, cabinet_id,
			   created_at, updated_at
		FROM doctors
		WHERE id = $1
	`
	var doctor model.Doctor
	err := sqlx.GetContext(ctx, r.ext(ctx), &doctor, query, id)
	if err != nil {
		if isNoRows(err) {
			return nil, apperror.NotFound("doctor", id)
		}
		return nil, apperror.Store(err, "failed to get doctor")
	}
	if err := r.loadSpecializations(ctx, []*model.Doctor{&doctor}); err != nil {
		return nil, err
	}
	return &doctor, nil
}

func (r *doctorRepository) List(ctx context.Context, filters *model.DoctorFilters) ([]*model.Doctor, error) {
	filters.Normalize()

	query := `
		SELECT DISTINCT d.id, d.full_name, d.phone, d.experience_years,
			   d.cabinet_id, d.created_at, d.updated_at
		FROM doctors d
	`
	args := []interface{}{}
	if filters.Specialization != "" {
		query += `
			JOIN doctor_specializations ds ON ds.doctor_id = d.id
			JOIN specializations s ON s.id = ds.specialization_id
			WHERE s.name = $1
		`
		args = append(args, filters.Specialization)
	}
	query += fmt.Sprintf(" ORDER BY d.full_name ASC OFFSET $%d LIMIT $%d", len(args)+1, len(args)+2)
	args = append(args, filters.Offset, filters.Limit)

	var doctors []*model.Doctor
	err := sqlx.SelectContext(ctx, r.ext(ctx), &doctors, query, args...)
	if err != nil {
		return nil, apperror.Store(err, "failed to list doctors")
	}
	if err := r.loadSpecializations(ctx, doctors); err != nil {
		return nil, err
	}
	return doctors, nil
}

func (r *doctorRepository) Update(ctx context.Context, doctor *model.Doctor, specializationIDs []uuid.UUID) error {
	doctor.UpdatedAt = time.Now()

	return r.WithTx(ctx, func(ctx context.Context) error {
		query := `
			UPDATE doctors
			SET full_name = $1, phone = $2, experience_years = $3,
				cabinet_id = $4, updated_at = $5
			WHERE id = $6
		`
		result, err := r.ext(ctx).ExecContext(ctx, query,
			doctor.FullName,
			doctor.Phone,
			doctor.ExperienceYears,
			doctor.CabinetID,
			doctor.UpdatedAt,
			doctor.ID,
		)
		if err != nil {
			return apperror.Store(err, "failed to update doctor")
		}
		rows, err := result.RowsAffected()
		if err != nil {
			return apperror.Store(err, "failed to get rows affected")
		}
		if rows == 0 {
			return apperror.NotFound("doctor", doctor.ID)
		}

		if specializationIDs != nil {
			return r.replaceSpecializations(ctx, doctor.ID, specializationIDs)
		}
		return nil
	})
}

func (r *doctorRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.WithTx(ctx, func(ctx context.Context) error {
		if _, err := r.ext(ctx).ExecContext(ctx,
			`DELETE FROM doctor_specializations WHERE doctor_id = $1`, id); err != nil {
			return apperror.Store(err, "failed to unlink doctor specializations")
		}
		result, err := r.ext(ctx).ExecContext(ctx, `DELETE FROM doctors WHERE id = $1`, id)
		if err != nil {
			return apperror.Store(err, "failed to delete doctor")
		}
		rows, err := result.RowsAffected()
		if err != nil {
			return apperror.Store(err, "failed to get rows affected")
		}
		if rows == 0 {
			return apperror.NotFound("doctor", id)
		}
		return nil
	})
}

func (r *doctorRepository) CountBySpecialization(ctx context.Context, specializationID uuid.UUID) (int, error) {
	var count int
	err := sqlx.GetContext(ctx, r.ext(ctx), &count,
		`SELECT COUNT(*) FROM doctor_specializations WHERE specialization_id = $1`, specializationID)
	if err != nil {
		return 0, apperror.Store(err, "failed to count doctors by specialization")
	}
	return count, nil
}

func (r *doctorRepository) CountByCabinet(ctx context.Context, cabinetID uuid.UUID) (int, error) {
	var count int
	err := sqlx.GetContext(ctx, r.ext(ctx), &count,
		`SELECT COUNT(*) FROM doctors WHERE cabinet_id = $1`, cabinetID)
	if err != nil {
		return 0, apperror.Store(err, "failed to count doctors by cabinet")
	}
	return count, nil
}
