package postgres

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/polyclinic/clinic-api/internal/model"
	"github.com/polyclinic/clinic-api/pkg/apperror"
)

func (r *patientRepository) Create(ctx context.Context, patient *model.Patient) error {
	query := `
		INSERT INTO patients (
			id, full_name, birth_date, phone, address, insurance_number,
			created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	patient.ID = uuid.New()
	patient.CreatedAt = time.Now()
	patient.UpdatedAt = time.Now()

	_, err := r.ext(ctx).ExecContext(ctx, query,
		patient.ID,
		patient.FullName,
		patient.BirthDate,
		patient.Phone,
		patient.Address,
		patient.InsuranceNumber,
		patient.CreatedAt,
		patient.UpdatedAt,
	)
	if err != nil {
		return apperror.Store(err, "failed to create patient")
	}
	return nil
}

func (r *patientRepository) Get(ctx context.Context, id uuid.UUID) (*model.Patient, error) {
	query := `
		SELECT id, full_name, birth_date, phone, address, insurance_number,
			   created_at, updated_at
		FROM patients
		WHERE id = $1
	`
	var patient model.Patient
	err := sqlx.GetContext(ctx, r.ext(ctx), &patient, query, id)
	if err != nil {
		if isNoRows(err) {
			return nil, apperror.NotFound("patient", id)
		}
		return nil, apperror.Store(err, "failed to get patient")
	}
	return &patient, nil
}

func (r *patientRepository) GetByInsuranceNumber(ctx context.Context, number string) (*model.Patient, error) {
	query := `
		SELECT id, full_name, birth_date, phone, address, insurance_number,
			   created_at, updated_at
		FROM patients
		WHERE insurance_number = $1
	`
	var patient model.Patient
	err := sqlx.GetContext(ctx, r.ext(ctx), &patient, query, number)
	if err != nil {
		if isNoRows(err) {
			return nil, apperror.NotFound("patient", number)
		}
		return nil, apperror.Store(err, "failed to get patient by insurance number")
	}
	return &patient, nil
}

func (r *patientRepository) List(ctx context.Context, p model.Pagination) ([]*model.Patient, error) {
	p.Normalize()
	query := `
		SELECT id, full_name, birth_date, phone, address, insurance_number,
			   created_at, updated_at
		FROM patients
		ORDER BY full_name ASC
		OFFSET $1 LIMIT $2
	`
	var patients []*model.Patient
	err := sqlx.SelectContext(ctx, r.ext(ctx), &patients, query, p.Offset, p.Limit)
	if err != nil {
		return nil, apperror.Store(err, "failed to list patients")
	}
	return patients, nil
}

func (r *patientRepository) Update(ctx context.Context, patient *model.Patient) error {
	query := `
		UPDATE patients
		SET full_name = $1, birth_date = $2, phone = $3, address = $4,
			insurance_number = $5, updated_at = $6
		WHERE id = $7
	`
	patient.UpdatedAt = time.Now()

	result, err := r.ext(ctx).ExecContext(ctx, query,
		patient.FullName,
		patient.BirthDate,
		patient.Phone,
		patient.Address,
		patient.InsuranceNumber,
		patient.UpdatedAt,
		patient.ID,
	)
	if err != nil {
		return apperror.Store(err, "failed to update patient")
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return apperror.Store(err, "failed to get rows affected")
	}
	if rows == 0 {
		return apperror.NotFound("patient", patient.ID)
	}
	return nil
}

func (r *patientRepository) DeleteCascade(ctx context.Context, id uuid.UUID) (int, error) {
	var deleted int
	err := r.WithTx(ctx, func(ctx context.Context) error {
		result, err := r.ext(ctx).ExecContext(ctx,
			`DELETE FROM appointments WHERE patient_id = $1`, id)
		if err != nil {
			return apperror.Store(err, "failed to delete patient appointments")
		}
		n, err := result.RowsAffected()
		if err != nil {
			return apperror.Store(err, "failed to get rows affected")
		}
		deleted = int(n)

		result, err = r.ext(ctx).ExecContext(ctx,
			`DELETE FROM patients WHERE id = $1`, id)
		if err != nil {
			return apperror.Store(err, "failed to delete patient")
		}
		n, err = result.RowsAffected()
		if err != nil {
			return apperror.Store(err, "failed to get rows affected")
		}
		if n == 0 {
			return apperror.NotFound("patient", id)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return deleted, nil
}
