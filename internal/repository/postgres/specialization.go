package postgres

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/polyclinic/clinic-api/internal/model"
	"github.com/polyclinic/clinic-api/pkg/apperror"
)

func (r *specializationRepository) Create(ctx context.Context, spec *model.Specialization) error {
	spec.ID = uuid.New()
	spec.CreatedAt = time.Now()
	spec.UpdatedAt = time.Now()

	_, err := r.ext(ctx).ExecContext(ctx,
		`INSERT INTO specializations (id, name, created_at, updated_at) VALUES ($1, $2, $3, $4)`,
		spec.ID, spec.Name, spec.CreatedAt, spec.UpdatedAt)
	if err != nil {
		return apperror.Store(err, "failed to create specialization")
	}
	return nil
}

func (r *specializationRepository) Get(ctx context.Context, id uuid.UUID) (*model.Specialization, error) {
	var spec model.Specialization
	err := sqlx.GetContext(ctx, r.ext(ctx), &spec,
		`SELECT id, name, created_at, updated_at FROM specializations WHERE id = $1`, id)
	if err != nil {
		if isNoRows(err) {
			return nil, apperror.NotFound("specialization", id)
		}
		return nil, apperror.Store(err, "failed to get specialization")
	}
	return &spec, nil
}

func (r *specializationRepository) GetByName(ctx context.Context, name string) (*model.Specialization, error) {
	var spec model.Specialization
	err := sqlx.GetContext(ctx, r.ext(ctx), &spec,
		`SELECT id, name, created_at, updated_at FROM specializations WHERE name = $1`, name)
	if err != nil {
		if isNoRows(err) {
			return nil, apperror.NotFound("specialization", name)
		}
		return nil, apperror.Store(err, "failed to get specialization by name")
	}
	return &spec, nil
}

func (r *specializationRepository) List(ctx context.Context) ([]*model.Specialization, error) {
	var specs []*model.Specialization
	err := sqlx.SelectContext(ctx, r.ext(ctx), &specs,
		`SELECT id, name, created_at, updated_at FROM specializations ORDER BY name ASC`)
	if err != nil {
		return nil, apperror.Store(err, "failed to list specializations")
	}
	return specs, nil
}

func (r *specializationRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.ext(ctx).ExecContext(ctx,
		`DELETE FROM specializations WHERE id = $1`, id)
	if err != nil {
		return apperror.Store(err, "failed to delete specialization")
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return apperror.Store(err, "failed to get rows affected")
	}
	if rows == 0 {
		return apperror.NotFound("specialization", id)
	}
	return nil
}
