package postgres

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/polyclinic/clinic-api/internal/model"
	"github.com/polyclinic/clinic-api/pkg/apperror"
)

func (r *cabinetRepository) Create(ctx context.Context, cabinet *model.Cabinet) error {
	cabinet.ID = uuid.New()
	cabinet.CreatedAt = time.Now()
	cabinet.UpdatedAt = time.Now()

	_, err := r.ext(ctx).ExecContext(ctx,
		`INSERT INTO cabinets (id, number, created_at, updated_at) VALUES ($1, $2, $3, $4)`,
		cabinet.ID, cabinet.Number, cabinet.CreatedAt, cabinet.UpdatedAt)
	if err != nil {
		return apperror.Store(err, "failed to create cabinet")
	}
	return nil
}

func (r *cabinetRepository) Get(ctx context.Context, id uuid.UUID) (*model.Cabinet, error) {
	var cabinet model.Cabinet
	err := sqlx.GetContext(ctx, r.ext(ctx), &cabinet,
		`SELECT id, number, created_at, updated_at FROM cabinets WHERE id = $1`, id)
	if err != nil {
		if isNoRows(err) {
			return nil, apperror.NotFound("cabinet", id)
		}
		return nil, apperror.Store(err, "failed to get cabinet")
	}
	return &cabinet, nil
}

func (r *cabinetRepository) List(ctx context.Context) ([]*model.Cabinet, error) {
	var cabinets []*model.Cabinet
	err := sqlx.SelectContext(ctx, r.ext(ctx), &cabinets,
		`SELECT id, number, created_at, updated_at FROM cabinets ORDER BY number ASC`)
	if err != nil {
		return nil, apperror.Store(err, "failed to list cabinets")
	}
	return cabinets, nil
}

func (r *cabinetRepository) Update(ctx context.Context, cabinet *model.Cabinet) error {
	cabinet.UpdatedAt = time.Now()

	result, err := r.ext(ctx).ExecContext(ctx,
		`UPDATE cabinets SET number = $1, updated_at = $2 WHERE id = $3`,
		cabinet.Number, cabinet.UpdatedAt, cabinet.ID)
	if err != nil {
		return apperror.Store(err, "failed to update cabinet")
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return apperror.Store(err, "failed to get rows affected")
	}
	if rows == 0 {
		return apperror.NotFound("cabinet", cabinet.ID)
	}
	return nil
}

func (r *cabinetRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.ext(ctx).ExecContext(ctx, `DELETE FROM cabinets WHERE id = $1`, id)
	if err != nil {
		return apperror.Store(err, "failed to delete cabinet")
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return apperror.Store(err, "failed to get rows affected")
	}
	if rows == 0 {
		return apperror.NotFound("cabinet", id)
	}
	return nil
}
