package model

import (
	"github.com/google/uuid"

	"github.com/polyclinic/clinic-api/pkg/apperror"
)

const (
	MinExperienceYears = 0
	MaxExperienceYears = 60
)

type Doctor struct {
	Base
	FullName        string           `db:"full_name" json:"full_name"`
	Phone           string           `db:"phone" json:"phone"`
	ExperienceYears int              `db:"experience_years" json:"experience_years"`
	CabinetID       *uuid.UUID       `db:"cabinet_id" json:"cabinet_id,omitempty"`
	Specializations []Specialization `db:"-" json:"specializations"`
}

type CreateDoctorRequest struct {
	FullName          string      `json:"full_name" binding:"required,min=5,max=100"`
	Phone             string      `json:"phone" binding:"required,phone_ru"`
	ExperienceYears   int         `json:"experience_years" binding:"gte=0,lte=60"`
	SpecializationIDs []uuid.UUID `json:"specialization_ids" binding:"required,min=1"`
	CabinetID         *uuid.UUID  `json:"cabinet_id"`
}

type UpdateDoctorRequest struct {
	FullName          *string     `json:"full_name" binding:"omitempty,min=5,max=100"`
	Phone             *string     `json:"phone" binding:"omitempty,phone_ru"`
	ExperienceYears   *int        `json:"experience_years" binding:"omitempty,gte=0,lte=60"`
	SpecializationIDs []uuid.UUID `json:"specialization_ids"`
	CabinetID         *uuid.UUID  `json:"cabinet_id"`
}

type DoctorFilters struct {
	Specialization string `form:"specialization"`
	Pagination
}

// ValidateExperience bounds working experience to [0, 60] years.
func ValidateExperience(years int) error {
	if years < MinExperienceYears || years > MaxExperienceYears {
		return apperror.Validation("experience must be between %d and %d years, got %d",
			MinExperienceYears, MaxExperienceYears, years)
	}
	return nil
}
