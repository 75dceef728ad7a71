package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/polyclinic/clinic-api/internal/model"
)

type PatientRepository interface {
	Create(ctx context.Context, patient *model.Patient) error
	Get(ctx context.Context, id uuid.UUID) (*model.Patient, error)
	GetByInsuranceNumber(ctx context.Context, number string) (*model.Patient, error)
	List(ctx context.Context, p model.Pagination) ([]*model.Patient, error)
	Update(ctx context.Context, patient *model.Patient) error
	// DeleteCascade removes the patient and all of their appointments in
	// one transaction, returning the number of appointments removed.
	DeleteCascade(ctx context.Context, id uuid.UUID) (int, error)
}

type DoctorRepository interface {
	Create(ctx context.Context, doctor *model.Doctor, specializationIDs []uuid.UUID) error
	Get(ctx context.Context, id uuid.UUID) (*model.Doctor, error)
	List(ctx context.Context, filters *model.DoctorFilters) ([]*model.Doctor, error)
	Update(ctx context.Context, doctor *model.Doctor, specializationIDs []uuid.UUID) error
	Delete(ctx context.Context, id uuid.UUID) error
	CountBySpecialization(ctx context.Context, specializationID uuid.UUID) (int, error)
	CountByCabinet(ctx context.Context, cabinetID uuid.UUID) (int, error)
}

type SpecializationRepository interface {
	Create(ctx context.Context, spec *model.Specialization) error
	Get(ctx context.Context, id uuid.UUID) (*model.Specialization, error)
	GetByName(ctx context.Context, name string) (*model.Specialization, error)
	List(ctx context.Context) ([]*model.Specialization, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type CabinetRepository interface {
	Create(ctx context.Context, cabinet *model.Cabinet) error
	Get(ctx context.Context, id uuid.UUID) (*model.Cabinet, error)
	List(ctx context.Context) ([]*model.Cabinet, error)
	Update(ctx context.Context, cabinet *model.Cabinet) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type AppointmentRepository interface {
	Create(ctx context.Context, appointment *model.Appointment) error
	Get(ctx context.Context, id uuid.UUID) (*model.Appointment, error)
	List(ctx context.Context, filters *model.AppointmentFilters) ([]*model.Appointment, error)
	// ListForDoctorDay returns the doctor's active appointments on a
	// date, ordered by time.
	ListForDoctorDay(ctx context.Context, doctorID uuid.UUID, date model.DateOnly) ([]*model.Appointment, error)
	Update(ctx context.Context, appointment *model.Appointment) error
	Delete(ctx context.Context, id uuid.UUID) error
	CountScheduledForDoctor(ctx context.Context, doctorID uuid.UUID) (int, error)
	CountForDoctor(ctx context.Context, doctorID uuid.UUID) (int, error)
	// WithDoctorLock runs fn inside a transaction holding a row lock on
	// the doctor, serializing concurrent bookings for that doctor. All
	// repository calls made with the ctx passed to fn join the
	// transaction.
	WithDoctorLock(ctx context.Context, doctorID uuid.UUID, fn func(ctx context.Context) error) error
}
