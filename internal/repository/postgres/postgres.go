package postgres

import (
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"

	"github.com/polyclinic/clinic-api/internal/repository"
)

type patientRepository struct {
	BaseRepository
}

type doctorRepository struct {
	BaseRepository
}

type specializationRepository struct {
	BaseRepository
}

type cabinetRepository struct {
	BaseRepository
}

type appointmentRepository struct {
	BaseRepository
}

func NewPatientRepository(db *sqlx.DB) repository.PatientRepository {
	return &patientRepository{BaseRepository{db: db}}
}

func NewDoctorRepository(db *sqlx.DB) repository.DoctorRepository {
	return &doctorRepository{BaseRepository{db: db}}
}

func NewSpecializationRepository(db *sqlx.DB) repository.SpecializationRepository {
	return &specializationRepository{BaseRepository{db: db}}
}

func NewCabinetRepository(db *sqlx.DB) repository.CabinetRepository {
	return &cabinetRepository{BaseRepository{db: db}}
}

func NewAppointmentRepository(db *sqlx.DB) repository.AppointmentRepository {
	return &appointmentRepository{BaseRepository{db: db}}
}

func isNoRows(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}
