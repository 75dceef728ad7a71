package model

import (
	"github.com/google/uuid"
)

type AppointmentStatus string

const (
	AppointmentStatusScheduled AppointmentStatus = "scheduled"
	AppointmentStatusCompleted AppointmentStatus = "completed"
	AppointmentStatusCancelled AppointmentStatus = "cancelled"
)

// IsActive reports whether the appointment still occupies its slot for
// conflict and capacity purposes. Cancelled appointments free the slot.
func (s AppointmentStatus) IsActive() bool {
	return s == AppointmentStatusScheduled || s == AppointmentStatusCompleted
}

func (s AppointmentStatus) Valid() bool {
	switch s {
	case AppointmentStatusScheduled, AppointmentStatusCompleted, AppointmentStatusCancelled:
		return true
	}
	return false
}

type Appointment struct {
	Base
	PatientID uuid.UUID         `db:"patient_id" json:"patient_id"`
	DoctorID  uuid.UUID         `db:"doctor_id" json:"doctor_id"`
	Date      DateOnly          `db:"appointment_date" json:"date"`
	Time      TimeOfDay         `db:"appointment_time" json:"time"`
	Diagnosis *string           `db:"diagnosis" json:"diagnosis,omitempty"`
	Status    AppointmentStatus `db:"status" json:"status"`
}

type CreateAppointmentRequest struct {
	PatientID uuid.UUID `json:"patient_id" binding:"required"`
	DoctorID  uuid.UUID `json:"doctor_id" binding:"required"`
	Date      DateOnly  `json:"date" binding:"required"`
	Time      TimeOfDay `json:"time" binding:"required"`
}

type UpdateAppointmentRequest struct {
	Date      *DateOnly          `json:"date"`
	Time      *TimeOfDay         `json:"time"`
	Diagnosis *string            `json:"diagnosis"`
	Status    *AppointmentStatus `json:"status"`
}

type CompleteAppointmentRequest struct {
	Diagnosis string `json:"diagnosis" binding:"required,min=2,max=2000"`
}

type AppointmentFilters struct {
	PatientID uuid.UUID
	DoctorID  uuid.UUID
	Status    AppointmentStatus
	Date      *DateOnly
	Pagination
}
