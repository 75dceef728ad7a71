package appointment

import (
	"context"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/polyclinic/clinic-api/internal/model"
	"github.com/polyclinic/clinic-api/internal/repository"
	"github.com/polyclinic/clinic-api/pkg/apperror"
)

type Service struct {
	repo        repository.AppointmentRepository
	patientRepo repository.PatientRepository
	doctorRepo  repository.DoctorRepository
}

func NewService(repo repository.AppointmentRepository, patientRepo repository.PatientRepository, doctorRepo repository.DoctorRepository) *Service {
	return &Service{
		repo:        repo,
		patientRepo: patientRepo,
		doctorRepo:  doctorRepo,
	}
}

func (s *Service) CreateAppointment(ctx context.Context, req *model.CreateAppointmentRequest) (*model.Appointment, error) {
	if _, err := s.patientRepo.Get(ctx, req.PatientID); err != nil {
		return nil, err
	}
	if _, err := s.doctorRepo.Get(ctx, req.DoctorID); err != nil {
		return nil, err
	}

	apt := &model.Appointment{
		PatientID: req.PatientID,
		DoctorID:  req.DoctorID,
		Date:      req.Date,
		Time:      req.Time,
		Status:    model.AppointmentStatusScheduled,
	}

	err := s.repo.WithDoctorLock(ctx, req.DoctorID, func(ctx context.Context) error {
		existing, err := s.repo.ListForDoctorDay(ctx, req.DoctorID, req.Date)
		if err != nil {
			return err
		}
		if err := CheckSlot(req.Date, req.Time, existing, uuid.Nil); err != nil {
			return err
		}
		if err := s.checkPatientConflicts(ctx, req.PatientID, req.DoctorID, req.Date, req.Time, uuid.Nil); err != nil {
			return err
		}
		return s.repo.Create(ctx, apt)
	})
	if err != nil {
		return nil, err
	}

	log.Info().
		Str("appointment_id", apt.ID.String()).
		Str("doctor_id", apt.DoctorID.String()).
		Str("patient_id", apt.PatientID.String()).
		Str("date", apt.Date.String()).
		Str("time", apt.Time.String()).
		Msg("appointment created")

	return apt, nil
}

// checkPatientConflicts enforces the patient-side booking rules: no two
// active appointments at the same date and time, and at most one active
// appointment with a given doctor per day.
func (s *Service) checkPatientConflicts(ctx context.Context, patientID, doctorID uuid.UUID, date model.DateOnly, t model.TimeOfDay, excludeID uuid.UUID) error {
	existing, err := s.repo.List(ctx, &model.AppointmentFilters{
		PatientID: patientID,
		Date:      &date,
	})
	if err != nil {
		return err
	}

	for _, apt := range existing {
		if apt.ID == excludeID || !apt.Status.IsActive() {
			continue
		}
		if apt.Time == t {
			return apperror.TimeConflict("patient already has an appointment on %s at %s", date, t)
		}
		if apt.DoctorID == doctorID {
			return apperror.BusinessRule("patient is already booked with this doctor on %s", date)
		}
	}
	return nil
}

func (s *Service) GetAppointment(ctx context.Context, id uuid.UUID) (*model.Appointment, error) {
	return s.repo.Get(ctx, id)
}

func (s *Service) ListAppointments(ctx context.Context, filters *model.AppointmentFilters) ([]*model.Appointment, error) {
	return s.repo.List(ctx, filters)
}

func (s *Service) ListPatientAppointments(ctx context.Context, patientID uuid.UUID) ([]*model.Appointment, error) {
	if _, err := s.patientRepo.Get(ctx, patientID); err != nil {
		return nil, err
	}
	return s.repo.List(ctx, &model.AppointmentFilters{PatientID: patientID})
}

func (s *Service) ListDoctorAppointments(ctx context.Context, doctorID uuid.UUID, date *model.DateOnly) ([]*model.Appointment, error) {
	if _, err := s.doctorRepo.Get(ctx, doctorID); err != nil {
		return nil, err
	}
	return s.repo.List(ctx, &model.AppointmentFilters{DoctorID: doctorID, Date: date})
}

func (s *Service) UpdateAppointment(ctx context.Context, id uuid.UUID, req *model.UpdateAppointmentRequest) (*model.Appointment, error) {
	apt, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Status != nil {
		if !req.Status.Valid() {
			return nil, apperror.Validation("unknown appointment status %q", *req.Status)
		}
		if err := s.checkTransition(apt, *req.Status); err != nil {
			return nil, err
		}
	}

	if req.Diagnosis != nil && apt.Status == model.AppointmentStatusCancelled {
		return nil, apperror.BusinessRule("cannot set diagnosis on a cancelled appointment")
	}

	newDate := apt.Date
	newTime := apt.Time
	if req.Date != nil {
		newDate = *req.Date
	}
	if req.Time != nil {
		newTime = *req.Time
	}
	reschedule := !newDate.Equal(apt.Date) || newTime != apt.Time

	apply := func(ctx context.Context) error {
		apt.Date = newDate
		apt.Time = newTime
		if req.Diagnosis != nil {
			apt.Diagnosis = req.Diagnosis
		}
		if req.Status != nil {
			apt.Status = *req.Status
		}
		return s.repo.Update(ctx, apt)
	}

	if reschedule {
		// Re-validate the new slot against the doctor's other active
		// appointments, inside the same lock that guards creation.
		err = s.repo.WithDoctorLock(ctx, apt.DoctorID, func(ctx context.Context) error {
			existing, err := s.repo.ListForDoctorDay(ctx, apt.DoctorID, newDate)
			if err != nil {
				return err
			}
			if err := CheckSlot(newDate, newTime, existing, apt.ID); err != nil {
				return err
			}
			if err := s.checkPatientConflicts(ctx, apt.PatientID, apt.DoctorID, newDate, newTime, apt.ID); err != nil {
				return err
			}
			return apply(ctx)
		})
	} else {
		err = apply(ctx)
	}
	if err != nil {
		return nil, err
	}

	log.Info().Str("appointment_id", id.String()).Msg("appointment updated")
	return apt, nil
}

func (s *Service) CancelAppointment(ctx context.Context, id uuid.UUID) (*model.Appointment, error) {
	status := model.AppointmentStatusCancelled
	return s.UpdateAppointment(ctx, id, &model.UpdateAppointmentRequest{Status: &status})
}

func (s *Service) CompleteAppointment(ctx context.Context, id uuid.UUID, diagnosis string) (*model.Appointment, error) {
	status := model.AppointmentStatusCompleted
	return s.UpdateAppointment(ctx, id, &model.UpdateAppointmentRequest{
		Status:    &status,
		Diagnosis: &diagnosis,
	})
}

func (s *Service) DeleteAppointment(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.Get(ctx, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	log.Info().Str("appointment_id", id.String()).Msg("appointment deleted")
	return nil
}

// checkTransition enforces the appointment state machine: completed and
// cancelled are terminal, and an appointment may only be completed on or
// after its scheduled date.
func (s *Service) checkTransition(apt *model.Appointment, to model.AppointmentStatus) error {
	if apt.Status == to {
		return apperror.BusinessRule("appointment is already %s", to)
	}
	if apt.Status != model.AppointmentStatusScheduled {
		return apperror.BusinessRule("cannot change a %s appointment to %s", apt.Status, to)
	}
	if to == model.AppointmentStatusCompleted && apt.Date.Time.After(model.Today().Time) {
		return apperror.BusinessRule("appointment on %s cannot be completed before its date", apt.Date)
	}
	return nil
}
