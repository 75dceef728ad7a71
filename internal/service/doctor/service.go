package doctor

import (
	"context"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/polyclinic/clinic-api/internal/model"
	"github.com/polyclinic/clinic-api/internal/repository"
	"github.com/polyclinic/clinic-api/pkg/apperror"
)

type Service struct {
	repo            repository.DoctorRepository
	specRepo        repository.SpecializationRepository
	cabinetRepo     repository.CabinetRepository
	appointmentRepo repository.AppointmentRepository
}

func NewService(repo repository.DoctorRepository, specRepo repository.SpecializationRepository, cabinetRepo repository.CabinetRepository, appointmentRepo repository.AppointmentRepository) *Service {
	return &Service{
		repo:            repo,
		specRepo:        specRepo,
		cabinetRepo:     cabinetRepo,
		appointmentRepo: appointmentRepo,
	}
}

func (s *Service) CreateDoctor(ctx context.Context, req *model.CreateDoctorRequest) (*model.Doctor, error) {
	if err := model.ValidateFullName(req.FullName); err != nil {
		return nil, err
	}
	if err := model.ValidatePhone(req.Phone); err != nil {
		return nil, err
	}
	if err := model.ValidateExperience(req.ExperienceYears); err != nil {
		return nil, err
	}
	if len(req.SpecializationIDs) == 0 {
		return nil, apperror.Validation("doctor must have at least one specialization")
	}
	if err := s.checkReferences(ctx, req.SpecializationIDs, req.CabinetID); err != nil {
		return nil, err
	}

	doctor := &model.Doctor{
		FullName:        req.FullName,
		Phone:           req.Phone,
		ExperienceYears: req.ExperienceYears,
		CabinetID:       req.CabinetID,
	}
	if err := s.repo.Create(ctx, doctor, req.SpecializationIDs); err != nil {
		return nil, err
	}

	created, err := s.repo.Get(ctx, doctor.ID)
	if err != nil {
		return nil, err
	}

	log.Info().Str("doctor_id", doctor.ID.String()).Msg("doctor created")
	return created, nil
}

func (s *Service) GetDoctor(ctx context.Context, id uuid.UUID) (*model.Doctor, error) {
	return s.repo.Get(ctx, id)
}

func (s *Service) ListDoctors(ctx context.Context, filters *model.DoctorFilters) ([]*model.Doctor, error) {
	if filters.Specialization != "" {
		if _, err := s.specRepo.GetByName(ctx, filters.Specialization); err != nil {
			return nil, err
		}
	}
	return s.repo.List(ctx, filters)
}

func (s *Service) UpdateDoctor(ctx context.Context, id uuid.UUID, req *model.UpdateDoctorRequest) (*model.Doctor, error) {
	doctor, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.FullName != nil {
		if err := model.ValidateFullName(*req.FullName); err != nil {
			return nil, err
		}
		doctor.FullName = *req.FullName
	}
	if req.Phone != nil {
		if err := model.ValidatePhone(*req.Phone); err != nil {
			return nil, err
		}
		doctor.Phone = *req.Phone
	}
	if req.ExperienceYears != nil {
		if err := model.ValidateExperience(*req.ExperienceYears); err != nil {
			return nil, err
		}
		doctor.ExperienceYears = *req.ExperienceYears
	}
	if req.CabinetID != nil {
		doctor.CabinetID = req.CabinetID
	}
	if req.SpecializationIDs != nil && len(req.SpecializationIDs) == 0 {
		return nil, apperror.Validation("doctor must have at least one specialization")
	}
	if err := s.checkReferences(ctx, req.SpecializationIDs, req.CabinetID); err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, doctor, req.SpecializationIDs); err != nil {
		return nil, err
	}

	updated, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	log.Info().Str("doctor_id", id.String()).Msg("doctor updated")
	return updated, nil
}

// DeleteDoctor removes a doctor. Deletion is rejected while any of the
// doctor's appointments is still scheduled; a history of completed or
// cancelled appointments does not block it. Returns the historical
// appointment count for reporting.
func (s *Service) DeleteDoctor(ctx context.Context, id uuid.UUID) (int, error) {
	if _, err := s.repo.Get(ctx, id); err != nil {
		return 0, err
	}

	scheduled, err := s.appointmentRepo.CountScheduledForDoctor(ctx, id)
	if err != nil {
		return 0, err
	}
	if scheduled > 0 {
		return 0, apperror.BusinessRule(
			"cannot delete doctor: %d scheduled appointments must be cancelled or rescheduled first",
			scheduled)
	}

	history, err := s.appointmentRepo.CountForDoctor(ctx, id)
	if err != nil {
		return 0, err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return 0, err
	}

	log.Info().
		Str("doctor_id", id.String()).
		Int("appointment_history", history).
		Msg("doctor deleted")
	return history, nil
}

func (s *Service) checkReferences(ctx context.Context, specializationIDs []uuid.UUID, cabinetID *uuid.UUID) error {
	for _, specID := range specializationIDs {
		if _, err := s.specRepo.Get(ctx, specID); err != nil {
			return err
		}
	}
	if cabinetID != nil {
		if _, err := s.cabinetRepo.Get(ctx, *cabinetID); err != nil {
			return err
		}
	}
	return nil
}
