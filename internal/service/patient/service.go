package patient

import (
	"context"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/polyclinic/clinic-api/internal/model"
	"github.com/polyclinic/clinic-api/internal/repository"
	"github.com/polyclinic/clinic-api/pkg/apperror"
)

type Service struct {
	repo repository.PatientRepository
}

func NewService(repo repository.PatientRepository) *Service {
	return &Service{repo: repo}
}

func (s *Service) CreatePatient(ctx context.Context, req *model.CreatePatientRequest) (*model.Patient, error) {
	if err := validatePatientFields(req.FullName, req.BirthDate, req.Phone, req.InsuranceNumber); err != nil {
		return nil, err
	}

	if err := s.checkInsuranceUnique(ctx, req.InsuranceNumber, uuid.Nil); err != nil {
		return nil, err
	}

	patient := &model.Patient{
		FullName:        req.FullName,
		BirthDate:       req.BirthDate,
		Phone:           req.Phone,
		Address:         req.Address,
		InsuranceNumber: req.InsuranceNumber,
	}
	if err := s.repo.Create(ctx, patient); err != nil {
		return nil, err
	}

	log.Info().Str("patient_id", patient.ID.String()).Msg("patient registered")
	return patient, nil
}

func (s *Service) GetPatient(ctx context.Context, id uuid.UUID) (*model.Patient, error) {
	return s.repo.Get(ctx, id)
}

func (s *Service) ListPatients(ctx context.Context, p model.Pagination) ([]*model.Patient, error) {
	return s.repo.List(ctx, p)
}

func (s *Service) UpdatePatient(ctx context.Context, id uuid.UUID, req *model.UpdatePatientRequest) (*model.Patient, error) {
	patient, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.FullName != nil {
		if err := model.ValidateFullName(*req.FullName); err != nil {
			return nil, err
		}
		patient.FullName = *req.FullName
	}
	if req.BirthDate != nil {
		if err := model.ValidateBirthDate(*req.BirthDate); err != nil {
			return nil, err
		}
		patient.BirthDate = *req.BirthDate
	}
	if req.Phone != nil {
		if err := model.ValidatePhone(*req.Phone); err != nil {
			return nil, err
		}
		patient.Phone = *req.Phone
	}
	if req.Address != nil {
		patient.Address = *req.Address
	}
	if req.InsuranceNumber != nil {
		if err := model.ValidateInsuranceNumber(*req.InsuranceNumber); err != nil {
			return nil, err
		}
		if err := s.checkInsuranceUnique(ctx, *req.InsuranceNumber, id); err != nil {
			return nil, err
		}
		patient.InsuranceNumber = *req.InsuranceNumber
	}

	if err := s.repo.Update(ctx, patient); err != nil {
		return nil, err
	}

	log.Info().Str("patient_id", id.String()).Msg("patient updated")
	return patient, nil
}

// DeletePatient removes the patient and cascades to all of their
// appointments, returning the number of appointments removed.
func (s *Service) DeletePatient(ctx context.Context, id uuid.UUID) (int, error) {
	if _, err := s.repo.Get(ctx, id); err != nil {
		return 0, err
	}

	deleted, err := s.repo.DeleteCascade(ctx, id)
	if err != nil {
		return 0, err
	}

	log.Info().
		Str("patient_id", id.String()).
		Int("deleted_appointments", deleted).
		Msg("patient deleted")
	return deleted, nil
}

func (s *Service) checkInsuranceUnique(ctx context.Context, number string, selfID uuid.UUID) error {
	existing, err := s.repo.GetByInsuranceNumber(ctx, number)
	if err != nil {
		if apperror.IsKind(err, apperror.KindNotFound) {
			return nil
		}
		return err
	}
	if existing.ID != selfID {
		return apperror.AlreadyExists("patient with insurance number %s is already registered", number)
	}
	return nil
}

func validatePatientFields(fullName string, birthDate model.DateOnly, phone, insuranceNumber string) error {
	if err := model.ValidateFullName(fullName); err != nil {
		return err
	}
	if err := model.ValidateBirthDate(birthDate); err != nil {
		return err
	}
	if err := model.ValidatePhone(phone); err != nil {
		return err
	}
	return model.ValidateInsuranceNumber(insuranceNumber)
}
