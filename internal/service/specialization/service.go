package specialization

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
	"github.com/rs/zerolog/log"

	"github.com/polyclinic/clinic-api/internal/model"
	"github.com/polyclinic/clinic-api/internal/repository"
	"github.com/polyclinic/clinic-api/pkg/apperror"
)

const listCacheKey = "specializations:list"

// Service manages the specialization reference data. Lists are cached
// in-process; reference data changes rarely and every doctor
// create/update reads it.
type Service struct {
	repo       repository.SpecializationRepository
	doctorRepo repository.DoctorRepository
	cache      *cache.Cache
}

func NewService(repo repository.SpecializationRepository, doctorRepo repository.DoctorRepository) *Service {
	return &Service{
		repo:       repo,
		doctorRepo: doctorRepo,
		cache:      cache.New(5*time.Minute, 10*time.Minute),
	}
}

func (s *Service) CreateSpecialization(ctx context.Context, req *model.CreateSpecializationRequest) (*model.Specialization, error) {
	if _, err := s.repo.GetByName(ctx, req.Name); err == nil {
		return nil, apperror.AlreadyExists("specialization %q already exists", req.Name)
	} else if !apperror.IsKind(err, apperror.KindNotFound) {
		return nil, err
	}

	spec := &model.Specialization{Name: req.Name}
	if err := s.repo.Create(ctx, spec); err != nil {
		return nil, err
	}
	s.cache.Delete(listCacheKey)

	log.Info().Str("specialization_id", spec.ID.String()).Str("name", spec.Name).Msg("specialization created")
	return spec, nil
}

func (s *Service) GetSpecialization(ctx context.Context, id uuid.UUID) (*model.Specialization, error) {
	return s.repo.Get(ctx, id)
}

func (s *Service) ListSpecializations(ctx context.Context) ([]*model.Specialization, error) {
	if cached, ok := s.cache.Get(listCacheKey); ok {
		return cached.([]*model.Specialization), nil
	}

	specs, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	s.cache.Set(listCacheKey, specs, cache.DefaultExpiration)
	return specs, nil
}

// DeleteSpecialization removes a specialization unless a doctor still
// references it.
func (s *Service) DeleteSpecialization(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.Get(ctx, id); err != nil {
		return err
	}

	refs, err := s.doctorRepo.CountBySpecialization(ctx, id)
	if err != nil {
		return err
	}
	if refs > 0 {
		return apperror.BusinessRule("cannot delete specialization: %d doctors still reference it", refs)
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.cache.Delete(listCacheKey)

	log.Info().Str("specialization_id", id.String()).Msg("specialization deleted")
	return nil
}
