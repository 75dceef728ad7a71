package cabinet

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

const listCacheKey = "cabinets:list"

type Service struct {
	repo       repository.CabinetRepository
	doctorRepo repository.DoctorRepository
	cache      *cache.Cache
}

func NewService(repo repository.CabinetRepository, doctorRepo repository.DoctorRepository) *Service {
	return &Service{
		repo:       repo,
		doctorRepo: doctorRepo,
		cache:      cache.New(5*time.Minute, 10*time.Minute),
	}
}

func (s *Service) CreateCabinet(ctx context.Context, req *model.CreateCabinetRequest) (*model.Cabinet, error) {
	cabinet := &model.Cabinet{Number: req.Number}
	if err := s.repo.Create(ctx, cabinet); err != nil {
		return nil, err
	}
	s.cache.Delete(listCacheKey)

	log.Info().Str("cabinet_id", cabinet.ID.String()).Str("number", cabinet.Number).Msg("cabinet created")
	return cabinet, nil
}

func (s *Service) GetCabinet(ctx context.Context, id uuid.UUID) (*model.Cabinet, error) {
	return s.repo.Get(ctx, id)
}

func (s *Service) ListCabinets(ctx context.Context) ([]*model.Cabinet, error) {
	if cached, ok := s.cache.Get(listCacheKey); ok {
		return cached.([]*model.Cabinet), nil
	}

	cabinets, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	s.cache.Set(listCacheKey, cabinets, cache.DefaultExpiration)
	return cabinets, nil
}

func (s *Service) UpdateCabinet(ctx context.Context, id uuid.UUID, req *model.UpdateCabinetRequest) (*model.Cabinet, error) {
	cabinet, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	cabinet.Number = req.Number
	if err := s.repo.Update(ctx, cabinet); err != nil {
		return nil, err
	}
	s.cache.Delete(listCacheKey)

	log.Info().Str("cabinet_id", id.String()).Msg("cabinet updated")
	return cabinet, nil
}

// DeleteCabinet removes a cabinet unless a doctor is still assigned to it.
func (s *Service) DeleteCabinet(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.Get(ctx, id); err != nil {
		return err
	}

	refs, err := s.doctorRepo.CountByCabinet(ctx, id)
	if err != nil {
		return err
	}
	if refs > 0 {
		return apperror.BusinessRule("cannot delete cabinet: %d doctors are still assigned to it", refs)
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.cache.Delete(listCacheKey)

	log.Info().Str("cabinet_id", id.String()).Msg("cabinet deleted")
	return nil
}
