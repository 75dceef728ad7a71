package seed

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/polyclinic/clinic-api/internal/model"
	"github.com/polyclinic/clinic-api/internal/repository"
	"github.com/polyclinic/clinic-api/pkg/apperror"
)

var specializationNames = []string{
	"Therapist",
	"Cardiologist",
	"Neurologist",
	"Ophthalmologist",
	"Surgeon",
	"Pediatrician",
	"Dermatologist",
	"Otolaryngologist",
}

var cabinetNumbers = []string{"101", "102", "103", "201", "202", "203", "301", "302"}

// Run inserts the reference specializations and cabinets if they are not
// present yet. Existing rows are left untouched, so the seed is safe to run
// on every startup.
func Run(ctx context.Context, specs repository.SpecializationRepository, cabinets repository.CabinetRepository) error {
	seeded := 0

	for _, name := range specializationNames {
		_, err := specs.GetByName(ctx, name)
		if err == nil {
			continue
		}
		if !apperror.IsKind(err, apperror.KindNotFound) {
			return fmt.Errorf("failed to look up specialization %q: %w", name, err)
		}
		if err := specs.Create(ctx, &model.Specialization{Name: name}); err != nil {
			return fmt.Errorf("failed to seed specialization %q: %w", name, err)
		}
		seeded++
	}

	existing, err := cabinets.List(ctx)
	if err != nil {
		return fmt.Errorf("failed to list cabinets: %w", err)
	}
	taken := make(map[string]bool, len(existing))
	for _, c := range existing {
		taken[c.Number] = true
	}
	for _, number := range cabinetNumbers {
		if taken[number] {
			continue
		}
		if err := cabinets.Create(ctx, &model.Cabinet{Number: number}); err != nil {
			return fmt.Errorf("failed to seed cabinet %s: %w", number, err)
		}
		seeded++
	}

	if seeded > 0 {
		log.Info().Int("rows", seeded).Msg("seeded reference data")
	}
	return nil
}
