package appointment

import (
	"github.com/google/uuid"

	"github.com/polyclinic/clinic-api/internal/model"
	"github.com/polyclinic/clinic-api/pkg/apperror"
)

// Business rules for doctor schedules
const (
	MaxAppointmentsPerDay = 20
	MinIntervalMinutes    = 20
)

var (
	BusinessDayStart = model.NewTimeOfDay(8, 0)
	BusinessDayEnd   = model.NewTimeOfDay(20, 0)
)

// CheckSlot decides whether a candidate (date, time) slot is bookable
// for a doctor given the doctor's active appointments on that date.
// Checks run in order and stop at the first failure. Both business-day
// endpoints are inclusive, and a gap of exactly MinIntervalMinutes is
// allowed. Appointments matching excludeID are ignored, so a
// reschedule does not conflict with itself.
func CheckSlot(date model.DateOnly, t model.TimeOfDay, existing []*model.Appointment, excludeID uuid.UUID) error {
	if t < BusinessDayStart || t > BusinessDayEnd {
		return apperror.Validation("appointment time %s is outside business hours %s-%s",
			t, BusinessDayStart, BusinessDayEnd)
	}

	active := make([]*model.Appointment, 0, len(existing))
	for _, apt := range existing {
		if apt.ID == excludeID || !apt.Status.IsActive() {
			continue
		}
		active = append(active, apt)
	}

	for _, apt := range active {
		if apt.Time == t {
			return apperror.TimeConflict("doctor already has an appointment on %s at %s", date, t)
		}
	}

	if len(active) >= MaxAppointmentsPerDay {
		return apperror.CapacityExceeded("doctor cannot take more than %d appointments on %s",
			MaxAppointmentsPerDay, date)
	}

	for _, apt := range active {
		if t.MinutesApart(apt.Time) < MinIntervalMinutes {
			return apperror.BusinessRule(
				"appointments must be at least %d minutes apart, nearest appointment at %s",
				MinIntervalMinutes, apt.Time)
		}
	}

	return nil
}
