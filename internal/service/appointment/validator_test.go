package appointment

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/polyclinic/clinic-api/internal/model"
	"github.com/polyclinic/clinic-api/pkg/apperror"
)

var testDay = model.NewDate(2026, time.September, 14)

func slot(hour, minute int, status model.AppointmentStatus) *model.Appointment {
	apt := &model.Appointment{
		DoctorID: uuid.New(),
		Date:     testDay,
		Time:     model.NewTimeOfDay(hour, minute),
		Status:   status,
	}
	apt.ID = uuid.New()
	return apt
}

func TestCheckSlotBusinessHours(t *testing.T) {
	tests := []struct {
		name string
		time model.TimeOfDay
		ok   bool
	}{
		{"start of day is bookable", model.NewTimeOfDay(8, 0), true},
		{"end of day is bookable", model.NewTimeOfDay(20, 0), true},
		{"just before opening", model.NewTimeOfDay(7, 59), false},
		{"just after closing", model.NewTimeOfDay(20, 1), false},
		{"midnight", model.NewTimeOfDay(0, 0), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CheckSlot(testDay, tt.time, nil, uuid.Nil)
			if tt.ok {
				assert.NoError(t, err)
			} else {
				require.Error(t, err)
				assert.True(t, apperror.IsKind(err, apperror.KindValidation))
			}
		})
	}
}

func TestCheckSlotExactConflict(t *testing.T) {
	existing := []*model.Appointment{slot(10, 0, model.AppointmentStatusScheduled)}

	err := CheckSlot(testDay, model.NewTimeOfDay(10, 0), existing, uuid.Nil)
	require.Error(t, err)
	assert.True(t, apperror.IsKind(err, apperror.KindTimeConflict))
}

func TestCheckSlotCompletedStillOccupiesSlot(t *testing.T) {
	existing := []*model.Appointment{slot(10, 0, model.AppointmentStatusCompleted)}

	err := CheckSlot(testDay, model.NewTimeOfDay(10, 0), existing, uuid.Nil)
	require.Error(t, err)
	assert.True(t, apperror.IsKind(err, apperror.KindTimeConflict))
}

func TestCheckSlotCancelledFreesSlot(t *testing.T) {
	existing := []*model.Appointment{slot(10, 0, model.AppointmentStatusCancelled)}

	assert.NoError(t, CheckSlot(testDay, model.NewTimeOfDay(10, 0), existing, uuid.Nil))
}

func TestCheckSlotSpacing(t *testing.T) {
	existing := []*model.Appointment{slot(10, 0, model.AppointmentStatusScheduled)}

	// A gap of exactly 20 minutes is allowed, on both sides.
	assert.NoError(t, CheckSlot(testDay, model.NewTimeOfDay(10, 20), existing, uuid.Nil))
	assert.NoError(t, CheckSlot(testDay, model.NewTimeOfDay(9, 40), existing, uuid.Nil))

	err := CheckSlot(testDay, model.NewTimeOfDay(10, 19), existing, uuid.Nil)
	require.Error(t, err)
	assert.True(t, apperror.IsKind(err, apperror.KindBusinessRule))

	err = CheckSlot(testDay, model.NewTimeOfDay(9, 41), existing, uuid.Nil)
	require.Error(t, err)
	assert.True(t, apperror.IsKind(err, apperror.KindBusinessRule))
}

func TestCheckSlotCapacity(t *testing.T) {
	existing := make([]*model.Appointment, 0, MaxAppointmentsPerDay)
	for i := 0; i < MaxAppointmentsPerDay; i++ {
		existing = append(existing, slot(8+(i*30)/60, (i*30)%60, model.AppointmentStatusScheduled))
	}

	err := CheckSlot(testDay, model.NewTimeOfDay(19, 0), existing, uuid.Nil)
	require.Error(t, err)
	assert.True(t, apperror.IsKind(err, apperror.KindCapacityExceeded))
}

func TestCheckSlotCapacityIgnoresCancelled(t *testing.T) {
	existing := make([]*model.Appointment, 0, MaxAppointmentsPerDay)
	for i := 0; i < MaxAppointmentsPerDay-1; i++ {
		existing = append(existing, slot(8+(i*30)/60, (i*30)%60, model.AppointmentStatusScheduled))
	}
	existing = append(existing, slot(19, 30, model.AppointmentStatusCancelled))

	assert.NoError(t, CheckSlot(testDay, model.NewTimeOfDay(19, 0), existing, uuid.Nil))
}

func TestCheckSlotExcludesSelf(t *testing.T) {
	apt := slot(10, 0, model.AppointmentStatusScheduled)

	// Rescheduling onto a nearby slot must not conflict with the
	// appointment being moved.
	assert.NoError(t, CheckSlot(testDay, model.NewTimeOfDay(10, 10), []*model.Appointment{apt}, apt.ID))
}

func TestCheckSlotConflictBeforeCapacity(t *testing.T) {
	existing := make([]*model.Appointment, 0, MaxAppointmentsPerDay)
	for i := 0; i < MaxAppointmentsPerDay; i++ {
		existing = append(existing, slot(8+(i*30)/60, (i*30)%60, model.AppointmentStatusScheduled))
	}

	// An exact collision on a full day reports the conflict, not the
	// capacity limit.
	err := CheckSlot(testDay, existing[0].Time, existing, uuid.Nil)
	require.Error(t, err)
	assert.True(t, apperror.IsKind(err, apperror.KindTimeConflict))
}
