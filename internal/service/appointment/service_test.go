package appointment

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/polyclinic/clinic-api/internal/model"
	"github.com/polyclinic/clinic-api/pkg/apperror"
)

func newTestService(t *testing.T) (*Service, *model.Patient, *model.Doctor, *memAppointmentRepo) {
	t.Helper()

	patient := &model.Patient{
		FullName:        "Ivanov Ivan Ivanovich",
		BirthDate:       model.NewDate(1990, time.March, 12),
		Phone:           "+79001234567",
		InsuranceNumber: "1234567890123456",
	}
	patient.ID = uuid.New()

	doctor := &model.Doctor{
		FullName:        "Petrova Anna Sergeevna",
		Phone:           "+79007654321",
		ExperienceYears: 10,
	}
	doctor.ID = uuid.New()

	repo := newMemAppointmentRepo()
	svc := NewService(repo, newMemPatientRepo(patient), newMemDoctorRepo(doctor))
	return svc, patient, doctor, repo
}

func book(t *testing.T, svc *Service, patientID, doctorID uuid.UUID, date model.DateOnly, at model.TimeOfDay) *model.Appointment {
	t.Helper()
	apt, err := svc.CreateAppointment(context.Background(), &model.CreateAppointmentRequest{
		PatientID: patientID,
		DoctorID:  doctorID,
		Date:      date,
		Time:      at,
	})
	require.NoError(t, err)
	return apt
}

func TestCreateAppointment(t *testing.T) {
	svc, patient, doctor, _ := newTestService(t)

	apt := book(t, svc, patient.ID, doctor.ID, testDay, model.NewTimeOfDay(10, 0))
	assert.Equal(t, model.AppointmentStatusScheduled, apt.Status)
	assert.NotEqual(t, uuid.Nil, apt.ID)

	got, err := svc.GetAppointment(context.Background(), apt.ID)
	require.NoError(t, err)
	assert.Equal(t, apt.ID, got.ID)
	assert.Equal(t, model.NewTimeOfDay(10, 0), got.Time)
}

func TestCreateAppointmentUnknownReferences(t *testing.T) {
	svc, patient, doctor, _ := newTestService(t)

	_, err := svc.CreateAppointment(context.Background(), &model.CreateAppointmentRequest{
		PatientID: uuid.New(),
		DoctorID:  doctor.ID,
		Date:      testDay,
		Time:      model.NewTimeOfDay(10, 0),
	})
	assert.True(t, apperror.IsKind(err, apperror.KindNotFound))

	_, err = svc.CreateAppointment(context.Background(), &model.CreateAppointmentRequest{
		PatientID: patient.ID,
		DoctorID:  uuid.New(),
		Date:      testDay,
		Time:      model.NewTimeOfDay(10, 0),
	})
	assert.True(t, apperror.IsKind(err, apperror.KindNotFound))
}

func TestCreateAppointmentDoctorConflict(t *testing.T) {
	svc, patient, doctor, _ := newTestService(t)
	other := &model.Patient{FullName: "Sidorov Pavel Petrovich", InsuranceNumber: "6543210987654321"}
	other.ID = uuid.New()
	svc.patientRepo.(*memPatientRepo).patients[other.ID] = other

	book(t, svc, patient.ID, doctor.ID, testDay, model.NewTimeOfDay(10, 0))

	_, err := svc.CreateAppointment(context.Background(), &model.CreateAppointmentRequest{
		PatientID: other.ID,
		DoctorID:  doctor.ID,
		Date:      testDay,
		Time:      model.NewTimeOfDay(10, 0),
	})
	assert.True(t, apperror.IsKind(err, apperror.KindTimeConflict))
}

func TestCreateAppointmentPatientRules(t *testing.T) {
	svc, patient, doctor, _ := newTestService(t)
	secondDoctor := &model.Doctor{FullName: "Smirnov Oleg Igorevich"}
	secondDoctor.ID = uuid.New()
	svc.doctorRepo.(*memDoctorRepo).doctors[secondDoctor.ID] = secondDoctor

	book(t, svc, patient.ID, doctor.ID, testDay, model.NewTimeOfDay(10, 0))

	// Same patient, same time, another doctor.
	_, err := svc.CreateAppointment(context.Background(), &model.CreateAppointmentRequest{
		PatientID: patient.ID,
		DoctorID:  secondDoctor.ID,
		Date:      testDay,
		Time:      model.NewTimeOfDay(10, 0),
	})
	assert.True(t, apperror.IsKind(err, apperror.KindTimeConflict))

	// Same patient, same doctor, second booking on the same day.
	_, err = svc.CreateAppointment(context.Background(), &model.CreateAppointmentRequest{
		PatientID: patient.ID,
		DoctorID:  doctor.ID,
		Date:      testDay,
		Time:      model.NewTimeOfDay(14, 0),
	})
	assert.True(t, apperror.IsKind(err, apperror.KindBusinessRule))

	// A different day is fine.
	book(t, svc, patient.ID, doctor.ID, model.NewDate(2026, time.September, 15), model.NewTimeOfDay(10, 0))
}

func TestCancelledSlotIsRebookable(t *testing.T) {
	svc, patient, doctor, _ := newTestService(t)

	apt := book(t, svc, patient.ID, doctor.ID, testDay, model.NewTimeOfDay(10, 0))
	_, err := svc.CancelAppointment(context.Background(), apt.ID)
	require.NoError(t, err)

	rebooked := book(t, svc, patient.ID, doctor.ID, testDay, model.NewTimeOfDay(10, 0))
	assert.NotEqual(t, apt.ID, rebooked.ID)
}

func TestCompleteAppointment(t *testing.T) {
	svc, patient, doctor, _ := newTestService(t)

	apt := book(t, svc, patient.ID, doctor.ID, model.Today(), model.NewTimeOfDay(10, 0))
	completed, err := svc.CompleteAppointment(context.Background(), apt.ID, "acute bronchitis")
	require.NoError(t, err)
	assert.Equal(t, model.AppointmentStatusCompleted, completed.Status)
	require.NotNil(t, completed.Diagnosis)
	assert.Equal(t, "acute bronchitis", *completed.Diagnosis)
}

func TestCompleteAppointmentBeforeItsDate(t *testing.T) {
	svc, patient, doctor, _ := newTestService(t)

	apt := book(t, svc, patient.ID, doctor.ID, model.NewDate(2099, time.January, 15), model.NewTimeOfDay(10, 0))
	_, err := svc.CompleteAppointment(context.Background(), apt.ID, "premature")
	assert.True(t, apperror.IsKind(err, apperror.KindBusinessRule))
}

func TestStatusTransitions(t *testing.T) {
	svc, patient, doctor, _ := newTestService(t)
	ctx := context.Background()

	cancelled := book(t, svc, patient.ID, doctor.ID, model.Today(), model.NewTimeOfDay(9, 0))
	_, err := svc.CancelAppointment(ctx, cancelled.ID)
	require.NoError(t, err)

	// Terminal states stay terminal.
	_, err = svc.CompleteAppointment(ctx, cancelled.ID, "too late")
	assert.True(t, apperror.IsKind(err, apperror.KindBusinessRule))
	_, err = svc.CancelAppointment(ctx, cancelled.ID)
	assert.True(t, apperror.IsKind(err, apperror.KindBusinessRule))

	completed := book(t, svc, patient.ID, doctor.ID, model.Today(), model.NewTimeOfDay(11, 0))
	_, err = svc.CompleteAppointment(ctx, completed.ID, "observation")
	require.NoError(t, err)
	_, err = svc.CancelAppointment(ctx, completed.ID)
	assert.True(t, apperror.IsKind(err, apperror.KindBusinessRule))

	status := model.AppointmentStatus("postponed")
	_, err = svc.UpdateAppointment(ctx, completed.ID, &model.UpdateAppointmentRequest{Status: &status})
	assert.True(t, apperror.IsKind(err, apperror.KindValidation))
}

func TestDiagnosisOnCancelledAppointment(t *testing.T) {
	svc, patient, doctor, _ := newTestService(t)
	ctx := context.Background()

	apt := book(t, svc, patient.ID, doctor.ID, testDay, model.NewTimeOfDay(10, 0))
	_, err := svc.CancelAppointment(ctx, apt.ID)
	require.NoError(t, err)

	diagnosis := "should not stick"
	_, err = svc.UpdateAppointment(ctx, apt.ID, &model.UpdateAppointmentRequest{Diagnosis: &diagnosis})
	assert.True(t, apperror.IsKind(err, apperror.KindBusinessRule))
}

func TestRescheduleAppointment(t *testing.T) {
	svc, patient, doctor, _ := newTestService(t)
	ctx := context.Background()

	apt := book(t, svc, patient.ID, doctor.ID, testDay, model.NewTimeOfDay(10, 0))
	blocker := book(t, svc, patient.ID, doctor.ID, model.NewDate(2026, time.September, 15), model.NewTimeOfDay(12, 0))

	// Moving within the same day does not conflict with itself.
	newTime := model.NewTimeOfDay(10, 10)
	moved, err := svc.UpdateAppointment(ctx, apt.ID, &model.UpdateAppointmentRequest{Time: &newTime})
	require.NoError(t, err)
	assert.Equal(t, newTime, moved.Time)

	// Moving onto another appointment's slot is rejected.
	conflictTime := blocker.Time
	conflictDate := blocker.Date
	_, err = svc.UpdateAppointment(ctx, apt.ID, &model.UpdateAppointmentRequest{Date: &conflictDate, Time: &conflictTime})
	assert.True(t, apperror.IsKind(err, apperror.KindTimeConflict))
}

func TestDeleteAppointment(t *testing.T) {
	svc, patient, doctor, _ := newTestService(t)
	ctx := context.Background()

	apt := book(t, svc, patient.ID, doctor.ID, testDay, model.NewTimeOfDay(10, 0))
	require.NoError(t, svc.DeleteAppointment(ctx, apt.ID))

	_, err := svc.GetAppointment(ctx, apt.ID)
	assert.True(t, apperror.IsKind(err, apperror.KindNotFound))

	err = svc.DeleteAppointment(ctx, apt.ID)
	assert.True(t, apperror.IsKind(err, apperror.KindNotFound))
}

func TestListAppointmentsByParty(t *testing.T) {
	svc, patient, doctor, _ := newTestService(t)
	ctx := context.Background()

	book(t, svc, patient.ID, doctor.ID, testDay, model.NewTimeOfDay(10, 0))
	book(t, svc, patient.ID, doctor.ID, model.NewDate(2026, time.September, 15), model.NewTimeOfDay(11, 0))

	forPatient, err := svc.ListPatientAppointments(ctx, patient.ID)
	require.NoError(t, err)
	assert.Len(t, forPatient, 2)

	forDoctor, err := svc.ListDoctorAppointments(ctx, doctor.ID, &testDay)
	require.NoError(t, err)
	assert.Len(t, forDoctor, 1)

	_, err = svc.ListPatientAppointments(ctx, uuid.New())
	assert.True(t, apperror.IsKind(err, apperror.KindNotFound))
}
