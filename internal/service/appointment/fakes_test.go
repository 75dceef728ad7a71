package appointment

import (
	"context"

	"github.com/google/uuid"

	"github.com/polyclinic/clinic-api/internal/model"
	"github.com/polyclinic/clinic-api/pkg/apperror"
)

// memAppointmentRepo is an in-memory stand-in for the postgres
// repository. WithDoctorLock runs fn directly; lock semantics are
// covered by the real implementation.
type memAppointmentRepo struct {
	appointments map[uuid.UUID]*model.Appointment
}

func newMemAppointmentRepo() *memAppointmentRepo {
	return &memAppointmentRepo{appointments: make(map[uuid.UUID]*model.Appointment)}
}

func (r *memAppointmentRepo) Create(_ context.Context, apt *model.Appointment) error {
	apt.ID = uuid.New()
	stored := *apt
	r.appointments[apt.ID] = &stored
	return nil
}

func (r *memAppointmentRepo) Get(_ context.Context, id uuid.UUID) (*model.Appointment, error) {
	apt, ok := r.appointments[id]
	if !ok {
		return nil, apperror.NotFound("appointment", id)
	}
	cp := *apt
	return &cp, nil
}

func (r *memAppointmentRepo) List(_ context.Context, filters *model.AppointmentFilters) ([]*model.Appointment, error) {
	var out []*model.Appointment
	for _, apt := range r.appointments {
		if filters.PatientID != uuid.Nil && apt.PatientID != filters.PatientID {
			continue
		}
		if filters.DoctorID != uuid.Nil && apt.DoctorID != filters.DoctorID {
			continue
		}
		if filters.Status != "" && apt.Status != filters.Status {
			continue
		}
		if filters.Date != nil && !apt.Date.Equal(*filters.Date) {
			continue
		}
		cp := *apt
		out = append(out, &cp)
	}
	return out, nil
}

func (r *memAppointmentRepo) ListForDoctorDay(_ context.Context, doctorID uuid.UUID, date model.DateOnly) ([]*model.Appointment, error) {
	var out []*model.Appointment
	for _, apt := range r.appointments {
		if apt.DoctorID != doctorID || !apt.Date.Equal(date) || !apt.Status.IsActive() {
			continue
		}
		cp := *apt
		out = append(out, &cp)
	}
	return out, nil
}

func (r *memAppointmentRepo) Update(_ context.Context, apt *model.Appointment) error {
	if _, ok := r.appointments[apt.ID]; !ok {
		return apperror.NotFound("appointment", apt.ID)
	}
	stored := *apt
	r.appointments[apt.ID] = &stored
	return nil
}

func (r *memAppointmentRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := r.appointments[id]; !ok {
		return apperror.NotFound("appointment", id)
	}
	delete(r.appointments, id)
	return nil
}

func (r *memAppointmentRepo) CountScheduledForDoctor(_ context.Context, doctorID uuid.UUID) (int, error) {
	n := 0
	for _, apt := range r.appointments {
		if apt.DoctorID == doctorID && apt.Status == model.AppointmentStatusScheduled {
			n++
		}
	}
	return n, nil
}

func (r *memAppointmentRepo) CountForDoctor(_ context.Context, doctorID uuid.UUID) (int, error) {
	n := 0
	for _, apt := range r.appointments {
		if apt.DoctorID == doctorID {
			n++
		}
	}
	return n, nil
}

func (r *memAppointmentRepo) WithDoctorLock(ctx context.Context, _ uuid.UUID, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type memPatientRepo struct {
	patients map[uuid.UUID]*model.Patient
}

func newMemPatientRepo(patients ...*model.Patient) *memPatientRepo {
	r := &memPatientRepo{patients: make(map[uuid.UUID]*model.Patient)}
	for _, p := range patients {
		r.patients[p.ID] = p
	}
	return r
}

func (r *memPatientRepo) Create(_ context.Context, p *model.Patient) error {
	p.ID = uuid.New()
	r.patients[p.ID] = p
	return nil
}

func (r *memPatientRepo) Get(_ context.Context, id uuid.UUID) (*model.Patient, error) {
	p, ok := r.patients[id]
	if !ok {
		return nil, apperror.NotFound("patient", id)
	}
	return p, nil
}

func (r *memPatientRepo) GetByInsuranceNumber(_ context.Context, number string) (*model.Patient, error) {
	for _, p := range r.patients {
		if p.InsuranceNumber == number {
			return p, nil
		}
	}
	return nil, apperror.NotFound("patient", number)
}

func (r *memPatientRepo) List(_ context.Context, _ model.Pagination) ([]*model.Patient, error) {
	var out []*model.Patient
	for _, p := range r.patients {
		out = append(out, p)
	}
	return out, nil
}

func (r *memPatientRepo) Update(_ context.Context, p *model.Patient) error {
	if _, ok := r.patients[p.ID]; !ok {
		return apperror.NotFound("patient", p.ID)
	}
	r.patients[p.ID] = p
	return nil
}

func (r *memPatientRepo) DeleteCascade(_ context.Context, id uuid.UUID) (int, error) {
	if _, ok := r.patients[id]; !ok {
		return 0, apperror.NotFound("patient", id)
	}
	delete(r.patients, id)
	return 0, nil
}

type memDoctorRepo struct {
	doctors map[uuid.UUID]*model.Doctor
}

func newMemDoctorRepo(doctors ...*model.Doctor) *memDoctorRepo {
	r := &memDoctorRepo{doctors: make(map[uuid.UUID]*model.Doctor)}
	for _, d := range doctors {
		r.doctors[d.ID] = d
	}
	return r
}

func (r *memDoctorRepo) Create(_ context.Context, d *model.Doctor, _ []uuid.UUID) error {
	d.ID = uuid.New()
	r.doctors[d.ID] = d
	return nil
}

func (r *memDoctorRepo) Get(_ context.Context, id uuid.UUID) (*model.Doctor, error) {
	d, ok := r.doctors[id]
	if !ok {
		return nil, apperror.NotFound("doctor", id)
	}
	return d, nil
}

func (r *memDoctorRepo) List(_ context.Context, _ *model.DoctorFilters) ([]*model.Doctor, error) {
	var out []*model.Doctor
	for _, d := range r.doctors {
		out = append(out, d)
	}
	return out, nil
}

func (r *memDoctorRepo) Update(_ context.Context, d *model.Doctor, _ []uuid.UUID) error {
	if _, ok := r.doctors[d.ID]; !ok {
		return apperror.NotFound("doctor", d.ID)
	}
	r.doctors[d.ID] = d
	return nil
}

func (r *memDoctorRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := r.doctors[id]; !ok {
		return apperror.NotFound("doctor", id)
	}
	delete(r.doctors, id)
	return nil
}

func (r *memDoctorRepo) CountBySpecialization(_ context.Context, _ uuid.UUID) (int, error) {
	return 0, nil
}

func (r *memDoctorRepo) CountByCabinet(_ context.Context, _ uuid.UUID) (int, error) {
	return 0, nil
}
