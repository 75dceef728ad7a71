package appointment

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/polyclinic/clinic-api/internal/model"
	"github.com/polyclinic/clinic-api/pkg/apperror"
	"github.com/polyclinic/clinic-api/pkg/httputil"
)

type AppointmentService interface {
	CreateAppointment(ctx context.Context, req *model.CreateAppointmentRequest) (*model.Appointment, error)
	GetAppointment(ctx context.Context, id uuid.UUID) (*model.Appointment, error)
	ListAppointments(ctx context.Context, filters *model.AppointmentFilters) ([]*model.Appointment, error)
	ListPatientAppointments(ctx context.Context, patientID uuid.UUID) ([]*model.Appointment, error)
	ListDoctorAppointments(ctx context.Context, doctorID uuid.UUID, date *model.DateOnly) ([]*model.Appointment, error)
	UpdateAppointment(ctx context.Context, id uuid.UUID, req *model.UpdateAppointmentRequest) (*model.Appointment, error)
	CancelAppointment(ctx context.Context, id uuid.UUID) (*model.Appointment, error)
	CompleteAppointment(ctx context.Context, id uuid.UUID, diagnosis string) (*model.Appointment, error)
	DeleteAppointment(ctx context.Context, id uuid.UUID) error
}

type Handler struct {
	service AppointmentService
}

func NewHandler(service AppointmentService) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	appointments := r.Group("/appointments")
	{
		appointments.POST("", h.CreateAppointment)
		appointments.GET("", h.ListAppointments)
		appointments.GET("/:id", h.GetAppointment)
		appointments.PUT("/:id", h.UpdateAppointment)
		appointments.PATCH("/:id/cancel", h.CancelAppointment)
		appointments.PATCH("/:id/complete", h.CompleteAppointment)
		appointments.DELETE("/:id", h.DeleteAppointment)
	}
	r.GET("/patients/:id/appointments", h.ListPatientAppointments)
	r.GET("/doctors/:id/appointments", h.ListDoctorAppointments)
}

func (h *Handler) CreateAppointment(c *gin.Context) {
	var req model.CreateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithValidationError(c, err)
		return
	}

	apt, err := h.service.CreateAppointment(c.Request.Context(), &req)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, http.StatusCreated, apt)
}

func (h *Handler) GetAppointment(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.RespondWithError(c, apperror.Validation("invalid appointment ID"))
		return
	}

	apt, err := h.service.GetAppointment(c.Request.Context(), id)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, http.StatusOK, apt)
}

func (h *Handler) ListAppointments(c *gin.Context) {
	filters := &model.AppointmentFilters{}

	if pid := c.Query("patient_id"); pid != "" {
		id, err := uuid.Parse(pid)
		if err != nil {
			httputil.RespondWithError(c, apperror.Validation("invalid patient_id filter"))
			return
		}
		filters.PatientID = id
	}
	if did := c.Query("doctor_id"); did != "" {
		id, err := uuid.Parse(did)
		if err != nil {
			httputil.RespondWithError(c, apperror.Validation("invalid doctor_id filter"))
			return
		}
		filters.DoctorID = id
	}
	if status := c.Query("status"); status != "" {
		filters.Status = model.AppointmentStatus(status)
		if !filters.Status.Valid() {
			httputil.RespondWithError(c, apperror.Validation("unknown appointment status %q", status))
			return
		}
	}
	if dateStr := c.Query("date"); dateStr != "" {
		date, err := model.ParseDate(dateStr)
		if err != nil {
			httputil.RespondWithError(c, apperror.Validation("invalid date: %v", err))
			return
		}
		filters.Date = &date
	}

	appointments, err := h.service.ListAppointments(c.Request.Context(), filters)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, http.StatusOK, appointments)
}

func (h *Handler) ListPatientAppointments(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.RespondWithError(c, apperror.Validation("invalid patient ID"))
		return
	}

	appointments, err := h.service.ListPatientAppointments(c.Request.Context(), id)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, http.StatusOK, appointments)
}

func (h *Handler) ListDoctorAppointments(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.RespondWithError(c, apperror.Validation("invalid doctor ID"))
		return
	}

	var date *model.DateOnly
	if dateStr := c.Query("date"); dateStr != "" {
		parsed, err := model.ParseDate(dateStr)
		if err != nil {
			httputil.RespondWithError(c, apperror.Validation("invalid date: %v", err))
			return
		}
		date = &parsed
	}

	appointments, err := h.service.ListDoctorAppointments(c.Request.Context(), id, date)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, http.StatusOK, appointments)
}

func (h *Handler) UpdateAppointment(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.RespondWithError(c, apperror.Validation("invalid appointment ID"))
		return
	}

	var req model.UpdateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithValidationError(c, err)
		return
	}

	apt, err := h.service.UpdateAppointment(c.Request.Context(), id, &req)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, http.StatusOK, apt)
}

func (h *Handler) CancelAppointment(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.RespondWithError(c, apperror.Validation("invalid appointment ID"))
		return
	}

	apt, err := h.service.CancelAppointment(c.Request.Context(), id)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, http.StatusOK, apt)
}

func (h *Handler) CompleteAppointment(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.RespondWithError(c, apperror.Validation("invalid appointment ID"))
		return
	}

	var req model.CompleteAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithValidationError(c, err)
		return
	}

	apt, err := h.service.CompleteAppointment(c.Request.Context(), id, req.Diagnosis)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, http.StatusOK, apt)
}

func (h *Handler) DeleteAppointment(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.RespondWithError(c, apperror.Validation("invalid appointment ID"))
		return
	}

	if err := h.service.DeleteAppointment(c.Request.Context(), id); err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, http.StatusOK, gin.H{"message": "appointment deleted"})
}
