package specialization

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/polyclinic/clinic-api/internal/model"
	"github.com/polyclinic/clinic-api/pkg/apperror"
	"github.com/polyclinic/clinic-api/pkg/httputil"
)

type SpecializationService interface {
	CreateSpecialization(ctx context.Context, req *model.CreateSpecializationRequest) (*model.Specialization, error)
	GetSpecialization(ctx context.Context, id uuid.UUID) (*model.Specialization, error)
	ListSpecializations(ctx context.Context) ([]*model.Specialization, error)
	DeleteSpecialization(ctx context.Context, id uuid.UUID) error
}

type Handler struct {
	service SpecializationService
}

func NewHandler(service SpecializationService) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	specs := r.Group("/specializations")
	{
		specs.POST("", h.CreateSpecialization)
		specs.GET("", h.ListSpecializations)
		specs.GET("/:id", h.GetSpecialization)
		specs.DELETE("/:id", h.DeleteSpecialization)
	}
}

func (h *Handler) CreateSpecialization(c *gin.Context) {
	var req model.CreateSpecializationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithValidationError(c, err)
		return
	}

	spec, err := h.service.CreateSpecialization(c.Request.Context(), &req)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, http.StatusCreated, spec)
}

func (h *Handler) GetSpecialization(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.RespondWithError(c, apperror.Validation("invalid specialization ID"))
		return
	}

	spec, err := h.service.GetSpecialization(c.Request.Context(), id)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, http.StatusOK, spec)
}

func (h *Handler) ListSpecializations(c *gin.Context) {
	specs, err := h.service.ListSpecializations(c.Request.Context())
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, http.StatusOK, specs)
}

func (h *Handler) DeleteSpecialization(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.RespondWithError(c, apperror.Validation("invalid specialization ID"))
		return
	}

	if err := h.service.DeleteSpecialization(c.Request.Context(), id); err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, http.StatusOK, gin.H{"message": "specialization deleted"})
}
