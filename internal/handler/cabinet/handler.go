package cabinet

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/polyclinic/clinic-api/internal/model"
	"github.com/polyclinic/clinic-api/pkg/apperror"
	"github.com/polyclinic/clinic-api/pkg/httputil"
)

type CabinetService interface {
	CreateCabinet(ctx context.Context, req *model.CreateCabinetRequest) (*model.Cabinet, error)
	GetCabinet(ctx context.Context, id uuid.UUID) (*model.Cabinet, error)
	ListCabinets(ctx context.Context) ([]*model.Cabinet, error)
	UpdateCabinet(ctx context.Context, id uuid.UUID, req *model.UpdateCabinetRequest) (*model.Cabinet, error)
	DeleteCabinet(ctx context.Context, id uuid.UUID) error
}

type Handler struct {
	service CabinetService
}

func NewHandler(service CabinetService) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	cabinets := r.Group("/cabinets")
	{
		cabinets.POST("", h.CreateCabinet)
		cabinets.GET("", h.ListCabinets)
		cabinets.GET("/:id", h.GetCabinet)
		cabinets.PUT("/:id", h.UpdateCabinet)
		cabinets.DELETE("/:id", h.DeleteCabinet)
	}
}

func (h *Handler) CreateCabinet(c *gin.Context) {
	var req model.CreateCabinetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithValidationError(c, err)
		return
	}

	cabinet, err := h.service.CreateCabinet(c.Request.Context(), &req)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, http.StatusCreated, cabinet)
}

func (h *Handler) GetCabinet(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.RespondWithError(c, apperror.Validation("invalid cabinet ID"))
		return
	}

	cabinet, err := h.service.GetCabinet(c.Request.Context(), id)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, http.StatusOK, cabinet)
}

func (h *Handler) ListCabinets(c *gin.Context) {
	cabinets, err := h.service.ListCabinets(c.Request.Context())
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, http.StatusOK, cabinets)
}

func (h *Handler) UpdateCabinet(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.RespondWithError(c, apperror.Validation("invalid cabinet ID"))
		return
	}

	var req model.UpdateCabinetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithValidationError(c, err)
		return
	}

	cabinet, err := h.service.UpdateCabinet(c.Request.Context(), id, &req)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, http.StatusOK, cabinet)
}

func (h *Handler) DeleteCabinet(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.RespondWithError(c, apperror.Validation("invalid cabinet ID"))
		return
	}

	if err := h.service.DeleteCabinet(c.Request.Context(), id); err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, http.StatusOK, gin.H{"message": "cabinet deleted"})
}
