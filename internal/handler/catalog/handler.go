package catalog

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/detailerhq/booking-api/internal/middleware"
	"github.com/detailerhq/booking-api/internal/model"
	availabilityService "github.com/detailerhq/booking-api/internal/service/availability"
	catalogService "github.com/detailerhq/booking-api/internal/service/catalog"
	apperrors "github.com/detailerhq/booking-api/pkg/errors"
	"github.com/detailerhq/booking-api/pkg/httputil"
)

type Handler struct {
	catalog      *catalogService.Service
	availability *availabilityService.Service
}

func NewHandler(catalog *catalogService.Service, availability *availabilityService.Service) *Handler {
	return &Handler{catalog: catalog, availability: availability}
}

// RegisterRoutes mounts the public catalog surface.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	services := rg.Group("/services")
	{
		services.GET("", h.ListServices)
		services.GET("/:id", h.GetService)
		services.GET("/:id/slots", h.GetAvailableSlots)
	}
}

// RegisterDetailerRoutes mounts the detailer-owned catalog management
// surface. The caller is expected to gate the group by role.
func (h *Handler) RegisterDetailerRoutes(rg *gin.RouterGroup) {
	services := rg.Group("/services")
	{
		services.POST("", h.AddService)
		services.GET("", h.ListOwnServices)
	}
}

func (h *Handler) ListServices(c *gin.Context) {
	services, err := h.catalog.List(c.Request.Context())
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, services)
}

func (h *Handler) GetService(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.RespondWithError(c, apperrors.Validation("invalid service ID"))
		return
	}

	service, err := h.catalog.Get(c.Request.Context(), id)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, service)
}

func (h *Handler) GetAvailableSlots(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.RespondWithError(c, apperrors.Validation("invalid service ID"))
		return
	}

	slots, err := h.availability.GetAvailableSlots(c.Request.Context(), id, c.Query("date_from"), c.Query("date_to"))
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, slots)
}

func (h *Handler) AddService(c *gin.Context) {
	detailerID, ok := middleware.UserID(c)
	if !ok {
		httputil.RespondWithError(c, apperrors.Authorization("missing user identity"))
		return
	}

	var req model.CreateServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithError(c, apperrors.Validation(err.Error()))
		return
	}

	service, err := h.catalog.Add(c.Request.Context(), detailerID, req)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithCreated(c, service)
}

func (h *Handler) ListOwnServices(c *gin.Context) {
	detailerID, ok := middleware.UserID(c)
	if !ok {
		httputil.RespondWithError(c, apperrors.Authorization("missing user identity"))
		return
	}

	services, err := h.catalog.ListForDetailer(c.Request.Context(), detailerID)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, services)
}
