package booking

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/detailerhq/booking-api/internal/middleware"
	"github.com/detailerhq/booking-api/internal/model"
	bookingService "github.com/detailerhq/booking-api/internal/service/booking"
	apperrors "github.com/detailerhq/booking-api/pkg/errors"
	"github.com/detailerhq/booking-api/pkg/httputil"
)

type Handler struct {
	booking *bookingService.Service
}

func NewHandler(booking *bookingService.Service) *Handler {
	return &Handler{booking: booking}
}

// RegisterClientRoutes mounts the client booking surface.
func (h *Handler) RegisterClientRoutes(rg *gin.RouterGroup) {
	submits := rg.Group("/submits")
	{
		submits.POST("", h.Submit)
		submits.GET("", h.ListOwn)
		submits.PUT("/:id", h.Reschedule)
		submits.DELETE("/:id", h.Cancel)
	}
}

// RegisterDetailerRoutes mounts the detailer order-management surface.
func (h *Handler) RegisterDetailerRoutes(rg *gin.RouterGroup) {
	orders := rg.Group("/orders")
	{
		orders.PUT("/:id/employee", h.AssignEmployee)
		orders.PUT("/:id/status", h.SetStatus)
	}
}

func (h *Handler) Submit(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		httputil.RespondWithError(c, apperrors.Authorization("missing user identity"))
		return
	}

	var req model.SubmitScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithError(c, apperrors.Validation(err.Error()))
		return
	}

	serviceID, _ := uuid.Parse(req.ServiceID)
	carID, _ := uuid.Parse(req.CarID)

	submission, err := h.booking.Submit(c.Request.Context(), serviceID, req.Date, userID, carID)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithCreated(c, submission)
}

func (h *Handler) ListOwn(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		httputil.RespondWithError(c, apperrors.Authorization("missing user identity"))
		return
	}

	submissions, err := h.booking.ListForClient(c.Request.Context(), userID)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, submissions)
}

func (h *Handler) Reschedule(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		httputil.RespondWithError(c, apperrors.Authorization("missing user identity"))
		return
	}

	submitID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.RespondWithError(c, apperrors.Validation("invalid submit ID"))
		return
	}

	var req model.RescheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithError(c, apperrors.Validation(err.Error()))
		return
	}

	carID, _ := uuid.Parse(req.CarID)
	if err := h.booking.Reschedule(c.Request.Context(), userID, submitID, req.Date, carID); err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, gin.H{"message": "submit updated"})
}

func (h *Handler) Cancel(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		httputil.RespondWithError(c, apperrors.Authorization("missing user identity"))
		return
	}

	submitID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.RespondWithError(c, apperrors.Validation("invalid submit ID"))
		return
	}

	if err := h.booking.Cancel(c.Request.Context(), userID, submitID); err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, gin.H{"message": "submit cancelled"})
}

func (h *Handler) AssignEmployee(c *gin.Context) {
	detailerID, ok := middleware.UserID(c)
	if !ok {
		httputil.RespondWithError(c, apperrors.Authorization("missing user identity"))
		return
	}

	submitID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.RespondWithError(c, apperrors.Validation("invalid submit ID"))
		return
	}

	var req model.AssignEmployeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithError(c, apperrors.Validation(err.Error()))
		return
	}

	employeeID, _ := uuid.Parse(req.EmployeeID)
	if err := h.booking.AssignEmployee(c.Request.Context(), detailerID, submitID, employeeID); err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, gin.H{"message": "employee assigned"})
}

func (h *Handler) SetStatus(c *gin.Context) {
	detailerID, ok := middleware.UserID(c)
	if !ok {
		httputil.RespondWithError(c, apperrors.Authorization("missing user identity"))
		return
	}

	submitID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.RespondWithError(c, apperrors.Validation("invalid submit ID"))
		return
	}

	var req model.SetStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithError(c, apperrors.Validation(err.Error()))
		return
	}

	statusID, _ := uuid.Parse(req.StatusID)
	if err := h.booking.SetStatus(c.Request.Context(), detailerID, submitID, statusID); err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, gin.H{"message": "status updated"})
}
