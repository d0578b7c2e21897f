package detailer

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/detailerhq/booking-api/internal/middleware"
	"github.com/detailerhq/booking-api/internal/model"
	"github.com/detailerhq/booking-api/internal/repository"
	invoiceService "github.com/detailerhq/booking-api/internal/service/invoice"
	orderService "github.com/detailerhq/booking-api/internal/service/order"
	staffService "github.com/detailerhq/booking-api/internal/service/staff"
	apperrors "github.com/detailerhq/booking-api/pkg/errors"
	"github.com/detailerhq/booking-api/pkg/httputil"
)

// Handler serves the detailer back office: order listings, stats,
// analytics, client directory, employees, statuses and invoices.
type Handler struct {
	orders   *orderService.Service
	staff    *staffService.Service
	invoices *invoiceService.Service
	statuses repository.StatusRepository
}

func NewHandler(
	orders *orderService.Service,
	staff *staffService.Service,
	invoices *invoiceService.Service,
	statuses repository.StatusRepository,
) *Handler {
	return &Handler{
		orders:   orders,
		staff:    staff,
		invoices: invoices,
		statuses: statuses,
	}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/orders", h.AllOrders)
	rg.GET("/orders/stats", h.Stats)
	rg.GET("/analytics", h.Analytics)
	rg.GET("/clients", h.Clients)
	rg.GET("/clients/:id/submits", h.ClientSubmits)
	rg.GET("/statuses", h.ListStatuses)

	employees := rg.Group("/employees")
	{
		employees.POST("", h.AddEmployee)
		employees.GET("", h.ListEmployees)
		employees.DELETE("/:id", h.RemoveEmployee)
	}

	invoices := rg.Group("/invoices")
	{
		invoices.POST("", h.CreateInvoice)
		invoices.GET("", h.ListInvoices)
		invoices.GET("/:id", h.GetInvoice)
		invoices.DELETE("/:id", h.RemoveInvoice)
	}
}

func (h *Handler) AllOrders(c *gin.Context) {
	detailerID, ok := middleware.UserID(c)
	if !ok {
		httputil.RespondWithError(c, apperrors.Authorization("missing user identity"))
		return
	}

	orders, err := h.orders.AllOrders(c.Request.Context(), detailerID)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, orders)
}

func (h *Handler) Stats(c *gin.Context) {
	detailerID, ok := middleware.UserID(c)
	if !ok {
		httputil.RespondWithError(c, apperrors.Authorization("missing user identity"))
		return
	}

	stats, err := h.orders.Stats(c.Request.Context(), detailerID)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, stats)
}

func (h *Handler) Analytics(c *gin.Context) {
	detailerID, ok := middleware.UserID(c)
	if !ok {
		httputil.RespondWithError(c, apperrors.Authorization("missing user identity"))
		return
	}

	analytics, err := h.orders.Analytics(c.Request.Context(), detailerID, c.Query("date_from"), c.Query("date_to"))
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, analytics)
}

func (h *Handler) Clients(c *gin.Context) {
	detailerID, ok := middleware.UserID(c)
	if !ok {
		httputil.RespondWithError(c, apperrors.Authorization("missing user identity"))
		return
	}

	clients, err := h.orders.Clients(c.Request.Context(), detailerID)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, clients)
}

func (h *Handler) ClientSubmits(c *gin.Context) {
	detailerID, ok := middleware.UserID(c)
	if !ok {
		httputil.RespondWithError(c, apperrors.Authorization("missing user identity"))
		return
	}

	clientID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.RespondWithError(c, apperrors.Validation("invalid client ID"))
		return
	}

	submits, err := h.orders.ClientSubmits(c.Request.Context(), detailerID, clientID)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, submits)
}

func (h *Handler) ListStatuses(c *gin.Context) {
	statuses, err := h.statuses.List(c.Request.Context())
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, statuses)
}

func (h *Handler) AddEmployee(c *gin.Context) {
	detailerID, ok := middleware.UserID(c)
	if !ok {
		httputil.RespondWithError(c, apperrors.Authorization("missing user identity"))
		return
	}

	var req model.AddEmployeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithError(c, apperrors.Validation(err.Error()))
		return
	}

	employee, err := h.staff.Add(c.Request.Context(), detailerID, req)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithCreated(c, employee)
}

func (h *Handler) ListEmployees(c *gin.Context) {
	detailerID, ok := middleware.UserID(c)
	if !ok {
		httputil.RespondWithError(c, apperrors.Authorization("missing user identity"))
		return
	}

	employees, err := h.staff.List(c.Request.Context(), detailerID)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, employees)
}

func (h *Handler) RemoveEmployee(c *gin.Context) {
	detailerID, ok := middleware.UserID(c)
	if !ok {
		httputil.RespondWithError(c, apperrors.Authorization("missing user identity"))
		return
	}

	employeeID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.RespondWithError(c, apperrors.Validation("invalid employee ID"))
		return
	}

	if err := h.staff.Remove(c.Request.Context(), detailerID, employeeID); err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, gin.H{"message": "employee removed"})
}

func (h *Handler) CreateInvoice(c *gin.Context) {
	detailerID, ok := middleware.UserID(c)
	if !ok {
		httputil.RespondWithError(c, apperrors.Authorization("missing user identity"))
		return
	}

	var req model.CreateInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithError(c, apperrors.Validation(err.Error()))
		return
	}

	invoice, err := h.invoices.Create(c.Request.Context(), detailerID, req)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithCreated(c, gin.H{"id": invoice.ID, "number": invoice.DisplayNumber()})
}

func (h *Handler) ListInvoices(c *gin.Context) {
	detailerID, ok := middleware.UserID(c)
	if !ok {
		httputil.RespondWithError(c, apperrors.Authorization("missing user identity"))
		return
	}

	invoices, err := h.invoices.List(c.Request.Context(), detailerID)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, invoices)
}

func (h *Handler) GetInvoice(c *gin.Context) {
	detailerID, ok := middleware.UserID(c)
	if !ok {
		httputil.RespondWithError(c, apperrors.Authorization("missing user identity"))
		return
	}

	invoiceID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.RespondWithError(c, apperrors.Validation("invalid invoice ID"))
		return
	}

	invoice, err := h.invoices.Get(c.Request.Context(), detailerID, invoiceID)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, invoice)
}

func (h *Handler) RemoveInvoice(c *gin.Context) {
	detailerID, ok := middleware.UserID(c)
	if !ok {
		httputil.RespondWithError(c, apperrors.Authorization("missing user identity"))
		return
	}

	invoiceID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.RespondWithError(c, apperrors.Validation("invalid invoice ID"))
		return
	}

	if err := h.invoices.Remove(c.Request.Context(), detailerID, invoiceID); err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, gin.H{"message": "invoice removed"})
}
