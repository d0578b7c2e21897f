package garage

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/detailerhq/booking-api/internal/middleware"
	"github.com/detailerhq/booking-api/internal/model"
	garageService "github.com/detailerhq/booking-api/internal/service/garage"
	apperrors "github.com/detailerhq/booking-api/pkg/errors"
	"github.com/detailerhq/booking-api/pkg/httputil"
)

type Handler struct {
	garage *garageService.Service
}

func NewHandler(garage *garageService.Service) *Handler {
	return &Handler{garage: garage}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	cars := rg.Group("/cars")
	{
		cars.POST("", h.AddCar)
		cars.GET("", h.ListCars)
		cars.DELETE("/:id", h.RemoveCar)
	}
}

func (h *Handler) AddCar(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		httputil.RespondWithError(c, apperrors.Authorization("missing user identity"))
		return
	}

	var req model.AddCarRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithError(c, apperrors.Validation(err.Error()))
		return
	}

	car, err := h.garage.Add(c.Request.Context(), userID, req)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithCreated(c, car)
}

func (h *Handler) ListCars(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		httputil.RespondWithError(c, apperrors.Authorization("missing user identity"))
		return
	}

	cars, err := h.garage.List(c.Request.Context(), userID)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, cars)
}

func (h *Handler) RemoveCar(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		httputil.RespondWithError(c, apperrors.Authorization("missing user identity"))
		return
	}

	carID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.RespondWithError(c, apperrors.Validation("invalid car ID"))
		return
	}

	if err := h.garage.Remove(c.Request.Context(), userID, carID); err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, gin.H{"message": "car removed"})
}
