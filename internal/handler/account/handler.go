package account

import (
	"github.com/gin-gonic/gin"

	"github.com/detailerhq/booking-api/internal/middleware"
	"github.com/detailerhq/booking-api/internal/model"
	accountService "github.com/detailerhq/booking-api/internal/service/account"
	apperrors "github.com/detailerhq/booking-api/pkg/errors"
	"github.com/detailerhq/booking-api/pkg/httputil"
)

type Handler struct {
	account *accountService.Service
}

func NewHandler(account *accountService.Service) *Handler {
	return &Handler{account: account}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	account := rg.Group("/account")
	{
		account.GET("/profile", h.GetProfile)
		account.PUT("/profile", h.UpdateProfile)
		account.POST("/password", h.ChangePassword)
		account.GET("/role", h.GetRole)
	}
}

func (h *Handler) GetProfile(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		httputil.RespondWithError(c, apperrors.Authorization("missing user identity"))
		return
	}

	profile, err := h.account.Profile(c.Request.Context(), userID)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, profile)
}

func (h *Handler) UpdateProfile(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		httputil.RespondWithError(c, apperrors.Authorization("missing user identity"))
		return
	}

	var req model.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithError(c, apperrors.Validation(err.Error()))
		return
	}

	profile, err := h.account.UpdateProfile(c.Request.Context(), userID, req)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, profile)
}

func (h *Handler) ChangePassword(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		httputil.RespondWithError(c, apperrors.Authorization("missing user identity"))
		return
	}

	var req model.ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithError(c, apperrors.Validation(err.Error()))
		return
	}

	if err := h.account.ChangePassword(c.Request.Context(), userID, req); err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, gin.H{"message": "password changed"})
}

func (h *Handler) GetRole(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		httputil.RespondWithError(c, apperrors.Authorization("missing user identity"))
		return
	}

	role, err := h.account.Role(c.Request.Context(), userID)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, gin.H{"role": role.Name})
}
