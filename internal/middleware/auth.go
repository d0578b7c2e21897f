package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/detailerhq/booking-api/internal/model"
	"github.com/detailerhq/booking-api/pkg/auth"
	"github.com/detailerhq/booking-api/pkg/httputil"
)

const (
	ContextUserID    = "user_id"
	ContextUserEmail = "user_email"
	ContextUserRole  = "user_role"
)

type AuthMiddleware struct {
	jwt auth.JWTService
}

func NewAuthMiddleware(jwtSvc auth.JWTService) *AuthMiddleware {
	return &AuthMiddleware{jwt: jwtSvc}
}

// Authenticate verifies the bearer token and stores the caller's identity
// and role in the request context.
func (m *AuthMiddleware) Authenticate() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, httputil.Response{
				Success: false,
				Error:   &httputil.Error{Code: http.StatusUnauthorized, Message: "missing authorization header"},
			})
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, httputil.Response{
				Success: false,
				Error:   &httputil.Error{Code: http.StatusUnauthorized, Message: "invalid authorization format"},
			})
			return
		}

		claims, err := m.jwt.ValidateToken(parts[1])
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, httputil.Response{
				Success: false,
				Error:   &httputil.Error{Code: http.StatusUnauthorized, Message: "invalid token"},
			})
			return
		}

		role := model.RoleName(claims.Role)
		if !role.Valid() {
			c.AbortWithStatusJSON(http.StatusUnauthorized, httputil.Response{
				Success: false,
				Error:   &httputil.Error{Code: http.StatusUnauthorized, Message: "invalid token role"},
			})
			return
		}

		c.Set(ContextUserID, claims.UserID)
		c.Set(ContextUserEmail, claims.Email)
		c.Set(ContextUserRole, role)
		c.Next()
	}
}

// RequireRole gates a route group to one role. Authenticate must run first.
func (m *AuthMiddleware) RequireRole(role model.RoleName) gin.HandlerFunc {
	return func(c *gin.Context) {
		actual, ok := c.Get(ContextUserRole)
		if !ok || actual.(model.RoleName) != role {
			c.AbortWithStatusJSON(http.StatusForbidden, httputil.Response{
				Success: false,
				Error:   &httputil.Error{Code: http.StatusForbidden, Message: "User has not permission to do this action"},
			})
			return
		}
		c.Next()
	}
}

// UserID reads the authenticated caller's ID from the request context.
func UserID(c *gin.Context) (uuid.UUID, bool) {
	value, ok := c.Get(ContextUserID)
	if !ok {
		return uuid.Nil, false
	}
	id, ok := value.(uuid.UUID)
	return id, ok
}
