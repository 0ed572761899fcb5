package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/wb-service/portal/backend/internal/service"
	"github.com/wb-service/portal/backend/internal/types"
)

// CallerKey is the gin context key holding the authenticated employee id
const CallerKey = "caller_eid"

// TokenValidator resolves a bearer token to an employee id
type TokenValidator interface {
	ValidateToken(ctx context.Context, token string) (int64, error)
}

// AuthMiddleware creates a middleware that requires a valid bearer token
func AuthMiddleware(validator TokenValidator) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			unauthorized(c, "missing authorization header")
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || strings.TrimSpace(parts[1]) == "" {
			unauthorized(c, "invalid authorization header format")
			return
		}

		eid, err := validator.ValidateToken(c.Request.Context(), strings.TrimSpace(parts[1]))
		if err != nil {
			if !errors.Is(err, service.ErrUnauthorized) {
				zerolog.Ctx(c.Request.Context()).Error().Err(err).Msg("token validation failed")
				c.AbortWithStatusJSON(http.StatusInternalServerError, types.ErrorResponse{
					Error:   "internal",
					Message: "internal server error",
				})
				return
			}
			unauthorized(c, err.Error())
			return
		}

		c.Set(CallerKey, eid)
		c.Next()
	}
}

// CallerEID returns the authenticated employee id
func CallerEID(c *gin.Context) (int64, bool) {
	v, ok := c.Get(CallerKey)
	if !ok {
		return 0, false
	}
	eid, ok := v.(int64)
	return eid, ok
}

func unauthorized(c *gin.Context, msg string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, types.ErrorResponse{
		Error:   "unauthorized",
		Message: msg,
	})
}
