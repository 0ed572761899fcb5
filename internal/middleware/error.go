package middleware

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/wb-service/portal/backend/internal/types"
)

// Recovery turns a panic into a JSON internal error carrying the panic value
func Recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if rec := recover(); rec != nil {
				message := fmt.Sprint(rec)
				zerolog.Ctx(c.Request.Context()).Error().
					Str("panic", message).
					Str("path", c.Request.URL.Path).
					Msg("recovered from panic")
				c.AbortWithStatusJSON(http.StatusInternalServerError, types.ErrorResponse{
					Error:   "internal",
					Message: internalMessage(message),
				})
			}
		}()
		c.Next()
	}
}

func internalMessage(message string) string {
	if message == "" {
		return "internal server error"
	}
	return message
}
