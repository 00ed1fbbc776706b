package middleware

import (
	"net/http"
	"strings"

	"contacts-api/internal/services"
	"contacts-api/internal/transport/httpdto"

	"github.com/gin-gonic/gin"
)

// NotAuthorizedMessage is the body every authentication failure returns.
const NotAuthorizedMessage = "Not authorized"

func AuthMiddleware(service *services.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractBearer(c)
		u, err := service.Authenticate(c.Request.Context(), token)
		if err != nil {
			c.JSON(http.StatusUnauthorized, httpdto.NewErrorResponse(NotAuthorizedMessage))
			c.Abort()
			return
		}

		ctx := services.WithUserContext(c.Request.Context(), u.ID)
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

func extractBearer(c *gin.Context) string {
	value := c.GetHeader("Authorization")
	parts := strings.SplitN(value, " ", 2)
	if len(parts) != 2 {
		return ""
	}
	if !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
