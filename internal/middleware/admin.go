package middleware

import (
	"context"
	"net/http"

	"templeseva/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

// AdminChecker answers whether an email/phone pair carries admin privileges.
type AdminChecker interface {
	IsAdmin(ctx context.Context, email, phone string) (bool, error)
}

// AdminOnly must run after Auth. The caller's identity comes from the token,
// never from the request body.
func AdminOnly(checker AdminChecker) gin.HandlerFunc {
	return func(c *gin.Context) {
		email := c.GetString("email")
		phone := c.GetString("phone")
		if email == "" && phone == "" {
			response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required")
			c.Abort()
			return
		}

		ok, err := checker.IsAdmin(c.Request.Context(), email, phone)
		if err != nil {
			response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Admin check failed")
			c.Abort()
			return
		}
		if !ok {
			response.Error(c, http.StatusForbidden, "FORBIDDEN", "Admin access required")
			c.Abort()
			return
		}

		c.Next()
	}
}
