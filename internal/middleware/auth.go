package middleware

import (
	"net/http"

	"inventory-service/pkg/logger"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// User roles. Identity verification happens upstream; the role header is a
// trusted input here.
const (
	RoleAdmin = "ADMIN"
	RoleUser  = "USER"
)

// AuthMiddleware extracts the caller's role from the x-user-role header
// and stores it in the request context. Requests without a role are
// rejected before any handler runs.
func AuthMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		log := logger.FromContext(c)

		userRole := c.Request().Header.Get("x-user-role")
		if userRole == "" {
			log.Warn("Missing x-user-role header")
			return c.JSON(http.StatusUnauthorized, echo.Map{
				"success": false,
				"error":   "Authentication required",
				"message": "Please provide x-user-role header",
			})
		}

		if userRole != RoleAdmin && userRole != RoleUser {
			log.Warn("Invalid user role", zap.String("role", userRole))
			return c.JSON(http.StatusForbidden, echo.Map{
				"success": false,
				"error":   "Invalid role",
				"message": "Role must be either ADMIN or USER",
			})
		}

		c.Set("user_role", userRole)
		return next(c)
	}
}

// GetUserRole retrieves the caller's role from the request context
func GetUserRole(c echo.Context) (string, bool) {
	role, ok := c.Get("user_role").(string)
	return role, ok
}
