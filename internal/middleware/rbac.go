package middleware

import (
	"net/http"
	"strings"

	"inventory-service/pkg/logger"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// RequireRoles restricts a route to the given roles. Must run after
// AuthMiddleware so the role is already in the request context.
func RequireRoles(allowedRoles ...string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			log := logger.FromContext(c)

			userRole, ok := GetUserRole(c)
			if !ok {
				log.Warn("User role not found in request context")
				return c.JSON(http.StatusUnauthorized, echo.Map{
					"success": false,
					"error":   "Authentication required",
					"message": "User role not found in request",
				})
			}

			for _, role := range allowedRoles {
				if userRole == role {
					return next(c)
				}
			}

			log.Warn("Access denied by role",
				zap.String("role", userRole),
				zap.Strings("allowed_roles", allowedRoles))
			return c.JSON(http.StatusForbidden, echo.Map{
				"success": false,
				"error":   "Access denied",
				"message": "This action requires one of the following roles: " + strings.Join(allowedRoles, ", "),
			})
		}
	}
}
