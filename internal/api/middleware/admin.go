package middleware

import (
	"log/slog"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/saturnino-fabrica-de-software/ponto/internal/admin"
	"github.com/saturnino-fabrica-de-software/ponto/internal/domain"
)

const (
	// LocalAdminUser is the key to retrieve admin user ID from context
	LocalAdminUser = "admin_user"
	// LocalAdminUsername is the key to retrieve admin username from context
	LocalAdminUsername = "admin_username"
)

// AdminAuthDependencies contains dependencies for admin authentication
type AdminAuthDependencies struct {
	JWTService *admin.JWTService
	Logger     *slog.Logger
}

// AdminAuth validates the Bearer JWT on admin endpoints.
func AdminAuth(deps AdminAuthDependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := extractBearerToken(c)
		if token == "" {
			deps.Logger.Debug("missing authorization header for admin endpoint")
			return domain.ErrUnauthorized
		}

		claims, err := deps.JWTService.ValidateToken(token)
		if err != nil {
			deps.Logger.Warn("invalid JWT token", "error", err)
			return domain.ErrUnauthorized
		}

		if claims.Role != "admin" {
			deps.Logger.Warn("insufficient privileges", "role", claims.Role)
			return domain.ErrForbidden
		}

		c.Locals(LocalAdminUser, claims.UserID)
		c.Locals(LocalAdminUsername, claims.Username)

		return c.Next()
	}
}

// GetAdminUserID retrieves the authenticated admin user ID from context
func GetAdminUserID(c *fiber.Ctx) (uuid.UUID, error) {
	userID, ok := c.Locals(LocalAdminUser).(uuid.UUID)
	if !ok {
		return uuid.Nil, domain.ErrUnauthorized
	}
	return userID, nil
}

func extractBearerToken(c *fiber.Ctx) string {
	header := c.Get(fiber.HeaderAuthorization)
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
