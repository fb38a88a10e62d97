package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"storefront/internal/usecase"
	"storefront/pkg/utils"
)

const (
	ContextUserID = "uid"
	ContextRole   = "role"
)

type AuthMiddleware struct {
	tokens usecase.TokenIssuer
}

func NewAuthMiddleware(tokens usecase.TokenIssuer) *AuthMiddleware {
	return &AuthMiddleware{
		tokens: tokens,
	}
}

func (m *AuthMiddleware) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		authHeader := c.Request().Header.Get("Authorization")
		if authHeader == "" {
			return echo.NewHTTPError(http.StatusUnauthorized, "Authorization header is required")
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			return echo.NewHTTPError(http.StatusUnauthorized, "Invalid authorization format")
		}

		userID, role, err := m.tokens.Verify(parts[1])
		if err != nil {
			return echo.NewHTTPError(http.StatusUnauthorized, "Invalid or expired token")
		}

		c.Set(ContextUserID, userID)
		c.Set(ContextRole, role)

		return next(c)
	}
}

// SameUser rejects requests whose :param path value names a different
// user than the authenticated one.
func (m *AuthMiddleware) SameUser(param string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			pathID, ok := utils.ParseID(c.Param(param))
			if !ok {
				return echo.NewHTTPError(http.StatusBadRequest, "Invalid user ID")
			}
			if uid, _ := UserID(c); uid != pathID {
				return echo.NewHTTPError(http.StatusForbidden, "Access denied")
			}
			return next(c)
		}
	}
}

// UserID returns the authenticated user's id set by Authenticate.
func UserID(c echo.Context) (int64, bool) {
	uid, ok := c.Get(ContextUserID).(int64)
	return uid, ok
}
