package middleware

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"go.opentelemetry.io/otel"

	"github.com/contentloom/loom/internal/domain"
	"github.com/contentloom/loom/internal/service"
)

var tracer = otel.Tracer("auth")

type AuthMiddleware struct {
	auth *service.AuthService
}

func NewAuthMiddleware(auth *service.AuthService) *AuthMiddleware {
	return &AuthMiddleware{auth: auth}
}

// RequireAdmin admits only requests carrying the admin bearer token and
// places the principal in the request context. Denials carry no detail.
func (m *AuthMiddleware) RequireAdmin(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx, span := tracer.Start(c.Request().Context(), "Auth.Middleware.RequireAdmin")
		defer span.End()

		authHeader := c.Request().Header.Get("authorization")
		split := strings.Split(authHeader, " ")
		if len(split) != 2 || split[0] != "Bearer" {
			span.RecordError(fmt.Errorf("missing or malformed authorization header"))
			return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
		}

		if !m.auth.VerifyAdminToken(split[1]) {
			span.RecordError(fmt.Errorf("admin token rejected"))
			return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
		}

		ctx = context.WithValue(ctx, domain.PrincipalCtxKey, "admin")
		c.SetRequest(c.Request().WithContext(ctx))
		return next(c)
	}
}
