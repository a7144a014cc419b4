package middleware

import (
	"errors"
	"strings"

	"github.com/nishageedayarathna/DigiBox-sub000/internal/config"
	"github.com/nishageedayarathna/DigiBox-sub000/internal/core/domain"
	"github.com/nishageedayarathna/DigiBox-sub000/internal/pkg/jwt"
	"github.com/nishageedayarathna/DigiBox-sub000/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// LocalPrincipal is the Locals key holding the authenticated *domain.Principal
const LocalPrincipal = "principal"

// AuthMiddleware creates authentication middleware
func AuthMiddleware(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		// 1. Read bearer token
		authHeader := c.Get(fiber.HeaderAuthorization)
		if !strings.HasPrefix(authHeader, "Bearer ") {
			return response.Unauthorized(c, "Access token required")
		}
		accessToken := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
		if accessToken == "" {
			return response.Unauthorized(c, "Access token required")
		}

		// 2. Validate token
		claims, err := jwt.ValidateAccessToken(accessToken, cfg.JWT.Secret)
		if err != nil {
			if errors.Is(err, jwt.ErrTokenExpired) {
				return response.Unauthorized(c, "Access token expired")
			}
			return response.Unauthorized(c, "Invalid access token")
		}

		role, err := domain.ParseRole(claims.Role)
		if err != nil {
			return response.Unauthorized(c, "Invalid access token")
		}

		// 3. Set user info in context
		c.Locals(LocalPrincipal, &domain.Principal{
			UserID:       claims.UserID,
			Username:     claims.Username,
			Role:         role,
			DistrictCode: claims.DistrictCode,
			DivisionCode: claims.DivisionCode,
			AreaCode:     claims.AreaCode,
		})
		c.Locals("userID", claims.UserID)
		c.Locals("role", string(role))

		return c.Next()
	}
}

// CurrentPrincipal returns the caller resolved by AuthMiddleware
func CurrentPrincipal(c *fiber.Ctx) (*domain.Principal, bool) {
	p, ok := c.Locals(LocalPrincipal).(*domain.Principal)
	return p, ok && p != nil
}

// RoleMiddleware creates role-based authorization middleware
func RoleMiddleware(allowedRoles ...domain.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		p, ok := CurrentPrincipal(c)
		if !ok {
			return response.Unauthorized(c, "Unauthorized")
		}

		// Check if user's role is in allowed roles
		for _, allowedRole := range allowedRoles {
			if p.Role == allowedRole {
				return c.Next()
			}
		}

		return response.Forbidden(c, "You don't have permission to access this resource")
	}
}

// AdminOnly middleware allows only the admin role
func AdminOnly() fiber.Handler {
	return RoleMiddleware(domain.RoleAdmin)
}
