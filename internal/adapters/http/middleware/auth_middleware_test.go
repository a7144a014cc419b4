package middleware

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/nishageedayarathna/DigiBox-sub000/internal/config"
	"github.com/nishageedayarathna/DigiBox-sub000/internal/core/domain"
	"github.com/nishageedayarathna/DigiBox-sub000/internal/pkg/jwt"
	"github.com/nishageedayarathna/DigiBox-sub000/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

const testSecret = "middleware-secret"

func token(t *testing.T, role string, minutes int) string {
	t.Helper()
	tok, _, err := jwt.GenerateAccessToken(jwt.Subject{
		UserID:   7,
		Username: "kasun",
		Role:     role,
		AreaCode: "A01",
	}, testSecret, minutes)
	if err != nil {
		t.Fatalf("GenerateAccessToken: %v", err)
	}
	return tok
}

func newAuthApp() *fiber.App {
	cfg := &config.Config{JWT: config.JWTConfig{Secret: testSecret}}
	app := fiber.New()
	app.Get("/gs", AuthMiddleware(cfg), RoleMiddleware(domain.RoleGS), func(c *fiber.Ctx) error {
		p, ok := CurrentPrincipal(c)
		if !ok {
			return c.SendStatus(fiber.StatusInternalServerError)
		}
		return c.JSON(p)
	})
	return app
}

func TestAuthMiddleware(t *testing.T) {
	tests := []struct {
		name    string
		header  string
		status  int
		message string
	}{
		{"missing header", "", fiber.StatusUnauthorized, "Access token required"},
		{"not bearer", "Basic abc", fiber.StatusUnauthorized, "Access token required"},
		{"empty bearer", "Bearer ", fiber.StatusUnauthorized, "Access token required"},
		{"garbage", "Bearer not-a-jwt", fiber.StatusUnauthorized, "Invalid access token"},
		{"expired", "Bearer " + token(t, "gs", -5), fiber.StatusUnauthorized, "Access token expired"},
		{"unknown role", "Bearer " + token(t, "OFFICER", 5), fiber.StatusUnauthorized, "Invalid access token"},
		{"wrong role", "Bearer " + token(t, "donor", 5), fiber.StatusForbidden, "You don't have permission to access this resource"},
		{"allowed", "Bearer " + token(t, "gs", 5), fiber.StatusOK, ""},
	}

	app := newAuthApp()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/gs", nil)
			if tt.header != "" {
				req.Header.Set(fiber.HeaderAuthorization, tt.header)
			}

			resp, err := app.Test(req)
			if err != nil {
				t.Fatalf("app.Test: %v", err)
			}
			if resp.StatusCode != tt.status {
				t.Fatalf("status = %d, want %d", resp.StatusCode, tt.status)
			}

			body, _ := io.ReadAll(resp.Body)
			if tt.status != fiber.StatusOK {
				var got response.Response
				if err := json.Unmarshal(body, &got); err != nil {
					t.Fatalf("decode %s: %v", body, err)
				}
				if got.Error != tt.message {
					t.Errorf("error = %q, want %q", got.Error, tt.message)
				}
				return
			}

			var p domain.Principal
			if err := json.Unmarshal(body, &p); err != nil {
				t.Fatalf("decode principal %s: %v", body, err)
			}
			if p.UserID != 7 || p.Role != domain.RoleGS || p.AreaCode != "A01" {
				t.Errorf("principal = %+v", p)
			}
		})
	}
}

func TestCacheHeaders(t *testing.T) {
	app := fiber.New()
	app.Get("/public", CacheControl(time.Hour), func(c *fiber.Ctx) error { return c.SendString("ok") })
	app.Get("/private", PrivateCacheHeaders(5*time.Minute), func(c *fiber.Ctx) error { return c.SendString("ok") })
	app.Get("/missing", CacheControl(time.Hour), func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusNotFound) })
	app.Get("/nocache", NoCacheHeaders(), func(c *fiber.Ctx) error { return c.SendString("ok") })

	tests := []struct {
		path string
		want string
	}{
		{"/public", "public, max-age=3600"},
		{"/private", "private, max-age=300"},
		{"/missing", ""},
		{"/nocache", "no-store, no-cache, must-revalidate"},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			resp, err := app.Test(httptest.NewRequest("GET", tt.path, nil))
			if err != nil {
				t.Fatalf("app.Test: %v", err)
			}
			if got := resp.Header.Get(fiber.HeaderCacheControl); got != tt.want {
				t.Errorf("Cache-Control = %q, want %q", got, tt.want)
			}
		})
	}
}
