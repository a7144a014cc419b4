package handlers

import (
	"errors"
	"log"
	"strconv"
	"strings"

	"github.com/nishageedayarathna/DigiBox-sub000/internal/adapters/http/middleware"
	"github.com/nishageedayarathna/DigiBox-sub000/internal/core/domain"
	"github.com/nishageedayarathna/DigiBox-sub000/internal/core/services"
	"github.com/nishageedayarathna/DigiBox-sub000/internal/pkg/pagination"
	"github.com/nishageedayarathna/DigiBox-sub000/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

var errKinds = []struct {
	kind  error
	write func(*fiber.Ctx, string) error
}{
	{domain.ErrInvalidInput, response.BadRequest},
	{domain.ErrUnauthorized, response.Unauthorized},
	{domain.ErrForbidden, response.Forbidden},
	{domain.ErrNotFound, response.NotFound},
	{domain.ErrDuplicateEntry, response.Conflict},
	{domain.ErrConflict, response.Conflict},
	{domain.ErrPreconditionFailed, response.PreconditionFailed},
}

// handleError writes the response for a service error. Errors without a
// domain kind are logged and reported as fallback with a 500.
func handleError(c *fiber.Ctx, err error, fallback string) error {
	for _, k := range errKinds {
		if errors.Is(err, k.kind) {
			return k.write(c, errorMessage(err, k.kind))
		}
	}

	log.Printf("❌ %s %s: %v", c.Method(), c.Path(), err)
	return response.InternalServerError(c, fallback)
}

// errorMessage keeps only the detail after the "<kind>: " marker
func errorMessage(err, kind error) string {
	msg := err.Error()
	marker := kind.Error() + ": "
	if i := strings.LastIndex(msg, marker); i >= 0 {
		msg = msg[i+len(marker):]
	}
	if msg == "" {
		return kind.Error()
	}
	return strings.ToUpper(msg[:1]) + msg[1:]
}

// parseID reads a positive numeric path parameter
func parseID(c *fiber.Ctx, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Params(name), 10, 32)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}

// actor builds the workflow caller from the authenticated principal
func actor(c *fiber.Ctx) (services.Actor, bool) {
	p, ok := middleware.CurrentPrincipal(c)
	if !ok {
		return services.Actor{}, false
	}
	return services.Actor{Principal: *p, IP: c.IP()}, true
}

// paged sends a list with pagination metadata
func paged(c *fiber.Ctx, message string, data interface{}, params *pagination.Params, total int64) error {
	return response.Success(c, message, pagination.NewResponse(data, params, total))
}
