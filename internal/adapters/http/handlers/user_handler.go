package handlers

import (
	"github.com/nishageedayarathna/DigiBox-sub000/internal/core/domain"
	"github.com/nishageedayarathna/DigiBox-sub000/internal/core/services"
	"github.com/nishageedayarathna/DigiBox-sub000/internal/pkg/pagination"
	"github.com/nishageedayarathna/DigiBox-sub000/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// UserHandler handles user management endpoints
type UserHandler struct {
	userService      *services.UserService
	hierarchyService *services.HierarchyService
}

// NewUserHandler creates a new user handler
func NewUserHandler(userService *services.UserService, hierarchyService *services.HierarchyService) *UserHandler {
	return &UserHandler{
		userService:      userService,
		hierarchyService: hierarchyService,
	}
}

// AddGS handles GS officer provisioning (Admin only)
// @Summary Add GS officer
// @Description Create a Grama Niladhari officer for an area. A temporary password is emailed.
// @Tags Admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body services.AddOfficerInput true "Officer data"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /admin/add-gs [post]
func (h *UserHandler) AddGS(c *fiber.Ctx) error {
	return h.addOfficer(c, domain.RoleGS)
}

// AddDS handles DS officer provisioning (Admin only)
// @Summary Add DS officer
// @Description Create a Divisional Secretariat officer for a division. A temporary password is emailed.
// @Tags Admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body services.AddOfficerInput true "Officer data"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /admin/add-ds [post]
func (h *UserHandler) AddDS(c *fiber.Ctx) error {
	return h.addOfficer(c, domain.RoleDS)
}

func (h *UserHandler) addOfficer(c *fiber.Ctx, role domain.Role) error {
	var req services.AddOfficerInput
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	user, err := h.userService.AddOfficer(c.Context(), role, &req)
	if err != nil {
		return handleError(c, err, "Failed to create officer")
	}

	return response.Created(c, "Officer created successfully", fiber.Map{
		"user": user,
	})
}

// ListUsers handles listing all users (Admin only)
// @Summary List all users
// @Description Get a paginated list of users, optionally filtered by role (Admin only)
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Param role query string false "Role filter" Enums(admin, donor, creator, gs, ds)
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page" default(20)
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /admin/users [get]
func (h *UserHandler) ListUsers(c *fiber.Ctx) error {
	params := pagination.GetParams(c)

	users, total, err := h.userService.ListUsers(c.Context(), &services.ListUsersInput{
		Role:   c.Query("role"),
		Offset: params.Offset,
		Limit:  params.Limit,
	})
	if err != nil {
		return handleError(c, err, "Failed to list users")
	}

	return paged(c, "Users retrieved successfully", users, params, total)
}

// DeleteUser handles deleting a user (Admin only)
// @Summary Delete user
// @Description Delete a user. Admins and officers with causes in progress cannot be deleted.
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Param id path int true "User ID"
// @Success 200 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /admin/users/{id} [delete]
func (h *UserHandler) DeleteUser(c *fiber.Ctx) error {
	id, ok := parseID(c, "id")
	if !ok {
		return response.BadRequest(c, "Invalid user ID")
	}

	if err := h.userService.DeleteUser(c.Context(), id); err != nil {
		return handleError(c, err, "Failed to delete user")
	}

	return response.Success(c, "User deleted successfully", nil)
}

// OrgChart handles the full district/division/area tree (Admin only)
// @Summary Organisation chart
// @Description Every district with its DS and GS officers
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /admin/hierarchy [get]
func (h *UserHandler) OrgChart(c *fiber.Ctx) error {
	chart, err := h.hierarchyService.OrgChart(c.Context())
	if err != nil {
		return handleError(c, err, "Failed to load hierarchy")
	}

	return response.Success(c, "Hierarchy retrieved successfully", chart)
}

// GSAreas handles the area picker used by the cause form
// @Summary GS areas
// @Description GS areas grouped by district and division
// @Tags Hierarchy
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /hierarchy/areas [get]
func (h *UserHandler) GSAreas(c *fiber.Ctx) error {
	areas, err := h.hierarchyService.GSAreas(c.Context())
	if err != nil {
		return handleError(c, err, "Failed to load areas")
	}

	return response.Success(c, "Areas retrieved successfully", areas)
}
