package handlers

import (
	"context"

	"github.com/nishageedayarathna/DigiBox-sub000/internal/adapters/persistence/models"
	"github.com/nishageedayarathna/DigiBox-sub000/internal/core/services"
	"github.com/nishageedayarathna/DigiBox-sub000/internal/pkg/pagination"
	"github.com/nishageedayarathna/DigiBox-sub000/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// ApprovalHandler handles the admin, GS and DS gates of the cause workflow
type ApprovalHandler struct {
	causeService *services.CauseService
}

// NewApprovalHandler creates a new approval handler
func NewApprovalHandler(causeService *services.CauseService) *ApprovalHandler {
	return &ApprovalHandler{
		causeService: causeService,
	}
}

// ListCauses handles listing causes for the admin
// @Summary List causes
// @Description All causes, optionally filtered by admin status or by stage (Admin only)
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Param status query string false "Admin status" Enums(pending, approved, rejected)
// @Param stage query string false "Workflow stage" Enums(pending_admin, pending_gs, pending_ds, approved, published, completed, rejected)
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page" default(20)
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /admin/causes [get]
func (h *ApprovalHandler) ListCauses(c *fiber.Ctx) error {
	params := pagination.GetParams(c)

	causes, total, err := h.causeService.ListForAdmin(c.Context(), &services.ListCausesInput{
		Status: c.Query("status"),
		Stage:  c.Query("stage"),
		Offset: params.Offset,
		Limit:  params.Limit,
	})
	if err != nil {
		return handleError(c, err, "Failed to list causes")
	}

	return paged(c, "Causes retrieved successfully", causes, params, total)
}

// GetCause handles a single cause for the admin
// @Summary Get cause
// @Description Full cause record including workflow state (Admin only)
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Param id path int true "Cause ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /admin/causes/{id} [get]
func (h *ApprovalHandler) GetCause(c *fiber.Ctx) error {
	id, ok := parseID(c, "id")
	if !ok {
		return response.BadRequest(c, "Invalid cause ID")
	}

	cause, err := h.causeService.GetForAdmin(c.Context(), id)
	if err != nil {
		return handleError(c, err, "Failed to get cause")
	}

	return response.Success(c, "Cause retrieved successfully", cause)
}

// History handles the audit trail of a cause
// @Summary Cause history
// @Description Every workflow transition applied to a cause, oldest first (Admin only)
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Param id path int true "Cause ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /admin/causes/{id}/history [get]
func (h *ApprovalHandler) History(c *fiber.Ctx) error {
	id, ok := parseID(c, "id")
	if !ok {
		return response.BadRequest(c, "Invalid cause ID")
	}

	history, err := h.causeService.History(c.Context(), id)
	if err != nil {
		return handleError(c, err, "Failed to get cause history")
	}

	return response.Success(c, "Cause history retrieved successfully", history)
}

// AdminAction handles the admin gate
// @Summary Admin decision
// @Description Approve to forward to the area's GS officer, or reject with a reason (Admin only)
// @Tags Admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Cause ID"
// @Param body body services.AdminActionInput true "Decision"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /admin/causes/{id}/admin-action [put]
func (h *ApprovalHandler) AdminAction(c *fiber.Ctx) error {
	act, ok := actor(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	id, ok := parseID(c, "id")
	if !ok {
		return response.BadRequest(c, "Invalid cause ID")
	}

	var req services.AdminActionInput
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	cause, err := h.causeService.AdminAction(c.Context(), act, id, &req)
	if err != nil {
		return handleError(c, err, "Failed to update cause")
	}

	return response.Success(c, "Cause "+cause.AdminStatus+" successfully", cause)
}

// Publish handles publishing a fully approved cause
// @Summary Publish cause
// @Description Make a DS approved cause visible to donors (Admin only)
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Param id path int true "Cause ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 409 {object} response.Response
// @Failure 412 {object} response.Response
// @Router /admin/publish/{id} [put]
func (h *ApprovalHandler) Publish(c *fiber.Ctx) error {
	act, ok := actor(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	id, ok := parseID(c, "id")
	if !ok {
		return response.BadRequest(c, "Invalid cause ID")
	}

	cause, err := h.causeService.Publish(c.Context(), act, id)
	if err != nil {
		return handleError(c, err, "Failed to publish cause")
	}

	return response.Success(c, "Cause published successfully", cause)
}

// PendingCauses handles the officer work queue
// @Summary Pending causes
// @Description Causes waiting on the calling GS or DS officer
// @Tags Officer
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page" default(20)
// @Success 200 {object} response.Response
// @Router /gs/pending-causes [get]
// @Router /ds/pending-causes [get]
func (h *ApprovalHandler) PendingCauses(c *fiber.Ctx) error {
	return h.officerCauses(c, true)
}

// OfficerCauses handles every cause assigned to the officer
// @Summary Assigned causes
// @Description All causes assigned to the calling GS or DS officer, in any state
// @Tags Officer
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page" default(20)
// @Success 200 {object} response.Response
// @Router /gs/causes [get]
// @Router /ds/causes [get]
func (h *ApprovalHandler) OfficerCauses(c *fiber.Ctx) error {
	return h.officerCauses(c, false)
}

func (h *ApprovalHandler) officerCauses(c *fiber.Ctx, pending bool) error {
	act, ok := actor(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	params := pagination.GetParams(c)
	causes, total, err := h.causeService.ListForOfficer(c.Context(), act, pending, params.Offset, params.Limit)
	if err != nil {
		return handleError(c, err, "Failed to list causes")
	}

	return paged(c, "Causes retrieved successfully", causes, params, total)
}

// GSApprove handles the GS gate approval
// @Summary GS approve
// @Description Verify a cause with remarks and a drawn signature. A signed verification letter is generated and the cause moves to the DS officer.
// @Tags Officer
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Cause ID"
// @Param body body services.GSApproveInput true "Remarks and signature data URL"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /gs/approve/{id} [put]
func (h *ApprovalHandler) GSApprove(c *fiber.Ctx) error {
	act, ok := actor(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	id, ok := parseID(c, "id")
	if !ok {
		return response.BadRequest(c, "Invalid cause ID")
	}

	var req services.GSApproveInput
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	cause, err := h.causeService.GSApprove(c.Context(), act, id, &req)
	if err != nil {
		return handleError(c, err, "Failed to approve cause")
	}

	return response.Success(c, "Cause approved and sent to DS officer", cause)
}

// GSReject handles the GS gate rejection
// @Summary GS reject
// @Description Reject an assigned cause with a reason
// @Tags Officer
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Cause ID"
// @Param body body services.RejectInput true "Reason"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /gs/reject/{id} [put]
func (h *ApprovalHandler) GSReject(c *fiber.Ctx) error {
	return h.officerReject(c, h.causeService.GSReject)
}

// DSApprove handles the DS gate approval
// @Summary DS approve
// @Description Approve an assigned cause so the admin can publish it
// @Tags Officer
// @Produce json
// @Security BearerAuth
// @Param id path int true "Cause ID"
// @Success 200 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /ds/approve/{id} [put]
func (h *ApprovalHandler) DSApprove(c *fiber.Ctx) error {
	act, ok := actor(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	id, ok := parseID(c, "id")
	if !ok {
		return response.BadRequest(c, "Invalid cause ID")
	}

	cause, err := h.causeService.DSApprove(c.Context(), act, id)
	if err != nil {
		return handleError(c, err, "Failed to approve cause")
	}

	return response.Success(c, "Cause approved and ready to publish", cause)
}

// DSReject handles the DS gate rejection
// @Summary DS reject
// @Description Reject an assigned cause with a reason
// @Tags Officer
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Cause ID"
// @Param body body services.RejectInput true "Reason"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /ds/reject/{id} [put]
func (h *ApprovalHandler) DSReject(c *fiber.Ctx) error {
	return h.officerReject(c, h.causeService.DSReject)
}

type rejectFunc func(ctx context.Context, actor services.Actor, id uint, input *services.RejectInput) (*models.CauseResponse, error)

func (h *ApprovalHandler) officerReject(c *fiber.Ctx, reject rejectFunc) error {
	act, ok := actor(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	id, ok := parseID(c, "id")
	if !ok {
		return response.BadRequest(c, "Invalid cause ID")
	}

	var req services.RejectInput
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	cause, err := reject(c.Context(), act, id, &req)
	if err != nil {
		return handleError(c, err, "Failed to reject cause")
	}

	return response.Success(c, "Cause rejected", cause)
}
