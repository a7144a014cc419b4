package handlers

import (
	"github.com/nishageedayarathna/DigiBox-sub000/internal/core/services"
	"github.com/nishageedayarathna/DigiBox-sub000/internal/pkg/pagination"
	"github.com/nishageedayarathna/DigiBox-sub000/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// DonorHandler handles donor endpoints
type DonorHandler struct {
	causeService    *services.CauseService
	donationService *services.DonationService
}

// NewDonorHandler creates a new donor handler
func NewDonorHandler(causeService *services.CauseService, donationService *services.DonationService) *DonorHandler {
	return &DonorHandler{
		causeService:    causeService,
		donationService: donationService,
	}
}

// ListCauses handles the published cause feed
// @Summary Published causes
// @Description Causes open to donations, newest first
// @Tags Donor
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page" default(20)
// @Success 200 {object} response.Response
// @Router /donor/causes [get]
func (h *DonorHandler) ListCauses(c *fiber.Ctx) error {
	params := pagination.GetParams(c)

	causes, total, err := h.causeService.ListPublished(c.Context(), params.Offset, params.Limit)
	if err != nil {
		return handleError(c, err, "Failed to list causes")
	}

	return paged(c, "Causes retrieved successfully", causes, params, total)
}

// GetCause handles a single published cause
// @Summary Get published cause
// @Description A published cause with its funding progress
// @Tags Donor
// @Produce json
// @Security BearerAuth
// @Param id path int true "Cause ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /donor/causes/{id} [get]
func (h *DonorHandler) GetCause(c *fiber.Ctx) error {
	id, ok := parseID(c, "id")
	if !ok {
		return response.BadRequest(c, "Invalid cause ID")
	}

	cause, err := h.causeService.GetPublished(c.Context(), id)
	if err != nil {
		return handleError(c, err, "Failed to get cause")
	}

	return response.Success(c, "Cause retrieved successfully", cause)
}

// Donate handles a donation
// @Summary Donate
// @Description Donate to a published cause. The donation that reaches the goal closes the cause.
// @Tags Donor
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Cause ID"
// @Param body body services.DonateInput true "Donation"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /donor/donate/{id} [post]
func (h *DonorHandler) Donate(c *fiber.Ctx) error {
	act, ok := actor(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	id, ok := parseID(c, "id")
	if !ok {
		return response.BadRequest(c, "Invalid cause ID")
	}

	var req services.DonateInput
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	receipt, err := h.donationService.Donate(c.Context(), act, id, &req)
	if err != nil {
		return handleError(c, err, "Failed to process donation")
	}

	return response.Created(c, "Donation successful", receipt)
}

// History handles the caller's donation ledger
// @Summary Donation history
// @Description The caller's donations with their running total and badge
// @Tags Donor
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /donor/history [get]
func (h *DonorHandler) History(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(uint)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	history, err := h.donationService.History(c.Context(), userID)
	if err != nil {
		return handleError(c, err, "Failed to get donation history")
	}

	return response.Success(c, "Donation history retrieved successfully", history)
}
