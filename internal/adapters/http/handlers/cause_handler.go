package handlers

import (
	"github.com/nishageedayarathna/DigiBox-sub000/internal/core/services"
	"github.com/nishageedayarathna/DigiBox-sub000/internal/pkg/pagination"
	"github.com/nishageedayarathna/DigiBox-sub000/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// CauseHandler handles cause creator endpoints
type CauseHandler struct {
	causeService *services.CauseService
}

// NewCauseHandler creates a new cause handler
func NewCauseHandler(causeService *services.CauseService) *CauseHandler {
	return &CauseHandler{
		causeService: causeService,
	}
}

// Create handles cause submission
// @Summary Submit cause
// @Description Submit a cause with a PDF evidence file. The cause enters the admin queue.
// @Tags Cause
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param title formData string true "Title"
// @Param description formData string true "Description"
// @Param required_amount formData number true "Required amount"
// @Param beneficiary_name formData string true "Beneficiary name"
// @Param beneficiary_nic formData string true "Beneficiary NIC"
// @Param beneficiary_phone formData string true "Beneficiary phone"
// @Param beneficiary_email formData string false "Beneficiary email"
// @Param beneficiary_address formData string true "Beneficiary address"
// @Param bank_name formData string true "Bank name"
// @Param bank_branch formData string true "Bank branch"
// @Param account_number formData string true "Account number"
// @Param account_holder formData string true "Account holder"
// @Param district_code formData string true "District code"
// @Param division_code formData string true "Division code"
// @Param area_code formData string true "GS area code"
// @Param evidence formData file true "Evidence PDF"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /cause/create [post]
func (h *CauseHandler) Create(c *fiber.Ctx) error {
	act, ok := actor(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	var req services.CreateCauseInput
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	// A missing file is reported by the service
	evidence, _ := c.FormFile("evidence")

	cause, err := h.causeService.Create(c.Context(), act, &req, evidence)
	if err != nil {
		return handleError(c, err, "Failed to create cause")
	}

	return response.Created(c, "Cause submitted successfully", cause)
}

// MyCauses handles listing the caller's causes
// @Summary My causes
// @Description Causes submitted by the caller, newest first
// @Tags Cause
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page" default(20)
// @Success 200 {object} response.Response
// @Router /cause/my-causes [get]
func (h *CauseHandler) MyCauses(c *fiber.Ctx) error {
	act, ok := actor(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	params := pagination.GetParams(c)
	causes, total, err := h.causeService.ListMine(c.Context(), act, params.Offset, params.Limit)
	if err != nil {
		return handleError(c, err, "Failed to list causes")
	}

	return paged(c, "Causes retrieved successfully", causes, params, total)
}

// GetMine handles a single cause owned by the caller
// @Summary Get my cause
// @Description Get one of the caller's causes
// @Tags Cause
// @Produce json
// @Security BearerAuth
// @Param id path int true "Cause ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /cause/{id} [get]
func (h *CauseHandler) GetMine(c *fiber.Ctx) error {
	act, ok := actor(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	id, ok := parseID(c, "id")
	if !ok {
		return response.BadRequest(c, "Invalid cause ID")
	}

	cause, err := h.causeService.GetMine(c.Context(), act, id)
	if err != nil {
		return handleError(c, err, "Failed to get cause")
	}

	return response.Success(c, "Cause retrieved successfully", cause)
}
