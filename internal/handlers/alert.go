package handlers

import (
	"errors"
	"log"
	"strconv"

	"vaultbank/internal/services/alert"
	"vaultbank/internal/utils"
	"vaultbank/internal/utils/pagination"

	"github.com/gofiber/fiber/v2"
)

type AlertHandler struct {
	alertService alert.Service
}

func NewAlertHandler(alertService alert.Service) *AlertHandler {
	return &AlertHandler{
		alertService: alertService,
	}
}

// GetUserAlerts lists the authenticated user's open fraud alerts.
func (h *AlertHandler) GetUserAlerts(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	alerts, err := h.alertService.ListForUser(c.Context(), userID)
	if err != nil {
		log.Printf("Alert listing error for user %d: %v", userID, err)
		return utils.InternalError(c, "Failed to retrieve alerts")
	}

	return utils.Success(c, fiber.Map{"alerts": alerts})
}

// ListAlerts is the admin view over all fraud alerts, optionally filtered by
// status.
func (h *AlertHandler) ListAlerts(c *fiber.Ctx) error {
	p := pagination.ParseFromRequest(c)
	status := c.Query("status")

	alerts, total, err := h.alertService.List(c.Context(), status, p.Offset, p.Limit)
	if err != nil {
		log.Printf("Alert listing error: %v", err)
		return utils.InternalError(c, "Failed to retrieve alerts")
	}

	p.Total = total
	return utils.Success(c, pagination.Response(p, alerts))
}

// GetAlert returns a single fraud alert.
func (h *AlertHandler) GetAlert(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return utils.BadRequest(c, "Invalid alert ID")
	}

	found, err := h.alertService.Get(c.Context(), uint(id))
	if err != nil {
		return utils.NotFound(c, "Alert not found")
	}

	return utils.Success(c, fiber.Map{"alert": found})
}

// ResolveAlert moves an alert through the review workflow.
func (h *AlertHandler) ResolveAlert(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return utils.BadRequest(c, "Invalid alert ID")
	}

	var input struct {
		Status     string `json:"status"`
		Resolution string `json:"resolution"`
	}
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Invalid request body")
	}

	updated, err := h.alertService.Resolve(c.Context(), uint(id), input.Status, input.Resolution)
	if err != nil {
		switch {
		case errors.Is(err, alert.ErrInvalidStatus), errors.Is(err, alert.ErrAlreadyResolved):
			return utils.BadRequest(c, err.Error())
		}
		log.Printf("Alert resolution failed for alert %d: %v", id, err)
		return utils.InternalError(c, "Failed to update alert")
	}

	return utils.Success(c, fiber.Map{"alert": updated})
}
