package handlers

import (
	"errors"
	"log"

	"vaultbank/internal/services/funding"
	"vaultbank/internal/utils"

	"github.com/gofiber/fiber/v2"
)

type FundingHandler struct {
	fundingService funding.Service
}

func NewFundingHandler(fundingService funding.Service) *FundingHandler {
	return &FundingHandler{
		fundingService: fundingService,
	}
}

// Deposit funds the user's account from a card.
func (h *FundingHandler) Deposit(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	var req funding.DepositRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.BadRequest(c, "Invalid request body")
	}

	if req.IPAddress == "" {
		req.IPAddress = c.IP()
	}
	if req.DeviceInfo == "" {
		req.DeviceInfo = c.Get("User-Agent")
	}

	txn, err := h.fundingService.Deposit(c.Context(), userID, &req)
	if err != nil {
		switch {
		case errors.Is(err, funding.ErrInvalidAmount),
			errors.Is(err, funding.ErrCardNumberRequired),
			errors.Is(err, funding.ErrExpiryRequired),
			errors.Is(err, funding.ErrInvalidExpiry),
			errors.Is(err, funding.ErrCardExpired),
			errors.Is(err, funding.ErrLuhnCheckFailed):
			return utils.BadRequest(c, err.Error())
		}
		log.Printf("Deposit failed for user %d: %v", userID, err)
		return utils.InternalError(c, "Failed to process deposit")
	}

	return utils.Created(c, fiber.Map{"transaction": txn})
}
