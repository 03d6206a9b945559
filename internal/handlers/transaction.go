package handlers

import (
	"errors"
	"log"
	"strconv"

	"vaultbank/internal/repositories"
	"vaultbank/internal/services/transaction"
	"vaultbank/internal/utils"
	"vaultbank/internal/utils/pagination"

	"github.com/gofiber/fiber/v2"
)

type TransactionHandler struct {
	transactionService transaction.Service
}

func NewTransactionHandler(transactionService transaction.Service) *TransactionHandler {
	return &TransactionHandler{
		transactionService: transactionService,
	}
}

// CreateTransaction scores and processes a proposed transaction.
func (h *TransactionHandler) CreateTransaction(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	var req transaction.CreateRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.BadRequest(c, "Invalid request body")
	}

	// Device and network facts come from the request itself, not the payload.
	if req.IPAddress == "" {
		req.IPAddress = c.IP()
	}
	if req.DeviceInfo == "" {
		req.DeviceInfo = c.Get("User-Agent")
	}

	txn, err := h.transactionService.Create(c.Context(), userID, &req)
	if err != nil {
		switch {
		case errors.Is(err, transaction.ErrInvalidRequest),
			errors.Is(err, transaction.ErrSelfTransfer),
			errors.Is(err, transaction.ErrRecipientRequired),
			errors.Is(err, transaction.ErrAmbiguousRecipient):
			return utils.BadRequest(c, err.Error())
		case errors.Is(err, repositories.ErrInsufficientFunds):
			return utils.BadRequest(c, "Insufficient funds")
		}
		log.Printf("Transaction creation failed for user %d: %v", userID, err)
		return utils.InternalError(c, "Failed to process transaction")
	}

	return utils.Created(c, fiber.Map{
		"transaction":     txn,
		"held_for_review": txn.RiskScore >= transaction.PendingReviewThreshold,
	})
}

// GetTransaction returns a single transaction the user is involved in.
func (h *TransactionHandler) GetTransaction(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return utils.BadRequest(c, "Invalid transaction ID")
	}

	txn, err := h.transactionService.Get(c.Context(), userID, uint(id))
	if err != nil {
		if errors.Is(err, transaction.ErrTransactionNotFound) ||
			errors.Is(err, transaction.ErrNotInvolved) {
			return utils.NotFound(c, "Transaction not found")
		}
		return utils.InternalError(c, "Failed to retrieve transaction")
	}

	return utils.Success(c, fiber.Map{"transaction": txn})
}

// GetUserTransactions lists the user's transaction history.
func (h *TransactionHandler) GetUserTransactions(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	p := pagination.ParseFromRequest(c)

	transactions, total, err := h.transactionService.ListForUser(c.Context(), userID, p.Offset, p.Limit)
	if err != nil {
		log.Printf("Transaction history error: %v", err)
		return utils.InternalError(c, "Failed to retrieve transactions")
	}

	p.Total = total
	return utils.Success(c, pagination.Response(p, transactions))
}
