package handlers

import (
	"errors"
	"log"
	"strconv"

	"vaultbank/internal/models"
	"vaultbank/internal/repositories"
	"vaultbank/internal/services/admin"
	"vaultbank/internal/services/transaction"
	"vaultbank/internal/services/user"
	"vaultbank/internal/utils"
	"vaultbank/internal/utils/pagination"

	"github.com/gofiber/fiber/v2"
)

type AdminHandler struct {
	adminService       admin.Service
	userService        user.Service
	transactionService transaction.Service
}

func NewAdminHandler(adminService admin.Service, userService user.Service, transactionService transaction.Service) *AdminHandler {
	return &AdminHandler{
		adminService:       adminService,
		userService:        userService,
		transactionService: transactionService,
	}
}

// GetSummary returns the admin console overview figures.
func (h *AdminHandler) GetSummary(c *fiber.Ctx) error {
	summary, err := h.adminService.Summary(c.Context())
	if err != nil {
		log.Printf("Admin summary error: %v", err)
		return utils.InternalError(c, "Failed to build summary")
	}

	return utils.Success(c, fiber.Map{"summary": summary})
}

// ListUsers pages through all registered accounts.
func (h *AdminHandler) ListUsers(c *fiber.Ctx) error {
	p := pagination.ParseFromRequest(c)

	users, total, err := h.userService.List(p.Offset, p.Limit)
	if err != nil {
		log.Printf("User listing error: %v", err)
		return utils.InternalError(c, "Failed to retrieve users")
	}

	p.Total = total
	return utils.Success(c, pagination.Response(p, users))
}

// CreateUser lets an admin provision accounts, including staff roles.
func (h *AdminHandler) CreateUser(c *fiber.Ctx) error {
	var input models.CreateUserInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Invalid request body")
	}

	created, err := h.userService.Create(&input)
	if err != nil {
		if errors.Is(err, user.ErrEmailTaken) {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "Email already registered"})
		}
		return utils.BadRequest(c, err.Error())
	}

	return utils.Created(c, fiber.Map{
		"user": fiber.Map{
			"id":    created.ID,
			"email": created.Email,
			"name":  created.Name,
			"role":  created.Role,
		},
	})
}

// DeleteUser removes an account.
func (h *AdminHandler) DeleteUser(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return utils.BadRequest(c, "Invalid user ID")
	}

	if err := h.userService.Delete(uint(id)); err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return utils.NotFound(c, "User not found")
		}
		log.Printf("User deletion failed for user %d: %v", id, err)
		return utils.InternalError(c, "Failed to delete user")
	}

	return utils.Success(c, fiber.Map{"message": "User deleted"})
}

// ListTransactions pages through all transactions with optional filters.
func (h *AdminHandler) ListTransactions(c *fiber.Ctx) error {
	p := pagination.ParseFromRequest(c)

	filter := repositories.TransactionFilter{
		Type:   c.Query("type"),
		Status: c.Query("status"),
	}
	if raw := c.Query("user_id"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			return utils.BadRequest(c, "Invalid user ID filter")
		}
		uid := uint(id)
		filter.UserID = &uid
	}

	transactions, total, err := h.transactionService.List(c.Context(), filter, p.Offset, p.Limit)
	if err != nil {
		log.Printf("Transaction listing error: %v", err)
		return utils.InternalError(c, "Failed to retrieve transactions")
	}

	p.Total = total
	return utils.Success(c, pagination.Response(p, transactions))
}
