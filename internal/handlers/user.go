package handlers

import (
	"errors"
	"log"

	"vaultbank/internal/models"
	"vaultbank/internal/services/user"
	"vaultbank/internal/utils"

	"github.com/gofiber/fiber/v2"
)

type UserHandler struct {
	userService user.Service
}

func NewUserHandler(userService user.Service) *UserHandler {
	return &UserHandler{
		userService: userService,
	}
}

// RegisterUser creates a new account and returns its public profile.
func (h *UserHandler) RegisterUser(c *fiber.Ctx) error {
	var input models.CreateUserInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Invalid request body")
	}

	// Role is assigned server-side; self-registration never grants staff roles.
	input.Role = "user"

	created, err := h.userService.Create(&input)
	if err != nil {
		if errors.Is(err, user.ErrEmailTaken) {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "Email already registered"})
		}
		if errors.Is(err, user.ErrWeakPassword) {
			return utils.BadRequest(c, err.Error())
		}
		log.Printf("Registration failed: %v", err)
		return utils.BadRequest(c, "Invalid registration details")
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

// GetProfile returns the authenticated user's account.
func (h *UserHandler) GetProfile(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	account, err := h.userService.GetByID(userID)
	if err != nil {
		return utils.NotFound(c, "User not found")
	}

	return utils.Success(c, fiber.Map{"user": account})
}

// ListRecipients returns the accounts the user can send money to.
func (h *UserHandler) ListRecipients(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	recipients, err := h.userService.ListRecipients(userID)
	if err != nil {
		log.Printf("Recipient listing error: %v", err)
		return utils.InternalError(c, "Failed to retrieve recipients")
	}

	return utils.Success(c, fiber.Map{"recipients": recipients})
}
