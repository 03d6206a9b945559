package handlers

import (
	"errors"
	"log"
	"strconv"

	"vaultbank/internal/models"
	"vaultbank/internal/services/ticket"
	"vaultbank/internal/utils"
	"vaultbank/internal/utils/pagination"

	"github.com/gofiber/fiber/v2"
)

type TicketHandler struct {
	ticketService ticket.Service
}

func NewTicketHandler(ticketService ticket.Service) *TicketHandler {
	return &TicketHandler{
		ticketService: ticketService,
	}
}

// OpenTicket files a new support ticket for the authenticated user.
func (h *TicketHandler) OpenTicket(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	var input struct {
		Subject string `json:"subject"`
		Message string `json:"message"`
	}
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Invalid request body")
	}

	opened, err := h.ticketService.Open(c.Context(), userID, input.Subject, input.Message)
	if err != nil {
		if errors.Is(err, ticket.ErrEmptySubject) || errors.Is(err, ticket.ErrEmptyMessage) {
			return utils.BadRequest(c, err.Error())
		}
		log.Printf("Ticket creation failed for user %d: %v", userID, err)
		return utils.InternalError(c, "Failed to open ticket")
	}

	return utils.Created(c, fiber.Map{"ticket": opened})
}

// GetUserTickets lists the authenticated user's tickets.
func (h *TicketHandler) GetUserTickets(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	tickets, err := h.ticketService.ListForUser(c.Context(), userID)
	if err != nil {
		log.Printf("Ticket listing error for user %d: %v", userID, err)
		return utils.InternalError(c, "Failed to retrieve tickets")
	}

	return utils.Success(c, fiber.Map{"tickets": tickets})
}

// ListTickets is the staff view over all tickets, optionally filtered by
// status.
func (h *TicketHandler) ListTickets(c *fiber.Ctx) error {
	p := pagination.ParseFromRequest(c)
	status := c.Query("status")

	tickets, total, err := h.ticketService.List(c.Context(), status, p.Offset, p.Limit)
	if err != nil {
		log.Printf("Ticket listing error: %v", err)
		return utils.InternalError(c, "Failed to retrieve tickets")
	}

	p.Total = total
	return utils.Success(c, pagination.Response(p, tickets))
}

// GetTicket returns a ticket with user and staff names joined in. Regular
// users can only read their own tickets.
func (h *TicketHandler) GetTicket(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return utils.BadRequest(c, "Invalid ticket ID")
	}

	detail, err := h.ticketService.GetDetail(c.Context(), uint(id))
	if err != nil {
		if errors.Is(err, ticket.ErrTicketNotFound) {
			return utils.NotFound(c, "Ticket not found")
		}
		return utils.InternalError(c, "Failed to retrieve ticket")
	}

	claims, ok := c.Locals("claims").(*models.UserClaims)
	if !ok {
		return utils.Unauthorized(c, "Invalid claims")
	}
	if claims.Role == "user" && detail.UserID != claims.UserID {
		return utils.NotFound(c, "Ticket not found")
	}

	return utils.Success(c, fiber.Map{"ticket": detail})
}

// UpdateTicket applies staff changes: status, assignment, resolution notes.
func (h *TicketHandler) UpdateTicket(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return utils.BadRequest(c, "Invalid ticket ID")
	}

	var req ticket.UpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.BadRequest(c, "Invalid request body")
	}

	updated, err := h.ticketService.Update(c.Context(), uint(id), &req)
	if err != nil {
		switch {
		case errors.Is(err, ticket.ErrTicketNotFound):
			return utils.NotFound(c, "Ticket not found")
		case errors.Is(err, ticket.ErrInvalidStatus):
			return utils.BadRequest(c, err.Error())
		}
		log.Printf("Ticket update failed for ticket %d: %v", id, err)
		return utils.InternalError(c, "Failed to update ticket")
	}

	return utils.Success(c, fiber.Map{"ticket": updated})
}
