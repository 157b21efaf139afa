package server

import (
	"encoding/json"

	"pinboard/internal/models"
	"pinboard/internal/service"

	"github.com/gofiber/fiber/v2"
)

// CreateTicket handles POST /tickets
func (s *Server) CreateTicket(c *fiber.Ctx) error {
	ctx := c.Context()

	var req service.CreateTicketInput
	if err := parseBody(c, &req); err != nil {
		return nil
	}

	ticket, err := s.ticketService.CreateTicket(ctx, req)
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(ticket)
}

// GetUserTickets handles GET /tickets/:userId
func (s *Server) GetUserTickets(c *fiber.Ctx) error {
	ctx := c.Context()
	userID, err := requireParam(c, "userId")
	if err != nil {
		return nil
	}

	tickets, err := s.ticketService.ListForUser(ctx, userID)
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return c.JSON(fiber.Map{
		"tickets": tickets,
		"count":   len(tickets),
	})
}

// PatchTicket handles PATCH /tickets
func (s *Server) PatchTicket(c *fiber.Ctx) error {
	ctx := c.Context()

	var req struct {
		UserID string          `json:"userId"`
		Ticket json.RawMessage `json:"ticket"`
	}
	if err := parseBody(c, &req); err != nil {
		return nil
	}
	if len(req.Ticket) == 0 {
		return models.RespondWithError(c,
			models.NewInvalidRequestError("ticket payload is required"))
	}

	var patch map[string]interface{}
	if err := json.Unmarshal(req.Ticket, &patch); err != nil {
		return models.RespondWithError(c,
			models.NewInvalidRequestError("ticket payload must be an object"))
	}
	ticketID, _ := patch["id"].(string)
	delete(patch, "id")

	if err := s.ticketService.PatchTicket(ctx, req.UserID, ticketID, patch); err != nil {
		return models.RespondWithError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// BulkResolveTickets handles PATCH /tickets/markAsResolved
func (s *Server) BulkResolveTickets(c *fiber.Ctx) error {
	ctx := c.Context()

	var req struct {
		UserID    string   `json:"userId"`
		TicketIDs []string `json:"ticketIds"`
	}
	if err := parseBody(c, &req); err != nil {
		return nil
	}

	if _, err := s.ticketService.BulkResolve(ctx, req.UserID, req.TicketIDs); err != nil {
		return models.RespondWithError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// DeleteAllTickets handles DELETE /tickets (maintenance only)
func (s *Server) DeleteAllTickets(c *fiber.Ctx) error {
	ctx := c.Context()

	deleted, err := s.ticketService.DeleteAllTickets(ctx)
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return c.JSON(fiber.Map{"deleted": deleted})
}
