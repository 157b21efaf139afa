package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"pinboard/internal/models"
	"pinboard/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

var handlerTestUser = &models.User{
	ID:       "11111111-1111-1111-1111-111111111111",
	Name:     "Ada",
	Email:    "ada@example.com",
	PhotoURL: "https://example.com/ada.png",
}

func newTicketTestServer(ticketRepo *MockTicketRepository, userRepo *MockUserRepository) (*fiber.App, *Server) {
	s := &Server{}
	s.ticketService = service.NewTicketService(ticketRepo, userRepo)
	app := fiber.New()
	return app, s
}

func jsonRequest(t *testing.T, method, target string, body interface{}) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, target, &buf)
	req.Header.Set("Content-Type", "application/json")
	return req
}

func TestCreateTicketHandler(t *testing.T) {
	ticketRepo := new(MockTicketRepository)
	userRepo := new(MockUserRepository)
	app, s := newTicketTestServer(ticketRepo, userRepo)
	app.Post("/tickets", s.CreateTicket)

	t.Run("Success", func(t *testing.T) {
		userRepo.On("GetByID", mock.Anything, handlerTestUser.ID).Return(handlerTestUser, nil).Once()
		ticketRepo.On("Create", mock.Anything, mock.AnythingOfType("*models.Ticket")).Return(nil).Once()

		req := jsonRequest(t, http.MethodPost, "/tickets", map[string]string{
			"title":       "Leaking tap",
			"description": "Kitchen tap drips",
			"userId":      handlerTestUser.ID,
			"category":    "plumbing",
			"priority":    "HIGH",
		})
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusCreated, resp.StatusCode)

		var ticket models.Ticket
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&ticket))
		assert.Equal(t, "Leaking tap", ticket.Title)
		assert.Equal(t, handlerTestUser.PhotoURL, ticket.UserPhoto)
		assert.False(t, ticket.Resolved)
		ticketRepo.AssertExpectations(t)
	})

	t.Run("Missing title", func(t *testing.T) {
		req := jsonRequest(t, http.MethodPost, "/tickets", map[string]string{
			"userId": handlerTestUser.ID,
		})
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	})

	t.Run("Unknown user", func(t *testing.T) {
		userRepo.On("GetByID", mock.Anything, "nobody").Return(nil, gorm.ErrRecordNotFound).Once()

		req := jsonRequest(t, http.MethodPost, "/tickets", map[string]string{
			"title":  "Leaking tap",
			"userId": "nobody",
		})
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	})
}

func TestGetUserTicketsHandler(t *testing.T) {
	ticketRepo := new(MockTicketRepository)
	userRepo := new(MockUserRepository)
	app, s := newTicketTestServer(ticketRepo, userRepo)
	app.Get("/tickets/:userId", s.GetUserTickets)

	userRepo.On("GetByID", mock.Anything, handlerTestUser.ID).Return(handlerTestUser, nil).Once()
	ticketRepo.On("GetByUserID", mock.Anything, handlerTestUser.ID).Return([]*models.Ticket{
		{ID: "t1", Title: "Broken pipe"},
		{ID: "t2", Title: "Flickering light"},
	}, nil).Once()

	req := httptest.NewRequest(http.MethodGet, "/tickets/"+handlerTestUser.ID, nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var body struct {
		Tickets []models.Ticket `json:"tickets"`
		Count   int             `json:"count"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, 2, body.Count)
	assert.Len(t, body.Tickets, 2)
}

func TestPatchTicketHandler(t *testing.T) {
	ticketRepo := new(MockTicketRepository)
	userRepo := new(MockUserRepository)
	app, s := newTicketTestServer(ticketRepo, userRepo)
	app.Patch("/tickets", s.PatchTicket)

	t.Run("Whitelisted fields only", func(t *testing.T) {
		userRepo.On("GetByID", mock.Anything, handlerTestUser.ID).Return(handlerTestUser, nil).Once()
		ticketRepo.On("GetByID", mock.Anything, "t1").Return(&models.Ticket{ID: "t1"}, nil).Once()
		ticketRepo.On("UpdateFields", mock.Anything, "t1", map[string]interface{}{
			"title": "Updated",
		}).Return(nil).Once()

		req := jsonRequest(t, http.MethodPatch, "/tickets", map[string]interface{}{
			"userId": handlerTestUser.ID,
			"ticket": map[string]interface{}{
				"id":     "t1",
				"title":  "Updated",
				"hacker": "x",
			},
		})
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusNoContent, resp.StatusCode)
		ticketRepo.AssertExpectations(t)
	})

	t.Run("Missing ticket payload", func(t *testing.T) {
		req := jsonRequest(t, http.MethodPatch, "/tickets", map[string]interface{}{
			"userId": handlerTestUser.ID,
		})
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	})
}

func TestBulkResolveTicketsHandler(t *testing.T) {
	ticketRepo := new(MockTicketRepository)
	userRepo := new(MockUserRepository)
	app, s := newTicketTestServer(ticketRepo, userRepo)
	app.Patch("/tickets/markAsResolved", s.BulkResolveTickets)

	userRepo.On("GetByID", mock.Anything, handlerTestUser.ID).Return(handlerTestUser, nil).Once()
	ticketRepo.On("ResolveAll", mock.Anything, []string{"t1", "t2"}, handlerTestUser.ID).
		Return(int64(1), nil).Once()

	req := jsonRequest(t, http.MethodPatch, "/tickets/markAsResolved", map[string]interface{}{
		"userId":    handlerTestUser.ID,
		"ticketIds": []string{"t1", "t2"},
	})
	resp, err := app.Test(req)
	require.NoError(t, err)
	// No-content regardless of how many matched.
	assert.Equal(t, fiber.StatusNoContent, resp.StatusCode)
	ticketRepo.AssertExpectations(t)
}
