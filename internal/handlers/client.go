package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/Abberdo/FlexConnect-MVP/internal/models"
	"github.com/Abberdo/FlexConnect-MVP/internal/store"
)

type ClientHandler struct {
	Store store.Store
}

func NewClientHandler(s store.Store) *ClientHandler {
	return &ClientHandler{Store: s}
}

// GetProfile returns {user, profile} for one client.
func (h *ClientHandler) GetProfile(c *fiber.Ctx) error {
	userID, ok := paramID(c, "id")
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid user ID",
		})
	}

	user, err := h.Store.GetUser(userID)
	if err != nil {
		return internalError(c)
	}
	if user == nil || user.UserType != models.UserTypeClient {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"message": "Client not found",
		})
	}

	profile, err := h.Store.GetClientProfile(userID)
	if err != nil {
		return internalError(c)
	}
	if profile == nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"message": "Client profile not found",
		})
	}

	return c.JSON(fiber.Map{"user": user, "profile": profile})
}

func (h *ClientHandler) GetJobs(c *fiber.Ctx) error {
	clientID, ok := paramID(c, "id")
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid client ID",
		})
	}
	jobs, err := h.Store.ListClientJobPostings(clientID)
	if err != nil {
		return internalError(c)
	}
	return c.JSON(jobs)
}

func (h *ClientHandler) GetProjects(c *fiber.Ctx) error {
	clientID, ok := paramID(c, "id")
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid client ID",
		})
	}
	projects, err := h.Store.ListClientProjects(clientID)
	if err != nil {
		return internalError(c)
	}
	return c.JSON(projects)
}
