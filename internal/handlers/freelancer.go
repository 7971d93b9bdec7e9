package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/Abberdo/FlexConnect-MVP/internal/models"
	"github.com/Abberdo/FlexConnect-MVP/internal/store"
)

type FreelancerHandler struct {
	Store store.Store
}

func NewFreelancerHandler(s store.Store) *FreelancerHandler {
	return &FreelancerHandler{Store: s}
}

// List returns every freelancer account with its profile attached.
func (h *FreelancerHandler) List(c *fiber.Ctx) error {
	freelancers, err := h.Store.ListFreelancers()
	if err != nil {
		return internalError(c)
	}
	return c.JSON(freelancers)
}

// GetProfile returns {user, profile} for one freelancer.
func (h *FreelancerHandler) GetProfile(c *fiber.Ctx) error {
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
	if user == nil || user.UserType != models.UserTypeFreelancer {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"message": "Freelancer not found",
		})
	}

	profile, err := h.Store.GetFreelancerProfile(userID)
	if err != nil {
		return internalError(c)
	}
	if profile == nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"message": "Freelancer profile not found",
		})
	}

	return c.JSON(fiber.Map{"user": user, "profile": profile})
}

func (h *FreelancerHandler) GetProjects(c *fiber.Ctx) error {
	freelancerID, ok := paramID(c, "id")
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid freelancer ID",
		})
	}
	projects, err := h.Store.ListFreelancerProjects(freelancerID)
	if err != nil {
		return internalError(c)
	}
	return c.JSON(projects)
}

func (h *FreelancerHandler) GetReviews(c *fiber.Ctx) error {
	freelancerID, ok := paramID(c, "id")
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid freelancer ID",
		})
	}
	reviews, err := h.Store.ListFreelancerReviews(freelancerID)
	if err != nil {
		return internalError(c)
	}
	return c.JSON(reviews)
}
