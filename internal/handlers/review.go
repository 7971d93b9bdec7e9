package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/Abberdo/FlexConnect-MVP/internal/models"
	"github.com/Abberdo/FlexConnect-MVP/internal/store"
)

type ReviewHandler struct {
	Store store.Store
}

func NewReviewHandler(s store.Store) *ReviewHandler {
	return &ReviewHandler{Store: s}
}

type CreateReviewReq struct {
	ProjectID    uint   `json:"projectId"`
	FreelancerID uint   `json:"freelancerId"`
	Rating       int    `json:"rating"`
	Comment      string `json:"comment"`
}

// Create leaves a review on one of the client's own projects. The gateway
// recomputes the freelancer's averageRating/totalReviews as part of the
// insert.
func (h *ReviewHandler) Create(c *fiber.Ctx) error {
	reviewerID, ok := currentUserID(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"message": "Unauthorized",
		})
	}

	var req CreateReviewReq
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
		})
	}

	errs := FieldErrors{}
	if req.ProjectID == 0 {
		errs.Add("projectId", "projectId is required")
	}
	if req.FreelancerID == 0 {
		errs.Add("freelancerId", "freelancerId is required")
	}
	if req.Rating < 1 || req.Rating > 5 {
		errs.Add("rating", "Rating must be between 1 and 5")
	}
	if len(errs) > 0 {
		return validationFail(c, "Invalid review data", errs)
	}

	project, err := h.Store.GetProject(req.ProjectID)
	if err != nil {
		return internalError(c)
	}
	if project == nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"message": "Project not found",
		})
	}
	if project.ClientID != reviewerID {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"message": "You do not own this project",
		})
	}
	if project.FreelancerID != req.FreelancerID {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Freelancer ID does not match project's freelancer",
		})
	}

	review, err := h.Store.CreateReview(&models.Review{
		ProjectID:    req.ProjectID,
		ReviewerID:   reviewerID,
		FreelancerID: req.FreelancerID,
		Rating:       req.Rating,
		Comment:      req.Comment,
	})
	if err != nil {
		return internalError(c)
	}
	return c.Status(fiber.StatusCreated).JSON(review)
}
