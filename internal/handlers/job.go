package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/Abberdo/FlexConnect-MVP/internal/models"
	"github.com/Abberdo/FlexConnect-MVP/internal/store"
)

type JobHandler struct {
	Store store.Store
}

func NewJobHandler(s store.Store) *JobHandler {
	return &JobHandler{Store: s}
}

func (h *JobHandler) List(c *fiber.Ctx) error {
	jobs, err := h.Store.ListJobPostings()
	if err != nil {
		return internalError(c)
	}
	return c.JSON(jobs)
}

func (h *JobHandler) Get(c *fiber.Ctx) error {
	jobID, ok := paramID(c, "id")
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid job ID",
		})
	}
	job, err := h.Store.GetJobPosting(jobID)
	if err != nil {
		return internalError(c)
	}
	if job == nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"message": "Job not found",
		})
	}
	return c.JSON(job)
}

type CreateJobReq struct {
	Title          string   `json:"title"`
	Description    string   `json:"description"`
	RequiredSkills []string `json:"requiredSkills"`
	Budget         int      `json:"budget"`
	Duration       string   `json:"duration"`
	Location       string   `json:"location"`
}

// Create posts a new job for the authenticated client. Route is gated to
// clients by middleware; clientId always comes from the session, never the
// body.
func (h *JobHandler) Create(c *fiber.Ctx) error {
	clientID, ok := currentUserID(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"message": "Unauthorized",
		})
	}

	var req CreateJobReq
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
		})
	}

	errs := FieldErrors{}
	if strings.TrimSpace(req.Title) == "" {
		errs.Add("title", "Title is required")
	}
	if strings.TrimSpace(req.Description) == "" {
		errs.Add("description", "Description is required")
	}
	if req.Budget < 0 {
		errs.Add("budget", "Budget cannot be negative")
	}
	if len(errs) > 0 {
		return validationFail(c, "Invalid job posting data", errs)
	}

	job, err := h.Store.CreateJobPosting(&models.JobPosting{
		ClientID:       clientID,
		Title:          strings.TrimSpace(req.Title),
		Description:    req.Description,
		RequiredSkills: req.RequiredSkills,
		Budget:         req.Budget,
		Duration:       req.Duration,
		Location:       req.Location,
		Status:         models.JobStatusOpen,
	})
	if err != nil {
		return internalError(c)
	}
	return c.Status(fiber.StatusCreated).JSON(job)
}
