package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/Abberdo/FlexConnect-MVP/internal/models"
	"github.com/Abberdo/FlexConnect-MVP/internal/store"
)

type ProjectHandler struct {
	Store store.Store
}

func NewProjectHandler(s store.Store) *ProjectHandler {
	return &ProjectHandler{Store: s}
}

func (h *ProjectHandler) Get(c *fiber.Ctx) error {
	projectID, ok := paramID(c, "id")
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid project ID",
		})
	}
	project, err := h.Store.GetProject(projectID)
	if err != nil {
		return internalError(c)
	}
	if project == nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"message": "Project not found",
		})
	}
	return c.JSON(project)
}

type CreateProjectReq struct {
	JobID        uint `json:"jobId"`
	FreelancerID uint `json:"freelancerId"`
	Budget       int  `json:"budget"`
}

// Create hires a freelancer for one of the client's own postings. The job
// is flipped to in-progress by a second gateway call after the insert; the
// two writes are not atomic, so a concurrent update to the same posting can
// interleave between them.
func (h *ProjectHandler) Create(c *fiber.Ctx) error {
	clientID, ok := currentUserID(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"message": "Unauthorized",
		})
	}

	var req CreateProjectReq
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
		})
	}

	errs := FieldErrors{}
	if req.JobID == 0 {
		errs.Add("jobId", "jobId is required")
	}
	if req.FreelancerID == 0 {
		errs.Add("freelancerId", "freelancerId is required")
	}
	if req.Budget <= 0 {
		errs.Add("budget", "budget must be positive")
	}
	if len(errs) > 0 {
		return validationFail(c, "Invalid project data", errs)
	}

	job, err := h.Store.GetJobPosting(req.JobID)
	if err != nil {
		return internalError(c)
	}
	if job == nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"message": "Job not found",
		})
	}
	if job.ClientID != clientID {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"message": "You do not own this job",
		})
	}

	project, err := h.Store.CreateProject(&models.Project{
		JobID:        req.JobID,
		FreelancerID: req.FreelancerID,
		ClientID:     clientID,
		Budget:       req.Budget,
	})
	if err != nil {
		return internalError(c)
	}

	status := models.JobStatusInProgress
	if _, err := h.Store.UpdateJobPosting(job.ID, store.JobPostingPatch{Status: &status}); err != nil {
		return internalError(c)
	}

	return c.Status(fiber.StatusCreated).JSON(project)
}

// Update applies a partial update; only the project's client or freelancer
// may touch it.
func (h *ProjectHandler) Update(c *fiber.Ctx) error {
	userID, ok := currentUserID(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"message": "Unauthorized",
		})
	}

	projectID, idOK := paramID(c, "id")
	if !idOK {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid project ID",
		})
	}

	project, err := h.Store.GetProject(projectID)
	if err != nil {
		return internalError(c)
	}
	if project == nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"message": "Project not found",
		})
	}
	if userID != project.ClientID && userID != project.FreelancerID {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"message": "You do not have permission to update this project",
		})
	}

	var patch store.ProjectPatch
	if err := c.BodyParser(&patch); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
		})
	}
	if patch.Status != nil {
		switch *patch.Status {
		case models.ProjectStatusInProgress, models.ProjectStatusReview, models.ProjectStatusCompleted:
		default:
			errs := FieldErrors{}
			errs.Add("status", "Unknown project status")
			return validationFail(c, "Invalid project data", errs)
		}
	}
	if patch.PaymentStatus != nil {
		switch *patch.PaymentStatus {
		case models.PaymentStatusPending, models.PaymentStatusPaid:
		default:
			errs := FieldErrors{}
			errs.Add("paymentStatus", "Unknown payment status")
			return validationFail(c, "Invalid project data", errs)
		}
	}

	updated, err := h.Store.UpdateProject(projectID, patch)
	if err != nil {
		return internalError(c)
	}
	if updated == nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"message": "Project not found",
		})
	}
	return c.JSON(updated)
}
