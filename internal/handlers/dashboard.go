package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/Abberdo/FlexConnect-MVP/internal/models"
	"github.com/Abberdo/FlexConnect-MVP/internal/store"
)

// DashboardHandler assembles the role-specific dashboard view: profile,
// stats, active work and skill-matched recommendations. It is read-only and
// tolerant of missing profile data.
type DashboardHandler struct {
	Store store.Store
}

func NewDashboardHandler(s store.Store) *DashboardHandler {
	return &DashboardHandler{Store: s}
}

func (h *DashboardHandler) Get(c *fiber.Ctx) error {
	userID, ok := currentUserID(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"message": "Unauthorized",
		})
	}

	user, err := h.Store.GetUser(userID)
	if err != nil {
		return internalError(c)
	}
	if user == nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"message": "Unauthorized",
		})
	}

	switch user.UserType {
	case models.UserTypeFreelancer:
		return h.freelancerDashboard(c, user)
	case models.UserTypeClient:
		return h.clientDashboard(c, user)
	}
	return c.JSON(fiber.Map{"user": user})
}

func (h *DashboardHandler) freelancerDashboard(c *fiber.Ctx, user *models.User) error {
	profile, err := h.Store.GetFreelancerProfile(user.ID)
	if err != nil {
		return internalError(c)
	}
	projects, err := h.Store.ListFreelancerProjects(user.ID)
	if err != nil {
		return internalError(c)
	}
	reviews, err := h.Store.ListFreelancerReviews(user.ID)
	if err != nil {
		return internalError(c)
	}
	jobs, err := h.Store.ListJobPostings()
	if err != nil {
		return internalError(c)
	}

	active, completed := partitionProjects(projects)

	var skills []string
	if profile != nil {
		skills = profile.Skills
	}
	matchingJobs := []models.JobPosting{}
	for _, job := range jobs {
		if job.Status == models.JobStatusOpen && skillsIntersect(skills, job.RequiredSkills) {
			matchingJobs = append(matchingJobs, job)
		}
	}

	averageRating := 0.0
	if profile != nil {
		averageRating = profile.AverageRating
	}

	return c.JSON(fiber.Map{
		"user":    user,
		"profile": profile,
		"stats": fiber.Map{
			"totalMatches":   len(matchingJobs),
			"activeProjects": len(active),
			"completedJobs":  len(completed),
			"averageRating":  averageRating,
		},
		"activeProjects": active,
		"matchingJobs":   matchingJobs,
		"reviews":        reviews,
	})
}

func (h *DashboardHandler) clientDashboard(c *fiber.Ctx, user *models.User) error {
	profile, err := h.Store.GetClientProfile(user.ID)
	if err != nil {
		return internalError(c)
	}
	projects, err := h.Store.ListClientProjects(user.ID)
	if err != nil {
		return internalError(c)
	}
	jobPostings, err := h.Store.ListClientJobPostings(user.ID)
	if err != nil {
		return internalError(c)
	}
	freelancers, err := h.Store.ListFreelancers()
	if err != nil {
		return internalError(c)
	}

	active, completed := partitionProjects(projects)

	// Union of skills the client's postings ask for; matching is a plain
	// non-empty intersection test, no ranking.
	wanted := []string{}
	for _, job := range jobPostings {
		wanted = append(wanted, job.RequiredSkills...)
	}
	matchingFreelancers := []models.Freelancer{}
	for _, f := range freelancers {
		if f.Profile != nil && skillsIntersect(f.Profile.Skills, wanted) {
			matchingFreelancers = append(matchingFreelancers, f)
		}
	}

	return c.JSON(fiber.Map{
		"user":    user,
		"profile": profile,
		"stats": fiber.Map{
			"totalMatches":   len(matchingFreelancers),
			"activeProjects": len(active),
			"completedJobs":  len(completed),
			"postedJobs":     len(jobPostings),
		},
		"activeProjects":      active,
		"jobPostings":         jobPostings,
		"matchingFreelancers": matchingFreelancers,
	})
}

func partitionProjects(projects []models.Project) (active, completed []models.Project) {
	active = []models.Project{}
	completed = []models.Project{}
	for _, p := range projects {
		if p.Status == models.ProjectStatusCompleted {
			completed = append(completed, p)
		} else {
			active = append(active, p)
		}
	}
	return active, completed
}

// skillsIntersect reports whether the two skill sets share any entry.
// Missing sets never match and never error.
func skillsIntersect(a, b []string) bool {
	if len(a) == 0 || len(b) == 0 {
		return false
	}
	set := make(map[string]struct{}, len(a))
	for _, s := range a {
		set[s] = struct{}{}
	}
	for _, s := range b {
		if _, ok := set[s]; ok {
			return true
		}
	}
	return false
}
