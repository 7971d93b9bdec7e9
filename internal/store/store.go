// Package store is the persistence gateway: one narrow interface over the
// seven entity collections, implemented by an in-process memory store and a
// GORM-backed relational store with identical semantics.
package store

import (
	"github.com/Abberdo/FlexConnect-MVP/internal/models"
)

// Store is the uniform data-access contract. Lookups return (nil, nil) when
// the entity is absent; an error is only returned for genuine storage
// failures. Create operations assign the identifier and server-owned
// defaults and do not validate business rules — callers check roles,
// ownership and cross-references before mutating. Update operations merge
// only the fields set on the patch and return (nil, nil) for unknown ids.
type Store interface {
	// Users
	GetUser(id uint) (*models.User, error)
	GetUserByUsername(username string) (*models.User, error)
	GetUserByEmail(email string) (*models.User, error)
	CreateUser(u *models.User) (*models.User, error)
	// UpdateUser merges every field present on the patch, including
	// UserType. Keeping an account's type consistent with its profile row
	// is the caller's problem; no endpoint currently exposes it.
	UpdateUser(id uint, patch UserPatch) (*models.User, error)

	// Freelancer profiles, keyed by the owning user id.
	GetFreelancerProfile(userID uint) (*models.FreelancerProfile, error)
	CreateFreelancerProfile(p *models.FreelancerProfile) (*models.FreelancerProfile, error)
	UpdateFreelancerProfile(userID uint, patch FreelancerProfilePatch) (*models.FreelancerProfile, error)
	ListFreelancers() ([]models.Freelancer, error)

	// Client profiles, keyed by the owning user id.
	GetClientProfile(userID uint) (*models.ClientProfile, error)
	CreateClientProfile(p *models.ClientProfile) (*models.ClientProfile, error)
	UpdateClientProfile(userID uint, patch ClientProfilePatch) (*models.ClientProfile, error)

	// Job postings
	GetJobPosting(id uint) (*models.JobPosting, error)
	CreateJobPosting(j *models.JobPosting) (*models.JobPosting, error)
	UpdateJobPosting(id uint, patch JobPostingPatch) (*models.JobPosting, error)
	ListJobPostings() ([]models.JobPosting, error)
	ListClientJobPostings(clientID uint) ([]models.JobPosting, error)

	// Projects. The list operations attach each project's job posting via a
	// point lookup per row.
	GetProject(id uint) (*models.Project, error)
	CreateProject(p *models.Project) (*models.Project, error)
	UpdateProject(id uint, patch ProjectPatch) (*models.Project, error)
	ListClientProjects(clientID uint) ([]models.Project, error)
	ListFreelancerProjects(freelancerID uint) ([]models.Project, error)

	// Messages. ListMessagesBetween returns both directions of the pair,
	// ordered by creation time ascending, regardless of argument order.
	GetMessage(id uint) (*models.Message, error)
	ListMessagesBetween(userA, userB uint) ([]models.Message, error)
	CreateMessage(m *models.Message) (*models.Message, error)
	MarkMessageRead(id uint) (*models.Message, error)

	// Reviews. CreateReview also recomputes the owning freelancer profile's
	// averageRating and totalReviews.
	GetReview(id uint) (*models.Review, error)
	CreateReview(r *models.Review) (*models.Review, error)
	ListFreelancerReviews(freelancerID uint) ([]models.Review, error)
}
