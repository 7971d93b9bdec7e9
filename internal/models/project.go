package models

import (
	"time"
)

type ProjectStatus string

const (
	ProjectStatusInProgress ProjectStatus = "in-progress"
	ProjectStatusReview     ProjectStatus = "review"
	ProjectStatusCompleted  ProjectStatus = "completed"
)

type PaymentStatus string

const (
	PaymentStatusPending PaymentStatus = "pending"
	PaymentStatusPaid    PaymentStatus = "paid"
)

// Project links a job posting to the freelancer hired for it. ClientID is
// denormalized from the posting and must match it at creation time.
type Project struct {
	ID           uint `gorm:"primaryKey" json:"id"`
	JobID        uint `gorm:"not null;index" json:"jobId"`
	FreelancerID uint `gorm:"not null;index" json:"freelancerId"`
	ClientID     uint `gorm:"not null;index" json:"clientId"`

	Status        ProjectStatus `gorm:"type:varchar(20);default:'in-progress'" json:"status"`
	StartDate     time.Time     `json:"startDate"`
	EndDate       *time.Time    `json:"endDate,omitempty"`
	Budget        int           `gorm:"not null" json:"budget"`
	PaymentStatus PaymentStatus `gorm:"type:varchar(20);default:'pending'" json:"paymentStatus"`

	// Attached by the project list operations, not preloaded by default.
	Job *JobPosting `gorm:"foreignKey:JobID" json:"job,omitempty"`
}
