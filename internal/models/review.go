package models

import (
	"time"
)

// Review is left by a project's client for its freelancer, one per project.
type Review struct {
	ID           uint `gorm:"primaryKey" json:"id"`
	ProjectID    uint `gorm:"not null;index" json:"projectId"`
	ReviewerID   uint `gorm:"not null;index" json:"reviewerId"`
	FreelancerID uint `gorm:"not null;index" json:"freelancerId"`

	Rating  int    `gorm:"not null;check:rating >= 1 AND rating <= 5" json:"rating"`
	Comment string `gorm:"type:text" json:"comment,omitempty"`

	CreatedAt time.Time `json:"createdAt"`

	Project  *Project `gorm:"foreignKey:ProjectID" json:"project,omitempty"`
	Reviewer *User    `gorm:"foreignKey:ReviewerID" json:"reviewer,omitempty"`
}
