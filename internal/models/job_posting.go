package models

import (
	"time"

	"gorm.io/datatypes"
)

type JobStatus string

const (
	JobStatusOpen       JobStatus = "open"
	JobStatusInProgress JobStatus = "in-progress"
	JobStatusClosed     JobStatus = "closed"
)

type JobPosting struct {
	ID       uint `gorm:"primaryKey" json:"id"`
	ClientID uint `gorm:"not null;index" json:"clientId"`

	Title          string                      `gorm:"not null" json:"title"`
	Description    string                      `gorm:"type:text;not null" json:"description"`
	RequiredSkills datatypes.JSONSlice[string] `json:"requiredSkills"`
	Budget         int                         `json:"budget,omitempty"`
	Duration       string                      `json:"duration,omitempty"`
	Location       string                      `json:"location,omitempty"`

	// open -> in-progress when a project is created against this posting.
	Status JobStatus `gorm:"type:varchar(20);default:'open'" json:"status"`

	CreatedAt time.Time `json:"createdAt"`

	Client *User `gorm:"foreignKey:ClientID" json:"client,omitempty"`
}
