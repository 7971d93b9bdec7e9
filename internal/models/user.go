package models

import (
	"time"
)

type UserType string

const (
	UserTypeFreelancer UserType = "freelancer"
	UserTypeClient     UserType = "client"
)

// User is the base account for both freelancers and clients. Which of the
// two profile tables owns a row for it depends on UserType.
type User struct {
	ID       uint     `gorm:"primaryKey" json:"id"`
	Username string   `gorm:"uniqueIndex;not null" json:"username"`
	Password string   `gorm:"not null" json:"-"`
	Email    string   `gorm:"uniqueIndex;not null" json:"email"`
	Name     string   `gorm:"not null" json:"name"`
	UserType UserType `gorm:"type:varchar(20);not null;index" json:"userType"`

	AvatarURL string `gorm:"type:text" json:"avatarUrl,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
}

// Freelancer pairs a freelancer account with its profile for listing
// responses. Profile is nil when the profile row is missing.
type Freelancer struct {
	User
	Profile *FreelancerProfile `json:"profile,omitempty"`
}
