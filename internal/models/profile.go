package models

import (
	"gorm.io/datatypes"
)

type FreelancerProfile struct {
	ID     uint `gorm:"primaryKey" json:"id"`
	UserID uint `gorm:"uniqueIndex;not null" json:"userId"`

	Title        string                      `gorm:"not null" json:"title"`
	Bio          string                      `gorm:"type:text" json:"bio,omitempty"`
	Skills       datatypes.JSONSlice[string] `json:"skills"`
	Experience   string                      `json:"experience,omitempty"`
	HourlyRate   int                         `json:"hourlyRate,omitempty"`
	Portfolio    datatypes.JSONSlice[string] `json:"portfolio"`
	Availability string                      `json:"availability,omitempty"`

	// Derived from the reviews table, recomputed on every review creation.
	AverageRating float64 `gorm:"default:0" json:"averageRating"`
	TotalReviews  int     `gorm:"default:0" json:"totalReviews"`
}

type ClientProfile struct {
	ID     uint `gorm:"primaryKey" json:"id"`
	UserID uint `gorm:"uniqueIndex;not null" json:"userId"`

	CompanyName string `json:"companyName,omitempty"`
	Industry    string `json:"industry,omitempty"`
	Description string `gorm:"type:text" json:"description,omitempty"`
	WebsiteURL  string `json:"websiteUrl,omitempty"`
}
