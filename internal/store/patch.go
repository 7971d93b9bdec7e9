package store

import (
	"time"

	"gorm.io/datatypes"

	"github.com/Abberdo/FlexConnect-MVP/internal/models"
)

// Patch structs carry partial updates: nil fields are left untouched. Each
// patch knows how to apply itself in place (memory store) and how to render
// itself as a GORM column map (relational store).

type UserPatch struct {
	Username  *string          `json:"username"`
	Password  *string          `json:"password"`
	Email     *string          `json:"email"`
	Name      *string          `json:"name"`
	UserType  *models.UserType `json:"userType"`
	AvatarURL *string          `json:"avatarUrl"`
}

func (p UserPatch) apply(u *models.User) {
	if p.Username != nil {
		u.Username = *p.Username
	}
	if p.Password != nil {
		u.Password = *p.Password
	}
	if p.Email != nil {
		u.Email = *p.Email
	}
	if p.Name != nil {
		u.Name = *p.Name
	}
	if p.UserType != nil {
		u.UserType = *p.UserType
	}
	if p.AvatarURL != nil {
		u.AvatarURL = *p.AvatarURL
	}
}

func (p UserPatch) changes() map[string]any {
	m := map[string]any{}
	if p.Username != nil {
		m["username"] = *p.Username
	}
	if p.Password != nil {
		m["password"] = *p.Password
	}
	if p.Email != nil {
		m["email"] = *p.Email
	}
	if p.Name != nil {
		m["name"] = *p.Name
	}
	if p.UserType != nil {
		m["user_type"] = *p.UserType
	}
	if p.AvatarURL != nil {
		m["avatar_url"] = *p.AvatarURL
	}
	return m
}

type FreelancerProfilePatch struct {
	Title         *string   `json:"title"`
	Bio           *string   `json:"bio"`
	Skills        *[]string `json:"skills"`
	Experience    *string   `json:"experience"`
	HourlyRate    *int      `json:"hourlyRate"`
	Portfolio     *[]string `json:"portfolio"`
	Availability  *string   `json:"availability"`
	AverageRating *float64  `json:"-"`
	TotalReviews  *int      `json:"-"`
}

func (p FreelancerProfilePatch) apply(fp *models.FreelancerProfile) {
	if p.Title != nil {
		fp.Title = *p.Title
	}
	if p.Bio != nil {
		fp.Bio = *p.Bio
	}
	if p.Skills != nil {
		fp.Skills = datatypes.NewJSONSlice(*p.Skills)
	}
	if p.Experience != nil {
		fp.Experience = *p.Experience
	}
	if p.HourlyRate != nil {
		fp.HourlyRate = *p.HourlyRate
	}
	if p.Portfolio != nil {
		fp.Portfolio = datatypes.NewJSONSlice(*p.Portfolio)
	}
	if p.Availability != nil {
		fp.Availability = *p.Availability
	}
	if p.AverageRating != nil {
		fp.AverageRating = *p.AverageRating
	}
	if p.TotalReviews != nil {
		fp.TotalReviews = *p.TotalReviews
	}
}

func (p FreelancerProfilePatch) changes() map[string]any {
	m := map[string]any{}
	if p.Title != nil {
		m["title"] = *p.Title
	}
	if p.Bio != nil {
		m["bio"] = *p.Bio
	}
	if p.Skills != nil {
		m["skills"] = datatypes.NewJSONSlice(*p.Skills)
	}
	if p.Experience != nil {
		m["experience"] = *p.Experience
	}
	if p.HourlyRate != nil {
		m["hourly_rate"] = *p.HourlyRate
	}
	if p.Portfolio != nil {
		m["portfolio"] = datatypes.NewJSONSlice(*p.Portfolio)
	}
	if p.Availability != nil {
		m["availability"] = *p.Availability
	}
	if p.AverageRating != nil {
		m["average_rating"] = *p.AverageRating
	}
	if p.TotalReviews != nil {
		m["total_reviews"] = *p.TotalReviews
	}
	return m
}

type ClientProfilePatch struct {
	CompanyName *string `json:"companyName"`
	Industry    *string `json:"industry"`
	Description *string `json:"description"`
	WebsiteURL  *string `json:"websiteUrl"`
}

func (p ClientProfilePatch) apply(cp *models.ClientProfile) {
	if p.CompanyName != nil {
		cp.CompanyName = *p.CompanyName
	}
	if p.Industry != nil {
		cp.Industry = *p.Industry
	}
	if p.Description != nil {
		cp.Description = *p.Description
	}
	if p.WebsiteURL != nil {
		cp.WebsiteURL = *p.WebsiteURL
	}
}

func (p ClientProfilePatch) changes() map[string]any {
	m := map[string]any{}
	if p.CompanyName != nil {
		m["company_name"] = *p.CompanyName
	}
	if p.Industry != nil {
		m["industry"] = *p.Industry
	}
	if p.Description != nil {
		m["description"] = *p.Description
	}
	if p.WebsiteURL != nil {
		m["website_url"] = *p.WebsiteURL
	}
	return m
}

type JobPostingPatch struct {
	Title          *string           `json:"title"`
	Description    *string           `json:"description"`
	RequiredSkills *[]string         `json:"requiredSkills"`
	Budget         *int              `json:"budget"`
	Duration       *string           `json:"duration"`
	Location       *string           `json:"location"`
	Status         *models.JobStatus `json:"status"`
}

func (p JobPostingPatch) apply(j *models.JobPosting) {
	if p.Title != nil {
		j.Title = *p.Title
	}
	if p.Description != nil {
		j.Description = *p.Description
	}
	if p.RequiredSkills != nil {
		j.RequiredSkills = datatypes.NewJSONSlice(*p.RequiredSkills)
	}
	if p.Budget != nil {
		j.Budget = *p.Budget
	}
	if p.Duration != nil {
		j.Duration = *p.Duration
	}
	if p.Location != nil {
		j.Location = *p.Location
	}
	if p.Status != nil {
		j.Status = *p.Status
	}
}

func (p JobPostingPatch) changes() map[string]any {
	m := map[string]any{}
	if p.Title != nil {
		m["title"] = *p.Title
	}
	if p.Description != nil {
		m["description"] = *p.Description
	}
	if p.RequiredSkills != nil {
		m["required_skills"] = datatypes.NewJSONSlice(*p.RequiredSkills)
	}
	if p.Budget != nil {
		m["budget"] = *p.Budget
	}
	if p.Duration != nil {
		m["duration"] = *p.Duration
	}
	if p.Location != nil {
		m["location"] = *p.Location
	}
	if p.Status != nil {
		m["status"] = *p.Status
	}
	return m
}

type ProjectPatch struct {
	Status        *models.ProjectStatus `json:"status"`
	EndDate       *time.Time            `json:"endDate"`
	Budget        *int                  `json:"budget"`
	PaymentStatus *models.PaymentStatus `json:"paymentStatus"`
}

func (p ProjectPatch) apply(pr *models.Project) {
	if p.Status != nil {
		pr.Status = *p.Status
	}
	if p.EndDate != nil {
		pr.EndDate = p.EndDate
	}
	if p.Budget != nil {
		pr.Budget = *p.Budget
	}
	if p.PaymentStatus != nil {
		pr.PaymentStatus = *p.PaymentStatus
	}
}

func (p ProjectPatch) changes() map[string]any {
	m := map[string]any{}
	if p.Status != nil {
		m["status"] = *p.Status
	}
	if p.EndDate != nil {
		m["end_date"] = *p.EndDate
	}
	if p.Budget != nil {
		m["budget"] = *p.Budget
	}
	if p.PaymentStatus != nil {
		m["payment_status"] = *p.PaymentStatus
	}
	return m
}
