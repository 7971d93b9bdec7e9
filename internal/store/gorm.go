package store

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/Abberdo/FlexConnect-MVP/internal/models"
)

// GormStore backs the gateway with a relational database through GORM.
// gorm.ErrRecordNotFound is translated to the absent marker at this
// boundary; every other error propagates to the caller.
type GormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func absent(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil
	}
	return err
}

// Users

func (s *GormStore) GetUser(id uint) (*models.User, error) {
	var u models.User
	if err := s.db.First(&u, "id = ?", id).Error; err != nil {
		return nil, absent(err)
	}
	return &u, nil
}

func (s *GormStore) GetUserByUsername(username string) (*models.User, error) {
	var u models.User
	if err := s.db.Where("username = ?", username).First(&u).Error; err != nil {
		return nil, absent(err)
	}
	return &u, nil
}

func (s *GormStore) GetUserByEmail(email string) (*models.User, error) {
	var u models.User
	if err := s.db.Where("email = ?", email).First(&u).Error; err != nil {
		return nil, absent(err)
	}
	return &u, nil
}

func (s *GormStore) CreateUser(u *models.User) (*models.User, error) {
	if err := s.db.Create(u).Error; err != nil {
		return nil, err
	}
	return u, nil
}

func (s *GormStore) UpdateUser(id uint, patch UserPatch) (*models.User, error) {
	var u models.User
	if err := s.db.First(&u, "id = ?", id).Error; err != nil {
		return nil, absent(err)
	}
	if ch := patch.changes(); len(ch) > 0 {
		if err := s.db.Model(&u).Updates(ch).Error; err != nil {
			return nil, err
		}
	}
	return &u, nil
}

// Freelancer profiles

func (s *GormStore) GetFreelancerProfile(userID uint) (*models.FreelancerProfile, error) {
	var p models.FreelancerProfile
	if err := s.db.Where("user_id = ?", userID).First(&p).Error; err != nil {
		return nil, absent(err)
	}
	return &p, nil
}

func (s *GormStore) CreateFreelancerProfile(p *models.FreelancerProfile) (*models.FreelancerProfile, error) {
	p.AverageRating = 0
	p.TotalReviews = 0
	if err := s.db.Create(p).Error; err != nil {
		return nil, err
	}
	return p, nil
}

func (s *GormStore) UpdateFreelancerProfile(userID uint, patch FreelancerProfilePatch) (*models.FreelancerProfile, error) {
	var p models.FreelancerProfile
	if err := s.db.Where("user_id = ?", userID).First(&p).Error; err != nil {
		return nil, absent(err)
	}
	if ch := patch.changes(); len(ch) > 0 {
		if err := s.db.Model(&p).Updates(ch).Error; err != nil {
			return nil, err
		}
	}
	return &p, nil
}

func (s *GormStore) ListFreelancers() ([]models.Freelancer, error) {
	var users []models.User
	if err := s.db.Where("user_type = ?", models.UserTypeFreelancer).
		Order("id ASC").Find(&users).Error; err != nil {
		return nil, err
	}
	// One profile lookup per user. Fine at current volumes; revisit with a
	// join if freelancer listings ever grow past toy size.
	out := make([]models.Freelancer, 0, len(users))
	for _, u := range users {
		profile, err := s.GetFreelancerProfile(u.ID)
		if err != nil {
			return nil, err
		}
		out = append(out, models.Freelancer{User: u, Profile: profile})
	}
	return out, nil
}

// Client profiles

func (s *GormStore) GetClientProfile(userID uint) (*models.ClientProfile, error) {
	var p models.ClientProfile
	if err := s.db.Where("user_id = ?", userID).First(&p).Error; err != nil {
		return nil, absent(err)
	}
	return &p, nil
}

func (s *GormStore) CreateClientProfile(p *models.ClientProfile) (*models.ClientProfile, error) {
	if err := s.db.Create(p).Error; err != nil {
		return nil, err
	}
	return p, nil
}

func (s *GormStore) UpdateClientProfile(userID uint, patch ClientProfilePatch) (*models.ClientProfile, error) {
	var p models.ClientProfile
	if err := s.db.Where("user_id = ?", userID).First(&p).Error; err != nil {
		return nil, absent(err)
	}
	if ch := patch.changes(); len(ch) > 0 {
		if err := s.db.Model(&p).Updates(ch).Error; err != nil {
			return nil, err
		}
	}
	return &p, nil
}

// Job postings

func (s *GormStore) GetJobPosting(id uint) (*models.JobPosting, error) {
	var j models.JobPosting
	if err := s.db.First(&j, "id = ?", id).Error; err != nil {
		return nil, absent(err)
	}
	return &j, nil
}

func (s *GormStore) CreateJobPosting(j *models.JobPosting) (*models.JobPosting, error) {
	if j.Status == "" {
		j.Status = models.JobStatusOpen
	}
	if err := s.db.Create(j).Error; err != nil {
		return nil, err
	}
	return j, nil
}

func (s *GormStore) UpdateJobPosting(id uint, patch JobPostingPatch) (*models.JobPosting, error) {
	var j models.JobPosting
	if err := s.db.First(&j, "id = ?", id).Error; err != nil {
		return nil, absent(err)
	}
	if ch := patch.changes(); len(ch) > 0 {
		if err := s.db.Model(&j).Updates(ch).Error; err != nil {
			return nil, err
		}
	}
	return &j, nil
}

func (s *GormStore) ListJobPostings() ([]models.JobPosting, error) {
	var jobs []models.JobPosting
	if err := s.db.Order("id ASC").Find(&jobs).Error; err != nil {
		return nil, err
	}
	return jobs, nil
}

func (s *GormStore) ListClientJobPostings(clientID uint) ([]models.JobPosting, error) {
	var jobs []models.JobPosting
	if err := s.db.Where("client_id = ?", clientID).
		Order("id ASC").Find(&jobs).Error; err != nil {
		return nil, err
	}
	return jobs, nil
}

// Projects

func (s *GormStore) GetProject(id uint) (*models.Project, error) {
	var p models.Project
	if err := s.db.First(&p, "id = ?", id).Error; err != nil {
		return nil, absent(err)
	}
	return &p, nil
}

func (s *GormStore) CreateProject(p *models.Project) (*models.Project, error) {
	if p.Status == "" {
		p.Status = models.ProjectStatusInProgress
	}
	if p.PaymentStatus == "" {
		p.PaymentStatus = models.PaymentStatusPending
	}
	p.StartDate = time.Now()
	p.EndDate = nil
	if err := s.db.Create(p).Error; err != nil {
		return nil, err
	}
	return p, nil
}

func (s *GormStore) UpdateProject(id uint, patch ProjectPatch) (*models.Project, error) {
	var p models.Project
	if err := s.db.First(&p, "id = ?", id).Error; err != nil {
		return nil, absent(err)
	}
	if ch := patch.changes(); len(ch) > 0 {
		if err := s.db.Model(&p).Updates(ch).Error; err != nil {
			return nil, err
		}
	}
	return &p, nil
}

func (s *GormStore) ListClientProjects(clientID uint) ([]models.Project, error) {
	return s.listProjects("client_id = ?", clientID)
}

func (s *GormStore) ListFreelancerProjects(freelancerID uint) ([]models.Project, error) {
	return s.listProjects("freelancer_id = ?", freelancerID)
}

func (s *GormStore) listProjects(cond string, arg uint) ([]models.Project, error) {
	var projects []models.Project
	if err := s.db.Where(cond, arg).Order("id ASC").Find(&projects).Error; err != nil {
		return nil, err
	}
	for i := range projects {
		job, err := s.GetJobPosting(projects[i].JobID)
		if err != nil {
			return nil, err
		}
		projects[i].Job = job
	}
	return projects, nil
}

// Messages

func (s *GormStore) GetMessage(id uint) (*models.Message, error) {
	var m models.Message
	if err := s.db.First(&m, "id = ?", id).Error; err != nil {
		return nil, absent(err)
	}
	return &m, nil
}

func (s *GormStore) ListMessagesBetween(userA, userB uint) ([]models.Message, error) {
	var msgs []models.Message
	if err := s.db.
		Where("(sender_id = ? AND receiver_id = ?) OR (sender_id = ? AND receiver_id = ?)",
			userA, userB, userB, userA).
		Order("created_at ASC, id ASC").
		Find(&msgs).Error; err != nil {
		return nil, err
	}
	return msgs, nil
}

func (s *GormStore) CreateMessage(m *models.Message) (*models.Message, error) {
	if err := s.db.Create(m).Error; err != nil {
		return nil, err
	}
	return m, nil
}

func (s *GormStore) MarkMessageRead(id uint) (*models.Message, error) {
	var m models.Message
	if err := s.db.First(&m, "id = ?", id).Error; err != nil {
		return nil, absent(err)
	}
	if err := s.db.Model(&m).Update("read", true).Error; err != nil {
		return nil, err
	}
	return &m, nil
}

// Reviews

func (s *GormStore) GetReview(id uint) (*models.Review, error) {
	var r models.Review
	if err := s.db.First(&r, "id = ?", id).Error; err != nil {
		return nil, absent(err)
	}
	return &r, nil
}

// CreateReview inserts the review and recomputes the owning profile's
// averageRating/totalReviews in a single transaction, so a concurrent
// review for the same freelancer cannot leave the aggregates stale.
func (s *GormStore) CreateReview(r *models.Review) (*models.Review, error) {
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(r).Error; err != nil {
			return err
		}

		var p models.FreelancerProfile
		if err := tx.Where("user_id = ?", r.FreelancerID).First(&p).Error; err != nil {
			// No profile to carry the aggregates; the review itself stands.
			return absent(err)
		}

		var reviews []models.Review
		if err := tx.Where("freelancer_id = ?", r.FreelancerID).Find(&reviews).Error; err != nil {
			return err
		}
		if len(reviews) == 0 {
			return nil
		}
		total := 0
		for _, rv := range reviews {
			total += rv.Rating
		}
		return tx.Model(&p).Updates(map[string]any{
			"average_rating": float64(total) / float64(len(reviews)),
			"total_reviews":  len(reviews),
		}).Error
	})
	if err != nil {
		return nil, err
	}
	return r, nil
}

func (s *GormStore) ListFreelancerReviews(freelancerID uint) ([]models.Review, error) {
	var reviews []models.Review
	if err := s.db.Where("freelancer_id = ?", freelancerID).
		Order("id ASC").Find(&reviews).Error; err != nil {
		return nil, err
	}
	return reviews, nil
}
