package store

import (
	"sort"
	"sync"
	"time"

	"github.com/Abberdo/FlexConnect-MVP/internal/models"
)

// MemoryStore keeps every collection in a plain map with a per-entity
// counter seeded at 1. Non-key lookups are linear scans. Nothing survives a
// process restart; it exists for development and as a test double. One lock
// guards all state, so each operation (including the review insert plus
// rating recompute) is atomic with respect to other gateway calls.
type MemoryStore struct {
	mu sync.RWMutex

	users              map[uint]models.User
	freelancerProfiles map[uint]models.FreelancerProfile
	clientProfiles     map[uint]models.ClientProfile
	jobPostings        map[uint]models.JobPosting
	projects           map[uint]models.Project
	messages           map[uint]models.Message
	reviews            map[uint]models.Review

	userID              uint
	freelancerProfileID uint
	clientProfileID     uint
	jobPostingID        uint
	projectID           uint
	messageID           uint
	reviewID            uint
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		users:              make(map[uint]models.User),
		freelancerProfiles: make(map[uint]models.FreelancerProfile),
		clientProfiles:     make(map[uint]models.ClientProfile),
		jobPostings:        make(map[uint]models.JobPosting),
		projects:           make(map[uint]models.Project),
		messages:           make(map[uint]models.Message),
		reviews:            make(map[uint]models.Review),
	}
}

// Users

func (s *MemoryStore) GetUser(id uint) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if u, ok := s.users[id]; ok {
		return &u, nil
	}
	return nil, nil
}

func (s *MemoryStore) GetUserByUsername(username string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, u := range s.users {
		if u.Username == username {
			u := u
			return &u, nil
		}
	}
	return nil, nil
}

func (s *MemoryStore) GetUserByEmail(email string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, u := range s.users {
		if u.Email == email {
			u := u
			return &u, nil
		}
	}
	return nil, nil
}

func (s *MemoryStore) CreateUser(u *models.User) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.userID++
	u.ID = s.userID
	u.CreatedAt = time.Now()
	s.users[u.ID] = *u
	return u, nil
}

func (s *MemoryStore) UpdateUser(id uint, patch UserPatch) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return nil, nil
	}
	patch.apply(&u)
	s.users[id] = u
	return &u, nil
}

// Freelancer profiles

func (s *MemoryStore) GetFreelancerProfile(userID uint) (*models.FreelancerProfile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.freelancerProfileByUser(userID), nil
}

// freelancerProfileByUser assumes the caller holds at least the read lock.
func (s *MemoryStore) freelancerProfileByUser(userID uint) *models.FreelancerProfile {
	for _, p := range s.freelancerProfiles {
		if p.UserID == userID {
			p := p
			return &p
		}
	}
	return nil
}

func (s *MemoryStore) CreateFreelancerProfile(p *models.FreelancerProfile) (*models.FreelancerProfile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.freelancerProfileID++
	p.ID = s.freelancerProfileID
	p.AverageRating = 0
	p.TotalReviews = 0
	s.freelancerProfiles[p.ID] = *p
	return p, nil
}

func (s *MemoryStore) UpdateFreelancerProfile(userID uint, patch FreelancerProfilePatch) (*models.FreelancerProfile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.updateFreelancerProfileLocked(userID, patch), nil
}

func (s *MemoryStore) updateFreelancerProfileLocked(userID uint, patch FreelancerProfilePatch) *models.FreelancerProfile {
	for id, p := range s.freelancerProfiles {
		if p.UserID == userID {
			patch.apply(&p)
			s.freelancerProfiles[id] = p
			return &p
		}
	}
	return nil
}

func (s *MemoryStore) ListFreelancers() ([]models.Freelancer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []models.Freelancer{}
	for _, u := range sortedByID(s.users) {
		if u.UserType != models.UserTypeFreelancer {
			continue
		}
		out = append(out, models.Freelancer{User: u, Profile: s.freelancerProfileByUser(u.ID)})
	}
	return out, nil
}

// Client profiles

func (s *MemoryStore) GetClientProfile(userID uint) (*models.ClientProfile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, p := range s.clientProfiles {
		if p.UserID == userID {
			p := p
			return &p, nil
		}
	}
	return nil, nil
}

func (s *MemoryStore) CreateClientProfile(p *models.ClientProfile) (*models.ClientProfile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.clientProfileID++
	p.ID = s.clientProfileID
	s.clientProfiles[p.ID] = *p
	return p, nil
}

func (s *MemoryStore) UpdateClientProfile(userID uint, patch ClientProfilePatch) (*models.ClientProfile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, p := range s.clientProfiles {
		if p.UserID == userID {
			patch.apply(&p)
			s.clientProfiles[id] = p
			return &p, nil
		}
	}
	return nil, nil
}

// Job postings

func (s *MemoryStore) GetJobPosting(id uint) (*models.JobPosting, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if j, ok := s.jobPostings[id]; ok {
		return &j, nil
	}
	return nil, nil
}

func (s *MemoryStore) CreateJobPosting(j *models.JobPosting) (*models.JobPosting, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.jobPostingID++
	j.ID = s.jobPostingID
	j.CreatedAt = time.Now()
	if j.Status == "" {
		j.Status = models.JobStatusOpen
	}
	s.jobPostings[j.ID] = *j
	return j, nil
}

func (s *MemoryStore) UpdateJobPosting(id uint, patch JobPostingPatch) (*models.JobPosting, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	j, ok := s.jobPostings[id]
	if !ok {
		return nil, nil
	}
	patch.apply(&j)
	s.jobPostings[id] = j
	return &j, nil
}

func (s *MemoryStore) ListJobPostings() ([]models.JobPosting, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return sortedByID(s.jobPostings), nil
}

func (s *MemoryStore) ListClientJobPostings(clientID uint) ([]models.JobPosting, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []models.JobPosting{}
	for _, j := range sortedByID(s.jobPostings) {
		if j.ClientID == clientID {
			out = append(out, j)
		}
	}
	return out, nil
}

// Projects

func (s *MemoryStore) GetProject(id uint) (*models.Project, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if p, ok := s.projects[id]; ok {
		return &p, nil
	}
	return nil, nil
}

func (s *MemoryStore) CreateProject(p *models.Project) (*models.Project, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.projectID++
	p.ID = s.projectID
	p.StartDate = time.Now()
	p.EndDate = nil
	if p.Status == "" {
		p.Status = models.ProjectStatusInProgress
	}
	if p.PaymentStatus == "" {
		p.PaymentStatus = models.PaymentStatusPending
	}
	s.projects[p.ID] = *p
	return p, nil
}

func (s *MemoryStore) UpdateProject(id uint, patch ProjectPatch) (*models.Project, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.projects[id]
	if !ok {
		return nil, nil
	}
	patch.apply(&p)
	s.projects[id] = p
	return &p, nil
}

func (s *MemoryStore) ListClientProjects(clientID uint) ([]models.Project, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.projectsWhere(func(p models.Project) bool { return p.ClientID == clientID }), nil
}

func (s *MemoryStore) ListFreelancerProjects(freelancerID uint) ([]models.Project, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.projectsWhere(func(p models.Project) bool { return p.FreelancerID == freelancerID }), nil
}

func (s *MemoryStore) projectsWhere(keep func(models.Project) bool) []models.Project {
	out := []models.Project{}
	for _, p := range sortedByID(s.projects) {
		if !keep(p) {
			continue
		}
		if j, ok := s.jobPostings[p.JobID]; ok {
			j := j
			p.Job = &j
		}
		out = append(out, p)
	}
	return out
}

// Messages

func (s *MemoryStore) GetMessage(id uint) (*models.Message, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if m, ok := s.messages[id]; ok {
		return &m, nil
	}
	return nil, nil
}

func (s *MemoryStore) ListMessagesBetween(userA, userB uint) ([]models.Message, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []models.Message{}
	for _, m := range s.messages {
		if (m.SenderID == userA && m.ReceiverID == userB) ||
			(m.SenderID == userB && m.ReceiverID == userA) {
			out = append(out, m)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}

func (s *MemoryStore) CreateMessage(m *models.Message) (*models.Message, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.messageID++
	m.ID = s.messageID
	m.CreatedAt = time.Now()
	s.messages[m.ID] = *m
	return m, nil
}

func (s *MemoryStore) MarkMessageRead(id uint) (*models.Message, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	m, ok := s.messages[id]
	if !ok {
		return nil, nil
	}
	m.Read = true
	s.messages[id] = m
	return &m, nil
}

// Reviews

func (s *MemoryStore) GetReview(id uint) (*models.Review, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if r, ok := s.reviews[id]; ok {
		return &r, nil
	}
	return nil, nil
}

func (s *MemoryStore) CreateReview(r *models.Review) (*models.Review, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reviewID++
	r.ID = s.reviewID
	r.CreatedAt = time.Now()
	s.reviews[r.ID] = *r

	// Recompute the derived aggregates on the owning profile. The zero-count
	// case cannot happen here (we just inserted one), but keep the guard so
	// the math never divides by zero.
	total, count := 0, 0
	for _, rv := range s.reviews {
		if rv.FreelancerID == r.FreelancerID {
			total += rv.Rating
			count++
		}
	}
	if count > 0 {
		avg := float64(total) / float64(count)
		s.updateFreelancerProfileLocked(r.FreelancerID, FreelancerProfilePatch{
			AverageRating: &avg,
			TotalReviews:  &count,
		})
	}
	return r, nil
}

func (s *MemoryStore) ListFreelancerReviews(freelancerID uint) ([]models.Review, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []models.Review{}
	for _, r := range sortedByID(s.reviews) {
		if r.FreelancerID == freelancerID {
			out = append(out, r)
		}
	}
	return out, nil
}

// sortedByID returns map values in ascending id order. Ids are assigned
// monotonically, so this is insertion order.
func sortedByID[T any](m map[uint]T) []T {
	ids := make([]uint, 0, len(m))
	for id := range m {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	out := make([]T, 0, len(ids))
	for _, id := range ids {
		out = append(out, m[id])
	}
	return out
}
