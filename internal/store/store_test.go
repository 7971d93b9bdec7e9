package store

import (
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/Abberdo/FlexConnect-MVP/internal/models"
)

// Both implementations must behave identically; every test here runs once
// per backing store.
func forEachStore(t *testing.T, fn func(t *testing.T, s Store)) {
	t.Helper()
	t.Run("memory", func(t *testing.T) {
		fn(t, NewMemoryStore())
	})
	t.Run("gorm", func(t *testing.T) {
		fn(t, NewGormStore(openTestDB(t)))
	})
}

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	// Unique in-memory database per test to avoid cross-test collisions.
	dsn := "file:" + t.Name() + "?mode=memory&cache=shared"
	gdb, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := gdb.AutoMigrate(
		&models.User{},
		&models.FreelancerProfile{},
		&models.ClientProfile{},
		&models.JobPosting{},
		&models.Project{},
		&models.Message{},
		&models.Review{},
	); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return gdb
}

func mustCreateUser(t *testing.T, s Store, username string, userType models.UserType) *models.User {
	t.Helper()
	u, err := s.CreateUser(&models.User{
		Username: username,
		Password: "x",
		Email:    username + "@test.dev",
		Name:     username,
		UserType: userType,
	})
	if err != nil {
		t.Fatalf("create user %s: %v", username, err)
	}
	return u
}

func TestUserUniqueFieldLookups(t *testing.T) {
	forEachStore(t, func(t *testing.T, s Store) {
		created := mustCreateUser(t, s, "ada", models.UserTypeFreelancer)
		if created.ID == 0 {
			t.Fatal("expected assigned id")
		}
		if created.CreatedAt.IsZero() {
			t.Fatal("expected createdAt to be set")
		}

		byName, err := s.GetUserByUsername("ada")
		if err != nil {
			t.Fatalf("by username: %v", err)
		}
		if byName == nil || byName.ID != created.ID {
			t.Fatalf("by username: got %+v, want id %d", byName, created.ID)
		}

		byEmail, err := s.GetUserByEmail("ada@test.dev")
		if err != nil {
			t.Fatalf("by email: %v", err)
		}
		if byEmail == nil || byEmail.ID != created.ID {
			t.Fatalf("by email: got %+v, want id %d", byEmail, created.ID)
		}
	})
}

func TestAbsentLookupsReturnNil(t *testing.T) {
	forEachStore(t, func(t *testing.T, s Store) {
		if u, err := s.GetUser(42); err != nil || u != nil {
			t.Fatalf("GetUser: got (%v, %v), want (nil, nil)", u, err)
		}
		if p, err := s.GetFreelancerProfile(42); err != nil || p != nil {
			t.Fatalf("GetFreelancerProfile: got (%v, %v), want (nil, nil)", p, err)
		}
		if p, err := s.GetClientProfile(42); err != nil || p != nil {
			t.Fatalf("GetClientProfile: got (%v, %v), want (nil, nil)", p, err)
		}
		if j, err := s.GetJobPosting(42); err != nil || j != nil {
			t.Fatalf("GetJobPosting: got (%v, %v), want (nil, nil)", j, err)
		}
		if p, err := s.GetProject(42); err != nil || p != nil {
			t.Fatalf("GetProject: got (%v, %v), want (nil, nil)", p, err)
		}
		if m, err := s.GetMessage(42); err != nil || m != nil {
			t.Fatalf("GetMessage: got (%v, %v), want (nil, nil)", m, err)
		}
		if r, err := s.GetReview(42); err != nil || r != nil {
			t.Fatalf("GetReview: got (%v, %v), want (nil, nil)", r, err)
		}

		name := "ghost"
		if u, err := s.UpdateUser(42, UserPatch{Name: &name}); err != nil || u != nil {
			t.Fatalf("UpdateUser: got (%v, %v), want (nil, nil)", u, err)
		}
		if m, err := s.MarkMessageRead(42); err != nil || m != nil {
			t.Fatalf("MarkMessageRead: got (%v, %v), want (nil, nil)", m, err)
		}
	})
}

func TestPartialUpdateKeepsOtherFields(t *testing.T) {
	forEachStore(t, func(t *testing.T, s Store) {
		u := mustCreateUser(t, s, "grace", models.UserTypeClient)

		newName := "Grace Hopper"
		updated, err := s.UpdateUser(u.ID, UserPatch{Name: &newName})
		if err != nil {
			t.Fatalf("update: %v", err)
		}
		if updated.Name != newName {
			t.Fatalf("name not updated: %q", updated.Name)
		}

		// Full read-back: untouched fields must survive.
		fetched, err := s.GetUser(u.ID)
		if err != nil {
			t.Fatalf("get: %v", err)
		}
		if fetched.Name != newName {
			t.Fatalf("read-back name: %q", fetched.Name)
		}
		if fetched.Username != "grace" || fetched.Email != "grace@test.dev" {
			t.Fatalf("untouched fields changed: %+v", fetched)
		}
		if fetched.UserType != models.UserTypeClient {
			t.Fatalf("userType changed: %s", fetched.UserType)
		}
	})
}

func TestFreelancerProfilePartialUpdate(t *testing.T) {
	forEachStore(t, func(t *testing.T, s Store) {
		u := mustCreateUser(t, s, "lin", models.UserTypeFreelancer)
		if _, err := s.CreateFreelancerProfile(&models.FreelancerProfile{
			UserID: u.ID,
			Title:  "Designer",
			Skills: []string{"Figma"},
		}); err != nil {
			t.Fatalf("create profile: %v", err)
		}

		skills := []string{"Figma", "Illustrator"}
		rate := 80
		updated, err := s.UpdateFreelancerProfile(u.ID, FreelancerProfilePatch{
			Skills:     &skills,
			HourlyRate: &rate,
		})
		if err != nil {
			t.Fatalf("update: %v", err)
		}
		if updated == nil {
			t.Fatal("profile reported absent")
		}

		fetched, err := s.GetFreelancerProfile(u.ID)
		if err != nil {
			t.Fatalf("get: %v", err)
		}
		if fetched.Title != "Designer" {
			t.Fatalf("title changed: %q", fetched.Title)
		}
		if len(fetched.Skills) != 2 || fetched.HourlyRate != 80 {
			t.Fatalf("patch not applied: %+v", fetched)
		}
	})
}

func TestCreateProfileZeroesDerivedAggregates(t *testing.T) {
	forEachStore(t, func(t *testing.T, s Store) {
		u := mustCreateUser(t, s, "zed", models.UserTypeFreelancer)
		p, err := s.CreateFreelancerProfile(&models.FreelancerProfile{
			UserID:        u.ID,
			Title:         "Dev",
			AverageRating: 9.9, // caller-supplied values must be ignored
			TotalReviews:  7,
		})
		if err != nil {
			t.Fatalf("create: %v", err)
		}
		if p.AverageRating != 0 || p.TotalReviews != 0 {
			t.Fatalf("derived aggregates not zeroed: %+v", p)
		}
	})
}

func TestReviewCreationRecomputesRating(t *testing.T) {
	forEachStore(t, func(t *testing.T, s Store) {
		freelancer := mustCreateUser(t, s, "fr", models.UserTypeFreelancer)
		client := mustCreateUser(t, s, "cl", models.UserTypeClient)
		if _, err := s.CreateFreelancerProfile(&models.FreelancerProfile{
			UserID: freelancer.ID,
			Title:  "Writer",
		}); err != nil {
			t.Fatalf("create profile: %v", err)
		}
		job, err := s.CreateJobPosting(&models.JobPosting{
			ClientID: client.ID, Title: "Copy", Description: "words",
		})
		if err != nil {
			t.Fatalf("create job: %v", err)
		}
		project, err := s.CreateProject(&models.Project{
			JobID: job.ID, FreelancerID: freelancer.ID, ClientID: client.ID, Budget: 100,
		})
		if err != nil {
			t.Fatalf("create project: %v", err)
		}

		wantAvg := []float64{5, 4, 4}
		for i, rating := range []int{5, 3, 4} {
			if _, err := s.CreateReview(&models.Review{
				ProjectID:    project.ID,
				ReviewerID:   client.ID,
				FreelancerID: freelancer.ID,
				Rating:       rating,
			}); err != nil {
				t.Fatalf("create review %d: %v", i, err)
			}
			p, err := s.GetFreelancerProfile(freelancer.ID)
			if err != nil {
				t.Fatalf("get profile: %v", err)
			}
			if p.AverageRating != wantAvg[i] {
				t.Fatalf("after review %d: averageRating = %v, want %v", i+1, p.AverageRating, wantAvg[i])
			}
			if p.TotalReviews != i+1 {
				t.Fatalf("after review %d: totalReviews = %d, want %d", i+1, p.TotalReviews, i+1)
			}
		}

		reviews, err := s.ListFreelancerReviews(freelancer.ID)
		if err != nil {
			t.Fatalf("list reviews: %v", err)
		}
		if len(reviews) != 3 {
			t.Fatalf("got %d reviews, want 3", len(reviews))
		}
	})
}

func TestMessagesOrderedAndSymmetric(t *testing.T) {
	forEachStore(t, func(t *testing.T, s Store) {
		a := mustCreateUser(t, s, "alice", models.UserTypeClient)
		b := mustCreateUser(t, s, "bob", models.UserTypeFreelancer)
		other := mustCreateUser(t, s, "eve", models.UserTypeClient)

		contents := []struct {
			from, to uint
			text     string
		}{
			{a.ID, b.ID, "first"},
			{b.ID, a.ID, "second"},
			{a.ID, b.ID, "third"},
		}
		for _, m := range contents {
			if _, err := s.CreateMessage(&models.Message{
				SenderID: m.from, ReceiverID: m.to, Content: m.text,
			}); err != nil {
				t.Fatalf("create message: %v", err)
			}
		}
		// Noise from an unrelated conversation must not leak in.
		if _, err := s.CreateMessage(&models.Message{
			SenderID: other.ID, ReceiverID: a.ID, Content: "noise",
		}); err != nil {
			t.Fatalf("create message: %v", err)
		}

		for _, pair := range [][2]uint{{a.ID, b.ID}, {b.ID, a.ID}} {
			msgs, err := s.ListMessagesBetween(pair[0], pair[1])
			if err != nil {
				t.Fatalf("list: %v", err)
			}
			if len(msgs) != 3 {
				t.Fatalf("got %d messages, want 3", len(msgs))
			}
			for i, want := range []string{"first", "second", "third"} {
				if msgs[i].Content != want {
					t.Fatalf("message %d = %q, want %q", i, msgs[i].Content, want)
				}
			}
		}
	})
}

func TestMarkMessageRead(t *testing.T) {
	forEachStore(t, func(t *testing.T, s Store) {
		a := mustCreateUser(t, s, "sender", models.UserTypeClient)
		b := mustCreateUser(t, s, "receiver", models.UserTypeFreelancer)
		m, err := s.CreateMessage(&models.Message{SenderID: a.ID, ReceiverID: b.ID, Content: "hi"})
		if err != nil {
			t.Fatalf("create: %v", err)
		}
		if m.Read {
			t.Fatal("new message already read")
		}

		updated, err := s.MarkMessageRead(m.ID)
		if err != nil {
			t.Fatalf("mark read: %v", err)
		}
		if updated == nil || !updated.Read {
			t.Fatalf("not marked read: %+v", updated)
		}

		fetched, err := s.GetMessage(m.ID)
		if err != nil {
			t.Fatalf("get: %v", err)
		}
		if !fetched.Read {
			t.Fatal("read flag not persisted")
		}
	})
}

func TestProjectListsAttachJob(t *testing.T) {
	forEachStore(t, func(t *testing.T, s Store) {
		client := mustCreateUser(t, s, "owner", models.UserTypeClient)
		freelancer := mustCreateUser(t, s, "worker", models.UserTypeFreelancer)
		job, err := s.CreateJobPosting(&models.JobPosting{
			ClientID: client.ID, Title: "Build it", Description: "now",
		})
		if err != nil {
			t.Fatalf("create job: %v", err)
		}
		if _, err := s.CreateProject(&models.Project{
			JobID: job.ID, FreelancerID: freelancer.ID, ClientID: client.ID, Budget: 500,
		}); err != nil {
			t.Fatalf("create project: %v", err)
		}

		for name, list := range map[string]func() ([]models.Project, error){
			"client":     func() ([]models.Project, error) { return s.ListClientProjects(client.ID) },
			"freelancer": func() ([]models.Project, error) { return s.ListFreelancerProjects(freelancer.ID) },
		} {
			projects, err := list()
			if err != nil {
				t.Fatalf("%s list: %v", name, err)
			}
			if len(projects) != 1 {
				t.Fatalf("%s list: got %d projects, want 1", name, len(projects))
			}
			if projects[0].Job == nil || projects[0].Job.Title != "Build it" {
				t.Fatalf("%s list: job not attached: %+v", name, projects[0].Job)
			}
		}
	})
}

func TestProjectCreateDefaults(t *testing.T) {
	forEachStore(t, func(t *testing.T, s Store) {
		client := mustCreateUser(t, s, "c1", models.UserTypeClient)
		freelancer := mustCreateUser(t, s, "f1", models.UserTypeFreelancer)
		job, _ := s.CreateJobPosting(&models.JobPosting{
			ClientID: client.ID, Title: "T", Description: "D",
		})
		if job.Status != models.JobStatusOpen {
			t.Fatalf("new job status = %s, want open", job.Status)
		}
		if job.CreatedAt.IsZero() {
			t.Fatal("createdAt not assigned")
		}

		p, err := s.CreateProject(&models.Project{
			JobID: job.ID, FreelancerID: freelancer.ID, ClientID: client.ID, Budget: 10,
		})
		if err != nil {
			t.Fatalf("create project: %v", err)
		}
		if p.Status != models.ProjectStatusInProgress {
			t.Fatalf("status = %s, want in-progress", p.Status)
		}
		if p.PaymentStatus != models.PaymentStatusPending {
			t.Fatalf("paymentStatus = %s, want pending", p.PaymentStatus)
		}
		if p.StartDate.IsZero() {
			t.Fatal("startDate not assigned")
		}
		if p.EndDate != nil {
			t.Fatal("endDate should start unset")
		}
	})
}

func TestListFreelancersPairsProfiles(t *testing.T) {
	forEachStore(t, func(t *testing.T, s Store) {
		f1 := mustCreateUser(t, s, "f_one", models.UserTypeFreelancer)
		mustCreateUser(t, s, "just_client", models.UserTypeClient)
		f2 := mustCreateUser(t, s, "f_two", models.UserTypeFreelancer)

		if _, err := s.CreateFreelancerProfile(&models.FreelancerProfile{
			UserID: f1.ID, Title: "Dev", Skills: []string{"Go"},
		}); err != nil {
			t.Fatalf("create profile: %v", err)
		}
		// f2 has no profile row: listing must tolerate that.

		freelancers, err := s.ListFreelancers()
		if err != nil {
			t.Fatalf("list: %v", err)
		}
		if len(freelancers) != 2 {
			t.Fatalf("got %d freelancers, want 2", len(freelancers))
		}
		if freelancers[0].ID != f1.ID || freelancers[1].ID != f2.ID {
			t.Fatalf("unexpected order: %d, %d", freelancers[0].ID, freelancers[1].ID)
		}
		if freelancers[0].Profile == nil || freelancers[0].Profile.Title != "Dev" {
			t.Fatalf("profile not attached: %+v", freelancers[0].Profile)
		}
		if freelancers[1].Profile != nil {
			t.Fatal("expected nil profile for f_two")
		}
	})
}

func TestJobStatusTransition(t *testing.T) {
	forEachStore(t, func(t *testing.T, s Store) {
		client := mustCreateUser(t, s, "jobowner", models.UserTypeClient)
		job, _ := s.CreateJobPosting(&models.JobPosting{
			ClientID: client.ID, Title: "T", Description: "D",
		})

		status := models.JobStatusInProgress
		updated, err := s.UpdateJobPosting(job.ID, JobPostingPatch{Status: &status})
		if err != nil {
			t.Fatalf("update: %v", err)
		}
		if updated.Status != models.JobStatusInProgress {
			t.Fatalf("status = %s", updated.Status)
		}

		fetched, _ := s.GetJobPosting(job.ID)
		if fetched.Status != models.JobStatusInProgress {
			t.Fatalf("persisted status = %s", fetched.Status)
		}
		// Title untouched by the partial update.
		if fetched.Title != "T" {
			t.Fatalf("title changed: %q", fetched.Title)
		}
	})
}

func TestListClientJobPostingsFilters(t *testing.T) {
	forEachStore(t, func(t *testing.T, s Store) {
		c1 := mustCreateUser(t, s, "c_one", models.UserTypeClient)
		c2 := mustCreateUser(t, s, "c_two", models.UserTypeClient)
		s.CreateJobPosting(&models.JobPosting{ClientID: c1.ID, Title: "A", Description: "d"})
		s.CreateJobPosting(&models.JobPosting{ClientID: c2.ID, Title: "B", Description: "d"})
		s.CreateJobPosting(&models.JobPosting{ClientID: c1.ID, Title: "C", Description: "d"})

		jobs, err := s.ListClientJobPostings(c1.ID)
		if err != nil {
			t.Fatalf("list: %v", err)
		}
		if len(jobs) != 2 || jobs[0].Title != "A" || jobs[1].Title != "C" {
			t.Fatalf("unexpected postings: %+v", jobs)
		}

		all, err := s.ListJobPostings()
		if err != nil {
			t.Fatalf("list all: %v", err)
		}
		if len(all) != 3 {
			t.Fatalf("got %d postings, want 3", len(all))
		}
	})
}
