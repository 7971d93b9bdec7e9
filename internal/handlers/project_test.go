package handlers

import (
	"net/http"
	"testing"

	"github.com/gofiber/fiber/v2"
)

func TestJobCreationRoleGate(t *testing.T) {
	app, _ := newTestApp(t)
	_, freelancerCk := registerUser(t, app, "worker", "freelancer", nil)
	clientID, clientCk := registerUser(t, app, "employer", "client", nil)

	jobBody := map[string]any{
		"title":          "Landing page",
		"description":    "Build and ship a landing page",
		"requiredSkills": []string{"React"},
		"budget":         1000,
	}

	resp := doJSON(t, app, http.MethodPost, "/api/jobs", jobBody, freelancerCk)
	wantStatus(t, resp, fiber.StatusForbidden)
	wantMessage(t, decodeMap(t, resp), "Forbidden")

	resp = doJSON(t, app, http.MethodPost, "/api/jobs", jobBody, nil)
	wantStatus(t, resp, fiber.StatusUnauthorized)

	resp = doJSON(t, app, http.MethodPost, "/api/jobs", jobBody, clientCk)
	wantStatus(t, resp, fiber.StatusCreated)
	job := decodeMap(t, resp)
	if job["status"] != "open" {
		t.Fatalf("new job status = %v", job["status"])
	}
	// clientId always comes from the session.
	if uint(job["clientId"].(float64)) != clientID {
		t.Fatalf("clientId = %v, want %d", job["clientId"], clientID)
	}

	resp = doJSON(t, app, http.MethodPost, "/api/jobs", map[string]any{
		"title": "", "description": "",
	}, clientCk)
	wantStatus(t, resp, fiber.StatusBadRequest)
	errs, _ := decodeMap(t, resp)["errors"].(map[string]any)
	if _, ok := errs["title"]; !ok {
		t.Fatalf("missing title error: %v", errs)
	}
}

func TestProjectCreationFlipsJobStatus(t *testing.T) {
	app, _ := newTestApp(t)
	freelancerID, _ := registerUser(t, app, "dev", "freelancer", nil)
	_, clientCk := registerUser(t, app, "owner", "client", nil)

	resp := doJSON(t, app, http.MethodPost, "/api/jobs", map[string]any{
		"title": "API work", "description": "Build the API",
	}, clientCk)
	wantStatus(t, resp, fiber.StatusCreated)
	jobID := uint(decodeMap(t, resp)["id"].(float64))

	resp = doJSON(t, app, http.MethodPost, "/api/projects", map[string]any{
		"jobId":        jobID,
		"freelancerId": freelancerID,
		"budget":       800,
	}, clientCk)
	wantStatus(t, resp, fiber.StatusCreated)
	project := decodeMap(t, resp)
	if project["status"] != "in-progress" {
		t.Fatalf("project status = %v", project["status"])
	}
	if project["paymentStatus"] != "pending" {
		t.Fatalf("paymentStatus = %v", project["paymentStatus"])
	}

	// Hiring closes the posting to further applicants.
	resp = doJSON(t, app, http.MethodGet, idPath("/api/jobs/%d", jobID), nil, nil)
	wantStatus(t, resp, fiber.StatusOK)
	if got := decodeMap(t, resp)["status"]; got != "in-progress" {
		t.Fatalf("job status after hire = %v, want in-progress", got)
	}
}

func TestProjectCreationOwnership(t *testing.T) {
	app, _ := newTestApp(t)
	freelancerID, _ := registerUser(t, app, "dev2", "freelancer", nil)
	_, ownerCk := registerUser(t, app, "owner2", "client", nil)
	_, intruderCk := registerUser(t, app, "intruder", "client", nil)

	resp := doJSON(t, app, http.MethodPost, "/api/jobs", map[string]any{
		"title": "Design", "description": "Logo design",
	}, ownerCk)
	jobID := uint(decodeMap(t, resp)["id"].(float64))

	resp = doJSON(t, app, http.MethodPost, "/api/projects", map[string]any{
		"jobId": jobID, "freelancerId": freelancerID, "budget": 100,
	}, intruderCk)
	wantStatus(t, resp, fiber.StatusForbidden)
	wantMessage(t, decodeMap(t, resp), "You do not own this job")

	resp = doJSON(t, app, http.MethodPost, "/api/projects", map[string]any{
		"jobId": uint(9999), "freelancerId": freelancerID, "budget": 100,
	}, ownerCk)
	wantStatus(t, resp, fiber.StatusNotFound)
	wantMessage(t, decodeMap(t, resp), "Job not found")
}

func TestProjectPartialUpdate(t *testing.T) {
	app, _ := newTestApp(t)
	freelancerID, freelancerCk := registerUser(t, app, "dev3", "freelancer", nil)
	_, clientCk := registerUser(t, app, "owner3", "client", nil)
	_, strangerCk := registerUser(t, app, "stranger", "freelancer", nil)

	resp := doJSON(t, app, http.MethodPost, "/api/jobs", map[string]any{
		"title": "Backend", "description": "Go service",
	}, clientCk)
	jobID := uint(decodeMap(t, resp)["id"].(float64))
	resp = doJSON(t, app, http.MethodPost, "/api/projects", map[string]any{
		"jobId": jobID, "freelancerId": freelancerID, "budget": 900,
	}, clientCk)
	projectID := uint(decodeMap(t, resp)["id"].(float64))

	patchPath := idPath("/api/projects/%d", projectID)

	resp = doJSON(t, app, http.MethodPatch, patchPath, map[string]any{
		"status": "completed",
	}, strangerCk)
	wantStatus(t, resp, fiber.StatusForbidden)

	resp = doJSON(t, app, http.MethodPatch, patchPath, map[string]any{
		"status": "bogus",
	}, freelancerCk)
	wantStatus(t, resp, fiber.StatusBadRequest)

	resp = doJSON(t, app, http.MethodPatch, patchPath, map[string]any{
		"status": "completed",
	}, freelancerCk)
	wantStatus(t, resp, fiber.StatusOK)
	updated := decodeMap(t, resp)
	if updated["status"] != "completed" {
		t.Fatalf("status = %v", updated["status"])
	}
	// Fields outside the patch survive.
	if int(updated["budget"].(float64)) != 900 {
		t.Fatalf("budget = %v", updated["budget"])
	}

	resp = doJSON(t, app, http.MethodPatch, patchPath, map[string]any{
		"paymentStatus": "paid",
	}, clientCk)
	wantStatus(t, resp, fiber.StatusOK)
	if got := decodeMap(t, resp)["paymentStatus"]; got != "paid" {
		t.Fatalf("paymentStatus = %v", got)
	}

	resp = doJSON(t, app, http.MethodPatch, "/api/projects/9999", map[string]any{
		"status": "completed",
	}, clientCk)
	wantStatus(t, resp, fiber.StatusNotFound)
}
