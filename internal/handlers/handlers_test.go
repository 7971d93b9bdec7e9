package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"

	"github.com/Abberdo/FlexConnect-MVP/internal/middleware"
	"github.com/Abberdo/FlexConnect-MVP/internal/realtime"
	"github.com/Abberdo/FlexConnect-MVP/internal/store"
)

const testSecret = "handler-test-secret"

// newTestApp wires the full HTTP surface over the memory store, minus the
// websocket and OAuth routes which need live peers.
func newTestApp(t *testing.T) (*fiber.App, store.Store) {
	t.Helper()

	st := store.NewMemoryStore()
	hub := realtime.NewHub()
	go hub.Run()

	authH := &AuthHandler{Store: st, JWTSecret: testSecret, Expires: 60}
	freelancerH := NewFreelancerHandler(st)
	clientH := NewClientHandler(st)
	jobH := NewJobHandler(st)
	projectH := NewProjectHandler(st)
	messageH := NewMessageHandler(st, hub, nil, testSecret)
	reviewH := NewReviewHandler(st)
	dashboardH := NewDashboardHandler(st)

	app := fiber.New()
	api := app.Group("/api")

	api.Post("/auth/register", authH.Register)
	api.Post("/auth/login", authH.Login)
	api.Post("/auth/logout", authH.Logout)

	api.Get("/freelancers", freelancerH.List)
	api.Get("/freelancers/:id/profile", freelancerH.GetProfile)
	api.Get("/freelancers/:id/projects", freelancerH.GetProjects)
	api.Get("/freelancers/:id/reviews", freelancerH.GetReviews)
	api.Get("/clients/:id/profile", clientH.GetProfile)
	api.Get("/clients/:id/jobs", clientH.GetJobs)
	api.Get("/clients/:id/projects", clientH.GetProjects)
	api.Get("/jobs", jobH.List)
	api.Get("/jobs/:id", jobH.Get)
	api.Get("/projects/:id", projectH.Get)

	auth := api.Group("/",
		middleware.JWTFromCookie(testSecret),
		middleware.AttachLocals(),
	)
	auth.Get("/user", authH.CurrentUser)
	auth.Get("/dashboard", dashboardH.Get)
	auth.Post("/jobs", middleware.RequireUserType("client"), jobH.Create)
	auth.Post("/projects", middleware.RequireUserType("client"), projectH.Create)
	auth.Patch("/projects/:id", projectH.Update)
	auth.Post("/reviews", middleware.RequireUserType("client"), reviewH.Create)
	auth.Get("/messages/:userId", messageH.GetConversation)
	auth.Post("/messages", messageH.Send)
	auth.Patch("/messages/:id/read", messageH.MarkRead)

	return app, st
}

func doJSON(t *testing.T, app *fiber.App, method, path string, body any, cookie *http.Cookie) *http.Response {
	t.Helper()
	var req *http.Request
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		req = httptest.NewRequest(method, path, bytes.NewReader(b))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	if cookie != nil {
		req.AddCookie(cookie)
	}
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	return resp
}

func decodeMap(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()
	defer resp.Body.Close()
	var m map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&m); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return m
}

func decodeList(t *testing.T, resp *http.Response) []map[string]any {
	t.Helper()
	defer resp.Body.Close()
	var list []map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&list); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return list
}

func authCookie(t *testing.T, resp *http.Response) *http.Cookie {
	t.Helper()
	for _, ck := range resp.Cookies() {
		if ck.Name == middleware.TokenCookie {
			return ck
		}
	}
	t.Fatal("auth cookie not set")
	return nil
}

// registerUser creates an account through the public endpoint and returns its
// id plus the session cookie.
func registerUser(t *testing.T, app *fiber.App, username, userType string, profile map[string]any) (uint, *http.Cookie) {
	t.Helper()
	body := map[string]any{
		"username": username,
		"password": "secret1",
		"email":    username + "@example.com",
		"name":     username,
		"userType": userType,
	}
	if profile != nil {
		body["profile"] = profile
	}
	resp := doJSON(t, app, http.MethodPost, "/api/auth/register", body, nil)
	if resp.StatusCode != fiber.StatusCreated {
		t.Fatalf("register %s: status %d", username, resp.StatusCode)
	}
	ck := authCookie(t, resp)
	user := decodeMap(t, resp)
	id, ok := user["id"].(float64)
	if !ok || id == 0 {
		t.Fatalf("register %s: no id in response: %v", username, user)
	}
	return uint(id), ck
}

func wantStatus(t *testing.T, resp *http.Response, want int) {
	t.Helper()
	if resp.StatusCode != want {
		t.Fatalf("status %d, want %d", resp.StatusCode, want)
	}
}

func wantMessage(t *testing.T, body map[string]any, want string) {
	t.Helper()
	if got, _ := body["message"].(string); got != want {
		t.Fatalf("message %q, want %q", got, want)
	}
}

func idPath(format string, id uint) string {
	return fmt.Sprintf(format, id)
}
