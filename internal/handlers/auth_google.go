package handlers

import (
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"

	"github.com/Abberdo/FlexConnect-MVP/internal/middleware"
	"github.com/Abberdo/FlexConnect-MVP/internal/models"
	"github.com/Abberdo/FlexConnect-MVP/internal/store"
	"github.com/Abberdo/FlexConnect-MVP/internal/utils"
)

// GoogleOAuthHandler signs users in with a Google account. First-time
// sign-ins are registered as clients; freelancers onboard through the
// regular registration flow where profile data is collected.
type GoogleOAuthHandler struct {
	Store           store.Store
	JWTSecret       string
	Expires         int
	GoogleClientID  string
	GoogleSecret    string
	GoogleRedirect  string
	FrontendBaseURL string
}

func (h *GoogleOAuthHandler) oauthCfg() *oauth2.Config {
	return &oauth2.Config{
		ClientID:     h.GoogleClientID,
		ClientSecret: h.GoogleSecret,
		RedirectURL:  h.GoogleRedirect,
		Endpoint:     google.Endpoint,
		Scopes:       []string{"openid", "email", "profile"},
	}
}

func randomState(n int) string {
	b := make([]byte, n)
	_, _ = rand.Read(b)
	return base64.RawURLEncoding.EncodeToString(b)
}

func (h *GoogleOAuthHandler) GoogleStart(c *fiber.Ctx) error {
	st := randomState(32)

	c.Cookie(&fiber.Cookie{
		Name:     "oauth_state",
		Value:    st,
		Path:     "/",
		HTTPOnly: true,
		SameSite: "Lax",
		MaxAge:   10 * 60,
	})

	authURL := h.oauthCfg().AuthCodeURL(st, oauth2.AccessTypeOffline)
	return c.Redirect(authURL, http.StatusTemporaryRedirect)
}

type googleUserInfo struct {
	Email         string `json:"email"`
	VerifiedEmail bool   `json:"verified_email"`
	Name          string `json:"name"`
	Picture       string `json:"picture"`
}

func (h *GoogleOAuthHandler) GoogleCallback(c *fiber.Ctx) error {
	code := c.Query("code")
	state := c.Query("state")
	if code == "" || state == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Missing code/state",
		})
	}

	stCookie := c.Cookies("oauth_state")
	if stCookie == "" || stCookie != state {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid state",
		})
	}

	tok, err := h.oauthCfg().Exchange(c.Context(), code)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Failed to exchange code",
		})
	}

	client := h.oauthCfg().Client(c.Context(), tok)
	resp, err := client.Get("https://www.googleapis.com/oauth2/v2/userinfo")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Failed to fetch userinfo",
		})
	}
	defer resp.Body.Close()

	var gu googleUserInfo
	if err := json.NewDecoder(resp.Body).Decode(&gu); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Failed to decode userinfo",
		})
	}

	email := strings.ToLower(strings.TrimSpace(gu.Email))
	name := strings.TrimSpace(gu.Name)
	if email == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Email not provided by Google",
		})
	}

	user, err := h.Store.GetUserByEmail(email)
	if err != nil {
		return internalError(c)
	}
	if user == nil {
		user, err = h.registerGoogleUser(email, name, gu.Picture)
		if err != nil {
			return internalError(c)
		}
	}

	token, err := utils.SignJWT(h.JWTSecret, user.ID, string(user.UserType), h.Expires)
	if err != nil {
		return internalError(c)
	}
	c.Cookie(&fiber.Cookie{
		Name:     middleware.TokenCookie,
		Value:    token,
		Path:     "/",
		HTTPOnly: true,
		SameSite: "Lax",
		MaxAge:   h.Expires * 60,
	})
	c.Cookie(&fiber.Cookie{Name: "oauth_state", Value: "", Path: "/", MaxAge: -1, HTTPOnly: true, SameSite: "Lax"})

	return c.Redirect(h.FrontendBaseURL+"/dashboard", http.StatusTemporaryRedirect)
}

func (h *GoogleOAuthHandler) registerGoogleUser(email, name, avatarURL string) (*models.User, error) {
	// Accounts still need a password column; generate one that can never be
	// used for a manual login.
	hashed, err := utils.HashPassword(randomState(24))
	if err != nil {
		return nil, err
	}

	username, err := h.availableUsername(strings.SplitN(email, "@", 2)[0])
	if err != nil {
		return nil, err
	}

	user, err := h.Store.CreateUser(&models.User{
		Username:  username,
		Password:  hashed,
		Email:     email,
		Name:      name,
		UserType:  models.UserTypeClient,
		AvatarURL: avatarURL,
	})
	if err != nil {
		return nil, err
	}
	if _, err := h.Store.CreateClientProfile(&models.ClientProfile{UserID: user.ID}); err != nil {
		return nil, err
	}
	return user, nil
}

func (h *GoogleOAuthHandler) availableUsername(base string) (string, error) {
	if base == "" {
		base = "user"
	}
	candidate := base
	for i := 2; ; i++ {
		existing, err := h.Store.GetUserByUsername(candidate)
		if err != nil {
			return "", err
		}
		if existing == nil {
			return candidate, nil
		}
		candidate = fmt.Sprintf("%s%d", base, i)
	}
}
