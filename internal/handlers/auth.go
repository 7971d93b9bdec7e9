package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/Abberdo/FlexConnect-MVP/internal/middleware"
	"github.com/Abberdo/FlexConnect-MVP/internal/models"
	"github.com/Abberdo/FlexConnect-MVP/internal/store"
	"github.com/Abberdo/FlexConnect-MVP/internal/utils"
)

type AuthHandler struct {
	Store     store.Store
	JWTSecret string
	Expires   int
}

type RegisterReq struct {
	Username  string   `json:"username"`
	Password  string   `json:"password"`
	Email     string   `json:"email"`
	Name      string   `json:"name"`
	UserType  string   `json:"userType"` // freelancer / client
	AvatarURL string   `json:"avatarUrl"`
	Profile   *Profile `json:"profile"`
}

// Profile carries the optional role-specific profile fields of a
// registration. Which subset applies depends on userType.
type Profile struct {
	// freelancer
	Title        string   `json:"title"`
	Bio          string   `json:"bio"`
	Skills       []string `json:"skills"`
	Experience   string   `json:"experience"`
	HourlyRate   int      `json:"hourlyRate"`
	Portfolio    []string `json:"portfolio"`
	Availability string   `json:"availability"`

	// client
	CompanyName string `json:"companyName"`
	Industry    string `json:"industry"`
	Description string `json:"description"`
	WebsiteURL  string `json:"websiteUrl"`
}

func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req RegisterReq
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
		})
	}

	username := strings.TrimSpace(req.Username)
	email := strings.ToLower(strings.TrimSpace(req.Email))
	password := strings.TrimSpace(req.Password)
	name := strings.TrimSpace(req.Name)
	userType := models.UserType(strings.TrimSpace(req.UserType))

	errs := FieldErrors{}
	if username == "" {
		errs.Add("username", "Username is required")
	}
	if email == "" {
		errs.Add("email", "Email is required")
	} else if !strings.Contains(email, "@") {
		errs.Add("email", "Email is not valid")
	}
	if password == "" {
		errs.Add("password", "Password is required")
	} else if len(password) < 6 {
		errs.Add("password", "Password must be at least 6 characters")
	}
	if name == "" {
		errs.Add("name", "Name is required")
	}
	if userType != models.UserTypeFreelancer && userType != models.UserTypeClient {
		errs.Add("userType", "userType must be 'freelancer' or 'client'")
	}
	if len(errs) > 0 {
		return validationFail(c, "Invalid registration data", errs)
	}

	// Uniqueness is the caller's check; the gateway's create does not
	// validate business rules.
	if existing, err := h.Store.GetUserByUsername(username); err != nil {
		return internalError(c)
	} else if existing != nil {
		errs.Add("username", "Username already taken")
	}
	if existing, err := h.Store.GetUserByEmail(email); err != nil {
		return internalError(c)
	} else if existing != nil {
		errs.Add("email", "Email already registered")
	}
	if len(errs) > 0 {
		return validationFail(c, "Invalid registration data", errs)
	}

	hashed, err := utils.HashPassword(password)
	if err != nil {
		return internalError(c)
	}

	user, err := h.Store.CreateUser(&models.User{
		Username:  username,
		Password:  hashed,
		Email:     email,
		Name:      name,
		UserType:  userType,
		AvatarURL: strings.TrimSpace(req.AvatarURL),
	})
	if err != nil {
		return internalError(c)
	}

	if err := h.createProfile(user, req.Profile); err != nil {
		return internalError(c)
	}

	if err := h.setAuthCookie(c, user); err != nil {
		return internalError(c)
	}
	return c.Status(fiber.StatusCreated).JSON(user)
}

func (h *AuthHandler) createProfile(user *models.User, p *Profile) error {
	if p == nil {
		p = &Profile{}
	}
	switch user.UserType {
	case models.UserTypeFreelancer:
		_, err := h.Store.CreateFreelancerProfile(&models.FreelancerProfile{
			UserID:       user.ID,
			Title:        p.Title,
			Bio:          p.Bio,
			Skills:       p.Skills,
			Experience:   p.Experience,
			HourlyRate:   p.HourlyRate,
			Portfolio:    p.Portfolio,
			Availability: p.Availability,
		})
		return err
	case models.UserTypeClient:
		_, err := h.Store.CreateClientProfile(&models.ClientProfile{
			UserID:      user.ID,
			CompanyName: p.CompanyName,
			Industry:    p.Industry,
			Description: p.Description,
			WebsiteURL:  p.WebsiteURL,
		})
		return err
	}
	return nil
}

type LoginReq struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req LoginReq
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
		})
	}

	username := strings.TrimSpace(req.Username)
	password := strings.TrimSpace(req.Password)
	if username == "" || password == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Username and password are required",
		})
	}

	user, err := h.Store.GetUserByUsername(username)
	if err != nil {
		return internalError(c)
	}
	if user == nil || !utils.CheckPassword(user.Password, password) {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"message": "Invalid username or password",
		})
	}

	if err := h.setAuthCookie(c, user); err != nil {
		return internalError(c)
	}
	return c.JSON(user)
}

func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	c.Cookie(&fiber.Cookie{
		Name:     middleware.TokenCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HTTPOnly: true,
		SameSite: "Lax",
	})
	return c.SendStatus(fiber.StatusOK)
}

// CurrentUser returns the authenticated account.
func (h *AuthHandler) CurrentUser(c *fiber.Ctx) error {
	userID, ok := currentUserID(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"message": "Unauthorized",
		})
	}
	user, err := h.Store.GetUser(userID)
	if err != nil {
		return internalError(c)
	}
	if user == nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"message": "Unauthorized",
		})
	}
	return c.JSON(user)
}

func (h *AuthHandler) setAuthCookie(c *fiber.Ctx, user *models.User) error {
	token, err := utils.SignJWT(h.JWTSecret, user.ID, string(user.UserType), h.Expires)
	if err != nil {
		return err
	}
	c.Cookie(&fiber.Cookie{
		Name:     middleware.TokenCookie,
		Value:    token,
		Path:     "/",
		HTTPOnly: true,
		SameSite: "Lax",
		MaxAge:   h.Expires * 60,
	})
	return nil
}

func internalError(c *fiber.Ctx) error {
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"message": "Internal server error",
	})
}
