package handlers

import (
	"errors"
	"log"

	"bazar/internal/forms"
	"bazar/internal/services"
	"bazar/internal/session"

	"github.com/gofiber/fiber/v2"
)

// AuthHandler handles registration, login and logout.
type AuthHandler struct {
	authService *services.AuthService
	sessions    *session.Manager
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService *services.AuthService, sessions *session.Manager) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		sessions:    sessions,
	}
}

// RegisterRoutes registers the authentication routes with the Fiber app.
func (h *AuthHandler) RegisterRoutes(router fiber.Router) {
	router.Get("/register", h.HandleRegisterPage)
	router.Post("/register", h.HandleRegister)
	router.Get("/login", h.HandleLoginPage)
	router.Post("/login", h.HandleLogin)
	router.Get("/logout", h.HandleLogout)
}

// HandleRegisterPage renders the registration form. Authenticated users are
// sent back to the home page without processing.
func (h *AuthHandler) HandleRegisterPage(c *fiber.Ctx) error {
	if _, ok := h.sessions.CurrentUserID(c); ok {
		return c.Redirect("/", fiber.StatusSeeOther)
	}
	return h.renderRegister(c, &forms.RegistrationForm{}, nil, nil)
}

// HandleRegister handles new user registration. On success the user is
// automatically logged in and redirected home.
func (h *AuthHandler) HandleRegister(c *fiber.Ctx) error {
	if _, ok := h.sessions.CurrentUserID(c); ok {
		return c.Redirect("/", fiber.StatusSeeOther)
	}

	var form forms.RegistrationForm
	if err := c.BodyParser(&form); err != nil {
		log.Printf("Error parsing registration form: %v", err)
		return h.renderRegister(c, &form, nil, flashNow("danger", "Invalid form submission."))
	}

	if errs := forms.Validate(&form); len(errs) > 0 {
		return h.renderRegister(c, &form, errs, nil)
	}

	user, err := h.authService.RegisterUser(form.Username, form.Email, form.Password)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrDuplicateEmail):
			return h.renderRegister(c, &form, nil, flashNow("danger", "This email is already registered."))
		case errors.Is(err, services.ErrDuplicateUsername):
			return h.renderRegister(c, &form, nil, flashNow("danger", "This username is already taken."))
		default:
			log.Printf("Error registering user: %v", err)
			return h.renderRegister(c, &form, nil, flashNow("danger", "An unexpected error occurred. Please try again."))
		}
	}

	// Automatic login after registration
	if err := h.sessions.Establish(c, user.ID); err != nil {
		log.Printf("Error establishing session for user %s: %v", user.ID, err)
		return h.renderRegister(c, &form, nil, flashNow("danger", "An unexpected error occurred. Please try again."))
	}

	session.Flash(c, "success", "Registration successful! You have been logged in automatically.")
	return c.Redirect("/", fiber.StatusSeeOther)
}

// HandleLoginPage renders the login form. Authenticated users are sent back
// to the home page without processing.
func (h *AuthHandler) HandleLoginPage(c *fiber.Ctx) error {
	if _, ok := h.sessions.CurrentUserID(c); ok {
		return c.Redirect("/", fiber.StatusSeeOther)
	}
	return h.renderLogin(c, &forms.LoginForm{}, nil, nil)
}

// HandleLogin handles user login and establishes the session cookie.
func (h *AuthHandler) HandleLogin(c *fiber.Ctx) error {
	if _, ok := h.sessions.CurrentUserID(c); ok {
		return c.Redirect("/", fiber.StatusSeeOther)
	}

	var form forms.LoginForm
	if err := c.BodyParser(&form); err != nil {
		log.Printf("Error parsing login form: %v", err)
		return h.renderLogin(c, &form, nil, flashNow("danger", "Invalid form submission."))
	}

	if errs := forms.Validate(&form); len(errs) > 0 {
		return h.renderLogin(c, &form, errs, nil)
	}

	user, err := h.authService.VerifyCredentials(form.Email, form.Password)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrUserNotFound):
			return h.renderLogin(c, &form, nil, flashNow("danger", "No user is registered with this email."))
		case errors.Is(err, services.ErrBadPassword):
			return h.renderLogin(c, &form, nil, flashNow("danger", "Incorrect password."))
		default:
			log.Printf("Error during login for %s: %v", form.Email, err)
			return h.renderLogin(c, &form, nil, flashNow("danger", "An unexpected error occurred. Please try again."))
		}
	}

	if err := h.sessions.Establish(c, user.ID); err != nil {
		log.Printf("Error establishing session for user %s: %v", user.ID, err)
		return h.renderLogin(c, &form, nil, flashNow("danger", "An unexpected error occurred. Please try again."))
	}

	session.Flash(c, "success", "You have been logged in.")
	return c.Redirect("/", fiber.StatusSeeOther)
}

// HandleLogout clears the session and redirects home.
func (h *AuthHandler) HandleLogout(c *fiber.Ctx) error {
	h.sessions.Clear(c)
	session.Flash(c, "info", "You have been logged out.")
	return c.Redirect("/", fiber.StatusSeeOther)
}

func (h *AuthHandler) renderRegister(c *fiber.Ctx, form *forms.RegistrationForm, errs map[string]string, now []session.FlashMessage) error {
	return renderPage(c, h.sessions, "register", "Register", fiber.Map{
		"Form":    form,
		"Errors":  errs,
		"Flashes": now,
	})
}

func (h *AuthHandler) renderLogin(c *fiber.Ctx, form *forms.LoginForm, errs map[string]string, now []session.FlashMessage) error {
	return renderPage(c, h.sessions, "login", "Log in", fiber.Map{
		"Form":    form,
		"Errors":  errs,
		"Flashes": now,
	})
}
