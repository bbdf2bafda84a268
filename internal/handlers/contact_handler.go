package handlers

import (
	"log"

	"bazar/internal/forms"
	"bazar/internal/services"
	"bazar/internal/session"

	"github.com/gofiber/fiber/v2"
)

// ContactHandler handles the contact form, which requires a logged-in user.
type ContactHandler struct {
	contactService *services.ContactService
	sessions       *session.Manager
}

// NewContactHandler creates a new ContactHandler.
func NewContactHandler(contactService *services.ContactService, sessions *session.Manager) *ContactHandler {
	return &ContactHandler{
		contactService: contactService,
		sessions:       sessions,
	}
}

// RegisterRoutes registers the contact routes with the Fiber app, guarded by
// the given authentication middleware.
func (h *ContactHandler) RegisterRoutes(router fiber.Router, authRequired fiber.Handler) {
	router.Get("/contact", authRequired, h.HandleContactPage)
	router.Post("/contact", authRequired, h.HandleContact)
}

// HandleContactPage renders the contact form.
func (h *ContactHandler) HandleContactPage(c *fiber.Ctx) error {
	return h.renderContact(c, &forms.ContactForm{}, nil, nil)
}

// HandleContact validates and persists a contact-form submission.
func (h *ContactHandler) HandleContact(c *fiber.Ctx) error {
	userID, _ := c.Locals("user_id").(string)

	var form forms.ContactForm
	if err := c.BodyParser(&form); err != nil {
		log.Printf("Error parsing contact form: %v", err)
		return h.renderContact(c, &form, nil, flashNow("danger", "Invalid form submission."))
	}

	if errs := forms.Validate(&form); len(errs) > 0 {
		return h.renderContact(c, &form, errs, nil)
	}

	if _, err := h.contactService.SubmitContact(userID, form.Name, form.Email, form.Message); err != nil {
		log.Printf("Error saving contact message: %v", err)
		return h.renderContact(c, &form, nil, flashNow("danger", "An unexpected error occurred. Please try again."))
	}

	session.Flash(c, "success", "Your message has been sent!")
	return c.Redirect("/", fiber.StatusSeeOther)
}

func (h *ContactHandler) renderContact(c *fiber.Ctx, form *forms.ContactForm, errs map[string]string, now []session.FlashMessage) error {
	return renderPage(c, h.sessions, "contact", "Contact", fiber.Map{
		"Form":    form,
		"Errors":  errs,
		"Flashes": now,
	})
}
