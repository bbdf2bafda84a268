package handlers

import (
	"bazar/internal/session"

	"github.com/gofiber/fiber/v2"
)

// PageHandler serves the static pages and the liveness probe.
type PageHandler struct {
	sessions *session.Manager
}

// NewPageHandler creates a new PageHandler.
func NewPageHandler(sessions *session.Manager) *PageHandler {
	return &PageHandler{
		sessions: sessions,
	}
}

// RegisterRoutes registers the page routes with the Fiber app.
func (h *PageHandler) RegisterRoutes(router fiber.Router) {
	router.Get("/", h.HandleHome)
	router.Get("/healthz", h.HandleHealthz)
	router.Get("/about", h.HandleAbout)
}

// HandleHome renders the home page.
func (h *PageHandler) HandleHome(c *fiber.Ctx) error {
	return renderPage(c, h.sessions, "index", "Home", nil)
}

// HandleHealthz is the liveness probe.
func (h *PageHandler) HandleHealthz(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).SendString("ok")
}

// HandleAbout renders the about page.
func (h *PageHandler) HandleAbout(c *fiber.Ctx) error {
	return renderPage(c, h.sessions, "about", "About us", nil)
}
