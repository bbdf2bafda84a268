package middleware

import (
	"bazar/internal/session"

	"github.com/gofiber/fiber/v2"
)

// LoginRequired is a Fiber middleware guarding routes that need an
// authenticated user. Without a valid session the request is redirected to
// the login page with a warning flash and the handler never runs.
func LoginRequired(sessions *session.Manager) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, ok := sessions.CurrentUserID(c)
		if !ok {
			session.Flash(c, "warning", "You must be logged in to access this page.")
			return c.Redirect("/login", fiber.StatusSeeOther)
		}

		// Store the user id in the Fiber context for subsequent handlers
		c.Locals("user_id", userID)

		return c.Next()
	}
}
