package handlers

import (
	"bazar/internal/session"

	"github.com/gofiber/fiber/v2"
)

// renderPage renders a template inside the main layout with the common page
// data filled in: title, login state and pending flash messages. Handlers
// can pass immediate messages under "Flashes"; they are merged with the
// queued ones.
func renderPage(c *fiber.Ctx, sessions *session.Manager, name, title string, data fiber.Map) error {
	if data == nil {
		data = fiber.Map{}
	}
	data["Title"] = title

	if _, ok := data["Errors"]; !ok {
		data["Errors"] = map[string]string{}
	}

	_, loggedIn := sessions.CurrentUserID(c)
	data["LoggedIn"] = loggedIn

	flashes := session.TakeFlashes(c)
	if immediate, ok := data["Flashes"].([]session.FlashMessage); ok {
		flashes = append(flashes, immediate...)
	}
	data["Flashes"] = flashes

	return c.Render(name, data, "layouts/main")
}

// flashNow wraps a message for immediate display on the page being rendered,
// as opposed to session.Flash which queues it for the next page.
func flashNow(category, message string) []session.FlashMessage {
	return []session.FlashMessage{{Category: category, Message: message}}
}
