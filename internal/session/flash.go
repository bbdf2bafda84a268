package session

import (
	"encoding/base64"
	"encoding/json"
	"time"

	"github.com/gofiber/fiber/v2"
)

const flashCookieName = "flash"

// FlashMessage is a one-shot notification shown on the next rendered page.
// Categories follow the usual alert levels: success, info, warning, danger.
type FlashMessage struct {
	Category string `json:"category"`
	Message  string `json:"message"`
}

// Flash queues a message to be displayed once on the next rendered page.
func Flash(c *fiber.Ctx, category, message string) {
	payload, err := json.Marshal([]FlashMessage{{Category: category, Message: message}})
	if err != nil {
		return
	}
	c.Cookie(&fiber.Cookie{
		Name:     flashCookieName,
		Value:    base64.RawURLEncoding.EncodeToString(payload),
		Path:     "/",
		HTTPOnly: true,
		SameSite: "Lax",
	})
}

// TakeFlashes returns the pending flash messages and clears them, so each
// message is displayed exactly once. A malformed cookie yields no messages.
func TakeFlashes(c *fiber.Ctx) []FlashMessage {
	raw := c.Cookies(flashCookieName)
	if raw == "" {
		return nil
	}

	c.Cookie(&fiber.Cookie{
		Name:     flashCookieName,
		Value:    "",
		Path:     "/",
		Expires:  time.Now().Add(-time.Hour),
		HTTPOnly: true,
		SameSite: "Lax",
	})

	decoded, err := base64.RawURLEncoding.DecodeString(raw)
	if err != nil {
		return nil
	}
	var flashes []FlashMessage
	if err := json.Unmarshal(decoded, &flashes); err != nil {
		return nil
	}
	return flashes
}
