// Package session implements the signed-cookie session for authenticated
// requests. The session is fully client-held: an HS256-signed token carrying
// the user's id, so no per-session state lives in the server process.
package session

import (
	"fmt"
	"time"

	"github.com/dgrijalva/jwt-go"
	"github.com/gofiber/fiber/v2"
)

// CookieName is the name of the session cookie.
const CookieName = "session"

// Manager issues and verifies session cookies.
type Manager struct {
	secret []byte
	ttl    time.Duration
}

// NewManager creates a session Manager signing with the given secret.
// Sessions are valid for 24 hours.
func NewManager(secret string) *Manager {
	return &Manager{
		secret: []byte(secret),
		ttl:    24 * time.Hour,
	}
}

// Establish sets a signed session cookie identifying the given user.
func (m *Manager) Establish(c *fiber.Ctx, userID string) error {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": userID,
		"exp":     now.Add(m.ttl).Unix(),
		"iat":     now.Unix(),
	})

	signed, err := token.SignedString(m.secret)
	if err != nil {
		return fmt.Errorf("failed to sign session token: %w", err)
	}

	c.Cookie(&fiber.Cookie{
		Name:     CookieName,
		Value:    signed,
		Path:     "/",
		Expires:  now.Add(m.ttl),
		HTTPOnly: true,
		SameSite: "Lax",
	})
	return nil
}

// CurrentUserID reads and verifies the session cookie. It reports false if
// the cookie is absent, tampered with or expired.
func (m *Manager) CurrentUserID(c *fiber.Ctx) (string, bool) {
	raw := c.Cookies(CookieName)
	if raw == "" {
		return "", false
	}

	token, err := jwt.Parse(raw, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return m.secret, nil
	})
	if err != nil || !token.Valid {
		return "", false
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", false
	}
	userID, ok := claims["user_id"].(string)
	if !ok || userID == "" {
		return "", false
	}
	return userID, true
}

// Clear invalidates the session cookie.
func (m *Manager) Clear(c *fiber.Ctx) {
	c.Cookie(&fiber.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		Expires:  time.Now().Add(-time.Hour),
		HTTPOnly: true,
		SameSite: "Lax",
	})
}
