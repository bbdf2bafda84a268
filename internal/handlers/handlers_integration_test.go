package handlers_test

import (
	"fmt"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"strings"
	"testing"
	"time"

	"bazar/internal/handlers"
	"bazar/internal/middleware"
	"bazar/internal/models"
	"bazar/internal/repositories"
	"bazar/internal/services"
	"bazar/internal/session"
	"bazar/web"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/template/html/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// setupApp builds a Fiber app backed by an in-memory SQLite database with
// the full route table, mirroring the wiring in main.go.
func setupApp(t *testing.T) (*fiber.App, *gorm.DB) {
	t.Helper()

	// A named shared-cache database keeps all pooled connections of this
	// test on the same in-memory store.
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(&models.User{}, &models.Contact{}, &models.Item{}))

	userRepo := repositories.NewGORMUserRepository(db)
	contactRepo := repositories.NewGORMContactRepository(db)
	itemRepo := repositories.NewGORMItemRepository(db)

	authService := services.NewAuthService(userRepo)
	contactService := services.NewContactService(contactRepo, nil) // nil RabbitMQ client
	itemService := services.NewItemService(itemRepo)

	sessions := session.NewManager("test-secret")

	pageHandler := handlers.NewPageHandler(sessions)
	authHandler := handlers.NewAuthHandler(authService, sessions)
	contactHandler := handlers.NewContactHandler(contactService, sessions)
	itemHandler := handlers.NewItemHandler(itemService, sessions)

	engine := html.NewFileSystem(http.FS(web.TemplatesFS()), ".html")
	app := fiber.New(fiber.Config{Views: engine})

	authRequired := middleware.LoginRequired(sessions)
	pageHandler.RegisterRoutes(app)
	authHandler.RegisterRoutes(app)
	contactHandler.RegisterRoutes(app, authRequired)
	itemHandler.RegisterRoutes(app, authRequired)

	return app, db
}

// TestMain suppresses logging during tests for cleaner output.
func TestMain(m *testing.M) {
	log.SetOutput(io.Discard)
	os.Exit(m.Run())
}

// postForm sends an urlencoded form, optionally with a session cookie.
func postForm(t *testing.T, app *fiber.App, path string, form url.Values, sessionToken string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	if sessionToken != "" {
		req.AddCookie(&http.Cookie{Name: session.CookieName, Value: sessionToken})
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func getPage(t *testing.T, app *fiber.App, path, sessionToken string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if sessionToken != "" {
		req.AddCookie(&http.Cookie{Name: session.CookieName, Value: sessionToken})
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

// sessionToken extracts the session cookie value from a response, or ""
// when the response does not set one.
func sessionToken(resp *http.Response) string {
	for _, cookie := range resp.Cookies() {
		if cookie.Name == session.CookieName {
			return cookie.Value
		}
	}
	return ""
}

func readBody(t *testing.T, resp *http.Response) string {
	t.Helper()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	resp.Body.Close()
	return string(body)
}

// register runs a full registration and returns the established session token.
func register(t *testing.T, app *fiber.App, username, email, password string) string {
	t.Helper()
	resp := postForm(t, app, "/register", url.Values{
		"username":  {username},
		"email":     {email},
		"password":  {password},
		"password2": {password},
	}, "")
	defer resp.Body.Close()
	require.Equal(t, http.StatusSeeOther, resp.StatusCode)
	token := sessionToken(resp)
	require.NotEmpty(t, token)
	return token
}

func TestHealthz(t *testing.T) {
	app, _ := setupApp(t)

	resp := getPage(t, app, "/healthz", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "ok", readBody(t, resp))
}

func TestStaticPages(t *testing.T) {
	app, _ := setupApp(t)

	for _, path := range []string{"/", "/about", "/items"} {
		resp := getPage(t, app, path, "")
		assert.Equal(t, http.StatusOK, resp.StatusCode, path)
		resp.Body.Close()
	}
}

func TestRegisterCreatesUserAndSession(t *testing.T) {
	app, db := setupApp(t)

	resp := postForm(t, app, "/register", url.Values{
		"username":  {"janedoe"},
		"email":     {"jane@example.com"},
		"password":  {"secret123"},
		"password2": {"secret123"},
	}, "")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/", resp.Header.Get("Location"))
	assert.NotEmpty(t, sessionToken(resp), "registration must establish a session")

	var count int64
	db.Model(&models.User{}).Count(&count)
	assert.EqualValues(t, 1, count)

	var user models.User
	require.NoError(t, db.First(&user, "email = ?", "jane@example.com").Error)
	assert.NotEqual(t, "secret123", user.Password, "password must never be stored in plaintext")
	assert.True(t, strings.HasPrefix(user.Password, "$2"), "password must be a bcrypt hash")
}

func TestRegisterDuplicateAddsNoRow(t *testing.T) {
	app, db := setupApp(t)
	register(t, app, "janedoe", "jane@example.com", "secret123")

	// Same email, different username.
	resp := postForm(t, app, "/register", url.Values{
		"username":  {"otheruser"},
		"email":     {"jane@example.com"},
		"password":  {"secret123"},
		"password2": {"secret123"},
	}, "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, readBody(t, resp), "This email is already registered.")

	// Same username, different email.
	resp = postForm(t, app, "/register", url.Values{
		"username":  {"janedoe"},
		"email":     {"other@example.com"},
		"password":  {"secret123"},
		"password2": {"secret123"},
	}, "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, readBody(t, resp), "This username is already taken.")

	var count int64
	db.Model(&models.User{}).Count(&count)
	assert.EqualValues(t, 1, count, "duplicate registrations must not add rows")
}

func TestRegisterValidationFailure(t *testing.T) {
	app, db := setupApp(t)

	resp := postForm(t, app, "/register", url.Values{
		"username":  {"janedoe"},
		"email":     {"jane@example.com"},
		"password":  {"abc"},
		"password2": {"abc"},
	}, "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, readBody(t, resp), "Password must be at least 6 characters.")

	var count int64
	db.Model(&models.User{}).Count(&count)
	assert.EqualValues(t, 0, count)
}

func TestLogin(t *testing.T) {
	app, _ := setupApp(t)
	register(t, app, "janedoe", "jane@example.com", "secret123")

	// Unknown email.
	resp := postForm(t, app, "/login", url.Values{
		"email":    {"missing@example.com"},
		"password": {"secret123"},
	}, "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Empty(t, sessionToken(resp), "failed login must not establish a session")
	assert.Contains(t, readBody(t, resp), "No user is registered with this email.")

	// Wrong password.
	resp = postForm(t, app, "/login", url.Values{
		"email":    {"jane@example.com"},
		"password": {"wrongpass"},
	}, "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Empty(t, sessionToken(resp), "failed login must not establish a session")
	assert.Contains(t, readBody(t, resp), "Incorrect password.")

	// Correct credentials.
	resp = postForm(t, app, "/login", url.Values{
		"email":    {"jane@example.com"},
		"password": {"secret123"},
	}, "")
	defer resp.Body.Close()
	assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/", resp.Header.Get("Location"))
	assert.NotEmpty(t, sessionToken(resp))
}

func TestAuthenticatedUserSkipsAuthForms(t *testing.T) {
	app, _ := setupApp(t)
	token := register(t, app, "janedoe", "jane@example.com", "secret123")

	for _, path := range []string{"/register", "/login"} {
		resp := getPage(t, app, path, token)
		assert.Equal(t, http.StatusSeeOther, resp.StatusCode, path)
		assert.Equal(t, "/", resp.Header.Get("Location"), path)
		resp.Body.Close()
	}
}

func TestLogoutClearsSession(t *testing.T) {
	app, _ := setupApp(t)
	token := register(t, app, "janedoe", "jane@example.com", "secret123")

	resp := getPage(t, app, "/logout", token)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/", resp.Header.Get("Location"))

	for _, cookie := range resp.Cookies() {
		if cookie.Name == session.CookieName {
			assert.Empty(t, cookie.Value)
			assert.True(t, cookie.Expires.Before(time.Now()))
		}
	}
}

func TestContactRequiresAuthentication(t *testing.T) {
	app, db := setupApp(t)

	resp := getPage(t, app, "/contact", "")
	assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/login", resp.Header.Get("Location"))
	resp.Body.Close()

	// A POST without a session must redirect before any side effect.
	resp = postForm(t, app, "/contact", url.Values{
		"name":    {"Jane Doe"},
		"email":   {"jane@example.com"},
		"message": {"This message is long enough."},
	}, "")
	assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/login", resp.Header.Get("Location"))
	resp.Body.Close()

	var count int64
	db.Model(&models.Contact{}).Count(&count)
	assert.EqualValues(t, 0, count, "unauthenticated submission must not persist")
}

func TestContactSubmission(t *testing.T) {
	app, db := setupApp(t)
	token := register(t, app, "janedoe", "jane@example.com", "secret123")

	// Invalid: message too short.
	resp := postForm(t, app, "/contact", url.Values{
		"name":    {"Jane Doe"},
		"email":   {"jane@example.com"},
		"message": {"short"},
	}, token)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, readBody(t, resp), "Message must be at least 10 characters.")

	var count int64
	db.Model(&models.Contact{}).Count(&count)
	assert.EqualValues(t, 0, count)

	// Valid submission.
	resp = postForm(t, app, "/contact", url.Values{
		"name":    {"Jane Doe"},
		"email":   {"jane@example.com"},
		"message": {"This message is long enough."},
	}, token)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/", resp.Header.Get("Location"))

	db.Model(&models.Contact{}).Count(&count)
	assert.EqualValues(t, 1, count)

	var contact models.Contact
	require.NoError(t, db.First(&contact).Error)
	assert.Equal(t, "Jane Doe", contact.Name)
	assert.NotEmpty(t, contact.UserID, "contact must reference its author")
}

func TestAddItemPriceFormats(t *testing.T) {
	app, db := setupApp(t)
	token := register(t, app, "janedoe", "jane@example.com", "secret123")

	// Comma decimal separator.
	resp := postForm(t, app, "/items/add", url.Values{
		"name":         {"Mechanical keyboard"},
		"description":  {"Clicky and loud"},
		"price":        {"12,50"},
		"category":     {"electronics"},
		"is_available": {"on"},
	}, token)
	assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/items", resp.Header.Get("Location"))
	resp.Body.Close()

	// Dot decimal separator.
	resp = postForm(t, app, "/items/add", url.Values{
		"name":     {"Wireless mouse"},
		"price":    {"12.50"},
		"category": {"electronics"},
	}, token)
	assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
	resp.Body.Close()

	var keyboard, mouse models.Item
	require.NoError(t, db.First(&keyboard, "name = ?", "Mechanical keyboard").Error)
	require.NoError(t, db.First(&mouse, "name = ?", "Wireless mouse").Error)
	assert.Equal(t, 12.50, keyboard.Price)
	assert.Equal(t, 12.50, mouse.Price, "comma and dot separators must parse identically")
	assert.True(t, keyboard.IsAvailable)
	assert.False(t, mouse.IsAvailable)

	// Non-numeric price: validation error, no new row.
	resp = postForm(t, app, "/items/add", url.Values{
		"name":     {"Bad price item"},
		"price":    {"cheap"},
		"category": {"misc"},
	}, token)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, readBody(t, resp), "Invalid price format. Use a number.")

	var count int64
	db.Model(&models.Item{}).Count(&count)
	assert.EqualValues(t, 2, count)
}

func TestItemsListedNewestFirst(t *testing.T) {
	app, db := setupApp(t)

	base := time.Now()
	older := models.Item{ID: "item-older", Name: "Older item", Price: 10, Category: "misc", UserID: "user-1"}
	older.CreatedAt = base.Add(-2 * time.Hour)
	newer := models.Item{ID: "item-newer", Name: "Newer item", Price: 20, Category: "misc", UserID: "user-1"}
	newer.CreatedAt = base.Add(-1 * time.Hour)

	// Insert the newer item first so physical order disagrees with the
	// expected listing order.
	require.NoError(t, db.Create(&newer).Error)
	require.NoError(t, db.Create(&older).Error)

	resp := getPage(t, app, "/items", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	body := readBody(t, resp)

	newerIdx := strings.Index(body, "Newer item")
	olderIdx := strings.Index(body, "Older item")
	require.GreaterOrEqual(t, newerIdx, 0)
	require.GreaterOrEqual(t, olderIdx, 0)
	assert.Less(t, newerIdx, olderIdx, "items must be listed newest first")
}

func TestAddItemRequiresAuthentication(t *testing.T) {
	app, db := setupApp(t)

	resp := postForm(t, app, "/items/add", url.Values{
		"name":     {"Sneaky item"},
		"price":    {"10"},
		"category": {"misc"},
	}, "")
	assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/login", resp.Header.Get("Location"))
	resp.Body.Close()

	var count int64
	db.Model(&models.Item{}).Count(&count)
	assert.EqualValues(t, 0, count)
}
