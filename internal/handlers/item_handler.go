package handlers

import (
	"log"

	"bazar/internal/forms"
	"bazar/internal/models"
	"bazar/internal/services"
	"bazar/internal/session"

	"github.com/gofiber/fiber/v2"
)

// ItemHandler handles the item listing and creation pages.
type ItemHandler struct {
	itemService *services.ItemService
	sessions    *session.Manager
}

// NewItemHandler creates a new ItemHandler.
func NewItemHandler(itemService *services.ItemService, sessions *session.Manager) *ItemHandler {
	return &ItemHandler{
		itemService: itemService,
		sessions:    sessions,
	}
}

// RegisterRoutes registers the item routes with the Fiber app. The listing
// is public; creation is guarded by the given authentication middleware.
func (h *ItemHandler) RegisterRoutes(router fiber.Router, authRequired fiber.Handler) {
	router.Get("/items", h.HandleListItems)
	router.Get("/items/add", authRequired, h.HandleAddItemPage)
	router.Post("/items/add", authRequired, h.HandleAddItem)
}

// HandleListItems renders all items, newest first.
func (h *ItemHandler) HandleListItems(c *fiber.Ctx) error {
	items, err := h.itemService.ListItems()
	if err != nil {
		log.Printf("Error listing items: %v", err)
		return renderPage(c, h.sessions, "items", "Items", fiber.Map{
			"Items":   []models.Item{},
			"Flashes": flashNow("danger", "An unexpected error occurred. Please try again."),
		})
	}
	return renderPage(c, h.sessions, "items", "Items", fiber.Map{
		"Items": items,
	})
}

// HandleAddItemPage renders the add-item form.
func (h *ItemHandler) HandleAddItemPage(c *fiber.Ctx) error {
	return h.renderAddItem(c, &forms.ItemForm{}, nil, nil)
}

// HandleAddItem validates and persists a new item for the logged-in user.
func (h *ItemHandler) HandleAddItem(c *fiber.Ctx) error {
	userID, _ := c.Locals("user_id").(string)

	var form forms.ItemForm
	if err := c.BodyParser(&form); err != nil {
		log.Printf("Error parsing item form: %v", err)
		return h.renderAddItem(c, &form, nil, flashNow("danger", "Invalid form submission."))
	}

	if errs := forms.Validate(&form); len(errs) > 0 {
		return h.renderAddItem(c, &form, errs, nil)
	}

	price, err := forms.ParsePrice(form.Price)
	if err != nil {
		return h.renderAddItem(c, &form, map[string]string{"price": "Invalid price format. Use a number."}, nil)
	}

	item := &models.Item{
		Name:        form.Name,
		Description: form.Description,
		Price:       price,
		Category:    form.Category,
		IsAvailable: form.Available(),
		UserID:      userID,
	}

	if err := h.itemService.CreateItem(item); err != nil {
		log.Printf("Error creating item: %v", err)
		return h.renderAddItem(c, &form, nil, flashNow("danger", "An unexpected error occurred. Please try again."))
	}

	session.Flash(c, "success", "Item added successfully!")
	return c.Redirect("/items", fiber.StatusSeeOther)
}

func (h *ItemHandler) renderAddItem(c *fiber.Ctx, form *forms.ItemForm, errs map[string]string, now []session.FlashMessage) error {
	return renderPage(c, h.sessions, "add_item", "Add item", fiber.Map{
		"Form":    form,
		"Errors":  errs,
		"Flashes": now,
	})
}
