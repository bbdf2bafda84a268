package repositories

import "bazar/internal/models"

// ItemRepository defines the interface for item data access.
type ItemRepository interface {
	Create(item *models.Item) error
	// GetAllSorted returns all items ordered by creation time, newest first.
	GetAllSorted() ([]models.Item, error)
	GetByID(id string) (*models.Item, error)
}
