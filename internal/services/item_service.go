package services

import (
	"bazar/internal/models"
	"bazar/internal/repositories"
)

// ItemService handles business logic related to item listings.
type ItemService struct {
	repo repositories.ItemRepository
}

// NewItemService creates a new ItemService.
func NewItemService(repo repositories.ItemRepository) *ItemService {
	return &ItemService{
		repo: repo,
	}
}

// ListItems retrieves all items, newest first.
func (s *ItemService) ListItems() ([]models.Item, error) {
	return s.repo.GetAllSorted()
}

// GetItemByID retrieves a single item by its ID.
func (s *ItemService) GetItemByID(id string) (*models.Item, error) {
	return s.repo.GetByID(id)
}

// CreateItem creates a new item listing.
func (s *ItemService) CreateItem(item *models.Item) error {
	return s.repo.Create(item)
}
