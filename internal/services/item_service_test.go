package services_test

import (
	"fmt"
	"testing"
	"time"

	"bazar/internal/models"
	"bazar/internal/repositories"
	"bazar/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockItemRepository is a mock implementation of repositories.ItemRepository
type MockItemRepository struct {
	mock.Mock
}

func (m *MockItemRepository) Create(item *models.Item) error {
	args := m.Called(item)
	return args.Error(0)
}

func (m *MockItemRepository) GetAllSorted() ([]models.Item, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Item), args.Error(1)
}

func (m *MockItemRepository) GetByID(id string) (*models.Item, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Item), args.Error(1)
}

func TestItemService_ListItems(t *testing.T) {
	mockRepo := new(MockItemRepository)
	service := services.NewItemService(mockRepo)

	expectedItems := []models.Item{
		{ID: "2", Name: "Newer item", Price: 20.0, Category: "misc"},
		{ID: "1", Name: "Older item", Price: 10.0, Category: "misc"},
	}

	mockRepo.On("GetAllSorted").Return(expectedItems, nil).Once()

	items, err := service.ListItems()

	assert.NoError(t, err)
	assert.Len(t, items, 2)
	assert.Equal(t, expectedItems, items)
	mockRepo.AssertExpectations(t)
}

func TestItemService_CreateItem(t *testing.T) {
	mockRepo := new(MockItemRepository)
	service := services.NewItemService(mockRepo)

	newItem := &models.Item{Name: "New item", Price: 12.5, Category: "books", UserID: "user-1"}

	// Test successful creation
	mockRepo.On("Create", newItem).Return(nil).Once()
	err := service.CreateItem(newItem)
	assert.NoError(t, err)
	mockRepo.AssertExpectations(t)

	// Test creation failure (e.g., database error)
	mockRepo.On("Create", newItem).Return(fmt.Errorf("database error")).Once()
	err = service.CreateItem(newItem)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "database error")
	mockRepo.AssertExpectations(t)
}

func TestItemService_GetItemByID(t *testing.T) {
	mockRepo := new(MockItemRepository)
	service := services.NewItemService(mockRepo)

	expectedItem := &models.Item{ID: "1", Name: "Item A", Price: 10.0}

	// Test successful retrieval
	mockRepo.On("GetByID", "1").Return(expectedItem, nil).Once()
	item, err := service.GetItemByID("1")
	assert.NoError(t, err)
	assert.Equal(t, expectedItem, item)
	mockRepo.AssertExpectations(t)

	// Test item not found
	mockRepo.On("GetByID", "99").Return(nil, fmt.Errorf("item with ID 99: %w", repositories.ErrNotFound)).Once()
	item, err = service.GetItemByID("99")
	assert.Error(t, err)
	assert.Nil(t, item)
	assert.ErrorIs(t, err, repositories.ErrNotFound)
	mockRepo.AssertExpectations(t)
}

// The in-memory repository must honor the newest-first ordering contract
// regardless of insertion order.
func TestMockItemRepository_Ordering(t *testing.T) {
	repo := repositories.NewMockItemRepository()

	base := time.Now()
	oldest := &models.Item{Name: "Oldest", Price: 1, Category: "misc"}
	oldest.CreatedAt = base.Add(-2 * time.Hour)
	newest := &models.Item{Name: "Newest", Price: 3, Category: "misc"}
	newest.CreatedAt = base
	middle := &models.Item{Name: "Middle", Price: 2, Category: "misc"}
	middle.CreatedAt = base.Add(-time.Hour)

	// Insert out of order on purpose.
	assert.NoError(t, repo.Create(oldest))
	assert.NoError(t, repo.Create(newest))
	assert.NoError(t, repo.Create(middle))

	items, err := repo.GetAllSorted()
	assert.NoError(t, err)
	assert.Len(t, items, 3)
	assert.Equal(t, "Newest", items[0].Name)
	assert.Equal(t, "Middle", items[1].Name)
	assert.Equal(t, "Oldest", items[2].Name)
}
