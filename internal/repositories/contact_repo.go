package repositories

import "bazar/internal/models"

// ContactRepository defines the interface for contact message data access.
// Contact messages are write-only from the application's point of view.
type ContactRepository interface {
	Create(contact *models.Contact) error
}
