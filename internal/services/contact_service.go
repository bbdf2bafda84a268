package services

import (
	"fmt"
	"log"

	"bazar/internal/models"
	"bazar/internal/repositories"
	"bazar/pkg/rabbitmq"
)

// ContactService handles business logic for contact-form submissions.
type ContactService struct {
	contactRepo repositories.ContactRepository
	mqClient    *rabbitmq.Client // RabbitMQ client, may be nil
}

// NewContactService creates a new ContactService.
func NewContactService(contactRepo repositories.ContactRepository, mqClient *rabbitmq.Client) *ContactService {
	return &ContactService{
		contactRepo: contactRepo,
		mqClient:    mqClient,
	}
}

// SubmitContact persists a contact message for the given user and publishes
// a notification event. Publishing is best-effort: a broker failure is
// logged but does not fail the submission.
func (s *ContactService) SubmitContact(userID, name, email, message string) (*models.Contact, error) {
	contact := &models.Contact{
		Name:    name,
		Email:   email,
		Message: message,
		UserID:  userID,
	}

	if err := s.contactRepo.Create(contact); err != nil {
		return nil, fmt.Errorf("failed to save contact message: %w", err)
	}

	if s.mqClient != nil {
		event := map[string]interface{}{
			"contactID": contact.ID,
			"userID":    contact.UserID,
			"email":     contact.Email,
		}
		if err := s.mqClient.PublishContactSubmitted(event); err != nil {
			log.Printf("Warning: Failed to publish contact submitted event for contact %s: %v", contact.ID, err)
		}
	} else {
		log.Println("RabbitMQ client is not initialized. Skipping contact notification.")
	}

	return contact, nil
}
