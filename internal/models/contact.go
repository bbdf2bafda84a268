package models

import "gorm.io/gorm"

// Contact is a message submitted through the contact form.
// Records are immutable once created.
type Contact struct {
	ID         string `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	Name       string `json:"name" gorm:"type:varchar(50)" validate:"required,min=2,max=50"`
	Email      string `json:"email" gorm:"type:varchar(255)" validate:"required,email"`
	Message    string `json:"message" validate:"required,min=10"`
	UserID     string `json:"user_id" gorm:"type:varchar(36);index"`
	Author     *User  `json:"-" gorm:"foreignKey:UserID"`
	gorm.Model        // Embed gorm.Model for CreatedAt, UpdatedAt, DeletedAt
}
