package models

import "gorm.io/gorm"

// Item is a listing created by an authenticated user.
type Item struct {
	ID          string  `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	Name        string  `json:"name" gorm:"type:varchar(100)" validate:"required,min=3,max=100"`
	Description string  `json:"description" validate:"omitempty,max=500"`
	Price       float64 `json:"price" validate:"required,gt=0"`
	Category    string  `json:"category" gorm:"type:varchar(50)" validate:"required,max=50"`
	IsAvailable bool    `json:"is_available"`
	UserID      string  `json:"user_id" gorm:"type:varchar(36);index"`
	gorm.Model          // Embed gorm.Model for CreatedAt, UpdatedAt, DeletedAt
}
