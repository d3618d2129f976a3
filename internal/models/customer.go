package models

import "github.com/google/uuid"

type Customer struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name     string    `gorm:"not null;index" json:"name"`
	Email    string    `gorm:"not null" json:"email"`
	ImageURL string    `json:"image_url"`
}

// CustomerOption is the slim shape used by invoice forms.
type CustomerOption struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}
