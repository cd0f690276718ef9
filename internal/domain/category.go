package domain

import (
	"time"

	"github.com/google/uuid"
)

// Category is a named classification tag for institutions (e.g. "Crianças").
// Created by admins or the seed script; read-mostly thereafter.
type Category struct {
	ID          uuid.UUID `json:"id" db:"id"`
	Name        string    `json:"name" db:"name"`
	Description *string   `json:"description,omitempty" db:"description"`
	CreatedAt   time.Time `json:"createdAt" db:"created_at"`
}

// CreateCategoryRequest is the admin payload for creating a category.
type CreateCategoryRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}
