package domain

import (
	"time"

	"github.com/google/uuid"
)

// DonationType is a named kind of accepted donation (e.g. "Alimentos").
// Same lifecycle as Category.
type DonationType struct {
	ID          uuid.UUID `json:"id" db:"id"`
	Name        string    `json:"name" db:"name"`
	Description *string   `json:"description,omitempty" db:"description"`
	CreatedAt   time.Time `json:"createdAt" db:"created_at"`
}

// CreateDonationTypeRequest is the admin payload for creating a donation type.
type CreateDonationTypeRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}
