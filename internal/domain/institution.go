package domain

import (
	"time"

	"github.com/google/uuid"
)

// Institution represents a donation recipient as stored.
type Institution struct {
	ID              uuid.UUID `json:"id" db:"id"`
	Name            string    `json:"name" db:"name"`
	Description     string    `json:"description" db:"description"`
	Address         string    `json:"address" db:"address"`
	City            string    `json:"city" db:"city"`
	State           string    `json:"state" db:"state"`
	Phone           string    `json:"phone" db:"phone"`
	Email           string    `json:"email" db:"email"`
	Website         *string   `json:"website,omitempty" db:"website"`
	CNPJ            string    `json:"cnpj" db:"cnpj"`
	ResponsibleName string    `json:"responsibleName" db:"responsible_name"`
	ResponsibleCPF  string    `json:"responsibleCpf" db:"responsible_cpf"`
	OperatingHours  *string   `json:"operatingHours,omitempty" db:"operating_hours"`
	AdditionalInfo  *string   `json:"additionalInfo,omitempty" db:"additional_info"`
	IsActive        bool      `json:"isActive" db:"is_active"`
	IsVerified      bool      `json:"isVerified" db:"is_verified"`
	CreatedAt       time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt       time.Time `json:"updatedAt" db:"updated_at"`
}

// PublicInstitution is the response shape for an institution together with
// its associated categories and donation types. Join-table rows are
// flattened; their identifiers are never exposed.
type PublicInstitution struct {
	ID              uuid.UUID  `json:"id"`
	Name            string     `json:"name"`
	Description     string     `json:"description"`
	Address         string     `json:"address"`
	City            string     `json:"city"`
	State           string     `json:"state"`
	Phone           string     `json:"phone"`
	Email           string     `json:"email"`
	Website         *string    `json:"website"`
	CNPJ            string     `json:"cnpj"`
	ResponsibleName string     `json:"responsibleName"`
	ResponsibleCPF  string     `json:"responsibleCpf"`
	OperatingHours  *string    `json:"operatingHours"`
	AdditionalInfo  *string    `json:"additionalInfo"`
	IsActive        bool       `json:"isActive"`
	IsVerified      bool       `json:"isVerified"`
	CreatedAt       time.Time  `json:"createdAt"`
	UpdatedAt       time.Time  `json:"updatedAt"`
	Categories      []NamedRef `json:"categories"`
	DonationTypes   []NamedRef `json:"donationTypes"`
}

// NamedRef is the flattened projection of an associated category or
// donation type.
type NamedRef struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description *string   `json:"description"`
}

// FormatInstitution projects a stored institution and its associations into
// the public response shape. Pure; scalar fields pass through unchanged.
func FormatInstitution(inst *Institution, categories, donationTypes []NamedRef) *PublicInstitution {
	if categories == nil {
		categories = []NamedRef{}
	}
	if donationTypes == nil {
		donationTypes = []NamedRef{}
	}
	return &PublicInstitution{
		ID:              inst.ID,
		Name:            inst.Name,
		Description:     inst.Description,
		Address:         inst.Address,
		City:            inst.City,
		State:           inst.State,
		Phone:           inst.Phone,
		Email:           inst.Email,
		Website:         inst.Website,
		CNPJ:            inst.CNPJ,
		ResponsibleName: inst.ResponsibleName,
		ResponsibleCPF:  inst.ResponsibleCPF,
		OperatingHours:  inst.OperatingHours,
		AdditionalInfo:  inst.AdditionalInfo,
		IsActive:        inst.IsActive,
		IsVerified:      inst.IsVerified,
		CreatedAt:       inst.CreatedAt,
		UpdatedAt:       inst.UpdatedAt,
		Categories:      categories,
		DonationTypes:   donationTypes,
	}
}

// CreateInstitutionRequest is the intake payload for registering an
// institution.
type CreateInstitutionRequest struct {
	Name            string   `json:"name"`
	Description     string   `json:"description"`
	Address         string   `json:"address"`
	City            string   `json:"city"`
	State           string   `json:"state"`
	Phone           string   `json:"phone"`
	Email           string   `json:"email"`
	Website         string   `json:"website"`
	CNPJ            string   `json:"cnpj"`
	ResponsibleName string   `json:"responsibleName"`
	ResponsibleCPF  string   `json:"responsibleCpf"`
	OperatingHours  string   `json:"operatingHours"`
	AdditionalInfo  string   `json:"additionalInfo"`
	CategoryIDs     []string `json:"categoryIds"`
	DonationTypeIDs []string `json:"donationTypeIds"`
}

// UpdateInstitutionRequest is the partial-update payload. Nil fields are
// left untouched; a non-nil CategoryIDs/DonationTypeIDs replaces the entire
// association set.
type UpdateInstitutionRequest struct {
	Name            *string   `json:"name"`
	Description     *string   `json:"description"`
	Address         *string   `json:"address"`
	City            *string   `json:"city"`
	State           *string   `json:"state"`
	Phone           *string   `json:"phone"`
	Email           *string   `json:"email"`
	Website         *string   `json:"website"`
	CNPJ            *string   `json:"cnpj"`
	ResponsibleName *string   `json:"responsibleName"`
	ResponsibleCPF  *string   `json:"responsibleCpf"`
	OperatingHours  *string   `json:"operatingHours"`
	AdditionalInfo  *string   `json:"additionalInfo"`
	CategoryIDs     *[]string `json:"categoryIds"`
	DonationTypeIDs *[]string `json:"donationTypeIds"`
}

// SearchInstitutionsParams are the validated query parameters for the
// listing endpoint. Zero-value strings mean "no filter".
type SearchInstitutionsParams struct {
	SearchText       string
	CategoryName     string
	CityName         string
	StateName        string
	DonationTypeName string
	Page             int
	Limit            int
}

// Pagination describes the window of a paginated response.
type Pagination struct {
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	Total      int `json:"total"`
	TotalPages int `json:"totalPages"`
}

// PaginatedInstitutions is the listing response body.
type PaginatedInstitutions struct {
	Data       []*PublicInstitution `json:"data"`
	Pagination Pagination           `json:"pagination"`
}

// NewPagination computes pagination metadata; totalPages = ceil(total/limit).
func NewPagination(page, limit, total int) Pagination {
	totalPages := 0
	if limit > 0 {
		totalPages = (total + limit - 1) / limit
	}
	return Pagination{Page: page, Limit: limit, Total: total, TotalPages: totalPages}
}
