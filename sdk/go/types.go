package doafacil

import "time"

// Institution represents an institution as returned by the API
type Institution struct {
	ID              string     `json:"id"`
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

// NamedRef is an associated category or donation type
type NamedRef struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description *string `json:"description"`
}

// Category represents a category
type Category struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description *string   `json:"description"`
	CreatedAt   time.Time `json:"createdAt"`
}

// DonationType represents a donation type
type DonationType struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description *string   `json:"description"`
	CreatedAt   time.Time `json:"createdAt"`
}

// Pagination describes the window of a paginated response
type Pagination struct {
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	Total      int `json:"total"`
	TotalPages int `json:"totalPages"`
}

// InstitutionList is a page of institutions
type InstitutionList struct {
	Data       []Institution `json:"data"`
	Pagination Pagination    `json:"pagination"`
}

// CreateInstitutionRequest is the payload for registering an institution
type CreateInstitutionRequest struct {
	Name            string   `json:"name"`
	Description     string   `json:"description"`
	Address         string   `json:"address"`
	City            string   `json:"city"`
	State           string   `json:"state"`
	Phone           string   `json:"phone"`
	Email           string   `json:"email"`
	Website         string   `json:"website,omitempty"`
	CNPJ            string   `json:"cnpj"`
	ResponsibleName string   `json:"responsibleName"`
	ResponsibleCPF  string   `json:"responsibleCpf"`
	OperatingHours  string   `json:"operatingHours,omitempty"`
	AdditionalInfo  string   `json:"additionalInfo,omitempty"`
	CategoryIDs     []string `json:"categoryIds"`
	DonationTypeIDs []string `json:"donationTypeIds"`
}

// UpdateInstitutionRequest is the partial-update payload; nil fields are
// left untouched
type UpdateInstitutionRequest struct {
	Name            *string   `json:"name,omitempty"`
	Description     *string   `json:"description,omitempty"`
	Address         *string   `json:"address,omitempty"`
	City            *string   `json:"city,omitempty"`
	State           *string   `json:"state,omitempty"`
	Phone           *string   `json:"phone,omitempty"`
	Email           *string   `json:"email,omitempty"`
	Website         *string   `json:"website,omitempty"`
	CNPJ            *string   `json:"cnpj,omitempty"`
	ResponsibleName *string   `json:"responsibleName,omitempty"`
	ResponsibleCPF  *string   `json:"responsibleCpf,omitempty"`
	OperatingHours  *string   `json:"operatingHours,omitempty"`
	AdditionalInfo  *string   `json:"additionalInfo,omitempty"`
	CategoryIDs     *[]string `json:"categoryIds,omitempty"`
	DonationTypeIDs *[]string `json:"donationTypeIds,omitempty"`
}

// SearchParams are the optional filters for SearchInstitutions
type SearchParams struct {
	SearchText   string
	Category     string
	City         string
	State        string
	DonationType string
	Page         int
	Limit        int
}

// StatsOverview holds the aggregate counters
type StatsOverview struct {
	TotalInstitutions    int `json:"totalInstitutions"`
	ActiveInstitutions   int `json:"activeInstitutions"`
	VerifiedInstitutions int `json:"verifiedInstitutions"`
	TotalCategories      int `json:"totalCategories"`
	TotalDonationTypes   int `json:"totalDonationTypes"`
}

// StateCount is the number of active institutions in one state
type StateCount struct {
	State string `json:"state"`
	Count int    `json:"count"`
}

// CategoryCount is the number of active institutions linked to one category
type CategoryCount struct {
	CategoryID   string `json:"categoryId"`
	CategoryName string `json:"categoryName"`
	Count        int    `json:"count"`
}

// DonationTypeCount is the number of active institutions linked to one donation type
type DonationTypeCount struct {
	DonationTypeID   string `json:"donationTypeId"`
	DonationTypeName string `json:"donationTypeName"`
	Count            int    `json:"count"`
}

// Stats is the aggregate directory statistics response
type Stats struct {
	Overview                   StatsOverview       `json:"overview"`
	InstitutionsByState        []StateCount        `json:"institutionsByState"`
	InstitutionsByCategory     []CategoryCount     `json:"institutionsByCategory"`
	InstitutionsByDonationType []DonationTypeCount `json:"institutionsByDonationType"`
}
