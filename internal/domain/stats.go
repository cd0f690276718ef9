package domain

import "github.com/google/uuid"

// StatsOverview holds the aggregate counters.
type StatsOverview struct {
	TotalInstitutions    int `json:"totalInstitutions"`
	ActiveInstitutions   int `json:"activeInstitutions"`
	VerifiedInstitutions int `json:"verifiedInstitutions"`
	TotalCategories      int `json:"totalCategories"`
	TotalDonationTypes   int `json:"totalDonationTypes"`
}

// StateCount is the number of active institutions in one state.
type StateCount struct {
	State string `json:"state"`
	Count int    `json:"count"`
}

// CategoryCount is the number of active institutions linked to one category.
type CategoryCount struct {
	CategoryID   uuid.UUID `json:"categoryId"`
	CategoryName string    `json:"categoryName"`
	Count        int       `json:"count"`
}

// DonationTypeCount is the number of active institutions linked to one
// donation type.
type DonationTypeCount struct {
	DonationTypeID   uuid.UUID `json:"donationTypeId"`
	DonationTypeName string    `json:"donationTypeName"`
	Count            int       `json:"count"`
}

// Stats is the full aggregate response. Breakdowns cover active
// institutions only, ordered by descending count.
type Stats struct {
	Overview                   StatsOverview       `json:"overview"`
	InstitutionsByState        []StateCount        `json:"institutionsByState"`
	InstitutionsByCategory     []CategoryCount     `json:"institutionsByCategory"`
	InstitutionsByDonationType []DonationTypeCount `json:"institutionsByDonationType"`
}
