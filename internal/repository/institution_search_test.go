package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/doafacil/doafacil/internal/domain"
)

func TestBuildSearchFilter_NoFilters(t *testing.T) {
	filter := buildSearchFilter(domain.SearchInstitutionsParams{Page: 1, Limit: 10})

	assert.Equal(t, "is_active = TRUE", filter.where)
	assert.Empty(t, filter.args)
	assert.Equal(t, 10, filter.limit)
	assert.Equal(t, 0, filter.offset)
}

func TestBuildSearchFilter_SearchTextSanitized(t *testing.T) {
	filter := buildSearchFilter(domain.SearchInstitutionsParams{
		SearchText: "  Criança!!!  ",
		Page:       1,
		Limit:      10,
	})

	assert.Contains(t, filter.where, "(name ILIKE $1 OR description ILIKE $1 OR city ILIKE $1)")
	assert.Equal(t, []interface{}{"%criança%"}, filter.args)
}

func TestBuildSearchFilter_EmptyAfterSanitizeSkipped(t *testing.T) {
	filter := buildSearchFilter(domain.SearchInstitutionsParams{
		SearchText: "!!!%_",
		Page:       1,
		Limit:      10,
	})

	assert.Equal(t, "is_active = TRUE", filter.where)
	assert.Empty(t, filter.args)
}

func TestBuildSearchFilter_AllFilters(t *testing.T) {
	filter := buildSearchFilter(domain.SearchInstitutionsParams{
		SearchText:       "criança",
		CityName:         "Curitiba",
		StateName:        "pr",
		CategoryName:     "Animais",
		DonationTypeName: "Ração",
		Page:             3,
		Limit:            20,
	})

	assert.Contains(t, filter.where, "is_active = TRUE")
	assert.Contains(t, filter.where, "(name ILIKE $1 OR description ILIKE $1 OR city ILIKE $1)")
	assert.Contains(t, filter.where, "city ILIKE $2")
	assert.Contains(t, filter.where, "state = $3")
	assert.Contains(t, filter.where, "c.name = $4")
	assert.Contains(t, filter.where, "dt.name = $5")
	assert.Equal(t, []interface{}{"%criança%", "%Curitiba%", "PR", "Animais", "Ração"}, filter.args)
	assert.Equal(t, 20, filter.limit)
	assert.Equal(t, 40, filter.offset)
}

func TestBuildSearchFilter_ConditionsJoinedWithAND(t *testing.T) {
	filter := buildSearchFilter(domain.SearchInstitutionsParams{
		CityName:  "Recife",
		StateName: "PE",
		Page:      1,
		Limit:     10,
	})

	assert.Equal(t, "is_active = TRUE AND city ILIKE $1 AND state = $2", filter.where)
	assert.Equal(t, []interface{}{"%Recife%", "PE"}, filter.args)
}
