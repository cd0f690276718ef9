package repository

import (
	"fmt"
	"strings"

	"github.com/doafacil/doafacil/internal/domain"
	"github.com/doafacil/doafacil/internal/validation"
)

// searchFilter is the translated form of validated search parameters: a SQL
// predicate over institutions plus a pagination window.
type searchFilter struct {
	where  string
	args   []interface{}
	limit  int
	offset int
}

// buildSearchFilter translates search parameters into a filter. All present
// filters combine with AND; only active institutions are eligible. Free
// text is sanitized and matched case-insensitively against name,
// description or city.
func buildSearchFilter(params domain.SearchInstitutionsParams) searchFilter {
	conditions := []string{"is_active = TRUE"}
	args := []interface{}{}

	next := func() string {
		return fmt.Sprintf("$%d", len(args))
	}

	if sanitized := validation.SanitizeSearchText(params.SearchText); sanitized != "" {
		args = append(args, "%"+sanitized+"%")
		p := next()
		conditions = append(conditions,
			fmt.Sprintf("(name ILIKE %s OR description ILIKE %s OR city ILIKE %s)", p, p, p))
	}

	if params.CityName != "" {
		args = append(args, "%"+params.CityName+"%")
		conditions = append(conditions, fmt.Sprintf("city ILIKE %s", next()))
	}

	if params.StateName != "" {
		args = append(args, strings.ToUpper(params.StateName))
		conditions = append(conditions, fmt.Sprintf("state = %s", next()))
	}

	if params.CategoryName != "" {
		args = append(args, params.CategoryName)
		conditions = append(conditions, fmt.Sprintf(
			`EXISTS (
				SELECT 1 FROM institution_categories ic
				JOIN categories c ON c.id = ic.category_id
				WHERE ic.institution_id = institutions.id AND c.name = %s
			)`, next()))
	}

	if params.DonationTypeName != "" {
		args = append(args, params.DonationTypeName)
		conditions = append(conditions, fmt.Sprintf(
			`EXISTS (
				SELECT 1 FROM institution_donation_types idt
				JOIN donation_types dt ON dt.id = idt.donation_type_id
				WHERE idt.institution_id = institutions.id AND dt.name = %s
			)`, next()))
	}

	return searchFilter{
		where:  strings.Join(conditions, " AND "),
		args:   args,
		limit:  params.Limit,
		offset: (params.Page - 1) * params.Limit,
	}
}
