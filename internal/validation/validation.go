// Package validation holds the request schemas for the public API: field
// level checks with per-field error messages, plus the search text
// sanitizer. Handlers validate before touching persistence.
package validation

import (
	"net/mail"
	"net/url"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/doafacil/doafacil/internal/domain"
	"github.com/doafacil/doafacil/pkg/brdoc"
)

const (
	// MaxPageSize is the hard cap for the listing page size; larger
	// requested limits are silently clamped.
	MaxPageSize = 100

	// DefaultPageSize applies when the listing request omits limit.
	DefaultPageSize = 10
)

var (
	phonePattern = regexp.MustCompile(`^\(\d{2}\) \d{4,5}-\d{4}$`)
	statePattern = regexp.MustCompile(`^[A-Z]{2}$`)
)

// Errors maps field names to validation messages. A nil or empty map means
// the input passed.
type Errors map[string]string

// Add records a message for a field, keeping the first message per field.
func (e Errors) Add(field, message string) {
	if _, exists := e[field]; !exists {
		e[field] = message
	}
}

// Empty reports whether no field failed.
func (e Errors) Empty() bool {
	return len(e) == 0
}

// Error renders the field messages deterministically, for logging.
func (e Errors) Error() string {
	fields := make([]string, 0, len(e))
	for f := range e {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	parts := make([]string, 0, len(fields))
	for _, f := range fields {
		parts = append(parts, f+": "+e[f])
	}
	return strings.Join(parts, "; ")
}

// SanitizeSearchText normalizes free-text search input: trims, strips every
// rune that is not a letter, digit or whitespace, collapses whitespace runs
// to a single space, and lowercases. Idempotent.
func SanitizeSearchText(text string) string {
	var b strings.Builder
	b.Grow(len(text))
	lastSpace := false
	for _, r := range strings.TrimSpace(text) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(unicode.ToLower(r))
			lastSpace = false
		case unicode.IsSpace(r):
			if !lastSpace {
				b.WriteRune(' ')
				lastSpace = true
			}
		}
	}
	return strings.TrimRight(b.String(), " ")
}

// ValidateCreateInstitution checks the full intake schema.
func ValidateCreateInstitution(req *domain.CreateInstitutionRequest) Errors {
	errs := Errors{}

	checkLength(errs, "name", req.Name, 2, 255)
	if utf8.RuneCountInString(strings.TrimSpace(req.Description)) < 10 {
		errs.Add("description", "description must be at least 10 characters")
	}
	checkLength(errs, "address", req.Address, 5, 500)
	checkLength(errs, "city", req.City, 2, 100)
	checkState(errs, req.State)
	checkPhone(errs, req.Phone)
	checkEmail(errs, req.Email)
	if req.Website != "" {
		checkWebsite(errs, req.Website)
	}
	checkCNPJ(errs, req.CNPJ)
	checkLength(errs, "responsibleName", req.ResponsibleName, 2, 255)
	checkCPF(errs, "responsibleCpf", req.ResponsibleCPF)
	checkMaxLength(errs, "operatingHours", req.OperatingHours, 100)
	checkMaxLength(errs, "additionalInfo", req.AdditionalInfo, 1000)
	checkIDList(errs, "categoryIds", req.CategoryIDs)
	checkIDList(errs, "donationTypeIds", req.DonationTypeIDs)

	return errs
}

// ValidateUpdateInstitution checks only the supplied fields of a partial
// update.
func ValidateUpdateInstitution(req *domain.UpdateInstitutionRequest) Errors {
	errs := Errors{}

	if req.Name != nil {
		checkLength(errs, "name", *req.Name, 2, 255)
	}
	if req.Description != nil && utf8.RuneCountInString(strings.TrimSpace(*req.Description)) < 10 {
		errs.Add("description", "description must be at least 10 characters")
	}
	if req.Address != nil {
		checkLength(errs, "address", *req.Address, 5, 500)
	}
	if req.City != nil {
		checkLength(errs, "city", *req.City, 2, 100)
	}
	if req.State != nil {
		checkState(errs, *req.State)
	}
	if req.Phone != nil {
		checkPhone(errs, *req.Phone)
	}
	if req.Email != nil {
		checkEmail(errs, *req.Email)
	}
	if req.Website != nil && *req.Website != "" {
		checkWebsite(errs, *req.Website)
	}
	if req.CNPJ != nil {
		checkCNPJ(errs, *req.CNPJ)
	}
	if req.ResponsibleName != nil {
		checkLength(errs, "responsibleName", *req.ResponsibleName, 2, 255)
	}
	if req.ResponsibleCPF != nil {
		checkCPF(errs, "responsibleCpf", *req.ResponsibleCPF)
	}
	if req.OperatingHours != nil {
		checkMaxLength(errs, "operatingHours", *req.OperatingHours, 100)
	}
	if req.AdditionalInfo != nil {
		checkMaxLength(errs, "additionalInfo", *req.AdditionalInfo, 1000)
	}
	if req.CategoryIDs != nil {
		checkIDList(errs, "categoryIds", *req.CategoryIDs)
	}
	if req.DonationTypeIDs != nil {
		checkIDList(errs, "donationTypeIds", *req.DonationTypeIDs)
	}

	return errs
}

// ParseSearchParams validates the listing query string and applies the
// defaults (page=1, limit=10). A limit above MaxPageSize is clamped, not
// rejected; state input is upper-cased for the exact match downstream.
func ParseSearchParams(query url.Values) (domain.SearchInstitutionsParams, Errors) {
	errs := Errors{}
	params := domain.SearchInstitutionsParams{
		SearchText:       strings.TrimSpace(query.Get("searchText")),
		CategoryName:     strings.TrimSpace(query.Get("categoryName")),
		CityName:         strings.TrimSpace(query.Get("cityName")),
		StateName:        strings.ToUpper(strings.TrimSpace(query.Get("stateName"))),
		DonationTypeName: strings.TrimSpace(query.Get("donationTypeName")),
		Page:             1,
		Limit:            DefaultPageSize,
	}

	if raw := query.Get("page"); raw != "" {
		page, err := strconv.Atoi(raw)
		if err != nil || page < 1 {
			errs.Add("page", "page must be a number greater than 0")
		} else {
			params.Page = page
		}
	}

	if raw := query.Get("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		switch {
		case err != nil || limit < 1:
			errs.Add("limit", "limit must be a number greater than 0")
		case limit > MaxPageSize:
			params.Limit = MaxPageSize
		default:
			params.Limit = limit
		}
	}

	if params.StateName != "" && !statePattern.MatchString(params.StateName) {
		errs.Add("stateName", "state must be a 2-letter code")
	}

	return params, errs
}

// ValidateNamedResource checks the shared category / donation type creation
// schema.
func ValidateNamedResource(name, description string) Errors {
	errs := Errors{}
	checkLength(errs, "name", name, 2, 100)
	checkMaxLength(errs, "description", description, 500)
	return errs
}

// ValidateLogin checks the admin login payload.
func ValidateLogin(req *domain.LoginRequest) Errors {
	errs := Errors{}
	checkEmail(errs, req.Email)
	if req.Password == "" {
		errs.Add("password", "password is required")
	}
	return errs
}

// Length bounds count runes, not bytes.
func checkLength(errs Errors, field, value string, min, max int) {
	length := utf8.RuneCountInString(strings.TrimSpace(value))
	if length < min {
		errs.Add(field, field+" must be at least "+strconv.Itoa(min)+" characters")
		return
	}
	if length > max {
		errs.Add(field, field+" must be at most "+strconv.Itoa(max)+" characters")
	}
}

func checkMaxLength(errs Errors, field, value string, max int) {
	if utf8.RuneCountInString(value) > max {
		errs.Add(field, field+" must be at most "+strconv.Itoa(max)+" characters")
	}
}

func checkState(errs Errors, state string) {
	if !statePattern.MatchString(state) {
		errs.Add("state", "state must be a 2-letter uppercase code")
	}
}

func checkPhone(errs Errors, phone string) {
	if !phonePattern.MatchString(phone) {
		errs.Add("phone", "phone must be in the format (XX) XXXX-XXXX or (XX) XXXXX-XXXX")
	}
}

func checkEmail(errs Errors, email string) {
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		errs.Add("email", "email is invalid")
	}
}

func checkWebsite(errs Errors, website string) {
	u, err := url.Parse(website)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		errs.Add("website", "website must be a valid URL")
	}
}

func checkCNPJ(errs Errors, cnpj string) {
	if !brdoc.ValidateCNPJ(cnpj) {
		errs.Add("cnpj", "cnpj must be valid and in the format XX.XXX.XXX/XXXX-XX")
	}
}

func checkCPF(errs Errors, field, cpf string) {
	if !brdoc.ValidateCPF(cpf) {
		errs.Add(field, field+" must be valid and in the format XXX.XXX.XXX-XX")
	}
}

func checkIDList(errs Errors, field string, ids []string) {
	if len(ids) == 0 {
		errs.Add(field, "select at least one "+strings.TrimSuffix(field, "Ids"))
		return
	}
	for _, id := range ids {
		if _, err := uuid.Parse(id); err != nil {
			errs.Add(field, field+" contains an invalid id")
			return
		}
	}
}
