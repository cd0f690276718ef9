package service

import (
	"errors"

	"github.com/lib/pq"
)

var (
	// ErrNotFound is returned when a resource is not found
	ErrNotFound = errors.New("resource not found")

	// ErrCNPJAlreadyRegistered is returned when an institution with the same CNPJ exists
	ErrCNPJAlreadyRegistered = errors.New("cnpj already registered")

	// ErrNameAlreadyExists is returned on a duplicate category or donation type name
	ErrNameAlreadyExists = errors.New("name already exists")

	// ErrUnknownCategory is returned when a supplied category id does not resolve
	ErrUnknownCategory = errors.New("one or more categories were not found")

	// ErrUnknownDonationType is returned when a supplied donation type id does not resolve
	ErrUnknownDonationType = errors.New("one or more donation types were not found")

	// ErrInvalidCredentials is returned when authentication fails
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// isUniqueViolation reports whether err is a PostgreSQL unique constraint
// rejection. The constraint is the authority for duplicate detection under
// concurrent load; callers translate it into the matching conflict error
// instead of a 500.
func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23505"
}
