package hospital

import "errors"

var (
	// ErrDuplicateEntity is returned when a department name, patient id or
	// staff id is already present in the target collection.
	ErrDuplicateEntity = errors.New("entity already exists")

	// ErrNotFound is returned when a referenced department does not exist.
	ErrNotFound = errors.New("entity not found")
)
