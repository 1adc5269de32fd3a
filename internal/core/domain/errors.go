package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrAlreadyExists indicates an entity already exists.
	// Relationship copies that collide with a uniqueness key return this.
	ErrAlreadyExists = errors.New("already exists")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrNotImplemented indicates a service was built without a required store.
	ErrNotImplemented = errors.New("not implemented")

	// ErrUnsupportedFormat indicates an import file no row source can parse.
	ErrUnsupportedFormat = errors.New("unsupported file format")

	// ErrUnknownRecordKind indicates a record kind with no declared field table.
	ErrUnknownRecordKind = errors.New("unknown record kind")

	// ErrMissingSchema indicates a cleaner or mapper was built without a schema.
	ErrMissingSchema = errors.New("schema is required")

	// ErrUnknownCorrespondence indicates a reconcile mapping name that is not registered.
	ErrUnknownCorrespondence = errors.New("unknown correspondence")

	// ErrInvalidPriority indicates a merge priority other than Favor New / Favor Existing.
	ErrInvalidPriority = errors.New("invalid merge priority")
)
