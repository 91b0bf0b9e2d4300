package domain

import "errors"

// Sentinel errors shared across services and repositories. Postgres
// repositories translate driver errors into these so the business layer
// never has to know about gorm.
var (
	// ErrNotFound - the referenced entity does not exist.
	ErrNotFound = errors.New("record not found")

	// ErrDuplicateEntry - a unique index rejected an insert. For bag and
	// wishlist writes this is an expected race outcome, not a failure;
	// services must reconcile instead of returning it to the caller.
	ErrDuplicateEntry = errors.New("duplicate entry")

	// ErrEmptyBag - order placement requested with no bag items.
	ErrEmptyBag = errors.New("no item in the bag")
)
