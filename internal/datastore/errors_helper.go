package datastore

import (
	"github.com/koreality/koreality-go/internal/errors"
	"gorm.io/gorm"
)

// newDatabaseError wraps a gorm error with datastore context.
func newDatabaseError(err error, operation, detail string) error {
	return errors.Wrap(err).
		Component("datastore").
		Category(errors.CategoryDatabase).
		Context("operation", operation).
		Context("detail", detail).
		Build()
}

// newNotFoundError builds a not-found error for a missing record.
func newNotFoundError(entity, id string) error {
	return errors.Newf("%s not found: %s", entity, id).
		Component("datastore").
		Category(errors.CategoryNotFound).
		Context("entity", entity).
		Context("id", id).
		Build()
}

// isRecordNotFound reports whether err is gorm's missing-record sentinel.
func isRecordNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}
