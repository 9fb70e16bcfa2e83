package store

import (
	"strings"

	"github.com/pkg/errors"
)

var (
	// ErrPermissionDenied marks writes rejected by an access-control policy.
	ErrPermissionDenied = errors.New("permission denied by security policy")

	// ErrCategoryRequired marks a product draft saved without a category.
	ErrCategoryRequired = errors.New("product requires a category")

	// ErrCategoryInUse marks a category delete refused because products
	// still reference it.
	ErrCategoryInUse = errors.New("category still referenced by products")

	// ErrNotFound marks an update or delete whose target row does not exist.
	ErrNotFound = errors.New("record not found")
)

// IsPermissionDenied reports whether err is an access-control rejection,
// so callers can swap the raw message for a friendlier one.
func IsPermissionDenied(err error) bool {
	return errors.Is(err, ErrPermissionDenied)
}

// classify maps driver-level policy rejections onto ErrPermissionDenied and
// passes everything else through untouched.
func classify(err error) error {
	if err == nil {
		return nil
	}
	msg := strings.ToLower(err.Error())
	if strings.Contains(msg, "row-level security") ||
		strings.Contains(msg, "permission denied") ||
		strings.Contains(msg, "insufficient privilege") {
		return errors.Wrap(ErrPermissionDenied, err.Error())
	}
	return err
}
