package apperr

import "github.com/tuanvumaihuynh/catalog-sync/pkg/zerror"

const (
	ValidationErrorCode = "VALIDATION_FAILED"
)

var (
	ValidationErr = zerror.NewValidationFailed(ValidationErrorCode, "validation error")

	// ProductNotFoundErr is returned for lookups and deletes on an id that has
	// never been seen, active or soft-deleted.
	ProductNotFoundErr = zerror.NewNotFound("PRODUCT_NOT_FOUND", "product not found")

	// ProductAlreadyExistsErr surfaces a primary-key conflict on insert. The
	// reconciler pre-checks existence, so hitting this means two passes raced;
	// the constraint, not the pre-check, is the source of truth.
	ProductAlreadyExistsErr = zerror.NewConflict("PRODUCT_ALREADY_EXISTS", "product already exists")

	// FeedUnavailableErr covers transport and HTTP-status failures reaching
	// the content source. The whole sync batch is aborted.
	FeedUnavailableErr = zerror.NewBadGateway("FEED_UNAVAILABLE", "content feed unavailable")

	// FeedMalformedErr covers payloads that decode but lack the expected
	// entry-list shape. The whole sync batch is aborted.
	FeedMalformedErr = zerror.NewUnprocessableEntity("FEED_MALFORMED", "content feed payload malformed")

	// StorageErr wraps unexpected persistence failures on reads and reports.
	StorageErr = zerror.NewInternalServerError("STORAGE_ERROR", "storage error")

	InvalidPageErr      = zerror.NewBadRequest("INVALID_PAGE", "page must be 1 or greater")
	InvalidLimitErr     = zerror.NewBadRequest("INVALID_LIMIT", "limit must be 1 or greater")
	PageSizeExceededErr = zerror.NewBadRequest("PAGE_SIZE_EXCEEDED", "limit exceeds the maximum page size")
)
