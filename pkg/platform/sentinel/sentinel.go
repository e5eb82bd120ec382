package sentinel

import "errors"

// Sentinel errors for infrastructure facts. Config loading and file readers
// return these (optionally wrapped) so callers can branch with errors.Is:
// - ErrNotFound: a referenced file or resource does not exist
// - ErrInvalidConfig: an environment setting cannot be interpreted
//
// For validation errors (bad input, missing fields), use pkg/domain-errors directly.
var (
	ErrNotFound      = errors.New("not found")
	ErrInvalidConfig = errors.New("invalid config")
)
