package services

import "errors"

var (
	// ErrDataFormat flags provider data the feed cannot safely work with,
	// like a non-numeric amount. Fatal for the whole request: skipping a
	// row would corrupt every balance reconstructed after it.
	ErrDataFormat = errors.New("malformed provider data")

	// ErrModelUnavailable means the category model could not be loaded.
	// Callers get the error rather than a silently defaulted category.
	ErrModelUnavailable = errors.New("category model unavailable")
)
