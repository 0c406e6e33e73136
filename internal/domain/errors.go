package domain

import "errors"

var (
	ErrRecordNotFound        = errors.New("record not found")
	ErrStoreUnavailable      = errors.New("catalog store unavailable")
	ErrProviderNotConfigured = errors.New("metadata provider is not configured")
	ErrDuplicateExternalID   = errors.New("tmdb id already belongs to another movie")
	ErrInvalidRecord         = errors.New("invalid catalog record")
)
