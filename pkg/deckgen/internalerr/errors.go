package internalerr

import "errors"

// Sentinel errors for the layers around the composition engine
var (
	ErrNotFound            = errors.New("not found")
	ErrInvalidInput        = errors.New("invalid input")
	ErrStoreUnavailable    = errors.New("store unavailable")
	ErrInvalidConfig       = errors.New("invalid configuration")
	ErrProviderUnavailable = errors.New("research provider unavailable")
)
