package domain

import "errors"

// sentinel errors shared by storage, pipeline and server
var (
	ErrNotFound       = errors.New("not found")
	ErrDuplicateURL   = errors.New("duplicate url")
	ErrSourceInactive = errors.New("source is inactive")
)
