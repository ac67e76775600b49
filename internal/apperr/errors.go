package apperr

import "errors"

var (
	ErrNotFound       = errors.New("not found")
	ErrDocsDirMissing = errors.New("docs directory not found")
)
