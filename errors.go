package tracefetch

import "errors"

var (
	ErrMissingAPIKey         = errors.New("API key is required")
	ErrMissingProject        = errors.New("project is required")
	ErrConflictingTimeWindow = errors.New("last-minutes and since are mutually exclusive")
)
