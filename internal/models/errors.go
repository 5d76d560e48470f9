package models

import "errors"

// ErrNotFound is returned when an entity lookup by external id fails.
// Operation boundaries convert it to a user-facing error message.
var ErrNotFound = errors.New("not found")
