package trigger

import "errors"

// ErrNotFound indicates that the given trigger word is not configured.
var ErrNotFound = errors.New("trigger not found")

// ErrEmpty indicates that no trigger is configured.
var ErrEmpty = errors.New("no triggers configured")
