package store

import "errors"

// ErrNotFound indicates that no feedback record has the requested id.
var ErrNotFound = errors.New("resource not found")
