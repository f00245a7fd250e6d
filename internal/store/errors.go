package store

import "errors"

// ErrNotFound indicates that a requested record was not found.
var ErrNotFound = errors.New("record not found")
