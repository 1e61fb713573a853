package repository

import "errors"

// ErrNotFound is returned by single-row lookups when no row has the key.
var ErrNotFound = errors.New("not found")
