package repository

import "errors"

// ErrEmptySourceRef is returned when a source reference is blank
var ErrEmptySourceRef = errors.New("source reference cannot be empty")
