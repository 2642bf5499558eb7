package kvstore

import "errors"

var (
	// ErrStorage wraps every backend read/write failure so callers can
	// classify storage problems without knowing the backend.
	ErrStorage = errors.New("storage failure")
)
