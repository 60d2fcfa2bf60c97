package topk

import "errors"

// ErrInvalidShape is returned when k is zero or negative, or when a
// nil sketch is supplied.
var ErrInvalidShape = errors.New("topk: k must be greater than 0 and sketch must not be nil")
