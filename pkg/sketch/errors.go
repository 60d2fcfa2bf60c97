package sketch

import "errors"

// ErrInvalidShape is returned when width or depth is zero.
var ErrInvalidShape = errors.New("sketch: width and depth must be greater than 0")

// ErrIncompatibleShape is returned by Merge when the two sketches do
// not share an identical (width, depth, seed).
var ErrIncompatibleShape = errors.New("sketch: incompatible shape, merge requires identical width, depth and seed")
