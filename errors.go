package heavyhitters

import (
	"errors"
	"fmt"

	"github.com/samber/heavyhitters/pkg/sketch"
	"github.com/samber/heavyhitters/pkg/topk"
)

// ErrInvalidShape is returned by Build when k, width, or depth is zero
// or negative, or when an (epsilon, delta) pair falls outside (0, 1).
var ErrInvalidShape = errors.New("heavyhitters: invalid tracker shape")

// ErrIncompatibleShape is returned by operations that merge two
// sketches built with different width, depth, or seed.
var ErrIncompatibleShape = sketch.ErrIncompatibleShape

func wrapShapeError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sketch.ErrInvalidShape) || errors.Is(err, topk.ErrInvalidShape) {
		return fmt.Errorf("%w: %v", ErrInvalidShape, err)
	}
	return err
}
