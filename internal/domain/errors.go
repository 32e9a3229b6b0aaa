package domain

import "errors"

var (
	// ErrLastLayerProtected is returned when deleting the only layer of a stack.
	ErrLastLayerProtected = errors.New("cannot delete the last remaining layer")

	// ErrNoActiveLayer is returned when a draw or edit needs an active layer and there is none.
	ErrNoActiveLayer = errors.New("no active layer")

	// ErrEmptySelection is returned when an edit needs a non-empty selection or clipboard.
	ErrEmptySelection = errors.New("selection is empty")

	// ErrLayerNotFound is returned when a layer id does not resolve.
	ErrLayerNotFound = errors.New("layer not found")

	// ErrStrokeInProgress is returned for history commands raised mid-stroke.
	ErrStrokeInProgress = errors.New("stroke in progress")

	// ErrInvalidCanvas is returned for canvas settings that fail validation.
	ErrInvalidCanvas = errors.New("invalid canvas settings")

	// ErrNoCanvas is returned by commands that need a canvas before one was created.
	ErrNoCanvas = errors.New("no canvas")

	// ErrSizeMismatch is returned when a buffer is restored onto a surface of different size.
	ErrSizeMismatch = errors.New("pixel buffer size mismatch")
)

// ErrOutOfBounds is returned when a pixel-region operation exceeds the
// extents of a buffer. The operation is rejected as a whole.
type ErrOutOfBounds struct {
	Rect   Rect
	Bounds Rect
}

func (e ErrOutOfBounds) Error() string {
	return "region " + e.Rect.String() + " out of bounds " + e.Bounds.String()
}

// IsOutOfBounds checks if an error is an out of bounds error.
func IsOutOfBounds(err error) bool {
	var oob ErrOutOfBounds
	return errors.As(err, &oob)
}
