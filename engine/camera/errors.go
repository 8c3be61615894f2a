package camera

import "errors"

var (
	// ErrInvalidView is returned when a view update would make the view basis singular:
	// position and target coincide, the up vector is zero, or the view direction is parallel to up.
	ErrInvalidView = errors.New("camera: invalid view")

	// ErrInvalidProjection is returned when projection parameters are non-positive or non-finite.
	ErrInvalidProjection = errors.New("camera: invalid projection")

	// ErrInvalidZoomRange is returned when a zoom is requested with minimum > maximum.
	ErrInvalidZoomRange = errors.New("camera: invalid zoom range")
)
