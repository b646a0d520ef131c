package stringart

import "errors"

var (
	// ErrInvalidConfig is returned when a Config fails validation.
	ErrInvalidConfig = errors.New("stringart: invalid config")

	// ErrInvalidTarget is returned for empty or malformed target images.
	ErrInvalidTarget = errors.New("stringart: invalid target image")

	// ErrPinOutOfRange is returned when a pin index is outside [0, PinCount).
	ErrPinOutOfRange = errors.New("stringart: pin index out of range")

	// ErrClosed is returned when a closed Engine is asked to run.
	ErrClosed = errors.New("stringart: engine closed")
)
