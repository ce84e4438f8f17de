package native

import "errors"

// Package errors for the native device.
var (
	// ErrNilDevice is returned when no HAL device or queue is given.
	ErrNilDevice = errors.New("native: nil hal device or queue")

	// ErrNoHALProvider is returned when a device provider does not expose
	// HAL objects.
	ErrNoHALProvider = errors.New("native: provider does not expose hal device")

	// ErrDestroyed is returned by resource creation after Destroy.
	ErrDestroyed = errors.New("native: device destroyed")
)
