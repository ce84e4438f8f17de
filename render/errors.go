// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import "errors"

var (
	// ErrDisposed is returned by Prepare after Dispose.
	ErrDisposed = errors.New("render: renderer disposed")

	// ErrNilDevice is returned by New without a device.
	ErrNilDevice = errors.New("render: nil device")

	// ErrNilFonts is returned by New without a font registry.
	ErrNilFonts = errors.New("render: nil font registry")
)

// ConfigError reports an invalid Config field.
type ConfigError struct {
	Field  string
	Reason string
}

func (e *ConfigError) Error() string {
	return "render: invalid config." + e.Field + ": " + e.Reason
}
