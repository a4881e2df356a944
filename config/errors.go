// SPDX-License-Identifier: MIT

package config

import "errors"

var (
	// ErrRead indicates the file or the environment could not be read.
	ErrRead = errors.New("config: cannot read")

	// ErrInvalid indicates a value that does not translate to a synth.Config.
	ErrInvalid = errors.New("config: invalid value")
)
