// SPDX-License-Identifier: MIT

package diagnostics

import "errors"

// ErrNilTable is returned when either table is nil.
var ErrNilTable = errors.New("diagnostics: nil table")
