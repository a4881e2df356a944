// SPDX-License-Identifier: MIT

package table

import (
	"fmt"
	"strings"
)

// Role is the semantic role a column plays during synthesis.
type Role int

const (
	// RoleUnknown marks a column that has not been classified yet.
	RoleUnknown Role = iota
	RoleContinuous
	RoleInteger
	RoleCategorical
	RoleDate
	RoleString
	RoleExcluded
	RoleIdentifier
)

var roleNames = [...]string{
	RoleUnknown:     "unknown",
	RoleContinuous:  "continuous",
	RoleInteger:     "integer",
	RoleCategorical: "categorical",
	RoleDate:        "date",
	RoleString:      "string",
	RoleExcluded:    "excluded",
	RoleIdentifier:  "identifier",
}

// String returns the lower-case role name.
func (r Role) String() string {
	if r < 0 || int(r) >= len(roleNames) {
		return fmt.Sprintf("role(%d)", int(r))
	}

	return roleNames[r]
}

// IsNumericModel reports whether values of the role are modelled as reals
// (continuous, integer and date columns).
func (r Role) IsNumericModel() bool {
	return r == RoleContinuous || r == RoleInteger || r == RoleDate
}

// IsContinuous reports whether the role is continuous or its whole-number
// sub-role, integer.
func (r Role) IsContinuous() bool {
	return r == RoleContinuous || r == RoleInteger
}

// IsDiscrete reports whether values of the role are sampled from frequency tables.
func (r Role) IsDiscrete() bool {
	return r == RoleCategorical || r == RoleString
}

// ParseRole maps a role name (case-insensitive) to a Role.
// "cat", "int", "cont" and "id" are accepted as short forms.
func ParseRole(s string) (Role, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "continuous", "cont":
		return RoleContinuous, nil
	case "integer", "int":
		return RoleInteger, nil
	case "categorical", "cat":
		return RoleCategorical, nil
	case "date":
		return RoleDate, nil
	case "string", "str":
		return RoleString, nil
	case "excluded", "exclude":
		return RoleExcluded, nil
	case "identifier", "id":
		return RoleIdentifier, nil
	}

	return RoleUnknown, fmt.Errorf("%q: %w", s, ErrUnknownRole)
}

// Kind is the physical storage of a column.
type Kind int

const (
	KindNumeric Kind = iota
	KindText
)

// String returns "numeric" or "text".
func (k Kind) String() string {
	if k == KindText {
		return "text"
	}

	return "numeric"
}
