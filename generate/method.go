// SPDX-License-Identifier: MIT

package generate

import (
	"fmt"
	"strings"
)

// Method selects a generation strategy.
type Method int

const (
	MethodParametric Method = iota + 1
	MethodEmpirical
	MethodSequential
	MethodBootstrap
	MethodPermutation
	MethodAdaptive
)

var methodNames = map[Method]string{
	MethodParametric:  "parametric",
	MethodEmpirical:   "empirical",
	MethodSequential:  "sequential",
	MethodBootstrap:   "bootstrap",
	MethodPermutation: "permutation",
	MethodAdaptive:    "adaptive",
}

// String returns the method name.
func (m Method) String() string {
	if s, ok := methodNames[m]; ok {
		return s
	}

	return fmt.Sprintf("method(%d)", int(m))
}

// ParseMethod maps a name to a Method. "smart" is an alias of "adaptive",
// "copula" of "empirical".
func ParseMethod(s string) (Method, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "parametric":
		return MethodParametric, nil
	case "empirical", "copula":
		return MethodEmpirical, nil
	case "sequential":
		return MethodSequential, nil
	case "bootstrap":
		return MethodBootstrap, nil
	case "permutation", "permute":
		return MethodPermutation, nil
	case "adaptive", "smart":
		return MethodAdaptive, nil
	}

	return 0, fmt.Errorf("%q: %w", s, ErrUnknownMethod)
}

// Methods lists every method in declaration order.
func Methods() []Method {
	return []Method{MethodParametric, MethodEmpirical, MethodSequential, MethodBootstrap, MethodPermutation, MethodAdaptive}
}
