// Package models provides domain models for the option pricing toolbox.
package models

import (
	"strings"

	"optpricer/internal/errors"
)

// OptionKind represents the exercise kind of a European vanilla option.
type OptionKind string

const (
	OptionKindCall OptionKind = "call"
	OptionKindPut  OptionKind = "put"
)

// Valid reports whether k is a recognized option kind.
func (k OptionKind) Valid() bool {
	return k == OptionKindCall || k == OptionKindPut
}

// ParseOptionKind maps user input to an OptionKind, case-insensitively.
func ParseOptionKind(s string) (OptionKind, error) {
	switch OptionKind(strings.ToLower(strings.TrimSpace(s))) {
	case OptionKindCall:
		return OptionKindCall, nil
	case OptionKindPut:
		return OptionKindPut, nil
	default:
		return "", errors.Wrapf(errors.ErrUnknownOptionKind, "parse option kind %q", s)
	}
}
