// Package semverutil parses versions and approval constraints.
//
// This is a thin wrapper around github.com/Masterminds/semver/v3.
package semverutil

import (
	"fmt"

	mm "github.com/Masterminds/semver/v3"
)

// Satisfies reports whether version satisfies constraint. Constraint syntax
// follows Masterminds semver, e.g. ">=11 <22", "^1.0.0", "~8.0".
func Satisfies(version, constraint string) (bool, error) {
	v, err := mm.NewVersion(version)
	if err != nil {
		return false, fmt.Errorf("semverutil: parse version %q: %w", version, err)
	}
	c, err := mm.NewConstraint(constraint)
	if err != nil {
		return false, fmt.Errorf("semverutil: parse constraint %q: %w", constraint, err)
	}
	return c.Check(v), nil
}

// ValidConstraint reports whether raw parses as a constraint expression.
func ValidConstraint(raw string) bool {
	_, err := mm.NewConstraint(raw)
	return err == nil
}
