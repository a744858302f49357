// Package compat checks that a template supports the running CLI version.
package compat

import (
	"errors"
	"fmt"
	"strings"

	"github.com/Masterminds/semver/v3"
)

// ErrIncompatible marks a template whose requires constraint excludes
// the running CLI.
var ErrIncompatible = errors.New("template is incompatible with this CLI version")

// DevVersion is the version reported by unreleased builds. It satisfies
// every constraint.
const DevVersion = "dev"

// ParseConstraint validates a requires expression such as ">= 0.3, < 2".
func ParseConstraint(s string) (*semver.Constraints, error) {
	c, err := semver.NewConstraint(s)
	if err != nil {
		return nil, fmt.Errorf("parsing version constraint %q: %w", s, err)
	}
	return c, nil
}

// Check reports whether cliVersion satisfies constraint. An empty
// constraint or a development build always passes.
func Check(cliVersion, constraint string) error {
	if strings.TrimSpace(constraint) == "" || cliVersion == DevVersion || cliVersion == "" {
		return nil
	}
	c, err := ParseConstraint(constraint)
	if err != nil {
		return err
	}
	v, err := semver.NewVersion(strings.TrimPrefix(cliVersion, "v"))
	if err != nil {
		return fmt.Errorf("parsing CLI version %q: %w", cliVersion, err)
	}
	if !c.Check(v) {
		return fmt.Errorf("%w: requires %s, running %s", ErrIncompatible, constraint, v)
	}
	return nil
}
