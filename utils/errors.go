package utils

import (
	"fmt"

	"github.com/pkg/errors"
)

// ConfigurationError reports a setting that prevents a simulation run from starting
type ConfigurationError struct {
	Field  string
	Value  any
	Reason string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("invalid configuration: %s=%v: %s", e.Field, e.Value, e.Reason)
}

// NewConfigurationError builds a ConfigurationError for the given field
func NewConfigurationError(field string, value any, reason string) error {
	return &ConfigurationError{Field: field, Value: value, Reason: reason}
}

// DomainViolation reports a cell holding a value outside {Dead} ∪ {1..SpeciesCount}.
// It signals a broken contract, not a recoverable runtime condition.
type DomainViolation struct {
	Index        int
	Value        int32
	SpeciesCount int
}

func (e *DomainViolation) Error() string {
	return fmt.Sprintf("cell %d holds species %d outside domain for %d species", e.Index, e.Value, e.SpeciesCount)
}

// IsConfigurationError reports whether err (or its cause) is a ConfigurationError
func IsConfigurationError(err error) bool {
	var target *ConfigurationError
	return errors.As(errors.Cause(err), &target)
}

// IsDomainViolation reports whether err (or its cause) is a DomainViolation
func IsDomainViolation(err error) bool {
	var target *DomainViolation
	return errors.As(errors.Cause(err), &target)
}
