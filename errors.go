package aquatank

import (
	"fmt"
)

// ConfigurationError covers malformed or missing config fields and
// non-positive dimensions. It names the offending field & value so the
// operator can fix the config file.
type ConfigurationError struct {
	Field  string
	Reason string
	Value  interface{}
}

func (e *ConfigurationError) Error() string {
	if e.Value == nil {
		return fmt.Sprintf("configuration %s: %s", e.Field, e.Reason)
	}
	return fmt.Sprintf("configuration %s: %s (got %v)", e.Field, e.Reason, e.Value)
}

// GeometryError covers placements that violate the built tank geometry;
// out-of-bounds holes / shaft points / zones, degenerate shaft paths &
// directions that cannot be resolved to a pane.
type GeometryError struct {
	Op     string
	Pane   Pane
	Reason string
	Values []float64

	cause error
}

func (e *GeometryError) Error() string {
	s := fmt.Sprintf("geometry %s", e.Op)
	if e.Pane != "" {
		s += fmt.Sprintf(" [%s]", e.Pane)
	}
	s += ": " + e.Reason
	if len(e.Values) > 0 {
		s += fmt.Sprintf(" %v", e.Values)
	}
	return s
}

// Unwrap exposes a wrapped cause, if any (eg. path validation sentinels).
func (e *GeometryError) Unwrap() error {
	return e.cause
}

func newConfigError(field, reason string, value interface{}) *ConfigurationError {
	return &ConfigurationError{Field: field, Reason: reason, Value: value}
}

func newGeometryError(op string, pane Pane, reason string, values ...float64) *GeometryError {
	return &GeometryError{Op: op, Pane: pane, Reason: reason, Values: values}
}

func wrapGeometryError(op string, cause error, values ...float64) *GeometryError {
	return &GeometryError{Op: op, Reason: cause.Error(), Values: values, cause: cause}
}
