package install

import (
	"fmt"

	"golang.org/x/exp/slices"
)

// A Warning records one recoverable validation finding, typically a default
// being substituted for a missing optional field.
type Warning struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (w Warning) String() string {
	if w.Field == "" {
		return w.Message
	}
	return fmt.Sprintf("%s: %s", w.Field, w.Message)
}

// Diagnostics collects validation warnings. Callers decide how to surface
// them; validation itself never writes to any stream.
type Diagnostics struct {
	warnings []Warning
}

// Warnf records a warning against a blueprint field.
func (d *Diagnostics) Warnf(field, format string, args ...interface{}) {
	d.warnings = append(d.warnings, Warning{
		Field:   field,
		Message: fmt.Sprintf(format, args...),
	})
}

// Warnings returns all warnings recorded so far.
func (d *Diagnostics) Warnings() []Warning {
	return slices.Clone(d.warnings)
}
