package config

import (
	"fmt"

	"go.uber.org/multierr"
)

// Configuration error codes (E200-E299).
const (
	ErrDuplicateAbbreviation = "E201" // two canonical properties share an abbreviation
	ErrNoBreakpoints         = "E202" // breakpoint registry is empty
	ErrNameClaimedTwice      = "E203" // name or alias claimed by two properties
	ErrEmptyProperty         = "E204" // property without name or abbreviation
	ErrConditionCollision    = "E205" // condition key clashes with base, a breakpoint or a property
	ErrInvalidSeparator      = "E206" // separator empty or containing whitespace
	ErrEmptyPrefix           = "E207" // condition renders an empty prefix
	ErrLoadFailed            = "E210" // preset file unreadable or undecodable
)

// ConfigError reports a single problem with a preset.
// NewTables returns every ConfigError it finds combined with multierr.
type ConfigError struct {
	Code    string `json:"code"`
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Error implements the error interface.
func (e *ConfigError) Error() string {
	return fmt.Sprintf("[%s] %s: %s", e.Code, e.Field, e.Message)
}

// Errors splits a combined configuration error into its ConfigErrors.
// Errors that are not ConfigErrors are wrapped with ErrLoadFailed.
func Errors(err error) []*ConfigError {
	if err == nil {
		return nil
	}
	var out []*ConfigError
	for _, e := range multierr.Errors(err) {
		if ce, ok := e.(*ConfigError); ok {
			out = append(out, ce)
			continue
		}
		out = append(out, &ConfigError{Code: ErrLoadFailed, Field: "preset", Message: e.Error()})
	}
	return out
}
