// Package validation provides input validation utilities for streamkit.
//
// It supports both struct tag validation (using the validator library) and
// programmatic validation with error collection. Struct tag validation is
// recommended for configuration structs.
//
// # Struct Tag Validation
//
//	type SampleConfig struct {
//	    Period time.Duration `validate:"required,min=1ms"`
//	}
//	err := validation.Validate(cfg)
//
// # Programmatic Validation
//
//	v := validation.New()
//	v.Required("command", cmd).Min("max_attempts", attempts, 1)
//	err := v.Validate()
package validation
