// Package validate provides struct validation for API request payloads.
//
// It wraps github.com/go-playground/validator/v10, reporting violations
// keyed by the field's json tag with messages safe to return to clients.
package validate
