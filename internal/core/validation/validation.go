// Package validation collects field-level problems found in a request and
// turns them into a single apperror.
//
// Usage:
//
//	var v validation.Result
//	v.Required("brand", req.Brand, "You should specify the brand name")
//	v.Positive("id", req.ID, "You should correctly specify the ID")
//	if err := v.Err(); err != nil {
//		return err
//	}
package validation

import (
	"strings"

	"github.com/shopspring/decimal"

	"catalog/internal/core/apperror"
)

// FieldError is a single problem with one request field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Result accumulates field errors. The zero value is ready to use and valid.
type Result struct {
	errors []FieldError
}

// Add records a problem with field.
func (r *Result) Add(field, message string) {
	r.errors = append(r.errors, FieldError{Field: field, Message: message})
}

// Valid reports whether no problems were recorded.
func (r *Result) Valid() bool {
	return len(r.errors) == 0
}

// Errors returns the recorded problems in insertion order.
func (r *Result) Errors() []FieldError {
	return r.errors
}

// Err returns nil for a valid result, otherwise a 400 AppError whose
// "fields" detail maps each field to its messages.
func (r *Result) Err() error {
	if r.Valid() {
		return nil
	}
	fields := make(map[string][]string, len(r.errors))
	for _, fe := range r.errors {
		fields[fe.Field] = append(fields[fe.Field], fe.Message)
	}
	return apperror.NewFieldValidation(fields)
}

// Required fails when value is empty or whitespace only.
func (r *Result) Required(field, value, message string) {
	if strings.TrimSpace(value) == "" {
		r.Add(field, message)
	}
}

// MaxLength fails when value is longer than limit runes.
func (r *Result) MaxLength(field, value string, limit int, message string) {
	if len([]rune(value)) > limit {
		r.Add(field, message)
	}
}

// Positive fails when value < 1.
func (r *Result) Positive(field string, value int, message string) {
	if value < 1 {
		r.Add(field, message)
	}
}

// NonNegative fails when value < 0.
func (r *Result) NonNegative(field string, value int, message string) {
	if value < 0 {
		r.Add(field, message)
	}
}

// NonNegativeDecimal fails when value < 0.
func (r *Result) NonNegativeDecimal(field string, value decimal.Decimal, message string) {
	if value.IsNegative() {
		r.Add(field, message)
	}
}

// ID fails for an omitted (zero) or negative identifier.
func (r *Result) ID(field string, value int) {
	switch {
	case value == 0:
		r.Add(field, "You should specify the ID")
	case value < 0:
		r.Add(field, "You should correctly specify the ID")
	}
}
