// Package itemtype provides the catalog item type entity and its write-side service.
package itemtype

import (
	"catalog/internal/core/validation"
)

// MaxNameLength bounds catalog_type.type.
const MaxNameLength = 100

// Type is a row of catalog_type.
type Type struct {
	ID   int    `db:"id" json:"id"`
	Type string `db:"type" json:"type"`
}

// ValidateName checks a type display name.
func ValidateName(name string) validation.Result {
	var v validation.Result
	v.Required("type", name, "You should specify the Type Name")
	v.MaxLength("type", name, MaxNameLength, "Type Name is too long")
	return v
}

// ValidateID checks an id coming from a request. A zero id means it was
// omitted.
func ValidateID(id int) validation.Result {
	var v validation.Result
	v.ID("id", id)
	return v
}
