// Package brand provides the catalog brand entity and its write-side service.
package brand

import (
	"catalog/internal/core/validation"
)

// MaxNameLength bounds the display name stored in catalog_brand.brand.
const MaxNameLength = 100

// Brand is a row of catalog_brand.
type Brand struct {
	ID    int    `db:"id" json:"id"`
	Brand string `db:"brand" json:"brand"`
}

// ValidateName checks a brand display name.
func ValidateName(name string) validation.Result {
	var v validation.Result
	v.Required("brand", name, "You should specify the brand name")
	v.MaxLength("brand", name, MaxNameLength, "Brand name is too long")
	return v
}

// ValidateID checks an id coming from a request.
func ValidateID(id int) validation.Result {
	var v validation.Result
	v.ID("id", id)
	return v
}
