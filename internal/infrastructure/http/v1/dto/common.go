// Package dto provides Data Transfer Objects for API requests/responses.
package dto

import (
	"github.com/shopspring/decimal"
)

func init() {
	// Prices are JSON numbers on the wire.
	decimal.MarshalJSONWithoutQuotes = true
}

// IDResponse is returned by create, update and delete operations.
type IDResponse struct {
	ID int `json:"id"`
}

// ErrorResponse is the body of every error reply.
type ErrorResponse struct {
	Code    string         `json:"code"`
	Message string         `json:"message"`
	Details map[string]any `json:"details,omitempty"`
}

// PageResponse is one page of a larger result set.
type PageResponse[T any] struct {
	PageIndex int   `json:"pageIndex"`
	PageSize  int   `json:"pageSize"`
	Count     int64 `json:"count"`
	Data      []T   `json:"data"`
}
