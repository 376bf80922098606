package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAsAppError_Wrapped(t *testing.T) {
	base := NewNotFound("catalog brand", 7)
	wrapped := fmt.Errorf("update brand: %w", base)

	appErr, ok := AsAppError(wrapped)
	assert.True(t, ok)
	assert.Same(t, base, appErr)
	assert.True(t, IsNotFound(wrapped))
	assert.Equal(t, http.StatusNotFound, GetHTTPStatus(wrapped))
}

func TestGetHTTPStatus_PlainError(t *testing.T) {
	assert.Equal(t, http.StatusInternalServerError, GetHTTPStatus(errors.New("boom")))
	assert.False(t, IsAppError(errors.New("boom")))
}

func TestConflictFamily(t *testing.T) {
	assert.True(t, IsConflict(NewInUse("catalog brand", 1)))
	assert.True(t, IsConflict(NewDuplicate("catalog brand", "brand", "Azure")))
	assert.False(t, IsConflict(NewValidation("x")))
}

func TestNewDuplicate(t *testing.T) {
	err := NewDuplicate("catalog brand", "brand", "Azure")

	assert.Equal(t, CodeDuplicate, err.Code)
	assert.Equal(t, http.StatusConflict, err.HTTPStatus)
	assert.Equal(t, "catalog brand with this brand already exists", err.Message)
	assert.Equal(t, "Azure", err.Details["value"])
}

func TestNewFieldValidation(t *testing.T) {
	err := NewFieldValidation(map[string][]string{"brand": {"required"}})

	assert.True(t, IsValidation(err))
	assert.Equal(t, http.StatusBadRequest, err.HTTPStatus)
	assert.Equal(t, map[string][]string{"brand": {"required"}}, err.Details["fields"])
}

func TestAppError_UnwrapCause(t *testing.T) {
	cause := errors.New("pg: connection reset")
	err := NewInternal(cause)

	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "connection reset")
}
