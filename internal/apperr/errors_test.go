package apperr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInvalidUserFieldError(t *testing.T) {
	err := fmt.Errorf("validate: %w", &InvalidUserFieldError{Field: "password"})

	var fieldErr *InvalidUserFieldError
	if assert.True(t, errors.As(err, &fieldErr)) {
		assert.Equal(t, "password", fieldErr.Field)
	}
	assert.Equal(t, "Invalid user field: password", fieldErr.Error())
}

func TestDuplicateNameError(t *testing.T) {
	err := &DuplicateNameError{Name: "Zeki"}
	assert.Equal(t, "The name Zeki is already registered", err.Error())
}

func TestUnregisteredBarcodeError_MatchesSentinel(t *testing.T) {
	err := fmt.Errorf("lookup: %w", &UnregisteredBarcodeError{Barcode: "123"})

	assert.True(t, errors.Is(err, ErrUnregisteredBarcode))
	assert.False(t, errors.Is(err, ErrUnauthorizedUser))
	assert.Equal(t, "lookup: The barcode 123 is not registered", err.Error())
}
