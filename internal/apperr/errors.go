// Package apperr holds the typed failures raised by the guard chain,
// the field validator and the handlers. Each error is returned unmodified
// up to the HTTP boundary, where handler.ErrorHandler maps it to a status
// code and a {status:"error", message} body.
package apperr

import (
	"errors"
	"fmt"
)

// ErrUnauthorizedUser is raised when the Authorization header is missing,
// malformed, or the caller's role is not allowed on the endpoint.
var ErrUnauthorizedUser = errors.New("Unauthorized user")

// ErrInvalidToken is raised when a bearer token cannot be verified or decoded.
var ErrInvalidToken = errors.New("Invalid token")

// ErrInvalidCredentials is raised by login when the name is unknown or the
// password does not match.
var ErrInvalidCredentials = errors.New("Invalid login credentials")

// ErrUnknownRole is raised when a registration references a role id that
// does not exist in the roles table.
var ErrUnknownRole = errors.New("The role does not exist")

// ErrUnregisteredBarcode is the generic form of UnregisteredBarcodeError,
// usable with errors.Is.
var ErrUnregisteredBarcode = errors.New("unregistered barcode")

// InvalidUserFieldError names the first create-user field that failed validation.
type InvalidUserFieldError struct {
	Field string
}

func (e *InvalidUserFieldError) Error() string {
	return fmt.Sprintf("Invalid user field: %s", e.Field)
}

// DuplicateNameError reports a registration whose name is already taken.
type DuplicateNameError struct {
	Name string
}

func (e *DuplicateNameError) Error() string {
	return fmt.Sprintf("The name %s is already registered", e.Name)
}

// UnregisteredBarcodeError reports an inventory lookup miss.
type UnregisteredBarcodeError struct {
	Barcode string
}

func (e *UnregisteredBarcodeError) Error() string {
	return fmt.Sprintf("The barcode %s is not registered", e.Barcode)
}

// Is lets errors.Is(err, ErrUnregisteredBarcode) match any barcode.
func (e *UnregisteredBarcodeError) Is(target error) bool {
	return target == ErrUnregisteredBarcode
}
