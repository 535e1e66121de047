package entities

import (
	"errors"
	"fmt"
)

// Ошибки доменного уровня.
var (
	ErrValidation   = errors.New("validation error")
	ErrInvalidEmail = fmt.Errorf("%w: Invalid email address", ErrValidation)
	ErrUserNotFound = errors.New("user not found")
	ErrStorage      = errors.New("storage error")
)

// StorageError описывает отказ хранилища.
type StorageError struct {
	Cause string
	Err   error
}

// NewStorageError оборачивает err в ErrStorage с описанием причины.
func NewStorageError(cause string, err error) error {
	return &StorageError{Cause: cause, Err: err}
}

func (e *StorageError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: %s", ErrStorage, e.Cause)
	}
	return fmt.Sprintf("%s: %s: %v", ErrStorage, e.Cause, e.Err)
}

// Is делает StorageError сопоставимой с ErrStorage.
func (e *StorageError) Is(target error) bool {
	return target == ErrStorage
}

func (e *StorageError) Unwrap() error {
	return e.Err
}
