package documents

import (
	"errors"
	"fmt"
)

var (
	ErrRootRequired      = errors.New("documents: root directory required")
	ErrNotFound          = errors.New("documents: document not found")
	ErrNameRequired      = errors.New("documents: name is required")
	ErrExtensionRequired = errors.New("documents: name requires an extension")
	ErrInvalidName       = errors.New("documents: name contains invalid characters")
)

// NotFoundError captures a lookup miss for a named document.
type NotFoundError struct {
	Name string
}

func (e *NotFoundError) Error() string {
	if e == nil || e.Name == "" {
		return ErrNotFound.Error()
	}
	return fmt.Sprintf("%s: name=%s", ErrNotFound.Error(), e.Name)
}

func (e *NotFoundError) Unwrap() error {
	return ErrNotFound
}

// InvalidNameError captures names rejected by the store's path-safety checks.
type InvalidNameError struct {
	Name   string
	Reason string
}

func (e *InvalidNameError) Error() string {
	if e == nil {
		return ErrInvalidName.Error()
	}
	if e.Reason != "" {
		return fmt.Sprintf("%s: %s", ErrInvalidName.Error(), e.Reason)
	}
	return fmt.Sprintf("%s: name=%s", ErrInvalidName.Error(), e.Name)
}

func (e *InvalidNameError) Unwrap() error {
	return ErrInvalidName
}
