package credentials

import (
	"errors"
	"fmt"
)

var (
	ErrPathRequired     = errors.New("credentials: store path required")
	ErrStoreMissing     = errors.New("credentials: store file missing")
	ErrStoreMalformed   = errors.New("credentials: store file malformed")
	ErrUsernameRequired = errors.New("credentials: username is required")
	ErrPasswordRequired = errors.New("credentials: password is required")
)

// ParseError captures a malformed credential file, keeping the path for
// operator-facing diagnostics.
type ParseError struct {
	Path string
	Err  error
}

func (e *ParseError) Error() string {
	if e == nil {
		return ErrStoreMalformed.Error()
	}
	return fmt.Sprintf("%s: path=%s: %v", ErrStoreMalformed.Error(), e.Path, e.Err)
}

func (e *ParseError) Unwrap() error {
	return ErrStoreMalformed
}
