package catalog

import (
	"errors"
	"fmt"
)

// ErrMissingProducts is returned when the response body has no products field.
var ErrMissingProducts = errors.New("catalog response has no products field")

// StatusError is returned for a response with a non-2xx status code.
type StatusError struct {
	Code   int
	Status string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("catalog responded with status %s", e.Status)
}
