// internal/mapper/errors.go
package mapper

import (
	"errors"
	"fmt"
)

var (
	// ErrTemplate means the vector template is missing or unusable.
	ErrTemplate = errors.New("map template unavailable")

	// ErrUnknownRegion means a snapshot names a region the template does not draw.
	ErrUnknownRegion = errors.New("region not in map template")

	// ErrSize means the requested output size is not positive.
	ErrSize = errors.New("invalid render size")
)

// RenderError reports why a map could not be produced.
type RenderError struct {
	Region string
	Err    error
}

func (e *RenderError) Error() string {
	if e.Region != "" {
		return fmt.Sprintf("mapper: %v: %q", e.Err, e.Region)
	}
	return fmt.Sprintf("mapper: %v", e.Err)
}

func (e *RenderError) Unwrap() error { return e.Err }
