package binding

import (
	"fmt"

	"github.com/coregx/acsearch"
)

// InputError reports a pattern argument that is not an array of strings.
type InputError struct {
	// Index is the offending element, or -1 when the value as a whole has
	// the wrong shape.
	Index int

	// Got describes what was found instead.
	Got string
}

// Error implements the error interface.
func (e *InputError) Error() string {
	if e.Index >= 0 {
		return fmt.Sprintf("acsearch: invalid pattern input: expected an array of strings, element %d is %s", e.Index, e.Got)
	}
	return "acsearch: invalid pattern input: expected an array of strings, got " + e.Got
}

// Unwrap returns acsearch.ErrInvalidPatternInput.
func (e *InputError) Unwrap() error {
	return acsearch.ErrInvalidPatternInput
}

// EncodeError reports matches that could not be converted to host form.
type EncodeError struct {
	Err error
}

// Error implements the error interface.
func (e *EncodeError) Error() string {
	return "acsearch: result encoding failed: " + e.Err.Error()
}

// Unwrap returns both acsearch.ErrResultEncoding and the cause.
func (e *EncodeError) Unwrap() []error {
	return []error{acsearch.ErrResultEncoding, e.Err}
}
