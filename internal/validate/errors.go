// errors.go defines sentinel errors for validation failures.
//
// Sentinel errors (not error types) because validation failures carry no
// context beyond the category. Details are added by wrapping with fmt.Errorf.

package validate

import "errors"

var (
	ErrInvalidTitle    = errors.New("invalid title")
	ErrTitleTooLong    = errors.New("title too long")
	ErrContentTooLarge = errors.New("content too large")
	ErrInvalidTag      = errors.New("invalid tag")
)
