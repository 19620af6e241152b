// Package errorkit holds the error handling conventions of the module.
//
// Sentinel errors are declared as constants with errorkit.Error,
// and causes are attached with Error.Wrap or Error.F,
// so callers can still match the failure kind with errors.Is.
package errorkit

import (
	"errors"
	"fmt"
	"strings"
)

// Finish is a helper function that can be used from a deferred context.
//
// Usage:
//
//	defer errorkit.Finish(&returnError, watcher.Close)
func Finish(returnErr *error, blk func() error) {
	*returnErr = Merge(*returnErr, blk())
}

// Merge will combine all given non nil error values into a single error value.
// If no valid error is given, nil is returned.
// If only a single non nil error value is given, the error value is returned.
func Merge(errs ...error) error {
	var cleaned []error
	for _, err := range errs {
		if err != nil {
			cleaned = append(cleaned, err)
		}
	}
	switch len(cleaned) {
	case 0:
		return nil
	case 1:
		return cleaned[0]
	default:
		return multiError(cleaned)
	}
}

type multiError []error

func (errs multiError) Error() string {
	var msgs = make([]string, 0, len(errs))
	for _, err := range errs {
		msgs = append(msgs, err.Error())
	}
	return strings.Join(msgs, "\n")
}

func (errs multiError) As(target any) bool {
	for _, err := range errs {
		if errors.As(err, target) {
			return true
		}
	}
	return false
}

func (errs multiError) Is(target error) bool {
	for _, err := range errs {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

// ToError turns an arbitrary value into an error.
// Values that are already errors are returned as is,
// anything else is formatted with its default format.
func ToError(v any) error {
	if v == nil {
		return nil
	}
	if err, ok := v.(error); ok {
		return err
	}
	return valueError{V: v}
}

type valueError struct{ V any }

func (err valueError) Error() string { return fmt.Sprintf("%v", err.V) }
