// Package result provides a value type that carries either a success value or an error value.
//
// Result is useful where an error has to travel as data,
// for example as the element of an iterator,
// where a Go style (value, error) return pair is not available.
package result

import (
	"fmt"

	"go.llib.dev/iterateur/pkg/errorkit"
	"go.llib.dev/iterateur/pkg/optional"
)

const (
	// ErrUnwrapErr is the failure kind of unwrapping the success value of an error Result.
	ErrUnwrapErr errorkit.Error = "result: unwrap on error value"
	// ErrUnwrapOk is the failure kind of unwrapping the error value of a success Result.
	ErrUnwrapOk errorkit.Error = "result: unwrap error on ok value"
)

// Result is either Ok with a value of R or Err with a value of E.
//
// The zero value of Result is an Err with the zero value of E.
type Result[R, E any] struct {
	value R
	err   E
	ok    bool
}

func Ok[R, E any](v R) Result[R, E] {
	return Result[R, E]{value: v, ok: true}
}

func Err[R, E any](e E) Result[R, E] {
	return Result[R, E]{err: e}
}

// Of converts a conventional Go (value, error) pair into a Result.
//
//	result.Of(strconv.Atoi(raw))
func Of[R any](v R, err error) Result[R, error] {
	if err != nil {
		return Err[R](err)
	}
	return Ok[R, error](v)
}

// Map transforms the success value.
// An error Result is passed through untouched.
func Map[U, R, E any](r Result[R, E], fn func(R) U) Result[U, E] {
	if !r.ok {
		return Err[U](r.err)
	}
	return Ok[U, E](fn(r.value))
}

// MapError transforms the error value.
// A success Result is passed through untouched.
func MapError[F, R, E any](r Result[R, E], fn func(E) F) Result[R, F] {
	if r.ok {
		return Ok[R, F](r.value)
	}
	return Err[R](fn(r.err))
}

func IsOkWith[R comparable, E any](r Result[R, E], v R) bool {
	return r.ok && r.value == v
}

func IsErrWith[R any, E comparable](r Result[R, E], e E) bool {
	return !r.ok && r.err == e
}

func (r Result[R, E]) IsOk() bool { return r.ok }

func (r Result[R, E]) IsErr() bool { return !r.ok }

func (r Result[R, E]) IsOkMatching(pred func(R) bool) bool {
	return r.ok && pred(r.value)
}

func (r Result[R, E]) IsErrMatching(pred func(E) bool) bool {
	return !r.ok && pred(r.err)
}

// Or returns r when it is Ok, otherwise the other Result.
func (r Result[R, E]) Or(other Result[R, E]) Result[R, E] {
	if r.ok {
		return r
	}
	return other
}

// And returns the other Result when r is Ok, otherwise r.
func (r Result[R, E]) And(other Result[R, E]) Result[R, E] {
	if r.ok {
		return other
	}
	return r
}

// OrElse returns the success value, or the fallback value when r is an error.
func (r Result[R, E]) OrElse(fallback R) R {
	if r.ok {
		return r.value
	}
	return fallback
}

// AsOptional drops the error value, and keeps only the presence of the success value.
func (r Result[R, E]) AsOptional() optional.Optional[R] {
	return optional.FromLookup(r.value, r.ok)
}

// Switch swaps the success and the error roles.
func (r Result[R, E]) Switch() Result[E, R] {
	if r.ok {
		return Result[E, R]{err: r.value}
	}
	return Result[E, R]{value: r.err, ok: true}
}

// Unpack returns the carried values and whether r is Ok.
func (r Result[R, E]) Unpack() (R, E, bool) {
	return r.value, r.err, r.ok
}

// Unwrap returns the success value,
// or panics with ErrUnwrapErr wrapping the carried error value.
func (r Result[R, E]) Unwrap() R {
	if !r.ok {
		panic(ErrUnwrapErr.Wrap(errorkit.ToError(r.err)))
	}
	return r.value
}

// Expect returns the success value, or panics with ErrUnwrapErr carrying the message.
func (r Result[R, E]) Expect(msg string) R {
	if !r.ok {
		panic(ErrUnwrapErr.F("%s", msg))
	}
	return r.value
}

// UnwrapErr returns the error value,
// or panics with ErrUnwrapOk wrapping the success value.
func (r Result[R, E]) UnwrapErr() E {
	if r.ok {
		panic(ErrUnwrapOk.F("%v", r.value))
	}
	return r.err
}

// ExpectErr returns the error value, or panics with ErrUnwrapOk carrying the message.
func (r Result[R, E]) ExpectErr(msg string) E {
	if r.ok {
		panic(ErrUnwrapOk.F("%s", msg))
	}
	return r.err
}

func (r Result[R, E]) String() string {
	if r.ok {
		return fmt.Sprintf("Ok(%v)", r.value)
	}
	return fmt.Sprintf("Err(%v)", r.err)
}
