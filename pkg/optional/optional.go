// Package optional provides a value type that expresses the presence or the absence of a value.
//
// An Optional is a plain value, it is safe to copy and compare its state.
// The zero value of Optional[T] is an absent Optional.
package optional

import (
	"fmt"

	"go.llib.dev/iterateur/pkg/errorkit"
)

// ErrAbsent is the failure kind of unwrapping an absent Optional.
// It is a programmer error signal, and it is never returned, only panicked with.
const ErrAbsent errorkit.Error = "optional: unwrap on absent value"

// Optional is either present with a value or absent.
type Optional[T any] struct {
	value   T
	present bool
}

// Present creates a present Optional holding v.
func Present[T any](v T) Optional[T] {
	return Optional[T]{value: v, present: true}
}

// Absent creates an absent Optional.
func Absent[T any]() Optional[T] {
	return Optional[T]{}
}

// FromLookup converts a comma-ok result into an Optional.
//
//	optional.FromLookup(os.LookupEnv("HOME"))
func FromLookup[T any](v T, ok bool) Optional[T] {
	if !ok {
		return Absent[T]()
	}
	return Present(v)
}

// FromPointer converts a pointer into an Optional,
// where nil means absent and any other pointer means the pointed value is present.
func FromPointer[T any](ptr *T) Optional[T] {
	if ptr == nil {
		return Absent[T]()
	}
	return Present(*ptr)
}

// Map transforms the value of a present Optional.
// The transform function is not called for an absent Optional.
func Map[To, From any](o Optional[From], fn func(From) To) Optional[To] {
	if !o.present {
		return Absent[To]()
	}
	return Present(fn(o.value))
}

// IsPresentWith reports whether o is present and holds a value equal to v.
func IsPresentWith[T comparable](o Optional[T], v T) bool {
	return o.present && o.value == v
}

func (o Optional[T]) IsPresent() bool { return o.present }

func (o Optional[T]) IsAbsent() bool { return !o.present }

// IsPresentMatching reports whether o is present and its value satisfies the predicate.
func (o Optional[T]) IsPresentMatching(pred func(T) bool) bool {
	return o.present && pred(o.value)
}

// Or returns o when it is present, otherwise the other Optional.
func (o Optional[T]) Or(other Optional[T]) Optional[T] {
	if o.present {
		return o
	}
	return other
}

// And returns the other Optional when o is present, otherwise an absent Optional.
func (o Optional[T]) And(other Optional[T]) Optional[T] {
	if o.present {
		return other
	}
	return Absent[T]()
}

// OrElse returns the value of o, or the fallback value when o is absent.
func (o Optional[T]) OrElse(fallback T) T {
	if o.present {
		return o.value
	}
	return fallback
}

// Lookup returns the value and whether it was present.
func (o Optional[T]) Lookup() (T, bool) {
	return o.value, o.present
}

// Unwrap returns the value or panics with ErrAbsent.
func (o Optional[T]) Unwrap() T {
	if !o.present {
		panic(ErrAbsent)
	}
	return o.value
}

// Expect returns the value or panics with ErrAbsent carrying the message.
func (o Optional[T]) Expect(msg string) T {
	if !o.present {
		panic(ErrAbsent.F("%s", msg))
	}
	return o.value
}

func (o Optional[T]) String() string {
	if !o.present {
		return "Absent"
	}
	return fmt.Sprintf("Present(%v)", o.value)
}
