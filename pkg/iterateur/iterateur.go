// Package iterateur implements a lazy, pull based, single pass iterator.
//
// A chain starts with a root source, made with From or one of its siblings,
// and is extended with decorators like Map, StatefulMap or Iterateur.Filter.
// Nothing is pulled until a terminal operation such as Collect, Sum or Every drives the chain.
//
//	positives := iterateur.FromSlice([]int{-1, 2, 3, -5, 5}).
//		Filter(func(v int) bool { return 0 <= v })
//	pairs := iterateur.Enumerate(positives).Collect()
//	// [{0 2} {1 3} {2 5}]
//
// An Iterateur has a single owner.
// It is not safe for concurrent use, and a chain must be consumed only once.
package iterateur

import (
	"iter"
)

// Iterateur is a single pass cursor over a sequence of T values.
//
// Once Next reported exhaustion, the Iterateur stays exhausted,
// and further Next calls don't reach the underlying source.
// A nil *Iterateur behaves as an exhausted one.
type Iterateur[T any] struct {
	src  source[T]
	done bool
}

// source is the closed set of pull strategies an Iterateur can hold:
// root, mapped, statefulMapped and filtered.
type source[T any] interface {
	pull() (T, bool)
	release()
}

// Next pulls the next value.
// The boolean result is false when the Iterateur is exhausted.
// Exhaustion stops the whole chain.
func (i *Iterateur[T]) Next() (T, bool) {
	if i == nil || i.done {
		var zero T
		return zero, false
	}
	v, ok := i.src.pull()
	if !ok {
		i.Stop()
		var zero T
		return zero, false
	}
	return v, true
}

// Stop abandons the Iterateur.
// The stop signal travels up to the root source,
// so resources held behind the root source are released.
// Calling Stop more than once is safe.
func (i *Iterateur[T]) Stop() {
	if i == nil || i.done {
		return
	}
	i.done = true
	i.src.release()
}

// From makes a root source from a function that yields the next value,
// or reports with false that there are no more values.
// Each pull of the Iterateur calls next exactly once.
func From[T any](next func() (T, bool)) *Iterateur[T] {
	return FromPull(next, nil)
}

// FromPull is like From, but also accepts a stop function that is called once,
// when the Iterateur is exhausted or stopped.
// Its signature matches the results of iter.Pull.
func FromPull[T any](next func() (T, bool), stop func()) *Iterateur[T] {
	if next == nil {
		next = func() (T, bool) {
			var zero T
			return zero, false
		}
	}
	return &Iterateur[T]{src: &root[T]{next: next, stop: stop}}
}

// FromSeq turns a range-over-func sequence into an Iterateur.
// The sequence is started on the first pull.
func FromSeq[T any](seq iter.Seq[T]) *Iterateur[T] {
	if seq == nil {
		return Empty[T]()
	}
	var (
		next func() (T, bool)
		stop func()
	)
	return FromPull(func() (T, bool) {
		if next == nil {
			next, stop = iter.Pull(seq)
		}
		return next()
	}, func() {
		if stop != nil {
			stop()
		}
	})
}

// FromSlice iterates over the elements of vs in order.
func FromSlice[T any](vs []T) *Iterateur[T] {
	var index int
	return From(func() (T, bool) {
		if len(vs) <= index {
			var zero T
			return zero, false
		}
		v := vs[index]
		index++
		return v, true
	})
}

func Empty[T any]() *Iterateur[T] {
	return From[T](nil)
}

type root[T any] struct {
	next func() (T, bool)
	stop func()
}

func (r *root[T]) pull() (T, bool) { return r.next() }

func (r *root[T]) release() {
	if r.stop != nil {
		r.stop()
	}
}
