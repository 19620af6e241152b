package iterateur

import (
	"iter"
	"math/big"
	"strings"

	"go.llib.dev/iterateur/pkg/optional"
	"go.llib.dev/iterateur/pkg/result"
)

// Number is the set of types Sum can add up.
type Number interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 | ~uintptr |
		~float32 | ~float64
}

// drive pulls the chain and passes each value to fn until the chain is exhausted
// or fn returns false. The chain is stopped afterwards in both cases.
func drive[T any](i *Iterateur[T], fn func(T) bool) {
	defer i.Stop()
	for {
		v, ok := i.Next()
		if !ok {
			return
		}
		if !fn(v) {
			return
		}
	}
}

// Every reports whether all values are true.
// It stops at the first false value, and it is true for an empty Iterateur.
func Every[B ~bool](i *Iterateur[B]) bool {
	every := true
	drive(i, func(v B) bool {
		every = bool(v)
		return every
	})
	return every
}

// Some reports whether any value is true.
// It stops at the first true value, and it is false for an empty Iterateur.
func Some[B ~bool](i *Iterateur[B]) bool {
	var some bool
	drive(i, func(v B) bool {
		some = bool(v)
		return !some
	})
	return some
}

func Sum[N Number](i *Iterateur[N]) N {
	var sum N
	drive(i, func(v N) bool {
		sum += v
		return true
	})
	return sum
}

// BigSum adds up arbitrary precision integers into a new big.Int.
// A nil value counts as zero.
func BigSum(i *Iterateur[*big.Int]) *big.Int {
	sum := new(big.Int)
	drive(i, func(v *big.Int) bool {
		if v != nil {
			sum.Add(sum, v)
		}
		return true
	})
	return sum
}

func Concat[S ~string](i *Iterateur[S]) S {
	var sb strings.Builder
	drive(i, func(v S) bool {
		sb.WriteString(string(v))
		return true
	})
	return S(sb.String())
}

// First returns the first value, pulling at most once.
func (i *Iterateur[T]) First() optional.Optional[T] {
	var first optional.Optional[T]
	drive(i, func(v T) bool {
		first = optional.Present(v)
		return false
	})
	return first
}

// FirstMatching returns the first present result of fn.
// No value is pulled after the match.
func FirstMatching[Out, T any](i *Iterateur[T], fn func(T) optional.Optional[Out]) optional.Optional[Out] {
	var match optional.Optional[Out]
	drive(i, func(v T) bool {
		match = fn(v)
		return match.IsAbsent()
	})
	return match
}

// Reduce folds the values from the left, threading the accumulator through fn.
func Reduce[Acc, T any](i *Iterateur[T], seed Acc, fn func(Acc, T) Acc) Acc {
	acc := seed
	drive(i, func(v T) bool {
		acc = fn(acc, v)
		return true
	})
	return acc
}

// ReduceMod folds the values into acc, where fn mutates acc in place.
// The accumulator is returned once the Iterateur is exhausted.
//
//	counts := iterateur.ReduceMod(words, map[string]int{}, func(m map[string]int, w string) {
//		m[w]++
//	})
func ReduceMod[Acc, T any](i *Iterateur[T], acc Acc, fn func(Acc, T)) Acc {
	drive(i, func(v T) bool {
		fn(acc, v)
		return true
	})
	return acc
}

// Collect gathers the values into a new slice, in production order.
// The result is never nil.
func (i *Iterateur[T]) Collect() []T {
	vs := make([]T, 0)
	return *ReduceMod(i, &vs, func(vs *[]T, v T) {
		*vs = append(*vs, v)
	})
}

func (i *Iterateur[T]) Count() int {
	var n int
	drive(i, func(T) bool {
		n++
		return true
	})
	return n
}

func (i *Iterateur[T]) Last() optional.Optional[T] {
	var last optional.Optional[T]
	drive(i, func(v T) bool {
		last = optional.Present(v)
		return true
	})
	return last
}

func (i *Iterateur[T]) ForEach(fn func(T)) {
	drive(i, func(v T) bool {
		fn(v)
		return true
	})
}

// Seq exposes the Iterateur as a range-over-func sequence.
// Breaking out of the range loop stops the Iterateur.
//
//	for v := range i.Seq() {
//		fmt.Println(v)
//	}
func (i *Iterateur[T]) Seq() iter.Seq[T] {
	return func(yield func(T) bool) {
		drive(i, yield)
	}
}

// TryCollect gathers the success values, until the first error value.
// On an error, the Iterateur is stopped and the error is returned.
func TryCollect[T any](i *Iterateur[result.Result[T, error]]) ([]T, error) {
	var (
		vs     = make([]T, 0)
		err    error
		failed bool
	)
	drive(i, func(r result.Result[T, error]) bool {
		v, e, ok := r.Unpack()
		if !ok {
			err, failed = e, true
			return false
		}
		vs = append(vs, v)
		return true
	})
	if failed {
		return nil, err
	}
	return vs, nil
}
