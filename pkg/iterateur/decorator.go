package iterateur

import (
	"go.llib.dev/iterateur/pkg/optional"
)

// Map transforms every value of the upstream with fn, one to one, in order.
//
// The Iterateur returned by Map owns the upstream,
// the upstream must not be pulled by anyone else afterwards.
func Map[To, From any](i *Iterateur[From], fn func(From) To) *Iterateur[To] {
	return &Iterateur[To]{src: &mapped[To, From]{up: i, fn: fn}}
}

// StatefulMap is like Map, but fn also receives a state value and returns its replacement.
// The state is owned by the returned Iterateur and starts with the initial value.
//
//	runningTotal := iterateur.StatefulMap(i, 0, func(v, total int) (int, int) {
//		return total + v, total + v
//	})
func StatefulMap[To, From, State any](i *Iterateur[From], initial State, fn func(From, State) (To, State)) *Iterateur[To] {
	return &Iterateur[To]{src: &statefulMapped[To, From, State]{up: i, fn: fn, state: initial}}
}

// Filter keeps the values for which keep returns true.
// The predicate is called once per upstream value, in the upstream's order.
func (i *Iterateur[T]) Filter(keep func(T) bool) *Iterateur[T] {
	return &Iterateur[T]{src: &filtered[T]{up: i, keep: keep}}
}

// Indexed is a value paired with its position in the produced sequence.
type Indexed[T any] struct {
	Index int
	Value T
}

// Enumerate pairs each value with its index, starting from 0.
// The index counts the values that reach Enumerate,
// values dropped by an upstream Filter are not counted.
func Enumerate[T any](i *Iterateur[T]) *Iterateur[Indexed[T]] {
	return StatefulMap(i, 0, func(v T, index int) (Indexed[T], int) {
		return Indexed[T]{Index: index, Value: v}, index + 1
	})
}

// FilterMap transforms the values with fn, and keeps only the present results.
func FilterMap[To, From any](i *Iterateur[From], fn func(From) optional.Optional[To]) *Iterateur[To] {
	present := Map(i, fn).Filter(optional.Optional[To].IsPresent)
	return Map(present, optional.Optional[To].Unwrap)
}

// Take limits the Iterateur to its first n values.
// The upstream is stopped once the n-th value is produced.
func (i *Iterateur[T]) Take(n int) *Iterateur[T] {
	var taken int
	return FromPull(func() (T, bool) {
		if n <= taken {
			var zero T
			return zero, false
		}
		taken++
		return i.Next()
	}, i.Stop)
}

// Skip drops the first n values of the Iterateur.
func (i *Iterateur[T]) Skip(n int) *Iterateur[T] {
	var skipped bool
	return FromPull(func() (T, bool) {
		if !skipped {
			skipped = true
			for range n {
				if _, ok := i.Next(); !ok {
					var zero T
					return zero, false
				}
			}
		}
		return i.Next()
	}, i.Stop)
}

// Chain joins the iterators one after the other.
// Each iterator is pulled only after the previous one is exhausted.
func Chain[T any](is ...*Iterateur[T]) *Iterateur[T] {
	var index int
	return FromPull(func() (T, bool) {
		for index < len(is) {
			if v, ok := is[index].Next(); ok {
				return v, true
			}
			index++
		}
		var zero T
		return zero, false
	}, func() {
		for _, i := range is[index:] {
			i.Stop()
		}
	})
}

type mapped[To, From any] struct {
	up *Iterateur[From]
	fn func(From) To
}

func (m *mapped[To, From]) pull() (To, bool) {
	v, ok := m.up.Next()
	if !ok {
		var zero To
		return zero, false
	}
	return m.fn(v), true
}

func (m *mapped[To, From]) release() { m.up.Stop() }

type statefulMapped[To, From, State any] struct {
	up    *Iterateur[From]
	fn    func(From, State) (To, State)
	state State
}

func (m *statefulMapped[To, From, State]) pull() (To, bool) {
	v, ok := m.up.Next()
	if !ok {
		var zero To
		return zero, false
	}
	out, next := m.fn(v, m.state)
	m.state = next
	return out, true
}

func (m *statefulMapped[To, From, State]) release() { m.up.Stop() }

type filtered[T any] struct {
	up   *Iterateur[T]
	keep func(T) bool
}

func (f *filtered[T]) pull() (T, bool) {
	for {
		v, ok := f.up.Next()
		if !ok {
			return v, false
		}
		if f.keep(v) {
			return v, true
		}
	}
}

func (f *filtered[T]) release() { f.up.Stop() }
