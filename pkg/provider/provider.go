// Package provider looks values up by key across slices, maps, functions and the environment.
//
// Providers can be combined with a Herdsman,
// which asks its members in order and returns the first value found.
package provider

import (
	"os"

	"go.llib.dev/iterateur/pkg/optional"
)

// Provider provides the value that belongs to a key.
// An absent result means the Provider doesn't know the key.
type Provider[K, V any] interface {
	Provide(key K) optional.Optional[V]
}

// KVExtensible is a Provider that accepts new key value pairs.
type KVExtensible[K, V any] interface {
	Provider[K, V]
	AddKV(key K, value V) error
}

// VExtensible is a Provider that accepts new values, and picks their key itself.
type VExtensible[K, V any] interface {
	Provider[K, V]
	// AddV adds the value and returns its key.
	// An absent key means the value was not added.
	AddV(value V) optional.Optional[K]
}

// Func is a Provider implemented by a function.
type Func[K, V any] func(key K) optional.Optional[V]

func (fn Func[K, V]) Provide(key K) optional.Optional[V] { return fn(key) }

func FromFunc[K, V any](fn func(key K) optional.Optional[V]) Func[K, V] {
	return fn
}

// Env provides the variables of the process environment.
func Env() Func[string, string] {
	return func(key string) optional.Optional[string] {
		return optional.FromLookup(os.LookupEnv(key))
	}
}

// SliceProvider provides the values of a slice by their index.
type SliceProvider[V any] struct {
	values []V
}

// FromSlice makes a SliceProvider that owns a copy of vs.
func FromSlice[V any](vs []V) *SliceProvider[V] {
	return &SliceProvider[V]{values: append([]V{}, vs...)}
}

func (p *SliceProvider[V]) Provide(index int) optional.Optional[V] {
	if index < 0 || len(p.values) <= index {
		return optional.Absent[V]()
	}
	return optional.Present(p.values[index])
}

// AddV appends the value, and returns its index.
func (p *SliceProvider[V]) AddV(value V) optional.Optional[int] {
	p.values = append(p.values, value)
	return optional.Present(len(p.values) - 1)
}

func (p *SliceProvider[V]) Len() int { return len(p.values) }

// MapProvider provides the values of a map.
type MapProvider[K comparable, V any] struct {
	values map[K]V
}

// FromMap makes a MapProvider that owns a copy of m.
func FromMap[K comparable, V any](m map[K]V) *MapProvider[K, V] {
	values := make(map[K]V, len(m))
	for k, v := range m {
		values[k] = v
	}
	return &MapProvider[K, V]{values: values}
}

func (p *MapProvider[K, V]) Provide(key K) optional.Optional[V] {
	v, ok := p.values[key]
	return optional.FromLookup(v, ok)
}

// AddKV sets the value of the key, replacing the previous value.
func (p *MapProvider[K, V]) AddKV(key K, value V) error {
	if p.values == nil {
		p.values = make(map[K]V)
	}
	p.values[key] = value
	return nil
}

func (p *MapProvider[K, V]) Len() int { return len(p.values) }
