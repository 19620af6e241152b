package provider

import (
	"context"
	"fmt"

	"go.llib.dev/iterateur/pkg/errorkit"
	"go.llib.dev/iterateur/pkg/iterateur"
	"go.llib.dev/iterateur/pkg/logging"
	"go.llib.dev/iterateur/pkg/optional"
	"go.llib.dev/iterateur/pkg/result"
)

// ErrNotExtensible is returned when no member of a Herdsman accepts key value pairs.
const ErrNotExtensible errorkit.Error = "provider: no key value extensible provider"

// Herdsman combines providers into a fallback chain.
// Members are asked in the order they were added.
//
// Whether a member accepts key value pairs is decided when it is added:
// AddKVProvider registers an extensible member, AddProvider a lookup only member.
type Herdsman[K, V any] struct {
	// Logger receives the debug entries about misses.
	// When nil, logging.Default is used.
	Logger *logging.Logger

	members []member[K, V]
}

type member[K, V any] struct {
	provider   Provider[K, V]
	extensible KVExtensible[K, V]
}

// NewHerdsman makes a Herdsman with lookup only members.
func NewHerdsman[K, V any](providers ...Provider[K, V]) *Herdsman[K, V] {
	h := &Herdsman[K, V]{}
	for _, p := range providers {
		h.AddProvider(p)
	}
	return h
}

// AddProvider adds a lookup only member to the end of the chain,
// and returns its index.
func (h *Herdsman[K, V]) AddProvider(p Provider[K, V]) int {
	h.members = append(h.members, member[K, V]{provider: p})
	return len(h.members) - 1
}

// AddKVProvider adds a member that also accepts key value pairs to the end of the chain,
// and returns its index.
func (h *Herdsman[K, V]) AddKVProvider(p KVExtensible[K, V]) int {
	h.members = append(h.members, member[K, V]{provider: p, extensible: p})
	return len(h.members) - 1
}

func (h *Herdsman[K, V]) Len() int { return len(h.members) }

// Provide returns the value of the first member that provides the key.
// Members after the first match are not asked.
func (h *Herdsman[K, V]) Provide(key K) optional.Optional[V] {
	v := iterateur.FirstMatching(iterateur.FromSlice(h.members), func(m member[K, V]) optional.Optional[V] {
		return m.provider.Provide(key)
	})
	if v.IsAbsent() {
		logging.Or(h.Logger).Debug(context.Background(), "herdsman: key not provided",
			logging.Field("key", fmt.Sprintf("%v", key)),
			logging.Field("members", len(h.members)))
	}
	return v
}

// Extend adds the key value pair to the first extensible member,
// and returns the index of that member.
func (h *Herdsman[K, V]) Extend(key K, value V) result.Result[int, error] {
	found := iterateur.FirstMatching(iterateur.Enumerate(iterateur.FromSlice(h.members)),
		func(m iterateur.Indexed[member[K, V]]) optional.Optional[iterateur.Indexed[member[K, V]]] {
			return optional.FromLookup(m, m.Value.extensible != nil)
		})
	target, ok := found.Lookup()
	if !ok {
		logging.Or(h.Logger).Debug(context.Background(), "herdsman: no extensible member",
			logging.Field("members", len(h.members)))
		return result.Err[int](error(ErrNotExtensible))
	}
	if err := target.Value.extensible.AddKV(key, value); err != nil {
		return result.Err[int](err)
	}
	return result.Ok[int, error](target.Index)
}

// AddKV adds the key value pair to the first extensible member.
// It makes a Herdsman usable as an extensible member of another Herdsman.
func (h *Herdsman[K, V]) AddKV(key K, value V) error {
	_, err, _ := h.Extend(key, value).Unpack()
	return err
}
