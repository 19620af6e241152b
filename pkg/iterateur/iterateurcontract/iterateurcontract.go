// Package iterateurcontract verifies the pull protocol of root sources.
package iterateurcontract

import (
	"testing"

	"go.llib.dev/testcase"
	"go.llib.dev/testcase/assert"

	"go.llib.dev/iterateur/pkg/iterateur"
	"go.llib.dev/iterateur/port/contract"
)

// Source is the contract of a root source that yields at least one value.
// The Make function must return a new, unconsumed Iterateur on every call.
func Source[T any](mk contract.Make[*iterateur.Iterateur[T]]) contract.Contract {
	s := testcase.NewSpec(nil)

	subject := testcase.Let(s, func(t *testcase.T) *iterateur.Iterateur[T] {
		i := mk(t)
		t.Defer(i.Stop)
		return i
	})

	s.Then("values can be collected", func(t *testcase.T) {
		assert.NotEmpty(t, subject.Get(t).Collect())
	})

	s.Then("the number of collected values matches the count", func(t *testcase.T) {
		assert.Equal(t, len(mk(t).Collect()), subject.Get(t).Count())
	})

	s.Then("exhaustion is sticky", func(t *testcase.T) {
		i := subject.Get(t)
		for {
			if _, ok := i.Next(); !ok {
				break
			}
		}
		for range 3 {
			_, ok := i.Next()
			assert.False(t, ok)
		}
	})

	s.Then("first pull yields a value", func(t *testcase.T) {
		_, ok := subject.Get(t).Next()
		assert.True(t, ok)
	})

	s.When("the iterator is stopped", func(s *testcase.Spec) {
		s.Before(func(t *testcase.T) {
			subject.Get(t).Stop()
		})

		s.Then("it reports exhaustion", func(t *testcase.T) {
			_, ok := subject.Get(t).Next()
			assert.False(t, ok)
		})

		s.Then("stopping again is safe", func(t *testcase.T) {
			subject.Get(t).Stop()
		})
	})

	s.When("the iterator is partially consumed then stopped", func(s *testcase.Spec) {
		s.Before(func(t *testcase.T) {
			_, ok := subject.Get(t).Next()
			assert.True(t, ok)
			subject.Get(t).Stop()
		})

		s.Then("no more values are produced", func(t *testcase.T) {
			assert.Empty(t, subject.Get(t).Collect())
		})
	})

	s.Then("breaking out of a range loop stops the iterator", func(t *testcase.T) {
		i := subject.Get(t)
		for range i.Seq() {
			break
		}
		_, ok := i.Next()
		assert.False(t, ok)
	})

	return s.AsSuite("iterateur.Source")
}
