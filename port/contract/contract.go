// Package contract holds the shape of the reusable behavioural test suites of the module.
//
// A contract describes what a consumer expects from a role interface,
// so every implementation can be verified against the same suite.
package contract

import (
	"testing"

	"go.llib.dev/testcase"
)

// Make creates a fresh testing subject for a contract.
// When a subject needs several collaborators, return a struct that holds them all.
type Make[Subject any] = func(tb testing.TB) Subject

// Contract is a testcase suite that an implementation runs in its own tests.
//
//	iterateurcontract.Source(mk).Test(t)
type Contract interface {
	testcase.Suite
	Test(*testing.T)
	Benchmark(*testing.B)
}
