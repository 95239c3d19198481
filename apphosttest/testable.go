// SPDX-FileCopyrightText: 2023 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package apphosttest

import (
	"fmt"
	"testing"
)

// Testable is the minimal interface required to bind a factory to a test.
// *testing.T and *testing.B both implement it.
type Testable interface {
	Name() string
	Logf(string, ...interface{})
	Errorf(string, ...interface{})
	FailNow()
	Cleanup(func())
}

// AsTestable converts a value into a Testable.  The v parameter
// may be a *testing.T, *testing.B, or a type that provides a T() *testing.T method
// such as a testify suite.
//
// If v cannot be coerced into a Testable, this function panics.
func AsTestable(v any) Testable {
	if tt, ok := v.(Testable); ok {
		return tt
	}

	type testHolder interface {
		T() *testing.T
	}

	if th, ok := v.(testHolder); ok {
		return th.T()
	}

	panic(fmt.Errorf("%T cannot be converted into a Testable", v))
}
