// SPDX-FileCopyrightText: 2023 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package apphosttest

import (
	"net/url"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockTestable struct {
	mock.Mock

	cleanups []func()
}

func (m *mockTestable) Name() string {
	return m.Called().String(0)
}

func (m *mockTestable) ExpectName(name string) *mock.Call {
	return m.On("Name").Return(name)
}

func (m *mockTestable) Logf(format string, args ...any) {
	m.Called(format, args)
}

func (m *mockTestable) ExpectAnyLogf() *mock.Call {
	return m.On(
		"Logf",
		mock.AnythingOfType("string"),
		mock.MatchedBy(func([]any) bool { return true }),
	)
}

func (m *mockTestable) Errorf(format string, args ...any) {
	m.Called(format, args)
}

func (m *mockTestable) ExpectAnyErrorf() *mock.Call {
	return m.On(
		"Errorf",
		mock.AnythingOfType("string"),
		mock.MatchedBy(func([]any) bool { return true }),
	)
}

func (m *mockTestable) FailNow() {
	m.Called()
}

func (m *mockTestable) ExpectFailNow() *mock.Call {
	return m.On("FailNow")
}

// Cleanup records cleanup functions so tests can run them explicitly
func (m *mockTestable) Cleanup(f func()) {
	m.cleanups = append(m.cleanups, f)
}

func (m *mockTestable) runCleanups() {
	for i := len(m.cleanups) - 1; i >= 0; i-- {
		m.cleanups[i]()
	}

	m.cleanups = nil
}

func parseURL(t require.TestingT, v string) *url.URL {
	u, err := url.Parse(v)
	require.NoError(t, err)
	return u
}
