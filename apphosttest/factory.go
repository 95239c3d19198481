// SPDX-FileCopyrightText: 2023 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package apphosttest

import (
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xmidt-org/apphost"
	"github.com/xmidt-org/apphost/apphosthttp"
)

// New creates a Factory for an entry point that logs to the enclosing test and
// is closed when that test finishes.  Any error from closing fails the test.
//
// The t parameter has the same restrictions as AsTestable.  The given options
// are applied after the test logger, so they may replace it.
func New(t any, entrypoint any, opts ...apphost.FactoryOption) *apphost.Factory {
	tt := AsTestable(t)
	f := apphost.New(
		entrypoint,
		append(
			[]apphost.FactoryOption{apphost.WithPrinter(apphost.TestLogger(tt))},
			opts...,
		)...,
	)

	tt.Cleanup(func() {
		assert.NoError(tt, f.Close())
	})

	return f
}

// Client creates a client from f, halting the test if that fails.
func Client(t any, f *apphost.Factory) *apphosthttp.Client {
	tt := AsTestable(t)
	c, err := f.CreateClient()
	require.NoError(tt, err)
	require.NotNil(tt, c)
	return c
}

// DefaultClient creates a client with an explicit handler chain, halting the
// test if that fails.
func DefaultClient(t any, f *apphost.Factory, handlers ...apphosthttp.RoundTripperConstructor) *apphosthttp.Client {
	tt := AsTestable(t)
	c, err := f.CreateDefaultClient(handlers...)
	require.NoError(tt, err)
	require.NotNil(tt, c)
	return c
}
