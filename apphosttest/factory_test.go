// SPDX-FileCopyrightText: 2023 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package apphosttest

import (
	"io"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xmidt-org/apphost"
	"github.com/xmidt-org/apphost/apphosthttp"
	"github.com/xmidt-org/apphost/internal/sampleapp"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
)

func testNewClosesFactory(t *testing.T) {
	var (
		assert  = assert.New(t)
		require = require.New(t)
		m       = new(mockTestable)
	)

	m.ExpectName(t.Name())
	m.ExpectAnyLogf()

	f := New(m, sampleapp.Startup{}, apphost.WithEventLogger(fxevent.NopLogger))
	require.NotNil(f)
	require.Len(m.cleanups, 1)

	c := Client(m, f)
	m.runCleanups()

	assert.True(c.Closed())
	_, err := f.CreateClient()
	assert.ErrorIs(err, apphost.ErrClosed)
	m.AssertExpectations(t)
}

func testNewWithTestingT(t *testing.T) {
	var c *apphosthttp.Client
	t.Run("Inner", func(t *testing.T) {
		f := New(t, sampleapp.Startup{}, apphost.WithEventLogger(fxevent.NopLogger))
		c = Client(t, f)

		response, err := c.Get("/")
		require.NoError(t, err)
		defer response.Body.Close()

		body, err := io.ReadAll(response.Body)
		require.NoError(t, err)
		assert.Equal(t, "Hello from Development", string(body))
	})

	assert.True(t, c.Closed())
}

func testClientFailure(t *testing.T) {
	m := new(mockTestable)
	m.ExpectName(t.Name())
	m.ExpectAnyLogf()
	m.ExpectAnyErrorf().Twice()
	m.ExpectFailNow().Twice()

	f := New(m, fx.Options(), apphost.WithEventLogger(fxevent.NopLogger))
	assert.Nil(t, Client(m, f))
	m.runCleanups()
	m.AssertExpectations(t)
}

func TestNew(t *testing.T) {
	t.Run("ClosesFactory", testNewClosesFactory)
	t.Run("WithTestingT", testNewWithTestingT)
	t.Run("ClientFailure", testClientFailure)
}

func TestDefaultClient(t *testing.T) {
	var (
		assert = assert.New(t)
		m      = new(MockRoundTripper)
		rm     RequestMatcher
	)

	rm.Method("GET").URL("http://localhost/mocked")
	m.ExpectMatch(rm).Response(&http.Response{
		StatusCode: 599,
		Body:       http.NoBody,
	}).Once()

	f := New(t, sampleapp.Startup{}, apphost.WithEventLogger(fxevent.NopLogger))
	c := DefaultClient(t, f, m.AsConstructor())

	response, err := c.Get("/mocked")
	assert.NoError(err)
	assert.Equal(599, response.StatusCode)
	m.AssertExpectations(t)
}
