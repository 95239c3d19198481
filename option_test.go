// SPDX-FileCopyrightText: 2023 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package apphost

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/multierr"
)

type optionTarget struct {
	values []int
}

func appendValue(v int) Option[optionTarget] {
	return AsOption[optionTarget](func(t *optionTarget) {
		t.values = append(t.values, v)
	})
}

func TestOptions(t *testing.T) {
	t.Run("Empty", func(t *testing.T) {
		var target optionTarget
		assert.NoError(t, Options[optionTarget]{}.Apply(&target))
		assert.Empty(t, target.values)
	})

	t.Run("Order", func(t *testing.T) {
		var target optionTarget
		err := Options[optionTarget]{appendValue(1), nil, appendValue(2), appendValue(3)}.Apply(&target)
		assert.NoError(t, err)
		assert.Equal(t, []int{1, 2, 3}, target.values)
	})

	t.Run("Errors", func(t *testing.T) {
		var (
			assert  = assert.New(t)
			require = require.New(t)

			target optionTarget
			err1   = errors.New("expected 1")
			err2   = errors.New("expected 2")
		)

		err := Options[optionTarget]{
			InvalidOption[optionTarget](err1),
			appendValue(1),
			AsOption[optionTarget](func(*optionTarget) error { return err2 }),
		}.Apply(&target)

		require.Error(err)
		assert.ErrorIs(err, err1)
		assert.ErrorIs(err, err2)
		assert.Len(multierr.Errors(err), 2)
		assert.Equal([]int{1}, target.values)
	})
}

func TestAsHostOption(t *testing.T) {
	var (
		assert  = assert.New(t)
		require = require.New(t)
		b       = NewHostBuilder()
	)

	require.NoError(AsHostOption(func(b *HostBuilder) { b.UseApplicationName("test") }).Apply(b))
	assert.Equal("test", b.Environment().ApplicationName)

	expected := errors.New("expected")
	assert.Same(expected, AsHostOption(func(*HostBuilder) error { return expected }).Apply(b))
}
