// SPDX-FileCopyrightText: 2023 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package apphost

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHostEnvironment(t *testing.T) {
	testData := []struct {
		name                              string
		development, staging, production bool
	}{
		{name: Development, development: true},
		{name: "development", development: true},
		{name: Staging, staging: true},
		{name: "PRODUCTION", production: true},
		{name: "Custom"},
	}

	for _, record := range testData {
		t.Run(record.name, func(t *testing.T) {
			var (
				assert = assert.New(t)
				env    = HostEnvironment{Name: record.name}
			)

			assert.Equal(record.development, env.IsDevelopment())
			assert.Equal(record.staging, env.IsStaging())
			assert.Equal(record.production, env.IsProduction())
			assert.True(env.Is(record.name))
		})
	}
}
