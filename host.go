// SPDX-FileCopyrightText: 2023 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package apphost

import (
	"context"
	"net/http"
	"sync"
	"time"

	"go.uber.org/fx"
)

// Host is a started application.
type Host struct {
	app         *fx.App
	handler     http.Handler
	environment HostEnvironment

	stopOnce sync.Once
	stopErr  error
}

// Handler returns the application's handler, decorated with any middleware
// from the HostBuilder.
func (h *Host) Handler() http.Handler {
	return h.handler
}

// Environment returns the environment this host was built with.
func (h *Host) Environment() HostEnvironment {
	return h.environment
}

// StopTimeout is the application's configured stop timeout.
func (h *Host) StopTimeout() time.Duration {
	return h.app.StopTimeout()
}

// Close stops the application.  Only the first call has any effect.
// Subsequent calls return the same error as the first.
func (h *Host) Close(ctx context.Context) error {
	h.stopOnce.Do(func() {
		h.stopErr = h.app.Stop(ctx)
	})

	return h.stopErr
}
