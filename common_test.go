// SPDX-FileCopyrightText: 2023 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package apphost

import (
	"errors"
	"net/http"
	"time"

	"go.uber.org/fx"
)

type TestConfig struct {
	Name     string
	Age      int
	Interval time.Duration
}

type badWriter struct{}

func (bw badWriter) Write([]byte) (int, error) {
	return 0, errors.New("expected Write error")
}

// okHandler writes a fixed body with a 200 status
func okHandler(body string) http.Handler {
	return http.HandlerFunc(func(response http.ResponseWriter, _ *http.Request) {
		response.Header().Set("Content-Type", "text/plain")
		_, _ = response.Write([]byte(body))
	})
}

// provideHandler is an fx.Option entry point that serves body
func provideHandler(body string) fx.Option {
	return fx.Provide(
		func() http.Handler { return okHandler(body) },
	)
}
