// SPDX-FileCopyrightText: 2023 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

// Package sampleapp is a small web application hosted by the tests in this module.
package sampleapp

import (
	"encoding/json"
	"fmt"
	"net/http"
	"path/filepath"

	"github.com/gorilla/mux"
	"github.com/xmidt-org/apphost"
	"go.uber.org/fx"
)

const (
	// DefaultGreeting is used when no settings supply a greeting.
	DefaultGreeting = "Hi"

	// SessionCookie is the cookie issued by /login.
	SessionCookie = "session"
)

// Config is the application's settings.
type Config struct {
	Greeting string
	Session  string
}

// Startup is the application's entry point.
type Startup struct{}

// ConfigureHost sets up the application's components.
func (Startup) ConfigureHost(b *apphost.HostBuilder) error {
	b.Viper().SetDefault("greeting", DefaultGreeting)
	b.Viper().SetDefault("session", "abc123")
	b.Options(
		fx.Provide(
			NewConfig,
			NewRouter,
		),
	)

	return nil
}

// NewConfig reads the application's Config.
func NewConfig(u apphost.Unmarshaler) (cfg Config, err error) {
	err = u.Unmarshal(&cfg)
	return
}

// NewRouter builds the application's routes.  Static content is served from
// the wwwroot directory under the content root, if there is one.
func NewRouter(cfg Config, env apphost.HostEnvironment) *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/", func(response http.ResponseWriter, _ *http.Request) {
		response.Header().Set("Content-Type", "text/plain")
		fmt.Fprintf(response, "%s from %s", cfg.Greeting, env.Name)
	}).Methods("GET", "HEAD")

	r.HandleFunc("/environment", func(response http.ResponseWriter, _ *http.Request) {
		response.Header().Set("Content-Type", "application/json")
		json.NewEncoder(response).Encode(env)
	}).Methods("GET")

	r.HandleFunc("/host", func(response http.ResponseWriter, request *http.Request) {
		fmt.Fprint(response, request.Host)
	}).Methods("GET")

	r.HandleFunc("/redirect", func(response http.ResponseWriter, request *http.Request) {
		http.Redirect(response, request, "/", http.StatusFound)
	}).Methods("GET")

	r.HandleFunc("/login", func(response http.ResponseWriter, request *http.Request) {
		http.SetCookie(response, &http.Cookie{Name: SessionCookie, Value: cfg.Session, Path: "/"})
		response.WriteHeader(http.StatusNoContent)
	}).Methods("POST")

	r.HandleFunc("/whoami", func(response http.ResponseWriter, request *http.Request) {
		c, err := request.Cookie(SessionCookie)
		if err != nil {
			response.WriteHeader(http.StatusUnauthorized)
			return
		}

		fmt.Fprint(response, c.Value)
	}).Methods("GET")

	if len(env.ContentRoot) > 0 {
		r.PathPrefix("/static/").Handler(
			http.StripPrefix("/static/", http.FileServer(http.Dir(filepath.Join(env.ContentRoot, "wwwroot")))),
		)
	}

	return r
}
