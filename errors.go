// SPDX-FileCopyrightText: 2023 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package apphost

import (
	"errors"
	"fmt"

	"go.uber.org/dig"
)

var (
	// ErrClosed is returned by a Factory that has been closed.
	ErrClosed = errors.New("the factory has been closed")

	// ErrNoHostBuilder indicates that an entry point exposed nothing a
	// Resolver knows how to turn into a HostBuilder.
	ErrNoHostBuilder = errors.New("the entry point does not expose a host builder")

	// ErrNoHandler indicates that a built application supplied neither an
	// http.Handler nor a *mux.Router component.
	ErrNoHandler = errors.New("the application did not provide an http.Handler or *mux.Router")
)

// ConfigurationError is returned when a Factory cannot resolve, configure,
// or start its host.  These errors are not retried by callers in any
// meaningful way: the application or the test setup must be fixed.
type ConfigurationError struct {
	// Entrypoint is the name of the entry point, as returned by EntrypointName.
	Entrypoint string

	// Err is the underlying cause.
	Err error
}

// Unwrap produces the underlying cause.
func (ce *ConfigurationError) Unwrap() error {
	return ce.Err
}

// RootCause strips away the dependency graph context from the cause.  For
// errors that didn't originate in the fx container, this is just Err.
func (ce *ConfigurationError) RootCause() error {
	return dig.RootCause(ce.Err)
}

// Error describes the configuration problem.
func (ce *ConfigurationError) Error() string {
	return fmt.Sprintf("unable to configure host for [%s]: %s", ce.Entrypoint, ce.Err)
}

// MissingFileError indicates that a support file required by a Factory
// does not exist relative to the factory's base directory.
type MissingFileError struct {
	// Path is the absolute path that was checked.
	Path string

	// Err is the error from the filesystem, usually satisfying fs.ErrNotExist.
	Err error
}

// Unwrap produces the filesystem error.
func (mfe *MissingFileError) Unwrap() error {
	return mfe.Err
}

// Error names the missing file.
func (mfe *MissingFileError) Error() string {
	return fmt.Sprintf("required support file [%s] is missing", mfe.Path)
}
