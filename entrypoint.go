// SPDX-FileCopyrightText: 2023 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package apphost

import (
	"errors"
	"fmt"

	"github.com/xmidt-org/apphost/internal/apphostreflect"
	"go.uber.org/fx"
)

// errNilBuilder is returned when a Resolver produces neither a builder nor an error.
var errNilBuilder = errors.New("the resolver returned a nil host builder")

// HostConfigurer is the preferred way for an application to expose its
// entry point.  The builder passed to ConfigureHost already carries the
// application name.
type HostConfigurer interface {
	ConfigureHost(*HostBuilder) error
}

// Moduler is implemented by entry points that expose their application as
// a single fx.Option.
type Moduler interface {
	Module() fx.Option
}

// Namer may be implemented by entry points to control their name.
type Namer interface {
	Name() string
}

// Resolver is the strategy for turning an entry point into a HostBuilder.
type Resolver interface {
	Resolve(entrypoint any) (*HostBuilder, error)
}

// ResolverFunc is a closure type that implements Resolver.
type ResolverFunc func(any) (*HostBuilder, error)

// Resolve implements Resolver.
func (rf ResolverFunc) Resolve(entrypoint any) (*HostBuilder, error) {
	return rf(entrypoint)
}

// DefaultResolver is the Resolver used when a Factory is given none.
// It recognizes, in order:
//
//   - a HostConfigurer
//   - a Moduler
//   - an fx.Option
//   - a func(*HostBuilder) or func(*HostBuilder) error
//
// Anything else, including nil, results in ErrNoHostBuilder.
type DefaultResolver struct{}

// Resolve implements Resolver.
func (DefaultResolver) Resolve(entrypoint any) (*HostBuilder, error) {
	b := NewHostBuilder().UseApplicationName(EntrypointName(entrypoint))

	var err error
	switch ep := entrypoint.(type) {
	case HostConfigurer:
		err = ep.ConfigureHost(b)

	case Moduler:
		b.Options(ep.Module())

	case fx.Option:
		b.Options(ep)

	case func(*HostBuilder):
		ep(b)

	case func(*HostBuilder) error:
		err = ep(b)

	default:
		err = fmt.Errorf("%w: %s", ErrNoHostBuilder, apphostreflect.TypeName(entrypoint))
	}

	if err != nil {
		return nil, err
	}

	return b, nil
}

// EntrypointName returns the name of an entry point.  If the entry point
// implements Namer, that is used.  Otherwise, the import path of the package
// that declares its type is used, falling back to the type's name for
// unnamed types such as closures.
func EntrypointName(entrypoint any) string {
	if n, ok := entrypoint.(Namer); ok {
		return n.Name()
	}

	if pp := apphostreflect.PackagePath(entrypoint); len(pp) > 0 {
		return pp
	}

	return apphostreflect.TypeName(entrypoint)
}

// ContentRootResolver is the strategy for locating an application's content
// root from a key, usually the result of EntrypointName.  An empty result with
// no error means the application has no content root.
//
// apphostroot.Resolver is the default implementation.
type ContentRootResolver interface {
	Resolve(key string) (string, error)
}

// ContentRootResolverFunc is a closure type that implements ContentRootResolver.
type ContentRootResolverFunc func(string) (string, error)

// Resolve implements ContentRootResolver.
func (crf ContentRootResolverFunc) Resolve(key string) (string, error) {
	return crf(key)
}
