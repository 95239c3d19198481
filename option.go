// SPDX-FileCopyrightText: 2023 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package apphost

import (
	"go.uber.org/multierr"
)

// Option represents something that can modify a target object.
type Option[T any] interface {
	Apply(*T) error
}

// OptionFunc is a closure type that can act as an Option.
type OptionFunc[T any] func(*T) error

// Apply implements Option.
func (of OptionFunc[T]) Apply(t *T) error {
	return of(t)
}

// Options is an aggregate Option that applies each element in order.
type Options[T any] []Option[T]

// Apply applies all the options in this slice, returning an
// aggregate error if any errors occurred.  Nil options are skipped.
func (o Options[T]) Apply(t *T) (err error) {
	for _, opt := range o {
		if opt != nil {
			err = multierr.Append(err, opt.Apply(t))
		}
	}

	return
}

// OptionClosure represents the closure types that are convertible
// into Option objects.
type OptionClosure[T any] interface {
	func(*T) | func(*T) error
}

// AsOption converts a closure into an Option for a given target type.
func AsOption[T any, F OptionClosure[T]](f F) Option[T] {
	switch fv := any(f).(type) {
	case func(*T) error:
		return OptionFunc[T](fv)

	case func(*T):
		return OptionFunc[T](func(t *T) error {
			fv(t)
			return nil
		})
	}

	return nil // unreachable given the OptionClosure constraint
}

// InvalidOption returns an Option that always fails with err.  Useful when
// an option cannot be constructed but the error should surface at build time.
func InvalidOption[T any](err error) Option[T] {
	return OptionFunc[T](func(_ *T) error {
		return err
	})
}
