// SPDX-FileCopyrightText: 2023 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package apphosthttp

import (
	"net/http"
	"reflect"
	"strings"

	"go.uber.org/multierr"
)

// InvalidClientOptionTypeError is returned by a ClientOption produced by AsClientOption
// to indicate that a type could not be converted.
type InvalidClientOptionTypeError struct {
	Type reflect.Type
}

// Error describes the type that could not be converted.
func (icote *InvalidClientOptionTypeError) Error() string {
	var o strings.Builder
	if icote.Type != nil {
		o.WriteString(icote.Type.String())
	} else {
		o.WriteString("<nil>")
	}

	o.WriteString(" cannot be converted to a ClientOption")

	return o.String()
}

// ClientOption is a general-purpose modifier for the *http.Client embedded in
// a Client.  Options run after the client's defaults have been applied, so they
// may overwrite anything NewClient set up.
type ClientOption interface {
	// Apply modifies the given client.
	Apply(*http.Client) error
}

// ClientOptionFunc is a function type that implements ClientOption.
type ClientOptionFunc func(*http.Client) error

// Apply implements ClientOption.
func (cof ClientOptionFunc) Apply(c *http.Client) error {
	return cof(c)
}

// ClientOptions is an aggregate set of ClientOption that acts as a single option.
type ClientOptions []ClientOption

// Apply invokes each option in order.  Every option runs even when an earlier
// one fails; the returned error aggregates all failures.
func (co ClientOptions) Apply(c *http.Client) (err error) {
	for _, o := range co {
		err = multierr.Append(err, o.Apply(c))
	}

	return
}

// Add converts each value with AsClientOption and appends it.
func (co *ClientOptions) Add(opts ...any) {
	for _, o := range opts {
		*co = append(*co, AsClientOption(o))
	}
}

// AsClientOption converts a value into a ClientOption.  This function never returns nil.
//
// Any of the following kinds of values can be converted:
//   - any type that implements ClientOption
//   - any type that supplies an Apply(*http.Client) method that returns no error
//   - a func(*http.Client)
//   - a func(*http.Client) error
//
// Anything else yields an option that fails with *InvalidClientOptionTypeError.
func AsClientOption(v any) ClientOption {
	type clientOptionNoError interface {
		Apply(*http.Client)
	}

	switch o := v.(type) {
	case ClientOption:
		return o

	case clientOptionNoError:
		return ClientOptionFunc(func(c *http.Client) error {
			o.Apply(c)
			return nil
		})

	case func(*http.Client) error:
		return ClientOptionFunc(o)

	case func(*http.Client):
		return ClientOptionFunc(func(c *http.Client) error {
			o(c)
			return nil
		})
	}

	return ClientOptionFunc(func(_ *http.Client) error {
		return &InvalidClientOptionTypeError{
			Type: reflect.TypeOf(v),
		}
	})
}
