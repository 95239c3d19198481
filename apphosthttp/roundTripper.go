// SPDX-FileCopyrightText: 2023 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package apphosthttp

import (
	"net/http"
)

// RoundTripperFunc is a function type that implements http.RoundTripper.
type RoundTripperFunc func(*http.Request) (*http.Response, error)

// RoundTrip implements http.RoundTripper
func (rtf RoundTripperFunc) RoundTrip(r *http.Request) (*http.Response, error) {
	return rtf(r)
}

// RoundTripperConstructor decorates an http.RoundTripper.  These are the
// client-side handlers that tests insert between a Client and its Server,
// e.g. to add credentials or record traffic.
type RoundTripperConstructor func(http.RoundTripper) http.RoundTripper

// RoundTripperChain is an immutable, ordered sequence of RoundTripperConstructors.
// The zero value is an empty chain.
type RoundTripperChain struct {
	c []RoundTripperConstructor
}

// NewRoundTripperChain creates a chain from a sequence of constructors.
// Nil constructors are skipped.
func NewRoundTripperChain(c ...RoundTripperConstructor) RoundTripperChain {
	return RoundTripperChain{}.Append(c...)
}

// Append returns a new chain with more added to the end of this one.
// This chain is not modified.
func (rtc RoundTripperChain) Append(more ...RoundTripperConstructor) RoundTripperChain {
	if len(more) == 0 {
		return rtc
	}

	c := make([]RoundTripperConstructor, 0, len(rtc.c)+len(more))
	c = append(c, rtc.c...)
	for _, f := range more {
		if f != nil {
			c = append(c, f)
		}
	}

	return RoundTripperChain{c: c}
}

// Extend is like Append, except that the additional constructors come from
// another chain.
func (rtc RoundTripperChain) Extend(more RoundTripperChain) RoundTripperChain {
	return rtc.Append(more.c...)
}

// Len returns the number of constructors in this chain.
func (rtc RoundTripperChain) Len() int {
	return len(rtc.c)
}

// Then decorates next with this chain.  The first constructor in the chain
// sees each request first, and the last one delegates to next.  A nil next
// is replaced with http.DefaultTransport.
func (rtc RoundTripperChain) Then(next http.RoundTripper) http.RoundTripper {
	if next == nil {
		next = http.DefaultTransport
	}

	return ApplyMiddleware(next, rtc.c...)
}
