// SPDX-FileCopyrightText: 2023 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package apphosthttp

import "net/http"

// Header is an immutable set of HTTP headers that a Client adds to
// each outgoing request.  The zero value is an empty Header.
//
// All keys are canonicalized and all values are deep copies of the source.
type Header struct {
	h http.Header
}

// NewHeader makes a canonicalized deep copy of src.  Empty keys and keys
// with no values are dropped.
func NewHeader(src http.Header) Header {
	var cleaned http.Header
	for key, values := range src {
		if len(key) > 0 && len(values) > 0 {
			if cleaned == nil {
				cleaned = make(http.Header, len(src))
			}

			key = http.CanonicalHeaderKey(key)
			cleaned[key] = append(cleaned[key], values...)
		}
	}

	return Header{h: cleaned}
}

// NewHeaders builds a Header from alternating keys and values.  A dangling
// key at the end gets an empty value.
func NewHeaders(kv ...string) Header {
	src := make(http.Header, len(kv)/2)
	for i := 0; i < len(kv); i += 2 {
		value := ""
		if i+1 < len(kv) {
			value = kv[i+1]
		}

		src[kv[i]] = append(src[kv[i]], value)
	}

	return NewHeader(src)
}

// Len returns the count of keys in this header
func (h Header) Len() int {
	return len(h.h)
}

// AddTo appends this Header's values to dst.
func (h Header) AddTo(dst http.Header) {
	for key, values := range h.h {
		dst[key] = append(dst[key], values...)
	}
}

// AddRequest is a RoundTripperConstructor that adds this Header to every
// request.  An empty Header returns next undecorated.
func (h Header) AddRequest(next http.RoundTripper) http.RoundTripper {
	if h.Len() == 0 {
		return next
	}

	return RoundTripperFunc(func(request *http.Request) (*http.Response, error) {
		// RoundTrippers must not modify the caller's request
		request = request.Clone(request.Context())
		if request.Header == nil {
			request.Header = make(http.Header, h.Len())
		}

		h.AddTo(request.Header)
		return next.RoundTrip(request)
	})
}
