// SPDX-FileCopyrightText: 2023 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package apphosttest

import (
	"net/http"

	"github.com/stretchr/testify/mock"
	"github.com/xmidt-org/apphost/apphosthttp"
)

// RequestMatcher is a Fluent Builder for a set of match criteria for an *http.Request.
// Used with mock.MatchedBy to match requests by state rather than by identity.
type RequestMatcher struct {
	predicates []func(*http.Request) bool
}

// Match adds a predicate to this matcher, and returns this matcher for chaining.
func (rm *RequestMatcher) Match(p func(*http.Request) bool) *RequestMatcher {
	rm.predicates = append(rm.predicates, p)
	return rm
}

// Method matches on the request method.
func (rm *RequestMatcher) Method(v string) *RequestMatcher {
	return rm.Match(func(request *http.Request) bool {
		return request.Method == v
	})
}

// URL matches on the full request URL.  Handlers in a client's chain see
// the logical URL, resolved against the client's base address.
func (rm *RequestMatcher) URL(v string) *RequestMatcher {
	return rm.Match(func(request *http.Request) bool {
		return request.URL != nil && request.URL.String() == v
	})
}

// Path matches on the request URL's path.
func (rm *RequestMatcher) Path(v string) *RequestMatcher {
	return rm.Match(func(request *http.Request) bool {
		return request.URL != nil && request.URL.Path == v
	})
}

// Host matches on the logical host of the request.
func (rm *RequestMatcher) Host(v string) *RequestMatcher {
	return rm.Match(func(request *http.Request) bool {
		if len(request.Host) > 0 {
			return request.Host == v
		}

		return request.URL != nil && request.URL.Host == v
	})
}

// Header matches on a request header.  For a multi-valued header,
// the expected value must appear in the actual list of values.
func (rm *RequestMatcher) Header(key, expected string) *RequestMatcher {
	return rm.Match(func(request *http.Request) bool {
		for _, v := range request.Header.Values(key) {
			if v == expected {
				return true
			}
		}

		return false
	})
}

// Matches may be passed to mock.MatchedBy.  This method returns
// true if and only if all the predicates return true.
func (rm RequestMatcher) Matches(candidate *http.Request) bool {
	for _, p := range rm.predicates {
		if !p(candidate) {
			return false
		}
	}

	return true
}

// RoundTripCall is a mocked Call that allows a clearer return declaration.
type RoundTripCall struct {
	*mock.Call
}

// Response sets the RoundTrip return to the given response with no error.
// The underlying *mock.Call is returned to continue method chaining if desired.
func (rtc RoundTripCall) Response(r *http.Response) *mock.Call {
	return rtc.Call.Return(r, error(nil))
}

// Error sets the RoundTrip return to the given error and a nil *http.Response.
// The underlying *mock.Call is returned to continue method chaining if desired.
func (rtc RoundTripCall) Error(err error) *mock.Call {
	return rtc.Call.Return((*http.Response)(nil), err)
}

// MockRoundTripper is a mocked http.RoundTripper.
type MockRoundTripper struct {
	mock.Mock
}

// RoundTrip executes the appropriate mocked call.
func (m *MockRoundTripper) RoundTrip(request *http.Request) (*http.Response, error) {
	args := m.Called(request)
	response, _ := args.Get(0).(*http.Response)
	return response, args.Error(1)
}

// Expect sets an expectation for the given request, returned a RoundTripCall
// to specify the return values and any other criteria.
func (m *MockRoundTripper) Expect(request *http.Request) RoundTripCall {
	return RoundTripCall{
		Call: m.On("RoundTrip", request),
	}
}

// ExpectMatch sets an expectation for a request matching the given criteria, and
// returns a RoundTripCall to specify return values and optionally other
// aspects of the call.
func (m *MockRoundTripper) ExpectMatch(matcher RequestMatcher) RoundTripCall {
	return RoundTripCall{
		Call: m.On("RoundTrip", mock.MatchedBy(matcher.Matches)),
	}
}

// AsConstructor returns a handler for a client's chain that answers every
// request with this mock.  Requests never reach the server.
func (m *MockRoundTripper) AsConstructor() apphosthttp.RoundTripperConstructor {
	return func(http.RoundTripper) http.RoundTripper {
		return m
	}
}

// Spy returns a handler for a client's chain that records each request with
// this mock, then passes it on.  The mocked response is discarded unless the
// mock returns an error.
func (m *MockRoundTripper) Spy() apphosthttp.RoundTripperConstructor {
	return func(next http.RoundTripper) http.RoundTripper {
		return apphosthttp.RoundTripperFunc(func(request *http.Request) (*http.Response, error) {
			if _, err := m.RoundTrip(request); err != nil {
				return nil, err
			}

			return next.RoundTrip(request)
		})
	}
}
