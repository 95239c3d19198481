// SPDX-FileCopyrightText: 2023 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package apphosthttp

// Middleware is the underlying type for decorators.
type Middleware[T any] interface {
	~func(T) T
}

// ApplyMiddleware decorates t so that the first middleware given is the
// outermost, i.e. it sees a call before any of the others.
func ApplyMiddleware[T any, M Middleware[T]](t T, m ...M) T {
	for i := len(m) - 1; i >= 0; i-- {
		t = m[i](t)
	}

	return t
}
