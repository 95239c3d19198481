// SPDX-FileCopyrightText: 2023 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package apphosthttp

import (
	"io"
	"net/http"
	"strings"
	"sync"
)

// stubServer is a Server whose transport records requests instead of
// dispatching them.
type stubServer struct {
	lock     sync.Mutex
	url      string
	status   int
	requests []*http.Request
	closed   int
	idle     int
}

func newStubServer() *stubServer {
	return &stubServer{
		url:    "http://inprocess.test",
		status: 299,
	}
}

func (ss *stubServer) RoundTrip(request *http.Request) (*http.Response, error) {
	ss.lock.Lock()
	ss.requests = append(ss.requests, request)
	ss.lock.Unlock()

	return &http.Response{
		StatusCode: ss.status,
		Header:     http.Header{},
		Body:       io.NopCloser(strings.NewReader("")),
		Request:    request,
	}, nil
}

func (ss *stubServer) CloseIdleConnections() {
	ss.lock.Lock()
	ss.idle++
	ss.lock.Unlock()
}

func (ss *stubServer) Client() *http.Client {
	return &http.Client{Transport: ss}
}

func (ss *stubServer) URL() string {
	return ss.url
}

func (ss *stubServer) Close() error {
	ss.closed++
	return nil
}

func (ss *stubServer) last() *http.Request {
	ss.lock.Lock()
	defer ss.lock.Unlock()
	if len(ss.requests) == 0 {
		return nil
	}

	return ss.requests[len(ss.requests)-1]
}
