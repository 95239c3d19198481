// SPDX-FileCopyrightText: 2023 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package apphosthttp

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"

	"github.com/xmidt-org/httpaux"
	"github.com/xmidt-org/httpaux/server"
	"go.akshayshah.org/memhttp"
)

var (
	// ErrNilHandler is returned by a ServerFactory when asked to serve a nil handler.
	ErrNilHandler = errors.New("a server requires a non-nil handler")
)

// Server is an in-process server that dispatches to an application's handler.
type Server interface {
	// Client returns a new *http.Client whose transport is wired to this server.
	Client() *http.Client

	// URL is the address at which the server's transport reaches it.  Clients
	// built by NewClient route to this address regardless of their base address.
	URL() string

	// Close stops the server.  Implementations must tolerate repeated calls.
	Close() error
}

// ServerFactory is the creation strategy for a Server.
type ServerFactory interface {
	NewServer(http.Handler) (Server, error)
}

// ServerFactoryFunc is a closure type that implements ServerFactory.
type ServerFactoryFunc func(http.Handler) (Server, error)

// NewServer implements ServerFactory.
func (sff ServerFactoryFunc) NewServer(h http.Handler) (Server, error) {
	return sff(h)
}

// ServerConfig is the built-in ServerFactory.  Its zero value produces
// an in-memory server.  It can be unmarshaled from configuration.
type ServerConfig struct {
	// Loopback, if set, serves over a real listener bound to the loopback
	// interface instead of in-memory pipes.
	Loopback bool

	// Header supplies HTTP headers to emit on every response from the server
	Header http.Header
}

// NewServer creates and starts a Server for h.
func (sc ServerConfig) NewServer(h http.Handler) (Server, error) {
	if h == nil {
		return nil, ErrNilHandler
	}

	h = server.Header(httpaux.NewHeader(sc.Header).SetTo)(h)
	if sc.Loopback {
		return newLoopbackServer(h), nil
	}

	return newMemoryServer(h)
}

// memoryServer adapts memhttp, which never opens a socket.
type memoryServer struct {
	srv       *memhttp.Server
	closeOnce sync.Once
	closeErr  error
}

func newMemoryServer(h http.Handler) (*memoryServer, error) {
	srv, err := memhttp.New(h)
	if err != nil {
		return nil, err
	}

	return &memoryServer{srv: srv}, nil
}

func (ms *memoryServer) Client() *http.Client {
	return ms.srv.Client()
}

func (ms *memoryServer) URL() string {
	return ms.srv.URL()
}

func (ms *memoryServer) Close() error {
	ms.closeOnce.Do(func() {
		ms.closeErr = ms.srv.Close()
	})

	return ms.closeErr
}

// loopbackServer adapts httptest, which listens on 127.0.0.1 with an ephemeral port.
type loopbackServer struct {
	srv       *httptest.Server
	closeOnce sync.Once
}

func newLoopbackServer(h http.Handler) *loopbackServer {
	return &loopbackServer{
		srv: httptest.NewServer(h),
	}
}

func (ls *loopbackServer) Client() *http.Client {
	// httptest hands out one shared client, so copy it
	c := *ls.srv.Client()
	return &c
}

func (ls *loopbackServer) URL() string {
	return ls.srv.URL
}

func (ls *loopbackServer) Close() error {
	ls.closeOnce.Do(ls.srv.Close)
	return nil
}
