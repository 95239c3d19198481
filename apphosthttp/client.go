// SPDX-FileCopyrightText: 2023 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package apphosthttp

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"sync/atomic"
	"time"
)

const (
	// DefaultBaseAddress is the base address used when ClientConfig.BaseAddress is unset.
	DefaultBaseAddress = "http://localhost"

	// DefaultMaxAutomaticRedirections is the redirect limit used when
	// ClientConfig.MaxAutomaticRedirections is not positive.
	DefaultMaxAutomaticRedirections = 7
)

var (
	// ErrClientClosed is returned for any request made through a Client after Close.
	ErrClientClosed = errors.New("the client has been closed")

	// ErrNilServer is returned by NewClient when no server is supplied.
	ErrNilServer = errors.New("a client requires a non-nil server")
)

// InvalidBaseAddressError indicates that a base address is not an absolute http or https URL.
type InvalidBaseAddressError struct {
	BaseAddress string
	Err         error
}

func (ibae *InvalidBaseAddressError) Error() string {
	if ibae.Err != nil {
		return fmt.Sprintf("invalid base address [%s]: %s", ibae.BaseAddress, ibae.Err)
	}

	return fmt.Sprintf("invalid base address [%s]: must be an absolute http or https URL", ibae.BaseAddress)
}

func (ibae *InvalidBaseAddressError) Unwrap() error {
	return ibae.Err
}

// ClientConfig describes how a Client is created.  It can be unmarshaled from
// configuration, but note that the zero value turns redirects and cookies off.
// Use DefaultClientConfig as the starting point.
type ClientConfig struct {
	// BaseAddress is the absolute URL that relative request URLs resolve against.
	// It is also the Host the application sees.  Defaults to DefaultBaseAddress.
	BaseAddress string

	// AllowAutoRedirect controls whether redirect responses are followed.
	AllowAutoRedirect bool

	// MaxAutomaticRedirections limits followed redirects when AllowAutoRedirect is set.
	MaxAutomaticRedirections int

	// HandleCookies gives the client a cookie jar.
	HandleCookies bool

	// Timeout corresponds to http.Client.Timeout.
	Timeout time.Duration

	// Header is added to every request.
	Header http.Header
}

// DefaultClientConfig returns the configuration factories start from.
func DefaultClientConfig() ClientConfig {
	return ClientConfig{
		BaseAddress:              DefaultBaseAddress,
		AllowAutoRedirect:        true,
		MaxAutomaticRedirections: DefaultMaxAutomaticRedirections,
		HandleCookies:            true,
	}
}

// ParseBaseAddress validates a base address.  An empty value yields DefaultBaseAddress.
func ParseBaseAddress(v string) (*url.URL, error) {
	if len(v) == 0 {
		v = DefaultBaseAddress
	}

	u, err := url.Parse(v)
	switch {
	case err != nil:
		return nil, &InvalidBaseAddressError{BaseAddress: v, Err: err}

	case (u.Scheme != "http" && u.Scheme != "https") || len(u.Host) == 0:
		return nil, &InvalidBaseAddressError{BaseAddress: v}
	}

	return u, nil
}

func (cc ClientConfig) checkRedirect() func(*http.Request, []*http.Request) error {
	if !cc.AllowAutoRedirect {
		return func(*http.Request, []*http.Request) error {
			return http.ErrUseLastResponse
		}
	}

	limit := cc.MaxAutomaticRedirections
	if limit <= 0 {
		limit = DefaultMaxAutomaticRedirections
	}

	return func(_ *http.Request, via []*http.Request) error {
		if len(via) > limit {
			return fmt.Errorf("stopped after %d redirects", limit)
		}

		return nil
	}
}

// Client is an *http.Client bound to an in-process Server.  Request URLs
// given to its methods may be relative to its base address.
type Client struct {
	*http.Client

	base   *url.URL
	idle   interface{ CloseIdleConnections() }
	closed atomic.Bool
}

// NewClient creates a Client for a server.  The request pipeline, from the
// outside in, is: the closed check, cfg.Header, the chain, routing to the server.
// Any options run last against the embedded *http.Client.
func NewClient(s Server, cfg ClientConfig, chain RoundTripperChain, opts ...ClientOption) (*Client, error) {
	if s == nil {
		return nil, ErrNilServer
	}

	base, err := ParseBaseAddress(cfg.BaseAddress)
	if err != nil {
		return nil, err
	}

	target, err := url.Parse(s.URL())
	if err != nil {
		return nil, err
	}

	raw := s.Client()
	next := raw.Transport
	if next == nil {
		next = http.DefaultTransport
	}

	c := &Client{
		base: base,
	}

	c.idle, _ = next.(interface{ CloseIdleConnections() })
	c.Client = &http.Client{
		Transport: ApplyMiddleware(
			routeTo(target, next),
			c.guard,
			NewHeader(cfg.Header).AddRequest,
			chain.Then,
		),
		CheckRedirect: cfg.checkRedirect(),
		Timeout:       raw.Timeout,
	}

	if cfg.Timeout > 0 {
		c.Client.Timeout = cfg.Timeout
	}

	if cfg.HandleCookies {
		// cookiejar.New never fails with nil options
		c.Client.Jar, _ = cookiejar.New(nil)
	}

	if err := ClientOptions(opts).Apply(c.Client); err != nil {
		return nil, err
	}

	return c, nil
}

// routeTo sends every request to the target's scheme and host.  The request's
// Host header keeps the logical host from its URL.
func routeTo(target *url.URL, next http.RoundTripper) http.RoundTripper {
	return RoundTripperFunc(func(request *http.Request) (*http.Response, error) {
		if request.URL.Scheme == target.Scheme && request.URL.Host == target.Host {
			return next.RoundTrip(request)
		}

		routed := request.Clone(request.Context())
		if len(routed.Host) == 0 {
			routed.Host = request.URL.Host
		}

		routed.URL.Scheme = target.Scheme
		routed.URL.Host = target.Host
		return next.RoundTrip(routed)
	})
}

func (c *Client) guard(next http.RoundTripper) http.RoundTripper {
	return RoundTripperFunc(func(request *http.Request) (*http.Response, error) {
		if c.closed.Load() {
			return nil, ErrClientClosed
		}

		return next.RoundTrip(request)
	})
}

// BaseAddress returns a copy of this client's base address.
func (c *Client) BaseAddress() *url.URL {
	u := *c.base
	return &u
}

// Resolve resolves ref against the base address.
func (c *Client) Resolve(ref string) (*url.URL, error) {
	u, err := url.Parse(ref)
	if err != nil {
		return nil, err
	}

	return c.base.ResolveReference(u), nil
}

// NewRequest is http.NewRequestWithContext with ref resolved against the base address.
func (c *Client) NewRequest(ctx context.Context, method, ref string, body io.Reader) (*http.Request, error) {
	u, err := c.Resolve(ref)
	if err != nil {
		return nil, err
	}

	return http.NewRequestWithContext(ctx, method, u.String(), body)
}

// Do sends a request.  A relative request URL is resolved against the base address.
func (c *Client) Do(request *http.Request) (*http.Response, error) {
	if request.URL != nil && !request.URL.IsAbs() {
		resolved := request.Clone(request.Context())
		resolved.URL = c.base.ResolveReference(request.URL)
		if len(resolved.Host) == 0 {
			resolved.Host = resolved.URL.Host
		}

		request = resolved
	}

	return c.Client.Do(request)
}

func (c *Client) send(method, ref, contentType string, body io.Reader) (*http.Response, error) {
	request, err := c.NewRequest(context.Background(), method, ref, body)
	if err != nil {
		return nil, err
	}

	if len(contentType) > 0 {
		request.Header.Set("Content-Type", contentType)
	}

	return c.Client.Do(request)
}

// Get issues a GET to ref, which may be relative.
func (c *Client) Get(ref string) (*http.Response, error) {
	return c.send(http.MethodGet, ref, "", nil)
}

// Head issues a HEAD to ref, which may be relative.
func (c *Client) Head(ref string) (*http.Response, error) {
	return c.send(http.MethodHead, ref, "", nil)
}

// Post issues a POST to ref, which may be relative.
func (c *Client) Post(ref, contentType string, body io.Reader) (*http.Response, error) {
	return c.send(http.MethodPost, ref, contentType, body)
}

// PostForm issues a POST of url-encoded form data to ref, which may be relative.
func (c *Client) PostForm(ref string, data url.Values) (*http.Response, error) {
	return c.Post(ref, "application/x-www-form-urlencoded", strings.NewReader(data.Encode()))
}

// Closed reports whether Close has been called.
func (c *Client) Closed() bool {
	return c.closed.Load()
}

// Close marks this client closed and releases its idle connections.  Subsequent
// requests fail with ErrClientClosed.  Close is idempotent and always returns nil.
func (c *Client) Close() error {
	if c.closed.CompareAndSwap(false, true) && c.idle != nil {
		c.idle.CloseIdleConnections()
	}

	return nil
}
