package http

import (
	"net"
	"net/http"
	"time"
)

// TransportFunc wraps a round tripper, e.g. to add auth or logging.
type TransportFunc func(http.RoundTripper) http.RoundTripper

type clientConfig struct {
	requestTimeout        time.Duration
	dialTimeout           time.Duration
	keepAlive             time.Duration
	idleConnTimeout       time.Duration
	responseHeaderTimeout time.Duration
	transports            []TransportFunc
}

type ClientOption func(*clientConfig)

func WithRequestTimeout(timeout time.Duration) ClientOption {
	return func(c *clientConfig) { c.requestTimeout = timeout }
}

func WithConnClientTimeout(timeout time.Duration) ClientOption {
	return func(c *clientConfig) { c.dialTimeout = timeout }
}

func WithClientKeepAlive(keepAlive time.Duration) ClientOption {
	return func(c *clientConfig) { c.keepAlive = keepAlive }
}

func WithIdleConnTimeout(timeout time.Duration) ClientOption {
	return func(c *clientConfig) { c.idleConnTimeout = timeout }
}

func WithResponseHeaderTimeout(timeout time.Duration) ClientOption {
	return func(c *clientConfig) { c.responseHeaderTimeout = timeout }
}

// WithTransport wraps the base transport; wrappers apply in the order given.
func WithTransport(transport TransportFunc) ClientOption {
	return func(c *clientConfig) { c.transports = append(c.transports, transport) }
}

func newClient(opts ...ClientOption) *http.Client {
	cfg := &clientConfig{
		requestTimeout:        10 * time.Second,
		dialTimeout:           5 * time.Second,
		keepAlive:             90 * time.Second,
		idleConnTimeout:       90 * time.Second,
		responseHeaderTimeout: 10 * time.Second,
	}
	for _, opt := range opts {
		opt(cfg)
	}

	dialer := &net.Dialer{
		Timeout:   cfg.dialTimeout,
		KeepAlive: cfg.keepAlive,
	}

	var transport http.RoundTripper = &http.Transport{
		Proxy:                 http.ProxyFromEnvironment,
		DialContext:           dialer.DialContext,
		MaxIdleConnsPerHost:   10,
		TLSHandshakeTimeout:   10 * time.Second,
		ResponseHeaderTimeout: cfg.responseHeaderTimeout,
		IdleConnTimeout:       cfg.idleConnTimeout,
	}
	for _, wrap := range cfg.transports {
		transport = wrap(transport)
	}

	return &http.Client{
		Timeout:   cfg.requestTimeout,
		Transport: transport,
	}
}
