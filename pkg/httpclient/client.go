package httpclient

import (
	"context"
	"crypto/tls"
	"fmt"
	"net"
	"net/http"
	"time"

	"golang.org/x/net/http2"
)

type options struct {
	dialAddress string
	timeout     time.Duration
	tlsConfig   *tls.Config
}

type Opt func(*options)

// WithDialAddress makes every connection go to addr (host:port) regardless of
// the request URL. The URL host is still used for the Host header and as the
// TLS server name, which lets a client reach a virtual host on a fixed IP.
func WithDialAddress(addr string) Opt {
	return func(o *options) {
		o.dialAddress = addr
	}
}

func WithTimeout(timeout time.Duration) Opt {
	return func(o *options) {
		o.timeout = timeout
	}
}

func WithTLSConfig(cfg *tls.Config) Opt {
	return func(o *options) {
		o.tlsConfig = cfg
	}
}

// New builds an HTTP/2-capable client.
func New(opts ...Opt) (*http.Client, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	dialer := &net.Dialer{
		Timeout:   30 * time.Second,
		KeepAlive: 30 * time.Second,
	}

	transport := &http.Transport{
		Proxy:                 http.ProxyFromEnvironment,
		DialContext:           dialer.DialContext,
		MaxIdleConns:          10,
		IdleConnTimeout:       90 * time.Second,
		TLSHandshakeTimeout:   10 * time.Second,
		ExpectContinueTimeout: time.Second,
	}
	if o.tlsConfig != nil {
		transport.TLSClientConfig = o.tlsConfig.Clone()
	}
	if o.dialAddress != "" {
		pinned := o.dialAddress
		transport.Proxy = nil
		transport.DialContext = func(ctx context.Context, network, _ string) (net.Conn, error) {
			return dialer.DialContext(ctx, network, pinned)
		}
	}

	if err := http2.ConfigureTransport(transport); err != nil {
		return nil, fmt.Errorf("failed to configure HTTP/2 transport: %w", err)
	}

	return &http.Client{
		Transport: transport,
		Timeout:   o.timeout,
	}, nil
}
