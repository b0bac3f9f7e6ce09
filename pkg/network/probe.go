// Package network answers "can the sync server be reached right now".
package network

import (
	"context"
	"fmt"
	"net"
	"net/url"
	"time"
)

// Prober reports whether the network path to the sync server is up.
type Prober interface {
	Available(ctx context.Context) bool
}

// TCPProbe dials the sync server's host:port.
type TCPProbe struct {
	addr    string
	timeout time.Duration
}

// NewTCPProbe derives the dial address from an absolute URL. Ports default
// by scheme.
func NewTCPProbe(rawURL string, timeout time.Duration) (*TCPProbe, error) {
	u, err := url.Parse(rawURL)
	if err != nil || u.Host == "" {
		return nil, fmt.Errorf("probe target %q is not an absolute URL", rawURL)
	}

	port := u.Port()
	if port == "" {
		switch u.Scheme {
		case "https":
			port = "443"
		default:
			port = "80"
		}
	}
	return &TCPProbe{addr: net.JoinHostPort(u.Hostname(), port), timeout: timeout}, nil
}

// Addr is the host:port being dialled.
func (p *TCPProbe) Addr() string {
	return p.addr
}

// Available opens and closes one TCP connection.
func (p *TCPProbe) Available(ctx context.Context) bool {
	d := net.Dialer{Timeout: p.timeout}
	conn, err := d.DialContext(ctx, "tcp", p.addr)
	if err != nil {
		return false
	}
	conn.Close()
	return true
}
