package utils

import (
	"fmt"
	"net"
	"net/url"
	"time"
)

// pingTimeout bounds every reachability probe.
const pingTimeout = 1500 * time.Millisecond

// PingService probes a service URL with a TCP dial. It proves reachability,
// not protocol health.
func PingService(serviceURL string, timeout time.Duration) error {
	parsed, err := url.Parse(serviceURL)
	if err != nil {
		return fmt.Errorf("invalid URL: %w", err)
	}

	port := parsed.Port()
	if port == "" {
		if parsed.Scheme == "https" {
			port = "443"
		} else {
			port = "80"
		}
	}

	address := net.JoinHostPort(parsed.Hostname(), port)
	conn, err := net.DialTimeout("tcp", address, timeout)
	if err != nil {
		return fmt.Errorf("failed to connect to %s: %w", address, err)
	}
	return conn.Close()
}

// PingAuthorizer checks if the Authorizer service is reachable
func PingAuthorizer(authzURL string) error {
	return PingService(authzURL, pingTimeout)
}

// PingStorage checks if the object storage endpoint is reachable. The
// endpoint is a bare host:port, not a URL.
func PingStorage(endpoint string, useSSL bool) error {
	scheme := "http"
	if useSSL {
		scheme = "https"
	}
	return PingService(scheme+"://"+endpoint, pingTimeout)
}
