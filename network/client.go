// Package network provides the shared HTTP client.
package network

import (
	"net/http"
	"time"
)

// Client is the process-wide HTTP client. Transfers are small API and
// manifest responses, so the overall timeout is tight and the
// connection pool modest. Media streaming bypasses this client
// entirely; the engine does its own networking.
var Client = &http.Client{
	Timeout:   30 * time.Second,
	Transport: newTransport(),
}

func newTransport() *http.Transport {
	t := http.DefaultTransport.(*http.Transport).Clone()
	t.MaxIdleConnsPerHost = 4
	t.IdleConnTimeout = 90 * time.Second
	t.ResponseHeaderTimeout = 15 * time.Second
	return t
}
