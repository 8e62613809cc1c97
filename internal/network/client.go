package network

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"golang.org/x/net/proxy"
)

const defaultTimeout = 2 * time.Minute

// NewClient returns the client shared by every request of a run.
// With proxyAddr set (host:port of a SOCKS5 proxy such as a local Tor) all traffic goes through it.
func NewClient(proxyAddr string) (*http.Client, error) {
	client := &http.Client{Timeout: defaultTimeout}

	proxyAddr = strings.TrimSpace(proxyAddr)
	if proxyAddr == "" {
		return client, nil
	}

	dialer, err := proxy.SOCKS5("tcp", proxyAddr, nil, proxy.Direct)
	if err != nil {
		return nil, fmt.Errorf("socks5 proxy %s: %w", proxyAddr, err)
	}

	// Downloads are large and rare; no point keeping proxied connections around.
	transport := &http.Transport{DisableKeepAlives: true}
	if cd, ok := dialer.(proxy.ContextDialer); ok {
		transport.DialContext = cd.DialContext
	} else {
		transport.Dial = dialer.Dial
	}

	client.Transport = transport
	return client, nil
}
