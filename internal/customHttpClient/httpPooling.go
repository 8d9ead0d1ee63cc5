package customHttpClient

import (
	"net/http"

	"github.com/akolanti/PolicyChat/internal/config"
)

var customTransport = &http.Transport{
	MaxIdleConns:        config.MaxIdleConns,
	MaxIdleConnsPerHost: config.MaxIdleConnsPerHost,
	IdleConnTimeout:     config.IdleConnTimeout,
}

var pooledClient = &http.Client{Transport: customTransport}

// Pooled returns the shared connection-reusing client for outbound llm
// provider calls.
func Pooled() *http.Client {
	return pooledClient
}
