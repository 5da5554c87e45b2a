package security

import (
	"context"
	"crypto/tls"
	"fmt"
	"io"
	"net/http"
	"time"
)

// PreflightClientConfig holds configuration for the preflight HTTP client
type PreflightClientConfig struct {
	Timeout            time.Duration
	InsecureSkipVerify bool  // local dev servers often use self-signed certs
	MaxResponseSize    int64 // bytes read from the preflight response
	MinTLSVersion      uint16
}

// DefaultPreflightClientConfig returns the configuration used before a run
func DefaultPreflightClientConfig() PreflightClientConfig {
	return PreflightClientConfig{
		Timeout:            5 * time.Second,
		InsecureSkipVerify: true,
		MaxResponseSize:    64 * 1024,
		MinTLSVersion:      tls.VersionTLS12,
	}
}

// NewPreflightHTTPClient creates an HTTP client for reachability checks
func NewPreflightHTTPClient(config PreflightClientConfig) *http.Client {
	return &http.Client{
		Timeout: config.Timeout,
		Transport: &http.Transport{
			TLSClientConfig: &tls.Config{
				InsecureSkipVerify: config.InsecureSkipVerify,
				MinVersion:         config.MinTLSVersion,
			},
			TLSHandshakeTimeout:   10 * time.Second,
			ResponseHeaderTimeout: 10 * time.Second,
			MaxIdleConns:          2,
			IdleConnTimeout:       5 * time.Second,
			DisableKeepAlives:     true,
		},
	}
}

// LimitedReadAll reads response body with size limit
func LimitedReadAll(body io.ReadCloser, maxSize int64) ([]byte, error) {
	defer body.Close()
	limitedReader := io.LimitReader(body, maxSize)
	return io.ReadAll(limitedReader)
}

// Preflight issues a GET to url and reports whether anything answered. Any HTTP
// status counts as reachable; the browser decides what the page contains.
func Preflight(ctx context.Context, client *http.Client, url string, maxResponseSize int64) (int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return 0, err
	}

	resp, err := client.Do(req)
	if err != nil {
		return 0, fmt.Errorf("%s unreachable: %w", url, err)
	}
	if _, err := LimitedReadAll(resp.Body, maxResponseSize); err != nil {
		return resp.StatusCode, fmt.Errorf("read %s: %w", url, err)
	}
	return resp.StatusCode, nil
}
