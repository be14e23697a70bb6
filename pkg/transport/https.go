package transport

import (
	"bytes"
	"context"
	"crypto/tls"
	"crypto/x509"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/sirosfoundation/go-zimbra/pkg/compression"
)

// TLS version constants
const (
	TLS12 = tls.VersionTLS12
	TLS13 = tls.VersionTLS13
)

// ContentTypeSOAP is the content type of SOAP 1.2 requests.
const ContentTypeSOAP = "application/soap+xml; charset=utf-8"

// DefaultUserAgent is sent when HTTPSConfig.UserAgent is empty.
const DefaultUserAgent = "go-zimbra/1.0"

// maxErrorBody bounds how much of a non-2xx body is kept in StatusError.
const maxErrorBody = 4096

// Recommended TLS 1.2 cipher suites
var RecommendedTLS12CipherSuites = []uint16{
	tls.TLS_ECDHE_ECDSA_WITH_AES_256_GCM_SHA384,
	tls.TLS_ECDHE_ECDSA_WITH_AES_128_GCM_SHA256,
	tls.TLS_ECDHE_RSA_WITH_AES_256_GCM_SHA384,
	tls.TLS_ECDHE_RSA_WITH_AES_128_GCM_SHA256,
}

// HTTPSConfig contains HTTPS client configuration
type HTTPSConfig struct {
	MinTLSVersion      uint16
	MaxTLSVersion      uint16
	CipherSuites       []uint16
	Certificates       []tls.Certificate
	RootCAs            *x509.CertPool
	InsecureSkipVerify bool
	Timeout            time.Duration
	IdleConnTimeout    time.Duration
	UserAgent          string
	// Compression gzips request bodies when set.
	Compression *compression.Gzip
}

// DefaultHTTPSConfig returns a default HTTPS configuration
func DefaultHTTPSConfig() *HTTPSConfig {
	return &HTTPSConfig{
		MinTLSVersion:   TLS12,
		MaxTLSVersion:   TLS13,
		CipherSuites:    RecommendedTLS12CipherSuites,
		Timeout:         30 * time.Second,
		IdleConnTimeout: 90 * time.Second,
		UserAgent:       DefaultUserAgent,
	}
}

// StatusError reports a non-2xx HTTP status.
type StatusError struct {
	StatusCode int
	Body       []byte
}

func (e *StatusError) Error() string {
	body := e.Body
	if len(body) > 256 {
		body = body[:256]
	}
	return fmt.Sprintf("unexpected status code %d: %s", e.StatusCode, body)
}

// HTTPSClient posts SOAP documents
type HTTPSClient struct {
	client *http.Client
	config *HTTPSConfig
}

// NewHTTPSClient creates a new HTTPS client
func NewHTTPSClient(config *HTTPSConfig) *HTTPSClient {
	if config == nil {
		config = DefaultHTTPSConfig()
	}

	tlsConfig := &tls.Config{
		MinVersion:         config.MinTLSVersion,
		MaxVersion:         config.MaxTLSVersion,
		CipherSuites:       config.CipherSuites,
		Certificates:       config.Certificates,
		RootCAs:            config.RootCAs,
		InsecureSkipVerify: config.InsecureSkipVerify,
	}

	transport := &http.Transport{
		Proxy:               http.ProxyFromEnvironment,
		TLSClientConfig:     tlsConfig,
		IdleConnTimeout:     config.IdleConnTimeout,
		MaxIdleConns:        100,
		MaxIdleConnsPerHost: 10,
	}

	return &HTTPSClient{
		client: &http.Client{
			Transport: transport,
			Timeout:   config.Timeout,
		},
		config: config,
	}
}

// Send posts message to endpoint and returns the response body.
// For a non-2xx status the body is returned together with a *StatusError.
func (c *HTTPSClient) Send(ctx context.Context, endpoint string, message []byte, contentType string) ([]byte, error) {
	payload := message
	compressed := false
	if gz := c.config.Compression; gz != nil && gz.ShouldCompress(len(message)) {
		var err error
		payload, err = gz.Compress(message)
		if err != nil {
			return nil, fmt.Errorf("failed to compress request: %w", err)
		}
		compressed = true
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	userAgent := c.config.UserAgent
	if userAgent == "" {
		userAgent = DefaultUserAgent
	}
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("User-Agent", userAgent)
	// An explicit Accept-Encoding turns off net/http's transparent decoding.
	req.Header.Set("Accept-Encoding", compression.Encoding)
	if compressed {
		req.Header.Set("Content-Encoding", compression.Encoding)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	var responseBody []byte
	if resp.Header.Get("Content-Encoding") == compression.Encoding {
		responseBody, err = compression.Decompress(resp.Body)
	} else {
		responseBody, err = io.ReadAll(resp.Body)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		kept := responseBody
		if len(kept) > maxErrorBody {
			kept = kept[:maxErrorBody]
		}
		return responseBody, &StatusError{StatusCode: resp.StatusCode, Body: kept}
	}

	return responseBody, nil
}
