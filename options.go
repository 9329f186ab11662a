package pushover

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const maxTimeout = 5 * time.Minute

type Option func(*Options)

type Options struct {
	endpoint       string
	timeout        time.Duration
	requestLogger  RequestLogger
	requestHeaders map[string]string
	userAgent      string
	httpClient     *http.Client
}

func newClientOptions() *Options {
	return &Options{
		endpoint:      APIEndpoint,
		requestLogger: &NoopLogger{},
		requestHeaders: map[string]string{
			"Accept": "application/json",
		},
		userAgent: "pushover-go-client",
	}
}

// WithEndpoint overrides the messages endpoint, typically to point the
// client at a test server.
func WithEndpoint(endpoint string) Option {
	return func(o *Options) {
		endpoint = strings.TrimSpace(endpoint)
		if endpoint != "" {
			o.endpoint = endpoint
		}
	}
}

// WithTimeout bounds each request. Zero keeps the HTTP client's default.
func WithTimeout(timeout time.Duration) Option {
	return func(o *Options) {
		if timeout >= 0 {
			o.timeout = timeout
		}
	}
}

func WithRequestLogger(logger RequestLogger) Option {
	return func(o *Options) {
		if logger != nil {
			o.requestLogger = logger
		}
	}
}

// WithRequestHeader adds a header to every request. Content-Type is chosen
// per request and Accept is fixed, so neither can be overridden.
func WithRequestHeader(header, value string) Option {
	return func(o *Options) {
		header = strings.TrimSpace(header)

		if header == "" || strings.EqualFold(header, "Content-Type") || strings.EqualFold(header, "Accept") {
			return
		}

		o.requestHeaders[header] = value
	}
}

func WithUserAgent(userAgent string) Option {
	return func(o *Options) {
		userAgent = strings.TrimSpace(userAgent)
		if userAgent != "" {
			o.userAgent = userAgent
		}
	}
}

// WithHTTPClient sends requests through a copy of hc instead of a fresh
// client. hc itself is never modified.
func WithHTTPClient(hc *http.Client) Option {
	return func(o *Options) {
		if hc != nil {
			o.httpClient = hc
		}
	}
}

// Validate checks the options as a whole. It is called by [Client.Connect].
func (o *Options) Validate() error {
	if o.endpoint == "" {
		return errors.New("endpoint must be set")
	}

	u, err := url.Parse(o.endpoint)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("endpoint %q must be an absolute http(s) URL", o.endpoint)
	}

	if o.timeout < 0 {
		return errors.New("timeout must be non-negative")
	}

	if o.timeout > maxTimeout {
		return fmt.Errorf("timeout must not exceed %v", maxTimeout)
	}

	if o.requestLogger == nil {
		return errors.New("requestLogger must not be nil")
	}

	return nil
}
