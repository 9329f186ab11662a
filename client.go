package pushover

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"mime"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/go-resty/resty/v2"
)

// Client sends messages to the Pushover API. It is safe for concurrent use
// once [Client.Connect] has returned.
type Client struct {
	endpoint string
	options  *Options

	mu          sync.Mutex
	restyClient *resty.Client
}

// New creates a client. Invalid option values are ignored; the options are
// validated by [Client.Connect].
func New(opts ...Option) *Client {
	options := newClientOptions()

	for _, opt := range opts {
		opt(options)
	}

	return &Client{
		endpoint: options.endpoint,
		options:  options,
	}
}

// Connect validates the options and prepares the HTTP transport. It does
// no network I/O, and calls after the first successful one are no-ops.
func (c *Client) Connect() error {
	if c == nil {
		return errors.New("pushover client is nil")
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.restyClient != nil {
		return nil
	}

	if c.endpoint == "" {
		return errors.New("endpoint must be set")
	}

	if err := c.options.Validate(); err != nil {
		return fmt.Errorf("invalid options: %w", err)
	}

	var rc *resty.Client
	if c.options.httpClient != nil {
		// resty writes the timeout into the http.Client it wraps.
		hc := *c.options.httpClient
		rc = resty.NewWithClient(&hc)
	} else {
		rc = resty.New()
	}

	// Debug dumps include the request body, which carries the credentials.
	rc.SetDebug(false).
		SetLogger(c.options.requestLogger).
		SetHeaders(c.options.requestHeaders).
		SetHeader("User-Agent", c.options.userAgent)

	if c.options.timeout > 0 {
		rc.SetTimeout(c.options.timeout)
	}

	c.restyClient = rc

	return nil
}

// SendMessage posts msg as a JSON document and returns the API's reply.
//
// A rejected message is not an error: it returns a [Response] whose Status
// is 0, with a nil error. A non-nil error is a [*TransportError].
func (c *Client) SendMessage(ctx context.Context, msg Message) (*Response, error) {
	rc, err := c.transport()
	if err != nil {
		return nil, err
	}

	c.options.requestLogger.Debugf("POST %s: sending message", c.endpoint)

	resp, err := rc.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(msg).
		Post(c.endpoint)

	return c.handleResponse(resp, err)
}

// SendAttachmentMessage uploads msg and its attachment as a multipart form
// and returns the API's reply. The attachment is read fully into memory and
// the call blocks until the upload completes; run it in its own goroutine
// when that matters.
//
// Errors follow [Client.SendMessage], plus a [*ValidationError] when the
// attachment changed since the message was built.
func (c *Client) SendAttachmentMessage(ctx context.Context, msg AttachmentMessage) (*Response, error) {
	rc, err := c.transport()
	if err != nil {
		return nil, err
	}

	if _, err := checkAttachment(msg.Attachment); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(msg.Attachment)
	if err != nil {
		return nil, &ValidationError{Field: "attachment", Reason: fmt.Sprintf("cannot read %q: %v", msg.Attachment, err)}
	}

	if int64(len(data)) > MaxAttachmentSize {
		return nil, &ValidationError{
			Field:  "attachment",
			Reason: fmt.Sprintf("file is too large (%d > %d bytes)", len(data), MaxAttachmentSize),
		}
	}

	fileName := filepath.Base(msg.Attachment)

	c.options.requestLogger.Debugf("POST %s: sending message with attachment %s (%d bytes)", c.endpoint, fileName, len(data))

	resp, err := rc.R().
		SetContext(ctx).
		SetMultipartFormData(msg.formFields()).
		SetMultipartField("attachment", fileName, attachmentContentType(fileName, data), bytes.NewReader(data)).
		Post(c.endpoint)

	return c.handleResponse(resp, err)
}

func (c *Client) transport() (*resty.Client, error) {
	if c == nil {
		return nil, errors.New("pushover client is nil")
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.restyClient == nil {
		return nil, errors.New("client not connected - call Connect() first")
	}

	return c.restyClient, nil
}

func (c *Client) handleResponse(resp *resty.Response, err error) (*Response, error) {
	if err != nil {
		transportErr := &TransportError{Method: http.MethodPost, URL: c.endpoint, Err: err}
		if resp != nil {
			transportErr.StatusCode = resp.StatusCode()
		}
		c.options.requestLogger.Errorf("%v", transportErr)
		return nil, transportErr
	}

	result, err := parseResponse(http.MethodPost, c.endpoint, resp.StatusCode(), resp.Body())
	if err != nil {
		c.options.requestLogger.Errorf("%v", err)
		return nil, err
	}

	if !result.Accepted() {
		c.options.requestLogger.Warnf("POST %s: request %s rejected (HTTP %d): %s",
			c.endpoint, result.Request, result.HTTPStatusCode, strings.Join(result.Errors, "; "))
	} else {
		c.options.requestLogger.Debugf("POST %s: request %s accepted", c.endpoint, result.Request)
	}

	return result, nil
}

func attachmentContentType(fileName string, data []byte) string {
	if contentType := mime.TypeByExtension(filepath.Ext(fileName)); contentType != "" {
		return contentType
	}
	return http.DetectContentType(data)
}

var (
	defaultClientOnce sync.Once
	defaultClient     *Client
)

func getDefaultClient() (*Client, error) {
	defaultClientOnce.Do(func() {
		defaultClient = New()
	})

	if err := defaultClient.Connect(); err != nil {
		return nil, err
	}

	return defaultClient, nil
}

// SendMessage sends msg to [APIEndpoint] with a default client.
// See [Client.SendMessage].
func SendMessage(ctx context.Context, msg Message) (*Response, error) {
	c, err := getDefaultClient()
	if err != nil {
		return nil, err
	}

	return c.SendMessage(ctx, msg)
}

// SendAttachmentMessage sends msg to [APIEndpoint] with a default client.
// See [Client.SendAttachmentMessage].
func SendAttachmentMessage(ctx context.Context, msg AttachmentMessage) (*Response, error) {
	c, err := getDefaultClient()
	if err != nil {
		return nil, err
	}

	return c.SendAttachmentMessage(ctx, msg)
}
