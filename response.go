package pushover

import (
	"encoding/json"
	"strings"
)

const maxErrorBodyLength = 512

// Response is the reply document returned by the messages endpoint.
//
// Status reflects application-level acceptance, not transport success: a
// Response with Status 0 came back from a call that returned a nil error.
type Response struct {
	// Status is 1 when the request was accepted and 0 otherwise.
	Status int `json:"status"`
	// Request is the API's identifier for this request.
	Request string `json:"request"`
	// User is set when the user key was the problem.
	User string `json:"user,omitempty"`
	// Token is set when the application token was the problem.
	Token string `json:"token,omitempty"`
	// Errors lists human-readable reasons for a rejection.
	Errors []string `json:"errors,omitempty"`
	// Receipt is returned for emergency-priority messages.
	Receipt string `json:"receipt,omitempty"`

	// HTTPStatusCode is the status of the HTTP reply that carried the document.
	HTTPStatusCode int `json:"-"`
}

// Accepted reports whether the API accepted the request.
func (r *Response) Accepted() bool {
	return r != nil && r.Status == 1
}

// Err returns nil for an accepted response and a [*RejectionError] otherwise.
func (r *Response) Err() error {
	if r == nil {
		return &RejectionError{}
	}

	if r.Accepted() {
		return nil
	}

	return &RejectionError{
		Request:        r.Request,
		User:           r.User,
		Token:          r.Token,
		Errors:         append([]string(nil), r.Errors...),
		HTTPStatusCode: r.HTTPStatusCode,
	}
}

// wireResponse mirrors Response with a pointer status so a JSON body that
// is not a Pushover reply can be told apart from a rejection.
type wireResponse struct {
	Status  *int     `json:"status"`
	Request string   `json:"request"`
	User    string   `json:"user"`
	Token   string   `json:"token"`
	Errors  []string `json:"errors"`
	Receipt string   `json:"receipt"`
}

func parseResponse(method, url string, statusCode int, body []byte) (*Response, error) {
	trimmed := strings.TrimSpace(string(body))

	if trimmed == "" {
		return nil, &TransportError{Method: method, URL: url, StatusCode: statusCode, Body: "(empty error body)"}
	}

	var wire wireResponse
	if err := json.Unmarshal([]byte(trimmed), &wire); err != nil || wire.Status == nil {
		return nil, &TransportError{Method: method, URL: url, StatusCode: statusCode, Body: truncate(trimmed, maxErrorBodyLength)}
	}

	return &Response{
		Status:         *wire.Status,
		Request:        wire.Request,
		User:           wire.User,
		Token:          wire.Token,
		Errors:         wire.Errors,
		Receipt:        wire.Receipt,
		HTTPStatusCode: statusCode,
	}, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
