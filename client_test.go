package pushover

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"
)

type recordingLogger struct {
	mu     sync.Mutex
	errors []string
	warns  []string
	debugs []string
}

func (l *recordingLogger) Errorf(format string, v ...any) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.errors = append(l.errors, fmt.Sprintf(format, v...))
}

func (l *recordingLogger) Warnf(format string, v ...any) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.warns = append(l.warns, fmt.Sprintf(format, v...))
}

func (l *recordingLogger) Debugf(format string, v ...any) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.debugs = append(l.debugs, fmt.Sprintf(format, v...))
}

func newConnectedClient(t *testing.T, url string, opts ...Option) *Client {
	t.Helper()

	client := New(append([]Option{WithEndpoint(url)}, opts...)...)
	if err := client.Connect(); err != nil {
		t.Fatalf("connect failed: %v", err)
	}

	return client
}

func writeAccepted(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":1,"request":"647d2300-702c-4b38-8b2f-d56326ae460b"}`))
}

func TestNew(t *testing.T) {
	t.Parallel()

	client := New(WithEndpoint("http://example.com/1/messages.json"), WithTimeout(0))

	if client == nil {
		t.Fatal("expected client to be created")
	}

	if client.endpoint != "http://example.com/1/messages.json" {
		t.Errorf("expected endpoint=http://example.com/1/messages.json, got %s", client.endpoint)
	}

	if New().endpoint != APIEndpoint {
		t.Errorf("expected default endpoint=%s, got %s", APIEndpoint, New().endpoint)
	}
}

func TestConnect_NilClient(t *testing.T) {
	t.Parallel()

	var client *Client

	err := client.Connect()

	if err == nil || err.Error() != "pushover client is nil" {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestConnect_EmptyEndpoint(t *testing.T) {
	t.Parallel()

	client := New()
	client.endpoint = ""

	err := client.Connect()

	if err == nil {
		t.Fatal("expected error for empty endpoint")
	}

	if err.Error() != "endpoint must be set" {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestConnect_InvalidOptions(t *testing.T) {
	t.Parallel()

	client := New()
	// Force invalid options by setting nil logger
	client.options.requestLogger = nil

	err := client.Connect()

	if err == nil {
		t.Fatal("expected error for invalid options")
	}

	if !strings.Contains(err.Error(), "invalid options") {
		t.Errorf("expected error to contain 'invalid options', got: %v", err)
	}
}

func TestConnect_NoNetwork(t *testing.T) {
	t.Parallel()

	callCount := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		callCount++
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client := New(WithEndpoint(server.URL))

	if err := client.Connect(); err != nil {
		t.Fatalf("first connect failed: %v", err)
	}

	first := client.restyClient

	if err := client.Connect(); err != nil {
		t.Fatalf("second connect failed: %v", err)
	}

	if client.restyClient != first {
		t.Error("second connect should be a no-op")
	}

	if callCount != 0 {
		t.Errorf("expected no requests, got %d", callCount)
	}
}

func TestConnect_HTTPClientNotModified(t *testing.T) {
	t.Parallel()

	hc := &http.Client{}
	client := New(WithHTTPClient(hc), WithTimeout(3*time.Second))

	if err := client.Connect(); err != nil {
		t.Fatalf("connect failed: %v", err)
	}

	if hc.Timeout != 0 {
		t.Errorf("supplied http client must not be modified, got timeout %v", hc.Timeout)
	}

	if got := client.restyClient.GetClient(); got == hc || got.Timeout != 3*time.Second {
		t.Errorf("expected a copy with timeout 3s, got %p (%v)", got, got.Timeout)
	}
}

func TestSendMessage_CredentialsNeverLogged(t *testing.T) {
	t.Parallel()

	const userKey = "uQiRzpo4DXghDmr9QzzfQu27cmVRsG"
	const appToken = "azGDORePK8gMaC0QOYAMyEEuzJnyUi"

	tests := []struct {
		name    string
		handler http.HandlerFunc
		closed  bool
	}{
		{
			name:    "accepted",
			handler: func(w http.ResponseWriter, _ *http.Request) { writeAccepted(w) },
		},
		{
			name: "rejected",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(http.StatusBadRequest)
				_, _ = w.Write([]byte(`{"token":"invalid","errors":["application token is invalid"],"status":0,"request":"r"}`))
			},
		},
		{
			name: "unreadable body",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(http.StatusBadGateway)
				_, _ = w.Write([]byte("<html>bad gateway</html>"))
			},
		},
		{
			name:    "connection refused",
			handler: func(w http.ResponseWriter, _ *http.Request) { writeAccepted(w) },
			closed:  true,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			server := httptest.NewServer(tt.handler)
			defer server.Close()

			logger := &recordingLogger{}
			client := newConnectedClient(t, server.URL, WithRequestLogger(logger))

			if client.restyClient.Debug {
				t.Fatal("resty debug logging must stay off")
			}

			if tt.closed {
				server.Close()
			}

			_, _ = client.SendMessage(context.Background(), NewMessageBuilder(userKey, appToken, "hi").Build())

			logger.mu.Lock()
			defer logger.mu.Unlock()

			lines := append(append(append([]string{}, logger.errors...), logger.warns...), logger.debugs...)
			if len(lines) == 0 {
				t.Fatal("expected the send to be logged")
			}

			for _, line := range lines {
				if strings.Contains(line, userKey) || strings.Contains(line, appToken) {
					t.Errorf("credentials must not be logged: %s", line)
				}
			}
		})
	}
}

func TestSendMessage_NilClient(t *testing.T) {
	t.Parallel()

	var client *Client

	_, err := client.SendMessage(context.Background(), Message{})

	if err == nil || err.Error() != "pushover client is nil" {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestSendMessage_NotConnected(t *testing.T) {
	t.Parallel()

	client := New()

	_, err := client.SendMessage(context.Background(), Message{})

	if err == nil {
		t.Fatal("expected error for not connected client")
	}

	if err.Error() != "client not connected - call Connect() first" {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestSendMessage_Success(t *testing.T) {
	t.Parallel()

	var (
		method, contentType, accept, userAgent, customHeader string
		capturedBody                                         []byte
	)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		method = r.Method
		contentType = r.Header.Get("Content-Type")
		accept = r.Header.Get("Accept")
		userAgent = r.Header.Get("User-Agent")
		customHeader = r.Header.Get("X-Custom")
		capturedBody, _ = io.ReadAll(r.Body)
		writeAccepted(w)
	}))
	defer server.Close()

	client := newConnectedClient(t, server.URL,
		WithRequestHeader("X-Custom", "custom-value"),
		WithUserAgent("backup-job/1.0"),
	)

	msg := NewMessageBuilder("user-key", "app-token", "hello").
		SetTitle("Backups").
		SetSound(SoundAlien).
		SetDevices([]string{"phone", "desktop"}).
		SetTTL(60).
		Build()

	resp, err := client.SendMessage(context.Background(), msg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !resp.Accepted() {
		t.Errorf("expected accepted response, got status %d", resp.Status)
	}

	if resp.Request != "647d2300-702c-4b38-8b2f-d56326ae460b" {
		t.Errorf("unexpected request id %s", resp.Request)
	}

	if resp.HTTPStatusCode != http.StatusOK {
		t.Errorf("expected HTTP 200, got %d", resp.HTTPStatusCode)
	}

	if method != http.MethodPost {
		t.Errorf("expected POST, got %s", method)
	}

	if !strings.HasPrefix(contentType, "application/json") {
		t.Errorf("expected Content-Type=application/json, got %s", contentType)
	}

	if accept != "application/json" {
		t.Errorf("expected Accept=application/json, got %s", accept)
	}

	if userAgent != "backup-job/1.0" {
		t.Errorf("expected User-Agent=backup-job/1.0, got %s", userAgent)
	}

	if customHeader != "custom-value" {
		t.Errorf("expected X-Custom=custom-value, got %s", customHeader)
	}

	var body map[string]any
	if err := json.Unmarshal(capturedBody, &body); err != nil {
		t.Fatalf("failed to parse JSON: %v", err)
	}

	expected := map[string]any{
		"token":   "app-token",
		"user":    "user-key",
		"message": "hello",
		"title":   "Backups",
		"sound":   "alien",
		"device":  "phone,desktop",
		"ttl":     float64(60),
	}

	if len(body) != len(expected) {
		t.Errorf("expected %d fields, got %v", len(expected), body)
	}

	for key, value := range expected {
		if body[key] != value {
			t.Errorf("expected %s=%v, got %v", key, value, body[key])
		}
	}
}

func TestSendMessage_Rejected(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"user":"invalid","errors":["user identifier is invalid"],"status":0,"request":"5042853c-402d-4a18-abcb-168734a801de"}`))
	}))
	defer server.Close()

	logger := &recordingLogger{}
	client := newConnectedClient(t, server.URL, WithRequestLogger(logger))

	const userKey = "uQiRzpo4DXghDmr9QzzfQu27cmVRsG"
	const appToken = "azGDORePK8gMaC0QOYAMyEEuzJnyUi"

	resp, err := client.SendMessage(context.Background(), NewMessageBuilder(userKey, appToken, "hi").Build())
	if err != nil {
		t.Fatalf("rejection must not be a transport error: %v", err)
	}

	if resp.Status != 0 || resp.Accepted() {
		t.Errorf("expected status 0, got %d", resp.Status)
	}

	if resp.User != "invalid" {
		t.Errorf("expected user=invalid, got %s", resp.User)
	}

	if len(resp.Errors) != 1 || resp.Errors[0] != "user identifier is invalid" {
		t.Errorf("unexpected errors %v", resp.Errors)
	}

	if resp.HTTPStatusCode != http.StatusBadRequest {
		t.Errorf("expected HTTP 400, got %d", resp.HTTPStatusCode)
	}

	if !errors.Is(resp.Err(), ErrRejected) {
		t.Errorf("expected rejection error, got %v", resp.Err())
	}

	if len(logger.warns) != 1 || !strings.Contains(logger.warns[0], "user identifier is invalid") {
		t.Errorf("expected one warning about the rejection, got %v", logger.warns)
	}

	for _, line := range append(logger.debugs, logger.warns...) {
		if strings.Contains(line, userKey) || strings.Contains(line, appToken) {
			t.Errorf("credentials must not be logged: %s", line)
		}
	}
}

func TestSendMessage_EmptyMessageIsRejectedNotFailed(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		_ = json.NewDecoder(r.Body).Decode(&body)

		w.Header().Set("Content-Type", "application/json")
		if body["token"] == "" {
			w.WriteHeader(http.StatusBadRequest)
			_, _ = w.Write([]byte(`{"token":"invalid","errors":["application token is invalid"],"status":0,"request":"r-1"}`))
			return
		}
		writeAccepted(w)
	}))
	defer server.Close()

	client := newConnectedClient(t, server.URL)

	resp, err := client.SendMessage(context.Background(), Message{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if resp.Status != 0 {
		t.Errorf("expected status 0, got %d", resp.Status)
	}

	if resp.Token != "invalid" {
		t.Errorf("expected token=invalid, got %s", resp.Token)
	}
}

func TestSendMessage_EmptyResponse(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := newConnectedClient(t, server.URL)

	_, err := client.SendMessage(context.Background(), Message{})

	if err == nil {
		t.Fatal("expected error for empty body")
	}

	if !errors.Is(err, ErrTransport) {
		t.Errorf("expected transport error, got %v", err)
	}

	if !strings.Contains(err.Error(), "(empty error body)") {
		t.Errorf("expected error to contain '(empty error body)', got: %v", err)
	}

	if !strings.Contains(err.Error(), "500") {
		t.Errorf("expected error to contain '500', got: %v", err)
	}

	if !IsTemporary(err) {
		t.Error("expected HTTP 500 to be temporary")
	}
}

func TestSendMessage_PlainTextResponse(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte("Bad Gateway"))
	}))
	defer server.Close()

	client := newConnectedClient(t, server.URL)

	_, err := client.SendMessage(context.Background(), Message{})

	if err == nil {
		t.Fatal("expected error for non-JSON body")
	}

	if !strings.Contains(err.Error(), "Bad Gateway") {
		t.Errorf("expected error to contain 'Bad Gateway', got: %v", err)
	}
}

func TestSendMessage_JSONWithoutStatus(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"message": "something went wrong"}`))
	}))
	defer server.Close()

	client := newConnectedClient(t, server.URL)

	_, err := client.SendMessage(context.Background(), Message{})

	var transportErr *TransportError
	if !errors.As(err, &transportErr) {
		t.Fatalf("expected *TransportError, got %v", err)
	}

	if transportErr.StatusCode != http.StatusOK {
		t.Errorf("expected status 200, got %d", transportErr.StatusCode)
	}

	if !strings.Contains(err.Error(), `{"message": "something went wrong"}`) {
		t.Errorf("expected error to contain raw JSON body, got: %v", err)
	}
}

func TestSendMessage_RequestError(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	logger := &recordingLogger{}
	client := newConnectedClient(t, server.URL, WithRequestLogger(logger))

	// Close server to cause connection error on send
	server.Close()

	_, err := client.SendMessage(context.Background(), Message{})

	if err == nil {
		t.Fatal("expected error for request failure")
	}

	if !strings.Contains(err.Error(), "POST") {
		t.Errorf("expected error to mention POST, got: %v", err)
	}

	if !IsTemporary(err) {
		t.Errorf("expected connection failure to be temporary: %v", err)
	}

	if len(logger.errors) == 0 {
		t.Error("expected transport failure to be logged")
	}
}

func TestSendMessage_CanceledContext(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		writeAccepted(w)
	}))
	defer server.Close()

	client := newConnectedClient(t, server.URL)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := client.SendMessage(ctx, Message{})

	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}

	if IsTemporary(err) {
		t.Error("cancellation must not be temporary")
	}
}

func TestSendMessage_EmergencyFields(t *testing.T) {
	t.Parallel()

	var capturedBody []byte

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		capturedBody, _ = io.ReadAll(r.Body)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":1,"request":"r-2","receipt":"rLqVuqTRh62UzxtmqiaLzQmVcPgiCy"}`))
	}))
	defer server.Close()

	client := newConnectedClient(t, server.URL)

	msg := NewMessageBuilder("u", "t", "server down").
		SetPriority(PriorityEmergency).
		SetRetry(45).
		SetDevices([]string{"phone", "desktop"}).
		Build()

	resp, err := client.SendMessage(context.Background(), msg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if resp.Receipt != "rLqVuqTRh62UzxtmqiaLzQmVcPgiCy" {
		t.Errorf("unexpected receipt %s", resp.Receipt)
	}

	var body struct {
		Priority int    `json:"priority"`
		Retry    int    `json:"retry"`
		Expire   int    `json:"expire"`
		Device   string `json:"device"`
	}
	if err := json.Unmarshal(capturedBody, &body); err != nil {
		t.Fatalf("failed to parse JSON: %v", err)
	}

	if body.Priority != 2 || body.Retry != 45 || body.Expire != MaxExpire {
		t.Errorf("unexpected emergency fields %+v", body)
	}

	if body.Device != "phone,desktop" {
		t.Errorf("expected device=phone,desktop, got %s", body.Device)
	}
}

func writeAttachment(t *testing.T, name string, content []byte) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, content, 0o600); err != nil {
		t.Fatalf("write attachment: %v", err)
	}

	return path
}

func TestSendAttachmentMessage_Multipart(t *testing.T) {
	t.Parallel()

	type captured struct {
		fields      map[string][]string
		fileName    string
		fileType    string
		fileContent []byte
	}

	tests := []struct {
		name    string
		build   func(path string) AttachmentMessageBuilder
		wantTTL string
	}{
		{
			name: "minimal",
			build: func(path string) AttachmentMessageBuilder {
				return NewAttachmentMessageBuilder("user-key", "app-token", "see attached").SetAttachment(path)
			},
		},
		{
			name: "with ttl and devices",
			build: func(path string) AttachmentMessageBuilder {
				return NewAttachmentMessageBuilder("user-key", "app-token", "see attached").
					SetAttachment(path).
					SetTTL(10).
					SetPriority(PriorityHigh).
					SetSound(SoundTugboat).
					SetTimestamp(1635861224).
					MergeDevices([]string{"phone", "tablet"})
			},
			wantTTL: "10",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var got captured

			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if err := r.ParseMultipartForm(4 << 20); err != nil {
					w.WriteHeader(http.StatusBadRequest)
					return
				}
				got.fields = r.MultipartForm.Value

				file, header, err := r.FormFile("attachment")
				if err == nil {
					got.fileName = header.Filename
					got.fileType = header.Header.Get("Content-Type")
					got.fileContent, _ = io.ReadAll(file)
					_ = file.Close()
				}
				writeAccepted(w)
			}))
			defer server.Close()

			path := writeAttachment(t, "graph.png", []byte("\x89PNG\r\n\x1a\nfake"))

			msg, err := tt.build(path).Build()
			if err != nil {
				t.Fatalf("build failed: %v", err)
			}

			client := newConnectedClient(t, server.URL)

			resp, err := client.SendAttachmentMessage(context.Background(), msg)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if !resp.Accepted() {
				t.Fatalf("expected accepted response, got %+v", resp)
			}

			for _, field := range []string{"token", "user", "message", "title", "url", "url_title", "priority", "sound", "timestamp", "device"} {
				if _, ok := got.fields[field]; !ok {
					t.Errorf("expected field %s to be present", field)
				}
			}

			if got.fields["token"][0] != "app-token" || got.fields["user"][0] != "user-key" {
				t.Errorf("unexpected credentials fields %v", got.fields)
			}

			ttl, hasTTL := got.fields["ttl"]
			if tt.wantTTL == "" && hasTTL {
				t.Errorf("ttl must be omitted when unset, got %v", ttl)
			}
			if tt.wantTTL != "" && (!hasTTL || ttl[0] != tt.wantTTL) {
				t.Errorf("expected ttl=%s, got %v", tt.wantTTL, ttl)
			}

			if got.fileName != "graph.png" {
				t.Errorf("expected filename graph.png, got %s", got.fileName)
			}

			if got.fileType != "image/png" {
				t.Errorf("expected image/png, got %s", got.fileType)
			}

			if string(got.fileContent) != "\x89PNG\r\n\x1a\nfake" {
				t.Errorf("unexpected file content %q", got.fileContent)
			}
		})
	}
}

func TestSendAttachmentMessage_FieldValues(t *testing.T) {
	t.Parallel()

	var fields map[string][]string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = r.ParseMultipartForm(4 << 20)
		fields = r.MultipartForm.Value
		writeAccepted(w)
	}))
	defer server.Close()

	path := writeAttachment(t, "report.txt", []byte("ok"))

	msg, err := NewAttachmentMessageBuilder("u", "t", "m").
		SetAttachment(path).
		SetPriority(PriorityLow).
		SetSound(SoundTugboat).
		SetTimestamp(1635861224).
		SetDevices([]string{"phone", "tablet"}).
		Build()
	if err != nil {
		t.Fatalf("build failed: %v", err)
	}

	client := newConnectedClient(t, server.URL)

	if _, err := client.SendAttachmentMessage(context.Background(), msg); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	expected := map[string]string{
		"priority":  "-1",
		"sound":     "tugboat",
		"timestamp": "1635861224",
		"device":    "phone,tablet",
		"title":     "",
	}

	for key, value := range expected {
		if len(fields[key]) != 1 || fields[key][0] != value {
			t.Errorf("expected %s=%q, got %v", key, value, fields[key])
		}
	}
}

func TestSendAttachmentMessage_FileRemovedAfterBuild(t *testing.T) {
	t.Parallel()

	callCount := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		callCount++
		writeAccepted(w)
	}))
	defer server.Close()

	path := writeAttachment(t, "gone.jpg", []byte("jpeg"))

	msg, err := NewAttachmentMessageBuilder("u", "t", "m").SetAttachment(path).Build()
	if err != nil {
		t.Fatalf("build failed: %v", err)
	}

	if err := os.Remove(path); err != nil {
		t.Fatalf("remove: %v", err)
	}

	client := newConnectedClient(t, server.URL)

	_, err = client.SendAttachmentMessage(context.Background(), msg)

	var validationErr *ValidationError
	if !errors.As(err, &validationErr) || validationErr.Field != "attachment" {
		t.Fatalf("expected attachment validation error, got %v", err)
	}

	if callCount != 0 {
		t.Errorf("expected no request, got %d", callCount)
	}
}
