package utils

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/leofalp/chatsorter/providers/observability"
)

// maxResponseBodySize caps how much of a response body is read (10 MB).
const maxResponseBodySize int64 = 10 * 1024 * 1024

// HeaderOption is an extra header set on an outgoing request.
type HeaderOption struct {
	Key   string
	Value string
}

// Request describes one JSON round-trip.
type Request struct {
	Method string
	URL    string
	// APIKey is sent as a Bearer token when non-empty.
	APIKey string
	// Body is JSON-encoded when non-nil. Content-Type is only set in that case.
	Body    any
	Headers []HeaderOption
}

// Response is the raw outcome of a round-trip that reached the server.
type Response struct {
	StatusCode int
	Body       []byte
	Duration   time.Duration
}

// IsSuccess reports whether the status code is 2xx.
func (r *Response) IsSuccess() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

// SendError is returned by Do when no response was obtained: the body could
// not be encoded, the request could not be built or sent, or the response
// body could not be read.
type SendError struct {
	Stage string
	Err   error
}

func (e *SendError) Error() string {
	return fmt.Sprintf("error %s: %v", e.Stage, e.Err)
}

func (e *SendError) Unwrap() error {
	return e.Err
}

// Do performs req with client (http.DefaultClient when nil) and returns the
// status and body whatever the status code; callers decide what a non-2xx
// status means. When a span is present in ctx, request and response events
// are recorded on it.
func Do(ctx context.Context, client *http.Client, req Request) (*Response, error) {
	span := observability.SpanFromContext(ctx)

	httpClient := client
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	var body io.Reader
	bodySize := 0
	if req.Body != nil {
		encoded, err := json.Marshal(req.Body)
		if err != nil {
			return nil, &SendError{Stage: "marshaling body", Err: err}
		}
		body = bytes.NewReader(encoded)
		bodySize = len(encoded)
	}

	if span != nil {
		span.AddEvent(observability.EventHTTPRequestPrepared,
			observability.String(observability.AttrHTTPMethod, req.Method),
			observability.String(observability.AttrHTTPURL, req.URL),
			observability.Int(observability.AttrHTTPRequestBodySize, bodySize),
		)
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.Method, req.URL, body)
	if err != nil {
		return nil, &SendError{Stage: "creating request", Err: err}
	}

	httpReq.Header.Set("Accept", "application/json")
	if req.Body != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}
	if req.APIKey != "" {
		httpReq.Header.Set("Authorization", "Bearer "+req.APIKey)
	}
	for _, header := range req.Headers {
		httpReq.Header.Set(header.Key, header.Value)
	}

	start := time.Now()
	res, err := httpClient.Do(httpReq)
	duration := time.Since(start)
	if err != nil {
		if span != nil {
			span.AddEvent(observability.EventHTTPRequestError,
				observability.Error(err),
				observability.Duration(observability.AttrHTTPDuration, duration),
			)
		}
		return nil, &SendError{Stage: "sending request", Err: err}
	}
	defer CloseWithLog(res.Body)

	respBody, err := io.ReadAll(io.LimitReader(res.Body, maxResponseBodySize))
	if err != nil {
		return nil, &SendError{Stage: "reading response body", Err: err}
	}

	if span != nil {
		span.AddEvent(observability.EventHTTPResponse,
			observability.Int(observability.AttrHTTPStatusCode, res.StatusCode),
			observability.Int(observability.AttrHTTPResponseBodySize, len(respBody)),
			observability.Duration(observability.AttrHTTPDuration, duration),
		)
	}

	return &Response{
		StatusCode: res.StatusCode,
		Body:       respBody,
		Duration:   duration,
	}, nil
}

// CloseWithLog closes c and logs a failure at warn level. Use it in defers
// where a close error must not replace the function's own error.
func CloseWithLog(c io.Closer) {
	if c == nil {
		return
	}
	if err := c.Close(); err != nil {
		slog.Warn("failed to close response body", "error", err.Error())
	}
}
