package client

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/leofalp/chatsorter/internal/utils"
	"github.com/leofalp/chatsorter/providers/observability"
)

const (
	// DefaultBaseURL is the hosted ChatSorter API.
	DefaultBaseURL = "https://chatsorter-api.onrender.com"

	// Version is the SDK version reported in the default User-Agent.
	Version = "1.0.0"

	endpointProcess = "/process"
	endpointSearch  = "/search"
	endpointStats   = "/stats"
	endpointMemory  = "/memory/"
	endpointHealth  = "/health"
)

// Client talks to the ChatSorter memory API. Its configuration is fixed by
// New and it is safe for concurrent use.
type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
	observer   observability.Provider
	userAgent  string
}

// New returns a Client authenticated with apiKey.
func New(apiKey string, opts ...Option) (*Client, error) {
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return nil, ErrMissingAPIKey
	}

	c := &Client{
		apiKey:     apiKey,
		baseURL:    DefaultBaseURL,
		httpClient: &http.Client{},
		userAgent:  "chatsorter-go/" + Version,
	}
	for _, opt := range opts {
		opt(c)
	}
	c.baseURL = strings.TrimRight(c.baseURL, "/")

	return c, nil
}

// BaseURL returns the normalised service URL.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// AddMessage stores message in the conversation chatID.
// The response carries the importance score assigned by the server.
func (c *Client) AddMessage(ctx context.Context, chatID, message string, opts ...MessageOption) (*ProcessResponse, error) {
	body := processRequest{ChatID: chatID, Message: message}
	for _, opt := range opts {
		opt(&body)
	}

	raw, err := c.call(ctx, apiCall{
		operation: "process",
		chatID:    chatID,
		method:    http.MethodPost,
		path:      endpointProcess,
		body:      body,
		attrs:     []observability.Attribute{observability.Int(observability.AttrMessageLength, len(message))},
	})
	if err != nil {
		return nil, err
	}

	return newProcessResponse(raw.payload), nil
}

// Process is AddMessage under the name of the server endpoint.
func (c *Client) Process(ctx context.Context, chatID, message string, opts ...MessageOption) (*ProcessResponse, error) {
	return c.AddMessage(ctx, chatID, message, opts...)
}

// Search runs a semantic search over the memories of chatID.
func (c *Client) Search(ctx context.Context, chatID, query string, opts ...SearchOption) (*SearchResponse, error) {
	settings := searchSettings{useVectorDB: true, limit: 5}
	for _, opt := range opts {
		opt(&settings)
	}

	raw, err := c.call(ctx, apiCall{
		operation: "search",
		chatID:    chatID,
		method:    http.MethodPost,
		path:      endpointSearch,
		body: searchRequest{
			ChatID:      chatID,
			Query:       query,
			UseVectorDB: settings.useVectorDB,
		},
		attrs: []observability.Attribute{
			observability.Int(observability.AttrQueryLength, len(query)),
			observability.Bool(observability.AttrUseVectorDB, settings.useVectorDB),
		},
	})
	if err != nil {
		return nil, err
	}

	return newSearchResponse(raw.payload), nil
}

// GetStats returns the server's statistics for chatID.
func (c *Client) GetStats(ctx context.Context, chatID string) (Payload, error) {
	raw, err := c.call(ctx, apiCall{
		operation: "stats",
		chatID:    chatID,
		method:    http.MethodGet,
		path:      endpointStats + "?" + url.Values{"chat_id": {chatID}}.Encode(),
	})
	if err != nil {
		return nil, err
	}
	return raw.payload, nil
}

// GetMemoryAnalysis returns the stored memory items of chatID together with
// their decay statistics.
func (c *Client) GetMemoryAnalysis(ctx context.Context, chatID string) (Payload, error) {
	raw, err := c.call(ctx, apiCall{
		operation: "memory_analysis",
		chatID:    chatID,
		method:    http.MethodGet,
		path:      endpointMemory + url.PathEscape(chatID),
	})
	if err != nil {
		return nil, err
	}
	return raw.payload, nil
}

// HealthCheck reports the service status. The request is sent without
// credentials.
func (c *Client) HealthCheck(ctx context.Context) (Payload, error) {
	raw, err := c.call(ctx, apiCall{
		operation:       "health",
		method:          http.MethodGet,
		path:            endpointHealth,
		unauthenticated: true,
	})
	if err != nil {
		return nil, err
	}
	return raw.payload, nil
}

type apiCall struct {
	operation       string
	chatID          string
	method          string
	path            string
	body            any
	unauthenticated bool
	attrs           []observability.Attribute
}

type rawResponse struct {
	body    []byte
	payload Payload
	method  string
	url     string
}

func (r *rawResponse) decode(v any) error {
	if err := json.Unmarshal(r.body, v); err != nil {
		return fmt.Errorf("chatsorter: decoding %s %s response: %w (body: %s)",
			r.method, r.url, err, utils.TruncateString(string(r.body), 200))
	}
	return nil
}

// call performs one request and returns the decoded JSON object. It maps
// transport failures to *TransportError and non-2xx statuses to
// *ResponseError, and records the span and request metrics.
func (c *Client) call(ctx context.Context, op apiCall) (*rawResponse, error) {
	endpoint := c.baseURL + op.path

	observer := c.observerFor(ctx)
	if observer != nil {
		attrs := append([]observability.Attribute{
			observability.String(observability.AttrOperation, op.operation),
			observability.String(observability.AttrHTTPMethod, op.method),
			observability.String(observability.AttrHTTPURL, endpoint),
		}, op.attrs...)
		if op.chatID != "" {
			attrs = append(attrs, observability.String(observability.AttrChatID, op.chatID))
		}

		var span observability.Span
		ctx, span = observer.StartSpan(ctx, observability.SpanClientPrefix+op.operation, attrs...)
		ctx = observability.ContextWithSpan(ctx, span)
		defer span.End()
	}

	raw, err := c.roundTrip(ctx, op, endpoint)

	if observer != nil {
		span := observability.SpanFromContext(ctx)
		opAttr := observability.String(observability.AttrOperation, op.operation)
		observer.Counter(observability.MetricClientRequestCount).Add(ctx, 1, opAttr)
		if err != nil {
			observer.Counter(observability.MetricClientRequestErrors).Add(ctx, 1, opAttr)
			span.RecordError(err)
			span.SetStatus(observability.StatusError, err.Error())
		} else {
			span.SetStatus(observability.StatusOK, "")
		}
	}

	return raw, err
}

func (c *Client) roundTrip(ctx context.Context, op apiCall, endpoint string) (*rawResponse, error) {
	req := utils.Request{
		Method:  op.method,
		URL:     endpoint,
		Body:    op.body,
		Headers: []utils.HeaderOption{{Key: "User-Agent", Value: c.userAgent}},
	}
	if !op.unauthenticated {
		req.APIKey = c.apiKey
	}

	res, err := utils.Do(ctx, c.httpClient, req)
	if err != nil {
		return nil, &TransportError{Method: op.method, URL: endpoint, Err: err}
	}

	if observer := c.observerFor(ctx); observer != nil {
		observer.Histogram(observability.MetricClientRequestDuration).Record(ctx,
			float64(res.Duration.Microseconds())/1000,
			observability.String(observability.AttrOperation, op.operation),
			observability.Int(observability.AttrHTTPStatusCode, res.StatusCode),
		)
		if span := observability.SpanFromContext(ctx); span != nil {
			span.SetAttributes(observability.Int(observability.AttrHTTPStatusCode, res.StatusCode))
		}
	}

	if !res.IsSuccess() {
		return nil, &ResponseError{
			Method:     op.method,
			URL:        endpoint,
			StatusCode: res.StatusCode,
			Body:       string(res.Body),
		}
	}

	raw := &rawResponse{body: res.Body, method: op.method, url: endpoint}
	if err := raw.decode(&raw.payload); err != nil {
		return nil, err
	}
	if raw.payload == nil {
		return nil, fmt.Errorf("chatsorter: %s %s: expected a JSON object, got %s",
			op.method, endpoint, utils.TruncateString(string(res.Body), 200))
	}
	return raw, nil
}

func (c *Client) observerFor(ctx context.Context) observability.Provider {
	if c.observer != nil {
		return c.observer
	}
	return observability.ObserverFromContext(ctx)
}

// warn logs a non-fatal problem through the observer, or slog's default
// logger when none is configured.
func (c *Client) warn(ctx context.Context, msg string, attrs ...observability.Attribute) {
	if observer := c.observerFor(ctx); observer != nil {
		observer.Warn(ctx, msg, attrs...)
		return
	}
	args := make([]any, 0, len(attrs)*2)
	for _, attr := range attrs {
		args = append(args, attr.Key, attr.Value)
	}
	slog.Default().WarnContext(ctx, msg, args...)
}
