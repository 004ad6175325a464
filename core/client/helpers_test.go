package client

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/leofalp/chatsorter/providers/observability"
)

type recordedRequest struct {
	Method     string
	Path       string
	EscapedURL string
	Query      string
	Header     http.Header
	RawBody    string
	Body       map[string]any
}

// fakeServer records every request and dispatches on the URL path.
type fakeServer struct {
	*httptest.Server

	mu       sync.Mutex
	requests []recordedRequest
}

func newFakeServer(t *testing.T, routes map[string]http.HandlerFunc) *fakeServer {
	t.Helper()
	fs := &fakeServer{}
	fs.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw, _ := io.ReadAll(r.Body)
		rec := recordedRequest{
			Method:     r.Method,
			Path:       r.URL.Path,
			EscapedURL: r.URL.EscapedPath(),
			Query:      r.URL.RawQuery,
			Header:     r.Header.Clone(),
			RawBody:    string(raw),
		}
		if len(raw) > 0 {
			_ = json.Unmarshal(raw, &rec.Body)
		}
		fs.mu.Lock()
		fs.requests = append(fs.requests, rec)
		fs.mu.Unlock()

		handler, ok := routes[r.URL.Path]
		if !ok {
			for prefix, h := range routes {
				if strings.HasSuffix(prefix, "/") && strings.HasPrefix(r.URL.Path, prefix) {
					handler, ok = h, true
					break
				}
			}
		}
		if !ok {
			http.NotFound(w, r)
			return
		}
		handler(w, r)
	}))
	t.Cleanup(fs.Close)
	return fs
}

func (fs *fakeServer) Requests() []recordedRequest {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	return append([]recordedRequest(nil), fs.requests...)
}

func jsonHandler(status int, body string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = io.WriteString(w, body)
	}
}

func newTestClient(t *testing.T, baseURL string, opts ...Option) *Client {
	t.Helper()
	c, err := New("sk_test_demo123", append([]Option{WithBaseURL(baseURL)}, opts...)...)
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	return c
}

// unreachableURL returns the address of a server that has already been shut down.
func unreachableURL(t *testing.T) string {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	url := server.URL
	server.Close()
	return url
}

type logEntry struct {
	msg   string
	attrs map[string]any
}

// recordingObserver captures warnings, spans and counters.
type recordingObserver struct {
	mu       sync.Mutex
	warnings []logEntry
	spans    []string
	counters map[string]int64
}

func newRecordingObserver() *recordingObserver {
	return &recordingObserver{counters: make(map[string]int64)}
}

func (o *recordingObserver) StartSpan(ctx context.Context, name string, _ ...observability.Attribute) (context.Context, observability.Span) {
	o.mu.Lock()
	o.spans = append(o.spans, name)
	o.mu.Unlock()
	span := nopSpan{}
	return observability.ContextWithSpan(ctx, span), span
}

func (o *recordingObserver) Counter(name string) observability.Counter {
	return recordingCounter{observer: o, name: name}
}

func (o *recordingObserver) Histogram(string) observability.Histogram { return nopHistogram{} }

func (o *recordingObserver) Debug(context.Context, string, ...observability.Attribute) {}
func (o *recordingObserver) Info(context.Context, string, ...observability.Attribute) {}
func (o *recordingObserver) Error(context.Context, string, ...observability.Attribute) {}

func (o *recordingObserver) Warn(_ context.Context, msg string, attrs ...observability.Attribute) {
	entry := logEntry{msg: msg, attrs: make(map[string]any)}
	for _, attr := range attrs {
		entry.attrs[attr.Key] = attr.Value
	}
	o.mu.Lock()
	o.warnings = append(o.warnings, entry)
	o.mu.Unlock()
}

func (o *recordingObserver) Warnings() []logEntry {
	o.mu.Lock()
	defer o.mu.Unlock()
	return append([]logEntry(nil), o.warnings...)
}

func (o *recordingObserver) Count(name string) int64 {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.counters[name]
}

type recordingCounter struct {
	observer *recordingObserver
	name     string
}

func (c recordingCounter) Add(_ context.Context, value int64, _ ...observability.Attribute) {
	c.observer.mu.Lock()
	c.observer.counters[c.name] += value
	c.observer.mu.Unlock()
}

type nopSpan struct{}

func (nopSpan) End() {}
func (nopSpan) SetAttributes(...observability.Attribute) {}
func (nopSpan) SetStatus(observability.StatusCode, string) {}
func (nopSpan) RecordError(error) {}
func (nopSpan) AddEvent(string, ...observability.Attribute) {}

type nopHistogram struct{}

func (nopHistogram) Record(context.Context, float64, ...observability.Attribute) {}
