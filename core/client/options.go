package client

import (
	"net/http"

	"github.com/leofalp/chatsorter/providers/observability"
)

// Option configures a Client at construction time.
type Option func(*Client)

// WithBaseURL points the client at another deployment of the service.
// Trailing slashes are removed.
func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		c.baseURL = baseURL
	}
}

// WithHTTPClient replaces the HTTP client used for every request, including
// HealthCheck. Use it to set timeouts or a custom transport.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		if httpClient != nil {
			c.httpClient = httpClient
		}
	}
}

// WithObserver enables tracing, metrics and logging through observer.
func WithObserver(observer observability.Provider) Option {
	return func(c *Client) {
		c.observer = observer
	}
}

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(userAgent string) Option {
	return func(c *Client) {
		c.userAgent = userAgent
	}
}

// MessageOption configures AddMessage and Process.
type MessageOption func(*processRequest)

// WithToolResult attaches metadata about tools used while producing the
// message. Without it the request carries "tool_result": null.
func WithToolResult(toolResult map[string]any) MessageOption {
	return func(r *processRequest) {
		r.ToolResult = toolResult
	}
}

// SearchOption configures Search.
type SearchOption func(*searchSettings)

type searchSettings struct {
	useVectorDB bool
	limit       int
}

// WithVectorDB toggles use of the server's vector index. Defaults to true.
func WithVectorDB(enabled bool) SearchOption {
	return func(s *searchSettings) {
		s.useVectorDB = enabled
	}
}

// WithLimit is accepted for parity with the other ChatSorter SDKs. The
// /search endpoint has no limit field, so the value is not sent and results
// are returned as the server ranks them.
func WithLimit(limit int) SearchOption {
	return func(s *searchSettings) {
		s.limit = limit
	}
}

// PromptOption configures BuildPrompt.
type PromptOption func(*promptSettings)

type promptSettings struct {
	template    string
	maxMemories int
}

// WithTemplate sets the prompt template. The literal placeholders {context}
// and {message} are replaced, in that order.
func WithTemplate(template string) PromptOption {
	return func(s *promptSettings) {
		s.template = template
	}
}

// WithMaxMemories caps how many memories are injected. Defaults to 3.
func WithMaxMemories(n int) PromptOption {
	return func(s *promptSettings) {
		s.maxMemories = n
	}
}
