package observability

// --- Memory service attributes ---

const (
	// AttrChatID is the conversation identifier a call is scoped to.
	AttrChatID = "chatsorter.chat_id"

	// AttrOperation is the client operation name (process, search, ...).
	AttrOperation = "chatsorter.operation"

	// AttrMessageLength is the length in bytes of a submitted message.
	AttrMessageLength = "chatsorter.message.length"

	// AttrQueryLength is the length in bytes of a search query.
	AttrQueryLength = "chatsorter.query.length"

	// AttrUseVectorDB reports whether a search asked for the vector index.
	AttrUseVectorDB = "chatsorter.search.use_vector_db"

	// AttrSearchFound reports whether a search returned any memory.
	AttrSearchFound = "chatsorter.search.found"

	// AttrSearchResults is the number of memories returned by a search.
	AttrSearchResults = "chatsorter.search.results"

	// AttrImportanceScore is the server-assigned importance of a stored message.
	AttrImportanceScore = "chatsorter.importance_score"

	// AttrPromptMemories is the number of memories injected into a prompt.
	AttrPromptMemories = "chatsorter.prompt.memories"
)

// --- HTTP attributes ---

const (
	AttrHTTPMethod           = "http.method"
	AttrHTTPURL              = "http.url"
	AttrHTTPStatusCode       = "http.status_code"
	AttrHTTPRequestBodySize  = "http.request.body.size"
	AttrHTTPResponseBodySize = "http.response.body.size"
	AttrHTTPDuration         = "http.request.duration"
)

// --- Tool attributes ---

const (
	AttrToolName     = "tool.name"
	AttrToolInput    = "tool.input"
	AttrToolOutput   = "tool.output"
	AttrToolDuration = "tool.duration"
	AttrToolError    = "tool.error"
)

// --- General attributes ---

const (
	AttrError             = "error"
	AttrStatus            = "status"
	AttrStatusDescription = "status_description"
)

// --- Span names ---

const (
	// SpanClientPrefix prefixes every client operation span, e.g. "chatsorter.search".
	SpanClientPrefix = "chatsorter."

	// SpanBuildPrompt covers the whole store-then-search prompt assembly.
	SpanBuildPrompt = "chatsorter.build_prompt"

	// SpanToolExecution covers a single LLM tool invocation.
	SpanToolExecution = "tool.execution"
)

// --- Event names ---

const (
	EventHTTPRequestPrepared = "http.request.prepared"
	EventHTTPRequestError    = "http.request.error"
	EventHTTPResponse        = "http.response.received"
	EventToolExecutionStart  = "tool.execution.start"
	EventToolExecutionEnd    = "tool.execution.end"
	EventPromptDegraded      = "chatsorter.prompt.degraded"
)

// --- Metric names ---

const (
	// MetricClientRequestCount counts requests sent to the memory service.
	MetricClientRequestCount = "chatsorter.client.request.count"

	// MetricClientRequestErrors counts requests that ended in a transport or response error.
	MetricClientRequestErrors = "chatsorter.client.request.errors"

	// MetricClientRequestDuration records round-trip latency in milliseconds.
	MetricClientRequestDuration = "chatsorter.client.request.duration"
)
