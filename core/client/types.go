package client

import (
	"strconv"
	"strings"
)

// Payload is a decoded JSON object exactly as the server sent it. The
// accessors return zero values for missing keys or unexpected types.
type Payload map[string]any

// Object returns the nested object under key.
func (p Payload) Object(key string) Payload {
	if m, ok := p[key].(map[string]any); ok {
		return Payload(m)
	}
	return nil
}

// String returns the string under key.
func (p Payload) String(key string) string {
	s, _ := p[key].(string)
	return s
}

// Float returns the number under key and whether one was found. Numeric
// strings such as "7.25" are accepted too.
func (p Payload) Float(key string) (float64, bool) {
	switch v := p[key].(type) {
	case float64:
		return v, true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		return f, err == nil
	}
	return 0, false
}

// Bool returns the boolean under key; missing or non-boolean values are false.
func (p Payload) Bool(key string) bool {
	b, _ := p[key].(bool)
	return b
}

// List returns the array under key.
func (p Payload) List(key string) []any {
	l, _ := p[key].([]any)
	return l
}

// ProcessResponse is the answer to AddMessage and Process. Result is read
// from Raw field by field; a field with an unexpected type is left zero.
type ProcessResponse struct {
	Result ProcessResult `json:"result"`
	// Raw is the full response body.
	Raw Payload `json:"-"`
}

// ProcessResult carries what the server computed for the stored message.
type ProcessResult struct {
	ImportanceScore float64 `json:"importance_score"`
}

// SearchResponse is the answer to Search. Like ProcessResponse, Result is a
// best-effort view of Raw.
type SearchResponse struct {
	Result SearchResult `json:"result"`
	// Raw is the full response body.
	Raw Payload `json:"-"`
}

// SearchResult lists memories ranked by relevance. Found is false when the
// conversation has nothing relevant to the query.
type SearchResult struct {
	Found   bool         `json:"found"`
	Results []MemoryItem `json:"results"`
}

// MemoryItem is one retrieved memory.
type MemoryItem struct {
	Content string `json:"content"`
	// DecayedImportance is the importance score after time decay; 0 when absent.
	DecayedImportance float64 `json:"decayed_importance"`
	RetrievalScore    float64 `json:"retrieval_score,omitempty"`
}

func newProcessResponse(raw Payload) *ProcessResponse {
	score, _ := raw.Object("result").Float("importance_score")
	return &ProcessResponse{
		Result: ProcessResult{ImportanceScore: score},
		Raw:    raw,
	}
}

func newSearchResponse(raw Payload) *SearchResponse {
	result := raw.Object("result")
	resp := &SearchResponse{
		Result: SearchResult{Found: result.Bool("found")},
		Raw:    raw,
	}
	for _, v := range result.List("results") {
		m, ok := v.(map[string]any)
		if !ok {
			continue
		}
		item := Payload(m)
		decayed, _ := item.Float("decayed_importance")
		retrieval, _ := item.Float("retrieval_score")
		resp.Result.Results = append(resp.Result.Results, MemoryItem{
			Content:           item.String("content"),
			DecayedImportance: decayed,
			RetrievalScore:    retrieval,
		})
	}
	return resp
}

type processRequest struct {
	ChatID     string         `json:"chat_id"`
	Message    string         `json:"message"`
	ToolResult map[string]any `json:"tool_result"`
}

type searchRequest struct {
	ChatID      string `json:"chat_id"`
	Query       string `json:"query"`
	UseVectorDB bool   `json:"use_vector_db"`
}
