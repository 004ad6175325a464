package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/leofalp/chatsorter/core/client"
)

type apiRequest struct {
	method string
	path   string
	query  string
	auth   string
	body   map[string]any
}

type fakeAPI struct {
	*httptest.Server

	mu       sync.Mutex
	requests []apiRequest
}

func newFakeAPI(t *testing.T) *fakeAPI {
	t.Helper()
	api := &fakeAPI{}
	api.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw, _ := io.ReadAll(r.Body)
		req := apiRequest{method: r.Method, path: r.URL.Path, query: r.URL.RawQuery, auth: r.Header.Get("Authorization")}
		_ = json.Unmarshal(raw, &req.body)
		api.mu.Lock()
		api.requests = append(api.requests, req)
		api.mu.Unlock()

		w.Header().Set("Content-Type", "application/json")
		switch {
		case r.URL.Path == "/process":
			_, _ = io.WriteString(w, `{"result":{"importance_score":6}}`)
		case r.URL.Path == "/search":
			_, _ = io.WriteString(w, `{"result":{"found":true,"results":[{"content":"likes pizza","decayed_importance":7.25}]}}`)
		case r.URL.Path == "/stats":
			_, _ = io.WriteString(w, `{"message_count":3}`)
		case strings.HasPrefix(r.URL.Path, "/memory/"):
			_, _ = io.WriteString(w, `{"items":[]}`)
		case r.URL.Path == "/health":
			_, _ = io.WriteString(w, `{"status":"healthy"}`)
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(api.Close)
	return api
}

func (api *fakeAPI) last() apiRequest {
	api.mu.Lock()
	defer api.mu.Unlock()
	return api.requests[len(api.requests)-1]
}

// run executes the CLI against api with an isolated environment and config.
func run(t *testing.T, api *fakeAPI, env map[string]string, args ...string) (string, error) {
	t.Helper()
	if env == nil {
		env = map[string]string{envAPIKey: "sk_test_cli"}
	}
	if api != nil {
		env[envBaseURL] = api.URL
	}

	root := newRootCmdWithEnv(envMap(env))
	var stdout, stderr bytes.Buffer
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	root.SetArgs(append([]string{"--config", writeConfig(t, ""), "--log-level", "error"}, args...))

	err := root.Execute()
	return stdout.String(), err
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "chatsorter.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestAddCommand(t *testing.T) {
	api := newFakeAPI(t)

	out, err := run(t, api, nil, "add", "user123", "I love pizza", "--tool-result", `{tool: 'search', hits: 2}`)
	if err != nil {
		t.Fatalf("add failed: %v", err)
	}

	req := api.last()
	if req.method != http.MethodPost || req.path != "/process" || req.auth != "Bearer sk_test_cli" {
		t.Errorf("unexpected request %+v", req)
	}
	toolResult, _ := req.body["tool_result"].(map[string]any)
	if toolResult["tool"] != "search" || toolResult["hits"] != float64(2) {
		t.Errorf("unexpected tool_result %v", req.body["tool_result"])
	}

	var printed map[string]any
	if err := json.Unmarshal([]byte(out), &printed); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, out)
	}
	if _, ok := printed["result"]; !ok {
		t.Errorf("unexpected output %s", out)
	}
}

func TestAddCommand_InvalidToolResult(t *testing.T) {
	api := newFakeAPI(t)

	_, err := run(t, api, nil, "add", "u1", "hi", "--tool-result", "[1,2]")
	if err == nil || !strings.Contains(err.Error(), "--tool-result") {
		t.Errorf("expected tool-result error, got %v", err)
	}
}

func TestSearchCommand_Flags(t *testing.T) {
	api := newFakeAPI(t)

	if _, err := run(t, api, nil, "search", "u1", "food", "--no-vector-db", "--limit", "2"); err != nil {
		t.Fatalf("search failed: %v", err)
	}

	body := api.last().body
	if body["use_vector_db"] != false {
		t.Errorf("expected use_vector_db false, got %v", body["use_vector_db"])
	}
	if _, ok := body["limit"]; ok {
		t.Error("limit must not be sent")
	}
}

func TestContextAndPromptCommands(t *testing.T) {
	api := newFakeAPI(t)

	out, err := run(t, api, nil, "context", "u1", "food")
	if err != nil {
		t.Fatalf("context failed: %v", err)
	}
	if out != "1. likes pizza (importance: 7.2)\n" {
		t.Errorf("unexpected context output %q", out)
	}

	out, err = run(t, api, nil, "prompt", "u1", "hi", "--template", "{context}User: {message}")
	if err != nil {
		t.Fatalf("prompt failed: %v", err)
	}
	if out != "Previous context:\n- likes pizza (importance: 7.2)\n\nUser: hi\n" {
		t.Errorf("unexpected prompt output %q", out)
	}
}

func TestReadCommands(t *testing.T) {
	api := newFakeAPI(t)

	tests := []struct {
		args []string
		path string
		auth bool
	}{
		{[]string{"stats", "u1"}, "/stats", true},
		{[]string{"memory", "u1"}, "/memory/u1", true},
		{[]string{"health"}, "/health", false},
	}

	for _, tt := range tests {
		t.Run(tt.args[0], func(t *testing.T) {
			if _, err := run(t, api, nil, tt.args...); err != nil {
				t.Fatalf("%s failed: %v", tt.args[0], err)
			}
			req := api.last()
			if req.method != http.MethodGet || req.path != tt.path {
				t.Errorf("unexpected request %+v", req)
			}
			if (req.auth != "") != tt.auth {
				t.Errorf("authorization %q, want present=%v", req.auth, tt.auth)
			}
		})
	}
}

func TestToolsCommands(t *testing.T) {
	api := newFakeAPI(t)

	out, err := run(t, api, nil, "tools", "list")
	if err != nil {
		t.Fatalf("tools list failed: %v", err)
	}
	var descriptions []map[string]any
	if err := json.Unmarshal([]byte(out), &descriptions); err != nil || len(descriptions) != 3 {
		t.Fatalf("unexpected tool list %s (%v)", out, err)
	}

	out, err = run(t, api, nil, "tools", "call", "ChatSorterRecall", `{"chat_id":"u1","query":"food"}`)
	if err != nil {
		t.Fatalf("tools call failed: %v", err)
	}
	if !strings.Contains(out, `"found":true`) {
		t.Errorf("unexpected tool output %s", out)
	}
}

func TestMissingAPIKey(t *testing.T) {
	api := newFakeAPI(t)

	_, err := run(t, api, map[string]string{}, "health")
	if !errors.Is(err, client.ErrMissingAPIKey) {
		t.Errorf("expected ErrMissingAPIKey, got %v", err)
	}
}

func TestConfigFileSuppliesAPIKey(t *testing.T) {
	api := newFakeAPI(t)
	config := writeConfig(t, "api_key: sk_from_file\nbase_url: "+api.URL+"\n")

	root := newRootCmdWithEnv(envMap(nil))
	root.SetOut(io.Discard)
	root.SetErr(io.Discard)
	root.SetArgs([]string{"--config", config, "stats", "u1"})
	if err := root.Execute(); err != nil {
		t.Fatalf("stats failed: %v", err)
	}

	if got := api.last().auth; got != "Bearer sk_from_file" {
		t.Errorf("expected key from config file, got %q", got)
	}
}

func TestInvalidLogLevel(t *testing.T) {
	root := newRootCmdWithEnv(envMap(map[string]string{envAPIKey: "k"}))
	root.SetOut(io.Discard)
	root.SetErr(io.Discard)
	root.SetArgs([]string{"--config", writeConfig(t, ""), "--log-level", "loud", "health"})

	if err := root.Execute(); err == nil || !strings.Contains(err.Error(), "log level") {
		t.Errorf("expected log level error, got %v", err)
	}
}

func TestTraceFlag_WritesSpans(t *testing.T) {
	api := newFakeAPI(t)
	root := newRootCmdWithEnv(envMap(map[string]string{envAPIKey: "k", envBaseURL: api.URL}))
	var stdout, stderr bytes.Buffer
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	root.SetArgs([]string{"--config", writeConfig(t, ""), "--log-level", "error", "--trace", "health"})

	if err := root.Execute(); err != nil {
		t.Fatalf("health --trace failed: %v", err)
	}
	if !strings.Contains(stdout.String(), "healthy") {
		t.Errorf("expected health payload on stdout, got %q", stdout.String())
	}
	if !strings.Contains(stderr.String(), `"Name": "chatsorter.health"`) {
		t.Errorf("expected exported span on stderr, got %q", stderr.String())
	}
}
