package jsonschema

import (
	"reflect"
	"strings"
	"testing"
)

func TestGenerateJSONSchema_Primitives(t *testing.T) {
	tests := []struct {
		name   string
		schema *Schema
		want   string
	}{
		{"string", GenerateJSONSchema[string](), "string"},
		{"int", GenerateJSONSchema[int](), "integer"},
		{"uint8", GenerateJSONSchema[uint8](), "integer"},
		{"float32", GenerateJSONSchema[float32](), "number"},
		{"bool", GenerateJSONSchema[bool](), "boolean"},
		{"pointer", GenerateJSONSchema[*string](), "string"},
		{"interface", GenerateJSONSchema[any](), "object"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.schema.Type != tt.want {
				t.Errorf("expected type %q, got %q", tt.want, tt.schema.Type)
			}
		})
	}
}

func TestGenerateJSONSchema_Collections(t *testing.T) {
	slice := GenerateJSONSchema[[]int]()
	if slice.Type != "array" || slice.Items == nil || slice.Items.Type != "integer" {
		t.Errorf("unexpected slice schema %s", slice)
	}

	m := GenerateJSONSchema[map[string]float64]()
	if m.Type != "object" || m.AdditionalProperties == nil || m.AdditionalProperties.Type != "number" {
		t.Errorf("unexpected map schema %s", m)
	}
}

type rememberArgs struct {
	ChatID  string            `json:"chat_id" jsonschema:"description=Conversation identifier"`
	Content string            `json:"content" jsonschema:"description=Text to remember"`
	Format  string            `json:"format,omitempty" jsonschema:"description=Content format,enum=text,enum=html"`
	Extra   map[string]any    `json:"extra,omitempty"`
	Limit   *int              `json:"limit"`
	Tags    []string          `json:"tags,omitempty" jsonschema:"required"`
	Hidden  string            `json:"-"`
	Labels  map[string]string `json:",omitempty"`
}

func TestGenerateJSONSchema_Struct(t *testing.T) {
	schema := GenerateJSONSchema[rememberArgs]()

	if schema.Type != "object" {
		t.Fatalf("expected object, got %q", schema.Type)
	}

	wantProps := []string{"chat_id", "content", "format", "extra", "limit", "tags", "Labels"}
	if len(schema.Properties) != len(wantProps) {
		t.Errorf("expected %d properties, got %d: %v", len(wantProps), len(schema.Properties), schema.Properties)
	}
	for _, name := range wantProps {
		if _, ok := schema.Properties[name]; !ok {
			t.Errorf("missing property %q", name)
		}
	}
	if _, ok := schema.Properties["Hidden"]; ok {
		t.Error("json:\"-\" fields must be skipped")
	}

	wantRequired := []string{"chat_id", "content", "tags"}
	if !reflect.DeepEqual(schema.Required, wantRequired) {
		t.Errorf("required = %v, want %v", schema.Required, wantRequired)
	}

	format := schema.Properties["format"]
	if format.Description != "Content format" {
		t.Errorf("unexpected description %q", format.Description)
	}
	if !reflect.DeepEqual(format.Enum, []any{"text", "html"}) {
		t.Errorf("unexpected enum %v", format.Enum)
	}
	if schema.Properties["limit"].Type != "integer" {
		t.Errorf("pointer field should use the element type, got %q", schema.Properties["limit"].Type)
	}
}

type typedEnums struct {
	Level int     `json:"level" jsonschema:"enum=1,enum=2"`
	Ratio float64 `json:"ratio" jsonschema:"enum=0.5"`
	Flag  bool    `json:"flag" jsonschema:"enum=true"`
}

func TestGenerateJSONSchema_TypedEnums(t *testing.T) {
	schema := GenerateJSONSchema[typedEnums]()

	if !reflect.DeepEqual(schema.Properties["level"].Enum, []any{int64(1), int64(2)}) {
		t.Errorf("unexpected int enum %v", schema.Properties["level"].Enum)
	}
	if !reflect.DeepEqual(schema.Properties["ratio"].Enum, []any{0.5}) {
		t.Errorf("unexpected float enum %v", schema.Properties["ratio"].Enum)
	}
	if !reflect.DeepEqual(schema.Properties["flag"].Enum, []any{true}) {
		t.Errorf("unexpected bool enum %v", schema.Properties["flag"].Enum)
	}
}

type node struct {
	Value    string  `json:"value"`
	Children []*node `json:"children,omitempty"`
}

func TestGenerateJSONSchema_Recursive(t *testing.T) {
	schema := GenerateJSONSchema[node]()

	children := schema.Properties["children"]
	if children == nil || children.Type != "array" || children.Items == nil {
		t.Fatalf("unexpected children schema %v", children)
	}
	if children.Items.Type != "object" || children.Items.Properties != nil {
		t.Errorf("recursive reference should be a plain object, got %s", children.Items)
	}
}

type badTag struct {
	Name string `json:"name" jsonschema:"minLength=3"`
}

func TestGenerateJSONSchema_BadTagPanics(t *testing.T) {
	defer func() {
		r := recover()
		if r == nil {
			t.Fatal("expected panic for unknown tag entry")
		}
		if !strings.Contains(r.(string), "minLength") {
			t.Errorf("unexpected panic message %v", r)
		}
	}()
	GenerateJSONSchema[badTag]()
}

func TestSchema_JSONString(t *testing.T) {
	schema := GenerateJSONSchema[typedEnums]()

	compact, err := schema.JSONString(false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strings.Contains(compact, "\n") {
		t.Error("compact output should be on one line")
	}
	if schema.String() != compact {
		t.Error("String() should return the compact form")
	}

	indented, err := schema.JSONString(true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(indented, "\n  \"type\": \"object\"") {
		t.Errorf("unexpected indented output:\n%s", indented)
	}
}
