package parse

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/kaptinlin/jsonrepair"
)

var errNotWrapped = errors.New("not a schema-wrapped value")

// ParseStringAs parses content into a value of type T.
//
// Strings, booleans and numbers are converted directly. Every other type is
// decoded as JSON; when that fails the content is stripped of a markdown
// code fence, repaired, and decoded again, first as is and then with
// {"type": ..., "value": ...} envelopes unwrapped.
//
//	args, err := ParseStringAs[RememberInput](`{chat_id: 'u1', content: "likes pizza"}`)
//	n, err := ParseStringAs[int]("42")
func ParseStringAs[T any](content string) (T, error) {
	var result T
	target := reflect.ValueOf(&result).Elem()

	switch target.Kind() {
	case reflect.String:
		if strings.HasPrefix(content, "{") {
			if unwrapped, err := unwrapPrimitive(content); err == nil {
				content = unwrapped
			}
		}
		target.SetString(content)
		return result, nil

	case reflect.Bool:
		v, err := parsePrimitive(content, strconv.ParseBool)
		if err != nil {
			return result, fmt.Errorf("failed to parse content as bool: %w", err)
		}
		target.SetBool(v)
		return result, nil

	case reflect.Float32, reflect.Float64:
		v, err := parsePrimitive(content, func(s string) (float64, error) { return strconv.ParseFloat(s, 64) })
		if err != nil {
			return result, fmt.Errorf("failed to parse content as float: %w", err)
		}
		target.SetFloat(v)
		return result, nil

	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		v, err := parsePrimitive(content, func(s string) (int64, error) { return strconv.ParseInt(s, 10, 64) })
		if err != nil {
			return result, fmt.Errorf("failed to parse content as int: %w", err)
		}
		if target.OverflowInt(v) {
			return result, fmt.Errorf("value %d overflows %s", v, target.Type())
		}
		target.SetInt(v)
		return result, nil

	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		v, err := parsePrimitive(content, func(s string) (uint64, error) { return strconv.ParseUint(s, 10, 64) })
		if err != nil {
			return result, fmt.Errorf("failed to parse content as uint: %w", err)
		}
		if target.OverflowUint(v) {
			return result, fmt.Errorf("value %d overflows %s", v, target.Type())
		}
		target.SetUint(v)
		return result, nil

	default:
		return parseJSON[T](content)
	}
}

// ParseJSONObject parses content as a JSON object, repairing it when needed.
// Empty or whitespace-only content yields a nil map.
func ParseJSONObject(content string) (map[string]any, error) {
	if strings.TrimSpace(content) == "" {
		return nil, nil
	}
	obj, err := ParseStringAs[map[string]any](content)
	if err != nil {
		return nil, err
	}
	if obj == nil {
		return nil, fmt.Errorf("expected a JSON object, got %q", content)
	}
	return obj, nil
}

func parsePrimitive[V any](content string, conv func(string) (V, error)) (V, error) {
	content = strings.TrimSpace(content)
	v, err := conv(content)
	if err == nil {
		return v, nil
	}
	if unwrapped, unwrapErr := unwrapPrimitive(content); unwrapErr == nil {
		if v, convErr := conv(unwrapped); convErr == nil {
			return v, nil
		}
	}
	return v, err
}

func parseJSON[T any](content string) (T, error) {
	var result T
	err := json.Unmarshal([]byte(content), &result)
	if err == nil {
		return result, nil
	}

	repaired, repairErr := jsonrepair.JSONRepair(stripCodeFence(content))
	if repairErr != nil {
		return result, fmt.Errorf("failed to unmarshal content as %T and failed to repair JSON: %w (repair error: %v)", result, err, repairErr)
	}

	var retry T
	if err = json.Unmarshal([]byte(repaired), &retry); err == nil {
		return retry, nil
	}

	unwrapped, unwrapErr := unwrapSchemaValues(repaired)
	if unwrapErr != nil {
		return result, fmt.Errorf("failed to unmarshal repaired JSON as %T: %w", result, err)
	}
	var final T
	if err := json.Unmarshal([]byte(unwrapped), &final); err != nil {
		return result, fmt.Errorf("failed to unmarshal repaired JSON as %T: %w", result, err)
	}
	return final, nil
}

// stripCodeFence returns the body of a ```json ... ``` block, or content
// unchanged when it is not fenced.
func stripCodeFence(content string) string {
	trimmed := strings.TrimSpace(content)
	if !strings.HasPrefix(trimmed, "```") {
		return content
	}
	trimmed = strings.TrimPrefix(trimmed, "```")
	if newline := strings.IndexByte(trimmed, '\n'); newline >= 0 {
		trimmed = trimmed[newline+1:]
	}
	return strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(trimmed), "```"))
}

// unwrapPrimitive extracts the value of a {"type": ..., "value": ...}
// envelope as a string.
func unwrapPrimitive(content string) (string, error) {
	var data map[string]any
	if err := json.Unmarshal([]byte(content), &data); err != nil {
		return "", err
	}
	value, ok := envelopeValue(data)
	if !ok {
		return "", errNotWrapped
	}

	switch v := value.(type) {
	case string:
		return v, nil
	case float64, bool:
		return fmt.Sprint(v), nil
	default:
		out, err := json.Marshal(v)
		if err != nil {
			return "", err
		}
		return string(out), nil
	}
}

// unwrapSchemaValues replaces every {"type": ..., "value": ...} envelope in
// a JSON document with its value:
//
//	{"name": {"type": "string", "value": "John"}}  ->  {"name": "John"}
func unwrapSchemaValues(content string) (string, error) {
	var data any
	if err := json.Unmarshal([]byte(content), &data); err != nil {
		return "", err
	}
	out, err := json.Marshal(unwrap(data))
	if err != nil {
		return "", err
	}
	return string(out), nil
}

func unwrap(data any) any {
	switch v := data.(type) {
	case map[string]any:
		if value, ok := envelopeValue(v); ok {
			return unwrap(value)
		}
		out := make(map[string]any, len(v))
		for key, val := range v {
			out[key] = unwrap(val)
		}
		return out
	case []any:
		out := make([]any, len(v))
		for i, val := range v {
			out[i] = unwrap(val)
		}
		return out
	default:
		return data
	}
}

func envelopeValue(m map[string]any) (any, bool) {
	if len(m) != 2 {
		return nil, false
	}
	if _, hasType := m["type"]; !hasType {
		return nil, false
	}
	value, hasValue := m["value"]
	return value, hasValue
}
