package jsonschema

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strconv"
	"strings"
)

// Schema is the subset of JSON Schema used to describe tool arguments and
// results.
type Schema struct {
	Type        string             `json:"type,omitempty"`
	Description string             `json:"description,omitempty"`
	Required    []string           `json:"required,omitempty"`
	Properties  map[string]*Schema `json:"properties,omitempty"`
	// Items describes array elements.
	Items *Schema `json:"items,omitempty"`
	// AdditionalProperties describes map values.
	AdditionalProperties *Schema `json:"additionalProperties,omitempty"`
	Enum                 []any   `json:"enum,omitempty"`
}

// GenerateJSONSchema returns the schema of T. Pointers are dereferenced.
// A struct type that contains itself is described as a plain object at the
// point of recursion.
func GenerateJSONSchema[T any]() *Schema {
	return generate(reflect.TypeFor[T](), map[reflect.Type]bool{})
}

func generate(t reflect.Type, inProgress map[reflect.Type]bool) *Schema {
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}

	switch t.Kind() {
	case reflect.String:
		return &Schema{Type: "string"}
	case reflect.Bool:
		return &Schema{Type: "boolean"}
	case reflect.Float32, reflect.Float64:
		return &Schema{Type: "number"}
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return &Schema{Type: "integer"}
	case reflect.Slice, reflect.Array:
		return &Schema{Type: "array", Items: generate(t.Elem(), inProgress)}
	case reflect.Map:
		return &Schema{Type: "object", AdditionalProperties: generate(t.Elem(), inProgress)}
	case reflect.Struct:
		if inProgress[t] {
			return &Schema{Type: "object"}
		}
		inProgress[t] = true
		defer delete(inProgress, t)
		return generateStruct(t, inProgress)
	default:
		return &Schema{Type: "object"}
	}
}

func generateStruct(t reflect.Type, inProgress map[reflect.Type]bool) *Schema {
	schema := &Schema{Type: "object", Properties: map[string]*Schema{}}

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if !field.IsExported() {
			continue
		}

		name, omitEmpty, skip := jsonName(field)
		if skip {
			continue
		}

		fieldSchema := generate(field.Type, inProgress)
		requiredByTag, err := applyTag(field, fieldSchema)
		if err != nil {
			// A malformed tag is a programming error in the tool definition.
			panic(fmt.Sprintf("jsonschema: field %s.%s: %v", t.Name(), field.Name, err))
		}
		schema.Properties[name] = fieldSchema

		if (field.Type.Kind() != reflect.Ptr && !omitEmpty) || requiredByTag {
			schema.Required = append(schema.Required, name)
		}
	}

	return schema
}

func jsonName(field reflect.StructField) (name string, omitEmpty, skip bool) {
	tag := field.Tag.Get("json")
	if tag == "-" {
		return "", false, true
	}

	name, opts, _ := strings.Cut(tag, ",")
	if name == "" {
		name = field.Name
	}
	return name, strings.Contains(opts, "omitempty"), false
}

// applyTag copies the jsonschema tag of field into schema and reports
// whether the tag marks the field as required.
func applyTag(field reflect.StructField, schema *Schema) (bool, error) {
	tag := field.Tag.Get("jsonschema")
	if tag == "" {
		return false, nil
	}

	required := false
	for _, item := range strings.Split(tag, ",") {
		key, value, hasValue := strings.Cut(item, "=")
		switch {
		case key == "required" && !hasValue:
			required = true
		case key == "description":
			schema.Description = value
		case key == "enum":
			v, err := enumValue(field.Type, value)
			if err != nil {
				return false, err
			}
			schema.Enum = append(schema.Enum, v)
		default:
			return false, fmt.Errorf("unknown jsonschema tag entry %q", item)
		}
	}
	return required, nil
}

// enumValue converts an enum tag entry to the field's JSON type.
func enumValue(t reflect.Type, value string) (any, error) {
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}

	switch t.Kind() {
	case reflect.String:
		return value, nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return strconv.ParseInt(value, 10, 64)
	case reflect.Float32, reflect.Float64:
		return strconv.ParseFloat(value, 64)
	case reflect.Bool:
		return strconv.ParseBool(value)
	default:
		return nil, fmt.Errorf("enum unsupported for %v", t)
	}
}

// JSONString returns the schema as compact JSON, or indented JSON when indent
// is true.
func (s *Schema) JSONString(indent bool) (string, error) {
	var (
		data []byte
		err  error
	)
	if indent {
		data, err = json.MarshalIndent(s, "", "  ")
	} else {
		data, err = json.Marshal(s)
	}
	if err != nil {
		return "", fmt.Errorf("failed to marshal schema to JSON: %w", err)
	}
	return string(data), nil
}

func (s *Schema) String() string {
	out, err := s.JSONString(false)
	if err != nil {
		return fmt.Sprintf("error: %v", err)
	}
	return out
}
