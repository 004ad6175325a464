// Package jsonschema derives JSON Schema documents from Go types by
// reflection. Tool parameters are described with it so that a language model
// knows which arguments a tool accepts.
//
// Struct fields honour their json tag for naming and omitempty, and an
// optional jsonschema tag:
//
//	Format string `json:"format,omitempty" jsonschema:"description=Content format,enum=text,enum=html"`
//
// Entries in the jsonschema tag are comma separated, so descriptions must not
// contain commas.
package jsonschema
