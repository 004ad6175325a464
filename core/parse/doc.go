// Package parse converts loosely formatted text into Go values. Tool
// arguments produced by a language model and JSON typed on a command line
// are often slightly malformed: wrapped in a markdown fence, using single
// quotes, missing a closing brace, or wrapping each value in a
// {"type": ..., "value": ...} envelope. [ParseStringAs] recovers from these
// cases by repairing the JSON with jsonrepair before giving up.
package parse
