// Package tool wraps typed Go functions as tools a language model can call.
//
// A [Tool] binds a name and description to a function and derives the JSON
// Schema of its input by reflection. [Tool.Call] accepts the model's JSON
// arguments, repairing them when they are malformed, and returns the result
// encoded as JSON. [Catalog] is a concurrency-safe registry that dispatches
// calls by tool name.
//
// The memorytool subpackage builds tools on top of the ChatSorter client.
package tool
