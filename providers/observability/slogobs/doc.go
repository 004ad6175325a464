// Package slogobs provides an observability.Provider backed by log/slog.
//
// Spans are logged at debug level on start and end, counters and histograms
// are kept in memory and logged on every update, and the Logger methods map
// one-to-one onto slog levels. Configure it with [WithFormat], [WithLevel],
// [WithOutput] or hand over an existing logger with [WithLogger]. Without
// options, level and format come from CHATSORTER_LOG_LEVEL/LOG_LEVEL and
// CHATSORTER_LOG_FORMAT/LOG_FORMAT.
package slogobs
