// Package utils holds the low-level helpers shared by the chatsorter
// packages: a single JSON-over-HTTP round-trip ([Do]), response body cleanup
// ([CloseWithLog]) and string previews for error messages ([TruncateString]).
package utils
