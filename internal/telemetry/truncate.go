package telemetry

import "unicode/utf8"

// Ellipsis marks a truncated field.
const Ellipsis = "..."

// Truncate returns value unchanged when it fits in maxLength bytes. Otherwise it keeps the
// first maxLength-3 bytes and appends Ellipsis, so the result is exactly maxLength bytes
// for ASCII input. A cut never splits a UTF-8 sequence; multi-byte text may come out shorter.
// A budget too small to hold the marker yields a bare prefix.
func Truncate(value string, maxLength int) string {
	if len(value) <= maxLength {
		return value
	}
	if maxLength <= 0 {
		return ""
	}
	if maxLength < len(Ellipsis) {
		return value[:runeBoundary(value, maxLength)]
	}
	return value[:runeBoundary(value, maxLength-len(Ellipsis))] + Ellipsis
}

func runeBoundary(value string, n int) int {
	for n > 0 && n < len(value) && !utf8.RuneStart(value[n]) {
		n--
	}
	return n
}
