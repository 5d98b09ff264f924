package statspipe

import "strings"

// T builds a tag in the conventional name:value form used by datadog
// collectors. Plain tags without a value are passed to metrics as bare
// strings.
func T(name, value string) string {
	return name + ":" + value
}

// SplitTag splits a name:value tag into its parts. Tags without a ':' are
// returned with an empty value.
func SplitTag(tag string) (name, value string) {
	if i := strings.IndexByte(tag, ':'); i >= 0 {
		return tag[:i], tag[i+1:]
	}
	return tag, ""
}

// appendTags appends the comma-joined tag list to b, preserving the insertion
// order of the tags.
func appendTags(b []byte, tags []string) []byte {
	for i, t := range tags {
		if i != 0 {
			b = append(b, ',')
		}
		b = appendSanitizedTag(b, t)
	}
	return b
}

// appendSanitized appends s to b replacing the bytes that would corrupt the
// frame of a metric name or value with '_'.
func appendSanitized(b []byte, s string) []byte {
	for i := 0; i < len(s); i++ {
		switch c := s[i]; c {
		case ',', ':', '|', '@', '#', '\n':
			b = append(b, '_')
		default:
			b = append(b, c)
		}
	}
	return b
}

// appendSanitizedTag is like appendSanitized but keeps ':' intact, tags
// legitimately carry name:value pairs.
func appendSanitizedTag(b []byte, s string) []byte {
	for i := 0; i < len(s); i++ {
		switch c := s[i]; c {
		case ',', '|', '#', '\n':
			b = append(b, '_')
		default:
			b = append(b, c)
		}
	}
	return b
}
