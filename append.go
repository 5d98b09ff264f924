package statspipe

import (
	"strconv"
	"strings"
)

// Formatter encodes metrics into the wire representation expected by one
// collector flavor. The zero value formats for the statsd reference daemon
// with lax metadata validation.
type Formatter struct {
	// Flavor selects the collector dialect, and with it the set of legal
	// metric kinds.
	Flavor Flavor

	// Strict makes metadata that the wire grammar cannot express a
	// ValidationError instead of being silently dropped from the packet.
	Strict bool
}

// Format returns the wire representation of m, or an error if the metric is
// invalid or its kind is not supported by the formatter's flavor. Exactly one
// datagram payload is produced per call.
func (f Formatter) Format(m Metric) (string, error) {
	b, err := f.Append(nil, m)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// Append appends the wire representation of m to b. On error b is returned
// unchanged: no partial packet is ever produced.
func (f Formatter) Append(b []byte, m Metric) ([]byte, error) {
	if !f.Flavor.Supports(m.Kind) {
		return b, &UnsupportedKindError{Kind: m.Kind, Flavor: f.Flavor}
	}

	m, err := m.validate(f.Strict)
	if err != nil {
		return b, err
	}

	switch m.Kind {
	case EventType:
		return appendEvent(b, m), nil
	case ServiceCheckType:
		return appendServiceCheck(b, m), nil
	case KeyValueType:
		return appendKeyValue(b, m), nil
	}
	return appendSimple(b, m), nil
}

// appendSimple encodes counters, gauges, sets, timings, histograms and
// distributions, which all share the name:value|type grammar.
func appendSimple(b []byte, m Metric) []byte {
	b = appendSanitized(b, m.Name)
	b = append(b, ':')
	b = m.Value.appendTo(b)
	b = append(b, '|')
	b = append(b, m.Kind.suffix()...)

	if r := m.SampleRate; r != 0 && r != 1 {
		b = append(b, '|', '@')
		b = strconv.AppendFloat(b, r, 'g', -1, 64)
	}

	if len(m.Tags) != 0 {
		b = append(b, '|', '#')
		b = appendTags(b, m.Tags)
	}

	return b
}

// appendKeyValue encodes the statsite key-value pair grammar, which reuses
// the sample rate slot for an optional Unix timestamp and is newline
// terminated.
func appendKeyValue(b []byte, m Metric) []byte {
	b = appendSanitized(b, m.Name)
	b = append(b, ':')
	b = m.Value.appendTo(b)
	b = append(b, "|kv"...)

	if m.Timestamp != 0 {
		b = append(b, '|', '@')
		b = strconv.AppendInt(b, m.Timestamp, 10)
	}

	return append(b, '\n')
}

// appendEvent encodes the datadog event extension. The length prefix counts
// the bytes of the title and text after newline escaping.
func appendEvent(b []byte, m Metric) []byte {
	title := escapeNewlines(m.Name)
	text := escapeNewlines(m.Value.Text())

	b = append(b, "_e{"...)
	b = strconv.AppendInt(b, int64(len(title)), 10)
	b = append(b, ',')
	b = strconv.AppendInt(b, int64(len(text)), 10)
	b = append(b, "}:"...)
	b = append(b, title...)
	b = append(b, '|')
	b = append(b, text...)

	if m.Timestamp != 0 {
		b = append(b, "|d:"...)
		b = strconv.AppendInt(b, m.Timestamp, 10)
	}
	if len(m.Hostname) != 0 {
		b = append(b, "|h:"...)
		b = append(b, m.Hostname...)
	}
	if len(m.AggregationKey) != 0 {
		b = append(b, "|k:"...)
		b = append(b, m.AggregationKey...)
	}
	if len(m.Priority) != 0 {
		b = append(b, "|p:"...)
		b = append(b, string(m.Priority)...)
	}
	if len(m.Tags) != 0 {
		b = append(b, "|#"...)
		b = appendTags(b, m.Tags)
	}

	return b
}

// appendServiceCheck encodes the datadog service check extension. The message
// field, when present, must be the last field of the packet.
func appendServiceCheck(b []byte, m Metric) []byte {
	b = append(b, "_sc|"...)
	b = appendSanitized(b, m.Name)
	b = append(b, '|')
	b = strconv.AppendInt(b, int64(m.Status), 10)

	if m.Timestamp != 0 {
		b = append(b, "|d:"...)
		b = strconv.AppendInt(b, m.Timestamp, 10)
	}
	if len(m.Hostname) != 0 {
		b = append(b, "|h:"...)
		b = append(b, m.Hostname...)
	}
	if len(m.Tags) != 0 {
		b = append(b, "|#"...)
		b = appendTags(b, m.Tags)
	}
	if len(m.Message) != 0 {
		b = append(b, "|m:"...)
		b = append(b, escapeNewlines(m.Message)...)
	}

	return b
}

// escapeNewlines turns embedded newlines into the literal two-byte sequence
// `\n` understood by the datadog agent.
func escapeNewlines(s string) string {
	if strings.IndexByte(s, '\n') < 0 {
		return s
	}
	return strings.ReplaceAll(s, "\n", `\n`)
}
