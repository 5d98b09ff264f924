package statspipe

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseMetric reverses the formatter: it decodes one wire packet into the
// Metric it was produced from. It understands the simple metric grammar, the
// statsite key-value grammar, and the datadog event and service check
// extensions.
func ParseMetric(s string) (Metric, error) {
	switch {
	case strings.HasPrefix(s, "_e{"):
		return parseEvent(s)
	case strings.HasPrefix(s, "_sc|"):
		return parseServiceCheck(s)
	}
	return parseSimple(s)
}

func parseSimple(s string) (m Metric, err error) {
	next := strings.TrimSuffix(strings.TrimSpace(s), "\n")
	var val string
	var typ string
	var rate string
	var tags string

	val, next = nextToken(next, '|')
	typ, next = nextToken(next, '|')
	rate, tags = nextToken(next, '|')
	name, val := split(val, ':')

	if len(name) == 0 {
		return m, fmt.Errorf("statspipe: %#v is missing a metric name", s)
	}

	if len(val) == 0 {
		return m, fmt.Errorf("statspipe: %#v is missing a metric value", s)
	}

	switch typ {
	case "c":
		m.Kind = CounterType
	case "g":
		m.Kind = GaugeType
	case "s":
		m.Kind = SetType
	case "ms":
		m.Kind = TimingType
	case "h":
		m.Kind = HistogramType
	case "d":
		m.Kind = DistributionType
	case "kv":
		m.Kind = KeyValueType
	case "":
		return m, fmt.Errorf("statspipe: %#v is missing a metric type", s)
	default:
		return m, fmt.Errorf("statspipe: %#v has an unknown metric type", s)
	}

	if len(rate) != 0 {
		switch rate[0] {
		case '#': // no sample rate, just tags
			rate, tags = "", rate
		case '@':
			rate = rate[1:]
		default:
			return m, fmt.Errorf("statspipe: %#v has a malformed sample rate", s)
		}
	}

	if len(tags) != 0 {
		switch tags[0] {
		case '#':
			tags = tags[1:]
		default:
			return m, fmt.Errorf("statspipe: %#v has malformed tags", s)
		}
	}

	m.Name = name

	if m.Kind == SetType {
		// Set members are opaque strings, they never parse as numbers.
		m.Value = stringValue(val)
	} else if m.Value, err = parseValue(val); err != nil {
		return m, fmt.Errorf("statspipe: %#v has a malformed value", s)
	}

	if len(rate) != 0 {
		// The rate slot of a key-value pair holds a Unix time, not a
		// probability.
		if m.Kind == KeyValueType {
			if m.Timestamp, err = strconv.ParseInt(rate, 10, 64); err != nil {
				return m, fmt.Errorf("statspipe: %#v has a malformed timestamp", s)
			}
		} else if m.SampleRate, err = strconv.ParseFloat(rate, 64); err != nil {
			return m, fmt.Errorf("statspipe: %#v has a malformed sample rate", s)
		}
	}

	if len(tags) != 0 {
		m.Tags = splitTags(tags)
	}

	return m, nil
}

func parseEvent(s string) (m Metric, err error) {
	m.Kind = EventType
	next := strings.TrimSuffix(s, "\n")

	header, next, ok := cutPrefixed(next, "_e{", "}:")
	if !ok {
		return m, fmt.Errorf("statspipe: %#v has a malformed event header", s)
	}

	tlen, xlen, ok := parseLengths(header)
	if !ok || len(next) < tlen+1+xlen {
		return m, fmt.Errorf("statspipe: %#v has a malformed event length prefix", s)
	}

	title, text := next[:tlen], next[tlen+1:tlen+1+xlen]
	if next[tlen] != '|' {
		return m, fmt.Errorf("statspipe: %#v has a malformed event body", s)
	}
	m.Name = unescapeNewlines(title)
	m.Value = stringValue(unescapeNewlines(text))
	next = next[tlen+1+xlen:]

	if len(next) == 0 {
		return m, nil
	}
	if next[0] != '|' {
		return m, fmt.Errorf("statspipe: %#v has malformed event fields", s)
	}

	for _, field := range strings.Split(next[1:], "|") {
		switch {
		case strings.HasPrefix(field, "d:"):
			if m.Timestamp, err = strconv.ParseInt(field[2:], 10, 64); err != nil {
				return m, fmt.Errorf("statspipe: %#v has a malformed event timestamp", s)
			}
		case strings.HasPrefix(field, "h:"):
			m.Hostname = field[2:]
		case strings.HasPrefix(field, "k:"):
			m.AggregationKey = field[2:]
		case strings.HasPrefix(field, "p:"):
			m.Priority = EventPriority(field[2:])
		case strings.HasPrefix(field, "#"):
			m.Tags = splitTags(field[1:])
		default:
			return m, fmt.Errorf("statspipe: %#v has an unknown event field %#v", s, field)
		}
	}

	return m, nil
}

func parseServiceCheck(s string) (m Metric, err error) {
	m.Kind = ServiceCheckType
	next := strings.TrimPrefix(strings.TrimSuffix(s, "\n"), "_sc|")

	var name string
	var status string
	name, next = nextToken(next, '|')
	status, next = nextToken(next, '|')

	if len(name) == 0 {
		return m, fmt.Errorf("statspipe: %#v is missing a service check name", s)
	}
	m.Name = name

	code, err := strconv.Atoi(status)
	if err != nil || code < 0 || code > 3 {
		return m, fmt.Errorf("statspipe: %#v has a malformed service check status", s)
	}
	m.Status = ServiceCheckStatus(code)

	for len(next) != 0 {
		// The message field is last and may itself contain '|'.
		if strings.HasPrefix(next, "m:") {
			m.Message = unescapeNewlines(next[2:])
			break
		}

		var field string
		field, next = nextToken(next, '|')

		switch {
		case strings.HasPrefix(field, "d:"):
			if m.Timestamp, err = strconv.ParseInt(field[2:], 10, 64); err != nil {
				return m, fmt.Errorf("statspipe: %#v has a malformed service check timestamp", s)
			}
		case strings.HasPrefix(field, "h:"):
			m.Hostname = field[2:]
		case strings.HasPrefix(field, "#"):
			m.Tags = splitTags(field[1:])
		default:
			return m, fmt.Errorf("statspipe: %#v has an unknown service check field %#v", s, field)
		}
	}

	return m, nil
}

func parseValue(s string) (Value, error) {
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return intValue(i), nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return Value{}, err
	}
	return floatValue(f), nil
}

func parseLengths(s string) (tlen, xlen int, ok bool) {
	t, x := split(s, ',')
	var err error
	if tlen, err = strconv.Atoi(t); err != nil {
		return 0, 0, false
	}
	if xlen, err = strconv.Atoi(x); err != nil {
		return 0, 0, false
	}
	return tlen, xlen, tlen >= 0 && xlen >= 0
}

func cutPrefixed(s, prefix, sep string) (head, tail string, ok bool) {
	if !strings.HasPrefix(s, prefix) {
		return "", "", false
	}
	s = s[len(prefix):]
	i := strings.Index(s, sep)
	if i < 0 {
		return "", "", false
	}
	return s[:i], s[i+len(sep):], true
}

func splitTags(s string) []string {
	tags := make([]string, 0, strings.Count(s, ",")+1)
	for len(s) != 0 {
		var tag string
		if tag, s = nextToken(s, ','); len(tag) != 0 {
			tags = append(tags, tag)
		}
	}
	return tags
}

func nextToken(s string, b byte) (token, next string) {
	if off := strings.IndexByte(s, b); off >= 0 {
		token, next = s[:off], s[off+1:]
	} else {
		token = s
	}
	return
}

func split(s string, b byte) (head, tail string) {
	if off := strings.LastIndexByte(s, b); off >= 0 {
		head, tail = s[:off], s[off+1:]
	} else {
		head = s
	}
	return
}

func unescapeNewlines(s string) string {
	if !strings.Contains(s, `\n`) {
		return s
	}
	return strings.ReplaceAll(s, `\n`, "\n")
}
