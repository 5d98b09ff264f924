package statspipe

// Kind is an enumeration representing the kind of a metric.
type Kind int

const (
	// CounterType is the constant representing counter metrics.
	CounterType Kind = iota

	// GaugeType is the constant representing gauge metrics.
	GaugeType

	// SetType is the constant representing set metrics.
	SetType

	// TimingType is the constant representing timing metrics.
	TimingType

	// HistogramType is the constant representing histogram metrics.
	HistogramType

	// DistributionType is the constant representing distribution metrics.
	DistributionType

	// KeyValueType is the constant representing statsite key-value pairs.
	KeyValueType

	// EventType is the constant representing datadog events.
	EventType

	// ServiceCheckType is the constant representing datadog service checks.
	ServiceCheckType
)

// String satisfies the fmt.Stringer interface.
func (k Kind) String() string {
	switch k {
	case CounterType:
		return "counter"
	case GaugeType:
		return "gauge"
	case SetType:
		return "set"
	case TimingType:
		return "timing"
	case HistogramType:
		return "histogram"
	case DistributionType:
		return "distribution"
	case KeyValueType:
		return "key_value"
	case EventType:
		return "event"
	case ServiceCheckType:
		return "service_check"
	}
	return "unknown"
}

// suffix returns the wire type token of simple metric kinds.
func (k Kind) suffix() string {
	switch k {
	case CounterType:
		return "c"
	case GaugeType:
		return "g"
	case SetType:
		return "s"
	case TimingType:
		return "ms"
	case HistogramType:
		return "h"
	case DistributionType:
		return "d"
	case KeyValueType:
		return "kv"
	}
	return ""
}

// EventPriority is an enumeration describing the priority of a datadog event.
type EventPriority string

// Values of EventPriority.
const (
	EventPriorityNormal EventPriority = "normal"
	EventPriorityLow    EventPriority = "low"
)

// EventAlertType is an enumeration describing the alert type of a datadog
// event.
type EventAlertType string

// Values of EventAlertType.
const (
	EventAlertTypeInfo    EventAlertType = "info"
	EventAlertTypeError   EventAlertType = "error"
	EventAlertTypeWarning EventAlertType = "warning"
	EventAlertTypeSuccess EventAlertType = "success"
)

// ServiceCheckStatus is an enumeration describing the status reported by a
// datadog service check.
type ServiceCheckStatus int

// Values of ServiceCheckStatus.
const (
	StatusOK       ServiceCheckStatus = 0
	StatusWarning  ServiceCheckStatus = 1
	StatusCritical ServiceCheckStatus = 2
	StatusUnknown  ServiceCheckStatus = 3
)

// String satisfies the fmt.Stringer interface.
func (s ServiceCheckStatus) String() string {
	switch s {
	case StatusOK:
		return "ok"
	case StatusWarning:
		return "warning"
	case StatusCritical:
		return "critical"
	case StatusUnknown:
		return "unknown"
	}
	return "unknown"
}

// Metric is a universal representation of a single metric occurrence.
//
// The value is constructed per call, handed to a backend, and discarded after
// formatting; no operations are available on it.
type Metric struct {
	// Kind is a constant representing the kind of the metric, one of the
	// constants defined by the Kind enumeration.
	Kind Kind

	// Name is the name of the metric as defined by the program. It must not
	// be empty; bytes that carry meaning in the wire grammar are replaced
	// with '_' during formatting.
	Name string

	// Value is the value of the metric, numeric or string depending on the
	// kind.
	Value Value

	// SampleRate is the probability in (0, 1] that this occurrence is
	// actually transmitted. Zero means unset and is treated as 1.
	SampleRate float64

	// Tags is the ordered list of tags set on the metric. The order is
	// preserved on the wire.
	Tags []string

	// Timestamp is a Unix time attached to events, service checks and
	// statsite key-value pairs. Zero means unset.
	Timestamp int64

	// Hostname is the host reported on events and service checks.
	Hostname string

	// AggregationKey is the key grouping related datadog events.
	AggregationKey string

	// Priority is the priority of a datadog event.
	Priority EventPriority

	// AlertType is the alert type of a datadog event.
	AlertType EventAlertType

	// Message is the message attached to a datadog service check.
	Message string

	// Status is the status reported by a datadog service check.
	Status ServiceCheckStatus
}

// Rate returns the effective sample rate of the metric, mapping the unset
// zero value to 1.
func (m Metric) Rate() float64 {
	if m.SampleRate == 0 {
		return 1
	}
	return m.SampleRate
}

// validateRate checks the sample rate against its documented range. Backends
// call it before the sampling gate, otherwise a negative rate would never
// pass the draw and the configuration error would go unnoticed.
func (m Metric) validateRate() error {
	if r := m.SampleRate; r < 0 || r > 1 {
		return &ValidationError{Kind: m.Kind, Field: "sample_rate", Reason: "sample rates must be in (0, 1]"}
	}
	return nil
}

// validate checks the metric against the wire grammar of its kind.
//
// Metadata fields outside the recognized set of the kind are a configuration
// error: under strict mode validate fails before anything is sent, otherwise
// the disallowed fields are scrubbed from the returned copy and the supported
// fields still format normally.
func (m Metric) validate(strict bool) (Metric, error) {
	if len(m.Name) == 0 {
		return m, &ValidationError{Kind: m.Kind, Field: "name", Reason: "metric names must not be empty"}
	}
	if err := m.validateRate(); err != nil {
		return m, err
	}

	var extra string
	switch m.Kind {
	case EventType:
		switch {
		case m.SampleRate != 0 && m.SampleRate != 1:
			extra = "sample_rate"
		case m.AlertType != "":
			extra = "alert_type"
		case m.Message != "":
			extra = "message"
		}
	case ServiceCheckType:
		switch {
		case m.SampleRate != 0 && m.SampleRate != 1:
			extra = "sample_rate"
		case m.Priority != "":
			extra = "priority"
		case m.AlertType != "":
			extra = "alert_type"
		case m.AggregationKey != "":
			extra = "aggregation_key"
		}
	case KeyValueType:
		switch {
		case m.SampleRate != 0 && m.SampleRate != 1:
			extra = "sample_rate"
		case len(m.Tags) != 0:
			extra = "tags"
		}
	}

	if extra == "" {
		return m, nil
	}
	if strict {
		return m, &ValidationError{Kind: m.Kind, Field: extra, Reason: "not supported by " + m.Kind.String() + " metrics"}
	}

	// Lax mode: scrub the fields that have no slot in the wire grammar and
	// keep going with the rest.
	switch m.Kind {
	case EventType:
		m.SampleRate, m.AlertType, m.Message = 0, "", ""
	case ServiceCheckType:
		m.SampleRate, m.Priority, m.AlertType, m.AggregationKey = 0, "", "", ""
	case KeyValueType:
		m.SampleRate, m.Tags = 0, nil
	}
	return m, nil
}
