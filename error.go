package statspipe

import "fmt"

// ValidationError is returned when a metric carries a configuration the wire
// grammar of its kind cannot express, for example a sample rate on a datadog
// event under strict metadata validation, a sample rate outside (0, 1], or an
// empty metric name.
//
// This is the only error class that crosses the backend boundary to
// instrumented code.
type ValidationError struct {
	Kind   Kind
	Field  string
	Reason string
}

// Error satisfies the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("statspipe: invalid %s field on %s metric: %s", e.Field, e.Kind, e.Reason)
}

// UnsupportedKindError is reported by the formatter when the active collector
// flavor does not support the requested metric kind. The backend logs it as a
// warning and drops the metric, it never reaches the caller.
type UnsupportedKindError struct {
	Kind   Kind
	Flavor Flavor
}

// Error satisfies the error interface, naming the metric kind and the flavor
// it requires.
func (e *UnsupportedKindError) Error() string {
	return fmt.Sprintf("statspipe: %s metrics require the %s flavor, not supported by %s",
		e.Kind, requiredFlavor(e.Kind), e.Flavor)
}

// requiredFlavor names the flavor a gated metric kind needs. Only the
// datadog and statsite extensions are gated, everything else is universal.
func requiredFlavor(k Kind) Flavor {
	if k == KeyValueType {
		return Statsite
	}
	return Datadog
}
