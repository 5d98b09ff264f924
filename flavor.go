package statspipe

import "fmt"

// Flavor is an enumeration representing the collector implementation that a
// backend emits to. The flavor decides which metric kinds are legal on the
// wire: the statsd reference daemon knows nothing about histograms or events,
// statsite adds key-value pairs, and the datadog agent adds histograms,
// distributions, events and service checks.
type Flavor int

const (
	// Statsd is the constant representing the statsd reference daemon.
	Statsd Flavor = iota

	// Datadog is the constant representing the datadog agent.
	Datadog

	// Statsite is the constant representing the statsite daemon.
	Statsite

	// Other is the constant representing an unspecified collector, it is
	// given the same capabilities as the statsd reference daemon.
	Other
)

// ParseFlavor returns the flavor represented by s, or an error if s does not
// name one of the supported collector implementations.
func ParseFlavor(s string) (Flavor, error) {
	switch s {
	case "statsd":
		return Statsd, nil
	case "datadog":
		return Datadog, nil
	case "statsite":
		return Statsite, nil
	case "other":
		return Other, nil
	}
	return Other, fmt.Errorf("statspipe: %#v is not a supported collector flavor", s)
}

// String satisfies the fmt.Stringer interface.
func (f Flavor) String() string {
	switch f {
	case Statsd:
		return "statsd"
	case Datadog:
		return "datadog"
	case Statsite:
		return "statsite"
	case Other:
		return "other"
	}
	return "unknown"
}

// flavorSet is a bitset of flavors, indexed by the Flavor constants.
type flavorSet uint8

func flavors(f ...Flavor) flavorSet {
	s := flavorSet(0)
	for _, x := range f {
		s |= 1 << uint(x)
	}
	return s
}

func (s flavorSet) has(f Flavor) bool {
	return s&(1<<uint(f)) != 0
}

var allFlavors = flavors(Statsd, Datadog, Statsite, Other)

// kindSupport is the capability table consulted by the formatter, mapping
// each metric kind to the set of flavors able to receive it.
var kindSupport = [...]flavorSet{
	CounterType:      allFlavors,
	GaugeType:        allFlavors,
	SetType:          allFlavors,
	TimingType:       allFlavors,
	HistogramType:    flavors(Datadog),
	DistributionType: flavors(Datadog),
	KeyValueType:     flavors(Statsite),
	EventType:        flavors(Datadog),
	ServiceCheckType: flavors(Datadog),
}

// Supports returns true if metrics of kind k may be sent to collectors of
// flavor f.
func (f Flavor) Supports(k Kind) bool {
	if k < 0 || int(k) >= len(kindSupport) {
		return false
	}
	return kindSupport[k].has(f)
}
