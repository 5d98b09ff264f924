package statspipe

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseMetricRoundTrip(t *testing.T) {
	for _, test := range testPackets {
		t.Run(test.s, func(t *testing.T) {
			m, err := ParseMetric(test.s)
			assert.NoError(t, err)
			assert.Equal(t, test.m, m)
		})
	}
}

func TestParseMetricSuccess(t *testing.T) {
	tests := []struct {
		s string
		m Metric
	}{
		{
			s: "page.views:1|c\n",
			m: Metric{Kind: CounterType, Name: "page.views", Value: ValueOf(1)},
		},
		{
			s: "fuel.level:0.5|g",
			m: Metric{Kind: GaugeType, Name: "fuel.level", Value: ValueOf(0.5)},
		},
		{
			s: "song.length:240|h|@0.5",
			m: Metric{Kind: HistogramType, Name: "song.length", Value: ValueOf(240), SampleRate: 0.5},
		},
		{
			s: "users.online:1|c|#country:china",
			m: Metric{Kind: CounterType, Name: "users.online", Value: ValueOf(1), Tags: []string{"country:china"}},
		},
		{
			s: "users.online:1|c|@0.5|#country:china,city:hangzhou",
			m: Metric{
				Kind:       CounterType,
				Name:       "users.online",
				Value:      ValueOf(1),
				SampleRate: 0.5,
				Tags:       []string{"country:china", "city:hangzhou"},
			},
		},
		{
			// Names may contain ':', the value starts after the last one.
			s: "host:port:1|c",
			m: Metric{Kind: CounterType, Name: "host:port", Value: ValueOf(1)},
		},
		{
			s: "_e{10,9}:test|title|test text",
			m: Metric{Kind: EventType, Name: "test|title", Value: ValueOf("test text")},
		},
	}

	for _, test := range tests {
		t.Run(test.s, func(t *testing.T) {
			m, err := ParseMetric(test.s)
			assert.NoError(t, err)
			assert.Equal(t, test.m, m)
		})
	}
}

func TestParseMetricFailure(t *testing.T) {
	tests := []string{
		"",
		":10|c",             // missing name
		"name:|c",           // missing value
		"name:abc|c",        // malformed value
		"name:1",            // missing type
		"name:1|",           // missing type
		"name:1|x",          // unknown type
		"name:1|c|???",      // malformed sample rate
		"name:1|c|@abc",     // malformed sample rate
		"name:1|c|@0.5|???", // malformed tags
		"name:1|kv|@abc",    // malformed timestamp
		"_e{4,3}",           // missing event body
		"_e{4,30}:fooh|baz", // length prefix past the end
		"_e{a,b}:fooh|baz",  // malformed length prefix
		"_e{4,3}:foohxbaz",  // missing separator
		"_e{4,3}:fooh|baz|x:1", // unknown event field
		"_sc|app.ok|9",      // status out of range
		"_sc|app.ok|abc",    // malformed status
		"_sc||0",            // missing name
	}

	for _, test := range tests {
		if _, err := ParseMetric(test); err == nil {
			t.Errorf("%#v: expected parsing error", test)
		}
	}
}
