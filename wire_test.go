package statspipe

// testPackets pairs metrics with their exact wire representation. The table
// is shared by the formatter and parser tests: every entry formats to s under
// flavor, and s parses back to a metric equivalent to m.
var testPackets = []struct {
	s      string
	flavor Flavor
	m      Metric
}{
	{
		s:      "counter:1|c",
		flavor: Statsd,
		m: Metric{
			Kind:  CounterType,
			Name:  "counter",
			Value: ValueOf(1),
		},
	},
	{
		s:      "counter:1|c|@0.5",
		flavor: Statsd,
		m: Metric{
			Kind:       CounterType,
			Name:       "counter",
			Value:      ValueOf(1),
			SampleRate: 0.5,
		},
	},
	{
		s:      "fooy:1.23|g",
		flavor: Statsd,
		m: Metric{
			Kind:  GaugeType,
			Name:  "fooy",
			Value: ValueOf(1.23),
		},
	},
	{
		s:      "users.uniques:guest|s",
		flavor: Other,
		m: Metric{
			Kind:  SetType,
			Name:  "users.uniques",
			Value: ValueOf("guest"),
		},
	},
	{
		s:      "request.rtt:240.5|ms|@0.1|#env:test,shard:2",
		flavor: Statsd,
		m: Metric{
			Kind:       TimingType,
			Name:       "request.rtt",
			Value:      ValueOf(240.5),
			SampleRate: 0.1,
			Tags:       []string{"env:test", "shard:2"},
		},
	},
	{
		s:      "fooh:42.4|h",
		flavor: Datadog,
		m: Metric{
			Kind:  HistogramType,
			Name:  "fooh",
			Value: ValueOf(42.4),
		},
	},
	{
		s:      "song.length:240|d|@0.5",
		flavor: Datadog,
		m: Metric{
			Kind:       DistributionType,
			Name:       "song.length",
			Value:      ValueOf(240),
			SampleRate: 0.5,
		},
	},
	{
		s:      "fooy:42|kv|@123456\n",
		flavor: Statsite,
		m: Metric{
			Kind:      KeyValueType,
			Name:      "fooy",
			Value:     ValueOf(42),
			Timestamp: 123456,
		},
	},
	{
		s:      "fooy:42|kv\n",
		flavor: Statsite,
		m: Metric{
			Kind:  KeyValueType,
			Name:  "fooy",
			Value: ValueOf(42),
		},
	},
	{
		s:      "_e{4,3}:fooh|baz|h:localhost|#foo",
		flavor: Datadog,
		m: Metric{
			Kind:     EventType,
			Name:     "fooh",
			Value:    ValueOf("baz"),
			Hostname: "localhost",
			Tags:     []string{"foo"},
		},
	},
	{
		s:      `_e{10,24}:test title|test\line1\nline2\nline3`,
		flavor: Datadog,
		m: Metric{
			Kind:  EventType,
			Name:  "test title",
			Value: ValueOf("test\\line1\nline2\nline3"),
		},
	},
	{
		s:      "_e{10,9}:test title|test text|d:21|k:some key|p:low|#tag1,tag2:test",
		flavor: Datadog,
		m: Metric{
			Kind:           EventType,
			Name:           "test title",
			Value:          ValueOf("test text"),
			Timestamp:      21,
			AggregationKey: "some key",
			Priority:       EventPriorityLow,
			Tags:           []string{"tag1", "tag2:test"},
		},
	},
	{
		s:      "_sc|app.ok|0",
		flavor: Datadog,
		m: Metric{
			Kind:   ServiceCheckType,
			Name:   "app.ok",
			Status: StatusOK,
		},
	},
	{
		s:      "_sc|app.ok|2|d:123|h:web1|#region:east|m:redis is down",
		flavor: Datadog,
		m: Metric{
			Kind:      ServiceCheckType,
			Name:      "app.ok",
			Status:    StatusCritical,
			Timestamp: 123,
			Hostname:  "web1",
			Tags:      []string{"region:east"},
			Message:   "redis is down",
		},
	},
}
