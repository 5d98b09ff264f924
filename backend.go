package statspipe

import (
	"errors"
	"fmt"
	"math/rand"
	"net"
	"strconv"
	"sync"
)

const (
	// DefaultHost is the host backends target when none is configured.
	DefaultHost = "localhost"

	// DefaultPort is the canonical statsd collector port.
	DefaultPort = 8125
)

// BackendConfig carries the configuration values that can be set when
// creating a backend.
type BackendConfig struct {
	// Host and Port of the collector to send datagrams to.
	Host string
	Port int

	// Flavor of the collector, which gates the metric kinds the backend
	// accepts.
	Flavor Flavor

	// Strict makes event and service check metadata that the wire grammar
	// cannot express fail the Collect call instead of being dropped from the
	// packet.
	Strict bool

	// Logger receives the warnings and errors the backend absorbs. Defaults
	// to the standard logger.
	Logger Logger

	// Rand is the source of uniform draws in [0, 1) consumed by sampling
	// decisions. Defaults to math/rand.
	Rand func() float64

	// Dial is the function used to open the connection to the collector.
	// Defaults to net.Dial.
	Dial func(network, address string) (net.Conn, error)
}

// Backend sends each collected metric to a statsd-family collector as one UDP
// datagram. Delivery is fire-and-forget: transport failures are logged and
// absorbed, never returned, so instrumented code cannot be crashed by network
// conditions. Backends are safe for concurrent use.
type Backend struct {
	mu     sync.Mutex
	host   string
	port   int
	flavor Flavor
	strict bool
	log    Logger
	rand   func() float64
	sock   *socket
}

// NewBackend creates and returns a backend sending metrics to the collector
// of the given flavor listening for UDP datagrams on host:port.
func NewBackend(host string, port int, flavor Flavor) *Backend {
	return NewBackendWith(BackendConfig{
		Host:   host,
		Port:   port,
		Flavor: flavor,
	})
}

// NewBackendWith creates and returns a backend configured with config.
func NewBackendWith(config BackendConfig) *Backend {
	config = setConfigDefaults(config)
	return &Backend{
		host:   config.Host,
		port:   config.Port,
		flavor: config.Flavor,
		strict: config.Strict,
		log:    config.Logger,
		rand:   config.Rand,
		sock:   newSocket(joinAddress(config.Host, config.Port), config.Dial),
	}
}

func setConfigDefaults(config BackendConfig) BackendConfig {
	if len(config.Host) == 0 {
		config.Host = DefaultHost
	}
	if config.Port == 0 {
		config.Port = DefaultPort
	}
	if config.Logger == nil {
		config.Logger = NewLogger(nil)
	}
	if config.Rand == nil {
		config.Rand = rand.Float64
	}
	return config
}

func joinAddress(host string, port int) string {
	return net.JoinHostPort(host, strconv.Itoa(port))
}

// Collect applies the sampling gate, formats m for the configured flavor, and
// fires the packet at the collector.
//
// The only failures surfaced to the caller are ValidationErrors. A kind the
// active flavor does not support logs one warning, a transport failure logs
// one error and discards the socket so the next call starts from a fresh
// connect; both drop the metric and return nil.
func (b *Backend) Collect(m Metric) error {
	b.mu.Lock()
	f := Formatter{Flavor: b.flavor, Strict: b.strict}
	draw := b.rand
	sock := b.sock
	logger := b.log
	b.mu.Unlock()

	if err := m.validateRate(); err != nil {
		return err
	}
	if !shouldEmit(m.Rate(), draw) {
		// Dropped by design, not an error.
		return nil
	}

	pkt, err := f.Append(nil, m)
	if err != nil {
		var unsupported *UnsupportedKindError
		if errors.As(err, &unsupported) {
			logger.Warn(err.Error())
			return nil
		}
		return err
	}

	if _, err := sock.Write(pkt); err != nil {
		logger.Error(fmt.Sprintf("sending metric %s to %s failed: %s", m.Name, sock.Address(), err))
	}
	return nil
}

// SetHost retargets the backend at a new collector host. The change takes
// effect lazily: no reconnect happens until the next write.
func (b *Backend) SetHost(host string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.host = host
	b.sock.SetAddress(joinAddress(b.host, b.port))
}

// SetPort retargets the backend at a new collector port, lazily like SetHost.
func (b *Backend) SetPort(port int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.port = port
	b.sock.SetAddress(joinAddress(b.host, b.port))
}

// SetAddress changes host and port in one step.
func (b *Backend) SetAddress(host string, port int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.host, b.port = host, port
	b.sock.SetAddress(joinAddress(host, port))
}

// Address returns the collector address the next datagram will target.
func (b *Backend) Address() string {
	return b.sock.Address()
}

// SetFlavor changes the collector flavor. The capability gate reads the
// flavor on every Collect call, nothing is cached across changes.
func (b *Backend) SetFlavor(f Flavor) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.flavor = f
}

// Flavor returns the active collector flavor.
func (b *Backend) Flavor() Flavor {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.flavor
}

// SetStrict toggles strict metadata validation.
func (b *Backend) SetStrict(strict bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.strict = strict
}

// Close satisfies the io.Closer interface.
func (b *Backend) Close() error {
	return b.sock.Close()
}
