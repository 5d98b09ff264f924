package statspipe

import (
	"errors"
	"net"
	"sync"
	"time"
)

// fakeConn records every datagram written through it and can be armed to fail
// writes, standing in for the kernel socket in transport tests.
type fakeConn struct {
	mu      sync.Mutex
	address string
	writes  []string
	failure error
	closed  bool
}

func (c *fakeConn) Write(b []byte) (int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.failure != nil {
		return 0, c.failure
	}
	c.writes = append(c.writes, string(b))
	return len(b), nil
}

func (c *fakeConn) Read(b []byte) (int, error) { return 0, errors.New("not readable") }

func (c *fakeConn) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
	return nil
}

func (c *fakeConn) fail(err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.failure = err
}

func (c *fakeConn) packets() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]string(nil), c.writes...)
}

func (c *fakeConn) isClosed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.closed
}

func (c *fakeConn) LocalAddr() net.Addr              { return nil }
func (c *fakeConn) RemoteAddr() net.Addr             { return nil }
func (c *fakeConn) SetDeadline(time.Time) error      { return nil }
func (c *fakeConn) SetReadDeadline(time.Time) error  { return nil }
func (c *fakeConn) SetWriteDeadline(time.Time) error { return nil }

// fakeDialer counts connects per address and hands out fakeConns, so tests
// can assert on the lazy connect behavior without touching the network.
type fakeDialer struct {
	mu      sync.Mutex
	dialed  []string
	conns   []*fakeConn
	failure error
}

func (d *fakeDialer) dial(network, address string) (net.Conn, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.failure != nil {
		return nil, d.failure
	}
	d.dialed = append(d.dialed, address)
	conn := &fakeConn{address: address}
	d.conns = append(d.conns, conn)
	return conn, nil
}

func (d *fakeDialer) fail(err error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.failure = err
}

func (d *fakeDialer) addresses() []string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]string(nil), d.dialed...)
}

func (d *fakeDialer) lastConn() *fakeConn {
	d.mu.Lock()
	defer d.mu.Unlock()
	if len(d.conns) == 0 {
		return nil
	}
	return d.conns[len(d.conns)-1]
}

func (d *fakeDialer) allPackets() []string {
	d.mu.Lock()
	defer d.mu.Unlock()
	var packets []string
	for _, c := range d.conns {
		packets = append(packets, c.packets()...)
	}
	return packets
}

// recordingLogger captures the warnings and errors the backend absorbs.
type recordingLogger struct {
	mu       sync.Mutex
	warnings []string
	errors   []string
}

func (l *recordingLogger) Warn(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.warnings = append(l.warnings, msg)
}

func (l *recordingLogger) Error(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.errors = append(l.errors, msg)
}

func (l *recordingLogger) warned() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]string(nil), l.warnings...)
}

func (l *recordingLogger) errored() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]string(nil), l.errors...)
}

// fixedDraw returns a draw source that always produces v.
func fixedDraw(v float64) func() float64 {
	return func() float64 { return v }
}
