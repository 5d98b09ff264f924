package statspipe

import (
	"net"
	"sync"
)

// defaultDial is the transport primitive used when no Dial function is
// injected into the backend.
func defaultDial(network, address string) (net.Conn, error) {
	return net.Dial(network, address)
}

// socket wraps management of the UDP connection to the collector. The
// connection is established lazily on the first write (a UDP connect sets the
// default destination, it performs no handshake), replaced when the target
// address changes, and discarded whenever a write fails so the next attempt
// starts from a clean state. There is no retry and no backoff, a faulted
// socket simply leaves the next call to re-dial.
type socket struct {
	dial func(network, address string) (net.Conn, error)

	mu      sync.RWMutex // so that we can replace the failing conn on error
	address string
	conn    net.Conn
}

func newSocket(address string, dial func(network, address string) (net.Conn, error)) *socket {
	if dial == nil {
		dial = defaultDial
	}
	return &socket{dial: dial, address: address}
}

// SetAddress changes the collector address. It never reconnects eagerly: an
// existing connection to the old address is closed and the next write dials
// whatever the address is by then, so changing host and port separately
// before a write costs a single dial.
func (s *socket) SetAddress(address string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if address == s.address {
		return
	}
	s.address = address

	if s.conn != nil {
		s.conn.Close()
		s.conn = nil
	}
}

// Address returns the address the next write will target.
func (s *socket) Address() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.address
}

// Write sends b as a single datagram, connecting first if needed. Connect and
// send failures are both returned to the caller; a send failure additionally
// discards the connection.
func (s *socket) Write(b []byte) (int, error) {
	conn, err := s.ensureConnection()
	if err != nil {
		return 0, err
	}

	n, err := conn.Write(b)
	if err != nil {
		s.unsetConnection(conn)
		return n, err
	}
	return n, nil
}

// Close satisfies the io.Closer interface.
func (s *socket) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.conn == nil {
		return nil
	}
	err := s.conn.Close()
	s.conn = nil
	return err
}

func (s *socket) ensureConnection() (net.Conn, error) {
	// Check if we've already got a connection we can use.
	s.mu.RLock()
	conn := s.conn
	s.mu.RUnlock()

	if conn != nil {
		return conn, nil
	}

	// Looks like we might need to connect - try again with write locking.
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.conn != nil {
		return s.conn, nil
	}
	conn, err := s.dial("udp", s.address)
	if err != nil {
		return nil, err
	}
	s.conn = conn
	return conn, nil
}

// unsetConnection discards conn so a future write re-dials, unless a
// concurrent call already replaced it.
func (s *socket) unsetConnection(conn net.Conn) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.conn == conn {
		s.conn.Close()
		s.conn = nil
	}
}
