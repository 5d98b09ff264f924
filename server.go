package statspipe

import (
	"bytes"
	"errors"
	"io"
	"net"
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"
)

// Handler defines the interface that types must satisfy to process metrics
// received by a collector server.
type Handler interface {
	// HandleMetric is called for every metric a server receives, with the
	// metric and the address it was sent from.
	HandleMetric(Metric, net.Addr)
}

// HandlerFunc makes it possible for function types to be used as metric
// handlers on collector servers.
type HandlerFunc func(Metric, net.Addr)

// HandleMetric calls f(m, a).
func (f HandlerFunc) HandleMetric(m Metric, a net.Addr) {
	f(m, a)
}

// ListenAndServe starts a new collector server, listening for UDP datagrams
// on addr and forwarding the decoded metrics to handler.
func ListenAndServe(addr string, handler Handler) error {
	conn, err := net.ListenPacket("udp", addr)
	if err != nil {
		return err
	}
	return Serve(conn, handler)
}

// Serve runs a collector server, reading datagrams from conn and forwarding
// the decoded metrics to handler. Packets that fail to parse are skipped.
func Serve(conn net.PacketConn, handler Handler) error {
	defer conn.Close()

	concurrency := runtime.GOMAXPROCS(-1)
	if concurrency <= 0 {
		concurrency = 1
	}

	if err := conn.SetDeadline(time.Time{}); err != nil {
		return err
	}

	var errgrp errgroup.Group

	for i := 0; i < concurrency; i++ {
		errgrp.Go(func() error {
			return serve(conn, handler)
		})
	}

	err := errgrp.Wait()
	switch {
	default:
		return err
	case err == nil:
	case errors.Is(err, io.EOF):
	case errors.Is(err, io.ErrClosedPipe):
	case errors.Is(err, net.ErrClosed):
	}

	return nil
}

func serve(conn net.PacketConn, handler Handler) error {
	b := make([]byte, 65536)

	for {
		n, a, err := conn.ReadFrom(b)
		if err != nil {
			return err
		}

		// A datagram carries one packet per emitter call, but newline
		// terminated kinds may still arrive batched by other senders.
		for s := b[:n]; len(s) != 0; {
			off := bytes.IndexByte(s, '\n')
			if off < 0 {
				off = len(s)
			} else {
				off++
			}

			ln := s[:off]
			s = s[off:]

			m, err := ParseMetric(string(ln))
			if err != nil {
				continue
			}
			handler.HandleMetric(m, a)
		}
	}
}
