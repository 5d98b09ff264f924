// Package statspipe is a client-side metrics emitter for statsd-family
// collectors. Application code hands metrics to a Backend which encodes them
// into the wire dialect of the configured collector flavor (statsd, datadog,
// statsite or other), applies probabilistic sampling, and fires each packet
// as one UDP datagram. Delivery is fire-and-forget: transport failures are
// reported through an injected logger and never surface to instrumented code.
package statspipe
