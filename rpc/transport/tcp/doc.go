// Package tcp provides the TCP implementation of the queryd transports.
// It plugs TCP listeners and dialers into the shared base transport and
// applies the configured socket options (no-delay, buffer sizes,
// keep-alive, linger) to every connection.
package tcp
