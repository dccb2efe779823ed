// Package unix provides the Unix domain socket implementation of the
// queryd transports on top of the shared base transport. It is the
// preferred transport when client and service run on the same host.
package unix
