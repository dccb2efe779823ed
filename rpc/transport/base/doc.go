// Package base contains the socket-level building blocks shared by the tcp
// and unix transports: length-prefixed request framing, the connection
// handling loop of the server side and the multiplexing client side.
//
// Frames carry a request ID so that a single connection can have multiple
// requests in flight; the server limits concurrent in-flight requests per
// connection with a counting semaphore and reuses read buffers through a
// sync.Pool. The client keeps a configurable number of connections per
// endpoint, selects connections round-robin, matches responses to waiting
// callers by request ID and retries failed requests with exponential
// backoff.
//
// The transport-specific pieces (how to listen, how to dial, socket
// options) are injected via the IServerConnector and IClientConnector
// interfaces.
package base
