// Package transport defines the interfaces of the queryd transport layer
// and the InboundCall type that carries one request through the system.
//
// A server transport accepts connections, decodes inbound frames and hands
// every request to the registered ServerHandleFunc as an InboundCall. The
// call bundles the opaque request bytes with the reply destination; the
// handler responds exactly once via RespondSuccess. Application errors are
// part of the response payload, so from the transport's point of view every
// answered call is a success.
//
// A client transport connects to one or more endpoints, frames outgoing
// requests and matches responses to callers. It is used both by clients of
// the query service and by the backend connector, which speaks the same
// framed protocol towards the cluster coordinators.
//
// Implementations live in the sub-packages base (shared socket logic),
// tcp, unix and http.
package transport
